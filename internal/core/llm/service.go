package llm

import "context"

// Service wraps the model provider for dependency injection.
type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

func (s *Service) GenerateResponse(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	return s.provider.GenerateResponse(ctx, systemPrompt, messages)
}

func (s *Service) StreamResponse(ctx context.Context, systemPrompt string, messages []Message, onDelta DeltaFunc) (string, error) {
	return s.provider.StreamResponse(ctx, systemPrompt, messages, onDelta)
}

func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}
