package relay

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/xeoai/chatbot-saas-be/internal/core/apperr"
	"github.com/xeoai/chatbot-saas-be/internal/core/llm"
)

// Provider adapts the relay client to the llm.Provider interface, so
// deployments without a model API key can serve answers through the
// shared relay instead.
type Provider struct {
	client *Client
}

func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

func (p *Provider) GenerateResponse(ctx context.Context, systemPrompt string, messages []llm.Message) (string, error) {
	return p.StreamResponse(ctx, systemPrompt, messages, nil)
}

// StreamResponse forwards the latest user message to the relay. The
// relay is stateless per connection, so earlier turns are not replayed.
func (p *Provider) StreamResponse(ctx context.Context, systemPrompt string, messages []llm.Message, onDelta llm.DeltaFunc) (string, error) {
	if len(messages) == 0 {
		return "", apperr.Validation("No user message found")
	}
	last := messages[len(messages)-1]

	var b strings.Builder
	err := p.client.Stream(ctx, uuid.NewString(), systemPrompt, last.Content, func(fragment string) error {
		b.WriteString(fragment)
		if onDelta != nil {
			return onDelta(fragment)
		}
		return nil
	})

	return b.String(), err
}

func (p *Provider) GetProviderName() string {
	return "relay"
}
