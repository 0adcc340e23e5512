package llm

import "context"

// Message is one prior conversation turn passed to the model.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// DeltaFunc receives each incremental text fragment as the model produces
// it. Returning an error aborts the stream (client disconnected).
type DeltaFunc func(delta string) error

// Provider is the upstream chat-completion model.
type Provider interface {
	// GenerateResponse returns the complete answer in one shot.
	GenerateResponse(ctx context.Context, systemPrompt string, messages []Message) (string, error)
	// StreamResponse forwards fragments to onDelta as they arrive and
	// returns the accumulated answer. On mid-stream failure the partial
	// answer accumulated so far is returned alongside the error.
	StreamResponse(ctx context.Context, systemPrompt string, messages []Message, onDelta DeltaFunc) (string, error)
	GetProviderName() string
}
