package llm

import (
	"context"
	"errors"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/xeoai/chatbot-saas-be/internal/core/apperr"
)

type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func NewOpenAIProvider(apiKey string, model string) *OpenAIProvider {
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIProvider{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: 0.7,
		maxTokens:   1000,
	}
}

func (p *OpenAIProvider) GetProviderName() string {
	return "OpenAI"
}

func (p *OpenAIProvider) GenerateResponse(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, p.buildRequest(systemPrompt, messages, false))
	if err != nil {
		return "", mapUpstreamError(err)
	}

	if len(resp.Choices) == 0 {
		return "", apperr.New(apperr.KindUpstream, "no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) StreamResponse(ctx context.Context, systemPrompt string, messages []Message, onDelta DeltaFunc) (string, error) {
	stream, err := p.client.CreateChatCompletionStream(ctx, p.buildRequest(systemPrompt, messages, true))
	if err != nil {
		return "", mapUpstreamError(err)
	}
	defer stream.Close()

	var full string
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return full, nil
		}
		if err != nil {
			return full, mapUpstreamError(err)
		}

		if len(resp.Choices) == 0 {
			continue
		}

		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}

		full += delta
		if onDelta != nil {
			if err := onDelta(delta); err != nil {
				// Client went away; stop pulling from upstream.
				return full, err
			}
		}
	}
}

func (p *OpenAIProvider) buildRequest(systemPrompt string, messages []Message, stream bool) openai.ChatCompletionRequest {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	chatMessages = append(chatMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	return openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    chatMessages,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
		Stream:      stream,
	}
}

// mapUpstreamError translates OpenAI API failures into the pipeline error
// taxonomy: 429 with exhausted quota is QuotaExceeded (operator action
// needed), plain 429 is RateLimited (retryable), everything else is a
// generic upstream failure.
func mapUpstreamError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			if code, ok := apiErr.Code.(string); ok && code == "insufficient_quota" {
				return apperr.Wrap(apperr.KindQuotaExceeded, "AI service quota exhausted, please try again later.", err)
			}
			return apperr.Wrap(apperr.KindRateLimited, "Rate limits exceeded, please try again later.", err)
		case http.StatusPaymentRequired:
			return apperr.Wrap(apperr.KindQuotaExceeded, "AI service quota exhausted, please try again later.", err)
		}
	}

	return apperr.Wrap(apperr.KindUpstream, "AI service error", err)
}
