package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/xeoai/chatbot-saas-be/internal/core/apperr"
	"github.com/xeoai/chatbot-saas-be/internal/core/llm"
	"github.com/xeoai/chatbot-saas-be/internal/core/metering"
	"github.com/xeoai/chatbot-saas-be/internal/core/prompt"
	"github.com/xeoai/chatbot-saas-be/internal/models"
	"github.com/xeoai/chatbot-saas-be/internal/repositories"
)

// FallbackSuffix is appended to a partially delivered answer when the
// upstream stream drops mid-generation, instead of discarding the partial
// content.
const FallbackSuffix = "\n\nSorry, something interrupted this answer. Please try again."

// ErrNotFreeTier is returned when the free-tier handoff is requested for
// a business whose owner is on a paid plan; the caller should retry
// against the metered endpoint.
var ErrNotFreeTier = apperr.Validation("This endpoint is only for free tier users")

// ChatRequest is one metered chat turn: full message history with the
// latest user message last.
type ChatRequest struct {
	BusinessID uuid.UUID
	SessionID  string
	Messages   []llm.Message
}

// ChatResult is the outcome of a processed metered turn.
type ChatResult struct {
	Answer    string
	FromCache bool
	Degraded  bool
}

// FreeChatRequest is the free-tier prompt handoff input.
type FreeChatRequest struct {
	BusinessID uuid.UUID
	SessionID  string
	Message    string
}

// FreeChatResult carries everything the caller needs to open its own
// relay connection.
type FreeChatResult struct {
	SystemPrompt string
	ChatID       string
	BusinessName string
}

// ChatService runs the chat request pipeline shared by both serving
// tiers: metering gate, response cache, context loading, prompt assembly,
// model streaming and conversation persistence.
type ChatService struct {
	businessRepo     repositories.BusinessRepo
	planRepo         repositories.PlanRepo
	cacheRepo        repositories.CacheRepo
	conversationRepo repositories.ConversationRepo
	gate             *metering.Gate
	loader           *prompt.Loader
	llmService       *llm.Service
}

func NewChatService(
	businessRepo repositories.BusinessRepo,
	planRepo repositories.PlanRepo,
	cacheRepo repositories.CacheRepo,
	conversationRepo repositories.ConversationRepo,
	gate *metering.Gate,
	llmService *llm.Service,
) *ChatService {
	return &ChatService{
		businessRepo:     businessRepo,
		planRepo:         planRepo,
		cacheRepo:        cacheRepo,
		conversationRepo: conversationRepo,
		gate:             gate,
		loader:           prompt.NewLoader(businessRepo),
		llmService:       llmService,
	}
}

// ResolveTier returns the plan name of a business's owner, defaulting to
// free when no plan row exists.
func (s *ChatService) ResolveTier(ctx context.Context, businessID uuid.UUID) (string, error) {
	business, err := s.businessRepo.GetBusiness(ctx, businessID)
	if err != nil {
		return "", err
	}
	return s.ownerPlan(ctx, business.UserID), nil
}

// ProcessChat runs one metered turn. Deltas are forwarded to onDelta as
// they are produced; cache hits deliver the stored answer through the
// same callback so the transport cannot tell the difference.
func (s *ChatService) ProcessChat(ctx context.Context, req *ChatRequest, onDelta llm.DeltaFunc) (*ChatResult, error) {
	question, err := validateMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	// 1. Business must exist before anything is charged or cached.
	business, err := s.businessRepo.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	// 2. Quota gate, before cache lookup and model invocation. Cache hits
	// consume quota too.
	decision, err := s.gate.Check(ctx, business.ID, business.UserID)
	if err != nil {
		return nil, err
	}

	// 3. Response cache.
	cached, err := s.cacheRepo.FindMatch(ctx, business.ID, question)
	if err != nil {
		log.Warn().Err(err).Str("business_id", business.ID.String()).Msg("cache lookup failed, treating as miss")
		cached = nil
	}

	if cached != nil {
		log.Info().
			Str("business_id", business.ID.String()).
			Str("question_hash", cached.QuestionHash).
			Msg("cache hit")

		if err := s.cacheRepo.IncrementHit(ctx, cached.ID); err != nil {
			log.Warn().Err(err).Msg("failed to increment cache hit count")
		}
		if err := s.gate.Charge(ctx, business.ID, decision); err != nil {
			return nil, err
		}
		s.persistTurn(ctx, business.ID, req.SessionID, question, cached.Response)

		if onDelta != nil {
			if err := onDelta(cached.Response); err != nil {
				return nil, err
			}
		}
		return &ChatResult{Answer: cached.Response, FromCache: true}, nil
	}

	// 4. Cache miss: assemble the prompt from the full business context.
	log.Info().Str("business_id", business.ID.String()).Msg("cache miss, calling model")

	bc, err := s.loader.LoadForBusiness(ctx, *business)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load business context", err)
	}
	systemPrompt := prompt.BuildSystemPrompt(bc)

	// 5. Stream the model output.
	answer, streamErr := s.llmService.StreamResponse(ctx, systemPrompt, req.Messages, onDelta)
	if streamErr != nil {
		if answer == "" {
			// Nothing was delivered: no usage charged, no cache written.
			return nil, streamErr
		}

		// Partial answer already reached the client. Degrade: append the
		// fallback sentence, charge (the message was served), but never
		// cache a truncated answer.
		log.Warn().Err(streamErr).Str("business_id", business.ID.String()).Msg("stream dropped mid-answer, degrading")
		if onDelta != nil {
			if err := onDelta(FallbackSuffix); err != nil {
				return nil, err
			}
		}
		answer += FallbackSuffix

		if err := s.gate.Charge(ctx, business.ID, decision); err != nil {
			return nil, err
		}
		s.persistTurn(ctx, business.ID, req.SessionID, question, answer)

		return &ChatResult{Answer: answer, Degraded: true}, nil
	}

	// 6. Record the fresh answer for future identical questions.
	if err := s.cacheRepo.Upsert(ctx, business.ID, question, answer); err != nil {
		log.Warn().Err(err).Str("business_id", business.ID.String()).Msg("failed to write cache entry")
	}

	if err := s.gate.Charge(ctx, business.ID, decision); err != nil {
		return nil, err
	}

	s.persistTurn(ctx, business.ID, req.SessionID, question, answer)

	return &ChatResult{Answer: answer}, nil
}

// ProcessFreeChat runs the free-tier handoff: enforce the tier, gate,
// persist the user message, charge, and return the assembled prompt for
// the caller's own relay connection.
func (s *ChatService) ProcessFreeChat(ctx context.Context, req *FreeChatRequest) (*FreeChatResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperr.Validation("Business ID and message are required")
	}

	business, err := s.businessRepo.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	if plan := s.ownerPlan(ctx, business.UserID); plan != models.PlanFree {
		return nil, ErrNotFreeTier
	}

	decision, err := s.gate.Check(ctx, business.ID, business.UserID)
	if err != nil {
		return nil, err
	}

	bc, err := s.loader.LoadForBusiness(ctx, *business)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load business context", err)
	}
	systemPrompt := prompt.BuildSystemPrompt(bc)

	// The relay generates the answer out of band; only the user turn can
	// be persisted here, and nothing is cached.
	if req.SessionID != "" {
		s.persistUserMessage(ctx, business.ID, req.SessionID, req.Message)
	}

	if err := s.gate.Charge(ctx, business.ID, decision); err != nil {
		return nil, err
	}

	return &FreeChatResult{
		SystemPrompt: systemPrompt,
		ChatID:       fmt.Sprintf("%s-%s", req.BusinessID, req.SessionID),
		BusinessName: business.Name,
	}, nil
}

// History returns the ordered messages of a conversation, empty when the
// session has none yet.
func (s *ChatService) History(ctx context.Context, businessID uuid.UUID, sessionID string) ([]models.ChatMessage, error) {
	convo, err := s.conversationRepo.Find(ctx, businessID, sessionID)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load conversation", err)
	}
	return s.conversationRepo.GetMessages(ctx, convo.ID)
}

func (s *ChatService) ownerPlan(ctx context.Context, userID uuid.UUID) string {
	plan, err := s.planRepo.GetUserPlanName(ctx, userID)
	if err != nil || plan == "" {
		return models.PlanFree
	}
	return plan
}

// persistTurn appends both the user turn and the assistant turn.
// Persistence failures never fail an already-answered request.
func (s *ChatService) persistTurn(ctx context.Context, businessID uuid.UUID, sessionID, question, answer string) {
	if sessionID == "" {
		return
	}

	convo, err := s.conversationRepo.FindOrCreate(ctx, businessID, sessionID)
	if err != nil {
		log.Warn().Err(err).Str("business_id", businessID.String()).Msg("failed to find or create conversation")
		return
	}

	if err := s.conversationRepo.AppendMessage(ctx, convo.ID, models.RoleUser, question); err != nil {
		log.Warn().Err(err).Msg("failed to persist user message")
	}
	if err := s.conversationRepo.AppendMessage(ctx, convo.ID, models.RoleAssistant, answer); err != nil {
		log.Warn().Err(err).Msg("failed to persist assistant message")
	}
}

func (s *ChatService) persistUserMessage(ctx context.Context, businessID uuid.UUID, sessionID, content string) {
	convo, err := s.conversationRepo.FindOrCreate(ctx, businessID, sessionID)
	if err != nil {
		log.Warn().Err(err).Str("business_id", businessID.String()).Msg("failed to find or create conversation")
		return
	}
	if err := s.conversationRepo.AppendMessage(ctx, convo.ID, models.RoleUser, content); err != nil {
		log.Warn().Err(err).Msg("failed to persist user message")
	}
}

func validateMessages(messages []llm.Message) (string, error) {
	if len(messages) == 0 {
		return "", apperr.Validation("No user message found")
	}

	last := messages[len(messages)-1]
	if last.Role != models.RoleUser || strings.TrimSpace(last.Content) == "" {
		return "", apperr.Validation("No user message found")
	}

	return last.Content, nil
}
