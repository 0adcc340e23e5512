package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeoai/chatbot-saas-be/internal/core/apperr"
	"github.com/xeoai/chatbot-saas-be/internal/core/llm"
	"github.com/xeoai/chatbot-saas-be/internal/core/metering"
	"github.com/xeoai/chatbot-saas-be/internal/core/qcache"
	"github.com/xeoai/chatbot-saas-be/internal/models"
)

type fakeBusinessRepo struct {
	business *models.Business
	faqs     []models.BusinessFAQ
	hours    []models.BusinessHours
}

func (f *fakeBusinessRepo) GetBusiness(_ context.Context, id uuid.UUID) (*models.Business, error) {
	if f.business == nil || f.business.ID != id {
		return nil, apperr.NotFound("Business not found")
	}
	return f.business, nil
}

func (f *fakeBusinessRepo) GetHours(context.Context, uuid.UUID) ([]models.BusinessHours, error) {
	return f.hours, nil
}

func (f *fakeBusinessRepo) GetServices(context.Context, uuid.UUID) ([]models.BusinessService, error) {
	return nil, nil
}

func (f *fakeBusinessRepo) GetFAQs(context.Context, uuid.UUID) ([]models.BusinessFAQ, error) {
	return f.faqs, nil
}

func (f *fakeBusinessRepo) GetKnowledge(context.Context, uuid.UUID) ([]models.KnowledgeItem, error) {
	return nil, nil
}

func (f *fakeBusinessRepo) GetInstructions(context.Context, uuid.UUID) (string, error) {
	return "", nil
}

type fakePlanRepo struct {
	plans  map[uuid.UUID]string
	limits map[string]int
}

func (f *fakePlanRepo) GetUserPlanName(_ context.Context, userID uuid.UUID) (string, error) {
	return f.plans[userID], nil
}

func (f *fakePlanRepo) GetMessageLimit(_ context.Context, planName string) (int, error) {
	return f.limits[planName], nil
}

func (f *fakePlanRepo) GetPlan(_ context.Context, planName string) (*models.Plan, error) {
	limit, ok := f.limits[planName]
	if !ok {
		return nil, apperr.NotFound("Plan not found")
	}
	return &models.Plan{Name: planName, MessageLimit: limit}, nil
}

type fakeCacheRepo struct {
	entries []models.CachedResponse
	hits    map[uuid.UUID]int
	upserts int
	findErr error
}

func (f *fakeCacheRepo) FindMatch(_ context.Context, businessID uuid.UUID, question string) (*models.CachedResponse, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	hash := qcache.Hash(question)
	for i := range f.entries {
		e := &f.entries[i]
		if e.BusinessID != businessID {
			continue
		}
		if e.QuestionHash == hash || qcache.IsSimilar(question, e.Question) {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeCacheRepo) IncrementHit(_ context.Context, id uuid.UUID) error {
	if f.hits == nil {
		f.hits = map[uuid.UUID]int{}
	}
	f.hits[id]++
	return nil
}

func (f *fakeCacheRepo) Upsert(_ context.Context, businessID uuid.UUID, question, response string) error {
	f.upserts++
	f.entries = append(f.entries, models.CachedResponse{
		ID:           uuid.New(),
		BusinessID:   businessID,
		Question:     question,
		QuestionHash: qcache.Hash(question),
		Response:     response,
	})
	return nil
}

func (f *fakeCacheRepo) TopByHits(_ context.Context, businessID uuid.UUID, limit int) ([]models.CachedResponse, error) {
	return f.entries, nil
}

type fakeConversationRepo struct {
	convos   map[string]*models.ChatConversation
	messages map[uuid.UUID][]models.ChatMessage
	findErr  error
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		convos:   map[string]*models.ChatConversation{},
		messages: map[uuid.UUID][]models.ChatMessage{},
	}
}

func (f *fakeConversationRepo) key(businessID uuid.UUID, sessionID string) string {
	return businessID.String() + "/" + sessionID
}

func (f *fakeConversationRepo) FindOrCreate(_ context.Context, businessID uuid.UUID, sessionID string) (*models.ChatConversation, error) {
	k := f.key(businessID, sessionID)
	if c, ok := f.convos[k]; ok {
		return c, nil
	}
	c := &models.ChatConversation{ID: uuid.New(), BusinessID: businessID, SessionID: sessionID}
	f.convos[k] = c
	return c, nil
}

func (f *fakeConversationRepo) Find(_ context.Context, businessID uuid.UUID, sessionID string) (*models.ChatConversation, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if c, ok := f.convos[f.key(businessID, sessionID)]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("Conversation not found")
}

func (f *fakeConversationRepo) AppendMessage(_ context.Context, conversationID uuid.UUID, role, content string) error {
	f.messages[conversationID] = append(f.messages[conversationID], models.ChatMessage{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	})
	return nil
}

func (f *fakeConversationRepo) GetMessages(_ context.Context, conversationID uuid.UUID) ([]models.ChatMessage, error) {
	return f.messages[conversationID], nil
}

type fakeUsageStore struct {
	counts map[string]int
}

func (f *fakeUsageStore) usageKey(businessID uuid.UUID, monthYear string) string {
	return businessID.String() + "/" + monthYear
}

func (f *fakeUsageStore) GetMessageCount(_ context.Context, businessID uuid.UUID, monthYear string) (int, error) {
	return f.counts[f.usageKey(businessID, monthYear)], nil
}

func (f *fakeUsageStore) IncrementMessageCount(_ context.Context, businessID uuid.UUID, monthYear string) error {
	if f.counts == nil {
		f.counts = map[string]int{}
	}
	f.counts[f.usageKey(businessID, monthYear)]++
	return nil
}

func (f *fakeUsageStore) total() int {
	n := 0
	for _, c := range f.counts {
		n += c
	}
	return n
}

type fakeProvider struct {
	answer string
	chunks []string
	err    error
	calls  int
}

func (f *fakeProvider) GenerateResponse(_ context.Context, _ string, _ []llm.Message) (string, error) {
	f.calls++
	return f.answer, f.err
}

func (f *fakeProvider) StreamResponse(_ context.Context, _ string, _ []llm.Message, onDelta llm.DeltaFunc) (string, error) {
	f.calls++
	chunks := f.chunks
	if chunks == nil && f.answer != "" {
		chunks = []string{f.answer}
	}
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(c)
		if onDelta != nil {
			if err := onDelta(c); err != nil {
				return b.String(), err
			}
		}
	}
	return b.String(), f.err
}

func (f *fakeProvider) GetProviderName() string { return "fake" }

type fixture struct {
	svc      *ChatService
	business *models.Business
	plans    *fakePlanRepo
	cache    *fakeCacheRepo
	convos   *fakeConversationRepo
	usage    *fakeUsageStore
	provider *fakeProvider
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newFixture(t *testing.T) *fixture {
	t.Helper()

	business := &models.Business{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Name:   "Acme Plumbing",
	}
	plans := &fakePlanRepo{
		plans:  map[uuid.UUID]string{business.UserID: models.PlanFree},
		limits: map[string]int{models.PlanFree: 100, models.PlanPro: 2000},
	}
	cache := &fakeCacheRepo{}
	convos := newFakeConversationRepo()
	usage := &fakeUsageStore{counts: map[string]int{}}
	provider := &fakeProvider{answer: "We open at 9am on weekdays."}

	clock := fixedClock{t: time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)}
	gate := metering.NewGate(usage, plans, clock, 100)

	svc := NewChatService(
		&fakeBusinessRepo{business: business},
		plans,
		cache,
		convos,
		gate,
		llm.NewService(provider),
	)

	return &fixture{
		svc:      svc,
		business: business,
		plans:    plans,
		cache:    cache,
		convos:   convos,
		usage:    usage,
		provider: provider,
	}
}

func userTurn(businessID uuid.UUID, question string) *ChatRequest {
	return &ChatRequest{
		BusinessID: businessID,
		SessionID:  "sess-1",
		Messages:   []llm.Message{{Role: "user", Content: question}},
	}
}

func TestProcessChatFreshAnswer(t *testing.T) {
	f := newFixture(t)

	var streamed strings.Builder
	res, err := f.svc.ProcessChat(context.Background(), userTurn(f.business.ID, "What time do you open?"), func(delta string) error {
		streamed.WriteString(delta)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "We open at 9am on weekdays.", res.Answer)
	assert.False(t, res.FromCache)
	assert.False(t, res.Degraded)
	assert.Equal(t, res.Answer, streamed.String())

	assert.Equal(t, 1, f.provider.calls)
	assert.Equal(t, 1, f.cache.upserts, "fresh answer should be cached")
	assert.Equal(t, 1, f.usage.total(), "exactly one message charged")

	convo, err := f.convos.Find(context.Background(), f.business.ID, "sess-1")
	require.NoError(t, err)
	msgs := f.convos.messages[convo.ID]
	require.Len(t, msgs, 2)
	assert.Equal(t, models.RoleUser, msgs[0].Role)
	assert.Equal(t, "What time do you open?", msgs[0].Content)
	assert.Equal(t, models.RoleAssistant, msgs[1].Role)
	assert.Equal(t, res.Answer, msgs[1].Content)
}

func TestProcessChatCacheHitSkipsModel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ProcessChat(ctx, userTurn(f.business.ID, "What time do you open?"), nil)
	require.NoError(t, err)
	require.Equal(t, 1, f.provider.calls)

	// Same question, different punctuation: normalization makes it a hit.
	var streamed strings.Builder
	res, err := f.svc.ProcessChat(ctx, userTurn(f.business.ID, "what time do you OPEN"), func(delta string) error {
		streamed.WriteString(delta)
		return nil
	})
	require.NoError(t, err)

	assert.True(t, res.FromCache)
	assert.Equal(t, "We open at 9am on weekdays.", res.Answer)
	assert.Equal(t, res.Answer, streamed.String(), "cached answer still streamed to the client")
	assert.Equal(t, 1, f.provider.calls, "model must not be called on a hit")
	assert.Equal(t, 2, f.usage.total(), "cache hits are charged too")
	assert.Equal(t, 1, f.cache.hits[f.cache.entries[0].ID])
}

func TestProcessChatLimitReached(t *testing.T) {
	f := newFixture(t)
	businessKey := f.business.ID.String() + "/2025-03"
	f.usage.counts[businessKey] = 100

	_, err := f.svc.ProcessChat(context.Background(), userTurn(f.business.ID, "Hello?"), nil)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindLimitReached))
	assert.Equal(t, 0, f.provider.calls, "no model call past the limit")
	assert.Equal(t, 100, f.usage.counts[businessKey], "nothing charged past the limit")
}

func TestProcessChatUpstreamFailureNothingDelivered(t *testing.T) {
	f := newFixture(t)
	f.provider.chunks = []string{}
	f.provider.answer = ""
	f.provider.err = apperr.Wrap(apperr.KindUpstream, "model request failed", errors.New("boom"))

	_, err := f.svc.ProcessChat(context.Background(), userTurn(f.business.ID, "Hello?"), nil)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindUpstream))
	assert.Equal(t, 0, f.usage.total(), "failed answers are never charged")
	assert.Equal(t, 0, f.cache.upserts)
	assert.Empty(t, f.convos.convos)
}

func TestProcessChatMidStreamFailureDegrades(t *testing.T) {
	f := newFixture(t)
	f.provider.chunks = []string{"We open at ", "9am"}
	f.provider.answer = ""
	f.provider.err = apperr.Wrap(apperr.KindUpstream, "relay connection dropped mid-stream", errors.New("eof"))

	var streamed strings.Builder
	res, err := f.svc.ProcessChat(context.Background(), userTurn(f.business.ID, "When do you open?"), func(delta string) error {
		streamed.WriteString(delta)
		return nil
	})
	require.NoError(t, err)

	assert.True(t, res.Degraded)
	assert.Equal(t, "We open at 9am"+FallbackSuffix, res.Answer)
	assert.Equal(t, res.Answer, streamed.String())
	assert.Equal(t, 1, f.usage.total(), "a delivered partial answer is charged")
	assert.Equal(t, 0, f.cache.upserts, "truncated answers are never cached")
}

func TestProcessChatValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		messages []llm.Message
	}{
		{"empty history", nil},
		{"last message not from user", []llm.Message{{Role: "assistant", Content: "hi"}}},
		{"blank user message", []llm.Message{{Role: "user", Content: "   "}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.ProcessChat(ctx, &ChatRequest{BusinessID: f.business.ID, Messages: tc.messages}, nil)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindValidation))
		})
	}
}

func TestProcessChatUnknownBusiness(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ProcessChat(context.Background(), userTurn(uuid.New(), "Hello?"), nil)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, 0, f.usage.total())
}

func TestProcessChatCacheLookupFailureFallsThrough(t *testing.T) {
	f := newFixture(t)
	f.cache.findErr = errors.New("connection refused")

	res, err := f.svc.ProcessChat(context.Background(), userTurn(f.business.ID, "Hello?"), nil)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Equal(t, 1, f.provider.calls, "a cache outage degrades to a model call")
}

func TestProcessFreeChat(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.ProcessFreeChat(context.Background(), &FreeChatRequest{
		BusinessID: f.business.ID,
		SessionID:  "sess-9",
		Message:    "Do you do emergency callouts?",
	})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("%s-sess-9", f.business.ID), res.ChatID)
	assert.Equal(t, "Acme Plumbing", res.BusinessName)
	assert.Contains(t, res.SystemPrompt, "Acme Plumbing")
	assert.Equal(t, 1, f.usage.total(), "handoff counts against the quota")
	assert.Equal(t, 0, f.provider.calls, "the relay generates the answer, not us")

	convo, err := f.convos.Find(context.Background(), f.business.ID, "sess-9")
	require.NoError(t, err)
	msgs := f.convos.messages[convo.ID]
	require.Len(t, msgs, 1)
	assert.Equal(t, models.RoleUser, msgs[0].Role)
}

func TestProcessFreeChatRejectsPaidPlan(t *testing.T) {
	f := newFixture(t)
	f.plans.plans[f.business.UserID] = models.PlanPro

	_, err := f.svc.ProcessFreeChat(context.Background(), &FreeChatRequest{
		BusinessID: f.business.ID,
		SessionID:  "sess-1",
		Message:    "Hello",
	})
	require.ErrorIs(t, err, ErrNotFreeTier)
	assert.Equal(t, 0, f.usage.total())
}

func TestProcessFreeChatLimitReached(t *testing.T) {
	f := newFixture(t)
	f.usage.counts[f.business.ID.String()+"/2025-03"] = 100

	_, err := f.svc.ProcessFreeChat(context.Background(), &FreeChatRequest{
		BusinessID: f.business.ID,
		SessionID:  "sess-1",
		Message:    "Hello",
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindLimitReached))
}

func TestHistoryEmptySession(t *testing.T) {
	f := newFixture(t)

	msgs, err := f.svc.History(context.Background(), f.business.ID, "never-chatted")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestHistoryStorageFailurePropagates(t *testing.T) {
	f := newFixture(t)
	f.convos.findErr = errors.New("connection refused")

	_, err := f.svc.History(context.Background(), f.business.ID, "sess-1")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInternal))
}

func TestResolveTier(t *testing.T) {
	f := newFixture(t)

	tier, err := f.svc.ResolveTier(context.Background(), f.business.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, tier)

	f.plans.plans[f.business.UserID] = models.PlanBusiness
	tier, err = f.svc.ResolveTier(context.Background(), f.business.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlanBusiness, tier)
}
