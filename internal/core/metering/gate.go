// Package metering enforces the monthly per-business message quota. The
// gate runs before any cache lookup or model call: cache hits consume
// quota too, because the counter tracks messages served, not compute
// spent.
package metering

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/xeoai/chatbot-saas-be/internal/core/apperr"
	"github.com/xeoai/chatbot-saas-be/internal/models"
)

// LimitReachedMessage is shown to end users when the quota is exhausted.
const LimitReachedMessage = "Monthly message limit reached. Please upgrade your plan to continue chatting."

// UsageStore reads and atomically increments the monthly counters.
type UsageStore interface {
	// GetMessageCount returns 0 when no row exists for the month.
	GetMessageCount(ctx context.Context, businessID uuid.UUID, monthYear string) (int, error)
	// IncrementMessageCount is an atomic insert-or-increment upsert on
	// (business_id, month_year); concurrent calls must all be reflected.
	IncrementMessageCount(ctx context.Context, businessID uuid.UUID, monthYear string) error
}

// PlanStore resolves a user's plan and a plan's message limit.
type PlanStore interface {
	// GetUserPlanName returns "" when the user has no plan row.
	GetUserPlanName(ctx context.Context, userID uuid.UUID) (string, error)
	// GetMessageLimit returns the plan's monthly cap.
	GetMessageLimit(ctx context.Context, planName string) (int, error)
}

// Decision is the outcome of a passed gate check, carried through the
// pipeline so the eventual charge reuses the same month key.
type Decision struct {
	MonthYear string
	Count     int
	Limit     int
	Plan      string
}

type Gate struct {
	usage     UsageStore
	plans     PlanStore
	clock     Clock
	freeLimit int
}

func NewGate(usage UsageStore, plans PlanStore, clock Clock, freeLimit int) *Gate {
	return &Gate{
		usage:     usage,
		plans:     plans,
		clock:     clock,
		freeLimit: freeLimit,
	}
}

// Check resolves the effective limit via owner plan -> plans table,
// defaulting to the free tier when either lookup fails, and rejects with
// LimitReached when the current count has reached it. Nothing is charged
// here.
func (g *Gate) Check(ctx context.Context, businessID, ownerID uuid.UUID) (*Decision, error) {
	planName, err := g.plans.GetUserPlanName(ctx, ownerID)
	if err != nil || planName == "" {
		if err != nil {
			log.Warn().Err(err).Str("user_id", ownerID.String()).Msg("plan lookup failed, assuming free tier")
		}
		planName = models.PlanFree
	}

	limit, err := g.plans.GetMessageLimit(ctx, planName)
	if err != nil || limit <= 0 {
		if err != nil {
			log.Warn().Err(err).Str("plan", planName).Msg("message limit lookup failed, using free limit")
		}
		limit = g.freeLimit
	}

	monthYear := MonthKey(g.clock.Now())

	count, err := g.usage.GetMessageCount(ctx, businessID, monthYear)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to read usage", err)
	}

	if count >= limit {
		log.Info().
			Str("business_id", businessID.String()).
			Int("count", count).
			Int("limit", limit).
			Msg("message limit reached")
		return nil, apperr.LimitReached(LimitReachedMessage)
	}

	return &Decision{
		MonthYear: monthYear,
		Count:     count,
		Limit:     limit,
		Plan:      planName,
	}, nil
}

// Charge increments the counter for the decision's month. Called exactly
// once per accepted message, after the answer is served or about to be.
func (g *Gate) Charge(ctx context.Context, businessID uuid.UUID, d *Decision) error {
	if err := g.usage.IncrementMessageCount(ctx, businessID, d.MonthYear); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to charge usage", err)
	}
	return nil
}
