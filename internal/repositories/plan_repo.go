package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xeoai/chatbot-saas-be/internal/models"
)

// PlanRepo resolves billing tiers. It satisfies metering.PlanStore.
type PlanRepo interface {
	GetUserPlanName(ctx context.Context, userID uuid.UUID) (string, error)
	GetMessageLimit(ctx context.Context, planName string) (int, error)
	GetPlan(ctx context.Context, planName string) (*models.Plan, error)
}

type planRepo struct {
	db *gorm.DB
}

func NewPlanRepo(db *gorm.DB) PlanRepo {
	return &planRepo{db: db}
}

func (r *planRepo) GetUserPlanName(ctx context.Context, userID uuid.UUID) (string, error) {
	var up models.UserPlan
	err := r.db.WithContext(ctx).First(&up, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No plan row means free tier.
		return models.PlanFree, nil
	}
	if err != nil {
		return "", err
	}
	return up.Plan, nil
}

func (r *planRepo) GetMessageLimit(ctx context.Context, planName string) (int, error) {
	plan, err := r.GetPlan(ctx, planName)
	if err != nil {
		return 0, err
	}
	return plan.MessageLimit, nil
}

func (r *planRepo) GetPlan(ctx context.Context, planName string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.WithContext(ctx).First(&plan, "name = ?", planName).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}
