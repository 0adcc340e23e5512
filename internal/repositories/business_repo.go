package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xeoai/chatbot-saas-be/internal/core/apperr"
	"github.com/xeoai/chatbot-saas-be/internal/models"
)

// BusinessRepo reads the per-tenant knowledge tables. It satisfies
// prompt.ContextStore.
type BusinessRepo interface {
	GetBusiness(ctx context.Context, businessID uuid.UUID) (*models.Business, error)
	GetHours(ctx context.Context, businessID uuid.UUID) ([]models.BusinessHours, error)
	GetServices(ctx context.Context, businessID uuid.UUID) ([]models.BusinessService, error)
	GetFAQs(ctx context.Context, businessID uuid.UUID) ([]models.BusinessFAQ, error)
	GetKnowledge(ctx context.Context, businessID uuid.UUID) ([]models.KnowledgeItem, error)
	GetInstructions(ctx context.Context, businessID uuid.UUID) (string, error)
}

type businessRepo struct {
	db *gorm.DB
}

func NewBusinessRepo(db *gorm.DB) BusinessRepo {
	return &businessRepo{db: db}
}

func (r *businessRepo) GetBusiness(ctx context.Context, businessID uuid.UUID) (*models.Business, error) {
	var business models.Business
	err := r.db.WithContext(ctx).First(&business, "id = ?", businessID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Business not found")
	}
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepo) GetHours(ctx context.Context, businessID uuid.UUID) ([]models.BusinessHours, error) {
	var hours []models.BusinessHours
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("day_of_week ASC").
		Find(&hours).Error
	return hours, err
}

func (r *businessRepo) GetServices(ctx context.Context, businessID uuid.UUID) ([]models.BusinessService, error) {
	var services []models.BusinessService
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at ASC").
		Find(&services).Error
	return services, err
}

func (r *businessRepo) GetFAQs(ctx context.Context, businessID uuid.UUID) ([]models.BusinessFAQ, error) {
	var faqs []models.BusinessFAQ
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at ASC").
		Find(&faqs).Error
	return faqs, err
}

func (r *businessRepo) GetKnowledge(ctx context.Context, businessID uuid.UUID) ([]models.KnowledgeItem, error) {
	var items []models.KnowledgeItem
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *businessRepo) GetInstructions(ctx context.Context, businessID uuid.UUID) (string, error) {
	var ci models.CustomInstructions
	err := r.db.WithContext(ctx).First(&ci, "business_id = ?", businessID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Absence is valid, not an error.
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return ci.Instructions, nil
}
