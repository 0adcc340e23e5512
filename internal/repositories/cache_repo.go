package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xeoai/chatbot-saas-be/internal/core/qcache"
	"github.com/xeoai/chatbot-saas-be/internal/models"
)

// candidateLimit bounds how many cached rows per business the fuzzy match
// scans on each request.
const candidateLimit = 50

// CacheRepo is the per-business response cache.
type CacheRepo interface {
	// FindMatch returns nil when no cached entry matches the question.
	FindMatch(ctx context.Context, businessID uuid.UUID, question string) (*models.CachedResponse, error)
	IncrementHit(ctx context.Context, id uuid.UUID) error
	// Upsert writes the answer keyed by (business_id, question_hash). On
	// conflict the stored answer is overwritten and the hit count kept.
	Upsert(ctx context.Context, businessID uuid.UUID, question, response string) error
	// TopByHits lists the most reused answers for a business.
	TopByHits(ctx context.Context, businessID uuid.UUID, limit int) ([]models.CachedResponse, error)
}

type cacheRepo struct {
	db *gorm.DB
}

func NewCacheRepo(db *gorm.DB) CacheRepo {
	return &cacheRepo{db: db}
}

func (r *cacheRepo) FindMatch(ctx context.Context, businessID uuid.UUID, question string) (*models.CachedResponse, error) {
	hash := qcache.Hash(question)

	// Exact hash match first, a single indexed lookup.
	var exact models.CachedResponse
	err := r.db.WithContext(ctx).
		First(&exact, "business_id = ? AND question_hash = ?", businessID, hash).Error
	if err == nil {
		return &exact, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Fall back to the lexical similarity scan over recent entries.
	var candidates []models.CachedResponse
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Limit(candidateLimit).
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	for i := range candidates {
		if qcache.IsSimilar(candidates[i].Question, question) {
			return &candidates[i], nil
		}
	}

	return nil, nil
}

func (r *cacheRepo) IncrementHit(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.CachedResponse{}).
		Where("id = ?", id).
		UpdateColumn("hit_count", gorm.Expr("hit_count + 1")).Error
}

func (r *cacheRepo) Upsert(ctx context.Context, businessID uuid.UUID, question, response string) error {
	row := models.CachedResponse{
		BusinessID:   businessID,
		QuestionHash: qcache.Hash(question),
		Question:     question,
		Response:     response,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "business_id"}, {Name: "question_hash"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"question":   question,
			"response":   response,
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(&row).Error
}

func (r *cacheRepo) TopByHits(ctx context.Context, businessID uuid.UUID, limit int) ([]models.CachedResponse, error) {
	var rows []models.CachedResponse
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("hit_count DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
