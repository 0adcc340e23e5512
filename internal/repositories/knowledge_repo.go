package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xeoai/chatbot-saas-be/internal/models"
)

// KnowledgeRepo serves the website-knowledge refresh job.
type KnowledgeRepo interface {
	ListWebsiteItems(ctx context.Context) ([]models.KnowledgeItem, error)
	UpdateFetchedContent(ctx context.Context, id uuid.UUID, content string, fetchedAt time.Time) error
}

type knowledgeRepo struct {
	db *gorm.DB
}

func NewKnowledgeRepo(db *gorm.DB) KnowledgeRepo {
	return &knowledgeRepo{db: db}
}

func (r *knowledgeRepo) ListWebsiteItems(ctx context.Context) ([]models.KnowledgeItem, error) {
	var items []models.KnowledgeItem
	err := r.db.WithContext(ctx).
		Where("type = ? AND url <> ''", models.KnowledgeTypeWebsite).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *knowledgeRepo) UpdateFetchedContent(ctx context.Context, id uuid.UUID, content string, fetchedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.KnowledgeItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":         content,
			"last_fetched_at": fetchedAt,
		}).Error
}
