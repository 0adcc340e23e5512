package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xeoai/chatbot-saas-be/internal/models"
)

// WidgetRepo reads embed-widget styling for the script loader.
type WidgetRepo interface {
	// GetSettings returns nil when a business has no styling row yet; the
	// widget falls back to its built-in defaults.
	GetSettings(ctx context.Context, businessID uuid.UUID) (*models.WidgetSettings, error)
}

type widgetRepo struct {
	db *gorm.DB
}

func NewWidgetRepo(db *gorm.DB) WidgetRepo {
	return &widgetRepo{db: db}
}

func (r *widgetRepo) GetSettings(ctx context.Context, businessID uuid.UUID) (*models.WidgetSettings, error) {
	var settings models.WidgetSettings
	err := r.db.WithContext(ctx).First(&settings, "business_id = ?", businessID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
