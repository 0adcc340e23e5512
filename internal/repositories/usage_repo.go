package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xeoai/chatbot-saas-be/internal/models"
)

// UsageRepo reads and increments the monthly message counters. It
// satisfies metering.UsageStore.
type UsageRepo interface {
	GetMessageCount(ctx context.Context, businessID uuid.UUID, monthYear string) (int, error)
	IncrementMessageCount(ctx context.Context, businessID uuid.UUID, monthYear string) error
}

type usageRepo struct {
	db *gorm.DB
}

func NewUsageRepo(db *gorm.DB) UsageRepo {
	return &usageRepo{db: db}
}

func (r *usageRepo) GetMessageCount(ctx context.Context, businessID uuid.UUID, monthYear string) (int, error) {
	var usage models.UsageTracking
	err := r.db.WithContext(ctx).
		First(&usage, "business_id = ? AND month_year = ?", businessID, monthYear).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Absence of a row means zero usage for the month.
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return usage.MessageCount, nil
}

// IncrementMessageCount is an atomic insert-or-increment on
// (business_id, month_year). Concurrent requests for the same business and
// month must not lose increments, so the increment happens in the
// database, never as read-modify-write in Go.
func (r *usageRepo) IncrementMessageCount(ctx context.Context, businessID uuid.UUID, monthYear string) error {
	row := models.UsageTracking{
		BusinessID:   businessID,
		MonthYear:    monthYear,
		MessageCount: 1,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "business_id"}, {Name: "month_year"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"message_count": gorm.Expr("usage_tracking.message_count + 1"),
			"updated_at":    gorm.Expr("now()"),
		}),
	}).Create(&row).Error
}
