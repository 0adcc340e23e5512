package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WidgetSettings holds the embed widget styling for a business as a
// flexible JSONB blob (colors, position, greeting text). The dashboard
// writes it; the embed loader reads it through the widget endpoint.
type WidgetSettings struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BusinessID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"business_id"`
	Config     datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"config"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	Business Business `gorm:"foreignKey:BusinessID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (WidgetSettings) TableName() string {
	return "widget_settings"
}

func (w *WidgetSettings) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// ConfigMap decodes the JSONB config blob.
func (w *WidgetSettings) ConfigMap() (map[string]any, error) {
	cfg := map[string]any{}
	if len(w.Config) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(w.Config, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
