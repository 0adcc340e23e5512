package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CachedResponse stores one previously generated answer per
// (business, question hash). HitCount increments every time the cache
// serves the row instead of the model. Rows live forever; there is no
// eviction policy.
type CachedResponse struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BusinessID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_cache_business_hash,priority:1" json:"business_id"`
	QuestionHash string    `gorm:"type:text;not null;uniqueIndex:ux_cache_business_hash,priority:2" json:"question_hash"`
	Question     string    `gorm:"type:text;not null" json:"question"`
	Response     string    `gorm:"type:text;not null" json:"response"`
	HitCount     int       `gorm:"not null;default:0" json:"hit_count"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Business Business `gorm:"foreignKey:BusinessID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CachedResponse) TableName() string {
	return "cached_responses"
}

func (c *CachedResponse) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
