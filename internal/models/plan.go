package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan names
const (
	PlanFree     = "free"
	PlanPro      = "pro"
	PlanBusiness = "business"
)

// Plan is a billing tier with its monthly message cap.
type Plan struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name          string    `gorm:"type:text;not null;uniqueIndex" json:"name"`
	MessageLimit  int       `gorm:"not null" json:"message_limit"`
	MaxBusinesses int       `gorm:"not null" json:"max_businesses"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Plan) TableName() string {
	return "plans"
}

func (p *Plan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// UserPlan maps a user to their current plan name. Absence means free.
type UserPlan struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Plan      string    `gorm:"type:text;not null;default:'free'" json:"plan"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserPlan) TableName() string {
	return "user_plans"
}

func (up *UserPlan) BeforeCreate(tx *gorm.DB) error {
	if up.ID == uuid.Nil {
		up.ID = uuid.New()
	}
	return nil
}

// UsageTracking is the per-business monthly message counter. A missing row
// for a month means zero usage; the counter only ever increments within a
// month.
type UsageTracking struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BusinessID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_usage_business_month,priority:1" json:"business_id"`
	MonthYear    string    `gorm:"type:text;not null;uniqueIndex:ux_usage_business_month,priority:2" json:"month_year"` // "YYYY-MM"
	MessageCount int       `gorm:"not null;default:0" json:"message_count"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Business Business `gorm:"foreignKey:BusinessID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UsageTracking) TableName() string {
	return "usage_tracking"
}

func (u *UsageTracking) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
