package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business is the tenant root. Every other per-tenant row hangs off it.
type Business struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	ContactEmail string    `gorm:"type:text" json:"contact_email,omitempty"`
	ContactPhone string    `gorm:"type:text" json:"contact_phone,omitempty"`
	Address      string    `gorm:"type:text" json:"address,omitempty"`
	Website      string    `gorm:"type:text" json:"website,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Business) TableName() string {
	return "businesses"
}

func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BusinessHours holds one row per weekday per business.
type BusinessHours struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_hours_business_day,priority:1" json:"business_id"`
	DayOfWeek  int       `gorm:"not null;uniqueIndex:ux_hours_business_day,priority:2" json:"day_of_week"` // 0=Sunday .. 6=Saturday
	OpenTime   string    `gorm:"type:text" json:"open_time,omitempty"`
	CloseTime  string    `gorm:"type:text" json:"close_time,omitempty"`
	IsClosed   bool      `gorm:"default:false" json:"is_closed"`

	Business Business `gorm:"foreignKey:BusinessID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BusinessHours) TableName() string {
	return "business_hours"
}

func (h *BusinessHours) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// BusinessService is an offered service or product. Price is free text
// ("$25", "from 100€/h"), rendered verbatim in the prompt.
type BusinessService struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BusinessID  uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Price       string    `gorm:"type:text" json:"price,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Business Business `gorm:"foreignKey:BusinessID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BusinessService) TableName() string {
	return "business_services"
}

func (s *BusinessService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// BusinessFAQ is a question/answer pair, used both as prompt training data
// and as widget quick-suggestions.
type BusinessFAQ struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	Question   string    `gorm:"type:text;not null" json:"question"`
	Answer     string    `gorm:"type:text;not null" json:"answer"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Business Business `gorm:"foreignKey:BusinessID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BusinessFAQ) TableName() string {
	return "business_faqs"
}

func (f *BusinessFAQ) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// CustomInstructions is the single free-text behavioral override per
// business, injected verbatim at the end of the prompt.
type CustomInstructions struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BusinessID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"business_id"`
	Instructions string    `gorm:"type:text" json:"instructions"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Business Business `gorm:"foreignKey:BusinessID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CustomInstructions) TableName() string {
	return "business_custom_instructions"
}

func (ci *CustomInstructions) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}
