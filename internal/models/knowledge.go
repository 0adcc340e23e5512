package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Knowledge item types
const (
	KnowledgeTypeText    = "text"
	KnowledgeTypeWebsite = "website"
	KnowledgeTypeFile    = "file"
)

// KnowledgeItem is a free-form knowledge base entry. Website items carry a
// URL whose content is fetched and refreshed by the knowledge scheduler;
// file items carry extracted text (upload itself lives in the dashboard).
type KnowledgeItem struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BusinessID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"business_id"`
	Type          string         `gorm:"type:text;not null;default:'text'" json:"type"`
	Title         string         `gorm:"type:text;not null" json:"title"`
	Content       string         `gorm:"type:text" json:"content,omitempty"`
	URL           string         `gorm:"type:text" json:"url,omitempty"`
	FileName      string         `gorm:"type:text" json:"file_name,omitempty"`
	Tags          pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`
	LastFetchedAt *time.Time     `json:"last_fetched_at,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	Business Business `gorm:"foreignKey:BusinessID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (KnowledgeItem) TableName() string {
	return "knowledge_base"
}

func (k *KnowledgeItem) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}
