package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xeoai/chatbot-saas-be/internal/core/apperr"
	"github.com/xeoai/chatbot-saas-be/internal/models"
)

// ConversationRepo persists chat history keyed by (business, session).
type ConversationRepo interface {
	// FindOrCreate returns the conversation for the pair, creating it on
	// the first message of a session.
	FindOrCreate(ctx context.Context, businessID uuid.UUID, sessionID string) (*models.ChatConversation, error)
	AppendMessage(ctx context.Context, conversationID uuid.UUID, role, content string) error
	GetMessages(ctx context.Context, conversationID uuid.UUID) ([]models.ChatMessage, error)
	// Find returns apperr.NotFound when the session has no conversation yet.
	Find(ctx context.Context, businessID uuid.UUID, sessionID string) (*models.ChatConversation, error)
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepo{db: db}
}

// FindOrCreate inserts with ON CONFLICT DO NOTHING against the unique
// (business_id, session_id) index, then re-reads. Two concurrent first
// messages of a session both land on the same conversation row.
func (r *conversationRepo) FindOrCreate(ctx context.Context, businessID uuid.UUID, sessionID string) (*models.ChatConversation, error) {
	row := models.ChatConversation{
		BusinessID: businessID,
		SessionID:  sessionID,
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "business_id"}, {Name: "session_id"}},
		DoNothing: true,
	}).Create(&row).Error; err != nil {
		return nil, err
	}

	return r.Find(ctx, businessID, sessionID)
}

func (r *conversationRepo) Find(ctx context.Context, businessID uuid.UUID, sessionID string) (*models.ChatConversation, error) {
	var convo models.ChatConversation
	err := r.db.WithContext(ctx).
		First(&convo, "business_id = ? AND session_id = ?", businessID, sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Conversation not found")
	}
	if err != nil {
		return nil, err
	}
	return &convo, nil
}

func (r *conversationRepo) AppendMessage(ctx context.Context, conversationID uuid.UUID, role, content string) error {
	msg := models.ChatMessage{
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	}
	return r.db.WithContext(ctx).Create(&msg).Error
}

func (r *conversationRepo) GetMessages(ctx context.Context, conversationID uuid.UUID) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
