package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/xeoai/chatbot-saas-be/internal/core/apperr"
	"github.com/xeoai/chatbot-saas-be/internal/core/metering"
	"github.com/xeoai/chatbot-saas-be/internal/models"
	"github.com/xeoai/chatbot-saas-be/internal/repositories"
)

// UsageStats is the current month's consumption for a business.
type UsageStats struct {
	MonthYear    string `json:"month_year"`
	MessageCount int    `json:"message_count"`
	Limit        int    `json:"limit"`
	Remaining    int    `json:"remaining"`
	Plan         string `json:"plan"`
}

// WidgetInfo is everything the embeddable widget needs to boot.
type WidgetInfo struct {
	BusinessID   uuid.UUID      `json:"business_id"`
	BusinessName string         `json:"business_name"`
	Config       map[string]any `json:"config"`
	Suggestions  []string       `json:"suggestions"`
}

// BusinessService serves the dashboard-facing reads: usage, cache stats,
// widget boot data and the embeddable QR code.
type BusinessService struct {
	businessRepo  repositories.BusinessRepo
	planRepo      repositories.PlanRepo
	usageRepo     repositories.UsageRepo
	cacheRepo     repositories.CacheRepo
	widgetRepo    repositories.WidgetRepo
	clock         metering.Clock
	widgetBaseURL string
	freeLimit     int
}

func NewBusinessService(
	businessRepo repositories.BusinessRepo,
	planRepo repositories.PlanRepo,
	usageRepo repositories.UsageRepo,
	cacheRepo repositories.CacheRepo,
	widgetRepo repositories.WidgetRepo,
	clock metering.Clock,
	widgetBaseURL string,
	freeLimit int,
) *BusinessService {
	return &BusinessService{
		businessRepo:  businessRepo,
		planRepo:      planRepo,
		usageRepo:     usageRepo,
		cacheRepo:     cacheRepo,
		widgetRepo:    widgetRepo,
		clock:         clock,
		widgetBaseURL: widgetBaseURL,
		freeLimit:     freeLimit,
	}
}

// GetUsageStats reports the current month's count against the effective
// plan limit.
func (s *BusinessService) GetUsageStats(ctx context.Context, businessID uuid.UUID) (*UsageStats, error) {
	business, err := s.businessRepo.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	planName, err := s.planRepo.GetUserPlanName(ctx, business.UserID)
	if err != nil || planName == "" {
		planName = models.PlanFree
	}

	limit, err := s.planRepo.GetMessageLimit(ctx, planName)
	if err != nil || limit <= 0 {
		limit = s.freeLimit
	}

	monthYear := metering.MonthKey(s.clock.Now())
	count, err := s.usageRepo.GetMessageCount(ctx, businessID, monthYear)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to read usage", err)
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &UsageStats{
		MonthYear:    monthYear,
		MessageCount: count,
		Limit:        limit,
		Remaining:    remaining,
		Plan:         planName,
	}, nil
}

// GetCacheStats lists the most reused cached answers for a business.
func (s *BusinessService) GetCacheStats(ctx context.Context, businessID uuid.UUID, limit int) ([]models.CachedResponse, error) {
	if _, err := s.businessRepo.GetBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.cacheRepo.TopByHits(ctx, businessID, limit)
}

// GetWidgetInfo returns the widget boot payload: business name, saved
// widget config (empty map when none was saved) and FAQ-based question
// suggestions.
func (s *BusinessService) GetWidgetInfo(ctx context.Context, businessID uuid.UUID) (*WidgetInfo, error) {
	business, err := s.businessRepo.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	info := &WidgetInfo{
		BusinessID:   business.ID,
		BusinessName: business.Name,
		Config:       map[string]any{},
		Suggestions:  []string{},
	}

	settings, err := s.widgetRepo.GetSettings(ctx, businessID)
	if err == nil && settings != nil && len(settings.Config) > 0 {
		cfg, err := settings.ConfigMap()
		if err == nil {
			info.Config = cfg
		}
	}

	faqs, err := s.businessRepo.GetFAQs(ctx, businessID)
	if err == nil {
		for _, faq := range faqs {
			info.Suggestions = append(info.Suggestions, faq.Question)
			if len(info.Suggestions) == 5 {
				break
			}
		}
	}

	return info, nil
}

// GenerateEmbedQR renders a PNG QR code pointing at the business's
// hosted widget page.
func (s *BusinessService) GenerateEmbedQR(ctx context.Context, businessID uuid.UUID, size int) ([]byte, error) {
	if _, err := s.businessRepo.GetBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	if size <= 0 || size > 1024 {
		size = 256
	}

	url := fmt.Sprintf("%s/widget/%s", s.widgetBaseURL, businessID)
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to generate QR code", err)
	}
	return png, nil
}
