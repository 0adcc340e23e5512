// Package knowledge keeps website-type knowledge items fresh: a cron job
// periodically re-fetches each item's URL and stores the extracted text,
// so the prompt assembler always renders reasonably current content.
package knowledge

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/xeoai/chatbot-saas-be/internal/repositories"
)

// Refresher runs the scheduled website-content refresh.
type Refresher struct {
	repo    repositories.KnowledgeRepo
	fetcher *Fetcher
	cron    *cron.Cron
}

func NewRefresher(repo repositories.KnowledgeRepo, fetcher *Fetcher) *Refresher {
	return &Refresher{
		repo:    repo,
		fetcher: fetcher,
		cron:    cron.New(),
	}
}

// Start schedules the refresh with the given cron expression and starts
// the scheduler.
func (r *Refresher) Start(schedule string) error {
	if _, err := r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		r.RefreshAll(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule knowledge refresh: %w", err)
	}

	r.cron.Start()
	log.Info().Str("schedule", schedule).Msg("knowledge refresh scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
	log.Info().Msg("knowledge refresh scheduler stopped")
}

// RefreshAll re-fetches every website knowledge item. Failures are logged
// and skipped; a dead site must not block the other tenants' refreshes.
func (r *Refresher) RefreshAll(ctx context.Context) {
	items, err := r.repo.ListWebsiteItems(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list website knowledge items")
		return
	}

	refreshed := 0
	for _, item := range items {
		content, err := r.fetcher.Fetch(ctx, item.URL)
		if err != nil {
			log.Warn().Err(err).
				Str("knowledge_id", item.ID.String()).
				Str("url", item.URL).
				Msg("knowledge refresh fetch failed")
			continue
		}

		if err := r.repo.UpdateFetchedContent(ctx, item.ID, content, time.Now()); err != nil {
			log.Error().Err(err).
				Str("knowledge_id", item.ID.String()).
				Msg("failed to store refreshed content")
			continue
		}
		refreshed++
	}

	log.Info().Int("total", len(items)).Int("refreshed", refreshed).Msg("knowledge refresh completed")
}
