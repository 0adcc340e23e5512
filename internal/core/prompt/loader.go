package prompt

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/xeoai/chatbot-saas-be/internal/models"
)

// ContextStore is what the loader needs from storage. The business row is
// mandatory; every child fetch returns an empty result when nothing is
// configured.
type ContextStore interface {
	GetBusiness(ctx context.Context, businessID uuid.UUID) (*models.Business, error)
	GetHours(ctx context.Context, businessID uuid.UUID) ([]models.BusinessHours, error)
	GetServices(ctx context.Context, businessID uuid.UUID) ([]models.BusinessService, error)
	GetFAQs(ctx context.Context, businessID uuid.UUID) ([]models.BusinessFAQ, error)
	GetKnowledge(ctx context.Context, businessID uuid.UUID) ([]models.KnowledgeItem, error)
	GetInstructions(ctx context.Context, businessID uuid.UUID) (string, error)
}

// Loader assembles the full BusinessContext for a business.
type Loader struct {
	store ContextStore
}

func NewLoader(store ContextStore) *Loader {
	return &Loader{store: store}
}

// Load fetches the business profile and all child collections
// concurrently. A missing business fails the whole load; missing child
// data does not.
func (l *Loader) Load(ctx context.Context, businessID uuid.UUID) (*BusinessContext, error) {
	business, err := l.store.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return l.LoadForBusiness(ctx, *business)
}

// LoadForBusiness fetches the child collections for an already-loaded
// business row.
func (l *Loader) LoadForBusiness(ctx context.Context, business models.Business) (*BusinessContext, error) {
	businessID := business.ID
	bc := &BusinessContext{Business: business}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		bc.Hours, err = l.store.GetHours(gctx, businessID)
		return err
	})
	g.Go(func() error {
		var err error
		bc.Services, err = l.store.GetServices(gctx, businessID)
		return err
	})
	g.Go(func() error {
		var err error
		bc.FAQs, err = l.store.GetFAQs(gctx, businessID)
		return err
	})
	g.Go(func() error {
		var err error
		bc.Knowledge, err = l.store.GetKnowledge(gctx, businessID)
		return err
	})
	g.Go(func() error {
		var err error
		bc.Instructions, err = l.store.GetInstructions(gctx, businessID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return bc, nil
}
