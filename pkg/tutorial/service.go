package tutorial

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wapptv/storefront/pkg/realtime"
)

// ChangedTable is the table name announced on the realtime channel when a
// tenant's tutorials change.
const ChangedTable = "tutorials"

// Service encapsulates business logic for tutorial guides.
type Service struct {
	pool     *pgxpool.Pool
	notifier realtime.Notifier
	logger   *slog.Logger
}

// NewService creates a tutorial Service backed by the global pool.
func NewService(pool *pgxpool.Pool, notifier realtime.Notifier, logger *slog.Logger) *Service {
	return &Service{pool: pool, notifier: notifier, logger: logger}
}

// List returns one guide's steps for a tenant.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, tutorialType string) ([]Step, error) {
	if !IsValidType(tutorialType) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, tutorialType)
	}
	items, err := NewStore(s.pool).List(ctx, tenantID, tutorialType)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Step{}
	}
	return items, nil
}

// Replace swaps one guide's steps in a single transaction. The other guide is
// never touched. Positions are assigned from array order, 1-based and dense.
func (s *Service) Replace(ctx context.Context, tenantID uuid.UUID, tutorialType string, steps []InsertParams) ([]Step, error) {
	if !IsValidType(tutorialType) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, tutorialType)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	store := NewStore(tx)
	if err := store.DeleteType(ctx, tenantID, tutorialType); err != nil {
		return nil, err
	}
	for i, step := range steps {
		step.SortOrder = i + 1
		if err := store.Insert(ctx, tenantID, tutorialType, step); err != nil {
			return nil, err
		}
	}

	items, err := store.List(ctx, tenantID, tutorialType)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing tutorials: %w", err)
	}

	s.notifier.ContentChanged(ctx, tenantID, ChangedTable)

	if items == nil {
		items = []Step{}
	}
	return items, nil
}
