package plan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wapptv/storefront/internal/db"
	"github.com/wapptv/storefront/pkg/realtime"
)

// ChangedTable is the table name announced on the realtime channel when a
// tenant's plans change.
const ChangedTable = "plans"

// Service encapsulates business logic for subscription plans.
type Service struct {
	pool     db.Pool
	notifier realtime.Notifier
	logger   *slog.Logger
}

// NewService creates a plan Service backed by the global pool.
func NewService(pool db.Pool, notifier realtime.Notifier, logger *slog.Logger) *Service {
	return &Service{pool: pool, notifier: notifier, logger: logger}
}

// List returns a tenant's plans in display order.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]Plan, error) {
	items, err := NewStore(s.pool).List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Plan{}
	}
	return items, nil
}

// Replace swaps the whole plan list in one transaction. Positions are
// assigned from array order, 1-based and dense, regardless of any ordering
// the rows carried before.
func (s *Service) Replace(ctx context.Context, tenantID uuid.UUID, plans []InsertParams) ([]Plan, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	store := NewStore(tx)
	if err := store.DeleteAll(ctx, tenantID); err != nil {
		return nil, err
	}
	for i, p := range plans {
		p.SortOrder = i + 1
		if err := store.Insert(ctx, tenantID, p); err != nil {
			return nil, err
		}
	}

	items, err := store.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing plans: %w", err)
	}

	s.notifier.ContentChanged(ctx, tenantID, ChangedTable)

	if items == nil {
		items = []Plan{}
	}
	return items, nil
}
