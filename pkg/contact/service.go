package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wapptv/storefront/internal/db"
	"github.com/wapptv/storefront/pkg/realtime"
)

// ChangedTable is the table name announced on the realtime channel when a
// tenant's contacts change.
const ChangedTable = "contacts"

// Service encapsulates business logic for contact numbers.
type Service struct {
	pool     db.Pool
	notifier realtime.Notifier
	logger   *slog.Logger
}

// NewService creates a contact Service backed by the global pool.
func NewService(pool db.Pool, notifier realtime.Notifier, logger *slog.Logger) *Service {
	return &Service{pool: pool, notifier: notifier, logger: logger}
}

// List returns one contact group for a tenant.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, isReseller bool) ([]Contact, error) {
	items, err := NewStore(s.pool).List(ctx, tenantID, isReseller)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Contact{}
	}
	return items, nil
}

// Replace swaps a contact group for a new list of phones in one transaction.
// The stored group afterwards is exactly the given list, in the given order;
// a failure part way through leaves the previous group intact. The other
// group is never touched.
func (s *Service) Replace(ctx context.Context, tenantID uuid.UUID, isReseller bool, phones []string) ([]Contact, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	store := NewStore(tx)
	if err := store.DeleteGroup(ctx, tenantID, isReseller); err != nil {
		return nil, err
	}
	for i, phone := range phones {
		if err := store.Insert(ctx, tenantID, phone, isReseller, i+1); err != nil {
			return nil, err
		}
	}

	items, err := store.List(ctx, tenantID, isReseller)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing contacts: %w", err)
	}

	s.notifier.ContentChanged(ctx, tenantID, ChangedTable)

	if items == nil {
		items = []Contact{}
	}
	return items, nil
}
