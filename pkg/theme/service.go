package theme

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wapptv/storefront/internal/db"
	"github.com/wapptv/storefront/pkg/realtime"
)

// ChangedTable is the table name announced on the realtime channel when the
// active theme changes.
const ChangedTable = "theme_settings"

// Service encapsulates business logic for themes.
type Service struct {
	pool     db.Pool
	notifier realtime.Notifier
	logger   *slog.Logger
}

// NewService creates a theme Service backed by the global pool.
func NewService(pool db.Pool, notifier realtime.Notifier, logger *slog.Logger) *Service {
	return &Service{pool: pool, notifier: notifier, logger: logger}
}

// List returns all themes.
func (s *Service) List(ctx context.Context) ([]Theme, error) {
	items, err := NewStore(s.pool).List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Theme{}
	}
	return items, nil
}

// Activate makes one theme the active one. The deactivate and activate run in
// a single transaction, so a crash can never leave zero or two active themes.
// Themes are global: the change event goes out on the all-tenants channel.
func (s *Service) Activate(ctx context.Context, id uuid.UUID) (*Theme, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	store := NewStore(tx)
	if err := store.DeactivateAll(ctx); err != nil {
		return nil, err
	}
	activated, err := store.Activate(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing theme activation: %w", err)
	}

	s.notifier.ContentChanged(ctx, realtime.Broadcast, ChangedTable)
	s.logger.Info("theme activated", "theme", activated.Slug)
	return &activated, nil
}
