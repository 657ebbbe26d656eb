package setting

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wapptv/storefront/pkg/realtime"
)

// ChangedTable is the table name announced on the realtime channel when a
// tenant's settings change.
const ChangedTable = "admin_settings"

// Service encapsulates business logic for tenant settings.
type Service struct {
	pool     *pgxpool.Pool
	notifier realtime.Notifier
	logger   *slog.Logger
}

// NewService creates a setting Service backed by the global pool.
func NewService(pool *pgxpool.Pool, notifier realtime.Notifier, logger *slog.Logger) *Service {
	return &Service{pool: pool, notifier: notifier, logger: logger}
}

// List returns all stored settings for a tenant.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]Setting, error) {
	items, err := NewStore(s.pool).List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Setting{}
	}
	return items, nil
}

// Save upserts a batch of settings in a single transaction: either every key
// is written or none is. Keys absent from the batch are left untouched.
func (s *Service) Save(ctx context.Context, tenantID uuid.UUID, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	store := NewStore(tx)
	for key, value := range values {
		if err := store.Upsert(ctx, tenantID, key, value); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing settings: %w", err)
	}

	s.notifier.ContentChanged(ctx, tenantID, ChangedTable)
	return nil
}

// Set writes a single setting and publishes a change event. Used by the media
// endpoints to record uploaded asset URLs.
func (s *Service) Set(ctx context.Context, tenantID uuid.UUID, key, value string) error {
	if err := NewStore(s.pool).Upsert(ctx, tenantID, key, value); err != nil {
		return err
	}
	s.notifier.ContentChanged(ctx, tenantID, ChangedTable)
	return nil
}
