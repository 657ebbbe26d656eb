package reseller

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wapptv/storefront/internal/db"
	"github.com/wapptv/storefront/pkg/realtime"
)

// ChangedTable is the table name announced on the realtime channel when a
// tenant's reseller settings change.
const ChangedTable = "reseller_settings"

// Service encapsulates business logic for reseller settings.
type Service struct {
	pool     db.Pool
	notifier realtime.Notifier
	logger   *slog.Logger
}

// NewService creates a reseller Service backed by the global pool.
func NewService(pool db.Pool, notifier realtime.Notifier, logger *slog.Logger) *Service {
	return &Service{pool: pool, notifier: notifier, logger: logger}
}

// Get returns a tenant's reseller settings, defaulted when none are stored.
func (s *Service) Get(ctx context.Context, tenantID uuid.UUID) (*Settings, error) {
	return NewStore(s.pool).Get(ctx, tenantID)
}

// Save replaces a tenant's reseller settings wholesale.
func (s *Service) Save(ctx context.Context, tenantID uuid.UUID, showSection bool, tiers []Tier) (*Settings, error) {
	store := NewStore(s.pool)
	if err := store.Upsert(ctx, tenantID, showSection, tiers); err != nil {
		return nil, err
	}

	settings, err := store.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	s.notifier.ContentChanged(ctx, tenantID, ChangedTable)
	return settings, nil
}
