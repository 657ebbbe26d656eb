package reseller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wapptv/storefront/internal/db"
)

// Store runs reseller settings queries against a pool, connection, or
// transaction.
type Store struct {
	dbtx db.DBTX
}

// NewStore creates a reseller Store.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

// Get returns a tenant's reseller settings. A tenant without a stored row
// gets the defaults; that is not an error.
func (s *Store) Get(ctx context.Context, tenantID uuid.UUID) (*Settings, error) {
	var (
		settings Settings
		tiers    []byte
	)
	err := s.dbtx.QueryRow(ctx, `
		SELECT show_section, tiers, updated_at
		FROM reseller_settings
		WHERE tenant_id = $1`, tenantID).
		Scan(&settings.ShowSection, &tiers, &settings.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting reseller settings: %w", err)
	}

	if err := json.Unmarshal(tiers, &settings.Tiers); err != nil || settings.Tiers == nil {
		settings.Tiers = []Tier{}
	}
	return &settings, nil
}

// Upsert writes a tenant's reseller settings, inserting or overwriting the
// single row. Saving the same settings twice is a no-op for readers.
func (s *Store) Upsert(ctx context.Context, tenantID uuid.UUID, showSection bool, tiers []Tier) error {
	if tiers == nil {
		tiers = []Tier{}
	}
	encoded, err := json.Marshal(tiers)
	if err != nil {
		return fmt.Errorf("encoding tiers: %w", err)
	}

	_, err = s.dbtx.Exec(ctx, `
		INSERT INTO reseller_settings (tenant_id, show_section, tiers)
		VALUES ($1, $2, $3)
		ON CONFLICT (tenant_id)
		DO UPDATE SET show_section = EXCLUDED.show_section, tiers = EXCLUDED.tiers, updated_at = now()`,
		tenantID, showSection, encoded)
	if err != nil {
		return fmt.Errorf("upserting reseller settings: %w", err)
	}
	return nil
}
