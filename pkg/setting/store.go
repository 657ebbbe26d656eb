package setting

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wapptv/storefront/internal/db"
)

// Store runs setting queries against a pool, connection, or transaction.
type Store struct {
	dbtx db.DBTX
}

// NewStore creates a setting Store.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

// List returns all settings for a tenant ordered by key.
func (s *Store) List(ctx context.Context, tenantID uuid.UUID) ([]Setting, error) {
	rows, err := s.dbtx.Query(ctx, `
		SELECT key, value, updated_at
		FROM admin_settings
		WHERE tenant_id = $1
		ORDER BY key`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing settings: %w", err)
	}
	defer rows.Close()

	var items []Setting
	for rows.Next() {
		var item Setting
		if err := rows.Scan(&item.Key, &item.Value, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning setting: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Map returns a tenant's settings as a raw key/value map.
func (s *Store) Map(ctx context.Context, tenantID uuid.UUID) (map[string]string, error) {
	items, err := s.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(items))
	for _, item := range items {
		m[item.Key] = item.Value
	}
	return m, nil
}

// Upsert writes one setting, inserting or overwriting on (tenant_id, key).
func (s *Store) Upsert(ctx context.Context, tenantID uuid.UUID, key, value string) error {
	_, err := s.dbtx.Exec(ctx, `
		INSERT INTO admin_settings (tenant_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (tenant_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		tenantID, key, value)
	if err != nil {
		return fmt.Errorf("upserting setting %q: %w", key, err)
	}
	return nil
}

// Delete removes one setting. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, tenantID uuid.UUID, key string) error {
	_, err := s.dbtx.Exec(ctx, `
		DELETE FROM admin_settings WHERE tenant_id = $1 AND key = $2`,
		tenantID, key)
	if err != nil {
		return fmt.Errorf("deleting setting %q: %w", key, err)
	}
	return nil
}
