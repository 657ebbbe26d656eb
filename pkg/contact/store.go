package contact

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wapptv/storefront/internal/db"
)

// Store runs contact queries against a pool, connection, or transaction.
type Store struct {
	dbtx db.DBTX
}

// NewStore creates a contact Store.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

// List returns a tenant's contacts for one group in display order.
func (s *Store) List(ctx context.Context, tenantID uuid.UUID, isReseller bool) ([]Contact, error) {
	rows, err := s.dbtx.Query(ctx, `
		SELECT id, phone, is_reseller, sort_order, created_at
		FROM contacts
		WHERE tenant_id = $1 AND is_reseller = $2
		ORDER BY sort_order, created_at`, tenantID, isReseller)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	var items []Contact
	for rows.Next() {
		var item Contact
		if err := rows.Scan(&item.ID, &item.Phone, &item.IsReseller, &item.SortOrder, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// DeleteGroup removes all contacts in one group for a tenant.
func (s *Store) DeleteGroup(ctx context.Context, tenantID uuid.UUID, isReseller bool) error {
	_, err := s.dbtx.Exec(ctx, `
		DELETE FROM contacts WHERE tenant_id = $1 AND is_reseller = $2`,
		tenantID, isReseller)
	if err != nil {
		return fmt.Errorf("deleting contacts: %w", err)
	}
	return nil
}

// Insert adds one contact at the given position.
func (s *Store) Insert(ctx context.Context, tenantID uuid.UUID, phone string, isReseller bool, sortOrder int) error {
	_, err := s.dbtx.Exec(ctx, `
		INSERT INTO contacts (tenant_id, phone, is_reseller, sort_order)
		VALUES ($1, $2, $3, $4)`,
		tenantID, phone, isReseller, sortOrder)
	if err != nil {
		return fmt.Errorf("inserting contact %q: %w", phone, err)
	}
	return nil
}
