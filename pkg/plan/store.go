package plan

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/wapptv/storefront/internal/db"
)

// Store runs plan queries against a pool, connection, or transaction.
type Store struct {
	dbtx db.DBTX
}

// NewStore creates a plan Store.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

// List returns a tenant's plans in display order.
func (s *Store) List(ctx context.Context, tenantID uuid.UUID) ([]Plan, error) {
	rows, err := s.dbtx.Query(ctx, `
		SELECT id, name, price, period, features, popular, sort_order, created_at, updated_at
		FROM plans
		WHERE tenant_id = $1
		ORDER BY sort_order, created_at`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var items []Plan
	for rows.Next() {
		var (
			item     Plan
			features []byte
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Period,
			&features, &item.Popular, &item.SortOrder, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		// A plan with an unreadable feature list still renders; the bullets
		// just come up empty.
		if err := json.Unmarshal(features, &item.Features); err != nil || item.Features == nil {
			item.Features = []string{}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// DeleteAll removes every plan for a tenant.
func (s *Store) DeleteAll(ctx context.Context, tenantID uuid.UUID) error {
	_, err := s.dbtx.Exec(ctx, `DELETE FROM plans WHERE tenant_id = $1`, tenantID)
	if err != nil {
		return fmt.Errorf("deleting plans: %w", err)
	}
	return nil
}

// InsertParams holds the fields for one new plan row.
type InsertParams struct {
	Name      string
	Price     string
	Period    string
	Features  []string
	Popular   bool
	SortOrder int
}

// Insert adds one plan at the given position.
func (s *Store) Insert(ctx context.Context, tenantID uuid.UUID, p InsertParams) error {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	encoded, err := json.Marshal(features)
	if err != nil {
		return fmt.Errorf("encoding features: %w", err)
	}

	_, err = s.dbtx.Exec(ctx, `
		INSERT INTO plans (tenant_id, name, price, period, features, popular, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		tenantID, p.Name, p.Price, p.Period, encoded, p.Popular, p.SortOrder)
	if err != nil {
		return fmt.Errorf("inserting plan %q: %w", p.Name, err)
	}
	return nil
}
