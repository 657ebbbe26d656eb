package tutorial

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wapptv/storefront/internal/db"
)

// Store runs tutorial queries against a pool, connection, or transaction.
type Store struct {
	dbtx db.DBTX
}

// NewStore creates a tutorial Store.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

// List returns one guide's steps in display order.
func (s *Store) List(ctx context.Context, tenantID uuid.UUID, tutorialType string) ([]Step, error) {
	rows, err := s.dbtx.Query(ctx, `
		SELECT id, type, title, description, image_url, link_url, sort_order, created_at, updated_at
		FROM tutorials
		WHERE tenant_id = $1 AND type = $2
		ORDER BY sort_order, created_at`, tenantID, tutorialType)
	if err != nil {
		return nil, fmt.Errorf("listing tutorials: %w", err)
	}
	defer rows.Close()

	var items []Step
	for rows.Next() {
		var item Step
		if err := rows.Scan(&item.ID, &item.Type, &item.Title, &item.Description,
			&item.ImageURL, &item.LinkURL, &item.SortOrder, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning tutorial step: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListAll returns every step for a tenant across both guides.
func (s *Store) ListAll(ctx context.Context, tenantID uuid.UUID) ([]Step, error) {
	rows, err := s.dbtx.Query(ctx, `
		SELECT id, type, title, description, image_url, link_url, sort_order, created_at, updated_at
		FROM tutorials
		WHERE tenant_id = $1
		ORDER BY type, sort_order, created_at`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing tutorials: %w", err)
	}
	defer rows.Close()

	var items []Step
	for rows.Next() {
		var item Step
		if err := rows.Scan(&item.ID, &item.Type, &item.Title, &item.Description,
			&item.ImageURL, &item.LinkURL, &item.SortOrder, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning tutorial step: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// DeleteType removes one guide's steps for a tenant.
func (s *Store) DeleteType(ctx context.Context, tenantID uuid.UUID, tutorialType string) error {
	_, err := s.dbtx.Exec(ctx, `
		DELETE FROM tutorials WHERE tenant_id = $1 AND type = $2`,
		tenantID, tutorialType)
	if err != nil {
		return fmt.Errorf("deleting tutorials: %w", err)
	}
	return nil
}

// InsertParams holds the fields for one new tutorial step.
type InsertParams struct {
	Title       string
	Description string
	ImageURL    string
	LinkURL     string
	SortOrder   int
}

// Insert adds one step to a guide at the given position.
func (s *Store) Insert(ctx context.Context, tenantID uuid.UUID, tutorialType string, p InsertParams) error {
	_, err := s.dbtx.Exec(ctx, `
		INSERT INTO tutorials (tenant_id, type, title, description, image_url, link_url, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		tenantID, tutorialType, p.Title, p.Description, p.ImageURL, p.LinkURL, p.SortOrder)
	if err != nil {
		return fmt.Errorf("inserting tutorial step %q: %w", p.Title, err)
	}
	return nil
}
