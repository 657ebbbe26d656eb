package message

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wapptv/storefront/internal/db"
)

// Store runs message queries against a pool, connection, or transaction.
type Store struct {
	dbtx db.DBTX
}

// NewStore creates a message Store.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

// ListMessages returns all stored messages for a tenant.
func (s *Store) ListMessages(ctx context.Context, tenantID uuid.UUID) ([]Message, error) {
	rows, err := s.dbtx.Query(ctx, `
		SELECT type, text, updated_at
		FROM messages
		WHERE tenant_id = $1
		ORDER BY type`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var items []Message
	for rows.Next() {
		var item Message
		if err := rows.Scan(&item.Type, &item.Text, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpsertMessage writes one message, inserting or overwriting on (tenant_id, type).
func (s *Store) UpsertMessage(ctx context.Context, tenantID uuid.UUID, msgType, text string) error {
	_, err := s.dbtx.Exec(ctx, `
		INSERT INTO messages (tenant_id, type, text)
		VALUES ($1, $2, $3)
		ON CONFLICT (tenant_id, type)
		DO UPDATE SET text = EXCLUDED.text, updated_at = now()`,
		tenantID, msgType, text)
	if err != nil {
		return fmt.Errorf("upserting message %q: %w", msgType, err)
	}
	return nil
}

// ListButtonTexts returns all stored button labels for a tenant.
func (s *Store) ListButtonTexts(ctx context.Context, tenantID uuid.UUID) ([]ButtonText, error) {
	rows, err := s.dbtx.Query(ctx, `
		SELECT key, text, updated_at
		FROM button_texts
		WHERE tenant_id = $1
		ORDER BY key`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing button texts: %w", err)
	}
	defer rows.Close()

	var items []ButtonText
	for rows.Next() {
		var item ButtonText
		if err := rows.Scan(&item.Key, &item.Text, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning button text: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpsertButtonText writes one button label, inserting or overwriting on (tenant_id, key).
func (s *Store) UpsertButtonText(ctx context.Context, tenantID uuid.UUID, key, text string) error {
	_, err := s.dbtx.Exec(ctx, `
		INSERT INTO button_texts (tenant_id, key, text)
		VALUES ($1, $2, $3)
		ON CONFLICT (tenant_id, key)
		DO UPDATE SET text = EXCLUDED.text, updated_at = now()`,
		tenantID, key, text)
	if err != nil {
		return fmt.Errorf("upserting button text %q: %w", key, err)
	}
	return nil
}
