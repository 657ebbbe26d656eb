package message

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wapptv/storefront/pkg/realtime"
)

// ChangedTable is the table name announced on the realtime channel when a
// tenant's messages or button labels change.
const ChangedTable = "messages"

// Service encapsulates business logic for messages and button labels.
type Service struct {
	pool     *pgxpool.Pool
	notifier realtime.Notifier
	logger   *slog.Logger
}

// NewService creates a message Service backed by the global pool.
func NewService(pool *pgxpool.Pool, notifier realtime.Notifier, logger *slog.Logger) *Service {
	return &Service{pool: pool, notifier: notifier, logger: logger}
}

// Texts bundles a tenant's messages and button labels.
type Texts struct {
	Messages    []Message    `json:"messages"`
	ButtonTexts []ButtonText `json:"button_texts"`
}

// Get returns all messages and button labels for a tenant.
func (s *Service) Get(ctx context.Context, tenantID uuid.UUID) (*Texts, error) {
	store := NewStore(s.pool)

	messages, err := store.ListMessages(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	buttons, err := store.ListButtonTexts(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if messages == nil {
		messages = []Message{}
	}
	if buttons == nil {
		buttons = []ButtonText{}
	}
	return &Texts{Messages: messages, ButtonTexts: buttons}, nil
}

// Save upserts a batch of messages and button labels in one transaction.
// Unlisted types and keys are left untouched.
func (s *Service) Save(ctx context.Context, tenantID uuid.UUID, messages map[string]string, buttons map[string]string) error {
	for msgType := range messages {
		if !IsValidType(msgType) {
			return fmt.Errorf("%w: %q", ErrUnknownType, msgType)
		}
	}
	if len(messages) == 0 && len(buttons) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	store := NewStore(tx)
	for msgType, text := range messages {
		if err := store.UpsertMessage(ctx, tenantID, msgType, text); err != nil {
			return err
		}
	}
	for key, text := range buttons {
		if err := store.UpsertButtonText(ctx, tenantID, key, text); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing messages: %w", err)
	}

	s.notifier.ContentChanged(ctx, tenantID, ChangedTable)
	return nil
}
