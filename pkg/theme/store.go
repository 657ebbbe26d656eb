package theme

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wapptv/storefront/internal/db"
)

const themeColumns = `id, name, slug, "primary", secondary, accent, background, foreground, is_active, created_at, updated_at`

// Store runs theme queries against a pool, connection, or transaction.
type Store struct {
	dbtx db.DBTX
}

// NewStore creates a theme Store.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

func scanTheme(row pgx.Row) (Theme, error) {
	var t Theme
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Primary, &t.Secondary, &t.Accent,
		&t.Background, &t.Foreground, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// List returns all themes, active first.
func (s *Store) List(ctx context.Context) ([]Theme, error) {
	rows, err := s.dbtx.Query(ctx, `
		SELECT `+themeColumns+`
		FROM theme_settings
		ORDER BY is_active DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("listing themes: %w", err)
	}
	defer rows.Close()

	var items []Theme
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning theme: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// GetActive returns the currently active theme, or ErrNotFound when no theme
// is active.
func (s *Store) GetActive(ctx context.Context) (Theme, error) {
	t, err := scanTheme(s.dbtx.QueryRow(ctx, `
		SELECT `+themeColumns+`
		FROM theme_settings
		WHERE is_active = true
		LIMIT 1`))
	if errors.Is(err, pgx.ErrNoRows) {
		return Theme{}, ErrNotFound
	}
	if err != nil {
		return Theme{}, fmt.Errorf("getting active theme: %w", err)
	}
	return t, nil
}

// DeactivateAll clears the active flag on every theme.
func (s *Store) DeactivateAll(ctx context.Context) error {
	if _, err := s.dbtx.Exec(ctx, `
		UPDATE theme_settings SET is_active = false, updated_at = now()
		WHERE is_active = true`); err != nil {
		return fmt.Errorf("deactivating themes: %w", err)
	}
	return nil
}

// EnsureParams holds the identity and colors of a theme preset.
type EnsureParams struct {
	Name       string
	Slug       string
	Primary    string
	Secondary  string
	Accent     string
	Background string
	Foreground string
}

// Ensure inserts a theme preset or refreshes its colors when the slug already
// exists. The active flag is left untouched on conflict.
func (s *Store) Ensure(ctx context.Context, p EnsureParams) (Theme, error) {
	t, err := scanTheme(s.dbtx.QueryRow(ctx, `
		INSERT INTO theme_settings (name, slug, "primary", secondary, accent, background, foreground)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			"primary" = EXCLUDED."primary",
			secondary = EXCLUDED.secondary,
			accent = EXCLUDED.accent,
			background = EXCLUDED.background,
			foreground = EXCLUDED.foreground,
			updated_at = now()
		RETURNING `+themeColumns,
		p.Name, p.Slug, p.Primary, p.Secondary, p.Accent, p.Background, p.Foreground))
	if err != nil {
		return Theme{}, fmt.Errorf("ensuring theme %q: %w", p.Slug, err)
	}
	return t, nil
}

// Activate sets the active flag on one theme.
func (s *Store) Activate(ctx context.Context, id uuid.UUID) (Theme, error) {
	t, err := scanTheme(s.dbtx.QueryRow(ctx, `
		UPDATE theme_settings SET is_active = true, updated_at = now()
		WHERE id = $1
		RETURNING `+themeColumns, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Theme{}, ErrNotFound
	}
	if err != nil {
		return Theme{}, fmt.Errorf("activating theme: %w", err)
	}
	return t, nil
}
