package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wapptv/storefront/internal/db"
)

// Store provides database operations for users.
type Store struct {
	dbtx db.DBTX
}

// NewStore creates a user Store backed by the given database connection.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

const userColumns = `id, tenant_id, email, display_name, role, is_active, created_at, updated_at`

// UserRow represents a row returned from the users table.
type UserRow struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Email       string
	DisplayName string
	Role        string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ToResponse converts a UserRow to a Response DTO.
func (u *UserRow) ToResponse() Response {
	return Response{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// scanUserRow scans a pgx.Row into a UserRow.
func scanUserRow(row pgx.Row) (UserRow, error) {
	var u UserRow
	err := row.Scan(
		&u.ID, &u.TenantID, &u.Email, &u.DisplayName, &u.Role,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// List returns a tenant's active users ordered by display name.
func (s *Store) List(ctx context.Context, tenantID uuid.UUID) ([]UserRow, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tenant_id = $1 AND is_active = true ORDER BY display_name`
	rows, err := s.dbtx.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var items []UserRow
	for rows.Next() {
		var u UserRow
		if err := rows.Scan(
			&u.ID, &u.TenantID, &u.Email, &u.DisplayName, &u.Role,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}
	return items, nil
}

// Get returns a single user by ID, scoped to one tenant.
func (s *Store) Get(ctx context.Context, tenantID, id uuid.UUID) (UserRow, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tenant_id = $1 AND id = $2`
	return scanUserRow(s.dbtx.QueryRow(ctx, query, tenantID, id))
}

// CreateUserParams holds parameters for creating a user.
type CreateUserParams struct {
	Email        string
	DisplayName  string
	Role         string
	PasswordHash string
}

// Create inserts a new user for a tenant.
func (s *Store) Create(ctx context.Context, tenantID uuid.UUID, p CreateUserParams) (UserRow, error) {
	query := `INSERT INTO users (tenant_id, email, display_name, role, password_hash)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + userColumns
	return scanUserRow(s.dbtx.QueryRow(ctx, query,
		tenantID, p.Email, p.DisplayName, p.Role, p.PasswordHash))
}

// UpdateUserParams holds parameters for updating a user.
type UpdateUserParams struct {
	Email       string
	DisplayName string
	Role        string
}

// Update updates all editable fields and returns the updated row.
func (s *Store) Update(ctx context.Context, tenantID, id uuid.UUID, p UpdateUserParams) (UserRow, error) {
	query := `UPDATE users
	SET email = $3, display_name = $4, role = $5, updated_at = now()
	WHERE tenant_id = $1 AND id = $2
	RETURNING ` + userColumns
	return scanUserRow(s.dbtx.QueryRow(ctx, query,
		tenantID, id, p.Email, p.DisplayName, p.Role))
}

// Deactivate soft-deletes a user by setting is_active to false.
func (s *Store) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `UPDATE users SET is_active = false, updated_at = now() WHERE tenant_id = $1 AND id = $2`
	tag, err := s.dbtx.Exec(ctx, query, tenantID, id)
	if err != nil {
		return fmt.Errorf("deactivating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CountByEmail reports how many active users exist with the given email,
// across all tenants. Emails are the login key and must stay unique.
func (s *Store) CountByEmail(ctx context.Context, email string) (int, error) {
	var n int
	err := s.dbtx.QueryRow(ctx,
		`SELECT count(*) FROM users WHERE email = $1 AND is_active = true`, email).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting users by email: %w", err)
	}
	return n, nil
}
