package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/wapptv/storefront/internal/auth"
)

// ErrInvalidRole is returned when a request names a role that does not exist.
var ErrInvalidRole = errors.New("invalid role")

// ErrEmailTaken is returned when a create reuses an active login email.
var ErrEmailTaken = errors.New("email already in use")

// Service encapsulates business logic for user management.
type Service struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewService creates a user Service backed by the global pool.
func NewService(pool *pgxpool.Pool, logger *slog.Logger) *Service {
	return &Service{pool: pool, logger: logger}
}

// List returns a tenant's active users.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]Response, error) {
	rows, err := NewStore(s.pool).List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	items := make([]Response, len(rows))
	for i, row := range rows {
		items[i] = row.ToResponse()
	}
	return items, nil
}

// Get returns one user.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*Response, error) {
	row, err := NewStore(s.pool).Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := row.ToResponse()
	return &resp, nil
}

// Create adds a user to a tenant with a hashed initial password.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, req CreateRequest) (*Response, error) {
	if !auth.IsValidRole(req.Role) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, req.Role)
	}

	store := NewStore(s.pool)
	n, err := store.CountByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	row, err := store.Create(ctx, tenantID, CreateUserParams{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		Role:         req.Role,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	resp := row.ToResponse()
	return &resp, nil
}

// Update edits a user's email, display name, and role.
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateRequest) (*Response, error) {
	if !auth.IsValidRole(req.Role) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, req.Role)
	}

	row, err := NewStore(s.pool).Update(ctx, tenantID, id, UpdateUserParams{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        req.Role,
	})
	if err != nil {
		return nil, err
	}

	resp := row.ToResponse()
	return &resp, nil
}

// Deactivate soft-deletes a user.
func (s *Service) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	return NewStore(s.pool).Deactivate(ctx, tenantID, id)
}
