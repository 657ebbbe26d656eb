package tenant

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wapptv/storefront/internal/db"
)

// Store provides database operations for tenants.
type Store struct {
	dbtx db.DBTX
}

// NewStore creates a tenant Store backed by the given database connection.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

const tenantColumns = `id, name, slug, domain, subdomain, active, created_at, updated_at`

func scanRow(row interface{ Scan(dest ...any) error }) (Row, error) {
	var r Row
	err := row.Scan(&r.ID, &r.Name, &r.Slug, &r.Domain, &r.Subdomain, &r.Active, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// GetByHostname returns the active tenant whose domain or subdomain equals the
// given hostname.
func (s *Store) GetByHostname(ctx context.Context, hostname string) (Row, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants
	WHERE (domain = $1 OR subdomain = $1) AND active = true
	LIMIT 1`
	return scanRow(s.dbtx.QueryRow(ctx, query, hostname))
}

// GetByDomain returns the tenant with the exact given primary domain,
// regardless of subdomain. Used for the default-domain fallback.
func (s *Store) GetByDomain(ctx context.Context, domain string) (Row, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE domain = $1 LIMIT 1`
	return scanRow(s.dbtx.QueryRow(ctx, query, domain))
}

// GetBySlug returns the tenant with the given slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (Row, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = $1`
	return scanRow(s.dbtx.QueryRow(ctx, query, slug))
}

// Get returns the tenant with the given ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Row, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return scanRow(s.dbtx.QueryRow(ctx, query, id))
}

// List returns all tenants ordered by name.
func (s *Store) List(ctx context.Context) ([]Row, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY name`
	rows, err := s.dbtx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	defer rows.Close()

	var items []Row
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tenant row: %w", err)
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tenant rows: %w", err)
	}
	return items, nil
}

// CreateParams holds parameters for creating a tenant.
type CreateParams struct {
	Name      string
	Slug      string
	Domain    string
	Subdomain *string
	Active    bool
}

// Create inserts a new tenant.
func (s *Store) Create(ctx context.Context, p CreateParams) (Row, error) {
	query := `INSERT INTO tenants (name, slug, domain, subdomain, active)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + tenantColumns
	return scanRow(s.dbtx.QueryRow(ctx, query, p.Name, p.Slug, p.Domain, p.Subdomain, p.Active))
}

// UpdateParams holds parameters for updating a tenant.
type UpdateParams struct {
	ID        uuid.UUID
	Name      string
	Domain    string
	Subdomain *string
	Active    bool
}

// Update updates the editable fields of a tenant and returns the updated row.
func (s *Store) Update(ctx context.Context, p UpdateParams) (Row, error) {
	query := `UPDATE tenants
	SET name = $2, domain = $3, subdomain = $4, active = $5, updated_at = now()
	WHERE id = $1
	RETURNING ` + tenantColumns
	return scanRow(s.dbtx.QueryRow(ctx, query, p.ID, p.Name, p.Domain, p.Subdomain, p.Active))
}

// Delete removes a tenant. Dependent rows are removed by ON DELETE CASCADE.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.dbtx.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting tenant: %w", err)
	}
	return nil
}
