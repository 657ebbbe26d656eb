package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Info holds the resolved tenant metadata for the current request.
type Info struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	Domain    string
	Subdomain string
	Active    bool
}

// Row is a full tenant record as stored.
type Row struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Domain    string    `json:"domain"`
	Subdomain *string   `json:"subdomain,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToInfo converts a stored row to the request-scoped Info.
func (r *Row) ToInfo() *Info {
	info := &Info{
		ID:     r.ID,
		Name:   r.Name,
		Slug:   r.Slug,
		Domain: r.Domain,
		Active: r.Active,
	}
	if r.Subdomain != nil {
		info.Subdomain = *r.Subdomain
	}
	return info
}

type contextKey string

const infoKey contextKey = "tenant_info"

// NewContext stores tenant info in the context.
func NewContext(ctx context.Context, info *Info) context.Context {
	return context.WithValue(ctx, infoKey, info)
}

// FromContext extracts the tenant info from the context.
// Returns nil if no tenant is set.
func FromContext(ctx context.Context) *Info {
	v, _ := ctx.Value(infoKey).(*Info)
	return v
}
