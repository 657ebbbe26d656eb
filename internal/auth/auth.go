package auth

import (
	"context"

	"github.com/google/uuid"
)

// Roles, ordered by privilege. Admins manage everything including tenants and
// themes; editors may edit site content; viewers have read-only admin access.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// Authentication methods.
const (
	MethodOIDC    = "oidc"
	MethodSession = "session"
	MethodDev     = "dev"
)

// Identity is the authenticated caller stored in the request context.
type Identity struct {
	Subject    string
	Email      string
	Name       string
	Role       string
	TenantSlug string
	TenantID   uuid.UUID
	UserID     *uuid.UUID
	Method     string
}

// IsValidRole reports whether the given role is one of the known roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

type contextKey string

const identityKey contextKey = "auth_identity"

// NewContext stores the identity in the context.
func NewContext(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext extracts the identity from the context. Returns nil if the
// request is unauthenticated.
func FromContext(ctx context.Context) *Identity {
	v, _ := ctx.Value(identityKey).(*Identity)
	return v
}
