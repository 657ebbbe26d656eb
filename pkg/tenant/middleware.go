package tenant

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/wapptv/storefront/internal/auth"
)

// Middleware resolves the tenant from the request's Host header and stores it
// in the request context. On total resolution failure the request is rejected
// with 503 — downstream consumers must never see another tenant's content.
func Middleware(resolver *Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info, err := resolver.Resolve(r.Context(), r.Host)
			if err != nil {
				logger.Error("tenant resolution failed", "host", r.Host, "error", err)
				respondError(w, http.StatusServiceUnavailable, "tenant_unresolved", "no tenant for this hostname")
				return
			}

			logger.Debug("tenant resolved", "tenant_id", info.ID, "slug", info.Slug, "host", r.Host)

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), info)))
		})
	}
}

// IdentityLookup retrieves a tenant by slug for the identity middleware.
type IdentityLookup interface {
	GetBySlug(ctx context.Context, slug string) (Row, error)
}

// IdentityMiddleware resolves the tenant from the authenticated identity's
// tenant slug. Used on admin routes where the caller's tenant comes from the
// session, not the hostname.
func IdentityMiddleware(lookup IdentityLookup, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := auth.FromContext(r.Context())
			if id == nil || id.TenantSlug == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "no authenticated tenant")
				return
			}

			row, err := lookup.GetBySlug(r.Context(), id.TenantSlug)
			if err != nil {
				logger.Warn("tenant not found", "slug", id.TenantSlug, "error", err)
				respondError(w, http.StatusUnauthorized, "unauthorized", "unknown tenant")
				return
			}

			// Guard against stale session claims pointing at another tenant.
			if id.TenantID != uuid.Nil && id.TenantID != row.ID {
				logger.Warn("session tenant mismatch", "claim", id.TenantID, "actual", row.ID)
				respondError(w, http.StatusUnauthorized, "unauthorized", "tenant mismatch")
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), row.ToInfo())))
		})
	}
}

// respondError writes a JSON error response without importing httpserver.
func respondError(w http.ResponseWriter, status int, errStr, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   errStr,
		"message": message,
	})
}
