package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Middleware returns an HTTP middleware that authenticates the caller and
// stores the resulting Identity in the request context.
//
// Authentication precedence:
//  1. Authorization: Bearer <jwt>  →  session token, then OIDC if configured
//  2. X-Tenant-Slug: <slug>        →  development-only fallback (no real auth)
//
// If none succeed, the request is rejected with 401.
func Middleware(sessionMgr *SessionManager, oidcAuth *OIDCAuthenticator, devMode bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var identity *Identity

			if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") || strings.HasPrefix(authHeader, "bearer ") {
				raw := strings.TrimSpace(authHeader[7:])

				// 1a. Self-issued session token.
				if claims, err := sessionMgr.ValidateToken(raw); err == nil {
					tenantID, _ := uuid.Parse(claims.TenantID)
					userID, parseErr := uuid.Parse(claims.UserID)
					identity = &Identity{
						Subject:    claims.Subject,
						Email:      claims.Email,
						Name:       claims.DisplayName,
						Role:       claims.Role,
						TenantSlug: claims.TenantSlug,
						TenantID:   tenantID,
						Method:     MethodSession,
					}
					if parseErr == nil {
						identity.UserID = &userID
					}

					logger.Debug("authenticated via session token",
						"email", claims.Email,
						"tenant_slug", claims.TenantSlug,
					)
				} else if oidcAuth != nil {
					// 1b. OIDC bearer token.
					claims, oidcErr := oidcAuth.Authenticate(r.Context(), authHeader)
					if oidcErr != nil {
						logger.Warn("authentication failed", "session_error", err, "oidc_error", oidcErr)
						respondErr(w, http.StatusUnauthorized, "unauthorized", "invalid token")
						return
					}

					identity = &Identity{
						Subject:    claims.Subject,
						Email:      claims.Email,
						Name:       claims.Name,
						Role:       claims.Role,
						TenantSlug: claims.TenantSlug,
						Method:     MethodOIDC,
					}

					logger.Debug("authenticated via OIDC",
						"sub", claims.Subject,
						"tenant_slug", claims.TenantSlug,
					)
				} else {
					logger.Warn("session token validation failed", "error", err)
					respondErr(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
					return
				}
			}

			// 2. Dev-mode fallback: X-Tenant-Slug header (no real authentication).
			if identity == nil && devMode {
				if slug := r.Header.Get("X-Tenant-Slug"); slug != "" {
					devID := uuid.Nil
					identity = &Identity{
						Subject:    "dev:anonymous",
						Email:      "dev@localhost",
						Role:       RoleAdmin,
						TenantSlug: slug,
						TenantID:   devID,
						UserID:     &devID,
						Method:     MethodDev,
					}

					logger.Debug("dev-mode authentication", "tenant_slug", slug)
				}
			}

			if identity == nil {
				respondErr(w, http.StatusUnauthorized, "unauthorized", "no valid authentication provided")
				return
			}

			ctx := NewContext(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func respondErr(w http.ResponseWriter, status int, errStr, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   errStr,
		"message": message,
	})
}
