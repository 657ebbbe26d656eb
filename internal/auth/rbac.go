package auth

import (
	"encoding/json"
	"net/http"
)

// roleLevel orders roles by privilege so RequireMinRole can compare them.
var roleLevel = map[string]int{
	RoleAdmin:  30,
	RoleEditor: 20,
	RoleViewer: 10,
}

// RequireAuth rejects requests that carry no authenticated identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromContext(r.Context()) == nil {
			respondErr(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole permits only identities holding one of the listed roles,
// matched exactly.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}
	return requireIdentity(func(id *Identity) bool {
		_, ok := set[id.Role]
		return ok
	})
}

// RequireMinRole permits identities at or above the given privilege level, so
// RequireMinRole(RoleEditor) admits editors and admins.
func RequireMinRole(minRole string) func(http.Handler) http.Handler {
	minLevel := roleLevel[minRole]
	return requireIdentity(func(id *Identity) bool {
		return roleLevel[id.Role] >= minLevel
	})
}

func requireIdentity(permit func(*Identity) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := FromContext(r.Context())
			if id == nil {
				respondForbidden(w, "authentication required")
				return
			}
			if !permit(id) {
				respondForbidden(w, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func respondForbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "forbidden",
		"message": message,
	})
}
