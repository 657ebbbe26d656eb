package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the JSON response for a successful login.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// UserInfo is the public user information returned in auth responses.
type UserInfo struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	TenantSlug  string `json:"tenant_slug"`
}

// AuthConfigResponse tells the admin frontend which auth methods are available.
type AuthConfigResponse struct {
	OIDCEnabled  bool   `json:"oidc_enabled"`
	OIDCName     string `json:"oidc_name"`
	LocalEnabled bool   `json:"local_enabled"`
}

// LoginHandler handles email/password login, session introspection, and
// credential updates. This is the single admin authentication path; there is
// deliberately no shared-password gate.
type LoginHandler struct {
	sessionMgr  *SessionManager
	pool        *pgxpool.Pool
	limiter     *RateLimiter
	logger      *slog.Logger
	oidcEnabled bool
}

// NewLoginHandler creates a new login handler. limiter may be nil to disable
// login rate limiting.
func NewLoginHandler(sm *SessionManager, pool *pgxpool.Pool, limiter *RateLimiter, logger *slog.Logger, oidcEnabled bool) *LoginHandler {
	return &LoginHandler{
		sessionMgr:  sm,
		pool:        pool,
		limiter:     limiter,
		logger:      logger,
		oidcEnabled: oidcEnabled,
	}
}

// HandleLogin authenticates a user with email/password and returns a session JWT.
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondErr(w, http.StatusBadRequest, "bad_request", "email and password are required")
		return
	}

	ip := ClientIP(r)
	if h.limiter != nil {
		res, err := h.limiter.Check(r.Context(), ip)
		if err != nil {
			h.logger.Warn("login: rate limit check failed", "error", err)
		} else if !res.Allowed {
			respondErr(w, http.StatusTooManyRequests, "rate_limited", "too many failed login attempts, try again later")
			return
		}
	}

	row, err := h.findUserByEmail(r.Context(), req.Email)
	if err != nil {
		h.recordFailure(r.Context(), ip)
		h.logger.Warn("login: user lookup failed", "email", req.Email, "error", err)
		respondErr(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")
		return
	}

	if row.PasswordHash == "" {
		h.recordFailure(r.Context(), ip)
		h.logger.Warn("login: user has no password set", "email", req.Email)
		respondErr(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(req.Password)); err != nil {
		h.recordFailure(r.Context(), ip)
		respondErr(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")
		return
	}

	if h.limiter != nil {
		_ = h.limiter.Reset(r.Context(), ip)
	}

	token, err := h.sessionMgr.IssueToken(SessionClaims{
		Subject:     row.ID.String(),
		Email:       row.Email,
		DisplayName: row.DisplayName,
		Role:        row.Role,
		TenantSlug:  row.TenantSlug,
		TenantID:    row.TenantID.String(),
		UserID:      row.ID.String(),
		Method:      MethodSession,
	})
	if err != nil {
		h.logger.Error("login: issuing token", "error", err)
		respondErr(w, http.StatusInternalServerError, "internal", "failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		User: UserInfo{
			ID:          row.ID.String(),
			Email:       row.Email,
			DisplayName: row.DisplayName,
			Role:        row.Role,
			TenantSlug:  row.TenantSlug,
		},
	})
}

// HandleAuthConfig returns the available authentication methods.
func (h *LoginHandler) HandleAuthConfig(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, AuthConfigResponse{
		OIDCEnabled:  h.oidcEnabled,
		OIDCName:     "Sign in with SSO",
		LocalEnabled: true,
	})
}

// HandleMe returns the authenticated caller's info. It relies on the auth
// middleware having resolved the Identity, so it works for session and OIDC
// callers alike.
func (h *LoginHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id := FromContext(r.Context())
	if id == nil {
		respondErr(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	userID := id.Subject
	if id.UserID != nil {
		userID = id.UserID.String()
	}
	name := id.Name
	if name == "" {
		name = id.Email
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"id":           userID,
		"email":        id.Email,
		"display_name": name,
		"role":         id.Role,
		"tenant_slug":  id.TenantSlug,
		"auth_method":  id.Method,
	})
}

// HandleLogout is a no-op endpoint for future server-side session revocation.
func (h *LoginHandler) HandleLogout(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ChangePasswordRequest is the JSON body for PUT /auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// HandleChangePassword updates the authenticated user's password after
// verifying the current one.
func (h *LoginHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	id := FromContext(r.Context())
	if id == nil || id.UserID == nil {
		respondErr(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if len(req.NewPassword) < 8 {
		respondErr(w, http.StatusBadRequest, "bad_request", "new password must be at least 8 characters")
		return
	}

	var currentHash string
	err := h.pool.QueryRow(r.Context(),
		"SELECT password_hash FROM users WHERE id = $1 AND is_active = true",
		*id.UserID,
	).Scan(&currentHash)
	if err != nil {
		respondErr(w, http.StatusUnauthorized, "unauthorized", "user not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(currentHash), []byte(req.CurrentPassword)); err != nil {
		respondErr(w, http.StatusUnauthorized, "unauthorized", "current password is incorrect")
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("login: hashing password", "error", err)
		respondErr(w, http.StatusInternalServerError, "internal", "failed to update password")
		return
	}

	if _, err := h.pool.Exec(r.Context(),
		"UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1",
		*id.UserID, string(newHash),
	); err != nil {
		h.logger.Error("login: updating password", "error", err)
		respondErr(w, http.StatusInternalServerError, "internal", "failed to update password")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// userRow is the user record joined with its tenant, as needed for login.
type userRow struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	TenantSlug   string
	Email        string
	DisplayName  string
	PasswordHash string
	Role         string
}

// findUserByEmail looks up an active user by email, joined with its tenant.
func (h *LoginHandler) findUserByEmail(ctx context.Context, email string) (*userRow, error) {
	var u userRow
	err := h.pool.QueryRow(ctx,
		`SELECT u.id, u.tenant_id, t.slug, u.email, u.display_name,
		        COALESCE(u.password_hash, ''), u.role
		 FROM users u
		 JOIN tenants t ON t.id = u.tenant_id
		 WHERE u.email = $1 AND u.is_active = true AND t.active = true`,
		email,
	).Scan(&u.ID, &u.TenantID, &u.TenantSlug, &u.Email, &u.DisplayName, &u.PasswordHash, &u.Role)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	return &u, nil
}

func (h *LoginHandler) recordFailure(ctx context.Context, ip string) {
	if h.limiter == nil {
		return
	}
	if err := h.limiter.Record(ctx, ip); err != nil {
		h.logger.Warn("login: recording failed attempt", "error", err)
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}
