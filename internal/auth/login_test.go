package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestHandleMeSessionCaller(t *testing.T) {
	sm, err := NewSessionManager(GenerateDevSecret(), time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager() error: %v", err)
	}

	userID := uuid.New()
	token, err := sm.IssueToken(SessionClaims{
		Subject:     userID.String(),
		Email:       "admin@wapptv.top",
		DisplayName: "Site Admin",
		Role:        RoleAdmin,
		TenantSlug:  "wapptv",
		TenantID:    uuid.New().String(),
		UserID:      userID.String(),
		Method:      MethodSession,
	})
	if err != nil {
		t.Fatalf("IssueToken() error: %v", err)
	}

	h := NewLoginHandler(sm, nil, nil, testLogger(), false)
	handler := Middleware(sm, nil, false, testLogger())(http.HandlerFunc(h.HandleMe))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["id"] != userID.String() {
		t.Errorf("id = %v, want %s", body["id"], userID)
	}
	if body["display_name"] != "Site Admin" {
		t.Errorf("display_name = %v, want %q", body["display_name"], "Site Admin")
	}
	// The display name must never be the user's UUID.
	if _, err := uuid.Parse(body["display_name"].(string)); err == nil {
		t.Errorf("display_name %v is a UUID", body["display_name"])
	}
	if body["email"] != "admin@wapptv.top" {
		t.Errorf("email = %v, want admin@wapptv.top", body["email"])
	}
}

func TestHandleMeOIDCCaller(t *testing.T) {
	sm, err := NewSessionManager(GenerateDevSecret(), time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager() error: %v", err)
	}

	// OIDC identities carry no local user ID; /me must still answer from
	// the identity the middleware resolved instead of re-parsing the
	// bearer token as a session JWT.
	identity := &Identity{
		Subject:    "sso|4821",
		Email:      "editor@wapptv.top",
		Name:       "Editor",
		Role:       RoleEditor,
		TenantSlug: "wapptv",
		Method:     MethodOIDC,
	}

	h := NewLoginHandler(sm, nil, nil, testLogger(), true)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-session-jwt")
	req = req.WithContext(NewContext(req.Context(), identity))
	rec := httptest.NewRecorder()
	h.HandleMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["id"] != "sso|4821" {
		t.Errorf("id = %v, want sso|4821", body["id"])
	}
	if body["display_name"] != "Editor" {
		t.Errorf("display_name = %v, want Editor", body["display_name"])
	}
	if body["auth_method"] != MethodOIDC {
		t.Errorf("auth_method = %v, want %q", body["auth_method"], MethodOIDC)
	}
}

func TestHandleMeUnauthenticated(t *testing.T) {
	sm, err := NewSessionManager(GenerateDevSecret(), time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager() error: %v", err)
	}

	h := NewLoginHandler(sm, nil, nil, testLogger(), false)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	h.HandleMe(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
