package theme

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/wapptv/storefront/internal/auth"
)

func TestActivateTheme_InvalidID(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil)
	router := chi.NewRouter()
	router.Mount("/themes", h.Routes())

	r := httptest.NewRequest(http.MethodPost, "/themes/not-a-uuid/activate", nil)
	ctx := auth.NewContext(r.Context(), &auth.Identity{Role: auth.RoleEditor, TenantSlug: "test"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r.WithContext(ctx))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestActivateTheme_RequiresEditor(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil)
	router := chi.NewRouter()
	router.Mount("/themes", h.Routes())

	r := httptest.NewRequest(http.MethodPost, "/themes/5d4f2c0e-6f3a-4f69-b1b6-0f26e1c2a1aa/activate", nil)
	ctx := auth.NewContext(r.Context(), &auth.Identity{Role: auth.RoleViewer, TenantSlug: "test"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r.WithContext(ctx))

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}
