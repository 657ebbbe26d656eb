package plan

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wapptv/storefront/internal/auth"
	"github.com/wapptv/storefront/pkg/tenant"
)

func newTestRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	ctx := auth.NewContext(r.Context(), &auth.Identity{Role: auth.RoleEditor, TenantSlug: "test"})
	ctx = tenant.NewContext(ctx, &tenant.Info{ID: uuid.New(), Slug: "test"})
	return r.WithContext(ctx)
}

func TestReplacePlans_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "missing plans",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "plan without name",
			body:       `{"plans":[{"price":"29.90"}]}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "plan without price",
			body:       `{"plans":[{"name":"Monthly"}]}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "invalid JSON",
			body:       `{bad}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	h := NewHandler(nil, nil, nil, nil)
	router := chi.NewRouter()
	router.Mount("/plans", h.Routes())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRequest(http.MethodPut, "/plans", tt.body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestReplacePlans_RequiresEditor(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil)
	router := chi.NewRouter()
	router.Mount("/plans", h.Routes())

	r := httptest.NewRequest(http.MethodPut, "/plans", strings.NewReader(`{"plans":[]}`))
	r.Header.Set("Content-Type", "application/json")
	ctx := auth.NewContext(r.Context(), &auth.Identity{Role: auth.RoleViewer, TenantSlug: "test"})
	ctx = tenant.NewContext(ctx, &tenant.Info{ID: uuid.New(), Slug: "test"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r.WithContext(ctx))

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}
