package reseller

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

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.ShowSection {
		t.Error("default reseller section should be hidden")
	}
	if s.Tiers == nil || len(s.Tiers) != 0 {
		t.Errorf("default tiers = %v, want empty list", s.Tiers)
	}
}

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

func TestSaveReseller_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "tier without credits",
			body:       `{"show_section":true,"tiers":[{"price":"100.00"}]}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "tier without price",
			body:       `{"show_section":true,"tiers":[{"credits":10}]}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "negative credits",
			body:       `{"show_section":true,"tiers":[{"credits":-1,"price":"100.00"}]}`,
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
	router.Mount("/reseller", h.Routes())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRequest(http.MethodPut, "/reseller", tt.body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}
