package message

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

func TestIsValidType(t *testing.T) {
	for _, valid := range []string{
		TypeDefault, TypeKrator, TypeContact, TypeTrialPC, TypeTrialMobile, TypeReseller,
	} {
		if !IsValidType(valid) {
			t.Errorf("IsValidType(%q) = false, want true", valid)
		}
	}
	for _, invalid := range []string{"", "DEFAULT", "trial", "whatsapp"} {
		if IsValidType(invalid) {
			t.Errorf("IsValidType(%q) = true, want false", invalid)
		}
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

func TestSaveMessages_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "empty batch",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid JSON",
			body:       `{bad}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			body:       `{"texts":{"default":"hi"}}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown message type",
			body:       `{"messages":{"bogus":"hi"}}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	h := NewHandler(nil, nil, nil, nil)
	router := chi.NewRouter()
	router.Mount("/messages", h.Routes())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRequest(http.MethodPut, "/messages", tt.body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}
