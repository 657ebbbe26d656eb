package tutorial

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

func TestIsValidType(t *testing.T) {
	if !IsValidType(TypeApp) || !IsValidType(TypeTV) {
		t.Error("app and tv should be valid types")
	}
	for _, invalid := range []string{"", "APP", "mobile", "desktop"} {
		if IsValidType(invalid) {
			t.Errorf("IsValidType(%q) = true, want false", invalid)
		}
	}
}

func TestReplaceTutorials_UnknownType(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil)
	router := chi.NewRouter()
	router.Mount("/tutorials", h.Routes())

	r := newTestRequest(http.MethodPut, "/tutorials/desktop", `{"steps":[]}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestReplaceTutorials_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "missing steps",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "step without title",
			body:       `{"steps":[{"description":"install it"}]}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "bad image url",
			body:       `{"steps":[{"title":"Step 1","image_url":"not a url"}]}`,
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
	router.Mount("/tutorials", h.Routes())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRequest(http.MethodPut, "/tutorials/app", tt.body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}
