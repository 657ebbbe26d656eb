package contact

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

func TestReplaceContacts_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "missing phones",
			body:       `{"is_reseller":false}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "phone without plus prefix",
			body:       `{"phones":["5511999999999"]}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "phone with letters",
			body:       `{"phones":["+55abc"]}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "invalid JSON",
			body:       `{bad}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty body",
			body:       ``,
			wantStatus: http.StatusBadRequest,
		},
	}

	h := NewHandler(nil, nil, nil, nil)
	router := chi.NewRouter()
	router.Mount("/contacts", h.Routes())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRequest(http.MethodPut, "/contacts", tt.body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestReplaceContacts_RequiresEditor(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil)
	router := chi.NewRouter()
	router.Mount("/contacts", h.Routes())

	r := httptest.NewRequest(http.MethodPut, "/contacts", strings.NewReader(`{"phones":["+5511999999999"]}`))
	r.Header.Set("Content-Type", "application/json")
	ctx := auth.NewContext(r.Context(), &auth.Identity{Role: auth.RoleViewer, TenantSlug: "test"})
	ctx = tenant.NewContext(ctx, &tenant.Info{ID: uuid.New(), Slug: "test"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r.WithContext(ctx))

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestListContacts_BadFilter(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil)
	router := chi.NewRouter()
	router.Mount("/contacts", h.Routes())

	r := newTestRequest(http.MethodGet, "/contacts?is_reseller=maybe", "")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestPhones(t *testing.T) {
	contacts := []Contact{
		{Phone: "+5511999999999"},
		{Phone: "+5511888888888"},
	}
	got := Phones(contacts)
	if len(got) != 2 || got[0] != "+5511999999999" || got[1] != "+5511888888888" {
		t.Errorf("Phones = %v", got)
	}
}
