package tenant

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/wapptv/storefront/internal/auth"
)

func TestMiddlewareSetsTenant(t *testing.T) {
	row := Row{ID: uuid.New(), Slug: "wapptv", Domain: "wapptv.top"}
	lookup := &fakeLookup{rows: map[string]Row{"wapptv.top": row}}
	mw := Middleware(NewResolver(lookup, "wapptv.top", testLogger()), testLogger())

	var seen *Info
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "wapptv.top"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen == nil || seen.ID != row.ID {
		t.Errorf("handler saw tenant %+v, want %v", seen, row.ID)
	}
}

func TestMiddlewareRejectsUnresolvable(t *testing.T) {
	lookup := &fakeLookup{rows: map[string]Row{}}
	mw := Middleware(NewResolver(lookup, "wapptv.top", testLogger()), testLogger())

	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "nobody.example"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

type fakeSlugLookup struct {
	rows map[string]Row
}

func (f *fakeSlugLookup) GetBySlug(_ context.Context, slug string) (Row, error) {
	if row, ok := f.rows[slug]; ok {
		return row, nil
	}
	return Row{}, errors.New("no rows")
}

func TestIdentityMiddleware(t *testing.T) {
	row := Row{ID: uuid.New(), Slug: "wapptv", Domain: "wapptv.top"}
	lookup := &fakeSlugLookup{rows: map[string]Row{"wapptv": row}}
	mw := IdentityMiddleware(lookup, testLogger())

	tests := []struct {
		name       string
		identity   *auth.Identity
		wantStatus int
	}{
		{"no identity", nil, http.StatusUnauthorized},
		{"unknown slug", &auth.Identity{TenantSlug: "ghost"}, http.StatusUnauthorized},
		{"tenant mismatch", &auth.Identity{TenantSlug: "wapptv", TenantID: uuid.New()}, http.StatusUnauthorized},
		{"match", &auth.Identity{TenantSlug: "wapptv", TenantID: row.ID}, http.StatusOK},
		{"no claim id", &auth.Identity{TenantSlug: "wapptv"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if FromContext(r.Context()) == nil {
					t.Error("tenant missing from context")
				}
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.identity != nil {
				req = req.WithContext(auth.NewContext(req.Context(), tt.identity))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
