package tenant

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
)

type fakeLookup struct {
	rows map[string]Row
}

func (f *fakeLookup) GetByHostname(_ context.Context, hostname string) (Row, error) {
	if row, ok := f.rows[hostname]; ok {
		return row, nil
	}
	return Row{}, errors.New("no rows")
}

func (f *fakeLookup) GetByDomain(ctx context.Context, domain string) (Row, error) {
	return f.GetByHostname(ctx, domain)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestResolveExactMatch(t *testing.T) {
	reseller := Row{ID: uuid.New(), Slug: "reseller", Domain: "reseller.example"}
	fallback := Row{ID: uuid.New(), Slug: "wapptv", Domain: "wapptv.top"}
	lookup := &fakeLookup{rows: map[string]Row{
		"reseller.example": reseller,
		"wapptv.top":       fallback,
	}}
	r := NewResolver(lookup, "wapptv.top", testLogger())

	info, err := r.Resolve(context.Background(), "Reseller.Example:443")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if info.ID != reseller.ID {
		t.Errorf("resolved tenant %q, want %q", info.Slug, reseller.Slug)
	}
}

func TestResolveFallsBackToDefaultDomain(t *testing.T) {
	fallback := Row{ID: uuid.New(), Slug: "wapptv", Domain: "wapptv.top"}
	lookup := &fakeLookup{rows: map[string]Row{
		"wapptv.top": fallback,
	}}
	r := NewResolver(lookup, "wapptv.top", testLogger())

	info, err := r.Resolve(context.Background(), "unknown-host.example")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if info.ID != fallback.ID {
		t.Errorf("resolved tenant %q, want default domain tenant", info.Slug)
	}
}

func TestResolveFailsWhenDefaultMissing(t *testing.T) {
	other := Row{ID: uuid.New(), Slug: "other", Domain: "other.example"}
	lookup := &fakeLookup{rows: map[string]Row{
		"other.example": other,
	}}
	r := NewResolver(lookup, "wapptv.top", testLogger())

	// An unknown hostname must never resolve to some arbitrary tenant that
	// happens to exist.
	info, err := r.Resolve(context.Background(), "unknown-host.example")
	if err == nil {
		t.Fatalf("Resolve succeeded with tenant %q, want error", info.Slug)
	}
}

func TestResolveEmptyHostUsesDefault(t *testing.T) {
	fallback := Row{ID: uuid.New(), Slug: "wapptv", Domain: "wapptv.top"}
	lookup := &fakeLookup{rows: map[string]Row{
		"wapptv.top": fallback,
	}}
	r := NewResolver(lookup, "wapptv.top", testLogger())

	info, err := r.Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if info.ID != fallback.ID {
		t.Errorf("resolved tenant %q, want default domain tenant", info.Slug)
	}
}
