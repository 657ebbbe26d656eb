package reseller

import (
	"context"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/wapptv/storefront/internal/db/dbtest"
)

type changeEvent struct {
	tenantID uuid.UUID
	table    string
}

type notifierSpy struct {
	events []changeEvent
}

func (n *notifierSpy) ContentChanged(_ context.Context, tenantID uuid.UUID, table string) {
	n.events = append(n.events, changeEvent{tenantID, table})
}

func TestSaveIsIdempotent(t *testing.T) {
	pool := &dbtest.Pool{}
	spy := &notifierSpy{}
	svc := NewService(pool, spy, slog.New(slog.DiscardHandler))
	tenantID := uuid.New()

	tiers := []Tier{
		{Credits: 10, Price: "R$ 100,00", Label: "10 créditos"},
		{Credits: 30, Price: "R$ 270,00", Label: "30 créditos"},
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.Save(context.Background(), tenantID, true, tiers); err != nil {
			t.Fatalf("Save() #%d error: %v", i+1, err)
		}
	}

	// Each save is an upsert followed by a reread.
	if len(pool.Statements) != 4 {
		t.Fatalf("statements = %d, want 4", len(pool.Statements))
	}
	first, second := pool.Statements[0], pool.Statements[2]
	if !strings.Contains(first.SQL, "ON CONFLICT (tenant_id)") {
		t.Errorf("upsert = %q, want single-row conflict handling on tenant_id", first.SQL)
	}
	if first.SQL != second.SQL {
		t.Errorf("second save issued different SQL:\nfirst:  %q\nsecond: %q", first.SQL, second.SQL)
	}
	if !reflect.DeepEqual(first.Args, second.Args) {
		t.Errorf("second save issued different args:\nfirst:  %v\nsecond: %v", first.Args, second.Args)
	}

	for i, stmt := range pool.Statements {
		if len(stmt.Args) == 0 || stmt.Args[0] != tenantID {
			t.Errorf("statement %d first arg = %v, want tenant %s", i, stmt.Args, tenantID)
		}
	}

	if len(spy.events) != 2 {
		t.Fatalf("change events = %d, want 2", len(spy.events))
	}
	for _, ev := range spy.events {
		if ev != (changeEvent{tenantID, ChangedTable}) {
			t.Errorf("change event = %+v, want tenant %s table %s", ev, tenantID, ChangedTable)
		}
	}
}
