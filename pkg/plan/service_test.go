package plan

import (
	"context"
	"log/slog"
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

func TestReplaceAssignsDensePositions(t *testing.T) {
	pool := &dbtest.Pool{}
	spy := &notifierSpy{}
	svc := NewService(pool, spy, slog.New(slog.DiscardHandler))
	tenantID := uuid.New()

	// Deliberately scrambled incoming sort orders: array order wins.
	plans := []InsertParams{
		{Name: "Anual", Price: "R$ 250,00", Period: "ano", SortOrder: 99},
		{Name: "Mensal", Price: "R$ 25,00", Period: "mês"},
		{Name: "Trimestral", Price: "R$ 70,00", Period: "trimestre", Popular: true, SortOrder: -3},
	}
	if _, err := svc.Replace(context.Background(), tenantID, plans); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}

	if len(pool.Txs) != 1 {
		t.Fatalf("transactions = %d, want 1", len(pool.Txs))
	}
	tx := pool.Txs[0]
	if !tx.Committed {
		t.Fatal("transaction was not committed")
	}

	// Delete, one insert per plan, reread.
	stmts := tx.Statements
	if len(stmts) != len(plans)+2 {
		t.Fatalf("statements = %d, want %d", len(stmts), len(plans)+2)
	}
	if !strings.Contains(stmts[0].SQL, "DELETE FROM plans") {
		t.Errorf("first statement = %q, want the delete", stmts[0].SQL)
	}
	for i, p := range plans {
		stmt := stmts[i+1]
		if !strings.Contains(stmt.SQL, "INSERT INTO plans") {
			t.Fatalf("statement %d = %q, want an insert", i+1, stmt.SQL)
		}
		if got := stmt.Args[1]; got != p.Name {
			t.Errorf("insert %d name = %v, want %q", i, got, p.Name)
		}
		if got := stmt.Args[6]; got != i+1 {
			t.Errorf("insert %d sort_order = %v, want %d", i, got, i+1)
		}
	}

	if len(spy.events) != 1 {
		t.Fatalf("change events = %d, want 1", len(spy.events))
	}
	if spy.events[0] != (changeEvent{tenantID, ChangedTable}) {
		t.Errorf("change event = %+v, want tenant %s table %s", spy.events[0], tenantID, ChangedTable)
	}
}

func TestReplaceScopesQueriesToTenant(t *testing.T) {
	pool := &dbtest.Pool{}
	svc := NewService(pool, &notifierSpy{}, slog.New(slog.DiscardHandler))
	tenantID := uuid.New()

	if _, err := svc.Replace(context.Background(), tenantID, []InsertParams{
		{Name: "Mensal", Price: "R$ 25,00", Period: "mês"},
	}); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}

	for i, stmt := range pool.Statements {
		if !strings.Contains(stmt.SQL, "tenant_id") {
			t.Errorf("statement %d lacks a tenant filter: %q", i, stmt.SQL)
		}
		if len(stmt.Args) == 0 || stmt.Args[0] != tenantID {
			t.Errorf("statement %d first arg = %v, want tenant %s", i, stmt.Args, tenantID)
		}
	}
}
