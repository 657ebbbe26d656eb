package contact

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

func TestReplaceStoresExactlyTheNewGroup(t *testing.T) {
	tests := []struct {
		name       string
		isReseller bool
		phones     []string
	}{
		{"customer group", false, []string{"+5511999990001", "+5511999990002", "+5511999990003"}},
		{"reseller group", true, []string{"+5511888880001"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := &dbtest.Pool{}
			spy := &notifierSpy{}
			svc := NewService(pool, spy, slog.New(slog.DiscardHandler))
			tenantID := uuid.New()

			if _, err := svc.Replace(context.Background(), tenantID, tt.isReseller, tt.phones); err != nil {
				t.Fatalf("Replace() error: %v", err)
			}

			if len(pool.Txs) != 1 {
				t.Fatalf("transactions = %d, want 1", len(pool.Txs))
			}
			tx := pool.Txs[0]
			if !tx.Committed {
				t.Fatal("transaction was not committed")
			}

			// One delete for this group only, then exactly the new rows in
			// order, then the reread. Nothing touches the other group.
			stmts := tx.Statements
			if len(stmts) != len(tt.phones)+2 {
				t.Fatalf("statements = %d, want %d", len(stmts), len(tt.phones)+2)
			}
			if !strings.Contains(stmts[0].SQL, "DELETE FROM contacts") {
				t.Errorf("first statement = %q, want the delete", stmts[0].SQL)
			}
			if got := stmts[0].Args[1]; got != tt.isReseller {
				t.Errorf("delete is_reseller = %v, want %v", got, tt.isReseller)
			}
			for i, phone := range tt.phones {
				stmt := stmts[i+1]
				if !strings.Contains(stmt.SQL, "INSERT INTO contacts") {
					t.Fatalf("statement %d = %q, want an insert", i+1, stmt.SQL)
				}
				if got := stmt.Args[1]; got != phone {
					t.Errorf("insert %d phone = %v, want %q", i, got, phone)
				}
				if got := stmt.Args[2]; got != tt.isReseller {
					t.Errorf("insert %d is_reseller = %v, want %v", i, got, tt.isReseller)
				}
				if got := stmt.Args[3]; got != i+1 {
					t.Errorf("insert %d sort_order = %v, want %d", i, got, i+1)
				}
			}
			for i, stmt := range stmts {
				if stmt.Args[0] != tenantID {
					t.Errorf("statement %d first arg = %v, want tenant %s", i, stmt.Args[0], tenantID)
				}
			}

			if len(spy.events) != 1 || spy.events[0] != (changeEvent{tenantID, ChangedTable}) {
				t.Errorf("change events = %+v, want one for tenant %s table %s", spy.events, tenantID, ChangedTable)
			}
		})
	}
}
