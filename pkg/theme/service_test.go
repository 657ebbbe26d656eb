package theme

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/wapptv/storefront/internal/db/dbtest"
	"github.com/wapptv/storefront/pkg/realtime"
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

func TestActivateLeavesExactlyOneActive(t *testing.T) {
	pool := &dbtest.Pool{}
	spy := &notifierSpy{}
	svc := NewService(pool, spy, slog.New(slog.DiscardHandler))
	id := uuid.New()

	if _, err := svc.Activate(context.Background(), id); err != nil {
		t.Fatalf("Activate() error: %v", err)
	}

	// The blanket deactivate and the targeted activate must share one
	// transaction, deactivate first, so readers never observe zero or two
	// active themes.
	if len(pool.Txs) != 1 {
		t.Fatalf("transactions = %d, want 1", len(pool.Txs))
	}
	tx := pool.Txs[0]
	if !tx.Committed {
		t.Fatal("transaction was not committed")
	}
	if len(tx.Statements) != 2 {
		t.Fatalf("statements in transaction = %d, want 2", len(tx.Statements))
	}
	if !strings.Contains(tx.Statements[0].SQL, "is_active = false") {
		t.Errorf("first statement = %q, want the deactivate", tx.Statements[0].SQL)
	}
	if !strings.Contains(tx.Statements[1].SQL, "is_active = true") {
		t.Errorf("second statement = %q, want the activate", tx.Statements[1].SQL)
	}
	if got := tx.Statements[1].Args[0]; got != id {
		t.Errorf("activate arg = %v, want %s", got, id)
	}
	if len(pool.Statements) != 2 {
		t.Errorf("statements outside the transaction: %d total, want 2", len(pool.Statements))
	}

	// Themes are global, so the change fans out to every tenant.
	if len(spy.events) != 1 {
		t.Fatalf("change events = %d, want 1", len(spy.events))
	}
	if spy.events[0] != (changeEvent{realtime.Broadcast, ChangedTable}) {
		t.Errorf("change event = %+v, want broadcast for table %s", spy.events[0], ChangedTable)
	}
}
