package realtime

import (
	"testing"

	"github.com/google/uuid"
)

func TestChannelRoundTrip(t *testing.T) {
	id := uuid.New()
	ch := Channel(id)

	got, err := TenantFromChannel(ch)
	if err != nil {
		t.Fatalf("TenantFromChannel(%q): %v", ch, err)
	}
	if got != id {
		t.Errorf("tenant = %v, want %v", got, id)
	}
}

func TestTenantFromChannelRejectsGarbage(t *testing.T) {
	for _, ch := range []string{
		"content:changed:",
		"content:changed:not-a-uuid",
		"other:channel",
		"",
	} {
		if _, err := TenantFromChannel(ch); err == nil {
			t.Errorf("TenantFromChannel(%q) succeeded, want error", ch)
		}
	}
}
