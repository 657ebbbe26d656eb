// Package realtime propagates content-change notifications between the admin
// mutation path and the public content cache over Redis pub/sub. Channels are
// scoped per tenant so a subscriber only refreshes the tenant that actually
// changed.
package realtime

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const channelPrefix = "content:changed:"

// Broadcast is the tenant ID used for events that affect every tenant, such
// as a change to the global theme. Subscribers treat it as "refresh all".
var Broadcast = uuid.Nil

// Event is the payload published on a tenant's change channel.
type Event struct {
	Table string    `json:"table"`
	At    time.Time `json:"at"`
}

// Notifier is implemented by the Publisher. Mutation services depend on this
// interface so tests can observe notifications without Redis.
type Notifier interface {
	ContentChanged(ctx context.Context, tenantID uuid.UUID, table string)
}

// Channel returns the pub/sub channel for a tenant's content changes.
func Channel(tenantID uuid.UUID) string {
	return channelPrefix + tenantID.String()
}

// ChannelPattern is the PSUBSCRIBE pattern covering all tenants.
func ChannelPattern() string {
	return channelPrefix + "*"
}

// TenantFromChannel extracts the tenant ID from a change channel name.
func TenantFromChannel(channel string) (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(channel, channelPrefix)
	if !ok {
		return uuid.Nil, fmt.Errorf("unexpected channel %q", channel)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing tenant from channel %q: %w", channel, err)
	}
	return id, nil
}
