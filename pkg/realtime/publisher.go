package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/wapptv/storefront/internal/telemetry"
)

// Publisher broadcasts content-change events on Redis. Publishing is fire and
// forget: a mutation that committed must not fail because the notification
// could not be delivered.
type Publisher struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// NewPublisher creates a Redis-backed change publisher.
func NewPublisher(rdb *redis.Client, logger *slog.Logger) *Publisher {
	return &Publisher{rdb: rdb, logger: logger}
}

// ContentChanged publishes a change event for one tenant's table.
func (p *Publisher) ContentChanged(ctx context.Context, tenantID uuid.UUID, table string) {
	payload, err := json.Marshal(Event{Table: table, At: time.Now().UTC()})
	if err != nil {
		p.logger.Error("marshalling change event", "error", err)
		return
	}

	if err := p.rdb.Publish(ctx, Channel(tenantID), payload).Err(); err != nil {
		p.logger.Error("publishing change event",
			"tenant_id", tenantID, "table", table, "error", err)
		return
	}

	telemetry.RealtimeEventsTotal.WithLabelValues(table).Inc()
	p.logger.Debug("published change event", "tenant_id", tenantID, "table", table)
}

// NopNotifier discards notifications. Used by the seed command, which has no
// subscribers yet.
type NopNotifier struct{}

func (NopNotifier) ContentChanged(context.Context, uuid.UUID, string) {}
