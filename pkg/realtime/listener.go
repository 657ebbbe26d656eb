package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Handler is invoked for each change event received from Redis.
type Handler func(ctx context.Context, tenantID uuid.UUID, event Event)

// Listener subscribes to all tenants' change channels and dispatches events
// to a handler. Used by the content cache to refresh a tenant on demand.
type Listener struct {
	rdb     *redis.Client
	handler Handler
	logger  *slog.Logger
}

// NewListener creates a change listener with the given handler.
func NewListener(rdb *redis.Client, handler Handler, logger *slog.Logger) *Listener {
	return &Listener{rdb: rdb, handler: handler, logger: logger}
}

// Run subscribes and dispatches events until the context is cancelled.
// go-redis reconnects the subscription transparently on connection loss.
func (l *Listener) Run(ctx context.Context) error {
	sub := l.rdb.PSubscribe(ctx, ChannelPattern())
	defer sub.Close()

	// Force the subscription before consuming so startup failures surface.
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	l.logger.Info("realtime listener started", "pattern", ChannelPattern())

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			l.dispatch(ctx, msg)
		}
	}
}

func (l *Listener) dispatch(ctx context.Context, msg *redis.Message) {
	tenantID, err := TenantFromChannel(msg.Channel)
	if err != nil {
		l.logger.Warn("ignoring change event", "channel", msg.Channel, "error", err)
		return
	}

	var event Event
	if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
		l.logger.Warn("ignoring malformed change event",
			"channel", msg.Channel, "error", err)
		return
	}

	l.handler(ctx, tenantID, event)
}
