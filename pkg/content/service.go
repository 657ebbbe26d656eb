package content

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/wapptv/storefront/internal/telemetry"
	"github.com/wapptv/storefront/pkg/contact"
	"github.com/wapptv/storefront/pkg/message"
	"github.com/wapptv/storefront/pkg/plan"
	"github.com/wapptv/storefront/pkg/realtime"
	"github.com/wapptv/storefront/pkg/reseller"
	"github.com/wapptv/storefront/pkg/setting"
	"github.com/wapptv/storefront/pkg/theme"
	"github.com/wapptv/storefront/pkg/tutorial"
)

// Service assembles and caches the public content document per tenant.
type Service struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
	cache  *Cache
}

// NewService creates a content Service backed by the global pool.
func NewService(pool *pgxpool.Pool, logger *slog.Logger) *Service {
	return &Service{
		pool:   pool,
		logger: logger,
		cache:  NewCache(),
	}
}

// Get returns the tenant's document, assembling it on a cache miss.
func (s *Service) Get(ctx context.Context, tenantID uuid.UUID) *Content {
	if c, ok := s.cache.Get(tenantID); ok {
		return c
	}
	return s.Refresh(ctx, tenantID)
}

// Refresh reassembles the tenant's document and stores it unless the cache
// moved on while the aggregation ran. The returned document is always the
// freshly assembled one.
func (s *Service) Refresh(ctx context.Context, tenantID uuid.UUID) *Content {
	basedOn := s.cache.Version(tenantID)

	start := time.Now()
	doc, failed := s.aggregate(ctx, tenantID)
	telemetry.ContentRefreshDuration.Observe(time.Since(start).Seconds())

	switch {
	case failed == 0:
		telemetry.ContentRefreshTotal.WithLabelValues("ok").Inc()
	case failed == sectionCount:
		telemetry.ContentRefreshTotal.WithLabelValues("error").Inc()
	default:
		telemetry.ContentRefreshTotal.WithLabelValues("partial").Inc()
	}

	if !s.cache.Put(tenantID, doc, basedOn) {
		s.logger.Debug("discarding stale content refresh", "tenant_id", tenantID)
	}
	return doc
}

// HandleChange is the realtime listener hook: it drops the affected cache
// entries and reassembles eagerly so the next read is warm.
func (s *Service) HandleChange(ctx context.Context, tenantID uuid.UUID, event realtime.Event) {
	if tenantID == realtime.Broadcast {
		s.cache.InvalidateAll()
		s.logger.Info("content cache invalidated for all tenants", "table", event.Table)
		return
	}

	s.cache.Invalidate(tenantID)
	s.logger.Debug("content cache invalidated", "tenant_id", tenantID, "table", event.Table)
	s.Refresh(ctx, tenantID)
}

const sectionCount = 7

// aggregate runs the seven section fetches in parallel. A failing section
// logs, keeps its hard-coded default, and never poisons the others; the
// second return value is how many sections failed.
func (s *Service) aggregate(ctx context.Context, tenantID uuid.UUID) (*Content, int) {
	doc := Default()

	var failed atomic.Int32
	section := func(name string, fn func() error) func() error {
		return func() error {
			if err := fn(); err != nil {
				failed.Add(1)
				s.logger.Error("content section failed, serving defaults",
					"section", name, "tenant_id", tenantID, "error", err)
			}
			return nil
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(section("settings", func() error {
		raw, err := setting.NewStore(s.pool).Map(gctx, tenantID)
		if err != nil {
			return err
		}
		doc.applySettings(raw)
		return nil
	}))

	g.Go(section("contacts", func() error {
		store := contact.NewStore(s.pool)
		customers, err := store.List(gctx, tenantID, false)
		if err != nil {
			return err
		}
		resellers, err := store.List(gctx, tenantID, true)
		if err != nil {
			return err
		}
		doc.Contacts = contact.Phones(customers)
		doc.ResellerContacts = contact.Phones(resellers)
		return nil
	}))

	g.Go(section("messages", func() error {
		store := message.NewStore(s.pool)
		messages, err := store.ListMessages(gctx, tenantID)
		if err != nil {
			return err
		}
		buttons, err := store.ListButtonTexts(gctx, tenantID)
		if err != nil {
			return err
		}
		doc.Messages = make(map[string]string, len(messages))
		for _, m := range messages {
			doc.Messages[m.Type] = m.Text
		}
		doc.ButtonTexts = make(map[string]string, len(buttons))
		for _, b := range buttons {
			doc.ButtonTexts[b.Key] = b.Text
		}
		return nil
	}))

	g.Go(section("plans", func() error {
		items, err := plan.NewStore(s.pool).List(gctx, tenantID)
		if err != nil {
			return err
		}
		if items == nil {
			items = []plan.Plan{}
		}
		doc.Plans = items
		return nil
	}))

	g.Go(section("tutorials", func() error {
		items, err := tutorial.NewStore(s.pool).ListAll(gctx, tenantID)
		if err != nil {
			return err
		}
		app, tv := []tutorial.Step{}, []tutorial.Step{}
		for _, step := range items {
			switch step.Type {
			case tutorial.TypeTV:
				tv = append(tv, step)
			default:
				app = append(app, step)
			}
		}
		doc.TutorialsApp = app
		doc.TutorialsTV = tv
		return nil
	}))

	g.Go(section("reseller", func() error {
		settings, err := reseller.NewStore(s.pool).Get(gctx, tenantID)
		if err != nil {
			return err
		}
		doc.Reseller = settings
		return nil
	}))

	g.Go(section("theme", func() error {
		active, err := theme.NewStore(s.pool).GetActive(gctx)
		if errors.Is(err, theme.ErrNotFound) {
			// No active theme is a valid state, not a failure.
			return nil
		}
		if err != nil {
			return err
		}
		doc.Theme = &active
		return nil
	}))

	// Section closures always return nil; Wait only joins the goroutines.
	_ = g.Wait()

	return doc, int(failed.Load())
}
