// Package seed provisions the default tenant, an admin account, and the
// built-in theme presets. It is idempotent: re-running ensures the resources
// exist without duplicating them.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/wapptv/storefront/internal/config"
	"github.com/wapptv/storefront/pkg/contact"
	"github.com/wapptv/storefront/pkg/plan"
	"github.com/wapptv/storefront/pkg/realtime"
	"github.com/wapptv/storefront/pkg/tenant"
	"github.com/wapptv/storefront/pkg/theme"
	"github.com/wapptv/storefront/pkg/user"
)

// presets are the built-in color palettes. The first one becomes active when
// no theme is active yet.
var presets = []theme.EnsureParams{
	{Name: "Esmeralda", Slug: "emerald", Primary: "142 71% 45%", Secondary: "160 84% 39%", Accent: "142 76% 36%", Background: "222 47% 11%", Foreground: "210 40% 98%"},
	{Name: "Oceano", Slug: "ocean", Primary: "217 91% 60%", Secondary: "199 89% 48%", Accent: "224 76% 48%", Background: "222 47% 11%", Foreground: "210 40% 98%"},
	{Name: "Violeta", Slug: "violet", Primary: "262 83% 58%", Secondary: "271 91% 65%", Accent: "263 70% 50%", Background: "224 71% 4%", Foreground: "210 20% 98%"},
	{Name: "Rubi", Slug: "ruby", Primary: "0 72% 51%", Secondary: "12 76% 61%", Accent: "0 84% 60%", Background: "20 14% 4%", Foreground: "60 9% 98%"},
}

// Run provisions the default tenant (served on the fallback domain), its
// admin user, the theme presets, and a starter content set.
func Run(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) error {
	tenants := tenant.NewStore(pool)

	row, err := tenants.GetBySlug(ctx, "wapptv")
	switch {
	case err == nil:
		logger.Info("seed: tenant 'wapptv' already exists", "tenant_id", row.ID)
	case errors.Is(err, pgx.ErrNoRows):
		row, err = tenants.Create(ctx, tenant.CreateParams{
			Name:   "Wapp TV",
			Slug:   "wapptv",
			Domain: cfg.DefaultDomain,
			Active: true,
		})
		if err != nil {
			return fmt.Errorf("creating default tenant: %w", err)
		}
		logger.Info("seed: created default tenant", "tenant_id", row.ID, "domain", cfg.DefaultDomain)
	default:
		return fmt.Errorf("looking up default tenant: %w", err)
	}

	if err := ensureAdmin(ctx, pool, row, cfg, logger); err != nil {
		return err
	}
	if err := ensureThemes(ctx, pool, logger); err != nil {
		return err
	}
	return ensureStarterContent(ctx, pool, row, logger)
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, t tenant.Row, cfg *config.Config, logger *slog.Logger) error {
	users := user.NewStore(pool)

	n, err := users.CountByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		return fmt.Errorf("checking admin user: %w", err)
	}
	if n > 0 {
		logger.Info("seed: admin user already exists", "email", cfg.AdminEmail)
		return nil
	}

	password := cfg.AdminPassword
	if password == "" {
		if !cfg.DevMode {
			return fmt.Errorf("WAPPTV_ADMIN_PASSWORD is required to seed outside dev mode")
		}
		password = "admin"
		logger.Warn("seed: WAPPTV_ADMIN_PASSWORD not set, using default dev password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	u, err := users.Create(ctx, t.ID, user.CreateUserParams{
		Email:        cfg.AdminEmail,
		DisplayName:  "Administrador",
		Role:         "admin",
		PasswordHash: string(hash),
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}
	logger.Info("seed: created admin user", "email", u.Email, "id", u.ID)
	return nil
}

func ensureThemes(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	themes := theme.NewStore(pool)

	for _, p := range presets {
		if _, err := themes.Ensure(ctx, p); err != nil {
			return err
		}
	}
	logger.Info("seed: ensured theme presets", "count", len(presets))

	// Exactly one theme must be active for the palette to apply.
	if _, err := themes.GetActive(ctx); errors.Is(err, theme.ErrNotFound) {
		svc := theme.NewService(pool, realtime.NopNotifier{}, logger)
		list, err := themes.List(ctx)
		if err != nil {
			return err
		}
		activated, err := svc.Activate(ctx, list[0].ID)
		if err != nil {
			return fmt.Errorf("activating default theme: %w", err)
		}
		logger.Info("seed: activated default theme", "slug", activated.Slug)
	} else if err != nil {
		return err
	}
	return nil
}

// ensureStarterContent fills an empty default tenant with a plan table and a
// sales contact so the site renders with data instead of copy fallbacks.
func ensureStarterContent(ctx context.Context, pool *pgxpool.Pool, t tenant.Row, logger *slog.Logger) error {
	plans := plan.NewStore(pool)
	existing, err := plans.List(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("listing plans: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("seed: starter content already present")
		return nil
	}

	notifier := realtime.NopNotifier{}

	planSvc := plan.NewService(pool, notifier, logger)
	if _, err := planSvc.Replace(ctx, t.ID, []plan.InsertParams{
		{Name: "Mensal", Price: "R$ 25,00", Period: "/mês", Features: []string{"+ de 1.000 canais", "Filmes e séries", "Qualidade Full HD", "2 telas simultâneas"}},
		{Name: "Trimestral", Price: "R$ 60,00", Period: "/trimestre", Features: []string{"+ de 1.000 canais", "Filmes e séries", "Qualidade Full HD", "2 telas simultâneas", "Suporte prioritário"}, Popular: true},
		{Name: "Anual", Price: "R$ 200,00", Period: "/ano", Features: []string{"+ de 1.000 canais", "Filmes e séries", "Qualidade Full HD", "3 telas simultâneas", "Suporte prioritário"}},
	}); err != nil {
		return fmt.Errorf("seeding plans: %w", err)
	}

	contactSvc := contact.NewService(pool, notifier, logger)
	if _, err := contactSvc.Replace(ctx, t.ID, false, []string{"+5511999999999"}); err != nil {
		return fmt.Errorf("seeding contacts: %w", err)
	}

	logger.Info("seed: created starter content", "tenant_id", t.ID)
	return nil
}
