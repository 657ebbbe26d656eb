package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/wapptv/storefront/internal/audit"
	"github.com/wapptv/storefront/internal/auth"
	"github.com/wapptv/storefront/internal/config"
	"github.com/wapptv/storefront/internal/httpserver"
	"github.com/wapptv/storefront/internal/platform"
	"github.com/wapptv/storefront/internal/seed"
	"github.com/wapptv/storefront/internal/telemetry"
	"github.com/wapptv/storefront/pkg/contact"
	"github.com/wapptv/storefront/pkg/content"
	"github.com/wapptv/storefront/pkg/media"
	"github.com/wapptv/storefront/pkg/message"
	"github.com/wapptv/storefront/pkg/plan"
	"github.com/wapptv/storefront/pkg/realtime"
	"github.com/wapptv/storefront/pkg/reseller"
	"github.com/wapptv/storefront/pkg/setting"
	"github.com/wapptv/storefront/pkg/tenant"
	"github.com/wapptv/storefront/pkg/theme"
	"github.com/wapptv/storefront/pkg/tutorial"
	"github.com/wapptv/storefront/pkg/user"
)

// Run is the main application entry point. It reads config, connects to
// infrastructure, and starts the appropriate mode (api or seed).
func Run(ctx context.Context, cfg *config.Config) error {
	logger := telemetry.NewLogger(cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	logger.Info("starting storefront",
		"mode", cfg.Mode,
		"listen", cfg.ListenAddr(),
		"default_domain", cfg.DefaultDomain,
	)

	// Database
	db, err := platform.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	// Redis
	rdb, err := platform.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error("closing redis", "error", err)
		}
	}()

	// Migrations
	if err := platform.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("migrations applied")

	// Metrics
	metricsReg := telemetry.NewMetricsRegistry()

	switch cfg.Mode {
	case "api":
		return runAPI(ctx, cfg, logger, db, rdb, metricsReg)
	case "seed":
		return seed.Run(ctx, db, cfg, logger)
	default:
		return fmt.Errorf("unknown mode: %s", cfg.Mode)
	}
}

func runAPI(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *pgxpool.Pool, rdb *redis.Client, metricsReg *prometheus.Registry) error {
	// OIDC authenticator (optional — nil if not configured).
	var oidcAuth *auth.OIDCAuthenticator
	if cfg.OIDCIssuerURL != "" && cfg.OIDCClientID != "" {
		var err error
		oidcAuth, err = auth.NewOIDCAuthenticator(ctx, cfg.OIDCIssuerURL, cfg.OIDCClientID)
		if err != nil {
			return fmt.Errorf("initializing OIDC authenticator: %w", err)
		}
		logger.Info("OIDC authentication enabled", "issuer", cfg.OIDCIssuerURL)
	} else {
		logger.Info("OIDC authentication disabled (OIDC_ISSUER not set)")
	}

	// Session manager. A missing secret is only tolerated in dev mode.
	secret := cfg.SessionSecret
	if secret == "" {
		if !cfg.DevMode {
			return fmt.Errorf("WAPPTV_SESSION_SECRET is required outside dev mode")
		}
		secret = auth.GenerateDevSecret()
		logger.Warn("using a generated session secret; sessions will not survive restarts")
	}
	maxAge, err := time.ParseDuration(cfg.SessionMaxAge)
	if err != nil {
		return fmt.Errorf("parsing WAPPTV_SESSION_MAX_AGE: %w", err)
	}
	sessionMgr, err := auth.NewSessionManager(secret, maxAge)
	if err != nil {
		return fmt.Errorf("initializing session manager: %w", err)
	}

	// Login rate limiter.
	loginWindow, err := time.ParseDuration(cfg.LoginWindow)
	if err != nil {
		return fmt.Errorf("parsing WAPPTV_LOGIN_WINDOW: %w", err)
	}
	limiter := auth.NewRateLimiter(rdb, cfg.LoginMaxAttempts, loginWindow)

	// Audit log writer (async, buffered).
	auditWriter := audit.NewWriter(db, logger)
	auditWriter.Start(ctx)
	defer auditWriter.Close()

	// Change notifications and the content cache they invalidate.
	notifier := realtime.NewPublisher(rdb, logger)
	contentSvc := content.NewService(db, logger)
	listener := realtime.NewListener(rdb, contentSvc.HandleChange, logger)
	go func() {
		if err := listener.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("realtime listener stopped", "error", err)
		}
	}()

	// Media storage.
	mediaStore, err := media.NewDiskStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		return fmt.Errorf("initializing media store: %w", err)
	}

	resolver := tenant.NewResolver(tenant.NewStore(db), cfg.DefaultDomain, logger)

	srv := httpserver.NewServer(cfg, logger, db, rdb, metricsReg, sessionMgr, oidcAuth, resolver)

	// Authentication endpoints.
	login := auth.NewLoginHandler(sessionMgr, db, limiter, logger, oidcAuth != nil)
	srv.Router.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", login.HandleLogin)
		r.Post("/logout", login.HandleLogout)
		r.Get("/config", login.HandleAuthConfig)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(sessionMgr, oidcAuth, cfg.DevMode, logger))
			r.Use(auth.RequireAuth)
			r.Get("/me", login.HandleMe)
			r.Post("/change-password", login.HandleChangePassword)
		})
	})

	// Public storefront content, tenant-resolved by hostname.
	contentHandler := content.NewHandler(logger, contentSvc)
	srv.PublicRouter.Mount("/content", contentHandler.PublicRoutes())

	// Uploaded media assets.
	srv.Router.Mount(cfg.MediaBaseURL, http.StripPrefix(cfg.MediaBaseURL, mediaStore.FileServer()))

	// Admin domain handlers.
	settingsSvc := setting.NewService(db, notifier, logger)

	srv.APIRouter.Mount("/tenants", tenant.NewHandler(logger, db).Routes())
	srv.APIRouter.Mount("/settings", setting.NewHandler(logger, auditWriter, db, notifier).Routes())
	srv.APIRouter.Mount("/contacts", contact.NewHandler(logger, auditWriter, db, notifier).Routes())
	srv.APIRouter.Mount("/messages", message.NewHandler(logger, auditWriter, db, notifier).Routes())
	srv.APIRouter.Mount("/plans", plan.NewHandler(logger, auditWriter, db, notifier).Routes())
	srv.APIRouter.Mount("/tutorials", tutorial.NewHandler(logger, auditWriter, db, notifier).Routes())
	srv.APIRouter.Mount("/reseller", reseller.NewHandler(logger, auditWriter, db, notifier).Routes())
	srv.APIRouter.Mount("/themes", theme.NewHandler(logger, auditWriter, db, notifier).Routes())
	srv.APIRouter.Mount("/media", media.NewHandler(logger, auditWriter, mediaStore, settingsSvc).Routes())
	srv.APIRouter.Mount("/users", user.NewHandler(logger, auditWriter, db).Routes())
	srv.APIRouter.Mount("/audit-log", audit.NewHandler(logger, db).Routes())
	srv.APIRouter.Mount("/content", contentHandler.AdminRoutes())

	httpSrv := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      srv,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server listening", "addr", cfg.ListenAddr())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
