package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all storefront configuration, read from environment variables.
type Config struct {
	Mode string `env:"APP_MODE" envDefault:"api"`

	// Server
	Host string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"APP_PORT" envDefault:"8080"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" envDefault:"postgres://localhost:5432/wapptv?sslmode=disable"`

	// Redis
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Migrations
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Tenancy. The default domain is the tenant served when the request's
	// hostname matches no other tenant.
	DefaultDomain string `env:"WAPPTV_DEFAULT_DOMAIN" envDefault:"wapptv.top"`

	// Session
	SessionSecret string `env:"WAPPTV_SESSION_SECRET"`
	SessionMaxAge string `env:"WAPPTV_SESSION_MAX_AGE" envDefault:"24h"`

	// OIDC (optional admin SSO)
	OIDCIssuerURL string `env:"OIDC_ISSUER"`
	OIDCClientID  string `env:"OIDC_CLIENT_ID"`

	// Login rate limiting
	LoginMaxAttempts int    `env:"WAPPTV_LOGIN_MAX_ATTEMPTS" envDefault:"10"`
	LoginWindow      string `env:"WAPPTV_LOGIN_WINDOW" envDefault:"15m"`

	// Media storage
	MediaDir     string `env:"WAPPTV_MEDIA_DIR" envDefault:"data/media"`
	MediaBaseURL string `env:"WAPPTV_MEDIA_BASE_URL" envDefault:"/media"`

	// Seed
	AdminEmail    string `env:"WAPPTV_ADMIN_EMAIL" envDefault:"admin@wapptv.top"`
	AdminPassword string `env:"WAPPTV_ADMIN_PASSWORD"`

	// Dev mode enables the X-Tenant-Slug auth fallback.
	DevMode bool `env:"DEV_MODE" envDefault:"false"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config from env: %w", err)
	}
	return cfg, nil
}

// ListenAddr returns the address the HTTP server should listen on.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
