package tenant

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
)

// Lookup retrieves tenant rows for the resolver. The Store satisfies it; tests
// can provide their own implementation.
type Lookup interface {
	GetByHostname(ctx context.Context, hostname string) (Row, error)
	GetByDomain(ctx context.Context, domain string) (Row, error)
}

// Resolver maps a request hostname to a tenant. When no active tenant matches
// the hostname, it falls back to the configured default domain. Only failure
// of both lookups is reported; a resolution failure must never silently serve
// another tenant's content.
type Resolver struct {
	lookup        Lookup
	defaultDomain string
	logger        *slog.Logger
}

// NewResolver creates a hostname resolver with the given fallback domain.
func NewResolver(lookup Lookup, defaultDomain string, logger *slog.Logger) *Resolver {
	return &Resolver{
		lookup:        lookup,
		defaultDomain: defaultDomain,
		logger:        logger,
	}
}

// Hostname normalises a Host header value: the port is stripped and the
// result lowercased.
func Hostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(strings.TrimSpace(host))
}

// Resolve maps a Host header value to a tenant. Lookups are tried serially:
// first an exact domain/subdomain match on an active tenant, then the default
// domain.
func (r *Resolver) Resolve(ctx context.Context, host string) (*Info, error) {
	hostname := Hostname(host)
	if hostname == "" {
		hostname = r.defaultDomain
	}

	row, err := r.lookup.GetByHostname(ctx, hostname)
	if err == nil {
		return row.ToInfo(), nil
	}

	if hostname != r.defaultDomain {
		r.logger.Debug("no tenant for hostname, falling back to default domain",
			"hostname", hostname, "default", r.defaultDomain)
	}

	fallback, fbErr := r.lookup.GetByDomain(ctx, r.defaultDomain)
	if fbErr != nil {
		return nil, fmt.Errorf("resolving tenant for %q: %w (default domain %q: %v)",
			hostname, err, r.defaultDomain, fbErr)
	}
	return fallback.ToInfo(), nil
}
