package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
)

// OIDCClaims are the claims read from an SSO provider's ID token. The
// tenant_slug claim binds the identity to a tenant; it must be configured in
// the provider's token mapping.
type OIDCClaims struct {
	Subject    string `json:"sub"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	TenantSlug string `json:"tenant_slug"`
	Role       string `json:"role"`
}

// OIDCAuthenticator verifies bearer tokens against a discovered OIDC
// provider.
type OIDCAuthenticator struct {
	Verifier *oidc.IDTokenVerifier
}

// NewOIDCAuthenticator runs OIDC discovery against the issuer and prepares a
// verifier with the provider's signing keys. This makes a network call.
func NewOIDCAuthenticator(ctx context.Context, issuerURL, clientID string) (*OIDCAuthenticator, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("discovering OIDC provider %s: %w", issuerURL, err)
	}
	return &OIDCAuthenticator{
		Verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// Authenticate verifies a bearer token and returns its claims. Tokens without
// a subject or tenant binding are rejected; unknown roles degrade to viewer.
func (a *OIDCAuthenticator) Authenticate(ctx context.Context, bearerToken string) (*OIDCClaims, error) {
	token := stripBearer(bearerToken)
	if token == "" {
		return nil, fmt.Errorf("empty bearer token")
	}

	idToken, err := a.Verifier.Verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("verifying token: %w", err)
	}

	var claims OIDCClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("extracting claims: %w", err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("token missing sub claim")
	}
	if claims.TenantSlug == "" {
		return nil, fmt.Errorf("token missing tenant_slug claim")
	}
	if !IsValidRole(claims.Role) {
		claims.Role = RoleViewer
	}

	return &claims, nil
}

func stripBearer(header string) string {
	s := strings.TrimSpace(header)
	if len(s) > 7 && strings.EqualFold(s[:7], "bearer ") {
		s = s[7:]
	}
	return strings.TrimSpace(s)
}
