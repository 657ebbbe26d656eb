package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

const sessionIssuer = "wapptv"

// SessionClaims are the claims embedded in a self-issued session JWT.
type SessionClaims struct {
	Subject     string `json:"sub"`
	Email       string `json:"email"`
	DisplayName string `json:"name,omitempty"`
	Role        string `json:"role"`
	TenantSlug  string `json:"tenant_slug"`
	TenantID    string `json:"tenant_id"`
	UserID      string `json:"user_id"`
	Method      string `json:"method"` // "oidc" or "session"
}

// SessionManager signs and validates the HMAC-SHA256 session JWTs issued by
// the email/password login path.
type SessionManager struct {
	signingKey []byte
	signer     jose.Signer
	maxAge     time.Duration
}

// NewSessionManager creates a session manager. Secrets shorter than 32 bytes
// are rejected.
func NewSessionManager(secret string, maxAge time.Duration) (*SessionManager, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 bytes, got %d", len(secret))
	}

	key := []byte(secret)
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: key},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating signer: %w", err)
	}

	return &SessionManager{signingKey: key, signer: signer, maxAge: maxAge}, nil
}

// GenerateDevSecret returns a random hex secret for dev setups that have not
// configured one. Sessions signed with it die with the process.
func GenerateDevSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("reading random bytes: %v", err))
	}
	return hex.EncodeToString(b)
}

// IssueToken signs a JWT carrying the given claims, valid for the configured
// session lifetime.
func (sm *SessionManager) IssueToken(claims SessionClaims) (string, error) {
	now := time.Now()
	registered := jwt.Claims{
		Subject:   claims.Subject,
		Issuer:    sessionIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Expiry:    jwt.NewNumericDate(now.Add(sm.maxAge)),
	}

	token, err := jwt.Signed(sm.signer).Claims(registered).Claims(claims).Serialize()
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return token, nil
}

// ValidateToken checks signature, issuer, and expiry and returns the claims.
func (sm *SessionManager) ValidateToken(raw string) (*SessionClaims, error) {
	tok, err := jwt.ParseSigned(raw, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	var registered jwt.Claims
	var claims SessionClaims
	if err := tok.Claims(sm.signingKey, &registered, &claims); err != nil {
		return nil, fmt.Errorf("verifying token: %w", err)
	}

	expected := jwt.Expected{Issuer: sessionIssuer, Time: time.Now()}
	if err := registered.ValidateWithLeeway(expected, 5*time.Second); err != nil {
		return nil, fmt.Errorf("validating claims: %w", err)
	}

	return &claims, nil
}
