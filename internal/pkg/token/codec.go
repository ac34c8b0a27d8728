// internal/pkg/token/codec.go
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// Type discriminates what a session token may be used for. The type is fixed
// at issuance and checked on every verification: an access token is never
// accepted where a refresh token is required, and vice versa.
type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

type Config struct {
	Secret     string
	Algorithm  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Claims is the decoded content of a session token.
type Claims struct {
	TokenType Type `json:"type"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens. It holds no mutable state and is
// safe to share across concurrent requests.
type Codec struct {
	secret     []byte
	method     jwt.SigningMethod
	algorithm  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec builds a codec from configuration. It fails only on
// misconfiguration, which callers treat as fatal at startup.
func NewCodec(cfg Config) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("token: signing secret is required")
	}
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("token: unsupported signing algorithm %q", cfg.Algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token: algorithm %q is not an HMAC method", cfg.Algorithm)
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, fmt.Errorf("token: token TTLs must be positive")
	}
	return &Codec{
		secret:     []byte(cfg.Secret),
		method:     method,
		algorithm:  cfg.Algorithm,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}, nil
}

// Issue signs a token for the given subject with an absolute expiry of
// now + ttl.
func (c *Codec) Issue(subject string, typ Type, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        ulid.Make().String(),
		},
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// IssueAccess issues an access token with the configured access TTL.
func (c *Codec) IssueAccess(subject string) (string, error) {
	return c.Issue(subject, TypeAccess, c.accessTTL)
}

// IssueRefresh issues a refresh token with the configured refresh TTL.
func (c *Codec) IssueRefresh(subject string) (string, error) {
	return c.Issue(subject, TypeRefresh, c.refreshTTL)
}

// Verify returns the decoded claims if the signature is valid and the token
// has not expired, and nil otherwise. Absence is the only failure signal:
// callers decide what a nil result means. Expiry is checked against the wall
// clock with no grace window.
func (c *Codec) Verify(tokenString string) *Claims {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{c.algorithm}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil
	}
	return claims
}

// AccessTTL reports the configured access-token lifetime.
func (c *Codec) AccessTTL() time.Duration {
	return c.accessTTL
}
