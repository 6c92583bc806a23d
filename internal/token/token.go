// Package token mints and verifies the signed session tokens carried by the
// session cookie. Tokens are self-contained: signature plus embedded expiry
// are all the state needed to validate a request, so no server-side session
// store exists and no token can be revoked before its natural expiry.
package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/becore/core-auth/internal/core/domain"
)

// Config holds token generation configuration. The secret is validated at
// startup (config.Validate); a missing secret never surfaces per-request.
type Config struct {
	Secret string
	TTL    time.Duration
}

// Claims is the payload embedded in a session token: user id (subject) and
// email, nothing else. The password hash must never appear here.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity resolves the claims into the caller identity.
func (c *Claims) Identity() (domain.Identity, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parse subject %q: %w", c.Subject, err)
	}
	return domain.Identity{ID: id, Email: c.Email}, nil
}

// Issuer mints and verifies HS256-signed session tokens.
type Issuer struct {
	cfg Config
}

// NewIssuer creates a new token issuer.
func NewIssuer(cfg Config) *Issuer {
	return &Issuer{cfg: cfg}
}

// Issue signs a token for the given identity and returns it together with
// its expiry. The expiry is decoded back out of the minted token rather than
// recomputed, so the cookie expiry and the token's exp claim cannot drift.
func (i *Issuer) Issue(identity domain.Identity) (string, time.Time, error) {
	now := time.Now()
	claims := Claims{
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(identity.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.TTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	minted, err := i.Verify(signed)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("decode minted token: %w", err)
	}

	return signed, minted.ExpiresAt.Time, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Expired and tampered tokens both fail; callers must not expose the
// distinction, though their logs may.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(i.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
