package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/becore/core-auth/internal/core/domain"
	"github.com/becore/core-auth/internal/logger"
	"github.com/becore/core-auth/internal/token"
)

// Input carries the raw material for one authentication attempt. Each
// strategy reads only the fields it understands.
type Input struct {
	Email    string
	Password string
	Token    string
}

// Strategy validates one authentication input and resolves it to an
// identity. The set of strategies is closed: local credentials for the login
// endpoint, signed tokens for everything behind the session guard. Which
// strategy gates which route is wired explicitly at startup.
type Strategy interface {
	Name() string
	Validate(ctx context.Context, in Input) (*domain.Identity, error)
}

// LocalCredentialStrategy authenticates an email/password pair against the
// credential store.
type LocalCredentialStrategy struct {
	auth *AuthService
}

// NewLocalCredentialStrategy creates the credential-backed strategy.
func NewLocalCredentialStrategy(auth *AuthService) *LocalCredentialStrategy {
	return &LocalCredentialStrategy{auth: auth}
}

// Name implements Strategy.
func (s *LocalCredentialStrategy) Name() string { return "local" }

// Validate implements Strategy.
func (s *LocalCredentialStrategy) Validate(ctx context.Context, in Input) (*domain.Identity, error) {
	return s.auth.VerifyCredentials(ctx, in.Email, in.Password)
}

// TokenStrategy authenticates a signed session token.
type TokenStrategy struct {
	tokens *token.Issuer
}

// NewTokenStrategy creates the token-backed strategy.
func NewTokenStrategy(tokens *token.Issuer) *TokenStrategy {
	return &TokenStrategy{tokens: tokens}
}

// Name implements Strategy.
func (s *TokenStrategy) Name() string { return "token" }

// Validate implements Strategy.
func (s *TokenStrategy) Validate(ctx context.Context, in Input) (*domain.Identity, error) {
	return s.VerifyToken(ctx, in.Token)
}

// VerifyToken checks signature and expiry and resolves the embedded claims.
// Expired and tampered tokens are logged distinctly but both return
// ErrInvalidToken.
func (s *TokenStrategy) VerifyToken(ctx context.Context, tokenString string) (*domain.Identity, error) {
	log := logger.FromContext(ctx)

	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Warn().Msg("Session token expired")
		} else {
			log.Warn().Err(err).Msg("Session token rejected")
		}
		return nil, fmt.Errorf("verify token: %w", ErrInvalidToken)
	}

	identity, err := claims.Identity()
	if err != nil {
		log.Warn().Err(err).Msg("Malformed token claims")
		return nil, fmt.Errorf("resolve claims: %w", ErrInvalidToken)
	}

	return &identity, nil
}
