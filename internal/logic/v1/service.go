package v1

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/becore/core-auth/internal/core/domain"
	"github.com/becore/core-auth/internal/logger"
	"github.com/becore/core-auth/middleware"
)

// AuthService implements authentication business rules.
// It depends on repository interfaces (injected via constructor) and
// MUST NOT access the database or SQL directly.
type AuthService struct {
	users domain.UserRepository
	cost  int
}

// NewAuthService creates a new AuthService with the given repository dependency.
func NewAuthService(users domain.UserRepository) *AuthService {
	return &AuthService{users: users, cost: bcrypt.DefaultCost}
}

// VerifyCredentials checks an email/password pair against the credential
// store and returns the resolved identity.
//
// Every failure path — lookup error, unknown email, wrong password — returns
// ErrInvalidCredentials. The password comparison goes through bcrypt's
// constant-time compare; raw strings are never compared.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (*domain.Identity, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.verify_credentials", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	log := logger.FromContext(ctx)

	row, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		log.Error().Err(err).Msg("User lookup failed")
		return nil, fmt.Errorf("query user: %w", ErrInvalidCredentials)
	}
	if row == nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		log.Warn().Msg("Unknown email")
		return nil, fmt.Errorf("authenticate user: %w", ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		log.Warn().Msg("Password mismatch")
		return nil, fmt.Errorf("authenticate user: %w", ErrInvalidCredentials)
	}

	// Update last_login timestamp (best-effort, don't fail login)
	if updateErr := s.users.UpdateLastLogin(ctx, row.ID); updateErr != nil {
		span.RecordError(fmt.Errorf("update last_login: %w", updateErr))
	}

	span.SetAttributes(
		attribute.Int("user.id", row.ID),
		attribute.Bool("auth.success", true),
	)
	span.AddEvent("user.authenticated")

	return &domain.Identity{ID: row.ID, Email: row.Email}, nil
}

// Register creates a new user account and returns its identity.
// Uniqueness is enforced by the store's unique index, not by a pre-check, so
// concurrent signups with the same email cannot race past each other.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.Identity, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.register", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	if !isStrongPassword(password) {
		span.SetAttributes(attribute.Bool("registration.success", false))
		return nil, fmt.Errorf("validate password: %w", ErrWeakPassword)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.users.Create(ctx, email, string(passwordHash))
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrDuplicateEmail) {
			span.SetAttributes(attribute.Bool("registration.success", false))
			return nil, fmt.Errorf("register user: %w", ErrUserExists)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Bool("registration.success", true),
	)
	span.AddEvent("user.registered")

	return &domain.Identity{ID: userID, Email: email}, nil
}

// isStrongPassword requires at least 8 characters with an upper-case letter,
// a lower-case letter, a digit and a symbol.
func isStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}

	return upper && lower && digit && symbol
}
