package domain

import (
	"context"
	"errors"
)

// SessionCookieName is the fixed name of the session cookie carrying the
// signed token. Shared by the cookie writer, the session guard and the
// route guard.
const SessionCookieName = "be-core-auth"

// ErrDuplicateEmail is returned by Create when the email is already taken.
// The unique index on users.email is the enforcement point; the repository
// translates the driver's unique-violation error into this sentinel so the
// Logic layer can surface a specific conflict instead of a generic failure.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRow represents a user record returned from the database.
// It includes the password hash so the Logic layer can verify credentials;
// the hash must never travel past that layer.
//
// Emails are stored and compared byte-exactly (case-sensitive), matching the
// unique index semantics of the backing store.
type UserRow struct {
	ID           int
	Email        string
	PasswordHash string
}

// Identity is the resolved, request-scoped identity of an authenticated
// caller. It carries exactly the claims embedded in the session token and
// nothing sensitive.
type Identity struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// UserRepository defines the data-access contract for user operations.
// Implementations live in internal/core/repository (Core layer).
// The Logic layer depends on this interface only — never on SQL or pgx directly.
type UserRepository interface {
	// GetByEmail returns the user matching the given email.
	// Returns (nil, nil) when no user is found.
	GetByEmail(ctx context.Context, email string) (*UserRow, error)

	// Create inserts a new user and returns the generated user ID.
	// Returns ErrDuplicateEmail when the email is already registered.
	Create(ctx context.Context, email, passwordHash string) (int, error)

	// UpdateLastLogin sets the last_login timestamp to now for the given user.
	UpdateLastLogin(ctx context.Context, userID int) error
}
