// Package v1 provides authentication business logic for API version 1.
//
// Error Handling:
// This package defines sentinel errors that represent common authentication
// failures. These errors should be wrapped with context using
// fmt.Errorf("%w") when returned from business logic methods, and checked in
// handlers with errors.Is.
//
// Credential failures are deliberately collapsed: an unknown email and a
// wrong password both surface as ErrInvalidCredentials, so callers (and
// therefore response bodies) cannot be used to enumerate accounts. Internal
// logs may record the real cause.
package v1

import "errors"

// Sentinel errors for authentication operations.
var (
	// ErrInvalidCredentials indicates the provided credentials are incorrect.
	// Covers both unknown email and wrong password; the two must stay
	// indistinguishable to callers.
	// HTTP Status: 401 Unauthorized
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates the session token is missing, tampered with
	// or expired. The distinction is logged, never returned.
	// HTTP Status: 401 Unauthorized
	ErrInvalidToken = errors.New("invalid session token")

	// ErrUserExists indicates the email already exists in the system.
	// Safe to expose: signup conflicts are specific by contract.
	// HTTP Status: 409 Conflict
	ErrUserExists = errors.New("account already exists")

	// ErrWeakPassword indicates the password does not meet the strength
	// policy (min 8 chars, upper, lower, digit, symbol).
	// HTTP Status: 400 Bad Request
	ErrWeakPassword = errors.New("password too weak")
)
