package middleware

import (
	"context"

	"github.com/becore/core-auth/internal/core/domain"
)

// identityKey is the private context key for the resolved request identity.
// The identity travels on the request context explicitly; there is no
// ambient or global lookup.
type identityKey struct{}

// ContextWithIdentity attaches the resolved identity to the request context.
func ContextWithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity attached by the session guard,
// if any.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(domain.Identity)
	return identity, ok
}
