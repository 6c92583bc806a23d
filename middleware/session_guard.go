package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/becore/core-auth/internal/core/domain"
)

// authRequiredMessage is the single message for every guard rejection.
// Absent, tampered and expired cookies must be indistinguishable to the
// caller; internal logs carry the real cause.
const authRequiredMessage = "Authentication required"

// TokenVerifier resolves a raw session token to an identity.
// Satisfied by logic/v1.TokenStrategy.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.Identity, error)
}

// SessionGuard is the authoritative gate for protected endpoints. It
// extracts the session cookie, verifies the token's signature and expiry,
// and attaches the resolved identity to the request context. The check is
// stateless: the token plus the static secret are all the state involved.
func SessionGuard(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(domain.SessionCookieName)
		if err != nil || cookie == "" {
			zerolog.Ctx(c.Request.Context()).Warn().Msg("Session cookie absent")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": authRequiredMessage})
			return
		}

		identity, err := verifier.VerifyToken(c.Request.Context(), cookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": authRequiredMessage})
			return
		}

		ctx := ContextWithIdentity(c.Request.Context(), *identity)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
