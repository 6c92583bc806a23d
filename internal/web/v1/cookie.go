package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/becore/core-auth/internal/core/domain"
)

// CookieWriter attaches and removes the session cookie on outbound
// responses. Flags are fixed by contract: httpOnly and secure are always
// set, the expiry always equals the token's own expiry. Only the SameSite
// policy is configurable.
type CookieWriter struct {
	sameSite http.SameSite
}

// NewCookieWriter creates a cookie writer with the given SameSite policy.
func NewCookieWriter(sameSite http.SameSite) *CookieWriter {
	return &CookieWriter{sameSite: sameSite}
}

// Attach sets the session cookie carrying the signed token.
func (w *CookieWriter) Attach(c *gin.Context, token string, expiresAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     domain.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: w.sameSite,
	})
}

// Clear deletes the session cookie. Idempotent: clearing an absent cookie
// produces the same response. The token itself is not revoked; it stays
// valid until its natural expiry.
func (w *CookieWriter) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     domain.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: w.sameSite,
	})
}
