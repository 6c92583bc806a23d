package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/becore/core-auth/internal/core/domain"
)

// publicRoutePrefixes are the page routes reachable without a session.
var publicRoutePrefixes = []string{
	"/auth/login",
	"/auth/signup",
	"/auth/logout",
	"/auth/forgot-password",
}

// staticAssetSuffixes are exempt from gating, mirroring the asset matcher of
// the page layer.
var staticAssetSuffixes = []string{".png", ".ico", ".svg", ".css", ".js"}

// RouteGuard is the presentational gate in front of page routes. It checks
// only that the session cookie exists and redirects to the login route
// otherwise. It deliberately does NOT verify the token: verification stays
// with SessionGuard, which remains authoritative for any data-bearing
// request. This layer only buys cheap redirects at the edge.
func RouteGuard(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if isPublicRoute(path) || isStaticAsset(path) {
			c.Next()
			return
		}

		if _, err := c.Cookie(domain.SessionCookieName); err != nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Next()
	}
}

func isPublicRoute(path string) bool {
	for _, prefix := range publicRoutePrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func isStaticAsset(path string) bool {
	for _, suffix := range staticAssetSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}
