package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/becore/core-auth/internal/logger"
	logicv1 "github.com/becore/core-auth/internal/logic/v1"
	"github.com/becore/core-auth/internal/token"
	"github.com/becore/core-auth/middleware"
)

// Handler groups HTTP handlers for the auth API.
// Dependencies are injected via the constructor — no global state.
type Handler struct {
	auth    *logicv1.AuthService
	local   logicv1.Strategy
	tokens  *token.Issuer
	cookies *CookieWriter
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(auth *logicv1.AuthService, local logicv1.Strategy, tokens *token.Issuer, cookies *CookieWriter) *Handler {
	return &Handler{auth: auth, local: local, tokens: tokens, cookies: cookies}
}

// RegisterRoutes registers the auth routes on the given engine. The guard
// protects whoami; login, signup and logout stay public.
func (h *Handler) RegisterRoutes(r *gin.Engine, guard gin.HandlerFunc) {
	r.POST("/users", h.CreateUser)
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/whoami", guard, h.WhoAmI)
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Login handles HTTP request for user login.
// On success the session token travels only in the Set-Cookie header;
// the body never carries it.
func (h *Handler) Login(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.login", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	log := logger.FromContext(ctx)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		log.Warn().Err(err).Msg("Invalid login request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.local.Validate(ctx, logicv1.Input{Email: req.Email, Password: req.Password})
	if err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Msg("Login failed")

		switch {
		case errors.Is(err, logicv1.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	signed, expiresAt, err := h.tokens.Issue(*identity)
	if err != nil {
		span.RecordError(err)
		log.Error().Err(err).Msg("Token issuance failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.cookies.Attach(c, signed, expiresAt)

	log.Info().Int("user_id", identity.ID).Msg("Login successful")
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CreateUser handles HTTP request for account creation.
// POST /users
func (h *Handler) CreateUser(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.create_user", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	log := logger.FromContext(ctx)

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		log.Warn().Err(err).Msg("Invalid signup request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.auth.Register(ctx, req.Email, req.Password)
	if err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Msg("Registration failed")

		switch {
		case errors.Is(err, logicv1.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		case errors.Is(err, logicv1.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters with upper, lower, digit and symbol"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	log.Info().Int("user_id", identity.ID).Msg("Registration successful")
	c.JSON(http.StatusCreated, identity)
}

// WhoAmI returns the identity resolved by the session guard.
// GET /auth/whoami
func (h *Handler) WhoAmI(c *gin.Context) {
	_, span := middleware.StartSpan(c.Request.Context(), "http.whoami", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	identity, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		// Reachable only if the route was wired without the guard.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	c.JSON(http.StatusOK, identity)
}

// Logout deletes the session cookie. Idempotent; requires no
// authentication. The token is not revoked server-side.
// POST /auth/logout
func (h *Handler) Logout(c *gin.Context) {
	_, span := middleware.StartSpan(c.Request.Context(), "http.logout", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	h.cookies.Clear(c)
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}
