package config

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Service:  ServiceConfig{Name: "core-auth", Port: "3001"},
		Database: DatabaseConfig{URL: "postgres://localhost:5432/users"},
		Auth: AuthConfig{
			TokenSecret:    "this-is-a-valid-session-token-secret-32b",
			TokenTTL:       time.Hour,
			CookieSameSite: "lax",
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing secret is fatal", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.TokenSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("short secret is fatal", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.TokenSecret = "too-short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing database URL is fatal", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.URL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive TTL is fatal", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.TokenTTL = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown samesite policy is fatal", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.CookieSameSite = "maybe"
		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_SameSite(t *testing.T) {
	cases := map[string]http.SameSite{
		"lax":    http.SameSiteLaxMode,
		"strict": http.SameSiteStrictMode,
		"none":   http.SameSiteNoneMode,
		"Lax":    http.SameSiteLaxMode,
	}
	for policy, expected := range cases {
		cfg := validConfig()
		cfg.Auth.CookieSameSite = policy
		mode, err := cfg.SameSite()
		require.NoError(t, err, policy)
		assert.Equal(t, expected, mode, policy)
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := Load()
		assert.Equal(t, "3001", cfg.Service.Port)
		assert.Equal(t, "lax", cfg.Auth.CookieSameSite)
		assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("PORT", "9999")
		t.Setenv("AUTH_TOKEN_TTL", "15m")
		t.Setenv("TRACING_ENABLED", "true")

		cfg := Load()
		assert.Equal(t, "9999", cfg.Service.Port)
		assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
		assert.True(t, cfg.Tracing.Enabled)
	})

	t.Run("secrets can be mounted via _FILE indirection", func(t *testing.T) {
		secretFile := filepath.Join(t.TempDir(), "secret")
		require.NoError(t, os.WriteFile(secretFile, []byte("file-held-secret-value-padded-to-32b!\n"), 0o600))
		t.Setenv("AUTH_TOKEN_SECRET_FILE", secretFile)

		cfg := Load()
		assert.Equal(t, "file-held-secret-value-padded-to-32b!", cfg.Auth.TokenSecret)
	})
}
