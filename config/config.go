package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServiceConfig identifies the running service instance.
type ServiceConfig struct {
	Name    string
	Version string
	Env     string
	Port    string
}

// LoggingConfig controls the zerolog global level.
type LoggingConfig struct {
	Level string
}

// TracingConfig controls OpenTelemetry trace export.
type TracingConfig struct {
	Enabled    bool
	Endpoint   string
	SampleRate float64
}

// ProfilingConfig controls Pyroscope continuous profiling.
type ProfilingConfig struct {
	Enabled  bool
	Endpoint string
}

// DatabaseConfig holds the credential store connection string.
type DatabaseConfig struct {
	URL string
}

// AuthConfig holds the session token parameters. TokenSecret signs every
// session token; its absence is a startup failure, never a request failure.
type AuthConfig struct {
	TokenSecret    string
	TokenTTL       time.Duration
	CookieSameSite string
}

// ShutdownConfig controls the graceful shutdown sequence.
type ShutdownConfig struct {
	Timeout             time.Duration
	ReadinessDrainDelay time.Duration
}

// Config is the full application configuration, constructed once at startup
// and passed by reference into constructors. No component reads the
// environment after Load returns.
type Config struct {
	Service   ServiceConfig
	Logging   LoggingConfig
	Tracing   TracingConfig
	Profiling ProfilingConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Shutdown  ShutdownConfig
}

// Load reads configuration from environment variables with sensible defaults.
// A local .env file is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Service: ServiceConfig{
			Name:    getEnv("SERVICE_NAME", "core-auth"),
			Version: getEnv("SERVICE_VERSION", "dev"),
			Env:     getEnv("SERVICE_ENV", "development"),
			Port:    getEnv("PORT", "3001"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Tracing: TracingConfig{
			Enabled:    getBool("TRACING_ENABLED", false),
			Endpoint:   getEnv("TRACING_ENDPOINT", "localhost:4318"),
			SampleRate: getFloat("TRACING_SAMPLE_RATE", 1.0),
		},
		Profiling: ProfilingConfig{
			Enabled:  getBool("PROFILING_ENABLED", false),
			Endpoint: getEnv("PROFILING_ENDPOINT", "http://localhost:4040"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Auth: AuthConfig{
			TokenSecret:    getEnv("AUTH_TOKEN_SECRET", ""),
			TokenTTL:       getDuration("AUTH_TOKEN_TTL", time.Hour),
			CookieSameSite: getEnv("SESSION_COOKIE_SAMESITE", "lax"),
		},
		Shutdown: ShutdownConfig{
			Timeout:             getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			ReadinessDrainDelay: getDuration("READINESS_DRAIN_DELAY", 0),
		},
	}
}

// Validate checks the configuration for fatal misconfiguration. Startup must
// abort when it returns an error.
func (c *Config) Validate() error {
	if c.Service.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth.TokenSecret == "" {
		return fmt.Errorf("AUTH_TOKEN_SECRET is required")
	}
	if len(c.Auth.TokenSecret) < 32 {
		return fmt.Errorf("AUTH_TOKEN_SECRET must be at least 32 bytes")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL must be positive")
	}
	if _, err := c.SameSite(); err != nil {
		return err
	}
	return nil
}

// SameSite maps the configured cookie policy onto http.SameSite.
// The policy is a deliberate configuration decision: Strict breaks the
// redirect-back-after-login flow, None requires cross-site use the
// application does not have, so Lax is the default.
func (c *Config) SameSite() (http.SameSite, error) {
	switch strings.ToLower(c.Auth.CookieSameSite) {
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return 0, fmt.Errorf("SESSION_COOKIE_SAMESITE must be one of lax, strict, none; got %q", c.Auth.CookieSameSite)
	}
}

// GetShutdownTimeoutDuration returns the HTTP server shutdown timeout.
func (c *Config) GetShutdownTimeoutDuration() time.Duration {
	return c.Shutdown.Timeout
}

// GetReadinessDrainDelayDuration returns how long to fail readiness before
// shutting the HTTP server down.
func (c *Config) GetReadinessDrainDelayDuration() time.Duration {
	return c.Shutdown.ReadinessDrainDelay
}

// getEnv retrieves an environment variable or returns a fallback value.
// A KEY_FILE variant pointing at a file takes precedence, so secrets can be
// mounted instead of passed inline.
func getEnv(key, fallback string) string {
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
