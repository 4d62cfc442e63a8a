package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// PlaceholderAPIKey is the value shipped in example .env files.
const PlaceholderAPIKey = "YOUR_API_KEY_HERE"

type Config struct {
	// HTTP server
	Server ServerConfig

	// CSRF
	Security SecurityConfig

	// YouTube Data API
	APIs APIConfig

	// fan-out limits
	Limits LimitsConfig

	Log LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string
	Environment     string // development, staging, production
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// SecurityConfig holds the optional CSRF protection settings.
// CSRF protection is off when CSRFSecret is empty.
type SecurityConfig struct {
	CSRFSecret         string
	CSRFTrustedOrigins []string
	SecureCookies      bool // true in production
}

// APIConfig holds YouTube Data API settings.
type APIConfig struct {
	YouTubeAPIKey     string
	YouTubeOAuthToken string
	YouTubeBaseURL    string
	CallTimeout       time.Duration
}

type LimitsConfig struct {
	VideoFetchConcurrency int
}

type LogConfig struct {
	Level string
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// CSRFEnabled reports whether a CSRF secret was configured.
func (c *Config) CSRFEnabled() bool {
	return c.Security.CSRFSecret != ""
}

// UsesPlaceholderKey reports whether no real credential was configured.
// Startup continues; the first remote call fails and is reported per request.
func (c *Config) UsesPlaceholderKey() bool {
	return c.APIs.YouTubeOAuthToken == "" &&
		(c.APIs.YouTubeAPIKey == "" || c.APIs.YouTubeAPIKey == PlaceholderAPIKey)
}

func Load() (*Config, error) {
	// Load .env file if it exists; in production env vars come from the platform
	_ = godotenv.Load()

	var errs []error
	duration := func(key, def string) time.Duration {
		d, err := time.ParseDuration(getEnvOrDefault(key, def))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
		return d
	}
	integer := func(key, def string) int {
		n, err := strconv.Atoi(getEnvOrDefault(key, def))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
		return n
	}

	cfg := &Config{}

	cfg.Server = ServerConfig{
		Port:            getEnvOrDefault("SERVER_PORT", "8080"),
		Environment:     getEnvOrDefault("APP_ENV", "development"),
		ReadTimeout:     duration("SERVER_READ_TIMEOUT", "15s"),
		WriteTimeout:    duration("SERVER_WRITE_TIMEOUT", "30s"),
		IdleTimeout:     duration("SERVER_IDLE_TIMEOUT", "60s"),
		ShutdownTimeout: duration("SHUTDOWN_TIMEOUT", "10s"),
	}

	cfg.Security = SecurityConfig{
		CSRFSecret:         os.Getenv("CSRF_SECRET"),
		CSRFTrustedOrigins: strings.Fields(os.Getenv("CSRF_TRUSTED_ORIGINS")),
		SecureCookies:      cfg.Server.Environment == "production",
	}

	cfg.APIs = APIConfig{
		YouTubeAPIKey:     getEnvOrDefault("YOUTUBE_API_KEY", PlaceholderAPIKey),
		YouTubeOAuthToken: os.Getenv("YOUTUBE_OAUTH_TOKEN"),
		YouTubeBaseURL:    os.Getenv("YOUTUBE_API_BASE_URL"),
		CallTimeout:       duration("YOUTUBE_CALL_TIMEOUT", "10s"),
	}

	cfg.Limits = LimitsConfig{
		VideoFetchConcurrency: integer("VIDEO_FETCH_CONCURRENCY", "1"),
	}

	cfg.Log = LogConfig{
		Level: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration parsing failed:\n%w", errors.Join(errs...))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate fails fast on values that would otherwise break a request later.
func (c *Config) validate() error {
	var errs []error

	if c.Security.CSRFSecret != "" && len(c.Security.CSRFSecret) < 32 {
		errs = append(errs, errors.New("CSRF_SECRET must be at least 32 characters"))
	}

	if c.APIs.CallTimeout <= 0 {
		errs = append(errs, errors.New("YOUTUBE_CALL_TIMEOUT must be positive"))
	}

	if c.Limits.VideoFetchConcurrency < 1 || c.Limits.VideoFetchConcurrency > 10 {
		errs = append(errs, errors.New("VIDEO_FETCH_CONCURRENCY must be between 1 and 10"))
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.Server.Environment] {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of: development, staging, production (got: %s)", c.Server.Environment))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%w", errors.Join(errs...))
	}

	return nil
}

// getEnvOrDefault returns the env value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// MustLoad is like Load but panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
