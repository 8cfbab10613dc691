package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the web frontend
type Config struct {
	// Backend API
	API APIConfig

	// HTTP listener
	HTTP HTTPConfig

	// Session cookies
	Cookie CookieConfig

	// Logging Configuration
	Logging LoggingConfig
}

// APIConfig points at the backend REST service
type APIConfig struct {
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"gt=0"`
}

// HTTPConfig holds listener configuration
type HTTPConfig struct {
	Addr        string   `validate:"required"`
	CORSOrigins []string `validate:"dive,url"`
}

// CookieConfig controls session cookies
type CookieConfig struct {
	Domain string
	Secure bool
	MaxAge time.Duration `validate:"gt=0"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string `validate:"omitempty,oneof=debug info warn warning error fatal panic"`
	Format string `validate:"oneof=json console"` // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	timeout, err := durationEnv("LEARNHUB_HTTP_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cookieMaxAge, err := durationEnv("LEARNHUB_COOKIE_MAX_AGE", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cookieSecure, err := boolEnv("LEARNHUB_COOKIE_SECURE", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: strings.TrimRight(stringEnv("LEARNHUB_API_URL", "http://localhost:5000"), "/"),
			Timeout: timeout,
		},
		HTTP: HTTPConfig{
			Addr:        stringEnv("LEARNHUB_LISTEN_ADDR", ":3000"),
			CORSOrigins: listEnv("LEARNHUB_CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Cookie: CookieConfig{
			Domain: os.Getenv("LEARNHUB_COOKIE_DOMAIN"),
			Secure: cookieSecure,
			MaxAge: cookieMaxAge,
		},
		// Logging configuration - defaults suitable for production
		Logging: LoggingConfig{
			Level:  stringEnv("LOG_LEVEL", "info"),
			Format: stringEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func listEnv(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
