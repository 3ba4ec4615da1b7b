package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string

	StoreDriver string
	EventsFile  string
	DBUrl       string

	UsersFile    string
	TokenFormat  string
	JWTSecret    string
	SessionTTL   time.Duration
	CookieSecure bool

	CORSAllowedOrigins []string
	ContextTimeout     time.Duration

	EmailProvider          string
	EmailFromAddress       string
	EmailFromName          string
	AWSRegion              string
	AWSAccessKeyID         string
	AWSSecretAccessKey     string
	AnnouncementRecipients []string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the process environment is the only source.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:            env,
		Port:                   getenv("PORT", "8080"),
		StoreDriver:            getenv("STORE_DRIVER", DriverFile),
		EventsFile:             getenv("EVENTS_FILE", "data/events.json"),
		DBUrl:                  os.Getenv("DATABASE_URL"),
		UsersFile:              os.Getenv("USERS_FILE"),
		TokenFormat:            getenv("TOKEN_FORMAT", "opaque"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		CookieSecure:           env == "production",
		CORSAllowedOrigins:     splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		EmailProvider:          getenv("EMAIL_PROVIDER", "noop"),
		EmailFromAddress:       os.Getenv("EMAIL_FROM_ADDRESS"),
		EmailFromName:          getenv("EMAIL_FROM_NAME", "Sun Moon Campus Events"),
		AWSRegion:              os.Getenv("AWS_REGION"),
		AWSAccessKeyID:         os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey:     os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AnnouncementRecipients: splitList(os.Getenv("ANNOUNCEMENT_RECIPIENTS")),
	}

	var err error
	if cfg.SessionTTL, err = duration("SESSION_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ContextTimeout, err = duration("CONTEXT_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case DriverFile, DriverMemory:
	case DriverPostgres:
		if cfg.DBUrl == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q (want file, memory or postgres)", cfg.StoreDriver)
	}

	switch cfg.TokenFormat {
	case "opaque":
	case "jwt":
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required when TOKEN_FORMAT=jwt")
		}
	default:
		return nil, fmt.Errorf("unsupported TOKEN_FORMAT %q (want opaque or jwt)", cfg.TokenFormat)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, s)
	}
	return d, nil
}

// splitList parses a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
