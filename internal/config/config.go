package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field has a sensible default; only SUPABASE_URL is required.
type Config struct {
	// Server
	HTTPPort        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Hosted data store (REST API)
	StoreURL       string
	ServiceRoleKey string
	AnonKey        string

	// Optional direct Postgres probe; empty disables /api/health/db
	DatabaseURL string

	// Probe
	ProbeCollection string
	ProbeTimeout    time.Duration

	// Rate limiting: maximum requests per second on the public probe endpoints
	RateLimit int
}

func Load() (*Config, error) {
	storeURL := os.Getenv("SUPABASE_URL")
	if storeURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ReadTimeout:     getDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		StoreURL:       storeURL,
		ServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		AnonKey:        os.Getenv("SUPABASE_ANON_KEY"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		ProbeCollection: getEnv("PROBE_COLLECTION", "clients"),
		ProbeTimeout:    getDuration("PROBE_TIMEOUT", 5*time.Second),

		RateLimit: getInt("RATE_LIMIT_PER_SEC", 10),
	}, nil
}

// Credential returns the access key the probe should present: the
// service-role key when configured, otherwise the anon key. The tier
// string is used only for startup logging, never in responses.
func (c *Config) Credential() (key, tier string) {
	if c.ServiceRoleKey != "" {
		return c.ServiceRoleKey, "service_role"
	}
	if c.AnonKey != "" {
		return c.AnonKey, "anon"
	}
	return "", ""
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
