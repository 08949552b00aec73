package core

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultTokenSecret is the documented non-production fallback used when
// TOKEN_SECRET is unset. Relying on it in a deployment is a misconfiguration.
const DefaultTokenSecret = "change-this-token-secret"

// Config holds runtime settings for the API process.
type Config struct {
	Port               string        // HTTP listen port (e.g., "3000")
	TokenSecret        string        // HMAC secret for access tokens
	TokenLifetime      time.Duration // access token validity window
	LogDir             string        // Directory to write application logs
	DatabaseURL        string        // PostgreSQL DSN; empty -> in-memory store
	RedisURL           string        // Redis URL; empty -> no login throttle
	AllowedOrigins     []string      // allowed origins for CORS origin check
	SeedPath           string        // YAML seed file; empty -> built-in fixture
	LoginMaxAttempts   int           // failed logins tolerated per window
	LoginAttemptWindow time.Duration // failure counting window
}

// Load populates Config from environment variables with sane defaults.
func Load() Config {
	return Config{
		Port:               firstNonEmpty(os.Getenv("PORT"), "3000"),
		TokenSecret:        firstNonEmpty(os.Getenv("TOKEN_SECRET"), DefaultTokenSecret),
		TokenLifetime:      durationFromEnv("TOKEN_LIFETIME", time.Hour),
		LogDir:             firstNonEmpty(os.Getenv("LOG_DIR"), "/var/log/minibank"),
		DatabaseURL:        firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("POSTGRES_URL")),
		RedisURL:           os.Getenv("REDIS_URL"),
		AllowedOrigins:     parseCSV(os.Getenv("ALLOWED_ORIGINS")),
		SeedPath:           os.Getenv("SEED_PATH"),
		LoginMaxAttempts:   intFromEnv("LOGIN_MAX_ATTEMPTS", 10),
		LoginAttemptWindow: durationFromEnv("LOGIN_ATTEMPT_WINDOW", 15*time.Minute),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// intFromEnv reads an int from env var name, falling back to defaultVal when empty or invalid.
func intFromEnv(name string, defaultVal int) int {
	if v := os.Getenv(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

// durationFromEnv reads a time.Duration (e.g., "30m"), falling back to defaultVal when empty or invalid.
func durationFromEnv(name string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return defaultVal
}

// parseCSV splits comma-separated list and trims spaces; empty entries are skipped.
func parseCSV(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
