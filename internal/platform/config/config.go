package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every runtime option. Values come from the environment
// (a .env file is loaded in main before this runs).
type Config struct {
	Addr string

	// DBDSN empty means the in-memory store (dev mode).
	DBDSN string

	UploadDir string

	CORSAllowedOrigins []string

	BcryptCost int

	SessionSecret       string
	SessionIdleTimeout  time.Duration
	SessionCookieSecure bool

	LogLevel  string
	LogFormat string
}

func Load() Config {
	return Config{
		Addr:      addr(),
		DBDSN:     os.Getenv("DB_DSN"),
		UploadDir: envStr("FILE_UPLOAD_DIR", "uploads"),
		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS",
			[]string{"http://localhost:5173", "http://localhost:3000"}),
		BcryptCost:         envInt("BCRYPT_COST", 10),
		SessionSecret:       envStr("SESSION_SECRET", "pettrackr-dev-secret"),
		SessionIdleTimeout:  envDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		SessionCookieSecure: envBool("SESSION_COOKIE_SECURE", false),
		LogLevel:           envStr("LOG_LEVEL", "info"),
		LogFormat:          envStr("LOG_FORMAT", "text"),
	}
}

func addr() string {
	if v := os.Getenv("PORT"); v != "" {
		return ":" + v
	}
	return ":8080"
}

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func envList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
