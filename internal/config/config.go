package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string
	RequestTimeout time.Duration

	DBDriver string
	DBDSN    string

	TokenTTL     time.Duration
	CookieDomain string

	CORSOrigins []string
	LogLevel    string

	SessionRetention time.Duration
	EnableRealtime   bool

	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:         envOr("HTTP_ADDR", ":8080"),
		RequestTimeout:   envDuration("REQUEST_TIMEOUT", 30*time.Second),
		DBDriver:         envOr("DB_DRIVER", "postgres"),
		DBDSN:            os.Getenv("DATABASE_DSN"),
		TokenTTL:         envDuration("TOKEN_TTL", 8*time.Hour),
		CookieDomain:     os.Getenv("COOKIE_DOMAIN"),
		CORSOrigins:      csvOr("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		LogLevel:         envOr("LOG_LEVEL", "info"),
		SessionRetention: envDuration("SESSION_RETENTION", 30*time.Minute),
		EnableRealtime:   envBool("ENABLE_REALTIME", true),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	switch strings.ToLower(os.Getenv(k)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return def
	}
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func csvOr(k, def string) []string {
	parts := strings.Split(envOr(k, def), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
