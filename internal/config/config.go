package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	UseMock         bool
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level string
}

// AuthConfig groups authentication settings.
type AuthConfig struct {
	Session SessionConfig
}

// SessionConfig controls the session cookie.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// CatalogConfig bounds the concurrent rebuild of stored drinks.
type CatalogConfig struct {
	Workers int
}

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	cfg.Database = DatabaseConfig{
		URL: firstNonEmpty(
			os.Getenv("DATABASE_URL"),
			os.Getenv("DB_URL"),
			"",
		),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 5),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 20),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), time.Hour),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 15*time.Minute),
	}
	cfg.Database.UseMock = parseBoolWithDefault(
		os.Getenv("DATABASE_USE_MOCK"),
		strings.TrimSpace(cfg.Database.URL) == "",
	)

	cfg.Logging = LoggingConfig{
		Level: firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
	}

	cfg.Auth = AuthConfig{
		Session: SessionConfig{
			Lifetime:     parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), 12*time.Hour),
			CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "mixup_session"),
			CookieDomain: strings.TrimSpace(os.Getenv("SESSION_COOKIE_DOMAIN")),
			CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), true),
		},
	}

	cfg.Catalog = CatalogConfig{
		Workers: parseIntWithDefault(os.Getenv("CATALOG_WORKERS"), 4),
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	if !cfg.Database.UseMock && strings.TrimSpace(cfg.Database.URL) == "" {
		return Config{}, fmt.Errorf("database URL must be set when the mock database is disabled")
	}
	if cfg.Catalog.Workers <= 0 {
		return Config{}, fmt.Errorf("catalog workers must be positive, got %d", cfg.Catalog.Workers)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
