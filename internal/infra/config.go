package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverBolt     = "bolt"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv          string
	Port            string
	StoreDriver     string
	BoltPath        string
	DatabaseURL     string
	RedisURL        string
	RedisPrefix     string
	FragmentRoot    string
	DataRoot        string
	UploadDir       string
	GeoIPDBPath     string
	DefaultLocale   string
	AllowedOrigins  []string
	VisitorCookie   string
	HTTPReadTimeout time.Duration
	// HTTPWriteTimeout bounds fragment rendering, including any remote fetch.
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	FetchTimeout     time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		StoreDriver:      strings.ToLower(getEnv("STORE_DRIVER", DriverBolt)),
		BoltPath:         getEnv("BOLT_PATH", "portal.db"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		RedisPrefix:      getEnv("REDIS_PREFIX", "connect_ong:"),
		FragmentRoot:     os.Getenv("FRAGMENT_ROOT"),
		DataRoot:         os.Getenv("DATA_ROOT"),
		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
		GeoIPDBPath:      os.Getenv("GEOIP_DB_PATH"),
		DefaultLocale:    getEnv("DEFAULT_LOCALE", "pt-BR"),
		AllowedOrigins:   splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		VisitorCookie:    getEnv("VISITOR_COOKIE", "connect_ong_visitor"),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		FetchTimeout:     time.Second * time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 10)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	switch cfg.StoreDriver {
	case DriverMemory, DriverBolt:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for store driver %q", cfg.StoreDriver)
		}
	case DriverRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for store driver %q", cfg.StoreDriver)
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
