package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieSecure bool
}

type Config struct {
	Port           string
	Database       DatabaseConfig
	Redis          RedisConfig
	Session        SessionConfig
	UploadDir      string
	MaxUploadBytes int64
	RequestTimeout time.Duration
	BcryptCost     int
	RateLimitRPS   float64
	RateLimitBurst int
	TrustedProxies []string
	LogLevel       string
	LogFormat      string
}

// Load reads the configuration from the environment. Database credentials, the
// listening port and the session secret have no defaults.
func Load() (*Config, error) {
	var missing []string
	required := func(key string) string {
		val := os.Getenv(key)
		if val == "" {
			missing = append(missing, key)
		}
		return val
	}

	cfg := &Config{
		Port: required("PORT"),
		Database: DatabaseConfig{
			Host:     required("DB_HOST"),
			User:     required("DB_USER"),
			Password: required("DB_PASSWORD"),
			Name:     required("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Session: SessionConfig{
			Secret: required("SESSION_SECRET"),
		},
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		TrustedProxies: listEnv("TRUSTED_PROXIES"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	var err error
	parsers := []func() error{
		func() (e error) { cfg.Database.Port, e = intEnv("DB_PORT", 3306); return },
		func() (e error) { cfg.Database.MaxOpenConns, e = intEnv("DB_MAX_OPEN_CONNS", 25); return },
		func() (e error) { cfg.Database.MaxIdleConns, e = intEnv("DB_MAX_IDLE_CONNS", 5); return },
		func() (e error) {
			cfg.Database.ConnMaxLifetime, e = durationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute)
			return
		},
		func() (e error) { cfg.Redis.DB, e = intEnv("REDIS_DB", 0); return },
		func() (e error) { cfg.Session.TTL, e = durationEnv("SESSION_TTL", 24*time.Hour); return },
		func() (e error) { cfg.Session.CookieSecure, e = boolEnv("COOKIE_SECURE", false); return },
		func() (e error) { cfg.MaxUploadBytes, e = int64Env("MAX_UPLOAD_BYTES", 10<<20); return },
		func() (e error) { cfg.RequestTimeout, e = durationEnv("REQUEST_TIMEOUT", 15*time.Second); return },
		func() (e error) { cfg.BcryptCost, e = intEnv("BCRYPT_COST", 10); return },
		func() (e error) { cfg.RateLimitRPS, e = floatEnv("RATE_LIMIT_RPS", 5); return },
		func() (e error) { cfg.RateLimitBurst, e = intEnv("RATE_LIMIT_BURST", 10); return },
	}
	for _, parse := range parsers {
		if err = parse(); err != nil {
			return nil, err
		}
	}

	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// listEnv splits a comma-separated value, dropping blanks.
func listEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func intEnv(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func int64Env(key string, fallback int64) (int64, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
