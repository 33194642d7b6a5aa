package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Abuse    AbuseConfig
	Notify   NotifyConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	SiteOrigin     string // public site origin, the only CORS origin allowed
	TrustedProxies []string
}

// DatabaseConfig describes the hosted Postgres store. URL may be empty: the
// backend then serves the fallback dataset and rejects writes.
type DatabaseConfig struct {
	URL               string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

type AuthConfig struct {
	AdminPassword string
	TOTPSecret    string // optional second factor for the admin login
	JWTSecret     string
	TokenExpiry   time.Duration
}

// AbuseConfig tunes the login throttle and the review submission limiter.
type AbuseConfig struct {
	MaxLoginAttempts  int
	LockoutDuration   time.Duration
	ReviewRateLimit   int
	ReviewRateWindow  time.Duration
	IPHashSalt        string
	ThrottleBackend   string // "memory" or "postgres"
	CleanupInterval   time.Duration
}

// NotifyConfig enables the optional new-lead email notification when all
// three fields are set.
type NotifyConfig struct {
	AWSRegion   string
	FromAddress string
	ToAddress   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	adminPassword := getEnv("ADMIN_PASSWORD", "")
	if adminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD is required")
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	env := getEnv("ENV", "development")

	if err := validateJWTSecret(jwtSecret, env); err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            env,
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			SiteOrigin:     getEnv("SITE_ORIGIN", "http://localhost:3000"),
			TrustedProxies: splitAndTrim(getEnv("TRUSTED_PROXIES", "")),
		},
		Database: DatabaseConfig{
			URL:               getEnv("DATABASE_URL", ""),
			MaxConns:          int32(getEnvAsInt("DB_MAX_CONNS", 10)),
			MinConns:          int32(getEnvAsInt("DB_MIN_CONNS", 2)),
			MaxConnLifetime:   getEnvAsDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 1*time.Minute),
			HealthCheckPeriod: getEnvAsDuration("DB_HEALTH_CHECK_PERIOD", 1*time.Minute),
		},
		Auth: AuthConfig{
			AdminPassword: adminPassword,
			TOTPSecret:    getEnv("ADMIN_TOTP_SECRET", ""),
			JWTSecret:     jwtSecret,
			TokenExpiry:   getEnvAsDuration("TOKEN_EXPIRY", 24*time.Hour),
		},
		Abuse: AbuseConfig{
			MaxLoginAttempts: getEnvAsInt("MAX_LOGIN_ATTEMPTS", 5),
			LockoutDuration:  getEnvAsDuration("LOCKOUT_DURATION", 15*time.Minute),
			ReviewRateLimit:  getEnvAsInt("REVIEW_RATE_LIMIT", 3),
			ReviewRateWindow: getEnvAsDuration("REVIEW_RATE_WINDOW", 1*time.Hour),
			IPHashSalt:       getEnv("REVIEW_IP_SALT", ""),
			ThrottleBackend:  getEnv("THROTTLE_BACKEND", "memory"),
			CleanupInterval:  getEnvAsDuration("CLEANUP_INTERVAL", 1*time.Hour),
		},
		Notify: NotifyConfig{
			AWSRegion:   getEnv("AWS_REGION", ""),
			FromAddress: getEnv("NOTIFY_FROM_ADDRESS", ""),
			ToAddress:   getEnv("NOTIFY_TO_ADDRESS", ""),
		},
	}

	switch cfg.Abuse.ThrottleBackend {
	case "memory", "postgres":
	default:
		return nil, fmt.Errorf("THROTTLE_BACKEND must be memory or postgres, got %q", cfg.Abuse.ThrottleBackend)
	}

	if cfg.Abuse.ThrottleBackend == "postgres" && cfg.Database.URL == "" {
		return nil, fmt.Errorf("THROTTLE_BACKEND=postgres requires DATABASE_URL")
	}

	return cfg, nil
}

// validateJWTSecret enforces minimum security standards for the signing secret
func validateJWTSecret(secret, env string) error {
	minLength := 16
	if env == "production" {
		minLength = 32
	}

	if len(secret) < minLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters in %s environment (got %d)",
			minLength, env, len(secret))
	}

	weakSecrets := []string{
		"secret", "test", "password", "12345", "changeme",
		"admin", "root", "default", "example",
	}

	secretLower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if secretLower == weak {
			return fmt.Errorf("JWT_SECRET cannot be a common weak value")
		}
	}

	return nil
}

// NotificationsEnabled reports whether lead notification emails are configured.
func (c *NotifyConfig) NotificationsEnabled() bool {
	return c.AWSRegion != "" && c.FromAddress != "" && c.ToAddress != ""
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
