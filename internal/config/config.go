package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	HTTPPort string

	DatabaseURL   string
	RedisAddr     string
	RedisPassword string

	CookieName     string
	CookieDomain   string
	CookieSecure   bool
	CookieSameSite string
	SessionTTL     time.Duration
	ResetTokenTTL  time.Duration

	FrontendURL        string
	CORSAllowedOrigins []string

	SMTPAddr string
	SMTPFrom string
	SMTPUser string
	SMTPPass string

	LogLevel string
}

func Load() (*Config, error) {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPPort:           getEnv("HTTP_PORT", "4000"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		CookieName:         getEnv("COOKIE_NAME", "qid"),
		CookieDomain:       os.Getenv("COOKIE_DOMAIN"),
		CookieSameSite:     strings.ToLower(getEnv("COOKIE_SAMESITE", "lax")),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		SMTPAddr:           os.Getenv("SMTP_ADDR"),
		SMTPFrom:           getEnv("SMTP_FROM", "noreply@localhost"),
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPass:           os.Getenv("SMTP_PASS"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
	cfg.CookieSecure = getEnvBool("COOKIE_SECURE", cfg.Env == "production")

	// The session cookie is effectively non-expiring; ten years by default.
	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "87600h"))
	if err != nil {
		return nil, fmt.Errorf("parse SESSION_TTL: %w", err)
	}
	cfg.SessionTTL = sessionTTL

	resetTTL, err := time.ParseDuration(getEnv("RESET_TOKEN_TTL", "72h"))
	if err != nil {
		return nil, fmt.Errorf("parse RESET_TOKEN_TTL: %w", err)
	}
	cfg.ResetTokenTTL = resetTTL

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string
	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if c.RedisAddr == "" {
		errs = append(errs, "REDIS_ADDR is required")
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, "SESSION_TTL must be > 0")
	}
	if c.ResetTokenTTL <= 0 {
		errs = append(errs, "RESET_TOKEN_TTL must be > 0")
	}
	if c.Env == "production" && !c.CookieSecure {
		errs = append(errs, "COOKIE_SECURE must be true in production")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trim := strings.TrimSpace(p)
		if trim != "" {
			out = append(out, trim)
		}
	}
	return out
}
