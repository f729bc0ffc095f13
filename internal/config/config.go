package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const (
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTTTL       = "24h"
	defaultDatabaseURL  = "sibiria.db"
	defaultListenAddr   = ":8080"
	defaultResetCodeTTL = "15m"
	defaultYooKassaURL  = "https://api.yookassa.ru/v3/payments"
)

type Config struct {
	AppEnv      string
	ListenAddr  string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	// Strict booking status transitions are off by default: the
	// lifecycle deliberately allows any-to-any changes (gateway
	// redirects PATCH the status without knowing the previous one).
	StrictTransitions bool

	ResetCodeTTL time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string

	YooKassaShopID    string
	YooKassaSecretKey string
	YooKassaBaseURL   string

	MetricsEnabled bool
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.ResetCodeTTL, err = parseDurationEnv("RESET_CODE_TTL", defaultResetCodeTTL)
	if err != nil {
		return nil, err
	}

	cfg.StrictTransitions = parseBoolEnv("BOOKING_STRICT_TRANSITIONS", "false")
	cfg.MetricsEnabled = parseBoolEnv("METRICS_ENABLED", "true")

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPPort = getEnv("SMTP_PORT", "587")
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")

	cfg.YooKassaShopID = os.Getenv("YOOKASSA_SHOP_ID")
	cfg.YooKassaSecretKey = os.Getenv("YOOKASSA_SECRET_KEY")
	cfg.YooKassaBaseURL = getEnv("YOOKASSA_BASE_URL", defaultYooKassaURL)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s strict_transitions=%t metrics=%t", cfg.AppEnv, cfg.StrictTransitions, cfg.MetricsEnabled)
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.ResetCodeTTL <= 0 {
		return fmt.Errorf("RESET_CODE_TTL must be > 0")
	}
	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !strings.HasPrefix(cfg.DatabaseURL, "postgres") {
			return fmt.Errorf("in prod/release DATABASE_URL must point at PostgreSQL")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
