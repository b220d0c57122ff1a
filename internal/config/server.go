package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds the settings of the HTTP server and its collaborators
type ServerConfig struct {
	Port           string
	DatabaseURL    string
	LogLevel       string
	JWTSecret      string
	AllowedOrigins []string
	RulesFile      string
	PublicURL      string

	PaymentBaseURL string
	PaymentAPIKey  string
	WebhookSecret  string
	PaymentTimeout time.Duration
	ExpirySchedule string
	PendingTTL     time.Duration

	SMTPAddr     string
	SMTPHost     string
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
}

// LoadServerConfig reads the environment after loading the given .env
// files. With no files, a .env in the working directory is loaded when present.
func LoadServerConfig(envFiles ...string) (*ServerConfig, error) {
	if len(envFiles) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			envFiles = []string{".env"}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat .env: %w", err)
		}
	}
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env files: %w", err)
		}
	}

	paymentTimeout, err := getDuration("PAYMENT_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	pendingTTL, err := getDuration("PENDING_PURCHASE_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &ServerConfig{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", "host=localhost port=5432 user=postgres password=postgres dbname=devnagringa sslmode=disable"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
		RulesFile:      getEnv("TAX_RULES_FILE", ""),
		PublicURL:      strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:8080"), "/"),
		PaymentBaseURL: getEnv("PAYMENT_BASE_URL", "http://localhost:9090"),
		PaymentAPIKey:  getEnv("PAYMENT_API_KEY", ""),
		WebhookSecret:  getEnv("PAYMENT_WEBHOOK_SECRET", ""),
		PaymentTimeout: paymentTimeout,
		ExpirySchedule: getEnv("EXPIRY_SCHEDULE", "@every 15m"),
		PendingTTL:     pendingTTL,
		SMTPAddr:       getEnv("SMTP_ADDR", "localhost:587"),
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPUser:       getEnv("SMTP_USER", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		MailFrom:       getEnv("MAIL_FROM", "Dev na Gringa <newsletter@devnagringa.com>"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric: %w", err)
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
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
