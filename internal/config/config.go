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

var (
	ErrEmptyEnvironmentVariable = errors.New("empty environment variable")
	ErrInvalidEmailProvider     = errors.New("invalid email provider")
)

// Email providers selectable through EMAIL_PROVIDER.
const (
	EmailProviderSMTP   = "smtp"
	EmailProviderResend = "resend"
)

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	Auth       AuthConfig
	Server     ServerConfig
	SMTP       SMTPConfig
	Email      EmailConfig
	Newsletter NewsletterConfig
	Shortener  ShortenerConfig
	Captcha    CaptchaConfig
	Redis      RedisConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// AuthConfig holds admin authentication settings
type AuthConfig struct {
	JWTSecret   string
	AdminEmails []string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port      int
	BaseURL   string
	WebAppURI string
	SiteName  string

	// PublicRateLimitRPM caps requests per client IP per minute on the public
	// subscribe and login forms.
	PublicRateLimitRPM int
}

// SMTPConfig holds outbound SMTP settings
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	TLS       bool
	FromEmail string
}

// EmailConfig selects the email transport
type EmailConfig struct {
	Provider     string
	ResendAPIKey string
}

// NewsletterConfig holds send pipeline settings
type NewsletterConfig struct {
	RateLimit           time.Duration
	SchedulerInterval   time.Duration
	DefaultTemplateSlug string
	// SendConcurrency is the number of campaigns that may send at once.
	SendConcurrency int
}

// ShortenerConfig holds YOURLS settings. Shortening is off when APIURL is empty.
type ShortenerConfig struct {
	APIURL    string
	Signature string
}

// Enabled reports whether link shortening is configured.
func (c ShortenerConfig) Enabled() bool {
	return c.APIURL != "" && c.Signature != ""
}

// CaptchaConfig holds Cloudflare Turnstile settings
type CaptchaConfig struct {
	TurnstileSecret string
	// Hostname the widget must have been solved on. Empty skips the check.
	TurnstileHostname string
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	// Database configuration
	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	// Auth configuration
	if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}
	cfg.Auth.AdminEmails = splitList(os.Getenv("ADMIN_EMAILS"))

	// Server configuration
	baseURL, err := requireEnv("BASE_URL")
	if err != nil {
		return nil, err
	}
	cfg.Server.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.Server.WebAppURI = getEnvWithDefault("WEBAPP_URI", cfg.Server.BaseURL)
	cfg.Server.SiteName = getEnvWithDefault("SITE_NAME", "Newsletter")
	if cfg.Server.Port, err = getIntEnv("SERVER_PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.Server.PublicRateLimitRPM, err = getIntEnv("PUBLIC_RATE_LIMIT_RPM", 10); err != nil {
		return nil, err
	}

	// SMTP configuration
	cfg.SMTP.Host = getEnvWithDefault("SMTP_HOST", "localhost")
	if cfg.SMTP.Port, err = getIntEnv("SMTP_PORT", 1025); err != nil {
		return nil, err
	}
	cfg.SMTP.Username = os.Getenv("SMTP_USERNAME")
	cfg.SMTP.Password = os.Getenv("SMTP_PASSWORD")
	if cfg.SMTP.TLS, err = getBoolEnv("SMTP_TLS", false); err != nil {
		return nil, err
	}
	cfg.SMTP.FromEmail = getEnvWithDefault("SMTP_FROM_EMAIL", "newsletter@localhost")

	// Email provider
	cfg.Email.Provider = strings.ToLower(getEnvWithDefault("EMAIL_PROVIDER", EmailProviderSMTP))
	switch cfg.Email.Provider {
	case EmailProviderSMTP:
	case EmailProviderResend:
		if cfg.Email.ResendAPIKey, err = requireEnv("RESEND_API_KEY"); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidEmailProvider, cfg.Email.Provider)
	}

	// Newsletter pipeline
	rateLimitMS, err := getIntEnv("SMTP_RATE_LIMIT_MS", 100)
	if err != nil {
		return nil, err
	}
	cfg.Newsletter.RateLimit = time.Duration(rateLimitMS) * time.Millisecond
	intervalSecs, err := getIntEnv("NEWSLETTER_SCHEDULER_INTERVAL_SECS", 30)
	if err != nil {
		return nil, err
	}
	cfg.Newsletter.SchedulerInterval = time.Duration(intervalSecs) * time.Second
	cfg.Newsletter.DefaultTemplateSlug = getEnvWithDefault("DEFAULT_TEMPLATE_SLUG", "default")
	if cfg.Newsletter.SendConcurrency, err = getIntEnv("NEWSLETTER_SEND_CONCURRENCY", 16); err != nil {
		return nil, err
	}

	// Optional collaborators
	cfg.Shortener.APIURL = os.Getenv("YOURLS_API_URL")
	cfg.Shortener.Signature = os.Getenv("YOURLS_SIGNATURE")
	cfg.Captcha.TurnstileSecret = os.Getenv("TURNSTILE_SECRET")
	cfg.Captcha.TurnstileHostname = os.Getenv("TURNSTILE_HOSTNAME")

	// Redis configuration
	if cfg.Redis.Enabled, err = getBoolEnv("REDIS_ENABLED", false); err != nil {
		return nil, err
	}
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	if cfg.Redis.Port, err = getIntEnv("REDIS_PORT", 6379); err != nil {
		return nil, err
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = getIntEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}

func getBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
