package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application, resolved once at
// process start. Optional credentials act as feature switches: their
// absence degrades functionality instead of failing startup.
type Config struct {
	// Server
	APIPort int    `env:"API_PORT" envDefault:"8080"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`

	// Database (optional: empty falls back to the flat-file store)
	DatabaseURL string `env:"DATABASE_URL"`

	// Flat-file waitlist fallback
	WaitlistFilePath string `env:"WAITLIST_FILE_PATH" envDefault:"./data/waitlist.json"`

	// Email provider (optional: empty disables sending)
	ResendAPIKey  string `env:"RESEND_API_KEY"`
	ResendBaseURL string `env:"RESEND_BASE_URL" envDefault:"https://api.resend.com"`

	// Webhook signing (optional: empty skips signature verification)
	WebhookSigningSecret string `env:"RESEND_WEBHOOK_SECRET"`

	// Addresses
	ForwardToAddress   string `env:"FORWARD_TO_ADDRESS" envDefault:"hello@daydayup.co"`
	ForwardFromAddress string `env:"FORWARD_FROM_ADDRESS" envDefault:"Context Graph <hello@contextgraph.tech>"`
	WelcomeFromAddress string `env:"WELCOME_FROM_ADDRESS" envDefault:"Context Graph <hello@daydayup.co>"`

	// CORS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // "json" or "text"
}

// Load reads configuration from the environment. A local .env file is
// loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("API_PORT must be between 1 and 65535")
	}
	if c.WaitlistFilePath == "" {
		return fmt.Errorf("WAITLIST_FILE_PATH cannot be empty")
	}
	if c.ForwardToAddress == "" {
		return fmt.Errorf("FORWARD_TO_ADDRESS cannot be empty")
	}
	return nil
}

// DatabaseConfigured reports whether the managed-database waitlist path
// is available. When false the service runs on the flat-file fallback.
func (c *Config) DatabaseConfigured() bool {
	return c.DatabaseURL != ""
}

// EmailEnabled reports whether the email provider can be called at all.
func (c *Config) EmailEnabled() bool {
	return c.ResendAPIKey != ""
}

// SigningRequired reports whether inbound webhooks must carry a valid
// signature. When false, unsigned deliveries are accepted.
func (c *Config) SigningRequired() bool {
	return c.WebhookSigningSecret != ""
}

// LogConfig logs configuration values (excluding secrets)
func (c *Config) LogConfig(logger *slog.Logger) {
	logger.Info("configuration loaded",
		slog.Int("api_port", c.APIPort),
		slog.String("app_env", c.AppEnv),
		slog.Bool("database_configured", c.DatabaseConfigured()),
		slog.Bool("email_enabled", c.EmailEnabled()),
		slog.Bool("signing_required", c.SigningRequired()),
		slog.String("forward_to", c.ForwardToAddress),
		slog.String("waitlist_file", c.WaitlistFilePath),
		slog.String("log_level", c.LogLevel),
		slog.String("log_format", c.LogFormat),
	)
}
