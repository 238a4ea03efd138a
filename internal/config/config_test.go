package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.APIPort)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "./data/waitlist.json", cfg.WaitlistFilePath)
	assert.Equal(t, "https://api.resend.com", cfg.ResendBaseURL)
	assert.Equal(t, "hello@daydayup.co", cfg.ForwardToAddress)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://localhost/app?sslmode=require")
	t.Setenv("RESEND_API_KEY", "re_test_key")
	t.Setenv("RESEND_WEBHOOK_SECRET", "whsec_dGVzdA==")
	t.Setenv("ALLOWED_ORIGINS", "https://contextgraph.tech,https://www.contextgraph.tech")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.APIPort)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, []string{"https://contextgraph.tech", "https://www.contextgraph.tech"}, cfg.AllowedOrigins)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("API_PORT", "99999")

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_CapabilityFlags(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.DatabaseConfigured())
	assert.False(t, cfg.EmailEnabled())
	assert.False(t, cfg.SigningRequired())

	cfg.DatabaseURL = "postgres://localhost/app"
	cfg.ResendAPIKey = "re_test_key"
	cfg.WebhookSigningSecret = "whsec_dGVzdA=="

	assert.True(t, cfg.DatabaseConfigured())
	assert.True(t, cfg.EmailEnabled())
	assert.True(t, cfg.SigningRequired())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.APIPort = 0 }, true},
		{"port too large", func(c *Config) { c.APIPort = 70000 }, true},
		{"empty waitlist file path", func(c *Config) { c.WaitlistFilePath = "" }, true},
		{"empty forward address", func(c *Config) { c.ForwardToAddress = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				APIPort:          8080,
				WaitlistFilePath: "./data/waitlist.json",
				ForwardToAddress: "hello@daydayup.co",
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
