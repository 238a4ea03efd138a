package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"text debug", "debug", "text"},
		{"json info", "info", "json"},
		{"unknown level defaults to info", "verbose", "json"},
		{"unknown format defaults to json", "warn", "logfmt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level, tt.format)
			require.NotNil(t, log)
		})
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"long local part", "alice@example.com", "al***@example.com"},
		{"two char local part", "ab@example.com", "a***@example.com"},
		{"single char local part", "a@example.com", "a***@example.com"},
		{"no at sign", "not-an-email", "***"},
		{"empty string", "", "***"},
		{"leading at sign", "@example.com", "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskEmail(tt.email))
		})
	}
}
