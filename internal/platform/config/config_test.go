package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("JWT_EXPIRY_DURATION", "not-a-duration")
	t.Setenv("FRONTEND_BASE_URL", "http://127.0.0.1:5173/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration, "invalid duration falls back to default")
	assert.Equal(t, 30*24*time.Hour, cfg.ResetTokenRetention)
	assert.Equal(t, "http://127.0.0.1:5173", cfg.FrontendBaseURL)
	assert.Equal(t, []string{"http://127.0.0.1:5173"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
	assert.Equal(t, 587, cfg.Mail.Port)
}

func TestLoadConfig_ExplicitCORSOrigins(t *testing.T) {
	viper.Reset()
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}

func TestMailConfig_Enabled(t *testing.T) {
	assert.False(t, MailConfig{Server: "smtp.example.com"}.Enabled())
	assert.True(t, MailConfig{Server: "smtp.example.com", DefaultSender: "noreply@example.com"}.Enabled())
}
