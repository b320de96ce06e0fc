package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/SscSPs/cashflow_backend/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SelectsImplementation(t *testing.T) {
	assert.IsType(t, &logMailer{}, New(config.MailConfig{Server: "smtp.example.com"}))
	assert.IsType(t, &smtpMailer{}, New(config.MailConfig{Server: "smtp.example.com", DefaultSender: "noreply@example.com"}))
}

func TestBuildMessage(t *testing.T) {
	msg, err := buildMessage("noreply@example.com", "alice@example.com", "Password reset", "Follow the link")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "Subject: Password reset")
	assert.Contains(t, raw, "alice@example.com")
	assert.Contains(t, raw, "Follow the link")
}

func TestBuildMessage_InvalidRecipient(t *testing.T) {
	_, err := buildMessage("noreply@example.com", "not an address", "s", "b")
	assert.Error(t, err)
}

func TestLogMailer_NeverFails(t *testing.T) {
	assert.NoError(t, (&logMailer{}).Send(context.Background(), "a@example.com", "s", "b"))
}

func TestLogMailer_OmitsBody(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	body := "To reset your password, visit https://app.example.com/reset-password/s3cr3t-t0ken"
	require.NoError(t, (&logMailer{}).Send(context.Background(), "alice@example.com", "Password Reset Request", body))

	out := logs.String()
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "Password Reset Request")
	assert.NotContains(t, out, "s3cr3t-t0ken")
	assert.NotContains(t, out, "reset-password")
}
