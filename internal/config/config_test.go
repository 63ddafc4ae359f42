package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "mysql", cfg.DBDriver)
	require.Equal(t, 800*time.Millisecond, cfg.ChatTypingMin)
	require.Equal(t, 600*time.Millisecond, cfg.ChatTypingJitter)
	require.Equal(t, 5000, cfg.ChatMaxConversations)
	require.Equal(t, 20, cfg.ChatRateLimit)
	require.Equal(t, time.Minute, cfg.ChatRateWindow)
	require.Equal(t, "lead_notifications", cfg.RabbitQueue)
	require.Equal(t, 2, cfg.WorkerConcurrency)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", " SQLite ")
	t.Setenv("SMTP_USER", "bot@nexvstar.ai")
	t.Setenv("WORKER_CONCURRENCY", "500")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://nexvstar.ai,https://www.nexvstar.ai")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, "bot@nexvstar.ai", cfg.SMTPFrom)
	require.Equal(t, 50, cfg.WorkerConcurrency)
	require.Equal(t, []string{"https://nexvstar.ai", "https://www.nexvstar.ai"}, cfg.CORSAllowedOrigins)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("CHAT_IDLE_TTL", "soon")
	_, err := Load()
	require.Error(t, err)
}

type mapGetter map[string]string

func (m mapGetter) GetParameter(_ context.Context, name string) (string, error) {
	v, ok := m[name]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func TestApplySecrets(t *testing.T) {
	cfg := Config{SSMParamPrefix: "/nexvstar/prod/", JWTSecret: "dev"}
	err := cfg.ApplySecrets(context.Background(), mapGetter{
		"/nexvstar/prod/jwt_secret":         "s3cret",
		"/nexvstar/prod/smtp_pass":          "pw",
		"/nexvstar/prod/telegram_bot_token": "tg",
	})
	require.NoError(t, err)
	require.Equal(t, "s3cret", cfg.JWTSecret)
	require.Equal(t, "pw", cfg.SMTPPass)
	require.Equal(t, "tg", cfg.TelegramBotToken)
}

func TestApplySecrets_NoPrefixIsNoop(t *testing.T) {
	cfg := Config{JWTSecret: "dev"}
	require.NoError(t, cfg.ApplySecrets(context.Background(), mapGetter{}))
	require.Equal(t, "dev", cfg.JWTSecret)
}

func TestApplySecrets_MissingParam(t *testing.T) {
	cfg := Config{SSMParamPrefix: "/p"}
	err := cfg.ApplySecrets(context.Background(), mapGetter{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "jwt_secret")
}
