package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "BOT_MODE", "WEBHOOK_URL",
		"LISTEN_ADDR", "POLL_INTERVAL", "CONSULT_TIMEOUT", "DATABASE_URL", "DEBUG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "100500")
	t.Setenv("CONSULT_TIMEOUT", "5m")
	t.Setenv("DEBUG", "1")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, int64(100500), cfg.Telegram.ChatID)
	assert.Equal(t, 5*time.Minute, cfg.DefaultTimeout.AsDuration())
	assert.True(t, cfg.Debug)

	// Untouched settings keep their defaults.
	assert.Equal(t, "polling", cfg.Mode)
	assert.Equal(t, 10*time.Second, cfg.PollInterval.AsDuration())
}

func TestLoadDefaultTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "1")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.DefaultTimeout.AsDuration())
}

func TestLoadMissingToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_CHAT_ID", "1")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestLoadMissingChatID(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat id")
}

func TestLoadYAMLFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "consult.yaml")
	data := []byte(`
telegram:
  token: "file-token"
  chat_id: 7
default_timeout: 1m
poll_interval: 3s
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	// Environment wins over the file.
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Telegram.Token)
	assert.Equal(t, int64(7), cfg.Telegram.ChatID)
	assert.Equal(t, time.Minute, cfg.DefaultTimeout.AsDuration())
	assert.Equal(t, 3*time.Second, cfg.PollInterval.AsDuration())
}

func TestLoadMissingFileIsFine(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
}

func TestLoadWebhookRequiresURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "1")
	t.Setenv("BOT_MODE", "webhook")

	_, err := Load("")
	require.Error(t, err)

	t.Setenv("WEBHOOK_URL", "https://example.org/hook")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "webhook", cfg.Mode)
}
