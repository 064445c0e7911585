package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultServiceName, cfg.Service.Name)
	assert.Equal(t, DefaultChatModel, cfg.OpenAI.ChatModel)
	assert.Equal(t, DefaultOpenAIBaseURL, cfg.OpenAI.BaseURL)
	assert.Equal(t, DefaultPaymentAmount, cfg.Payment.DefaultAmount)
	assert.Equal(t, DefaultPaymentMethod, cfg.Payment.DefaultMethod)
	assert.Equal(t, DefaultRateLimit, cfg.Server.RateLimit)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[log]
level = "debug"

[server]
addr = ":8080"
rate_limit = 50

[openai]
chat_model = "gpt-4o"

[payment]
default_amount = "99.90"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 50, cfg.Server.RateLimit)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.ChatModel)
	assert.Equal(t, "99.90", cfg.Payment.DefaultAmount)
	// Unset sections keep their defaults.
	assert.Equal(t, DefaultWhisperModel, cfg.OpenAI.WhisperModel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("PAYMENT_API_KEY", "pay-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.OpenAI.APIKey)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "production", cfg.Service.Environment)
	assert.Equal(t, "pay-env", cfg.Payment.APIKey)
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[openai]
api_key = "file-key"

[server]
addr = ":7000"
`), 0o600))

	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("PORT", "7001")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.OpenAI.APIKey)
	assert.Equal(t, ":7001", cfg.Server.Addr)
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml {{"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
