package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load consults so the host environment
// cannot leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OPENAI_API_KEY", "FRONTEND_ORIGINS", "KAIWA_PORT", "KAIWA_BIND",
		"KAIWA_LOG_LEVEL", "KAIWA_PROVIDER", "KAIWA_OPENAI_BASE_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "loopback", cfg.Server.Bind)
	assert.Equal(t, int64(25<<20), cfg.Server.MaxUploadBytes)
	assert.Empty(t, cfg.Server.AllowedOrigins)
	assert.Equal(t, "openai", cfg.OpenAI.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.ConversationModel)
	assert.Equal(t, "gpt-4o-mini-transcribe", cfg.OpenAI.TranscriptionModel)
	assert.Equal(t, "alloy", cfg.OpenAI.Voice)
	assert.Equal(t, "wav", cfg.OpenAI.ResponseFormat)
	assert.Equal(t, 60*time.Second, cfg.OpenAI.Timeout())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 72, cfg.Practice.Width)
	assert.Equal(t, "auto", cfg.Practice.Color)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	// Should return defaults
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadValidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
server:
  port: 9000
  bind: lan
  allowedOrigins:
    - http://localhost:5173
openai:
  provider: mock
  voice: verse
  responseFormat: mp3
  timeoutSeconds: 15
logging:
  level: debug
  consoleStyle: json
practice:
  width: 60
  color: never
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "lan", cfg.Server.Bind)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "mock", cfg.OpenAI.Provider)
	assert.Equal(t, "verse", cfg.OpenAI.Voice)
	assert.Equal(t, "mp3", cfg.OpenAI.ResponseFormat)
	assert.Equal(t, 15*time.Second, cfg.OpenAI.Timeout())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.ConsoleStyle)
	assert.Equal(t, 60, cfg.Practice.Width)
	assert.Equal(t, "never", cfg.Practice.Color)

	// Unset fields keep their defaults
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.ConversationModel)
	assert.Equal(t, DefaultBaseURL, cfg.OpenAI.BaseURL)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	var ce *ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestLoadExpandsAPIKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAIWA_TEST_KEY", "sk-from-env")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openai:\n  apiKey: ${KAIWA_TEST_KEY}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.OpenAI.APIKey)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("FRONTEND_ORIGINS", "http://a.example, http://b.example,")
	t.Setenv("KAIWA_PORT", "9100")
	t.Setenv("KAIWA_BIND", "lan")
	t.Setenv("KAIWA_LOG_LEVEL", "DEBUG")
	t.Setenv("KAIWA_PROVIDER", "Mock")
	t.Setenv("KAIWA_OPENAI_BASE_URL", "http://127.0.0.1:9999/v1")

	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "lan", cfg.Server.Bind)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "mock", cfg.OpenAI.Provider)
	assert.Equal(t, "http://127.0.0.1:9999/v1", cfg.OpenAI.BaseURL)
}

func TestEnvOverridesIgnoreBadPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAIWA_PORT", "not-a-port")
	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"*", []string{"*"}},
		{" * ", []string{"*"}},
		{"", []string{"*"}},
		{",,", []string{"*"}},
		{"http://a", []string{"http://a"}},
		{"http://a, http://b", []string{"http://a", "http://b"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOrigins(tt.input))
		})
	}
}

func TestAllowsAnyOrigin(t *testing.T) {
	assert.True(t, ServerConfig{}.AllowsAnyOrigin())
	assert.True(t, ServerConfig{AllowedOrigins: []string{"*"}}.AllowsAnyOrigin())
	assert.True(t, ServerConfig{AllowedOrigins: []string{"http://a", "*"}}.AllowsAnyOrigin())
	assert.False(t, ServerConfig{AllowedOrigins: []string{"http://a"}}.AllowsAnyOrigin())
}

func TestRedacted(t *testing.T) {
	cfg := Defaults()
	cfg.OpenAI.APIKey = "sk-secret"
	cfg.Server.AllowedOrigins = []string{"http://a"}

	red := cfg.Redacted()
	assert.Equal(t, "********", red.OpenAI.APIKey)
	assert.Equal(t, "sk-secret", cfg.OpenAI.APIKey)

	red.Server.AllowedOrigins[0] = "changed"
	assert.Equal(t, "http://a", cfg.Server.AllowedOrigins[0])
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Message: "boom"}
	assert.Equal(t, "config: boom", err.Error())
}
