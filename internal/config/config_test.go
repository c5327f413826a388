package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, name := range APIKeyEnvVars {
		t.Setenv(name, "")
	}
	t.Setenv("CADET_GATEWAY_ADDR", "")
	t.Setenv("CADET_GATEWAY_URL", "")
	t.Setenv("CADET_LOG_LEVEL", "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini-2.5-flash", cfg.Provider.TextModel)
	assert.Equal(t, "gemini-2.5-flash-image", cfg.Provider.ImageModel)
	assert.Equal(t, "/api/generate", cfg.Gateway.Path)
	assert.Equal(t, "http://localhost:8787/api/generate", cfg.GatewayURL())
	assert.False(t, cfg.HasAPIKey())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearKeyEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearKeyEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "cadet.yaml")
	cfg := DefaultConfig()
	cfg.Provider.APIKey = "file-key"
	cfg.Gateway.Addr = ":9999"
	cfg.Logging.Format = "text"

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", loaded.Provider.APIKey)
	assert.Equal(t, ":9999", loaded.Gateway.Addr)
	assert.Equal(t, "text", loaded.Logging.Format)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearKeyEnv(t)

	path := filepath.Join(t.TempDir(), "cadet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gateway:\n  addr: \":7000\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Gateway.Addr)
	assert.Equal(t, "/api/generate", cfg.Gateway.Path)
	assert.Equal(t, "gemini-2.5-flash", cfg.Provider.TextModel)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cadet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_EnvOverrides(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("API_KEY", "primary-key")
	t.Setenv("CADET_GATEWAY_URL", "http://gateway:8080")
	t.Setenv("CADET_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "primary-key", cfg.Provider.APIKey)
	assert.Equal(t, "http://gateway:8080", cfg.Client.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.HasAPIKey())
}

func TestConfig_EnvOverridesFallbackKey(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()
	assert.Equal(t, "google-key", cfg.Provider.APIKey)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no text model", func(c *Config) { c.Provider.TextModel = "" }},
		{"no image model", func(c *Config) { c.Provider.ImageModel = "" }},
		{"no addr", func(c *Config) { c.Gateway.Addr = "" }},
		{"relative path", func(c *Config) { c.Gateway.Path = "api/generate" }},
		{"zero body limit", func(c *Config) { c.Gateway.MaxBodyBytes = 0 }},
		{"bad timeout", func(c *Config) { c.Provider.Timeout = "soon" }},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, time.Duration(0), cfg.GetProviderTimeout())
	assert.Equal(t, 10*time.Second, cfg.GetShutdownTimeout())

	cfg.Provider.Timeout = "45s"
	cfg.Gateway.ShutdownTimeout = "nonsense"
	assert.Equal(t, 45*time.Second, cfg.GetProviderTimeout())
	assert.Equal(t, 10*time.Second, cfg.GetShutdownTimeout())
}
