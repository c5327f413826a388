package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "cadet.yaml"

// Config holds all cadet configuration.
type Config struct {
	// Provider credentials and models
	Provider ProviderConfig `yaml:"provider"`

	// HTTP gateway
	Gateway GatewayConfig `yaml:"gateway"`

	// Gateway client used by the TUI and the one-shot commands
	Client ClientConfig `yaml:"client"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ProviderConfig configures the generative-AI provider.
type ProviderConfig struct {
	APIKey     string `yaml:"api_key"`
	TextModel  string `yaml:"text_model"`
	ImageModel string `yaml:"image_model"`
	Timeout    string `yaml:"timeout"` // "0s" disables the timeout
}

// GatewayConfig configures the HTTP endpoint.
type GatewayConfig struct {
	Addr            string `yaml:"addr"`
	Path            string `yaml:"path"`
	MaxBodyBytes    int64  `yaml:"max_body_bytes"`
	AllowOrigin     string `yaml:"allow_origin"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// ClientConfig configures the gateway client.
type ClientConfig struct {
	BaseURL  string `yaml:"base_url"`
	ImageDir string `yaml:"image_dir"` // empty = os.TempDir()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			TextModel:  "gemini-2.5-flash",
			ImageModel: "gemini-2.5-flash-image",
			Timeout:    "0s",
		},

		Gateway: GatewayConfig{
			Addr:            ":8787",
			Path:            "/api/generate",
			MaxBodyBytes:    4 << 20,
			AllowOrigin:     "*",
			ShutdownTimeout: "10s",
		},

		Client: ClientConfig{
			BaseURL: "http://localhost:8787",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// APIKeyEnvVars lists the environment variables holding the provider
// credential, highest priority first.
var APIKeyEnvVars = []string{"API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	for _, name := range APIKeyEnvVars {
		if key := os.Getenv(name); key != "" {
			c.Provider.APIKey = key
			break
		}
	}

	if addr := os.Getenv("CADET_GATEWAY_ADDR"); addr != "" {
		c.Gateway.Addr = addr
	}
	if url := os.Getenv("CADET_GATEWAY_URL"); url != "" {
		c.Client.BaseURL = url
	}
	if level := os.Getenv("CADET_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// HasAPIKey reports whether a provider credential is configured.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.Provider.APIKey) != ""
}

// GetProviderTimeout returns the provider call timeout. Zero means none.
func (c *Config) GetProviderTimeout() time.Duration {
	d, err := time.ParseDuration(c.Provider.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// GetShutdownTimeout returns the gateway graceful shutdown timeout.
func (c *Config) GetShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Gateway.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// Validate validates the configuration. A missing API key is not a
// validation error: the gateway still starts and answers every request
// with a configuration error.
func (c *Config) Validate() error {
	if c.Provider.TextModel == "" {
		return fmt.Errorf("provider.text_model is required")
	}
	if c.Provider.ImageModel == "" {
		return fmt.Errorf("provider.image_model is required")
	}
	if c.Gateway.Addr == "" {
		return fmt.Errorf("gateway.addr is required")
	}
	if !strings.HasPrefix(c.Gateway.Path, "/") {
		return fmt.Errorf("gateway.path must start with '/': %q", c.Gateway.Path)
	}
	if c.Gateway.MaxBodyBytes <= 0 {
		return fmt.Errorf("gateway.max_body_bytes must be positive")
	}
	if c.Provider.Timeout != "" {
		if _, err := time.ParseDuration(c.Provider.Timeout); err != nil {
			return fmt.Errorf("invalid provider.timeout %q: %w", c.Provider.Timeout, err)
		}
	}
	if !ValidLogLevel(c.Logging.Level) {
		return fmt.Errorf("invalid logging.level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	return nil
}

// GatewayURL joins the client base URL with the gateway path.
func (c *Config) GatewayURL() string {
	return strings.TrimRight(c.Client.BaseURL, "/") + c.Gateway.Path
}
