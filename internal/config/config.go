package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/halcyonet/panelsdk/credstore"
)

// Config holds all configuration for the panelctl client
type Config struct {
	URL      string            `mapstructure:"url"`       // Panel base URL
	Token    string            `mapstructure:"token"`     // Explicit bearer token (overrides stored credential)
	Timeout  time.Duration     `mapstructure:"timeout"`   // Per-request timeout
	Proxy    string            `mapstructure:"proxy"`     // Outbound proxy URL
	Insecure bool              `mapstructure:"insecure"`  // Skip TLS certificate validation
	Headers  map[string]string `mapstructure:"headers"`   // Extra headers sent on every request
	StoreURI string            `mapstructure:"store_uri"` // Credential store backend URI
	Logging  LoggingConfig     `mapstructure:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug | info | warn | error
	Format string `mapstructure:"format"` // json | text
}

// NewViper creates a viper instance with defaults and environment binding.
// CLI flags take precedence and are bound by the command layer.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("url", "")
	v.SetDefault("token", "")
	v.SetDefault("timeout", "30s")
	v.SetDefault("proxy", "")
	v.SetDefault("insecure", false)
	v.SetDefault("store_uri", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Bind environment variables with PANEL_ prefix (PANEL_URL, PANEL_TOKEN, ...)
	v.SetEnvPrefix("PANEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadWithViper loads configuration using a pre-configured viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.StoreURI == "" {
		uri, err := DefaultStoreURI()
		if err != nil {
			return nil, err
		}
		cfg.StoreURI = uri
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := credstore.ParseStoreURI(c.StoreURI); err != nil {
		return fmt.Errorf("invalid store URI: %w", err)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be debug, info, warn, or error")
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("logging.format must be json or text")
	}

	return nil
}

// NormalizeURL removes trailing slashes from URLs
func NormalizeURL(url string) string {
	return strings.TrimRight(url, "/")
}

// ResolveURL resolves the panel URL using precedence: flag > config/env.
// Returns an error when no URL is configured.
func (c *Config) ResolveURL(flagURL string) (string, error) {
	if flagURL != "" {
		return NormalizeURL(flagURL), nil
	}
	if c.URL != "" {
		return NormalizeURL(c.URL), nil
	}
	return "", fmt.Errorf("no panel URL configured. Use --url flag, PANEL_URL env var, or run 'panelctl login <url>'")
}

// DefaultStoreURI returns the default durable credential store location
func DefaultStoreURI() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return "file://" + filepath.Join(home, ".config", "panelctl", "credentials.yaml"), nil
}

// MaskToken returns a masked version of the token for logging
func (c *Config) MaskToken() string {
	if c.Token == "" {
		return ""
	}
	return "***"
}
