package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithViper_Defaults(t *testing.T) {
	cfg, err := LoadWithViper(NewViper())
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.False(t, cfg.Insecure)
	// Empty store URI resolves to the default durable location
	assert.Contains(t, cfg.StoreURI, "file://")
	assert.Contains(t, cfg.StoreURI, "credentials.yaml")
}

func TestLoadWithViper_EnvOverrides(t *testing.T) {
	t.Setenv("PANEL_URL", "https://panel.example.com/")
	t.Setenv("PANEL_TOKEN", "abc123")
	t.Setenv("PANEL_STORE_URI", "mem://")
	t.Setenv("PANEL_LOGGING_LEVEL", "debug")

	cfg, err := LoadWithViper(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "https://panel.example.com/", cfg.URL)
	assert.Equal(t, "abc123", cfg.Token)
	assert.Equal(t, "mem://", cfg.StoreURI)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			StoreURI: "mem://",
			Logging:  LoggingConfig{Level: "info", Format: "text"},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:      "bad store URI",
			mutate:    func(c *Config) { c.StoreURI = "redis://localhost" },
			wantError: "invalid store URI",
		},
		{
			name:      "bad logging level",
			mutate:    func(c *Config) { c.Logging.Level = "trace" },
			wantError: "logging.level",
		},
		{
			name:      "bad logging format",
			mutate:    func(c *Config) { c.Logging.Format = "xml" },
			wantError: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantError == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
			}
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://panel.example.com", NormalizeURL("https://panel.example.com/"))
	assert.Equal(t, "https://panel.example.com", NormalizeURL("https://panel.example.com///"))
	assert.Equal(t, "https://panel.example.com", NormalizeURL("https://panel.example.com"))
}

func TestResolveURL_Precedence(t *testing.T) {
	cfg := &Config{URL: "https://from-env.example.com/"}

	url, err := cfg.ResolveURL("https://from-flag.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://from-flag.example.com", url)

	url, err = cfg.ResolveURL("")
	require.NoError(t, err)
	assert.Equal(t, "https://from-env.example.com", url)

	empty := &Config{}
	_, err = empty.ResolveURL("")
	require.Error(t, err)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", (&Config{}).MaskToken())
	assert.Equal(t, "***", (&Config{Token: "secret"}).MaskToken())
}
