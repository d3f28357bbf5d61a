package credstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStoreURI(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "path without scheme",
			input:    "./data/credentials.yaml",
			expected: "file://./data/credentials.yaml",
		},
		{
			name:     "absolute path without scheme",
			input:    "/var/lib/panelctl/credentials.yaml",
			expected: "file:///var/lib/panelctl/credentials.yaml",
		},
		{
			name:     "already has file scheme",
			input:    "file://./data/credentials.yaml",
			expected: "file://./data/credentials.yaml",
		},
		{
			name:     "mem scheme unchanged",
			input:    "mem://",
			expected: "mem://",
		},
		{
			name:     "sqlite scheme unchanged",
			input:    "sqlite:///var/lib/panelctl/creds.db",
			expected: "sqlite:///var/lib/panelctl/creds.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeStoreURI(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseStoreURI_ValidURIs(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedScheme string
		expectedPath   string
	}{
		{
			name:           "relative file path",
			input:          "file://./data/credentials.yaml",
			expectedScheme: "file",
			expectedPath:   "./data/credentials.yaml",
		},
		{
			name:           "absolute file path",
			input:          "file:///home/user/.config/panelctl/credentials.yaml",
			expectedScheme: "file",
			expectedPath:   "/home/user/.config/panelctl/credentials.yaml",
		},
		{
			name:           "bare path auto-prefixed",
			input:          "./credentials.yaml",
			expectedScheme: "file",
			expectedPath:   "./credentials.yaml",
		},
		{
			name:           "memory store",
			input:          "mem://",
			expectedScheme: "mem",
			expectedPath:   "",
		},
		{
			name:           "sqlite store",
			input:          "sqlite:///var/lib/panelctl/creds.db",
			expectedScheme: "sqlite",
			expectedPath:   "/var/lib/panelctl/creds.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, err := ParseStoreURI(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedScheme, uri.Scheme)
			assert.Equal(t, tt.expectedPath, uri.Path)
			assert.Equal(t, tt.input, uri.String())
		})
	}
}

func TestParseStoreURI_InvalidURIs(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{
			name:   "empty URI",
			input:  "",
			errMsg: "cannot be empty",
		},
		{
			name:   "unsupported scheme",
			input:  "s3://bucket/creds",
			errMsg: "unsupported store scheme",
		},
		{
			name:   "file scheme without path",
			input:  "file://",
			errMsg: "must have a path",
		},
		{
			name:   "mem scheme with path",
			input:  "mem://some/path",
			errMsg: "does not take a path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStoreURI(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
