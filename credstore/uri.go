package credstore

import (
	"fmt"
	"net/url"
	"strings"
)

// SupportedSchemes lists all currently supported credential store URI schemes
var SupportedSchemes = []string{"file", "mem", "sqlite"}

// StoreURI represents a parsed credential store backend URI
type StoreURI struct {
	Scheme string // Backend type ("file", "mem", "sqlite")
	Path   string // Path to the backing resource (empty for mem://)
	Raw    string // Original URI string for logging/debugging
}

// NormalizeStoreURI ensures the URI has a scheme, prepending "file://" if missing
func NormalizeStoreURI(uri string) string {
	if uri == "" {
		return uri
	}
	if !strings.Contains(uri, "://") {
		return "file://" + uri
	}
	return uri
}

// ParseStoreURI parses a credential store URI string into its components
func ParseStoreURI(uri string) (*StoreURI, error) {
	if uri == "" {
		return nil, fmt.Errorf("store URI cannot be empty")
	}

	// Normalize URI (add file:// if no scheme)
	normalized := NormalizeStoreURI(uri)

	parsed, err := url.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("invalid URI format: %w", err)
	}

	if err := validateScheme(parsed.Scheme); err != nil {
		return nil, err
	}

	// mem:// carries no path; reject anything after the scheme
	if parsed.Scheme == "mem" {
		if parsed.Host != "" || strings.Trim(parsed.Path, "/") != "" {
			return nil, fmt.Errorf("mem:// URI does not take a path")
		}
		return &StoreURI{Scheme: parsed.Scheme, Raw: uri}, nil
	}

	// Extract path - for file:// and sqlite:// URIs the path may land in
	// different fields depending on shape
	path := parsed.Path
	if path == "" && parsed.Opaque != "" {
		path = parsed.Opaque
	}
	if parsed.Host == "." && strings.HasPrefix(path, "/") {
		// file://./relative/path format
		path = "./" + strings.TrimPrefix(path, "/")
	} else if parsed.Host != "" {
		// Windows drive letter: file://C:/path
		if len(parsed.Host) == 1 && strings.ToUpper(parsed.Host) >= "A" && strings.ToUpper(parsed.Host) <= "Z" {
			path = parsed.Host + ":" + path
		}
	}

	if path == "" {
		return nil, fmt.Errorf("%s:// URI must have a path", parsed.Scheme)
	}

	return &StoreURI{
		Scheme: parsed.Scheme,
		Path:   path,
		Raw:    uri,
	}, nil
}

// validateScheme checks if the scheme is supported
func validateScheme(scheme string) error {
	for _, s := range SupportedSchemes {
		if scheme == s {
			return nil
		}
	}
	return fmt.Errorf("unsupported store scheme %q; supported schemes: %s",
		scheme, strings.Join(SupportedSchemes, ", "))
}

// IsFileScheme returns true if this is a file:// URI
func (u *StoreURI) IsFileScheme() bool {
	return u.Scheme == "file"
}

// String returns the original URI string
func (u *StoreURI) String() string {
	return u.Raw
}
