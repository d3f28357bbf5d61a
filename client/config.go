package client

import (
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout applies when Config.Timeout is zero
const DefaultTimeout = 30 * time.Second

// Config holds the transport configuration accepted at construction
type Config struct {
	// BaseURL of the panel, e.g. "https://panel.example.com". Required.
	// A trailing slash is stripped once here; request paths are expected
	// to begin with "/".
	BaseURL string

	// Headers are sent on every request (user-agent, path-obfuscation
	// prefix headers and similar)
	Headers map[string]string

	// ProxyURL routes all calls through an outbound proxy when set
	ProxyURL string

	// InsecureSkipVerify disables server certificate validation
	InsecureSkipVerify bool

	// RootCAs replaces the system trust pool when set
	RootCAs *x509.CertPool

	// Timeout is the per-request timeout. Zero means DefaultTimeout.
	// There is no retry policy at this layer.
	Timeout time.Duration
}

// normalizeBaseURL strips trailing slashes from the base URL
func normalizeBaseURL(u string) string {
	return strings.TrimRight(u, "/")
}

// buildTransport constructs the base transport from the config
func buildTransport(cfg Config) (*http.Transport, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil || proxyURL.Scheme == "" || proxyURL.Host == "" {
			return nil, &ConfigError{Field: "proxy_url", Reason: "not a valid URL: " + cfg.ProxyURL}
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	if cfg.InsecureSkipVerify || cfg.RootCAs != nil {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
			RootCAs:            cfg.RootCAs,
		}
		transport.TLSClientConfig = tlsConfig
	}

	return transport, nil
}
