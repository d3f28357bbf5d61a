package client

import (
	"fmt"
	"net/http"
)

// ConfigError reports invalid construction input, such as an empty base URL
// or an unparseable proxy URL
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid client configuration: %s: %s", e.Field, e.Reason)
}

// NetworkError means the transport could not complete the call and no
// response was received. It is never produced for a server-side status.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError means the server responded with a non-2xx status. Message is
// extracted from the response envelope when parseable, otherwise it falls
// back to the HTTP status text.
type APIError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether the server explicitly rejected the
// credential
func (e *APIError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// DecodeError means a response body was not valid JSON, or could not be
// decoded into the requested type
type DecodeError struct {
	Status int
	Err    error
	Body   []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: status %d: %v", e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// errorEnvelope covers the error body shapes the panel is known to emit:
// a Laravel-style top-level message, or a nested error object
type errorEnvelope struct {
	Message string `json:"message"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// messageOrFallback picks the most specific message available
func (env *errorEnvelope) messageOrFallback(status int) string {
	if env.Message != "" {
		return env.Message
	}
	if env.Error.Message != "" {
		return env.Error.Message
	}
	return http.StatusText(status)
}
