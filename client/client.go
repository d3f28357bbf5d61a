// Package client is the dispatch pipeline every panel API call passes
// through: credential injection, transport execution, and normalization of
// transport and server failures into a closed typed-error set.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

var errEmptyBody = errors.New("empty response body")

// Client dispatches requests against the panel API. It is stateless across
// calls apart from the shared token source, so concurrent callers may issue
// overlapping requests safely.
type Client struct {
	baseURL     string
	headers     map[string]string
	httpClient  *http.Client
	interceptor *authInterceptor
	logger      *slog.Logger
}

// New creates a dispatch client. tokens may be nil for a client that only
// talks to public endpoints.
func New(cfg Config, tokens TokenSource, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, &ConfigError{Field: "base_url", Reason: "cannot be empty"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	transport, err := buildTransport(cfg)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: normalizeBaseURL(cfg.BaseURL),
		headers: cfg.Headers,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		interceptor: newAuthInterceptor(tokens, logger),
		logger:      logger,
	}, nil
}

// Request dispatches a single call and normalizes the result. No retries,
// no caching, no request coalescing happen here; callers that need retry
// must wrap this externally.
func (c *Client) Request(ctx context.Context, method, path string, body any, query url.Values) (*Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	if err := c.interceptor.apply(req); err != nil {
		return nil, fmt.Errorf("failed to resolve credential: %w", err)
	}

	requestID := uuid.New().String()
	start := time.Now()
	c.logger.Debug("dispatching request",
		"request_id", requestID,
		"method", method,
		"endpoint", path,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			"request_id", requestID,
			"method", method,
			"endpoint", path,
			"error", err,
		)
		return nil, &NetworkError{Method: method, URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: fullURL, Err: err}
	}

	c.logger.Debug("request completed",
		"request_id", requestID,
		"method", method,
		"endpoint", path,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.interceptor.onUnauthorized(method, path)
		}
		var env errorEnvelope
		_ = json.Unmarshal(data, &env)
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: env.messageOrFallback(resp.StatusCode),
			Body:    data,
		}
	}

	if len(data) == 0 {
		return &Response{Status: resp.StatusCode}, nil
	}
	if !json.Valid(data) {
		return nil, &DecodeError{
			Status: resp.StatusCode,
			Err:    errors.New("response body is not valid JSON"),
			Body:   data,
		}
	}

	return &Response{Status: resp.StatusCode, Body: json.RawMessage(data)}, nil
}

// Get dispatches a GET request
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Request(ctx, http.MethodGet, path, nil, query)
}

// Post dispatches a POST request with an optional JSON body
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Request(ctx, http.MethodPost, path, body, nil)
}

// Put dispatches a PUT request with an optional JSON body
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Request(ctx, http.MethodPut, path, body, nil)
}

// Delete dispatches a DELETE request
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, path, nil, nil)
}
