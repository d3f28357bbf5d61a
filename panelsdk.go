// Package panelsdk assembles the authenticated request pipeline for a panel
// REST API: a credential store, a token manager with auth-state broadcast,
// and an HTTP dispatch client with a typed error taxonomy.
//
// The host application constructs one SDK and passes it by reference to the
// resource modules layered on top; there is no ambient global instance.
package panelsdk

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/halcyonet/panelsdk/auth"
	"github.com/halcyonet/panelsdk/client"
	"github.com/halcyonet/panelsdk/credstore"
)

// Config assembles an SDK instance
type Config struct {
	// Client carries the transport configuration (base URL, headers,
	// proxy, TLS trust, timeout)
	Client client.Config

	// StoreURI selects the credential store backend (file://, mem://,
	// sqlite://). Empty means a volatile in-memory store.
	StoreURI string

	// Logger for all components. Nil means slog.Default().
	Logger *slog.Logger
}

// SDK is the explicit instance holder the host application constructs once
type SDK struct {
	Tokens *auth.Manager
	HTTP   *client.Client
	store  credstore.Store
}

// New wires store, token manager, and dispatch client together
func New(ctx context.Context, cfg Config) (*SDK, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	storeURI := cfg.StoreURI
	if storeURI == "" {
		storeURI = "mem://"
	}
	store, err := credstore.Open(storeURI, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	tokens, err := auth.NewManager(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	httpClient, err := client.New(cfg.Client, tokens, logger)
	if err != nil {
		tokens.Close()
		return nil, err
	}

	return &SDK{
		Tokens: tokens,
		HTTP:   httpClient,
		store:  store,
	}, nil
}

// Close releases the auth-state broadcast. Idempotent. Token reads and
// dispatch keep working after Close.
func (s *SDK) Close() error {
	return s.Tokens.Close()
}
