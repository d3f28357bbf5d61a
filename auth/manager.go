package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/halcyonet/panelsdk/credstore"
)

// BearerPrefix is the authorization scheme prefix the panel expects.
// Credentials are always persisted with it, so reads are directly usable as
// a header value.
const BearerPrefix = "Bearer "

// Manager owns the credential store and the auth-state broadcast. It is the
// only component allowed to write credential state; everything else reads
// the token or subscribes to state changes.
type Manager struct {
	store  credstore.Store
	states *emitter
	logger *slog.Logger
}

// NewManager creates a token manager over the given store. The initial auth
// state is decided here by a presence check, so a process restart over a
// durable store with a saved credential starts out authenticated.
func NewManager(ctx context.Context, store credstore.Store, logger *slog.Logger) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("credential store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	has, err := store.Has(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check stored credential: %w", err)
	}

	initial := StateUnauthenticated
	if has {
		initial = StateAuthenticated
	}
	logger.Debug("token manager initialized", "state", initial)

	return &Manager{
		store:  store,
		states: newEmitter(initial),
		logger: logger,
	}, nil
}

// NormalizeBearer returns the token with the bearer prefix, adding it if the
// raw value does not already carry one
func NormalizeBearer(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, BearerPrefix) {
		return raw
	}
	return BearerPrefix + raw
}

// SaveToken normalizes the bearer prefix, persists the credential, and
// broadcasts the authenticated state
func (m *Manager) SaveToken(ctx context.Context, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if err := m.store.Save(ctx, NormalizeBearer(raw)); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	m.states.Emit(StateAuthenticated)
	m.logger.Debug("token saved", "state", StateAuthenticated)
	return nil
}

// Token reads the stored credential. The returned value always carries the
// bearer prefix. Absence is reported as credstore.ErrNotFound.
func (m *Manager) Token(ctx context.Context) (string, error) {
	return m.store.Read(ctx)
}

// ClearToken removes the credential and broadcasts the unauthenticated state
func (m *Manager) ClearToken(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	m.states.Emit(StateUnauthenticated)
	m.logger.Debug("token cleared", "state", StateUnauthenticated)
	return nil
}

// HasToken reports whether a credential is stored
func (m *Manager) HasToken(ctx context.Context) (bool, error) {
	has, err := m.store.Has(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check stored credential: %w", err)
	}
	return has, nil
}

// CurrentState returns the current auth state
func (m *Manager) CurrentState() State {
	return m.states.Current()
}

// IsAuthenticated reports whether the current state is authenticated
func (m *Manager) IsAuthenticated() bool {
	return m.states.Current() == StateAuthenticated
}

// Subscribe returns a channel of auth state transitions and a cancel
// function. No past states are replayed.
func (m *Manager) Subscribe() (<-chan State, func()) {
	return m.states.Subscribe()
}

// Close releases the state broadcast. Idempotent. Token reads and the
// backing store keep working after Close; only the notification channel
// dies.
func (m *Manager) Close() error {
	m.states.Close()
	return nil
}

// IsNotFound reports whether err means "no credential stored"
func IsNotFound(err error) bool {
	return errors.Is(err, credstore.ErrNotFound)
}
