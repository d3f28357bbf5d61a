package credstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no credential has been saved yet
	ErrNotFound = errors.New("credential not found")
)

// Store persists a single bearer credential. Implementations must treat a
// read or presence check before any save as "absent" (ErrNotFound / false),
// never as a failure. Clear is idempotent.
type Store interface {
	// Save persists the credential, replacing any previous value
	Save(ctx context.Context, value string) error

	// Read returns the stored credential, or ErrNotFound if absent
	Read(ctx context.Context) (string, error)

	// Clear removes the stored credential. Clearing an empty store is not an error
	Clear(ctx context.Context) error

	// Has reports whether a credential is currently stored
	Has(ctx context.Context) (bool, error)
}
