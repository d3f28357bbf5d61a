package credstore

import (
	"fmt"
	"log/slog"
)

// Open creates a credential store backend based on the URI scheme:
//   - file://PATH  -> FileStore (durable, YAML on disk)
//   - mem://       -> MemoryStore (volatile, in-process)
//   - sqlite://PATH -> SQLiteStore (durable, single-row table)
func Open(uri string, logger *slog.Logger) (Store, error) {
	parsed, err := ParseStoreURI(uri)
	if err != nil {
		return nil, err
	}
	return OpenURI(parsed, logger)
}

// OpenURI creates a credential store from an already parsed URI
func OpenURI(uri *StoreURI, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch uri.Scheme {
	case "file":
		return NewFileStore(uri.Path, logger), nil

	case "mem":
		return NewMemoryStore(), nil

	case "sqlite":
		return NewSQLiteStore(uri.Path, logger)

	default:
		return nil, fmt.Errorf("unsupported store scheme: %s", uri.Scheme)
	}
}
