package credstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// credentialsFile is the on-disk layout of the durable store
type credentialsFile struct {
	Token string `yaml:"token"`
}

// FileStore is a durable credential store backed by a YAML file. The file is
// written with 0600 permissions and its directory is created with 0700.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a file-backed credential store at the given path
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Save writes the credential to disk, replacing any previous value
func (f *FileStore) Save(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	data, err := yaml.Marshal(&credentialsFile{Token: value})
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	// 0600: read/write for owner only
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	f.logger.Debug("credentials saved", "path", f.path)
	return nil
}

// Read returns the stored credential, or ErrNotFound if absent
func (f *FileStore) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds credentialsFile
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("failed to parse credentials file: %w", err)
	}

	if creds.Token == "" {
		return "", ErrNotFound
	}
	return creds.Token, nil
}

// Clear removes the credentials file. Missing file is not an error
func (f *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete credentials file: %w", err)
	}
	return nil
}

// Has reports whether a credential is currently stored
func (f *FileStore) Has(ctx context.Context) (bool, error) {
	_, err := f.Read(ctx)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
