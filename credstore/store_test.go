package credstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactories builds one instance of every backend against a temp dir
func storeFactories(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqliteStore, err := NewSQLiteStore(filepath.Join(dir, "creds.db"), nil)
	require.NoError(t, err)

	return map[string]Store{
		"file":   NewFileStore(filepath.Join(dir, "credentials.yaml"), nil),
		"memory": NewMemoryStore(),
		"sqlite": sqliteStore,
	}
}

func TestStore_ReadBeforeSave(t *testing.T) {
	ctx := context.Background()
	for name, store := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Read(ctx)
			assert.ErrorIs(t, err, ErrNotFound)

			has, err := store.Has(ctx)
			require.NoError(t, err)
			assert.False(t, has)
		})
	}
}

func TestStore_SaveReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(ctx, "Bearer abc123"))

			value, err := store.Read(ctx)
			require.NoError(t, err)
			assert.Equal(t, "Bearer abc123", value)

			has, err := store.Has(ctx)
			require.NoError(t, err)
			assert.True(t, has)

			// Save replaces the previous value
			require.NoError(t, store.Save(ctx, "Bearer def456"))
			value, err = store.Read(ctx)
			require.NoError(t, err)
			assert.Equal(t, "Bearer def456", value)
		})
	}
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	for name, store := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			// Clearing an empty store is not an error
			require.NoError(t, store.Clear(ctx))

			require.NoError(t, store.Save(ctx, "Bearer abc123"))
			require.NoError(t, store.Clear(ctx))

			_, err := store.Read(ctx)
			assert.ErrorIs(t, err, ErrNotFound)

			has, err := store.Has(ctx)
			require.NoError(t, err)
			assert.False(t, has)

			require.NoError(t, store.Clear(ctx))
		})
	}
}

func TestFileStore_Permissions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "credentials.yaml")
	store := NewFileStore(path, nil)

	require.NoError(t, store.Save(ctx, "Bearer abc123"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.yaml")

	require.NoError(t, NewFileStore(path, nil).Save(ctx, "Bearer abc123"))

	reopened := NewFileStore(path, nil)
	value, err := reopened.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", value)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "creds.db")

	first, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, "Bearer abc123"))

	reopened, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	value, err := reopened.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", value)
}

func TestOpen_SelectsBackend(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		uri  string
		want any
	}{
		{
			name: "file scheme",
			uri:  "file://" + filepath.Join(dir, "credentials.yaml"),
			want: &FileStore{},
		},
		{
			name: "mem scheme",
			uri:  "mem://",
			want: &MemoryStore{},
		},
		{
			name: "sqlite scheme",
			uri:  "sqlite://" + filepath.Join(dir, "creds.db"),
			want: &SQLiteStore{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.uri, nil)
			require.NoError(t, err)
			assert.IsType(t, tt.want, store)
		})
	}
}

func TestOpen_UnsupportedScheme(t *testing.T) {
	_, err := Open("redis://localhost/0", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store scheme")
}
