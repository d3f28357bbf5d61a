package panelsdk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonet/panelsdk/auth"
	"github.com/halcyonet/panelsdk/client"
)

func TestSDK_LoginFlow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Unauthenticated."}`))
			return
		}
		w.Write([]byte(`{"data":{"email":"user@example.com"}}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	sdk, err := New(ctx, Config{
		Client: client.Config{BaseURL: srv.URL},
	})
	require.NoError(t, err)
	defer sdk.Close()

	states, cancel := sdk.Tokens.Subscribe()
	defer cancel()

	// Logged out: the panel rejects the call
	_, err = sdk.HTTP.Get(ctx, "/api/v1/user/info", nil)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.False(t, sdk.Tokens.IsAuthenticated())

	// Login
	require.NoError(t, sdk.Tokens.SaveToken(ctx, "abc123"))
	assert.Equal(t, auth.StateAuthenticated, <-states)

	resp, err := sdk.HTTP.Get(ctx, "/api/v1/user/info", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)

	// Logout
	require.NoError(t, sdk.Tokens.ClearToken(ctx))
	assert.Equal(t, auth.StateUnauthenticated, <-states)

	_, err = sdk.HTTP.Get(ctx, "/api/v1/user/info", nil)
	require.ErrorAs(t, err, &apiErr)
}

func TestSDK_DurableStoreSurvivesRestart(t *testing.T) {
	storeURI := "file://" + filepath.Join(t.TempDir(), "credentials.yaml")
	ctx := context.Background()

	first, err := New(ctx, Config{
		Client:   client.Config{BaseURL: "https://panel.example.com"},
		StoreURI: storeURI,
	})
	require.NoError(t, err)
	require.NoError(t, first.Tokens.SaveToken(ctx, "abc123"))
	require.NoError(t, first.Close())

	// A fresh instance over the same store starts out authenticated
	second, err := New(ctx, Config{
		Client:   client.Config{BaseURL: "https://panel.example.com"},
		StoreURI: storeURI,
	})
	require.NoError(t, err)
	defer second.Close()

	assert.True(t, second.Tokens.IsAuthenticated())
	token, err := second.Tokens.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", token)
}

func TestSDK_InvalidConfig(t *testing.T) {
	_, err := New(context.Background(), Config{})
	require.Error(t, err)

	var configErr *client.ConfigError
	assert.ErrorAs(t, err, &configErr)
}
