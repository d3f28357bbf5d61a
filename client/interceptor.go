package client

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/halcyonet/panelsdk/credstore"
)

// TokenSource supplies the current bearer credential. auth.Manager satisfies
// this. A credstore.ErrNotFound result means no credential is held.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// authInterceptor decorates outgoing requests with the current credential.
// When no credential is held the request goes out unauthenticated - public
// endpoints must keep working while logged out.
type authInterceptor struct {
	tokens TokenSource
	logger *slog.Logger
}

func newAuthInterceptor(tokens TokenSource, logger *slog.Logger) *authInterceptor {
	return &authInterceptor{tokens: tokens, logger: logger}
}

// apply attaches the Authorization header when a token is present. A store
// read failure (anything other than absence) propagates to the caller.
func (i *authInterceptor) apply(req *http.Request) error {
	if i.tokens == nil {
		return nil
	}

	token, err := i.tokens.Token(req.Context())
	if err != nil {
		if errors.Is(err, credstore.ErrNotFound) {
			i.logger.Debug("no credential stored, sending unauthenticated request",
				"method", req.Method, "endpoint", req.URL.Path)
			return nil
		}
		return err
	}

	req.Header.Set("Authorization", token)
	return nil
}

// onUnauthorized reacts to an explicit unauthorized status. There is no
// refresh flow: tokens are valid until explicitly revoked, so the credential
// and auth state are left untouched and the failure surfaces as an APIError.
// Whether to clear the credential is the caller's decision.
func (i *authInterceptor) onUnauthorized(method, endpoint string) {
	i.logger.Debug("server rejected credential",
		"method", method, "endpoint", endpoint)
}
