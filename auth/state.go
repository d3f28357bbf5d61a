// Package auth owns the bearer credential lifecycle: it composes a
// credential store with an auth-state broadcast so that callers always have
// a single authority for "are we logged in".
package auth

// State is the current authentication status
type State string

const (
	// StateUnauthenticated means no credential is held
	StateUnauthenticated State = "unauthenticated"
	// StateAuthenticated means a credential is stored and will be attached
	// to outgoing requests
	StateAuthenticated State = "authenticated"
)

func (s State) String() string {
	return string(s)
}
