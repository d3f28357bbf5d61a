package errors

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/halcyonet/panelsdk/client"
)

// Exit codes for different error scenarios
const (
	ExitSuccess          = 0 // Success
	ExitGeneralError     = 1 // General error (network failure, server 500, unknown error)
	ExitInvalidArguments = 2 // Invalid arguments/usage (missing flags, bad config)
	ExitNotFound         = 3 // Resource not found (404)
	ExitConflict         = 4 // Conflict (409)
	ExitAuthError        = 5 // Authentication error (401)
	ExitPermissionDenied = 6 // Permission denied (403)
)

// ExitWithError prints the error message and exits with a code derived from
// the error kind
func ExitWithError(err error, message string) {
	if message != "" {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(CodeForError(err))
}

// ExitWithCode prints an error message and exits with a specific code
func ExitWithCode(code int, message string) {
	if message != "" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
	os.Exit(code)
}

// CodeForError maps the pipeline's typed errors to exit codes. Unknown
// errors map to the general error code.
func CodeForError(err error) int {
	var configErr *client.ConfigError
	if errors.As(err, &configErr) {
		return ExitInvalidArguments
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return MapHTTPStatusToExitCode(apiErr.Status)
	}

	// NetworkError and DecodeError are both general failures
	return ExitGeneralError
}

// MapHTTPStatusToExitCode maps HTTP status codes to exit codes
func MapHTTPStatusToExitCode(statusCode int) int {
	switch statusCode {
	case http.StatusUnauthorized:
		return ExitAuthError
	case http.StatusForbidden:
		return ExitPermissionDenied
	case http.StatusNotFound:
		return ExitNotFound
	case http.StatusConflict:
		return ExitConflict
	case http.StatusBadRequest:
		return ExitInvalidArguments
	default:
		if statusCode >= 400 && statusCode < 500 {
			return ExitInvalidArguments
		}
		return ExitGeneralError
	}
}

// HandleAPIError prints a typed API error with a login hint for auth
// failures, then exits
func HandleAPIError(apiErr *client.APIError) {
	message := apiErr.Message
	if apiErr.IsUnauthorized() {
		message += ". Try running 'panelctl login' to authenticate"
	}
	ExitWithCode(MapHTTPStatusToExitCode(apiErr.Status), message)
}
