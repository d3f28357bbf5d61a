package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/halcyonet/panelsdk/auth"
	"github.com/halcyonet/panelsdk/client"
	clierrors "github.com/halcyonet/panelsdk/internal/cli/errors"
	"github.com/halcyonet/panelsdk/internal/cli/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long: `Check authentication status by calling the panel's /api/v1/user/info
endpoint with the current credential.

Resolves URL and token using normal precedence:
- URL: --url flag > PANEL_URL env var
- Token: --token flag > PANEL_TOKEN env var > stored credential`,
	Args: cobra.NoArgs,
	Run:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	ctx := context.Background()

	panelURL, err := cfg.ResolveURL(flagURL)
	if err != nil {
		clierrors.ExitWithCode(clierrors.ExitInvalidArguments, err.Error())
	}

	c, manager, err := resolveClient(ctx, cfg, panelURL, logger)
	if err != nil {
		clierrors.ExitWithError(err, "failed to build client")
	}
	if manager != nil {
		defer manager.Close()
	}

	// Current token for the expiry display, regardless of probe outcome
	var token string
	if cfg.Token != "" {
		token = auth.NormalizeBearer(cfg.Token)
	} else if manager != nil {
		token, _ = manager.Token(ctx)
	}

	authenticated := false
	var probeErr error
	if _, probeErr = c.Get(ctx, "/api/v1/user/info", nil); probeErr == nil {
		authenticated = true
	}

	expiry, hasExpiry := tokenExpiry(token)

	if flagJSON {
		result := map[string]any{
			"panel":         panelURL,
			"authenticated": authenticated,
			"has_token":     token != "",
		}
		if hasExpiry {
			result["token_expires_at"] = expiry.Format(time.RFC3339)
		}
		output.OutputJSON(result, nil)
	} else {
		if authenticated {
			output.PrintSuccess(fmt.Sprintf("Authenticated to %s", panelURL))
		} else {
			var apiErr *client.APIError
			if errors.As(probeErr, &apiErr) && apiErr.IsUnauthorized() {
				output.PrintError(fmt.Sprintf("Not authenticated to %s", panelURL))
				fmt.Println("Run 'panelctl login' to authenticate")
			} else {
				output.PrintError(fmt.Sprintf("Failed to reach %s: %v", panelURL, probeErr))
			}
		}
		if hasExpiry {
			fmt.Printf("Token expires at %s\n", expiry.Format(time.RFC3339))
		}
	}

	if !authenticated {
		clierrors.ExitWithCode(clierrors.CodeForError(probeErr), "")
	}
}

// tokenExpiry extracts the expiry claim when the opaque bearer value happens
// to be a JWT. Purely informational: nothing is keyed off expiry, the panel
// treats tokens as valid until revoked.
func tokenExpiry(token string) (time.Time, bool) {
	raw := strings.TrimPrefix(token, auth.BearerPrefix)
	if raw == "" {
		return time.Time{}, false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
