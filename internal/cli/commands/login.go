package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halcyonet/panelsdk/client"
	clierrors "github.com/halcyonet/panelsdk/internal/cli/errors"
	"github.com/halcyonet/panelsdk/internal/cli/output"
	"github.com/halcyonet/panelsdk/internal/cli/prompts"
	"github.com/halcyonet/panelsdk/internal/config"
)

var loginCmd = &cobra.Command{
	Use:   "login [panel-url]",
	Short: "Authenticate with a panel and store the credential",
	Long: `Verify a bearer token against the panel and store it.

Panel URL can be provided as an argument or via the PANEL_URL environment
variable. The token is taken from --token / PANEL_TOKEN, or prompted for
with hidden input.

The token is verified with a call to /api/v1/user/info before it is
persisted. Only one credential is stored at a time; logging in replaces any
existing credential.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLogin,
}

func runLogin(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	ctx := context.Background()

	var panelURL string
	if len(args) > 0 {
		panelURL = config.NormalizeURL(args[0])
	} else {
		var err error
		panelURL, err = cfg.ResolveURL(flagURL)
		if err != nil {
			clierrors.ExitWithCode(clierrors.ExitInvalidArguments, "no panel URL specified. Provide it as argument or set PANEL_URL")
		}
	}

	token := cfg.Token
	if token == "" {
		var err error
		token, err = prompts.PromptToken()
		if err != nil {
			clierrors.ExitWithError(err, "failed to read token")
		}
	}
	if token == "" {
		clierrors.ExitWithCode(clierrors.ExitInvalidArguments, "token cannot be empty")
	}

	// Verify the token before persisting anything
	probe, err := client.New(clientConfig(cfg, panelURL), staticToken(token), logger)
	if err != nil {
		clierrors.ExitWithError(err, "failed to build client")
	}
	if _, err := probe.Get(ctx, "/api/v1/user/info", nil); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			if apiErr.IsUnauthorized() {
				clierrors.ExitWithCode(clierrors.ExitAuthError, "authentication failed: "+apiErr.Message)
			}
			clierrors.HandleAPIError(apiErr)
		}
		clierrors.ExitWithError(err, "failed to connect to panel")
	}

	// Token accepted - persist it
	manager, err := openManager(ctx, cfg, logger)
	if err != nil {
		clierrors.ExitWithError(err, "failed to open credential store")
	}
	defer manager.Close()

	if err := manager.SaveToken(ctx, token); err != nil {
		clierrors.ExitWithError(err, "failed to save credential")
	}

	if flagJSON {
		output.OutputJSON(map[string]string{"panel": panelURL}, nil)
	} else {
		output.PrintSuccess(fmt.Sprintf("Logged in to %s", panelURL))
	}
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
