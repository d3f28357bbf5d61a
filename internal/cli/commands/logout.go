package commands

import (
	"context"

	"github.com/spf13/cobra"

	clierrors "github.com/halcyonet/panelsdk/internal/cli/errors"
	"github.com/halcyonet/panelsdk/internal/cli/output"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored credential",
	Long: `Remove the stored credential from the configured store.

This operation is idempotent - it succeeds even if no credential is stored.`,
	Args: cobra.NoArgs,
	Run:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	ctx := context.Background()

	manager, err := openManager(ctx, cfg, logger)
	if err != nil {
		clierrors.ExitWithError(err, "failed to open credential store")
	}
	defer manager.Close()

	if err := manager.ClearToken(ctx); err != nil {
		clierrors.ExitWithError(err, "failed to remove credential")
	}

	if flagJSON {
		output.OutputJSON(map[string]bool{"logged_out": true}, nil)
	} else {
		output.PrintSuccess("Logged out successfully")
	}
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
