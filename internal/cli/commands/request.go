package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halcyonet/panelsdk/client"
	clierrors "github.com/halcyonet/panelsdk/internal/cli/errors"
	"github.com/halcyonet/panelsdk/internal/cli/output"
)

var (
	flagRequestData  string
	flagRequestQuery []string
)

var requestCmd = &cobra.Command{
	Use:   "request METHOD PATH",
	Short: "Dispatch a raw API request",
	Long: `Dispatch a single request through the authenticated pipeline and print
the JSON response.

Examples:
  panelctl request GET /api/v1/user/info
  panelctl request GET /api/v1/user/plan/fetch --query sort=price
  panelctl request POST /api/v1/user/ticket/save --data '{"subject":"help"}'`,
	Args: cobra.ExactArgs(2),
	Run:  runRequest,
}

func runRequest(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	ctx := context.Background()

	method := strings.ToUpper(args[0])
	path := args[1]
	if !strings.HasPrefix(path, "/") {
		clierrors.ExitWithCode(clierrors.ExitInvalidArguments, "path must begin with '/'")
	}

	var body any
	if flagRequestData != "" {
		if err := json.Unmarshal([]byte(flagRequestData), &body); err != nil {
			clierrors.ExitWithCode(clierrors.ExitInvalidArguments, fmt.Sprintf("--data is not valid JSON: %v", err))
		}
	}

	query := url.Values{}
	for _, pair := range flagRequestQuery {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			clierrors.ExitWithCode(clierrors.ExitInvalidArguments, fmt.Sprintf("invalid --query %q, expected key=value", pair))
		}
		query.Add(key, value)
	}

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

	resp, err := c.Request(ctx, method, path, body, query)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			clierrors.HandleAPIError(apiErr)
		}
		clierrors.ExitWithError(err, "request failed")
	}

	if flagJSON {
		output.OutputJSON(map[string]any{
			"status": resp.Status,
			"body":   resp.Body,
		}, nil)
	} else {
		output.OutputRawJSON(resp.Body)
	}
}

func init() {
	requestCmd.Flags().StringVar(&flagRequestData, "data", "", "JSON request body")
	requestCmd.Flags().StringArrayVar(&flagRequestQuery, "query", nil, "Query parameter key=value (repeatable)")
	rootCmd.AddCommand(requestCmd)
}
