package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/halcyonet/panelsdk/auth"
	"github.com/halcyonet/panelsdk/client"
	"github.com/halcyonet/panelsdk/credstore"
	clierrors "github.com/halcyonet/panelsdk/internal/cli/errors"
	"github.com/halcyonet/panelsdk/internal/config"
	"github.com/halcyonet/panelsdk/internal/logging"
)

var (
	// Global flags
	flagURL      string
	flagToken    string
	flagJSON     bool
	flagVerbose  bool
	flagTimeout  time.Duration
	flagInsecure bool
	flagProxy    string
	flagStore    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "panelctl",
	Short: "Panel API command-line client",
	Long: `panelctl is a command-line client for a panel REST API.

It manages the stored bearer credential (login/logout/status) and provides
raw access to authenticated API calls through the request command.`,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "Panel base URL (or use PANEL_URL env var)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Bearer token (or use PANEL_TOKEN env var; overrides stored credential)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "HTTP request timeout (default 30s)")
	rootCmd.PersistentFlags().BoolVar(&flagInsecure, "insecure", false, "Skip TLS certificate validation")
	rootCmd.PersistentFlags().StringVar(&flagProxy, "proxy", "", "Outbound proxy URL")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Credential store URI (file://, mem://, sqlite://)")
}

// loadConfig loads configuration from env/defaults and applies flag overrides
func loadConfig() *config.Config {
	cfg, err := config.LoadWithViper(config.NewViper())
	if err != nil {
		clierrors.ExitWithCode(clierrors.ExitInvalidArguments, err.Error())
	}

	if flagToken != "" {
		cfg.Token = flagToken
	}
	if flagTimeout != 0 {
		cfg.Timeout = flagTimeout
	}
	if flagInsecure {
		cfg.Insecure = true
	}
	if flagProxy != "" {
		cfg.Proxy = flagProxy
	}
	if flagStore != "" {
		cfg.StoreURI = flagStore
	}

	if err := cfg.Validate(); err != nil {
		clierrors.ExitWithCode(clierrors.ExitInvalidArguments, err.Error())
	}
	return cfg
}

// newLogger builds the CLI logger; --verbose forces debug level
func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Logging.Level
	if flagVerbose {
		level = "debug"
	}
	return logging.NewLogger(level, cfg.Logging.Format)
}

// clientConfig maps CLI configuration onto the dispatch client's transport
// configuration
func clientConfig(cfg *config.Config, baseURL string) client.Config {
	return client.Config{
		BaseURL:            baseURL,
		Headers:            cfg.Headers,
		ProxyURL:           cfg.Proxy,
		InsecureSkipVerify: cfg.Insecure,
		Timeout:            cfg.Timeout,
	}
}

// staticToken is a TokenSource for an explicitly provided token (--token
// flag or PANEL_TOKEN), bypassing the credential store
type staticToken string

func (s staticToken) Token(ctx context.Context) (string, error) {
	return auth.NormalizeBearer(string(s)), nil
}

// openManager opens the configured credential store and builds a token
// manager over it
func openManager(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*auth.Manager, error) {
	store, err := credstore.Open(cfg.StoreURI, logger)
	if err != nil {
		return nil, err
	}
	return auth.NewManager(ctx, store, logger)
}

// resolveClient builds a dispatch client. An explicit token takes precedence
// over the stored credential; otherwise the token manager over the
// configured store supplies it. The returned manager is nil in the explicit
// token case.
func resolveClient(ctx context.Context, cfg *config.Config, baseURL string, logger *slog.Logger) (*client.Client, *auth.Manager, error) {
	if cfg.Token != "" {
		c, err := client.New(clientConfig(cfg, baseURL), staticToken(cfg.Token), logger)
		return c, nil, err
	}

	manager, err := openManager(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	c, err := client.New(clientConfig(cfg, baseURL), manager, logger)
	if err != nil {
		manager.Close()
		return nil, nil, err
	}
	return c, manager, nil
}
