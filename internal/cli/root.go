package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// cfg and client are shared by every subcommand. They are populated in
// PersistentPreRunE so flag and env overrides are resolved exactly once.
var (
	cfg    *Config
	client *Client
)

// NewRootCmd builds the dartsctl command tree.
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "dartsctl",
		Short: "CLI tool for the darts counter API",
		Long: `dartsctl is a CLI tool for interacting with the darts counter JSON API.

It supports player accounts, running 301/501 matches dart by dart or
visit by visit, checkout lookups, and real-time SSE event streaming.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The token file only backfills when neither flag nor env set a token.
			if err := cfg.LoadToken(); err != nil {
				return err
			}
			client = NewClient(cfg.ServerURL, cfg.Token)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: DARTS_SERVER)")
	flags.StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: DARTS_TOKEN)")
	flags.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: DARTS_TOKEN_FILE)")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: DARTS_OUTPUT)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	rootCmd.AddCommand(
		newPlayerCmd(),
		newMatchCmd(),
		newCheckoutCmd(),
		newEventsCmd(),
		newHealthCmd(),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on any error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
