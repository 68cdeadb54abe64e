package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var envErr error
	cfg, envErr = DefaultConfig()
	if envErr != nil {
		cfg = &Config{ServerURL: "http://localhost:8080", Output: "text"}
	}

	rootCmd := &cobra.Command{
		Use:   "playerctl",
		Short: "CLI tool for the player registry API",
		Long: `playerctl is a CLI tool for interacting with the player registry JSON API.

It supports creating, updating, deleting and searching players.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: PLAYERCTL_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: PLAYERCTL_OUTPUT)")

	// Add subcommands
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
