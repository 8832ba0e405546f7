package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	dryRun         bool
	requireEmail   bool
	failOnError    bool
	verbose        bool
	configPath     string
	requestTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "gitdesk <github_username> <freshdesk_subdomain>",
	Short: "Sync a GitHub user's profile into a Freshdesk contact",
	Long: `Gitdesk copies the public profile of one GitHub user into a contact of a
Freshdesk account.

The contact is matched by email: a single match is updated, no match creates a
new contact, and several matches are reported without writing anything.

Tokens are read from GITHUB_TOKEN and FRESHDESK_TOKEN (a .env file in the
working directory is loaded first), falling back to the config file.

Examples:
  gitdesk octocat acme
  gitdesk octocat acme --dry-run
  gitdesk octocat acme --config ./gitdesk.yaml --fail-on-error`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSync,
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&verbose, "verbose", false, "Log HTTP request traces")
	flags.StringVar(&configPath, "config", "", "Config file (default ~/.gitdesk/config.yaml)")

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the planned change without writing to Freshdesk")
	rootCmd.Flags().BoolVar(&requireEmail, "require-email", false, "Abort when the GitHub user has no public email instead of searching with an empty one")
	rootCmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "Exit non-zero when the sync aborts, finds duplicate contacts or a write fails")
	rootCmd.Flags().DurationVar(&requestTimeout, "timeout", 0, "Per-request HTTP timeout, 0 for none")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
