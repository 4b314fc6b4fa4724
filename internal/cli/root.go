package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pantry-it/backend/internal/infrastructure/config"
	"github.com/pantry-it/backend/internal/presentation"
)

var (
	version = "dev"
	commit  = "none"
)

type rootOptions struct {
	apiURL  string
	dbPath  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "pantry",
		Short:         "Keep track of what is left in the pantry",
		Long:          "Pantry records household items, groups them into categories and tracks how full each one is over time.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", "", "Pantry server URL (default $API_URL; empty opens the database directly)")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path (default $DB_PATH or data/pantry.db)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDashboardCmd(opts))
	cmd.AddCommand(newAnalyticsCmd(opts))
	cmd.AddCommand(newSettingsCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newCategoryCmd(opts))
	cmd.AddCommand(newStockCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newImportCmd(opts))
	cmd.AddCommand(newDBCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pantry %s (%s)\n", version, commit)
		},
	}
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI and prints failures as user-facing messages.
func Execute() error {
	config.LoadDotEnv()
	cmd := newRootCmd()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", presentation.Message(err))
	}
	return err
}
