package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDBCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Maintain the local database",
	}
	cmd.AddCommand(newDBInfoCmd(opts))
	cmd.AddCommand(newDBOptimizeCmd(opts))
	return cmd
}

func newDBInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the database path and row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(e *env) error {
				if e.local == nil {
					return errRemoteUnsupported
				}
				stats, err := e.local.Stats(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "database:   %s\n", stats.Path)
				fmt.Fprintf(out, "categories: %d\n", stats.Categories)
				fmt.Fprintf(out, "items:      %d\n", stats.Stocks)
				fmt.Fprintf(out, "history:    %d\n", stats.HistoryItems)
				return nil
			})
		},
	}
}

func newDBOptimizeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "optimize",
		Short: "Reclaim free pages and refresh query statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(e *env) error {
				if e.local == nil {
					return errRemoteUnsupported
				}
				if err := e.local.Optimize(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Database optimized")
				return nil
			})
		},
	}
}
