package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pantry-it/backend/internal/service"
)

func newCategoryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "Manage categories",
	}
	cmd.AddCommand(newCategoryListCmd(opts))
	cmd.AddCommand(newCategoryAddCmd(opts))
	cmd.AddCommand(newCategoryDeleteCmd(opts))
	return cmd
}

func newCategoryListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories with their item counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(e *env) error {
				categories, err := e.app.Categories(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, c := range categories {
					marker := ""
					if c.IsDefault() {
						marker = " (default)"
					}
					fmt.Fprintf(out, "%4d  %s%s  [%d]\n", c.ID, c.Name, marker, c.StockCount)
				}
				return nil
			})
		},
	}
}

func newCategoryAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(e *env) error {
				cat, err := e.app.AddCategory(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created category %q (id %d)\n", cat.Name, cat.ID)
				return nil
			})
		},
	}
}

func newCategoryDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category and move its items to Uncategorized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(e *env) error {
				if err := e.app.DeleteCategory(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %d\n", id)
				return nil
			})
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid id", service.ErrValidation, s)
	}
	return id, nil
}
