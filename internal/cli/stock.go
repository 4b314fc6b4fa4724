package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pantry-it/backend/internal/api"
	"github.com/pantry-it/backend/internal/presentation"
	"github.com/pantry-it/backend/internal/service"
)

func newStockCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stock",
		Aliases: []string{"stocks", "item"},
		Short:   "Manage pantry items",
	}
	cmd.AddCommand(newStockAddCmd(opts))
	cmd.AddCommand(newStockUpdateCmd(opts))
	cmd.AddCommand(newStockDeleteCmd(opts))
	cmd.AddCommand(newStockShowCmd(opts))
	return cmd
}

// stockFlags hold the editable fields of an item. Only flags the user set
// are applied on update.
type stockFlags struct {
	name       string
	categoryID int64
	kind       string
	fullValue  float64
	unit       string
	level      string
	percentage float64
	current    float64
}

func (f *stockFlags) register(fs *pflag.FlagSet, withName bool) {
	if withName {
		fs.StringVar(&f.name, "name", "", "New item name")
	}
	fs.Int64Var(&f.categoryID, "category", 0, "Category id (0 is Uncategorized)")
	fs.StringVar(&f.kind, "type", "", "basic or exact")
	fs.Float64Var(&f.fullValue, "full", 0, "Full amount of an exact item")
	fs.StringVar(&f.unit, "unit", "", "Unit of the full amount, e.g. g")
	fs.StringVar(&f.level, "level", "", "full, half or refill")
	fs.Float64Var(&f.percentage, "percent", 0, "Fill level between 0 and 100")
	fs.Float64Var(&f.current, "current", 0, "Current amount of an exact item")
}

// apply overlays the flags that were set on req.
func (f *stockFlags) apply(fs *pflag.FlagSet, req *api.StockRequest) {
	if fs.Changed("name") {
		req.Name = f.name
	}
	if fs.Changed("category") {
		req.CategoryID = f.categoryID
	}
	if fs.Changed("type") {
		req.Type = f.kind
	}
	if fs.Changed("full") {
		req.FullValue = &f.fullValue
	}
	if fs.Changed("unit") {
		req.Unit = &f.unit
	}

	amount := fs.Changed("level") || fs.Changed("percent") || fs.Changed("current")
	if amount {
		req.Level, req.Percentage, req.Current = nil, nil, nil
	}
	if fs.Changed("level") {
		req.Level = &f.level
	}
	if fs.Changed("percent") {
		req.Percentage = &f.percentage
	}
	if fs.Changed("current") {
		req.Current = &f.current
	}
}

func validationError(err error) error {
	return fmt.Errorf("%w: %v", service.ErrValidation, err)
}

func newStockAddCmd(opts *rootOptions) *cobra.Command {
	var flags stockFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an item",
		Long:  "Create an item. Give exactly one of --level, --percent or --current; --current needs --type exact and --full.",
		Example: `  pantry stock add "Olive oil" --level half
  pantry stock add Rice --category 2 --type exact --full 2 --unit kg --current 0.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.StockRequest{Name: args[0]}
			flags.apply(cmd.Flags(), &req)
			if err := req.Validate(); err != nil {
				return validationError(err)
			}
			in, err := req.Input()
			if err != nil {
				return validationError(err)
			}

			return opts.run(cmd, func(e *env) error {
				id, err := e.app.AddStock(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q (id %d) at %s\n", in.Name, id, formatPercent(in.Percentage))
				return nil
			})
		},
	}
	flags.register(cmd.Flags(), false)
	return cmd
}

func newStockUpdateCmd(opts *rootOptions) *cobra.Command {
	var flags stockFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an item and record its new fill level",
		Long:  "Change an item. Fields without a flag keep their current value; without --level, --percent or --current the current fill level is recorded again.",
		Example: `  pantry stock update 7 --level refill
  pantry stock update 7 --name "Green tea" --category 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return opts.run(cmd, func(e *env) error {
				current, err := e.app.Stock(cmd.Context(), id)
				if err != nil {
					return err
				}
				percentage := current.Percentage
				req := api.StockRequest{
					Name:       current.Name,
					CategoryID: current.CategoryID,
					Type:       string(current.Type),
					FullValue:  current.FullValue,
					Unit:       current.Unit,
					Percentage: &percentage,
				}
				flags.apply(cmd.Flags(), &req)
				if err := req.Validate(); err != nil {
					return validationError(err)
				}
				in, err := req.Input()
				if err != nil {
					return validationError(err)
				}

				if err := e.app.UpdateStock(cmd.Context(), id, in); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %q (id %d) at %s\n", in.Name, id, formatPercent(in.Percentage))
				return nil
			})
		},
	}
	flags.register(cmd.Flags(), true)
	return cmd
}

func newStockDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(e *env) error {
				if err := e.app.DeleteStock(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted item %d\n", id)
				return nil
			})
		},
	}
}

func newStockShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an item with its full history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(e *env) error {
				detail, err := e.app.Stock(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), presentation.RenderStock(detail))
				return nil
			})
		},
	}
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%g%%", p)
}
