package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pantry-it/backend/internal/service"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write categories and items to a JSON or YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" && output != "" {
				format = formatFromPath(output)
			}
			f, err := service.ParseFormat(format)
			if err != nil {
				return err
			}

			return opts.run(cmd, func(e *env) error {
				snap, err := e.backend.Export(cmd.Context())
				if err != nil {
					return err
				}

				var w io.Writer = cmd.OutOrStdout()
				if output != "" && output != "-" {
					file, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("creating %s: %w", output, err)
					}
					defer file.Close()
					w = file
				}
				if err := snap.Encode(w, f); err != nil {
					return err
				}
				if output != "" && output != "-" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d categories to %s\n", len(snap.Categories), output)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default from the file extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add categories and items from an exported file",
		Long:  "Add categories and items from an exported file. Existing categories are reused and items whose name is already taken are skipped. Use - to read stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if format == "" {
				format = formatFromPath(path)
			}
			f, err := service.ParseFormat(format)
			if err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			if path != "-" {
				file, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("opening %s: %w", path, err)
				}
				defer file.Close()
				r = file
			}
			snap, err := service.DecodeSnapshot(r, f)
			if err != nil {
				return err
			}

			return opts.run(cmd, func(e *env) error {
				res, err := e.backend.Import(cmd.Context(), snap)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d categories and %d items, skipped %d existing items\n",
					res.CategoriesCreated, res.StocksCreated, res.StocksSkipped)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default from the file extension, else json)")
	return cmd
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return string(service.FormatYAML)
	}
	return string(service.FormatJSON)
}
