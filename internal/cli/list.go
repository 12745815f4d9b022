package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xcoder-tools/dlcheck/internal/cli/helpers"
	"github.com/xcoder-tools/dlcheck/internal/generate"
)

var listFormats = []helpers.OutputFormat{
	helpers.FormatTable,
	helpers.FormatJSON,
	helpers.FormatYAML,
	helpers.FormatCSV,
}

func newListCmd(opts *globalOptions) *cobra.Command {
	var (
		format       string
		declarations bool
	)

	cmd := &cobra.Command{
		Use:   "list [DL_HEADER]",
		Short: "List the LIB_API prototypes found in the canonical headers",
		Long: `List every tagged prototype of the canonical headers next to DL_HEADER,
in header order. Duplicate names are listed, not rejected.

Use --declarations to print each prototype as a normalized declaration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := helpers.ValidateFormat(format, listFormats); err != nil {
				return err
			}

			s, err := opts.newSession(cmd, args)
			if err != nil {
				return err
			}

			groups, status := s.checker.Scan(s.dl)
			if !status.OK() {
				return statusError(status)
			}
			protos := generate.Flatten(groups)

			if declarations {
				gen := s.checker.Generator()
				for _, p := range protos {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), gen.Declaration(p)); err != nil {
						return err
					}
				}
				return nil
			}

			formatter, err := helpers.NewFormatter(helpers.OutputFormat(format))
			if err != nil {
				return err
			}
			return formatter.Format(protos, cmd.OutOrStdout())
		},
	}

	helpers.AddFormatFlag(cmd, &format, helpers.FormatTable, listFormats)
	cmd.Flags().BoolVar(&declarations, "declarations", false, "Print normalized LIB_API declarations instead of a table")

	return cmd
}
