package cli

import (
	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [DL_HEADER]",
		Short: "Print the typedef, function list and loader blocks for the API",
		Long: `Scan the canonical headers next to DL_HEADER and print the three blocks the
dynamic loading header must contain: function pointer typedefs, API function
list members and dlsym initializers, grouped per canonical header.

DL_HEADER itself is not verified, only located; paste the output over the
corresponding sections to fix a failing check.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.newSession(cmd, args)
			if err != nil {
				return err
			}

			groups, status := s.checker.Load(s.dl)
			if !status.OK() {
				return statusError(status)
			}
			return s.checker.Generator().Render(cmd.OutOrStdout(), groups)
		},
	}
}
