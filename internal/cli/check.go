package cli

import (
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [DL_HEADER]",
		Short: "Check the dynamic loading header (default command)",
		Long: `Check that DL_HEADER declares a typedef, a function list member and a
dlsym initializer for every LIB_API function of the canonical headers, and
nothing else that looks like one.

Diagnostics are printed to stdout as (FAILURE), (ERROR) or (SUCCESS) lines.
By default verification stops after the first failing pass; use --exhaustive
to see every problem at once.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
	}
}

func runCheck(cmd *cobra.Command, opts *globalOptions, args []string) error {
	s, err := opts.newSession(cmd, args)
	if err != nil {
		return err
	}
	return statusError(s.checker.Check(s.dl))
}
