package cli

import (
	"github.com/spf13/cobra"

	configcmd "github.com/xcoder-tools/dlcheck/internal/cli/config"
	"github.com/xcoder-tools/dlcheck/internal/constants"
	"github.com/xcoder-tools/dlcheck/pkg/version"
)

// NewRootCmd builds the dlcheck command tree. Running the root command
// without a subcommand performs the check.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "dlcheck [DL_HEADER]",
		Short: "Check a libxcoder dynamic loading header against the API headers",
		Long: `Verify that the hand-maintained dynamic loading header stays in sync with
every function tagged LIB_API in the canonical libxcoder headers.

For each API function the dynamic loading header must contain:
- a function pointer typedef
- a member of the API function list struct
- a dlsym initializer for that member

Canonical headers are looked up in the directory of DL_HEADER
(default ` + constants.DefaultDynamicHeader + `).

Exit status is a bit set: 1 missing input, 2 parse error, 4 duplicate
name, 8 missing line, 16 stray line. Configuration and usage errors
exit 64.`,
		Version:       version.String(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
	}

	opts.addFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(configcmd.NewConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("dlcheck version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
