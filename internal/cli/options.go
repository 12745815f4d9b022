package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xcoder-tools/dlcheck/internal/check"
	"github.com/xcoder-tools/dlcheck/internal/config"
	"github.com/xcoder-tools/dlcheck/internal/logging"
	"github.com/xcoder-tools/dlcheck/internal/report"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath   string
	logLevel     string
	noColor      bool
	exhaustive   bool
	keepComments bool
}

func (o *globalOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "Config file (default $DLCHECK_CONFIG or ./.dlcheck.yaml)")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&o.exhaustive, "exhaustive", false, "Run every verification pass even after a failing one")
	fs.BoolVar(&o.keepComments, "keep-comments", false, "Do not strip comments from header lines before matching")
}

// session is the per-invocation state built from config and flags.
type session struct {
	cfg     *config.Config
	logger  zerolog.Logger
	checker *check.Checker
	dl      string
}

// newSession loads configuration, applies flag overrides and resolves the
// dynamic loading header path from args.
func (o *globalOptions) newSession(cmd *cobra.Command, args []string) (*session, error) {
	loader, err := config.NewLoader()
	if err != nil {
		return nil, err
	}
	cfg, err := loader.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	o.apply(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.New(logging.Config{
		Level:   cfg.Logging.Level,
		Pretty:  cfg.Logging.Pretty,
		NoColor: o.noColor,
		Output:  cmd.ErrOrStderr(),
	})

	dl := cfg.DynamicHeader
	if len(args) > 0 {
		dl = args[0]
	}
	logger.Debug().Str("dynamic_header", dl).Strs("headers", cfg.Headers).Msg("configuration loaded")

	return &session{
		cfg:     cfg,
		logger:  logger,
		checker: check.New(cfg, report.New(cmd.OutOrStdout(), o.noColor), logger),
		dl:      dl,
	}, nil
}

// apply overrides cfg with flags set on the command line.
func (o *globalOptions) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if fs.Changed("exhaustive") {
		cfg.Verify.Exhaustive = o.exhaustive
	}
	if fs.Changed("keep-comments") {
		cfg.Grammar.StripComments = !o.keepComments
	}
}

// UsageExitCode is the exit code for configuration and command line errors.
// It lies outside the check status bits.
const UsageExitCode = 64

// ExitError carries a non-zero check status out of a command. Diagnostics
// have already been printed when it is returned.
type ExitError struct {
	Status check.Status
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("check failed: %s", e.Status)
}

// Code returns the process exit code.
func (e *ExitError) Code() int {
	return int(e.Status)
}

func statusError(s check.Status) error {
	if s.OK() {
		return nil
	}
	return &ExitError{Status: s}
}
