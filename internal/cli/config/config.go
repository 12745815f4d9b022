// Package config implements the 'dlcheck config' command family.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xcoder-tools/dlcheck/internal/config"
	"github.com/xcoder-tools/dlcheck/internal/constants"
)

// NewConfigCmd creates the config command and its subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect dlcheck configuration",
		Long: `Inspect dlcheck configuration.

Configuration Priority:
  1. Command line flags (highest)
  2. DLCHECK_* environment variables
  3. Config file (--config, $` + constants.ConfigEnv + ` or ./` + constants.ConfigFile + `)
  4. Built-in libxcoder defaults`,
	}

	cmd.AddCommand(newViewCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newPathCmd())

	return cmd
}

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the effective configuration",
		Long: `Display the configuration after defaults, the config file and environment
variables are merged, as YAML. The output is a valid config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := load(cmd)
			var verr *config.MultiValidationError
			if errors.As(err, &verr) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(verr.Error(), "\n"))
				return fmt.Errorf("configuration is invalid")
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
			return err
		},
	}
}

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show which config file is used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := config.NewLoader()
			if err != nil {
				return err
			}
			path := loader.Path(explicitPath(cmd))
			if path == "" {
				path = "(built-in defaults)"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

func load(cmd *cobra.Command) (*config.Config, error) {
	loader, err := config.NewLoader()
	if err != nil {
		return nil, err
	}
	return loader.Load(explicitPath(cmd))
}

// explicitPath returns the value of the inherited --config flag, if any.
func explicitPath(cmd *cobra.Command) string {
	if f := cmd.Flag("config"); f != nil {
		return f.Value.String()
	}
	return ""
}
