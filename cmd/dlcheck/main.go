package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/xcoder-tools/dlcheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code())
		}
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.UsageExitCode)
	}
}
