// Package main is the rulecheck entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ruleforge/rulecheck/internal/cli"
	"github.com/ruleforge/rulecheck/internal/cli/commands"
)

func main() {
	err := cli.Execute()
	if err == nil {
		return
	}

	var exitErr *commands.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
		}
		os.Exit(exitErr.Code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(commands.ExitUsage)
}
