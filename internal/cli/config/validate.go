package config

import (
	"fmt"

	"github.com/ruleforge/rulecheck/internal/cli/output"
)

// Validate checks the resolved configuration for invalid values.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if !output.ValidMode(c.Output) {
		return fmt.Errorf("invalid output format %q (expected auto, text, or json)", c.Output)
	}
	if c.History && c.HistoryPath == "" {
		return fmt.Errorf("history is enabled but history_path is empty")
	}
	return nil
}
