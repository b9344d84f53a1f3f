package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ruleforge/rulecheck/internal/cli/output"
	"github.com/ruleforge/rulecheck/internal/schema"
	"github.com/spf13/cobra"
)

const configTemplate = `# rulecheck configuration.
# Precedence: flags > RULECHECK_* env vars > this file > defaults.

# Schema definition to validate against. Empty uses the built-in default.
schema_path: schemas/rule-schema.yaml

# Directory names skipped during discovery.
excludes:
  - schemas
  - scratch
  - node_modules

# Worker pool size. 0 uses the available parallelism.
workers: 0

# Descend into subdirectories.
recursive: true

# Treat a WARN batch as a failing exit code.
strict: false

# Output format: auto, text, or json.
output: auto

# Record batch results for trend reporting (rulecheck history).
history: false
history_path: .rulecheck/history.db
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a rulecheck project",
		Long: `Write a rulecheck.yaml configuration file and a copy of the default
schema definition to schemas/rule-schema.yaml, ready to edit.`,
		Example: `  # Initialize in the current directory
  rulecheck init

  # Initialize in a new directory
  rulecheck init my-rules

  # Overwrite an existing configuration
  rulecheck init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			mode := output.Mode(cfg.Output)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "rulecheck.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return usageErr("rulecheck.yaml already exists. Use --force to overwrite")
	}

	schemaDir := filepath.Join(dir, "schemas")
	if err := os.MkdirAll(schemaDir, 0750); err != nil {
		return fmt.Errorf("failed to create schemas directory: %w", err)
	}

	files := map[string][]byte{
		configPath: []byte(configTemplate),
		filepath.Join(schemaDir, "rule-schema.yaml"): schema.DefaultSource(),
	}
	for path, data := range files {
		if err := os.WriteFile(path, data, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	r.Success("Initialized rulecheck project in " + dir)
	r.StatusLine("config", configPath)
	r.StatusLine("schema", filepath.Join(schemaDir, "rule-schema.yaml"))
	r.Println()
	r.Println("Next: put rule files beside rulecheck.yaml and run `rulecheck .`")
	return nil
}
