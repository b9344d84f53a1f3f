package commands

import (
	"log/slog"
	"path/filepath"

	"github.com/ruleforge/rulecheck/internal/cli/config"
	"github.com/ruleforge/rulecheck/internal/cli/output"
	"github.com/ruleforge/rulecheck/internal/detector"
	"github.com/ruleforge/rulecheck/internal/runner"
	"github.com/ruleforge/rulecheck/internal/schema"
	"github.com/ruleforge/rulecheck/internal/validate"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg       *config.Config
	Logger    *slog.Logger
	Renderer  *output.Renderer
	Validator *validate.Validator
}

// NewCommandContext builds the dependencies a validation command needs:
// the resolved config, the logger from the command context, a renderer
// for the configured output mode, and a validator for the active schema.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	v, err := buildValidator(cfg, logger)
	if err != nil {
		return nil, err
	}

	mode := output.Mode(cfg.Output)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:       cfg,
		Logger:    logger,
		Renderer:  r,
		Validator: v,
	}, nil
}

// NewCommandContextWithoutValidator builds dependencies for commands that do
// not validate anything, such as history.
func NewCommandContextWithoutValidator(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.Output)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// NewRunner creates a runner from the command context.
func (c *CommandContext) NewRunner() *runner.Runner {
	return runner.New(c.Validator, runner.Options{
		Workers:   c.Cfg.Workers,
		Recursive: c.Cfg.Recursive,
		Excludes:  c.Cfg.Excludes,
	}, c.Logger)
}

// getConfig returns the current configuration, falling back to defaults
// when no config has been loaded (for example in direct command tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Excludes:    config.DefaultExcludes,
		Recursive:   true,
		Output:      config.DefaultOutput,
		HistoryPath: config.DefaultHistoryPath,
	}
}

// buildValidator loads the schema named by the config (or the built-in
// default) and compiles any custom detectors it references. Detector
// scripts resolve relative to the schema file's directory.
func buildValidator(cfg *config.Config, logger *slog.Logger) (*validate.Validator, error) {
	var (
		def     *schema.Definition
		baseDir string
		err     error
	)
	if cfg.SchemaPath != "" {
		def, err = schema.Load(cfg.SchemaPath)
		if err != nil {
			return nil, usageErr("%v", err)
		}
		baseDir = filepath.Dir(cfg.SchemaPath)
	} else {
		def, err = schema.Default()
		if err != nil {
			return nil, usageErr("built-in schema is invalid: %v", err)
		}
		baseDir = cfg.ProjectRoot
		if baseDir == "" {
			baseDir = "."
		}
	}

	detectors, err := detector.CompileAll(def, baseDir)
	if err != nil {
		return nil, usageErr("%v", err)
	}

	return validate.New(def,
		validate.WithLogger(logger),
		validate.WithDetectors(detectors),
	), nil
}
