package commands

import (
	"os"

	"github.com/ruleforge/rulecheck/internal/cli/output"
	"github.com/ruleforge/rulecheck/internal/schema"
	"github.com/spf13/cobra"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Show the active schema definition",
		Long: `Print the schema definition in effect: the file named by schema_path
in the configuration, or the built-in default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContextWithoutValidator(cmd)

			source := schema.DefaultSource()
			origin := "built-in"
			if cmdCtx.Cfg.SchemaPath != "" {
				data, err := os.ReadFile(cmdCtx.Cfg.SchemaPath)
				if err != nil {
					return usageErr("%v", err)
				}
				source = data
				origin = cmdCtx.Cfg.SchemaPath
			}

			// Validate before echoing.
			def, err := schema.Parse(source)
			if err != nil {
				return usageErr("%v", err)
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(map[string]any{
					"version": def.Version,
					"origin":  origin,
					"source":  string(source),
				})
			}

			r.Header("Schema " + def.Version + " (" + origin + ")")
			r.Println()
			r.Println(string(source))
			return nil
		},
	}
}
