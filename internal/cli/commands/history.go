package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ruleforge/rulecheck/internal/cli/output"
	"github.com/ruleforge/rulecheck/internal/state"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent validation runs",
		Long: `List recorded validation runs, newest first. Runs are recorded when
history is enabled in the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContextWithoutValidator(cmd)

			store, err := state.Open(cmdCtx.Cfg.HistoryPath)
			if err != nil {
				return usageErr("%v", err)
			}
			defer func() { _ = store.Close() }()

			runs, err := store.ListRuns(limit)
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(runs)
			}

			if len(runs) == 0 {
				r.Println("No recorded runs. Enable history in rulecheck.yaml to start recording.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(r.Writer())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Run", "Started", "Root", "Files", "Clean", "Warnings", "Failed"})
			for _, run := range runs {
				t.AppendRow(table.Row{
					shortID(run.ID),
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					run.Root,
					run.TotalFiles,
					run.Clean,
					run.WarningsOnly,
					run.Failed,
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")

	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
