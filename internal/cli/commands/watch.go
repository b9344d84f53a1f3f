package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ruleforge/rulecheck/internal/cli/output"
	"github.com/ruleforge/rulecheck/internal/report"
	"github.com/ruleforge/rulecheck/pkg/core"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <path>",
		Short: "Revalidate rule files whenever they change",
		Long: `Validate the given path, then keep watching it and rerun validation
whenever a rule file is created, modified, or removed. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			first := true
			err = cmdCtx.NewRunner().Watch(ctx, args[0], func(sum core.BatchSummary) {
				renderBatch(cmdCtx, sum, first)
				first = false
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			if err != nil {
				return usageErr("%v", err)
			}
			return nil
		},
	}
}

func renderBatch(cmdCtx *CommandContext, sum core.BatchSummary, first bool) {
	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		// One JSON document per batch, newline-separated.
		_ = report.JSON(r.Writer(), sum)
		return
	}
	if !first {
		r.Println()
		r.Header(fmt.Sprintf("Revalidated at %s", time.Now().Format("15:04:05")))
	}
	report.Text(r, sum)
}
