package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ruleforge/rulecheck/internal/cli/output"
	"github.com/ruleforge/rulecheck/internal/report"
	"github.com/ruleforge/rulecheck/internal/state"
	"github.com/ruleforge/rulecheck/pkg/core"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>",
		Short: "Validate rule files against the active schema",
		Long: `Validate a rule file, or every rule file under a directory, against
the active schema. Prints a per-file report and a batch summary, and
sets the exit code from the batch status.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunCheck(cmd, args[0])
		},
	}
}

// RunCheck validates path and renders the report. It is shared between the
// bare root invocation and the check subcommand.
func RunCheck(cmd *cobra.Command, path string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startedAt := time.Now()
	sum, runErr := cmdCtx.NewRunner().Run(ctx, path)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return usageErr("%v", runErr)
	}

	recordHistory(cmdCtx, path, sum, startedAt)

	if cmdCtx.Renderer.EffectiveMode() == output.ModeJSON {
		if err := report.JSON(cmdCtx.Renderer.Writer(), sum); err != nil {
			return err
		}
	} else {
		report.Text(cmdCtx.Renderer, sum)
	}

	if runErr != nil {
		// Interrupted: the summary covers only the files finished so far.
		cmdCtx.Renderer.Error("validation interrupted; partial results above")
		return &ExitError{Code: ExitFail}
	}

	switch status := sum.Status(); {
	case status == core.StatusFail:
		return &ExitError{Code: ExitFail}
	case status == core.StatusWarn && cmdCtx.Cfg.Strict:
		return &ExitError{Code: ExitFail}
	}
	return nil
}

// recordHistory persists the batch outcome when history is enabled.
// Failures are logged, never fatal: a broken history database must not
// change the validation exit code.
func recordHistory(cmdCtx *CommandContext, root string, sum core.BatchSummary, startedAt time.Time) {
	if !cmdCtx.Cfg.History {
		return
	}
	store, err := state.Open(cmdCtx.Cfg.HistoryPath)
	if err != nil {
		cmdCtx.Logger.Warn("cannot open history database", "path", cmdCtx.Cfg.HistoryPath, "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	if _, err := store.RecordRun(root, sum, startedAt); err != nil {
		cmdCtx.Logger.Warn("cannot record run history", "error", err)
	}
}
