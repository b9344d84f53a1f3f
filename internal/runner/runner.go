// Package runner discovers rule files and validates them through a bounded
// worker pool. Documents are independent, so the only synchronization point
// is the final merge-and-sort into a BatchSummary.
package runner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ruleforge/rulecheck/internal/validate"
	"github.com/ruleforge/rulecheck/pkg/core"
	"golang.org/x/sync/errgroup"
)

// Options configures a batch run.
type Options struct {
	// Workers bounds the validation pool; 0 means available parallelism.
	Workers int
	// Recursive controls whether directory discovery descends into
	// subdirectories.
	Recursive bool
	// Excludes lists directory names skipped during discovery.
	Excludes []string
}

// Runner validates batches of rule files with one shared validator.
type Runner struct {
	validator *validate.Validator
	opts      Options
	logger    *slog.Logger
}

// New creates a batch runner.
func New(validator *validate.Validator, opts Options, logger *slog.Logger) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{validator: validator, opts: opts, logger: logger}
}

// Run validates the file or directory at root and merges the per-file
// results into a deterministic summary. On cancellation it stops dispatching
// new files, lets in-flight validations finish, and returns the partial
// summary together with the context error.
func (r *Runner) Run(ctx context.Context, root string) (core.BatchSummary, error) {
	paths, err := r.Discover(root)
	if err != nil {
		return core.BatchSummary{}, err
	}
	return r.RunFiles(ctx, paths)
}

// RunFiles validates an explicit list of files.
func (r *Runner) RunFiles(ctx context.Context, paths []string) (core.BatchSummary, error) {
	results := make([]core.Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	dispatched := 0
	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}
		dispatched++
		g.Go(func() error {
			results[i] = r.validator.File(path)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; findings carry all failures

	summary := core.Summarize(results[:dispatched])
	if err := ctx.Err(); err != nil {
		r.logger.Warn("batch interrupted",
			"validated", dispatched, "discovered", len(paths))
		return summary, fmt.Errorf("batch incomplete: %w", err)
	}

	r.logger.Info("batch completed",
		"total", summary.TotalFiles,
		"clean", summary.Clean,
		"warnings", summary.WarningsOnly,
		"failed", summary.Failed)
	return summary, nil
}

// Discover resolves root to the list of rule files to validate, sorted by
// path. A file root yields a batch of one for uniform handling downstream.
func (r *Runner) Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if !r.opts.Recursive || r.excluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover rule files under %s: %w", root, err)
	}
	return paths, nil
}

func (r *Runner) excluded(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, e := range r.opts.Excludes {
		if name == e {
			return true
		}
	}
	return false
}
