package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ruleforge/rulecheck/pkg/core"
)

// watchDebounce coalesces editor save bursts into one revalidation.
const watchDebounce = 300 * time.Millisecond

// Watch revalidates the tree under root whenever a rule file changes and
// reports each batch through onBatch. An initial batch runs before watching
// starts so the first report does not wait for a change. Blocks until the
// context is cancelled.
func (r *Runner) Watch(ctx context.Context, root string, onBatch func(core.BatchSummary)) error {
	runBatch := func() {
		sum, err := r.Run(ctx, root)
		if err != nil {
			r.logger.Error("watch batch failed", "error", err)
			return
		}
		onBatch(sum)
	}
	runBatch()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := r.watchTree(watcher, root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !r.relevantEvent(event) {
				continue
			}
			// New subdirectories join the watch set.
			if event.Op.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = r.watchTree(watcher, event.Name)
				}
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watch error", "error", watchErr)
		case <-pending:
			runBatch()
		}
	}
}

// relevantEvent filters the watcher stream down to rule-file writes and
// directory creation.
func (r *Runner) relevantEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	if strings.EqualFold(filepath.Ext(event.Name), ".md") {
		return true
	}
	info, err := os.Stat(event.Name)
	return err == nil && info.IsDir()
}

// watchTree adds root and, in recursive mode, its non-excluded
// subdirectories to the watcher.
func (r *Runner) watchTree(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (!r.opts.Recursive || r.excluded(d.Name())) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
