package runner

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ruleforge/rulecheck/internal/testutil"
	"github.com/ruleforge/rulecheck/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchRunsInitialBatchAndStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "rule.md"), testutil.CompliantRuleFile())

	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan core.BatchSummary, 8)

	r := newRunner(t, Options{Recursive: true})
	done := make(chan error, 1)
	go func() {
		done <- r.Watch(ctx, dir, func(sum core.BatchSummary) {
			batches <- sum
		})
	}()

	select {
	case sum := <-batches:
		assert.Equal(t, 1, sum.TotalFiles)
		assert.Equal(t, 1, sum.Clean)
	case <-time.After(5 * time.Second):
		t.Fatal("initial watch batch never arrived")
	}

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestWatchRevalidatesOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rule.md")
	writeFile(t, path, testutil.CompliantRuleFile())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	batches := make(chan core.BatchSummary, 8)

	r := newRunner(t, Options{Recursive: true})
	go func() {
		_ = r.Watch(ctx, dir, func(sum core.BatchSummary) {
			batches <- sum
		})
	}()

	// Drain the initial batch before mutating the tree.
	select {
	case <-batches:
	case <-time.After(5 * time.Second):
		t.Fatal("initial watch batch never arrived")
	}

	// Give the watcher a moment to finish registering the tree.
	time.Sleep(300 * time.Millisecond)
	writeFile(t, path, testutil.RuleFileWithout(t, "Keywords"))

	select {
	case sum := <-batches:
		assert.Equal(t, 1, sum.Failed)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not revalidate after a change")
	}
}
