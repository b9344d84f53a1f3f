package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ruleforge/rulecheck/internal/cli/output"
	"github.com/ruleforge/rulecheck/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBatch() core.BatchSummary {
	return core.Summarize([]core.Result{
		{Path: "docs/clean.md"},
		{Path: "docs/warn.md", Findings: []core.Finding{
			{Severity: core.SeverityMedium, Group: "Metadata", Message: "TokenBudget \"1200\" does not match ~<integer>", Line: 7, Fix: "write the budget as `~1200`"},
		}},
		{Path: "docs/broken.md", Findings: []core.Finding{
			{Severity: core.SeverityCritical, Group: "Metadata", Message: "missing required metadata field \"Keywords\""},
			{Severity: core.SeverityHigh, Group: "Contract", Message: "XML tags forbidden in Contract; use Markdown headers (found <x>)", Line: 31},
		}},
	})
}

func TestBuildPartitionsResults(t *testing.T) {
	report := Build(sampleBatch())

	assert.Equal(t, Summary{TotalFiles: 3, Clean: 1, WarningsOnly: 1, Failed: 1}, report.Summary)
	// Aggregation law.
	assert.Equal(t, report.Summary.TotalFiles,
		report.Summary.Clean+report.Summary.WarningsOnly+report.Summary.Failed)

	require.Len(t, report.FailedFiles, 1)
	failed := report.FailedFiles[0]
	assert.Equal(t, "docs/broken.md", failed.Path)
	assert.Equal(t, 1, failed.CriticalCount)
	assert.Equal(t, 1, failed.HighCount)
	assert.Equal(t, 0, failed.MediumCount)
	require.Len(t, failed.Errors, 2)
	assert.Nil(t, failed.Errors[0].Line, "document-level finding serializes line as null")
	require.NotNil(t, failed.Errors[1].Line)
	assert.Equal(t, 31, *failed.Errors[1].Line)

	require.Len(t, report.WarningFiles, 1)
	assert.Equal(t, "docs/warn.md", report.WarningFiles[0].Path)
	assert.Equal(t, 1, report.WarningFiles[0].MediumCount)
}

func TestJSONWireFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleBatch()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	summary, ok := decoded["summary"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"total_files", "clean", "warnings_only", "failed"} {
		assert.Contains(t, summary, key)
	}

	failed, ok := decoded["failed_files"].([]any)
	require.True(t, ok)
	require.Len(t, failed, 1)
	entry := failed[0].(map[string]any)
	for _, key := range []string{"path", "critical_count", "high_count", "medium_count", "errors"} {
		assert.Contains(t, entry, key)
	}

	errs := entry["errors"].([]any)
	first := errs[0].(map[string]any)
	for _, key := range []string{"severity", "group", "message", "line", "fix"} {
		assert.Contains(t, first, key)
	}
	assert.Nil(t, first["line"])
}

func TestJSONEmptyBatchHasEmptyLists(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, core.Summarize(nil)))

	out := buf.String()
	assert.Contains(t, out, `"failed_files": []`)
	assert.Contains(t, out, `"warning_files": []`)
}

func TestTextReport(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, &buf, output.ModeText)

	Text(r, sampleBatch())
	out := buf.String()

	assert.Contains(t, out, "[PASS] docs/clean.md")
	assert.Contains(t, out, "[WARN] docs/warn.md")
	assert.Contains(t, out, "[FAIL] docs/broken.md")
	assert.Contains(t, out, "critical=1 high=1 medium=0 info=0")
	assert.Contains(t, out, "fix: write the budget as `~1200`")
	assert.Contains(t, out, "(line 31)")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "RESULT: [FAIL]"))
}

func TestTextReportPassTrailer(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, &buf, output.ModeText)

	Text(r, core.Summarize([]core.Result{{Path: "ok.md"}}))

	assert.Contains(t, buf.String(), "RESULT: [PASS]")
}
