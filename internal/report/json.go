package report

import (
	"encoding/json"
	"io"

	"github.com/ruleforge/rulecheck/pkg/core"
)

// Report is the top-level JSON report object.
type Report struct {
	Summary      Summary       `json:"summary"`
	FailedFiles  []FailedFile  `json:"failed_files"`
	WarningFiles []WarningFile `json:"warning_files"`
}

// Summary mirrors the batch-level counts.
type Summary struct {
	TotalFiles   int `json:"total_files"`
	Clean        int `json:"clean"`
	WarningsOnly int `json:"warnings_only"`
	Failed       int `json:"failed"`
}

// FailedFile is one FAIL-status result.
type FailedFile struct {
	Path          string       `json:"path"`
	CriticalCount int          `json:"critical_count"`
	HighCount     int          `json:"high_count"`
	MediumCount   int          `json:"medium_count"`
	Errors        []ErrorEntry `json:"errors"`
}

// WarningFile is one WARN-status result.
type WarningFile struct {
	Path        string       `json:"path"`
	MediumCount int          `json:"medium_count"`
	Errors      []ErrorEntry `json:"errors"`
}

// ErrorEntry is one finding. Line is null when the finding applies to the
// whole document.
type ErrorEntry struct {
	Severity string `json:"severity"`
	Group    string `json:"group"`
	Message  string `json:"message"`
	Line     *int   `json:"line"`
	Fix      string `json:"fix"`
}

// Build converts a batch summary into the JSON report structure. PASS
// results contribute to summary.clean only; they appear in neither list.
func Build(sum core.BatchSummary) Report {
	report := Report{
		Summary: Summary{
			TotalFiles:   sum.TotalFiles,
			Clean:        sum.Clean,
			WarningsOnly: sum.WarningsOnly,
			Failed:       sum.Failed,
		},
		FailedFiles:  []FailedFile{},
		WarningFiles: []WarningFile{},
	}

	for i := range sum.Results {
		result := &sum.Results[i]
		counts := result.Counts()
		switch result.Status() {
		case core.StatusFail:
			report.FailedFiles = append(report.FailedFiles, FailedFile{
				Path:          result.Path,
				CriticalCount: counts.Critical,
				HighCount:     counts.High,
				MediumCount:   counts.Medium,
				Errors:        errorEntries(result.Findings),
			})
		case core.StatusWarn:
			report.WarningFiles = append(report.WarningFiles, WarningFile{
				Path:        result.Path,
				MediumCount: counts.Medium,
				Errors:      errorEntries(result.Findings),
			})
		case core.StatusPass:
		}
	}
	return report
}

// JSON renders the batch summary as an indented JSON report.
func JSON(w io.Writer, sum core.BatchSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Build(sum))
}

func errorEntries(findings []core.Finding) []ErrorEntry {
	entries := make([]ErrorEntry, 0, len(findings))
	for _, f := range findings {
		entry := ErrorEntry{
			Severity: f.Severity.String(),
			Group:    f.Group,
			Message:  f.Message,
			Fix:      f.Fix,
		}
		if f.Line > 0 {
			line := f.Line
			entry.Line = &line
		}
		entries = append(entries, entry)
	}
	return entries
}
