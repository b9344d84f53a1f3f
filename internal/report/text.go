// Package report renders validation results. It holds no validation logic:
// both renderers are pure views over already-computed results, so the report
// format can change without touching validation semantics.
package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ruleforge/rulecheck/internal/cli/output"
	"github.com/ruleforge/rulecheck/pkg/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Text renders the batch as a human-readable report: one tagged line per
// file with its per-tier counts, finding details, a summary table, and a
// RESULT trailer.
func Text(r *output.Renderer, sum core.BatchSummary) {
	styles := r.Styles()

	for i := range sum.Results {
		result := &sum.Results[i]
		status := result.Status()
		counts := result.Counts()

		tag := fmt.Sprintf("[%s]", status)
		switch status {
		case core.StatusFail:
			tag = styles.Error.Render(tag)
		case core.StatusWarn:
			tag = styles.Warning.Render(tag)
		case core.StatusPass:
			tag = styles.Success.Render(tag)
		}
		r.Printf("%s %s  critical=%d high=%d medium=%d info=%d\n",
			tag, styles.FilePath.Render(result.Path),
			counts.Critical, counts.High, counts.Medium, counts.Info)

		for _, f := range result.Findings {
			loc := ""
			if f.Line > 0 {
				loc = fmt.Sprintf(" (line %d)", f.Line)
			}
			r.Printf("  [%s] %s: %s%s\n",
				severityLabel(styles, f.Severity),
				titleCaser.String(strings.ToLower(f.Group)),
				f.Message, loc)
			if f.Fix != "" {
				r.Printf("      fix: %s\n", styles.Muted.Render(f.Fix))
			}
		}
	}

	r.Println("")
	renderSummaryTable(r, sum)
	r.Println("")
	r.Printf("RESULT: [%s]\n", sum.Status())
}

func severityLabel(styles output.Styles, s core.Severity) string {
	label := s.String()
	switch s {
	case core.SeverityCritical:
		return styles.Error.Render(label)
	case core.SeverityHigh:
		return styles.Warning.Render(label)
	case core.SeverityMedium:
		return styles.Info.Render(label)
	default:
		return styles.Muted.Render(label)
	}
}

func renderSummaryTable(r *output.Renderer, sum core.BatchSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Files", "Clean", "Warnings", "Failed"})
	t.AppendRow(table.Row{sum.TotalFiles, sum.Clean, sum.WarningsOnly, sum.Failed})
	t.Render()
}
