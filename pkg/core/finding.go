// Package core defines the shared value types of the rule-file validator:
// severities, findings, per-document results, and batch summaries.
// These types carry no behavior beyond derivation of counts and status,
// so every other package can depend on them without cycles.
package core

import "sort"

// =============================================================================
// Finding
// =============================================================================

// Finding is a single validation violation. Immutable once created.
type Finding struct {
	Severity Severity
	Group    string // e.g. "Metadata", "Structure", "Contract", "IO", "Detector"
	Message  string
	Line     int    // 1-indexed; 0 means the finding applies to the whole document
	Fix      string // human-readable remediation suggestion
}

// =============================================================================
// Result
// =============================================================================

// Counts aggregates findings per severity tier.
type Counts struct {
	Critical int
	High     int
	Medium   int
	Info     int
}

// Total returns the number of findings across all tiers.
func (c Counts) Total() int {
	return c.Critical + c.High + c.Medium + c.Info
}

// Result holds all findings for one document.
type Result struct {
	Path     string
	Findings []Finding
}

// Add appends findings to the result.
func (r *Result) Add(findings ...Finding) {
	r.Findings = append(r.Findings, findings...)
}

// Counts returns the per-tier finding counts.
func (r *Result) Counts() Counts {
	var c Counts
	for _, f := range r.Findings {
		switch f.Severity {
		case SeverityCritical:
			c.Critical++
		case SeverityHigh:
			c.High++
		case SeverityMedium:
			c.Medium++
		case SeverityInfo:
			c.Info++
		}
	}
	return c
}

// Status derives the terminal status of the document.
// FAIL iff any CRITICAL finding exists, WARN iff any HIGH or MEDIUM
// finding exists without a CRITICAL one, PASS otherwise.
func (r *Result) Status() Status {
	c := r.Counts()
	switch {
	case c.Critical > 0:
		return StatusFail
	case c.High+c.Medium > 0:
		return StatusWarn
	default:
		return StatusPass
	}
}

// =============================================================================
// BatchSummary
// =============================================================================

// BatchSummary aggregates the results of one validation batch.
// Results are sorted by path so output is deterministic regardless of
// worker completion order.
type BatchSummary struct {
	TotalFiles   int
	Clean        int
	WarningsOnly int
	Failed       int
	Results      []Result
}

// Status derives the batch-level status from the individual results.
func (s *BatchSummary) Status() Status {
	switch {
	case s.Failed > 0:
		return StatusFail
	case s.WarningsOnly > 0:
		return StatusWarn
	default:
		return StatusPass
	}
}

// Summarize builds a BatchSummary from per-file results.
func Summarize(results []Result) BatchSummary {
	sorted := make([]Result, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	summary := BatchSummary{
		TotalFiles: len(sorted),
		Results:    sorted,
	}
	for i := range sorted {
		switch sorted[i].Status() {
		case StatusFail:
			summary.Failed++
		case StatusWarn:
			summary.WarningsOnly++
		case StatusPass:
			summary.Clean++
		}
	}
	return summary
}
