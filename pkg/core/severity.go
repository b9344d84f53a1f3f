package core

import "strings"

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the importance of a validation finding.
type Severity int

// Severity tiers, ordered from most to least severe.
const (
	// SeverityCritical indicates a schema-breaking violation that fails the document.
	SeverityCritical Severity = iota
	// SeverityHigh indicates a structural violation that degrades the document to WARN.
	SeverityHigh
	// SeverityMedium indicates drift that degrades the document to WARN,
	// tracked separately for trend reporting.
	SeverityMedium
	// SeverityInfo is advisory only and never changes document status.
	SeverityInfo
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityHigh and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL":
		return SeverityCritical, true
	case "HIGH":
		return SeverityHigh, true
	case "MEDIUM":
		return SeverityMedium, true
	case "INFO":
		return SeverityInfo, true
	default:
		return SeverityHigh, false
	}
}

// =============================================================================
// Status
// =============================================================================

// Status is the terminal state of a validated document or batch.
type Status int

// Document statuses.
const (
	// StatusPass indicates no findings above INFO.
	StatusPass Status = iota
	// StatusWarn indicates HIGH or MEDIUM findings but no CRITICAL ones.
	StatusWarn
	// StatusFail indicates at least one CRITICAL finding.
	StatusFail
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusWarn:
		return "WARN"
	case StatusFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}
