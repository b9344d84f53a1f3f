// Package document loads rule files into line-addressable documents.
//
// Loading never fails the pipeline: read and encoding errors are converted
// into a single CRITICAL finding so a batch always completes every file.
package document

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ruleforge/rulecheck/pkg/core"
)

// Document is one rule file as an ordered sequence of lines.
// Created fresh per validation call and discarded afterwards.
type Document struct {
	Path  string
	lines []string
}

// New builds a document from raw content. Used by tests and watch mode.
func New(path, content string) *Document {
	return &Document{Path: path, lines: splitLines(content)}
}

// Load reads a rule file from disk. On read failure or non-UTF8 content it
// returns an empty document plus one CRITICAL finding in group "IO" instead
// of an error, so the caller's batch never aborts on one bad file.
func Load(path string) (*Document, []core.Finding) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from batch discovery
	if err != nil {
		return &Document{Path: path}, []core.Finding{{
			Severity: core.SeverityCritical,
			Group:    "IO",
			Message:  fmt.Sprintf("cannot read file: %v", err),
			Fix:      "check that the file exists and is readable",
		}}
	}
	if !utf8.Valid(data) {
		return &Document{Path: path}, []core.Finding{{
			Severity: core.SeverityCritical,
			Group:    "IO",
			Message:  "file is not valid UTF-8",
			Fix:      "re-save the file with UTF-8 encoding",
		}}
	}
	return New(path, string(data)), nil
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the 1-indexed line n, or "" when out of range.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.lines) {
		return ""
	}
	return d.lines[n-1]
}

// Lines returns all lines in order. The slice must not be mutated.
func (d *Document) Lines() []string {
	return d.lines
}

// splitLines splits content on newlines, tolerating CRLF endings and a
// missing final newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
