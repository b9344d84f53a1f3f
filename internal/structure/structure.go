// Package structure extracts the top-level section layout of a rule file
// and validates it against the schema: section presence and order, forbidden
// heading styles, fence nesting, and emoji usage.
package structure

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ruleforge/rulecheck/internal/document"
	"github.com/ruleforge/rulecheck/internal/schema"
	"github.com/ruleforge/rulecheck/pkg/core"
)

const group = "Structure"

// Section is one `##` header and its line span.
type Section struct {
	Name      string
	Level     int
	StartLine int
	EndLine   int
}

var (
	headerRe         = regexp.MustCompile(`^(#{1,6})\s+(.*?)\s*$`)
	numberedHeaderRe = regexp.MustCompile(`^#{1,6}\s+\d+\.\s`)
	fenceRe          = regexp.MustCompile("^(`{3,})(.*)$")
)

// Extract returns all top-level (`##`) sections with their line spans.
// A section ends on the line before the next `##` header, or at end of file.
func Extract(doc *document.Document) []Section {
	var sections []Section
	inFence := 0
	for n := 1; n <= doc.LineCount(); n++ {
		line := doc.Line(n)
		if m := fenceRe.FindStringSubmatch(line); m != nil {
			if inFence == 0 {
				inFence = len(m[1])
			} else if len(m[1]) >= inFence {
				inFence = 0
			}
			continue
		}
		if inFence > 0 {
			continue
		}
		m := headerRe.FindStringSubmatch(line)
		if m == nil || len(m[1]) != 2 {
			continue
		}
		if len(sections) > 0 {
			sections[len(sections)-1].EndLine = n - 1
		}
		sections = append(sections, Section{
			Name:      strings.TrimSpace(m[2]),
			Level:     2,
			StartLine: n,
			EndLine:   doc.LineCount(),
		})
	}
	return sections
}

// Validate extracts the section layout and applies the structural checks.
// The schema definition is never mutated.
func Validate(doc *document.Document, def *schema.Definition) ([]Section, []core.Finding) {
	sections := Extract(doc)
	var findings []core.Finding

	firstAt := make(map[string]int) // section name -> index of first occurrence
	for i, s := range sections {
		if _, seen := firstAt[s.Name]; !seen {
			firstAt[s.Name] = i
		}
	}

	// Every required section must be present.
	for _, rule := range def.Sections {
		if rule.Optional {
			continue
		}
		if _, ok := firstAt[rule.Name]; !ok {
			findings = append(findings, core.Finding{
				Severity: core.SeverityCritical,
				Group:    group,
				Message:  fmt.Sprintf("missing required section %q", rule.Name),
				Fix:      fmt.Sprintf("add a `## %s` section", rule.Name),
			})
		}
	}

	// First occurrences of required sections must follow schema order.
	if f, ok := orderFinding(sections, firstAt, def); ok {
		findings = append(findings, f)
	}

	if def.ForbiddenEnabled(schema.ForbiddenNumberedHeadings) {
		findings = append(findings, numberedHeadingFindings(doc)...)
	}
	if def.ForbiddenEnabled(schema.ForbiddenFenceNesting) {
		findings = append(findings, fenceNestingFindings(doc)...)
	}
	if def.ForbiddenEnabled(schema.ForbiddenEmoji) {
		findings = append(findings, emojiFindings(doc)...)
	}

	return sections, findings
}

// orderFinding reports when present required sections deviate from schema order.
func orderFinding(sections []Section, firstAt map[string]int, def *schema.Definition) (core.Finding, bool) {
	required := def.RequiredSectionNames()

	var expected []string
	var positions []int
	for _, name := range required {
		if idx, ok := firstAt[name]; ok {
			expected = append(expected, name)
			positions = append(positions, idx)
		}
	}

	if sort.IntsAreSorted(positions) {
		return core.Finding{}, false
	}

	// Document order of the present required sections.
	found := append([]string(nil), expected...)
	sort.Slice(found, func(i, j int) bool {
		return firstAt[found[i]] < firstAt[found[j]]
	})

	return core.Finding{
		Severity: core.SeverityHigh,
		Group:    group,
		Message: fmt.Sprintf("section order wrong: expected %s, found %s",
			strings.Join(expected, ", "), strings.Join(found, ", ")),
		Line: sections[firstAt[found[0]]].StartLine,
		Fix:  "reorder the sections to match the schema",
	}, true
}

// numberedHeadingFindings flags headers of the form `## 1. Name`.
func numberedHeadingFindings(doc *document.Document) []core.Finding {
	var findings []core.Finding
	inFence := 0
	for n := 1; n <= doc.LineCount(); n++ {
		line := doc.Line(n)
		if m := fenceRe.FindStringSubmatch(line); m != nil {
			if inFence == 0 {
				inFence = len(m[1])
			} else if len(m[1]) >= inFence {
				inFence = 0
			}
			continue
		}
		if inFence > 0 {
			continue
		}
		if numberedHeaderRe.MatchString(line) {
			findings = append(findings, core.Finding{
				Severity: core.SeverityHigh,
				Group:    group,
				Message:  fmt.Sprintf("numbered heading %q is forbidden", strings.TrimSpace(line)),
				Line:     n,
				Fix:      "rename to a descriptive heading without the number prefix",
			})
		}
	}
	return findings
}

// fenceNestingFindings flags fences opened inside another fence with a marker
// at least as long as the outer one: such a fence closes the outer block
// instead of nesting, so the inner marker must be shorter.
func fenceNestingFindings(doc *document.Document) []core.Finding {
	var findings []core.Finding
	open := 0
	for n := 1; n <= doc.LineCount(); n++ {
		m := fenceRe.FindStringSubmatch(doc.Line(n))
		if m == nil {
			continue
		}
		marker, info := len(m[1]), strings.TrimSpace(m[2])
		switch {
		case open == 0:
			open = marker
		case info != "" && marker >= open:
			// An opener (it carries an info string) that would terminate the
			// outer fence.
			findings = append(findings, core.Finding{
				Severity: core.SeverityHigh,
				Group:    group,
				Message:  fmt.Sprintf("inner code fence marker is not shorter than the enclosing fence (%d >= %d)", marker, open),
				Line:     n,
				Fix:      "use a longer marker on the outer fence than on the inner one",
			})
			open = 0
		case marker >= open:
			open = 0
		}
	}
	return findings
}

// emojiRanges covers the Unicode blocks the schema forbids in rule files.
var emojiRanges = [][2]rune{
	{0x1F300, 0x1F5FF}, // symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport
	{0x1F900, 0x1FAFF}, // supplemental symbols
	{0x2600, 0x27BF},   // misc symbols and dingbats
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// emojiFindings flags the first emoji on each offending line.
func emojiFindings(doc *document.Document) []core.Finding {
	var findings []core.Finding
	for n := 1; n <= doc.LineCount(); n++ {
		for _, r := range doc.Line(n) {
			if isEmoji(r) {
				findings = append(findings, core.Finding{
					Severity: core.SeverityHigh,
					Group:    group,
					Message:  fmt.Sprintf("emoji %q is forbidden in rule files", r),
					Line:     n,
					Fix:      "replace the emoji with plain text",
				})
				break
			}
		}
	}
	return findings
}
