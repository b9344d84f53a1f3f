// Package metadata extracts and validates the bolded key/value metadata
// block of a rule file against the schema's required fields.
package metadata

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ruleforge/rulecheck/internal/document"
	"github.com/ruleforge/rulecheck/internal/schema"
	"github.com/ruleforge/rulecheck/pkg/core"
)

const group = "Metadata"

// Field is one parsed metadata entry in document order.
type Field struct {
	Name  string
	Value string
	Line  int
}

var (
	metadataHeaderRe = regexp.MustCompile(`^##\s+Metadata\s*$`)
	fieldRe          = regexp.MustCompile(`^\*\*([A-Za-z][A-Za-z0-9 ]*):\*\*\s*(.*)$`)
	semverRe         = regexp.MustCompile(`^v\d+\.\d+\.\d+$`)
	tokenBudgetRe    = regexp.MustCompile(`^~\d+$`)
	digitsRe         = regexp.MustCompile(`^\d+$`)
)

// Parse extracts the metadata block: every `**Name:** value` line between
// the `## Metadata` header and the first blank line that follows the block
// (blank lines directly under the header are tolerated).
func Parse(doc *document.Document) []Field {
	var fields []Field
	inBlock := false
	for n := 1; n <= doc.LineCount(); n++ {
		line := doc.Line(n)
		if !inBlock {
			if metadataHeaderRe.MatchString(line) {
				inBlock = true
			}
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(fields) > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			break
		}
		if m := fieldRe.FindStringSubmatch(trimmed); m != nil {
			fields = append(fields, Field{Name: m[1], Value: strings.TrimSpace(m[2]), Line: n})
		}
	}
	return fields
}

// Validate parses the metadata block and checks field presence, order, and
// per-field formats. Pure function of the document and schema definition.
func Validate(doc *document.Document, def *schema.Definition) ([]Field, []core.Finding) {
	fields := Parse(doc)
	var findings []core.Finding

	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		if _, dup := byName[f.Name]; !dup {
			byName[f.Name] = f
		}
	}

	// Presence: every schema field must exist.
	for _, rule := range def.MetadataFields {
		if _, ok := byName[rule.Name]; !ok {
			findings = append(findings, core.Finding{
				Severity: core.SeverityCritical,
				Group:    group,
				Message:  fmt.Sprintf("missing required metadata field %q", rule.Name),
				Fix:      fmt.Sprintf("add the line `**%s:** %s` to the Metadata block", rule.Name, ruleExample(rule)),
			})
		}
	}

	// Order: present schema fields must appear in schema order. One finding
	// for the whole block, never a silent reorder.
	if f, ok := orderFinding(fields, def); ok {
		findings = append(findings, f)
	}

	// Format checks run independently of presence and order.
	for _, rule := range def.MetadataFields {
		f, ok := byName[rule.Name]
		if !ok {
			continue
		}
		if finding, bad := checkFormat(rule, f, def); bad {
			findings = append(findings, finding)
		}
	}

	return fields, findings
}

func ruleExample(rule schema.FieldRule) string {
	if rule.Example != "" {
		return rule.Example
	}
	return "<value>"
}

// orderFinding compares the document order of present required fields with
// the schema order.
func orderFinding(fields []Field, def *schema.Definition) (core.Finding, bool) {
	schemaPos := make(map[string]int, len(def.MetadataFields))
	for i, rule := range def.MetadataFields {
		schemaPos[rule.Name] = i
	}

	var present []Field
	for _, f := range fields {
		if _, ok := schemaPos[f.Name]; ok {
			present = append(present, f)
		}
	}

	for i := 1; i < len(present); i++ {
		if schemaPos[present[i].Name] < schemaPos[present[i-1].Name] {
			expected := make([]string, 0, len(def.MetadataFields))
			for _, rule := range def.MetadataFields {
				if _, ok := fieldByName(present, rule.Name); ok {
					expected = append(expected, rule.Name)
				}
			}
			found := make([]string, len(present))
			for j, f := range present {
				found[j] = f.Name
			}
			return core.Finding{
				Severity: core.SeverityHigh,
				Group:    group,
				Message: fmt.Sprintf("metadata field order wrong: expected %s, found %s",
					strings.Join(expected, ", "), strings.Join(found, ", ")),
				Line: present[i].Line,
				Fix:  "reorder the metadata fields to match the schema",
			}, true
		}
	}
	return core.Finding{}, false
}

func fieldByName(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// checkFormat applies the field's format rule and returns a finding when the
// value violates it.
func checkFormat(rule schema.FieldRule, f Field, def *schema.Definition) (core.Finding, bool) {
	fail := func(msg, fix string) (core.Finding, bool) {
		return core.Finding{
			Severity: rule.FormatSeverity(),
			Group:    group,
			Message:  msg,
			Line:     f.Line,
			Fix:      fix,
		}, true
	}

	switch rule.Format {
	case schema.FormatSemver:
		if !semverRe.MatchString(f.Value) {
			return fail(
				fmt.Sprintf("%s %q is not a valid version (expected vMAJOR.MINOR.PATCH)", f.Name, f.Value),
				fmt.Sprintf("use a semantic version such as `%s`", ruleExample(rule)))
		}
	case schema.FormatExact:
		want := rule.Value
		if want == "" {
			want = def.Version
		}
		if f.Value != want {
			return fail(
				fmt.Sprintf("%s must be %q, found %q", f.Name, want, f.Value),
				fmt.Sprintf("set `**%s:** %s`", f.Name, want))
		}
	case schema.FormatEnum:
		for _, v := range rule.Values {
			if f.Value == v {
				return core.Finding{}, false
			}
		}
		return fail(
			fmt.Sprintf("%s %q is not one of %s", f.Name, f.Value, strings.Join(rule.Values, "|")),
			fmt.Sprintf("use one of: %s", strings.Join(rule.Values, ", ")))
	case schema.FormatKeywords:
		count := keywordCount(f.Value)
		if count < rule.Min || count > rule.Max {
			return fail(
				fmt.Sprintf("%s has %d terms, expected %d-%d", f.Name, count, rule.Min, rule.Max),
				fmt.Sprintf("list %d-%d comma-separated keywords", rule.Min, rule.Max))
		}
	case schema.FormatTokenBudget:
		if !tokenBudgetRe.MatchString(f.Value) {
			fix := "write the budget as ~<integer>"
			if digits := strings.TrimSpace(f.Value); digitsRe.MatchString(digits) {
				fix = fmt.Sprintf("write the budget as `~%s`", digits)
			}
			return fail(
				fmt.Sprintf("%s %q does not match ~<integer>", f.Name, f.Value),
				fix)
		}
	case schema.FormatNonEmpty, "":
		if strings.TrimSpace(f.Value) == "" {
			return fail(
				fmt.Sprintf("%s must not be empty", f.Name),
				fmt.Sprintf("provide a value, e.g. `%s`", ruleExample(rule)))
		}
	}
	return core.Finding{}, false
}

// keywordCount counts non-empty comma-separated terms.
func keywordCount(value string) int {
	count := 0
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}
