// Package contract validates the Contract section of a rule file: required
// subsections must exist, and XML-style tags are forbidden outside fenced
// code within the section.
package contract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ruleforge/rulecheck/internal/document"
	"github.com/ruleforge/rulecheck/internal/schema"
	"github.com/ruleforge/rulecheck/internal/structure"
	"github.com/ruleforge/rulecheck/pkg/core"
)

const group = "Contract"

var (
	subsectionRe = regexp.MustCompile(`^###\s+(.*?)\s*$`)
	xmlTagRe     = regexp.MustCompile(`</?[A-Za-z_][A-Za-z0-9_-]*(\s[^>]*)?/?>`)
	fenceRe      = regexp.MustCompile("^(`{3,})")
	// Inline code spans are stripped before the tag scan: rule files often
	// show tags in backticks as anti-pattern illustrations.
	inlineCodeRe = regexp.MustCompile("`[^`]*`")
)

// Validate checks the Contract section. When the section is absent it
// returns nothing; the structure validator already reports that as CRITICAL.
func Validate(doc *document.Document, sections []structure.Section, def *schema.Definition) []core.Finding {
	contract, ok := findSection(sections, def.ContractSection)
	if !ok {
		return nil
	}

	var findings []core.Finding
	findings = append(findings, subsectionFindings(doc, contract, def)...)
	if def.ForbiddenEnabled(schema.ForbiddenXMLTags) {
		findings = append(findings, xmlTagFindings(doc, contract)...)
	}
	return findings
}

func findSection(sections []structure.Section, name string) (structure.Section, bool) {
	for _, s := range sections {
		if s.Name == name {
			return s, true
		}
	}
	return structure.Section{}, false
}

// subsectionFindings checks the `###` headers strictly inside the Contract
// span against the required subsection names. One finding per missing name,
// so the report enumerates exactly which subsections are absent.
func subsectionFindings(doc *document.Document, contract structure.Section, def *schema.Definition) []core.Finding {
	present := make(map[string]bool)
	inFence := 0
	for n := contract.StartLine + 1; n <= contract.EndLine; n++ {
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
		if m := subsectionRe.FindStringSubmatch(line); m != nil {
			present[strings.TrimSpace(m[1])] = true
		}
	}

	var findings []core.Finding
	for _, name := range def.ContractSubsections {
		if !present[name] {
			findings = append(findings, core.Finding{
				Severity: core.SeverityHigh,
				Group:    group,
				Message:  fmt.Sprintf("Contract is missing subsection %q", name),
				Line:     contract.StartLine,
				Fix:      fmt.Sprintf("add a `### %s` subsection inside Contract", name),
			})
		}
	}
	return findings
}

// xmlTagFindings scans the Contract span for XML-style tags, excluding
// fenced code blocks and inline backtick spans.
func xmlTagFindings(doc *document.Document, contract structure.Section) []core.Finding {
	var findings []core.Finding
	inFence := 0
	for n := contract.StartLine + 1; n <= contract.EndLine; n++ {
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
		stripped := inlineCodeRe.ReplaceAllString(line, "")
		if tag := xmlTagRe.FindString(stripped); tag != "" {
			findings = append(findings, core.Finding{
				Severity: core.SeverityHigh,
				Group:    group,
				Message:  fmt.Sprintf("XML tags forbidden in Contract; use Markdown headers (found %s)", tag),
				Line:     n,
				Fix:      "replace the tag with a Markdown subsection or list item",
			})
		}
	}
	return findings
}
