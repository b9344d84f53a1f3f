package structure

import (
	"strings"
	"testing"

	"github.com/ruleforge/rulecheck/internal/document"
	"github.com/ruleforge/rulecheck/internal/schema"
	"github.com/ruleforge/rulecheck/internal/testutil"
	"github.com/ruleforge/rulecheck/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSchema(t *testing.T) *schema.Definition {
	t.Helper()
	def, err := schema.Default()
	require.NoError(t, err)
	return def
}

func TestExtract(t *testing.T) {
	doc := document.New("rule.md", strings.Join([]string{
		"# Title",
		"",
		"## Metadata",
		"**RuleVersion:** v1.0.0",
		"",
		"## Scope",
		"prose",
		"### Not a section",
		"## Contract",
		"last line",
	}, "\n"))

	sections := Extract(doc)
	require.Len(t, sections, 3)

	assert.Equal(t, Section{Name: "Metadata", Level: 2, StartLine: 3, EndLine: 5}, sections[0])
	assert.Equal(t, Section{Name: "Scope", Level: 2, StartLine: 6, EndLine: 8}, sections[1])
	assert.Equal(t, Section{Name: "Contract", Level: 2, StartLine: 9, EndLine: 10}, sections[2])
}

func TestExtractIgnoresHeadersInsideFences(t *testing.T) {
	doc := document.New("rule.md", strings.Join([]string{
		"## Metadata",
		"```",
		"## Not a real section",
		"```",
		"## Scope",
	}, "\n"))

	sections := Extract(doc)
	require.Len(t, sections, 2)
	assert.Equal(t, "Metadata", sections[0].Name)
	assert.Equal(t, "Scope", sections[1].Name)
}

func TestValidateCompliant(t *testing.T) {
	doc := document.New("rule.md", testutil.CompliantRuleFile())

	sections, findings := Validate(doc, defaultSchema(t))
	assert.Empty(t, findings)
	assert.Len(t, sections, 4)
}

func TestMissingRequiredSection(t *testing.T) {
	content := strings.Replace(testutil.CompliantRuleFile(), "## Scope", "## Purpose", 1)
	doc := document.New("rule.md", content)

	_, findings := Validate(doc, defaultSchema(t))

	require.Len(t, findings, 1)
	assert.Equal(t, core.SeverityCritical, findings[0].Severity)
	assert.Contains(t, findings[0].Message, `missing required section "Scope"`)
}

func TestSectionOrderWrong(t *testing.T) {
	// Contract, Scope, References, Metadata: all present, wrong order.
	doc := document.New("rule.md", strings.Join([]string{
		"## Contract",
		"### Inputs & Prerequisites",
		"### Constraints",
		"### Forbidden Actions",
		"### Validation Criteria",
		"## Scope",
		"prose",
		"## References",
		"- a link",
		"## Metadata",
		"**RuleVersion:** v1.0.0",
		"**SchemaVersion:** v3.2",
	}, "\n"))

	_, findings := Validate(doc, defaultSchema(t))

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, core.SeverityHigh, f.Severity)
	assert.Contains(t, f.Message, "section order wrong")
	assert.Contains(t, f.Message, "expected Metadata, Scope, Contract, References")
	assert.Contains(t, f.Message, "found Contract, Scope, References, Metadata")
}

func TestOptionalTrailingSectionsNotRequired(t *testing.T) {
	// The fixture omits Examples and Changelog; both are optional.
	doc := document.New("rule.md", testutil.CompliantRuleFile())
	_, findings := Validate(doc, defaultSchema(t))
	assert.Empty(t, findings)
}

func TestNumberedHeadingForbidden(t *testing.T) {
	content := strings.Replace(testutil.CompliantRuleFile(), "## Scope", "## 2. Scope", 1)
	doc := document.New("rule.md", content)

	_, findings := Validate(doc, defaultSchema(t))

	// The renamed header also breaks section presence.
	var numbered []core.Finding
	for _, f := range findings {
		if strings.Contains(f.Message, "numbered heading") {
			numbered = append(numbered, f)
		}
	}
	require.Len(t, numbered, 1)
	assert.Equal(t, core.SeverityHigh, numbered[0].Severity)
	assert.Greater(t, numbered[0].Line, 0)
}

func TestFenceNestingViolation(t *testing.T) {
	doc := document.New("rule.md", strings.Join([]string{
		"## Scope",
		"```markdown",
		"```python",
		"print('hi')",
		"```",
		"```",
	}, "\n"))

	findings := fenceNestingFindings(doc)
	require.Len(t, findings, 1)
	assert.Equal(t, 3, findings[0].Line)
	assert.Equal(t, core.SeverityHigh, findings[0].Severity)
}

func TestFenceNestingCorrectOuterLonger(t *testing.T) {
	doc := document.New("rule.md", strings.Join([]string{
		"````markdown",
		"```python",
		"print('hi')",
		"```",
		"````",
	}, "\n"))

	assert.Empty(t, fenceNestingFindings(doc))
}

func TestEmojiForbidden(t *testing.T) {
	content := strings.Replace(testutil.CompliantRuleFile(),
		"Applies to Go services in this repository.",
		"Applies to Go services. \U0001F680", 1)
	doc := document.New("rule.md", content)

	_, findings := Validate(doc, defaultSchema(t))

	require.Len(t, findings, 1)
	assert.Equal(t, core.SeverityHigh, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "emoji")
}
