package contract

import (
	"strings"
	"testing"

	"github.com/ruleforge/rulecheck/internal/document"
	"github.com/ruleforge/rulecheck/internal/schema"
	"github.com/ruleforge/rulecheck/internal/structure"
	"github.com/ruleforge/rulecheck/internal/testutil"
	"github.com/ruleforge/rulecheck/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validateContent(t *testing.T, content string) []core.Finding {
	t.Helper()
	def, err := schema.Default()
	require.NoError(t, err)
	doc := document.New("rule.md", content)
	sections := structure.Extract(doc)
	return Validate(doc, sections, def)
}

func TestCompliantContract(t *testing.T) {
	assert.Empty(t, validateContent(t, testutil.CompliantRuleFile()))
}

func TestContractSectionAbsentIsSkipped(t *testing.T) {
	content := strings.ReplaceAll(testutil.CompliantRuleFile(), "## Contract", "## Agreement")
	// Structure validation reports the missing section; contract stays silent.
	assert.Empty(t, validateContent(t, content))
}

func TestMissingSubsectionsEnumerated(t *testing.T) {
	content := testutil.CompliantRuleFile()
	content = strings.Replace(content, "### Forbidden Actions", "### Banned Actions", 1)
	content = strings.Replace(content, "### Validation Criteria", "### Checks", 1)

	findings := validateContent(t, content)

	require.Len(t, findings, 2)
	assert.Contains(t, findings[0].Message, `"Forbidden Actions"`)
	assert.Contains(t, findings[1].Message, `"Validation Criteria"`)
	for _, f := range findings {
		assert.Equal(t, core.SeverityHigh, f.Severity)
	}
}

func TestXMLTagOutsideFence(t *testing.T) {
	content := strings.Replace(testutil.CompliantRuleFile(),
		"- a checked-out source tree",
		"<inputs_prereqs>", 1)

	findings := validateContent(t, content)

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, core.SeverityHigh, f.Severity)
	assert.Contains(t, f.Message, "XML tags forbidden in Contract")
	// The exact line of the offending tag.
	doc := document.New("rule.md", content)
	assert.Equal(t, "<inputs_prereqs>", doc.Line(f.Line))
}

func TestXMLTagInsideFenceNotFlagged(t *testing.T) {
	content := strings.Replace(testutil.CompliantRuleFile(),
		"- a checked-out source tree",
		"```xml\n<inputs_prereqs>\n```", 1)

	assert.Empty(t, validateContent(t, content))
}

func TestXMLTagInInlineCodeNotFlagged(t *testing.T) {
	content := strings.Replace(testutil.CompliantRuleFile(),
		"- a checked-out source tree",
		"- never write `<inputs_prereqs>` style tags", 1)

	assert.Empty(t, validateContent(t, content))
}

func TestXMLTagOutsideContractNotFlagged(t *testing.T) {
	content := strings.Replace(testutil.CompliantRuleFile(),
		"Applies to Go services in this repository.",
		"Uses <placeholder> markers.", 1)

	// The Contract check only covers the Contract span.
	assert.Empty(t, validateContent(t, content))
}
