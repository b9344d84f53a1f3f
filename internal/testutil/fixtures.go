package testutil

import (
	"strings"
	"testing"
)

// compliantMetadata lists the metadata lines of the canonical fixture in
// schema order.
var compliantMetadata = []string{
	"**RuleVersion:** v1.2.0",
	"**SchemaVersion:** v3.2",
	"**ContextTier:** Core",
	"**Keywords:** go, testing, style, lint, docs",
	"**TokenBudget:** ~1200",
	"**Depends:** core/base.md",
}

// CompliantRuleFile returns a rule file that satisfies every check of the
// default v3.2 schema. Tests mutate it to provoke specific findings.
func CompliantRuleFile() string {
	return RuleFileWithMetadata(compliantMetadata...)
}

// RuleFileWithMetadata returns the canonical fixture with the given metadata
// lines in place of the default block.
func RuleFileWithMetadata(metadataLines ...string) string {
	var b strings.Builder
	b.WriteString("# Example Rule\n\n## Metadata\n\n")
	for _, line := range metadataLines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(`
## Scope

Applies to Go services in this repository.

## Contract

### Inputs & Prerequisites

- a checked-out source tree

### Constraints

- keep diffs minimal

### Forbidden Actions

- never force-push shared branches

### Validation Criteria

- the build passes

## References

- internal style guide
`)
	return b.String()
}

// RuleFileWithout returns the canonical fixture with one metadata field
// removed. Fails the test if the field is not part of the fixture.
func RuleFileWithout(t testing.TB, fieldName string) string {
	t.Helper()
	prefix := "**" + fieldName + ":**"
	kept := make([]string, 0, len(compliantMetadata))
	found := false
	for _, line := range compliantMetadata {
		if strings.HasPrefix(line, prefix) {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		t.Fatalf("fixture has no metadata field %q", fieldName)
	}
	return RuleFileWithMetadata(kept...)
}
