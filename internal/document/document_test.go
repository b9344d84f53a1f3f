package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ruleforge/rulecheck/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rule.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\n## Metadata\n"), 0o600))

	doc, findings := Load(path)
	require.Empty(t, findings)
	assert.Equal(t, 3, doc.LineCount())
	assert.Equal(t, "# Title", doc.Line(1))
	assert.Equal(t, "## Metadata", doc.Line(3))
}

func TestLoadMissingFile(t *testing.T) {
	doc, findings := Load(filepath.Join(t.TempDir(), "absent.md"))

	require.Len(t, findings, 1)
	assert.Equal(t, core.SeverityCritical, findings[0].Severity)
	assert.Equal(t, "IO", findings[0].Group)
	assert.Equal(t, 0, doc.LineCount())
}

func TestLoadNonUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.md")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 'h', 'i'}, 0o600))

	doc, findings := Load(path)
	require.Len(t, findings, 1)
	assert.Equal(t, core.SeverityCritical, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "UTF-8")
	assert.Equal(t, 0, doc.LineCount())
}

func TestLineOutOfRange(t *testing.T) {
	doc := New("x.md", "one\ntwo")
	assert.Equal(t, "", doc.Line(0))
	assert.Equal(t, "", doc.Line(3))
	assert.Equal(t, "two", doc.Line(2))
}

func TestSplitLines(t *testing.T) {
	doc := New("x.md", "a\r\nb\nc\n")
	assert.Equal(t, []string{"a", "b", "c"}, doc.Lines())

	empty := New("x.md", "")
	assert.Equal(t, 0, empty.LineCount())
}
