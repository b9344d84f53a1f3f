// Package detector runs schema-referenced Starlark scripts as custom
// forbidden-pattern detectors. A script defines a check(lines) function and
// returns a list of dicts with "message", optional "line", "severity", and
// "fix" keys; every entry becomes a finding in group "Detector".
package detector

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ruleforge/rulecheck/internal/document"
	"github.com/ruleforge/rulecheck/internal/schema"
	"github.com/ruleforge/rulecheck/pkg/core"
	"go.starlark.net/starlark"
)

const group = "Detector"

// checkFunc is the entry point a detector script must define.
const checkFunc = "check"

// Detector is one compiled Starlark detector, reusable across documents.
type Detector struct {
	Name  string
	check starlark.Callable
}

// Compile loads a detector script and resolves its check function.
// The baseDir anchors relative script paths (usually the schema file's
// directory).
func Compile(ref schema.DetectorRef, baseDir string) (*Detector, error) {
	path := ref.Script
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	src, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the schema definition
	if err != nil {
		return nil, fmt.Errorf("failed to read detector script %s: %w", path, err)
	}

	thread := &starlark.Thread{
		Name:  "detector:" + ref.Name,
		Print: func(_ *starlark.Thread, _ string) {}, // detectors have no stdout
	}
	globals, err := starlark.ExecFile(thread, path, src, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load detector %s: %w", ref.Name, err)
	}

	fn, ok := globals[checkFunc].(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("detector %s does not define a %s(lines) function", ref.Name, checkFunc)
	}

	return &Detector{Name: ref.Name, check: fn}, nil
}

// CompileAll compiles every detector the schema references.
func CompileAll(def *schema.Definition, baseDir string) ([]*Detector, error) {
	detectors := make([]*Detector, 0, len(def.Detectors))
	for _, ref := range def.Detectors {
		d, err := Compile(ref, baseDir)
		if err != nil {
			return nil, err
		}
		detectors = append(detectors, d)
	}
	return detectors, nil
}

// Run invokes the detector against a document. A misbehaving script is
// reported as a MEDIUM finding instead of failing the document, matching the
// accumulate-never-raise policy of the rest of the pipeline.
func (d *Detector) Run(doc *document.Document) []core.Finding {
	lines := doc.Lines()
	list := make([]starlark.Value, len(lines))
	for i, l := range lines {
		list[i] = starlark.String(l)
	}

	thread := &starlark.Thread{
		Name:  "detector:" + d.Name + ":" + doc.Path,
		Print: func(_ *starlark.Thread, _ string) {},
	}
	result, err := starlark.Call(thread, d.check, starlark.Tuple{starlark.NewList(list)}, nil)
	if err != nil {
		return []core.Finding{{
			Severity: core.SeverityMedium,
			Group:    group,
			Message:  fmt.Sprintf("detector %s failed: %v", d.Name, err),
			Fix:      "fix the detector script referenced by the schema",
		}}
	}

	return d.convert(result)
}

// convert maps the script's return value into findings.
func (d *Detector) convert(value starlark.Value) []core.Finding {
	iterable, ok := value.(starlark.Iterable)
	if !ok {
		if value == starlark.None {
			return nil
		}
		return []core.Finding{d.badReturn("check() must return a list of dicts")}
	}

	var findings []core.Finding
	iter := iterable.Iterate()
	defer iter.Done()

	var item starlark.Value
	for iter.Next(&item) {
		dict, ok := item.(*starlark.Dict)
		if !ok {
			findings = append(findings, d.badReturn("check() returned a non-dict entry"))
			continue
		}

		f := core.Finding{
			Severity: core.SeverityHigh,
			Group:    group,
			Message:  fmt.Sprintf("[%s] finding", d.Name),
		}
		if msg, ok := dictString(dict, "message"); ok {
			f.Message = fmt.Sprintf("[%s] %s", d.Name, msg)
		}
		if fix, ok := dictString(dict, "fix"); ok {
			f.Fix = fix
		}
		if sev, ok := dictString(dict, "severity"); ok {
			if parsed, valid := core.ParseSeverity(sev); valid {
				f.Severity = parsed
			}
		}
		if line, ok := dictInt(dict, "line"); ok {
			f.Line = line
		}
		findings = append(findings, f)
	}
	return findings
}

func (d *Detector) badReturn(msg string) core.Finding {
	return core.Finding{
		Severity: core.SeverityMedium,
		Group:    group,
		Message:  fmt.Sprintf("detector %s: %s", d.Name, msg),
		Fix:      "fix the detector script referenced by the schema",
	}
}

func dictString(dict *starlark.Dict, key string) (string, bool) {
	v, found, err := dict.Get(starlark.String(key))
	if err != nil || !found {
		return "", false
	}
	s, ok := starlark.AsString(v)
	return s, ok
}

func dictInt(dict *starlark.Dict, key string) (int, bool) {
	v, found, err := dict.Get(starlark.String(key))
	if err != nil || !found {
		return 0, false
	}
	i, err := starlark.AsInt32(v)
	if err != nil {
		return 0, false
	}
	return i, true
}
