// Package schema defines the versioned structural schema that rule files
// are validated against. A Definition is loaded once per process and shared
// read-only by all validations; it is never mutated after loading.
package schema

import (
	"fmt"

	"github.com/ruleforge/rulecheck/pkg/core"
)

// Format rule names accepted in a FieldRule.
const (
	FormatSemver      = "semver"       // vMAJOR.MINOR.PATCH
	FormatExact       = "exact"        // value must equal FieldRule.Value
	FormatEnum        = "enum"         // value must be one of FieldRule.Values
	FormatKeywords    = "keywords"     // comma-separated list, count in [Min,Max]
	FormatTokenBudget = "token_budget" // ~<integer>
	FormatNonEmpty    = "non_empty"    // any non-blank value
)

// Built-in forbidden-pattern detector names.
const (
	ForbiddenNumberedHeadings = "numbered-headings"
	ForbiddenXMLTags          = "xml-tags"
	ForbiddenEmoji            = "emoji"
	ForbiddenFenceNesting     = "fence-nesting"
)

// FieldRule describes one required metadata field and its format check.
type FieldRule struct {
	Name     string   `yaml:"name"`
	Format   string   `yaml:"format"`
	Value    string   `yaml:"value,omitempty"`    // for exact
	Values   []string `yaml:"values,omitempty"`   // for enum
	Min      int      `yaml:"min,omitempty"`      // for keywords
	Max      int      `yaml:"max,omitempty"`      // for keywords
	Severity string   `yaml:"severity,omitempty"` // CRITICAL | HIGH | MEDIUM | INFO
	Example  string   `yaml:"example,omitempty"`  // used in fix suggestions
}

// FormatSeverity returns the severity a format violation of this field carries.
func (f FieldRule) FormatSeverity() core.Severity {
	if s, ok := core.ParseSeverity(f.Severity); ok {
		return s
	}
	return core.SeverityCritical
}

// SectionRule describes one required top-level section.
type SectionRule struct {
	Name string `yaml:"name"`
	// Optional marks trailing sections that may be omitted without a finding.
	Optional bool `yaml:"optional,omitempty"`
}

// DetectorRef references a custom Starlark detector script.
type DetectorRef struct {
	Name   string `yaml:"name"`
	Script string `yaml:"script"`
}

// Definition is the immutable, versioned description of the rule-file schema.
type Definition struct {
	Version             string        `yaml:"version"`
	MetadataFields      []FieldRule   `yaml:"metadata_fields"`
	Sections            []SectionRule `yaml:"sections"`
	ContractSection     string        `yaml:"contract_section"`
	ContractSubsections []string      `yaml:"contract_subsections"`
	Forbidden           []string      `yaml:"forbidden"`
	Detectors           []DetectorRef `yaml:"detectors,omitempty"`
}

// ForbiddenEnabled reports whether a built-in forbidden-pattern detector
// is active in this schema.
func (d *Definition) ForbiddenEnabled(name string) bool {
	for _, f := range d.Forbidden {
		if f == name {
			return true
		}
	}
	return false
}

// Field returns the rule for a metadata field by name.
func (d *Definition) Field(name string) (FieldRule, bool) {
	for _, f := range d.MetadataFields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldRule{}, false
}

// RequiredSectionNames returns the names of all non-optional sections in order.
func (d *Definition) RequiredSectionNames() []string {
	names := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		if !s.Optional {
			names = append(names, s.Name)
		}
	}
	return names
}

// validate checks internal consistency of a loaded definition.
func (d *Definition) validate() error {
	if d.Version == "" {
		return fmt.Errorf("schema definition has no version")
	}
	if len(d.MetadataFields) == 0 {
		return fmt.Errorf("schema %s defines no metadata fields", d.Version)
	}
	if len(d.Sections) == 0 {
		return fmt.Errorf("schema %s defines no required sections", d.Version)
	}
	if d.ContractSection == "" {
		return fmt.Errorf("schema %s has no contract section name", d.Version)
	}
	seen := make(map[string]bool, len(d.MetadataFields))
	for _, f := range d.MetadataFields {
		if f.Name == "" {
			return fmt.Errorf("schema %s has a metadata field without a name", d.Version)
		}
		if seen[f.Name] {
			return fmt.Errorf("schema %s defines metadata field %q twice", d.Version, f.Name)
		}
		seen[f.Name] = true
		switch f.Format {
		case FormatSemver, FormatExact, FormatEnum, FormatKeywords, FormatTokenBudget, FormatNonEmpty, "":
		default:
			return fmt.Errorf("schema %s: field %q has unknown format %q", d.Version, f.Name, f.Format)
		}
	}
	for _, det := range d.Detectors {
		if det.Name == "" || det.Script == "" {
			return fmt.Errorf("schema %s: detector entries need both name and script", d.Version)
		}
	}
	return nil
}
