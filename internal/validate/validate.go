// Package validate wires the per-document pipeline: load, metadata checks,
// section structure checks, contract checks, and custom detectors. Every
// stage accumulates findings into the document's result; nothing raises.
package validate

import (
	"log/slog"

	"github.com/ruleforge/rulecheck/internal/contract"
	"github.com/ruleforge/rulecheck/internal/detector"
	"github.com/ruleforge/rulecheck/internal/document"
	"github.com/ruleforge/rulecheck/internal/metadata"
	"github.com/ruleforge/rulecheck/internal/schema"
	"github.com/ruleforge/rulecheck/internal/structure"
	"github.com/ruleforge/rulecheck/pkg/core"
)

// Validator applies one schema definition to rule files. Safe for concurrent
// use: the definition is read-only and every document flows through its own
// state.
type Validator struct {
	def       *schema.Definition
	detectors []*detector.Detector
	logger    *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for per-file debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithDetectors attaches compiled custom detectors.
func WithDetectors(detectors []*detector.Detector) Option {
	return func(v *Validator) { v.detectors = detectors }
}

// New creates a validator for the given schema definition.
func New(def *schema.Definition, opts ...Option) *Validator {
	v := &Validator{
		def:    def,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Schema returns the definition this validator applies.
func (v *Validator) Schema() *schema.Definition {
	return v.def
}

// File validates one rule file from disk.
func (v *Validator) File(path string) core.Result {
	doc, ioFindings := document.Load(path)
	result := core.Result{Path: path}
	result.Add(ioFindings...)
	if len(ioFindings) > 0 {
		// Unreadable input: the single IO finding is the whole result.
		return result
	}
	return v.document(doc, result)
}

// Document validates already-loaded content. Used by watch mode and tests.
func (v *Validator) Document(doc *document.Document) core.Result {
	return v.document(doc, core.Result{Path: doc.Path})
}

func (v *Validator) document(doc *document.Document, result core.Result) core.Result {
	_, metaFindings := metadata.Validate(doc, v.def)
	result.Add(metaFindings...)

	sections, structFindings := structure.Validate(doc, v.def)
	result.Add(structFindings...)

	result.Add(contract.Validate(doc, sections, v.def)...)

	for _, d := range v.detectors {
		result.Add(d.Run(doc)...)
	}

	counts := result.Counts()
	v.logger.Debug("validated document",
		"path", doc.Path,
		"status", result.Status().String(),
		"critical", counts.Critical,
		"high", counts.High,
		"medium", counts.Medium)

	return result
}
