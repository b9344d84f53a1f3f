// Package output provides the rendering layer for CLI commands: mode
// detection (styled terminal output, plain text when piped, JSON on
// request) and a small set of styled print helpers.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	// ModeAuto picks text with styling on a TTY, plain text otherwise.
	ModeAuto Mode = "auto"
	// ModeText forces plain text output.
	ModeText Mode = "text"
	// ModeJSON forces machine-readable JSON output.
	ModeJSON Mode = "json"
)

// ValidMode reports whether s names a supported output mode.
func ValidMode(s string) bool {
	switch Mode(s) {
	case ModeAuto, ModeText, ModeJSON, "":
		return true
	default:
		return false
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles Styles
}

// NewRenderer creates a renderer. When mode is ModeAuto the effective mode
// is resolved from whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return newRenderer(out, errOut, mode, isTTY)
}

// NewRendererWithTTY creates a renderer with an explicit TTY decision.
// Used by tests to exercise styled output against a buffer.
func NewRendererWithTTY(out, errOut io.Writer, mode Mode, isTTY bool) *Renderer {
	return newRenderer(out, errOut, mode, isTTY)
}

func newRenderer(out, errOut io.Writer, mode Mode, isTTY bool) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	styled := isTTY && mode == ModeAuto && termenv.EnvColorProfile() != termenv.Ascii
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: newStyles(styled),
	}
}

// EffectiveMode resolves ModeAuto to the concrete mode in use.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode == ModeAuto {
		return ModeText
	}
	return r.mode
}

// Styles returns the style set for the current mode.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Writer returns the underlying output writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Println writes a line to the output writer.
func (r *Renderer) Println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// Printf writes formatted output to the output writer.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Header writes a styled section header.
func (r *Renderer) Header(text string) {
	r.Println(r.styles.Header1.Render(text))
}

// Success writes a styled success line.
func (r *Renderer) Success(text string) {
	r.Println(r.styles.Success.Render(text))
}

// Warning writes a styled warning line.
func (r *Renderer) Warning(text string) {
	r.Println(r.styles.Warning.Render(text))
}

// Error writes a styled error line to the error writer.
func (r *Renderer) Error(text string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render(text))
}

// StatusLine writes an aligned key/value line.
func (r *Renderer) StatusLine(label, value string) {
	r.Printf("%s %s\n", r.styles.Muted.Render(fmt.Sprintf("%-14s", label+":")), value)
}

// JSON encodes v to the output writer with indentation.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
