// Package output renders command results in text, markdown or JSON.
//
// Commands create one Renderer per invocation and branch on EffectiveMode:
// auto resolves to styled text on a terminal and markdown when piped, so
// the same command works interactively and inside scripts or CI logs.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Mode selects how command output is rendered.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out      io.Writer
	errOut   io.Writer
	mode     Mode
	styles   *Styles
	forceTTY *bool
}

// NewRenderer creates a renderer for the given writers and mode.
// An empty or unknown mode behaves as ModeAuto.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeText, ModeMarkdown, ModeJSON, ModeAuto:
	default:
		mode = ModeAuto
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styles: DefaultStyles(),
	}
}

// NewRendererWithTTY creates a renderer with an explicit TTY state instead of
// detecting it from the output writer. Used by tests to pin auto mode.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	r := NewRenderer(out, errOut, mode)
	r.forceTTY = &isTTY
	return r
}

// EffectiveMode resolves ModeAuto to a concrete mode: text when stdout is a
// terminal, markdown otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY() {
		return ModeText
	}
	return ModeMarkdown
}

func (r *Renderer) isTTY() bool {
	if r.forceTTY != nil {
		return *r.forceTTY
	}
	if f, ok := r.out.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Writer returns the underlying output writer, for encoders and tables.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the underlying error writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Styles returns the style set used in text mode.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to the output writer.
func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to the output writer.
func (r *Renderer) Printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

// JSON writes v as indented JSON to the output writer.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Header writes a section header: styled in text mode, hash-prefixed in
// markdown mode.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(level, text))
		r.Println("")
		return
	}
	style := r.styles.Header2
	if level <= 1 {
		style = r.styles.Header1
	}
	r.Println(style.Render(text))
}

// Success writes a success line with a check glyph in text mode.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeText {
		r.Println(r.styles.Success.Render("✓ " + msg))
		return
	}
	r.Println(msg)
}

// Warning writes a warning line to the error writer.
func (r *Renderer) Warning(msg string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.errOut, r.styles.Warning.Render("! "+msg))
		return
	}
	fmt.Fprintln(r.errOut, "Warning: "+msg)
}

// Error writes an error line to the error writer.
func (r *Renderer) Error(msg string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+msg))
		return
	}
	fmt.Fprintln(r.errOut, "Error: "+msg)
}

// Muted writes a de-emphasized line.
func (r *Renderer) Muted(msg string) {
	if r.EffectiveMode() == ModeText {
		r.Println(r.styles.Muted.Render(msg))
		return
	}
	r.Println(msg)
}

// StatusLine writes an indented name with a status glyph and optional
// detail, for item-by-item progress listings.
func (r *Renderer) StatusLine(name, status, detail string) {
	glyph := "•"
	style := r.styles.Muted
	switch status {
	case "success":
		glyph = "✓"
		style = r.styles.Success
	case "error":
		glyph = "✗"
		style = r.styles.Error
	case "warning":
		glyph = "!"
		style = r.styles.Warning
	}

	line := fmt.Sprintf("  %s %s", glyph, name)
	if detail != "" {
		line += "  " + detail
	}
	if r.EffectiveMode() == ModeText {
		r.Println(style.Render(line))
		return
	}
	r.Println(line)
}

// FormatHeader returns a markdown header of the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown bolded key/value line.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("**%s:** %s", key, value)
}
