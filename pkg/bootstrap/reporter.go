package bootstrap

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Status glyphs printed in front of progress lines.
const (
	GlyphOK      = "✅"
	GlyphFail    = "❌"
	GlyphWarn    = "⚠️ "
	GlyphWrite   = "📝"
	GlyphPackage = "📦"
	GlyphLaunch  = "🚀"
	GlyphPin     = "📍"
	GlyphStop    = "🛑"
	GlyphBye     = "👋"
	GlyphHint    = "💡"
	GlyphSetup   = "🔧"
	GlyphDir     = "📂"
)

// Reporter prints operator-facing progress lines.
type Reporter struct {
	out *termenv.Output
}

// NewReporter writes to w, colouring lines when w is a colour-capable terminal.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{out: termenv.NewOutput(w)}
}

// NewPlainReporter writes to w without escape sequences.
func NewPlainReporter(w io.Writer) *Reporter {
	return &Reporter{out: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))}
}

func (r *Reporter) line(glyph, color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if glyph != "" {
		msg = glyph + " " + msg
	}
	style := r.out.String(msg)
	if color != "" {
		style = style.Foreground(r.out.Color(color))
	}
	fmt.Fprintln(r.out, style.String())
}

// OK reports a passed check.
func (r *Reporter) OK(format string, args ...any) { r.line(GlyphOK, "2", format, args...) }

// Fail reports a failed check.
func (r *Reporter) Fail(format string, args ...any) { r.line(GlyphFail, "1", format, args...) }

// Warn reports a degraded condition.
func (r *Reporter) Warn(format string, args ...any) { r.line(GlyphWarn, "3", format, args...) }

// Info prints a line with an arbitrary glyph.
func (r *Reporter) Info(glyph, format string, args ...any) { r.line(glyph, "", format, args...) }

// Item prints an indented list entry.
func (r *Reporter) Item(format string, args ...any) { r.line("", "", "   - "+format, args...) }

// Rule prints a separator.
func (r *Reporter) Rule() { r.line("", "", "%s", strings.Repeat("=", 50)) }
