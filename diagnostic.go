package pegrec

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
)

// diagnosticWindow is the width in bytes of the context window (spec §6);
// diagnosticBefore is how many of those bytes come before the failure
// position.
const (
	diagnosticWindow = 40
	diagnosticBefore = 10
)

var (
	diagFailColor   = color.New(color.FgRed, color.Bold)
	diagExpectColor = color.New(color.FgYellow)
	diagCaretColor  = color.New(color.FgRed, color.Bold)
)

// PrintMatchFailure renders the diagnostic described in spec §6 for the
// furthest position the matcher's failure log reached during the most
// recent Match call: the position, a 40-byte window of input starting
// ten bytes before it, a caret under the failure point, and the set of
// expressions that were tried and failed there. It must be called after
// Match returns; calling it before any Match is a no-op that reports
// position 0 with no input.
func (m *Matcher) PrintMatchFailure() string {
	var b strings.Builder

	pos := m.failLog.furthest
	fmt.Fprintf(&b, "match failed at position %d\n", pos)

	winStart := pos - diagnosticBefore
	if winStart < 0 {
		winStart = 0
	}
	winEnd := winStart + diagnosticWindow
	if winEnd > len(m.input) {
		winEnd = len(m.input)
	}

	window := m.input[winStart:winEnd]
	b.WriteString(sanitizeWindow(window))
	b.WriteByte('\n')

	caretOffset := pos - winStart
	b.WriteString(strings.Repeat(" ", caretOffset))
	b.WriteString(diagCaretColor.Sprint("^"))
	b.WriteByte('\n')

	expected := m.failLog.expectedAtFurthest()
	if len(expected) == 0 {
		return b.String()
	}

	b.WriteString(diagFailColor.Sprint("expected one of:"))
	b.WriteByte('\n')
	for _, e := range expected {
		b.WriteString("  ")
		b.WriteString(diagExpectColor.Sprint(e.print()))
		b.WriteByte('\n')
	}

	return b.String()
}

// sanitizeWindow replaces control bytes (newlines in particular, which
// would otherwise break the caret alignment on the following line) with
// a visible placeholder.
func sanitizeWindow(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x20 {
			b.WriteRune('␣')
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// diagnosticWriter returns an ANSI-aware writer for callers that want to
// stream PrintMatchFailure's output straight to a terminal, following
// the same colorable.NewColorable wiring hclog uses internally for its
// own colored output.
func diagnosticWriter() io.Writer {
	return colorable.NewColorableStdout()
}

// WriteMatchFailure writes PrintMatchFailure's diagnostic straight to the
// terminal, with colors rendering correctly on Windows consoles as well
// as ANSI ones.
func (m *Matcher) WriteMatchFailure() {
	io.WriteString(diagnosticWriter(), m.PrintMatchFailure())
}
