package pegrec

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

// TestMain disables fatih/color's ANSI output for the whole package so
// PrintMatchFailure's assertions can check plain text regardless of
// whether the test run has a terminal attached.
func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestPrintMatchFailureReportsFurthestPosition(t *testing.T) {
	r := require.New(t)

	m := NewMatcher(Standard)
	m.AddRule("rule", Seq(Term("foo"), Term("bar")))

	tree, err := m.Match("foobaz", "rule")
	r.NoError(err)
	r.Nil(tree)

	out := m.PrintMatchFailure()
	r.Contains(out, "position 3")
	r.Contains(out, "foobaz")
	r.Contains(out, "expected one of:")
	r.Contains(out, `"bar"`)
}

func TestPrintMatchFailureCaretAligns(t *testing.T) {
	r := require.New(t)

	m := NewMatcher(Standard)
	m.AddRule("rule", Term("x"))

	tree, err := m.Match("abc", "rule")
	r.NoError(err)
	r.Nil(tree)

	out := m.PrintMatchFailure()
	lines := strings.Split(out, "\n")
	r.GreaterOrEqual(len(lines), 3)

	// Failure is at position 0, so the caret sits directly under the
	// window's first character with no leading padding.
	caretLine := lines[2]
	r.Contains(caretLine, "^")
	r.Equal(0, strings.Index(caretLine, "^"))
}

func TestPrintMatchFailureSanitizesControlBytes(t *testing.T) {
	r := require.New(t)

	m := NewMatcher(Standard)
	m.AddRule("rule", Term("x"))

	tree, err := m.Match("a\nb", "rule")
	r.NoError(err)
	r.Nil(tree)

	out := m.PrintMatchFailure()
	r.NotContains(out, "a\nb\n^")
}

func TestPrintMatchFailureWithNoFailuresRecorded(t *testing.T) {
	r := require.New(t)

	m := NewMatcher(Standard)
	m.AddRule("rule", Term("x"))

	tree, err := m.Match("x", "rule")
	r.NoError(err)
	r.NotNil(tree)

	out := m.PrintMatchFailure()
	r.Contains(out, "position 0")
	r.NotContains(out, "expected one of:")
}
