package pegrec

import "strings"

// indentState is the Python-mode indentation stack from spec §3/§4.4:
// level always equals len(stack).
type indentState struct {
	level int
	stack []string
}

func (s *indentState) reset() {
	s.level = 0
	s.stack = nil
}

func atLineStart(m *Matcher) bool {
	return m.pos == 0 || m.input[m.pos-1] == '\n'
}

func isIndentByte(b byte) bool {
	return b == ' ' || b == '\t'
}

// matchIndent implements spec §4.4 INDENT: consume the current total
// indentation, then a non-empty run of spaces/tabs, and push it.
func (m *Matcher) matchIndent() evalResult {
	if !atLineStart(m) {
		return evalResult{}
	}

	start := m.pos
	prefix := strings.Join(m.indent.stack, "")
	if !hasPrefixAt(m.input, start, prefix) {
		return evalResult{}
	}

	pos := start + len(prefix)
	runStart := pos
	for pos < len(m.input) && isIndentByte(m.input[pos]) {
		pos++
	}

	if pos == runStart {
		return evalResult{}
	}

	m.pos = pos
	m.indent.stack = append(m.indent.stack, m.input[runStart:pos])
	m.indent.level++

	return evalResult{tree: newTerminalTree(m.input, start, m.pos-1, ""), matched: true}
}

// matchDedent implements spec §4.4 DEDENT: consume every indentation
// level but the innermost, then require the following byte not be more
// indentation before popping.
func (m *Matcher) matchDedent() evalResult {
	if !atLineStart(m) {
		return evalResult{}
	}

	if m.indent.level == 0 {
		return evalResult{}
	}

	start := m.pos
	outer := m.indent.stack[:len(m.indent.stack)-1]
	prefix := strings.Join(outer, "")
	if !hasPrefixAt(m.input, start, prefix) {
		return evalResult{}
	}

	next := start + len(prefix)
	if next < len(m.input) && isIndentByte(m.input[next]) {
		return evalResult{}
	}

	m.pos = next
	m.indent.stack = outer
	m.indent.level--

	return evalResult{tree: newTerminalTree(m.input, start, m.pos-1, ""), matched: true}
}
