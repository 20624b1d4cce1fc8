package pegrec

// Specialized forms of the core variants for the shapes that dominate real
// grammars: one- and two-byte literals, two- and three-element sequences,
// two-alternative choices, and negating a single byte. Each behaves
// identically to the general form it specializes; they exist only to skip
// slice allocation and byte-by-byte prefix scanning on the hot path.

type term1Expr struct {
	base
	b byte
}

func (e *term1Expr) Label(name string) Expr { e.lbl = name; return e }
func (e *term1Expr) print() string          { return quote(string(e.b)) }

func (e *term1Expr) eval(m *Matcher) evalResult {
	if m.abortSet {
		return evalResult{}
	}

	start := m.pos
	if start < len(m.input) && m.input[start] == e.b {
		m.pos = start + 1
		return evalResult{tree: newTerminalTree(m.input, start, start, e.lbl), matched: true}
	}

	m.logFail(e)
	return evalResult{}
}

type term2Expr struct {
	base
	a, b byte
}

func (e *term2Expr) Label(name string) Expr { e.lbl = name; return e }
func (e *term2Expr) print() string          { return quote(string([]byte{e.a, e.b})) }

func (e *term2Expr) eval(m *Matcher) evalResult {
	if m.abortSet {
		return evalResult{}
	}

	start := m.pos
	if start+1 < len(m.input) && m.input[start] == e.a && m.input[start+1] == e.b {
		m.pos = start + 2
		return evalResult{tree: newTerminalTree(m.input, start, start+1, e.lbl), matched: true}
	}

	m.logFail(e)
	return evalResult{}
}

type eitherExpr struct {
	base
	a, b Expr
}

func (e *eitherExpr) Label(name string) Expr { e.lbl = name; return e }
func (e *eitherExpr) print() string          { return joinPrint([]Expr{e.a, e.b}, " / ") }

func (e *eitherExpr) eval(m *Matcher) evalResult {
	if m.abortSet {
		return evalResult{}
	}

	start := m.pos

	for _, sub := range [2]Expr{e.a, e.b} {
		if isLookahead(sub) {
			continue
		}

		m.pos = start
		res := sub.eval(m)

		if m.abortSet {
			m.pos = start
			return evalResult{}
		}

		if res.matched {
			return evalResult{tree: newChoiceTree(m.input, start, m.pos-1, e.lbl, res.tree), matched: true}
		}
	}

	m.pos = start
	return evalResult{}
}

type bothExpr struct {
	base
	a, b Expr
}

func (e *bothExpr) Label(name string) Expr { e.lbl = name; return e }
func (e *bothExpr) print() string          { return joinPrint([]Expr{e.a, e.b}, " ") }

func (e *bothExpr) eval(m *Matcher) evalResult {
	if m.abortSet {
		return evalResult{}
	}

	start := m.pos
	syntactic := m.currentSyntactic()

	var children []ParseTree

	res := e.a.eval(m)
	if m.abortSet {
		m.pos = start
		return evalResult{}
	}
	if !res.matched {
		m.pos = start
		return evalResult{}
	}
	if !isLookahead(e.a) {
		children = append(children, res.tree)
	}

	if syntactic {
		m.skip()
		if m.abortSet {
			m.pos = start
			return evalResult{}
		}
	}

	res2 := e.b.eval(m)
	if m.abortSet {
		m.pos = start
		return evalResult{}
	}
	if !res2.matched {
		m.pos = start
		return evalResult{}
	}
	if !isLookahead(e.b) {
		children = append(children, res2.tree)
	}

	return evalResult{tree: newSequenceTree(m.input, start, m.pos-1, e.lbl, children), matched: true}
}

type threeExpr struct {
	base
	a, b, c Expr
}

func (e *threeExpr) Label(name string) Expr { e.lbl = name; return e }
func (e *threeExpr) print() string          { return joinPrint([]Expr{e.a, e.b, e.c}, " ") }

func (e *threeExpr) eval(m *Matcher) evalResult {
	if m.abortSet {
		return evalResult{}
	}

	start := m.pos
	syntactic := m.currentSyntactic()

	var children []ParseTree

	for i, sub := range [3]Expr{e.a, e.b, e.c} {
		if i > 0 && syntactic {
			m.skip()
			if m.abortSet {
				m.pos = start
				return evalResult{}
			}
		}

		res := sub.eval(m)
		if m.abortSet {
			m.pos = start
			return evalResult{}
		}
		if !res.matched {
			m.pos = start
			return evalResult{}
		}
		if !isLookahead(sub) {
			children = append(children, res.tree)
		}
	}

	return evalResult{tree: newSequenceTree(m.input, start, m.pos-1, e.lbl, children), matched: true}
}

// negByteExpr is Neg applied to a single-byte Term; equivalent to
// negLookAheadExpr{sub: term1Expr} for such a common case, kept as its
// own type so dsl.go can recognize and select it. It delegates the byte
// compare to term1Expr.eval rather than reimplementing it, so its
// failure logging stays unified with the general path.
type negByteExpr struct {
	base
	b byte
}

func (e *negByteExpr) Label(name string) Expr { e.lbl = name; return e }
func (e *negByteExpr) print() string          { return "!" + quote(string(e.b)) }

func (e *negByteExpr) eval(m *Matcher) evalResult {
	if m.abortSet {
		return evalResult{}
	}

	start := m.pos
	res := (&term1Expr{b: e.b}).eval(m)
	m.pos = start

	if res.matched {
		return evalResult{}
	}

	return evalResult{tree: newNegLookAheadTree(m.input, start, start-1, e.lbl), matched: true}
}
