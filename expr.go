package pegrec

import (
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// Expr is the closed family of the nine PEG operators (C1), plus the
// wildcard leaf Dot is built from. Every variant shares the same eval
// shape and is immutable after construction except for its label, which
// Label sets once at build time.
type Expr interface {
	eval(m *Matcher) evalResult
	Label(name string) Expr
	label() string
	print() string
}

// evalResult is what every eval call returns: either a ParseTree and
// matched=true, or matched=false with Tree left nil.
type evalResult struct {
	tree    ParseTree
	matched bool
}

// base is embedded by every concrete Expr variant; it exists so the label
// accessor has a single implementation while each variant still supplies
// its own Label method (it must, to return itself as an Expr).
type base struct {
	lbl string
}

func (b *base) label() string { return b.lbl }

// isLookahead reports whether e is a NegLookAhead or PosLookAhead, the two
// shapes that contribute no children to an enclosing Sequence/Optional/
// Repetition and are skipped by a top-level Choice.
func isLookahead(e Expr) bool {
	switch e.(type) {
	case *negLookAheadExpr, *negByteExpr, *posLookAheadExpr:
		return true
	default:
		return false
	}
}

// ---- Apply ----

type applyExpr struct {
	base
	rule string
}

func (e *applyExpr) Label(name string) Expr { e.lbl = name; return e }
func (e *applyExpr) print() string          { return e.rule }

func (e *applyExpr) eval(m *Matcher) evalResult {
	if m.abortSet {
		return evalResult{}
	}

	body, ok := m.rules[e.rule]
	if !ok {
		panic(&GrammarError{Msg: "unknown rule: " + e.rule})
	}

	p := m.pos

	prevAtPos := m.stack.findAtPos(e.rule, p)
	thisIsLRAtPos := prevAtPos != nil
	lrAnywhere := m.stack.findLRAnywhere(e.rule)

	cur := &applyFrame{rule: e.rule, pos: p, leftRecursive: thisIsLRAtPos}
	m.stack.push(cur)

	if m.logger.IsTrace() {
		m.logger.Trace("apply", "rule", e.rule, "pos", p, "stack", m.stack.ruleChain())
	}

	var res evalResult

	switch {
	case lrAnywhere != nil && m.growing.has(e.rule, p):
		slot := m.growing.get(e.rule, p)
		if slot.has {
			res = evalResult{tree: slot.tree, matched: true}
			m.pos = slot.tree.Finish() + 1
		} else {
			m.pos = p
			res = evalResult{}
		}

	case thisIsLRAtPos:
		res = e.growSeed(m, body, cur, prevAtPos, p)

	default:
		tree, ok := m.applyTraditional(body, cur)
		res = evalResult{tree: tree, matched: ok}
	}

	m.stack.pop(cur)

	if m.logger.IsTrace() {
		m.logger.Trace("apply done", "rule", e.rule, "pos", p, "matched", res.matched)
	}

	if !res.matched {
		return evalResult{}
	}

	return evalResult{
		tree:    newApplyTree(m.input, cur.pos, m.pos-1, e.lbl, e.rule, res.tree),
		matched: true,
	}
}

// growSeed implements spec §4.2 Case B: this frame is the inner
// left-recursive application; seed growth is driven here but published
// into prevAtPos so the outer, non-recursive caller can claim it.
func (e *applyExpr) growSeed(m *Matcher, body Expr, cur, prevAtPos *applyFrame, p int) evalResult {
	if m.growing.depth(e.rule) == 0 {
		return e.growTopLevelSeed(m, body, cur, prevAtPos, p)
	}

	m.growing.setNone(e.rule, p)
	m.pos = p
	tree, ok := m.applyTraditional(body, cur)
	m.growing.erase(e.rule, p)

	if m.abortSet {
		// This abort belongs to some ancestor frame further down the
		// stack (applyTraditional already tried cur and didn't match
		// it) — propagate it untouched rather than claiming it here.
		return evalResult{}
	}

	if ok && prevAtPos != nil && !prevAtPos.leftRecursive {
		prevAtPos.seed = tree
		prevAtPos.hasSeed = true
		m.abortSet = true
		m.abortTarget = prevAtPos
	}

	return evalResult{}
}

func (e *applyExpr) growTopLevelSeed(m *Matcher, body Expr, cur, prevAtPos *applyFrame, p int) evalResult {
	m.growing.setNone(e.rule, p)

	iterations := 0

	for {
		if m.maxSeedIterations > 0 && iterations >= m.maxSeedIterations {
			panic(&InvariantViolation{Msg: "seed growth for " + e.rule + " exceeded max iterations"})
		}
		iterations++

		// Each iteration is one traditional application of the rule's
		// body, evaluated directly rather than through eval — cur is
		// already on the stack at (rule, p), which is what makes a
		// nested self-reference at the same position see lrAnywhere
		// non-nil and land in Case A instead of recursing into another
		// round of growth.
		m.pos = p
		newTree, newOK := m.applyTraditional(body, cur)

		if m.abortSet {
			// Belongs to an ancestor further down the stack; leave it
			// for that frame to catch on the way back up.
			m.growing.erase(e.rule, p)
			return evalResult{}
		}

		prior := m.growing.get(e.rule, p)

		improved := newOK && (!prior.has || newTree.Finish() > prior.tree.Finish())
		if !improved {
			m.growing.erase(e.rule, p)

			prevAtPos.seed = prior.tree
			prevAtPos.hasSeed = prior.has
			if prior.has {
				m.pos = prior.tree.Finish() + 1
			} else {
				m.pos = p
			}

			m.abortSet = true
			m.abortTarget = prevAtPos

			return evalResult{}
		}

		m.growing.set(e.rule, p, newTree)
	}
}

// ---- Terminal ----

type terminalExpr struct {
	base
	lit string
}

func (e *terminalExpr) Label(name string) Expr { e.lbl = name; return e }
func (e *terminalExpr) print() string          { return quote(e.lit) }

func (e *terminalExpr) eval(m *Matcher) evalResult {
	if m.abortSet {
		return evalResult{}
	}

	switch e.lit {
	case "INDENT":
		return e.evalPseudo(m, m.matchIndent)
	case "DEDENT":
		return e.evalPseudo(m, m.matchDedent)
	}

	start := m.pos
	if hasPrefixAt(m.input, start, e.lit) {
		m.pos = start + len(e.lit)
		return evalResult{tree: newTerminalTree(m.input, start, m.pos-1, e.lbl), matched: true}
	}

	m.logFail(e)
	return evalResult{}
}

func (e *terminalExpr) evalPseudo(m *Matcher, fn func() evalResult) evalResult {
	if m.mode != Python {
		m.logFail(e)
		return evalResult{}
	}

	res := fn()
	if !res.matched {
		m.logFail(e)
		return evalResult{}
	}

	if tt, ok := res.tree.(*TerminalTree); ok {
		tt.label = e.lbl
	}
	return res
}

func hasPrefixAt(input string, pos int, lit string) bool {
	if pos+len(lit) > len(input) {
		return false
	}
	return input[pos:pos+len(lit)] == lit
}

// ---- MutexAlt ----

type mutexAltExpr struct {
	base
	set   map[string]struct{}
	width int
}

func (e *mutexAltExpr) Label(name string) Expr { e.lbl = name; return e }

func (e *mutexAltExpr) print() string {
	s := "{"
	first := true
	for k := range e.set {
		if !first {
			s += ","
		}
		first = false
		s += quote(k)
	}
	return s + "}"
}

func (e *mutexAltExpr) eval(m *Matcher) evalResult {
	if m.abortSet {
		return evalResult{}
	}

	start := m.pos
	if start+e.width > len(m.input) {
		m.logFail(e)
		return evalResult{}
	}

	slice := m.input[start : start+e.width]
	if _, ok := e.set[slice]; ok {
		m.pos = start + e.width
		return evalResult{tree: newMutexAltTree(m.input, start, m.pos-1, e.lbl), matched: true}
	}

	m.logFail(e)
	return evalResult{}
}

// ---- Choice ----

type choiceExpr struct {
	base
	subs []Expr
}

func (e *choiceExpr) Label(name string) Expr { e.lbl = name; return e }

func (e *choiceExpr) print() string {
	return joinPrint(e.subs, " / ")
}

func (e *choiceExpr) eval(m *Matcher) evalResult {
	if m.abortSet {
		return evalResult{}
	}

	start := m.pos

	for _, sub := range e.subs {
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

// ---- Sequence ----

type sequenceExpr struct {
	base
	subs []Expr
}

func (e *sequenceExpr) Label(name string) Expr { e.lbl = name; return e }

func (e *sequenceExpr) print() string {
	return joinPrint(e.subs, " ")
}

func (e *sequenceExpr) eval(m *Matcher) evalResult {
	if m.abortSet {
		return evalResult{}
	}

	start := m.pos
	syntactic := m.currentSyntactic()

	var children []ParseTree

	for i, sub := range e.subs {
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

// ---- Optional ----

type optionalExpr struct {
	base
	sub Expr
}

func (e *optionalExpr) Label(name string) Expr { e.lbl = name; return e }
func (e *optionalExpr) print() string          { return addParensIfNeeded(e.sub) + "?" }

func (e *optionalExpr) eval(m *Matcher) evalResult {
	if m.abortSet {
		return evalResult{}
	}

	start := m.pos
	res := e.sub.eval(m)

	if m.abortSet {
		m.pos = start
		return evalResult{}
	}

	if !res.matched {
		m.pos = start
		return evalResult{tree: newOptionalTree(m.input, start, start-1, e.lbl, nil), matched: true}
	}

	var child ParseTree
	if !isLookahead(e.sub) {
		child = res.tree
	}

	return evalResult{tree: newOptionalTree(m.input, start, m.pos-1, e.lbl, child), matched: true}
}

// ---- Repetition0 / Repetition1 ----

type repetitionExpr struct {
	base
	sub      Expr
	min      int
}

func (e *repetitionExpr) Label(name string) Expr { e.lbl = name; return e }

func (e *repetitionExpr) print() string {
	if e.min == 0 {
		return addParensIfNeeded(e.sub) + "*"
	}
	return addParensIfNeeded(e.sub) + "+"
}

func (e *repetitionExpr) eval(m *Matcher) evalResult {
	if m.abortSet {
		return evalResult{}
	}

	start := m.pos
	syntactic := m.currentSyntactic()

	var children []ParseTree

	for i := 0; ; i++ {
		mark := m.pos

		if i > 0 && syntactic {
			m.skip()
			if m.abortSet {
				m.pos = start
				return evalResult{}
			}
		}

		res := e.sub.eval(m)

		if m.abortSet {
			m.pos = start
			return evalResult{}
		}

		if !res.matched {
			m.pos = mark
			break
		}

		if !isLookahead(e.sub) {
			children = append(children, res.tree)
		}

		if m.pos == mark {
			// No progress; stop rather than loop forever on a
			// zero-width sub-match.
			break
		}
	}

	if len(children) < e.min {
		m.pos = start
		return evalResult{}
	}

	// Detach the returned slice from append's backing array, the same
	// reason the teacher's Many copies its reused results buffer before
	// handing it to a caller.
	return evalResult{tree: newRepetitionTree(m.input, start, m.pos-1, e.lbl, slices.Clone(children), e.min == 1), matched: true}
}

// ---- NegLookAhead / PosLookAhead ----

type negLookAheadExpr struct {
	base
	sub Expr
}

func (e *negLookAheadExpr) Label(name string) Expr { e.lbl = name; return e }
func (e *negLookAheadExpr) print() string          { return "!" + addParensIfNeeded(e.sub) }

func (e *negLookAheadExpr) eval(m *Matcher) evalResult {
	if m.abortSet {
		return evalResult{}
	}

	start := m.pos
	res := e.sub.eval(m)
	m.pos = start

	if m.abortSet {
		return evalResult{}
	}

	if res.matched {
		return evalResult{}
	}

	return evalResult{tree: newNegLookAheadTree(m.input, start, start-1, e.lbl), matched: true}
}

type posLookAheadExpr struct {
	base
	sub Expr
}

func (e *posLookAheadExpr) Label(name string) Expr { e.lbl = name; return e }
func (e *posLookAheadExpr) print() string          { return "&" + addParensIfNeeded(e.sub) }

func (e *posLookAheadExpr) eval(m *Matcher) evalResult {
	if m.abortSet {
		return evalResult{}
	}

	start := m.pos
	res := e.sub.eval(m)
	m.pos = start

	if m.abortSet {
		return evalResult{}
	}

	if !res.matched {
		return evalResult{}
	}

	return evalResult{tree: newPosLookAheadTree(m.input, start, start-1, e.lbl), matched: true}
}

// ---- Dot ----

// dotExpr matches any single decoded Unicode scalar value; it is the
// resolution of spec's dot open question, expressed as its own leaf rather
// than as an enumerated MutexAlt (which would have to list every scalar
// value) or a fixed-width Terminal (which can't decode UTF-8).
type dotExpr struct {
	base
}

func (e *dotExpr) Label(name string) Expr { e.lbl = name; return e }
func (e *dotExpr) print() string          { return "." }

func (e *dotExpr) eval(m *Matcher) evalResult {
	if m.abortSet {
		return evalResult{}
	}

	start := m.pos
	if start >= len(m.input) {
		m.logFail(e)
		return evalResult{}
	}

	_, sz := utf8.DecodeRuneInString(m.input[start:])
	m.pos = start + sz

	return evalResult{tree: newTerminalTree(m.input, start, m.pos-1, e.lbl), matched: true}
}
