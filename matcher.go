package pegrec

import "github.com/hashicorp/go-hclog"

// Matcher is the driver (C6): it owns the input cursor, the explicit call
// stack, the growing table, the memo table, the failure log, and the
// indentation state, and exposes Match as the single entry point. A
// Matcher is reusable across calls to Match — every call resets all
// mutable state first — but one Matcher must not be used from more than
// one goroutine at a time (spec §5).
type Matcher struct {
	mode   Mode
	rules  map[string]Expr
	logger hclog.Logger

	memoEnabled       bool
	maxSeedIterations int

	input string
	pos   int

	stack   callStack
	growing *growingTable
	memo    *memoTable
	failLog *failureLog
	indent  indentState

	abortSet    bool
	abortTarget *applyFrame

	skipApply *applyExpr
}

// NewMatcher constructs a Matcher for the given mode.
func NewMatcher(mode Mode, opts ...Option) *Matcher {
	m := &Matcher{
		mode:        mode,
		rules:       map[string]Expr{},
		logger:      hclog.L(),
		memoEnabled: true,
		failLog:     newFailureLog(),
	}

	for _, o := range opts {
		o(m)
	}

	return m
}

// AddRule adds or replaces the body of name; repeated names overwrite.
func (m *Matcher) AddRule(name string, body Expr) {
	m.rules[name] = body
}

func (m *Matcher) reset(input string) {
	m.input = input
	m.pos = 0
	m.stack = callStack{}
	m.growing = newGrowingTable()
	m.memo = newMemoTable()
	m.failLog = newFailureLog()
	m.indent.reset()
	m.abortSet = false
	m.abortTarget = nil

	if _, ok := m.rules["skip"]; !ok {
		m.rules["skip"] = defaultSkipExpr()
	}
	m.skipApply = &applyExpr{rule: "skip"}
}

// Match attempts to parse input starting from startRule. It returns
// (nil, nil) for an ordinary non-match (including a match that only
// consumes a proper prefix), and a non-nil error only for a GrammarError
// (spec §4.6/§7). It panics on InvariantViolation, which indicates a bug
// in the matcher rather than anything the caller can act on.
func (m *Matcher) Match(input, startRule string) (tree ParseTree, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ge, ok := r.(*GrammarError); ok {
				tree, err = nil, ge
				return
			}
			panic(r)
		}
	}()

	m.reset(input)

	start := &applyExpr{rule: startRule}
	res := start.eval(m)

	if !m.stack.empty() {
		panic(&InvariantViolation{Msg: "call stack not empty after match"})
	}
	if !m.growing.empty() {
		panic(&InvariantViolation{Msg: "growing table not empty after match"})
	}
	if m.abortSet {
		panic(&InvariantViolation{Msg: "abort flag set after match"})
	}

	if !res.matched || m.pos != len(input) {
		return nil, nil
	}

	return res.tree, nil
}

// applyTraditional runs the ordinary evaluation path for a rule's body:
// consult the memo table when it's safe to (not during active seed
// growth at this position), evaluate the body, catch the abort flag if it
// targets this frame, and otherwise propagate it.
func (m *Matcher) applyTraditional(body Expr, cur *applyFrame) (ParseTree, bool) {
	growing := m.growing.has(cur.rule, cur.pos)

	if m.memoEnabled && !growing {
		if e, ok := m.memo.get(cur.rule, cur.pos); ok {
			m.pos = e.nextPos
			return e.tree, e.ok
		}
	}

	res := body.eval(m)

	if m.abortSet {
		if m.abortTarget == cur {
			m.abortSet = false
			m.abortTarget = nil

			if !cur.hasSeed {
				return nil, false
			}

			m.pos = cur.seed.Finish() + 1
			return cur.seed, true
		}

		return nil, false
	}

	if m.memoEnabled && !growing {
		m.memo.set(cur.rule, cur.pos, res.tree, res.matched, m.pos)
	}

	return res.tree, res.matched
}

// currentSyntactic reports whether the rule currently on top of the call
// stack is syntactic, which governs implicit whitespace skipping (spec
// §4.3).
func (m *Matcher) currentSyntactic() bool {
	f := m.stack.top()
	if f == nil {
		return false
	}
	return IsSyntactic(f.rule)
}

// skip applies the built-in "skip" rule zero or more times.
func (m *Matcher) skip() {
	for {
		mark := m.pos
		res := m.skipApply.eval(m)

		if m.abortSet {
			return
		}
		if !res.matched || m.pos == mark {
			m.pos = mark
			return
		}
	}
}

func (m *Matcher) logFail(e Expr) {
	m.failLog.record(m.pos, e)
}
