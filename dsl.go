package pegrec

import "strconv"

// This file is the constructor DSL from spec §6: the programmatic surface
// external callers use to build grammars. It is the one piece of "external
// collaborator" territory the engine itself must still provide, since
// without it there is no way to construct an Expr at all.

// Apply returns a rule reference by name; names beginning with an
// uppercase letter are syntactic (see grammar.go), everything else is
// lexical.
func Apply(name string) Expr {
	return &applyExpr{rule: name}
}

// Term returns a rule that matches a literal string exactly, or, when the
// literal is "INDENT"/"DEDENT", invokes the indentation engine in Python
// mode (and never matches in Standard mode).
func Term(s string) Expr {
	switch len(s) {
	case 1:
		return &term1Expr{b: s[0]}
	case 2:
		return &term2Expr{a: s[0], b: s[1]}
	default:
		return &terminalExpr{lit: s}
	}
}

// Alt returns a MutexAlt over the given strings, all of which must share
// the same length. A mismatched set is a grammar defect and panics
// immediately with a *GrammarError, per spec §4.6.
func Alt(strs ...string) Expr {
	if len(strs) == 0 {
		panic(&GrammarError{Msg: "Alt requires at least one string"})
	}

	width := len(strs[0])
	set := make(map[string]struct{}, len(strs))

	for _, s := range strs {
		if len(s) != width {
			panic(&GrammarError{Msg: "Alt members must all have the same length"})
		}
		set[s] = struct{}{}
	}

	return &mutexAltExpr{set: set, width: width}
}

// Choice tries each rule in order, committing to the first that matches.
func Choice(rules ...Expr) Expr {
	switch len(rules) {
	case 1:
		return rules[0]
	case 2:
		return &eitherExpr{a: rules[0], b: rules[1]}
	default:
		return &choiceExpr{subs: rules}
	}
}

// Seq matches each rule in order, failing as soon as one does.
func Seq(rules ...Expr) Expr {
	switch len(rules) {
	case 1:
		return rules[0]
	case 2:
		return &bothExpr{a: rules[0], b: rules[1]}
	case 3:
		return &threeExpr{a: rules[0], b: rules[1], c: rules[2]}
	default:
		return &sequenceExpr{subs: rules}
	}
}

// Opt matches rule zero or one times; it never fails except under the
// global abort flag.
func Opt(rule Expr) Expr {
	return &optionalExpr{sub: rule}
}

// Star matches rule zero or more times.
func Star(rule Expr) Expr {
	return &repetitionExpr{sub: rule, min: 0}
}

// Plus matches rule one or more times.
func Plus(rule Expr) Expr {
	return &repetitionExpr{sub: rule, min: 1}
}

// Neg is the negative lookahead predicate !rule.
func Neg(rule Expr) Expr {
	if t, ok := rule.(*term1Expr); ok {
		return &negByteExpr{b: t.b}
	}
	return &negLookAheadExpr{sub: rule}
}

// Pos is the positive lookahead predicate &rule.
func Pos(rule Expr) Expr {
	return &posLookAheadExpr{sub: rule}
}

// Dot matches exactly one decoded Unicode scalar value.
func Dot() Expr {
	return &dotExpr{}
}

// Range returns a MutexAlt over every byte from lo to hi inclusive, the
// grammar-builder equivalent of a regexp character class such as [0-9].
// It's expressed in terms of MutexAlt rather than as its own Expr variant
// because the closed family of nine operators already covers it exactly.
func Range(lo, hi byte) Expr {
	if hi < lo {
		panic(&GrammarError{Msg: "Range requires lo <= hi"})
	}
	strs := make([]string, 0, int(hi-lo)+1)
	for c := int(lo); c <= int(hi); c++ {
		strs = append(strs, string([]byte{byte(c)}))
	}
	return Alt(strs...)
}

// Print renders an expression's label if it has one, otherwise its
// structural description.
func Print(e Expr) string {
	if l := e.label(); l != "" {
		return l
	}
	return e.print()
}

func quote(s string) string {
	return strconv.Quote(s)
}

func joinPrint(subs []Expr, sep string) string {
	s := ""
	for i, sub := range subs {
		if i > 0 {
			s += sep
		}
		s += addParensIfNeeded(sub)
	}
	return s
}

func addParensIfNeeded(e Expr) string {
	switch e.(type) {
	case *choiceExpr, *eitherExpr, *sequenceExpr, *bothExpr, *threeExpr:
		return "(" + Print(e) + ")"
	default:
		return Print(e)
	}
}
