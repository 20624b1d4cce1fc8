// Package toolkit collects grammar fragments and plain-Go decoders for the
// syntax most grammars need but shouldn't have to rebuild by hand:
// whitespace, numeric literals, and quoted strings.
package toolkit

import "github.com/mpaulk/pegrec"

// After returns a function that, given a rule, returns a new rule matching
// that rule followed by after. The common use is building token-style rules
// that swallow trailing whitespace:
//
//	token := After(Whitespace)
//	ifRule := token(pegrec.Term("if"))
func After(after pegrec.Expr) func(r pegrec.Expr) pegrec.Expr {
	return func(r pegrec.Expr) pegrec.Expr {
		return pegrec.Seq(r, after)
	}
}
