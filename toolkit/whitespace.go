package toolkit

import "github.com/mpaulk/pegrec"

// WhitespaceChar matches a single space, tab, newline, carriage return,
// form feed, or vertical tab.
var WhitespaceChar = pegrec.Alt(" ", "\t", "\n", "\r", "\f", "\v")

// Whitespace matches a run of zero or more whitespace characters.
var Whitespace = pegrec.Star(WhitespaceChar)
