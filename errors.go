package pegrec

// GrammarError reports a fatal, unrecoverable defect in a grammar: an Apply
// referencing an unknown rule, or a MutexAlt whose members are not all the
// same length. An unknown rule surfaces immediately as the error returned
// from Match; a MutexAlt width mismatch panics with a *GrammarError when Alt
// builds the expression. It is never produced as an ordinary match failure.
type GrammarError struct {
	Msg string
}

func (e *GrammarError) Error() string {
	return "grammar error: " + e.Msg
}

// InvariantViolation indicates a bug in the matcher itself: a call-stack
// frame popped out of order, or state left behind after Match returns. It
// is also the panic raised when seed growth exceeds the cap set with
// WithMaxSeedIterations. It is always a panic, never a returned error.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Msg
}
