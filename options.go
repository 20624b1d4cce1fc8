package pegrec

import "github.com/hashicorp/go-hclog"

// Mode selects between the standard PEG engine and the Python-style mode
// where INDENT/DEDENT pseudo-tokens are synthesized from leading
// whitespace (spec §4.4/§6).
type Mode int

const (
	Standard Mode = iota
	Python
)

// Option configures a Matcher at construction time, following the same
// functional-options shape the teacher parser uses for its own Parser
// type.
type Option func(m *Matcher)

// WithLogger overrides the matcher's hclog.Logger. The default is
// hclog.L().
func WithLogger(l hclog.Logger) Option {
	return func(m *Matcher) { m.logger = l }
}

// WithDebug bumps the logger to Trace level, which makes the matcher log
// every rule entry and exit. It's a convenience over WithLogger for
// callers that don't already have a logger configured.
func WithDebug(on bool) Option {
	return func(m *Matcher) {
		if on {
			m.logger.SetLevel(hclog.Trace)
		}
	}
}

// WithMemoization controls whether ordinary (non-left-recursive) Apply
// results are cached. It defaults to true; the core algorithm is correct
// either way (spec §4.2.2, §9).
func WithMemoization(on bool) Option {
	return func(m *Matcher) { m.memoEnabled = on }
}

// WithMaxSeedIterations bounds the Case-B seed-growing loop (spec §4.2).
// The loop already terminates on its own once growth stops improving;
// this is a backstop against a runaway grammar, not a correctness
// requirement. 0 (the default) means unbounded.
func WithMaxSeedIterations(n int) Option {
	return func(m *Matcher) { m.maxSeedIterations = n }
}
