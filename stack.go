package pegrec

import "golang.org/x/exp/slices"

// applyFrame is the ApplyCall frame from spec §3: one per in-progress
// Apply evaluation. seed/hasSeed are written by a descendant frame during
// seed growth and read back when the abort flag targets this frame.
type applyFrame struct {
	rule          string
	pos           int
	leftRecursive bool
	seed          ParseTree
	hasSeed       bool
}

// callStack is the explicit, searchable record of in-progress Apply
// applications (C4). The algorithm needs to scan back through it to
// detect left recursion; the host call stack alone can't be inspected
// this way.
type callStack struct {
	frames []*applyFrame
}

func (s *callStack) push(f *applyFrame) {
	s.frames = append(s.frames, f)
}

func (s *callStack) pop(f *applyFrame) {
	n := len(s.frames)
	if n == 0 || s.frames[n-1] != f {
		panic(&InvariantViolation{Msg: "popped frame is not the top of the call stack"})
	}
	s.frames = s.frames[:n-1]
}

// findAtPos returns the most recent frame for rule at pos, scanning from
// the top, or nil.
func (s *callStack) findAtPos(rule string, pos int) *applyFrame {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if f := s.frames[i]; f.rule == rule && f.pos == pos {
			return f
		}
	}
	return nil
}

// findLRAnywhere returns the most recent left-recursive frame for rule
// anywhere on the stack, or nil.
func (s *callStack) findLRAnywhere(rule string) *applyFrame {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if f := s.frames[i]; f.rule == rule && f.leftRecursive {
			return f
		}
	}
	return nil
}

func (s *callStack) top() *applyFrame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *callStack) empty() bool {
	return len(s.frames) == 0
}

// ruleChain returns the rule names on the stack, bottom to top, as an
// independent slice — used only for trace logging, where handing out an
// aliased view of the live stack would let a log call observe frames
// popped out from under it mid-format.
func (s *callStack) ruleChain() []string {
	names := make([]string, len(s.frames))
	for i, f := range s.frames {
		names[i] = f.rule
	}
	return slices.Clone(names)
}
