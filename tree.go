package pegrec

// ParseTree is the closed family of result nodes produced by a successful
// match (C2). Every variant carries a reference to the input it was matched
// against, its span, an optional label, and whatever children its shape
// requires.
type ParseTree interface {
	Input() string
	Start() int
	Finish() int
	Label() string

	// Text returns the slice of Input spanned by this node. Zero-width
	// nodes (Finish == Start-1) return "".
	Text() string
}

type treeBase struct {
	input  string
	start  int
	finish int
	label  string
}

func (t *treeBase) Input() string  { return t.input }
func (t *treeBase) Start() int     { return t.start }
func (t *treeBase) Finish() int    { return t.finish }
func (t *treeBase) Label() string  { return t.label }

func (t *treeBase) Text() string {
	if t.finish < t.start {
		return ""
	}
	return t.input[t.start : t.finish+1]
}

// ApplyTree is the result of a successful Apply: the named rule and the
// tree produced by its body.
type ApplyTree struct {
	treeBase
	Rule  string
	Child ParseTree
}

// TerminalTree is the result of a successful Terminal match (including the
// synthesized INDENT/DEDENT pseudo-tokens).
type TerminalTree struct {
	treeBase
}

// MutexAltTree is the result of a successful MutexAlt match.
type MutexAltTree struct {
	treeBase
}

// ChoiceTree wraps whichever alternative matched.
type ChoiceTree struct {
	treeBase
	Chosen ParseTree
}

// SequenceTree carries the non-lookahead children of a Sequence, in order.
type SequenceTree struct {
	treeBase
	Children []ParseTree
}

// OptionalTree carries the child that matched, or nil if the optional rule
// did not match at this position.
type OptionalTree struct {
	treeBase
	Child ParseTree
}

// RepetitionTree is shared by Repetition0 and Repetition1; Plus is true for
// the latter.
type RepetitionTree struct {
	treeBase
	Children []ParseTree
	Plus     bool
}

// NegLookAheadTree and PosLookAheadTree record a zero-width lookahead
// success; neither ever has children.
type NegLookAheadTree struct {
	treeBase
}

type PosLookAheadTree struct {
	treeBase
}

func newApplyTree(input string, start, finish int, label, rule string, child ParseTree) *ApplyTree {
	return &ApplyTree{treeBase{input, start, finish, label}, rule, child}
}

func newTerminalTree(input string, start, finish int, label string) *TerminalTree {
	return &TerminalTree{treeBase{input, start, finish, label}}
}

func newMutexAltTree(input string, start, finish int, label string) *MutexAltTree {
	return &MutexAltTree{treeBase{input, start, finish, label}}
}

func newChoiceTree(input string, start, finish int, label string, chosen ParseTree) *ChoiceTree {
	return &ChoiceTree{treeBase{input, start, finish, label}, chosen}
}

func newSequenceTree(input string, start, finish int, label string, children []ParseTree) *SequenceTree {
	return &SequenceTree{treeBase{input, start, finish, label}, children}
}

func newOptionalTree(input string, start, finish int, label string, child ParseTree) *OptionalTree {
	return &OptionalTree{treeBase{input, start, finish, label}, child}
}

func newRepetitionTree(input string, start, finish int, label string, children []ParseTree, plus bool) *RepetitionTree {
	return &RepetitionTree{treeBase{input, start, finish, label}, children, plus}
}

func newNegLookAheadTree(input string, start, finish int, label string) *NegLookAheadTree {
	return &NegLookAheadTree{treeBase{input, start, finish, label}}
}

func newPosLookAheadTree(input string, start, finish int, label string) *PosLookAheadTree {
	return &PosLookAheadTree{treeBase{input, start, finish, label}}
}
