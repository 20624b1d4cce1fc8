package toolkit

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/mpaulk/pegrec"
)

// ErrRangeError is returned when a digit in a literal is out of range for
// the base that literal's prefix implies.
var ErrRangeError = errors.New("toolkit: digit out of range for base")

var (
	hexDigit     = pegrec.Choice(pegrec.Range('0', '9'), pegrec.Range('a', 'f'), pegrec.Range('A', 'F'))
	octalDigit   = pegrec.Range('0', '7')
	decimalDigit = pegrec.Range('0', '9')
	binaryDigit  = pegrec.Range('0', '1')

	sign = pegrec.Alt("-", "+")
)

func digitRun(digit pegrec.Expr) pegrec.Expr {
	return pegrec.Seq(digit, pegrec.Star(pegrec.Choice(pegrec.Term("_"), digit)))
}

// Grammar fragments for numeric literals. A grammar that embeds any of
// these must call AddNumberRules on its Matcher before Match.
var (
	HexInt     = pegrec.Apply("hex-int")
	BinaryInt  = pegrec.Apply("binary-int")
	OctalInt   = pegrec.Apply("octal-int")
	DecimalInt = pegrec.Apply("decimal-int")

	UnsignedInt = pegrec.Apply("unsigned-int")
	Int         = pegrec.Apply("int")

	UnsignedFloat = pegrec.Apply("unsigned-float")
	Float         = pegrec.Apply("float")

	SciNum = pegrec.Apply("sci")
	Number = pegrec.Apply("number")
)

// AddNumberRules registers the numeric-literal rules this package exposes.
// It's idempotent; calling it more than once just re-overwrites the same
// bodies (AddRule always overwrites).
func AddNumberRules(m *pegrec.Matcher) {
	m.AddRule("hex-int", pegrec.Seq(pegrec.Term("0x"), digitRun(hexDigit)))
	m.AddRule("binary-int", pegrec.Seq(pegrec.Term("0b"), digitRun(binaryDigit)))
	m.AddRule("octal-int", pegrec.Choice(
		pegrec.Seq(pegrec.Term("0o"), digitRun(octalDigit)),
		pegrec.Seq(pegrec.Term("0"), digitRun(octalDigit)),
	))
	m.AddRule("decimal-int", digitRun(decimalDigit))

	m.AddRule("unsigned-int", pegrec.Choice(HexInt, BinaryInt, OctalInt, DecimalInt))
	m.AddRule("int", pegrec.Seq(pegrec.Opt(sign), UnsignedInt))

	m.AddRule("unsigned-float", pegrec.Seq(DecimalInt, pegrec.Term("."), DecimalInt))
	m.AddRule("float", pegrec.Seq(pegrec.Opt(sign), UnsignedFloat))

	m.AddRule("sci", pegrec.Seq(
		pegrec.Choice(Float, UnsignedInt),
		pegrec.Alt("e", "E"),
		pegrec.Opt(sign),
		DecimalInt,
	))

	m.AddRule("number", pegrec.Choice(SciNum, Float, Int))
}

// NumberValue is the decoded form of a numeric literal: a base and a
// digit string for the integer part, plus, for floating-point and
// scientific-notation literals, a fractional digit string and an
// exponent.
type NumberValue struct {
	Base     int
	Str      string
	Negative bool

	PostDecimal string
	Power       *NumberValue
}

// Dup returns a shallow copy of n.
func (n *NumberValue) Dup() *NumberValue {
	nw := *n
	return &nw
}

func lower(c byte) byte { return c | ('x' - 'X') }

func digToByte(c byte) (byte, error) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', nil
	case 'A' <= c && c <= 'Z':
		return c - 'A' + 10, nil
	case 'a' <= c && c <= 'z':
		return lower(c) - 'a' + 10, nil
	default:
		return 0, fmt.Errorf("toolkit: %q is not a digit", c)
	}
}

func asBigInt(str string, base int64) (*big.Int, error) {
	acc := new(big.Int)
	b := big.NewInt(base)

	for i := 0; i < len(str); i++ {
		if str[i] == '_' {
			continue
		}

		d, err := digToByte(str[i])
		if err != nil {
			return nil, err
		}
		if int64(d) >= base {
			return nil, ErrRangeError
		}

		acc.Mul(acc, b)
		acc.Add(acc, big.NewInt(int64(d)))
	}

	return acc, nil
}

// AsBigInt returns the integer literal's magnitude as a big.Int. It does
// not apply the literal's sign; see AsBig for a value that does.
func (n *NumberValue) AsBigInt() (*big.Int, error) {
	return asBigInt(n.Str, int64(n.Base))
}

// AsBig returns either a *big.Int or a *big.Rat, depending on whether n
// carries a fractional part or exponent.
func (n *NumberValue) AsBig() (interface{}, error) {
	if n.PostDecimal == "" && n.Power == nil {
		numb, err := n.AsBigInt()
		if err != nil {
			return nil, err
		}
		if n.Negative {
			numb.Neg(numb)
		}
		return numb, nil
	}
	return n.AsBigRat()
}

// AsBigRat returns a big.Rat representation of the number, which retains
// full precision for the fractional part rather than rounding to a
// float64.
func (n *NumberValue) AsBigRat() (*big.Rat, error) {
	numb, err := n.AsBigInt()
	if err != nil {
		return nil, err
	}

	base := big.NewInt(int64(n.Base))
	denom := big.NewInt(1)

	if n.PostDecimal != "" {
		rhs, err := asBigInt(n.PostDecimal, int64(n.Base))
		if err != nil {
			return nil, err
		}

		frac := big.NewInt(1)
		for i := 0; i < len(n.PostDecimal); i++ {
			if n.PostDecimal[i] == '_' {
				continue
			}
			frac.Mul(frac, base)
		}

		numb.Mul(numb, frac)
		numb.Add(numb, rhs)
		denom = frac
	}

	if n.Negative {
		numb.Neg(numb)
	}

	if n.Power != nil {
		pw, err := n.Power.AsBigInt()
		if err != nil {
			return nil, err
		}

		powBase := big.NewInt(int64(n.Power.Base))
		factor := new(big.Int).Exp(powBase, pw, nil)

		if n.Power.Negative {
			denom = new(big.Int).Mul(denom, factor)
		} else {
			numb = new(big.Int).Mul(numb, factor)
		}
	}

	return new(big.Rat).SetFrac(numb, denom), nil
}

// AsInt returns the number as a Go int, with sign applied.
func (n *NumberValue) AsInt() (int, error) {
	bi, err := n.AsBigInt()
	if err != nil {
		return 0, err
	}
	if n.Negative {
		bi.Neg(bi)
	}
	return int(bi.Int64()), nil
}

// AsFloat64 returns the number as a Go float64. Large or high-precision
// values lose precision in the conversion; use AsBigRat to avoid that.
func (n *NumberValue) AsFloat64() (float64, error) {
	r, err := n.AsBigRat()
	if err != nil {
		return 0, err
	}
	v, _ := r.Float64()
	return v, nil
}

// ParseNumber walks the ApplyTree produced by matching Number, Int,
// Float, SciNum, or any of the individual base rules, and decodes it
// into a NumberValue. There is no semantic-action machinery in this
// engine to attach a value during the match itself, so decoding happens
// afterward, directly off the tree's rule names and matched text.
func ParseNumber(tree pegrec.ParseTree) (*NumberValue, error) {
	apply, ok := tree.(*pegrec.ApplyTree)
	if !ok {
		return nil, errors.New("toolkit: ParseNumber requires an ApplyTree")
	}

	switch apply.Rule {
	case "hex-int":
		return &NumberValue{Base: 16, Str: apply.Text()[2:]}, nil
	case "binary-int":
		return &NumberValue{Base: 2, Str: apply.Text()[2:]}, nil
	case "octal-int":
		text := apply.Text()
		if len(text) >= 2 && lower(text[1]) == 'o' {
			return &NumberValue{Base: 8, Str: text[2:]}, nil
		}
		return &NumberValue{Base: 8, Str: text[1:]}, nil
	case "decimal-int":
		return &NumberValue{Base: 10, Str: apply.Text()}, nil

	case "unsigned-int":
		return ParseNumber(unwrapChoice(apply))

	case "int":
		return parseSigned(apply)

	case "unsigned-float":
		// Seq(DecimalInt, Term("."), DecimalInt): the "." literal is its
		// own (ignored) child, so the digit runs are at 0 and 2.
		seq, ok := apply.Child.(*pegrec.SequenceTree)
		if !ok || len(seq.Children) != 3 {
			return nil, errors.New("toolkit: malformed unsigned-float node")
		}
		lhs, err := ParseNumber(seq.Children[0])
		if err != nil {
			return nil, err
		}
		rhs, err := ParseNumber(seq.Children[2])
		if err != nil {
			return nil, err
		}
		lhs = lhs.Dup()
		lhs.PostDecimal = rhs.Str
		return lhs, nil

	case "float":
		return parseSigned(apply)

	case "sci":
		// Seq(Choice(Float, UnsignedInt), Alt("e","E"), Opt(sign), DecimalInt):
		// the exponent marker is its own (ignored) child.
		seq, ok := apply.Child.(*pegrec.SequenceTree)
		if !ok || len(seq.Children) != 4 {
			return nil, errors.New("toolkit: malformed sci node")
		}

		numTree := seq.Children[0]
		if ch, ok := numTree.(*pegrec.ChoiceTree); ok {
			numTree = ch.Chosen
		}
		num, err := ParseNumber(numTree)
		if err != nil {
			return nil, err
		}

		power, err := ParseNumber(seq.Children[3])
		if err != nil {
			return nil, err
		}
		if opt, ok := seq.Children[2].(*pegrec.OptionalTree); ok && opt.Child != nil {
			power = power.Dup()
			power.Negative = opt.Child.Text() == "-"
		}

		ret := num.Dup()
		ret.Power = power
		return ret, nil

	case "number":
		return ParseNumber(unwrapChoice(apply))

	default:
		return nil, fmt.Errorf("toolkit: unrecognized number rule %q", apply.Rule)
	}
}

// parseSigned handles int and float, both of which are Seq(Opt(sign),
// unsigned) — two children, the first an Optional wrapping the sign
// byte if present.
func parseSigned(apply *pegrec.ApplyTree) (*NumberValue, error) {
	seq, ok := apply.Child.(*pegrec.SequenceTree)
	if !ok || len(seq.Children) != 2 {
		return nil, fmt.Errorf("toolkit: malformed %s node", apply.Rule)
	}

	num, err := ParseNumber(seq.Children[1])
	if err != nil {
		return nil, err
	}

	if opt, ok := seq.Children[0].(*pegrec.OptionalTree); ok && opt.Child != nil {
		num = num.Dup()
		num.Negative = opt.Child.Text() == "-"
	}

	return num, nil
}

// unwrapChoice descends through the ChoiceTree an Apply over a Choice
// rule produces, returning the alternative that actually matched.
func unwrapChoice(apply *pegrec.ApplyTree) pegrec.ParseTree {
	if ch, ok := apply.Child.(*pegrec.ChoiceTree); ok {
		return ch.Chosen
	}
	return apply.Child
}
