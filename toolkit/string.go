package toolkit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mpaulk/pegrec"
)

// StringValue is the decoded content of a quoted-string literal.
type StringValue struct {
	Value string
}

func quotedBody(quote string) pegrec.Expr {
	escape := pegrec.Seq(pegrec.Term(`\`), pegrec.Dot())
	plain := pegrec.Seq(pegrec.Neg(pegrec.Term(quote)), pegrec.Dot())
	return pegrec.Star(pegrec.Choice(escape, plain))
}

// Grammar fragments for quoted-string literals. A grammar that embeds
// any of these must call AddStringRules on its Matcher before Match.
var (
	DoubleQuotedString = pegrec.Apply("double-quoted-string")
	SingleQuotedString = pegrec.Apply("single-quoted-string")
	String             = pegrec.Apply("string")
)

// AddStringRules registers the quoted-string rules this package exposes.
func AddStringRules(m *pegrec.Matcher) {
	m.AddRule("double-quoted-string", pegrec.Seq(pegrec.Term(`"`), quotedBody(`"`), pegrec.Term(`"`)))
	m.AddRule("single-quoted-string", pegrec.Seq(pegrec.Term(`'`), quotedBody(`'`), pegrec.Term(`'`)))
	m.AddRule("string", pegrec.Choice(DoubleQuotedString, SingleQuotedString))
}

var simpleEscapes = map[byte]byte{
	'a': '\a', 'b': '\b', 'f': '\f', 'n': '\n',
	'r': '\r', 't': '\t', 'v': '\v', '\\': '\\', '\'': '\'', '"': '"',
}

// DecodeString decodes the escape sequences in a quoted-string literal
// matched by DoubleQuotedString, SingleQuotedString, or String, returning
// the content between the quotes. There's no semantic-action machinery
// in this engine to build the value during the match, so the tree's
// matched text is decoded afterward instead of while parsing.
func DecodeString(tree pegrec.ParseTree) (*StringValue, error) {
	apply, ok := tree.(*pegrec.ApplyTree)
	if !ok {
		return nil, fmt.Errorf("toolkit: DecodeString requires an ApplyTree")
	}

	if apply.Rule == "string" {
		return DecodeString(unwrapChoice(apply))
	}

	text := apply.Text()
	if len(text) < 2 {
		return nil, fmt.Errorf("toolkit: %q is too short to be a quoted string", text)
	}
	body := text[1 : len(text)-1]

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			continue
		}

		i++
		switch e := body[i]; e {
		case 'x':
			if i+2 >= len(body) {
				return nil, fmt.Errorf("toolkit: truncated \\x escape")
			}
			v, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("toolkit: bad \\x escape: %w", err)
			}
			b.WriteByte(byte(v))
			i += 2

		case 'u':
			if i+4 >= len(body) {
				return nil, fmt.Errorf("toolkit: truncated \\u escape")
			}
			v, err := strconv.ParseUint(body[i+1:i+5], 16, 32)
			if err != nil {
				return nil, fmt.Errorf("toolkit: bad \\u escape: %w", err)
			}
			b.WriteRune(rune(v))
			i += 4

		case 'U':
			if i+8 >= len(body) {
				return nil, fmt.Errorf("toolkit: truncated \\U escape")
			}
			v, err := strconv.ParseUint(body[i+1:i+9], 16, 32)
			if err != nil {
				return nil, fmt.Errorf("toolkit: bad \\U escape: %w", err)
			}
			b.WriteRune(rune(v))
			i += 8

		default:
			r, ok := simpleEscapes[e]
			if !ok {
				return nil, fmt.Errorf("toolkit: unrecognized escape \\%c", e)
			}
			b.WriteByte(r)
		}
	}

	return &StringValue{Value: b.String()}, nil
}
