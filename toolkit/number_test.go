package toolkit

import (
	"testing"

	"github.com/mpaulk/pegrec"
	"github.com/stretchr/testify/require"
)

func newNumberMatcher() *pegrec.Matcher {
	m := pegrec.NewMatcher(pegrec.Standard)
	AddNumberRules(m)
	return m
}

func TestNumbers(t *testing.T) {
	t.Run("matches a base 10 string", func(t *testing.T) {
		r := require.New(t)

		m := newNumberMatcher()
		tree, err := m.Match("10", "number")
		r.NoError(err)
		r.NotNil(tree)

		nv, err := ParseNumber(tree)
		r.NoError(err)

		i, err := nv.AsInt()
		r.NoError(err)
		r.Equal(10, i)
	})

	t.Run("matches a base 16 string", func(t *testing.T) {
		r := require.New(t)

		tests := []struct {
			in  string
			val int
		}{
			{"0x10", 0x10},
			{"0xaf", 0xaf},
			{"0xAD", 0xAD},
			{"0x1aD", 0x1aD},
		}

		for _, rt := range tests {
			m := newNumberMatcher()
			tree, err := m.Match(rt.in, "number")
			r.NoError(err)
			r.NotNil(tree)

			nv, err := ParseNumber(tree)
			r.NoError(err)

			i, err := nv.AsInt()
			r.NoError(err)
			r.Equal(rt.val, i, rt.in)
		}
	})

	t.Run("matches a base 8 string", func(t *testing.T) {
		r := require.New(t)

		tests := []struct {
			in  string
			val int
		}{
			{"0o17", 017},
			{"017", 017},
		}

		for _, rt := range tests {
			m := newNumberMatcher()
			tree, err := m.Match(rt.in, "number")
			r.NoError(err)
			r.NotNil(tree)

			nv, err := ParseNumber(tree)
			r.NoError(err)

			i, err := nv.AsInt()
			r.NoError(err)
			r.Equal(rt.val, i, rt.in)
		}
	})

	t.Run("matches a base 2 string", func(t *testing.T) {
		r := require.New(t)

		m := newNumberMatcher()
		tree, err := m.Match("0b1011", "number")
		r.NoError(err)
		r.NotNil(tree)

		nv, err := ParseNumber(tree)
		r.NoError(err)

		i, err := nv.AsInt()
		r.NoError(err)
		r.Equal(11, i)
	})

	t.Run("applies a leading sign", func(t *testing.T) {
		r := require.New(t)

		m := newNumberMatcher()
		tree, err := m.Match("-42", "number")
		r.NoError(err)
		r.NotNil(tree)

		nv, err := ParseNumber(tree)
		r.NoError(err)

		i, err := nv.AsInt()
		r.NoError(err)
		r.Equal(-42, i)
	})

	t.Run("decodes a floating point literal with AsBigRat", func(t *testing.T) {
		r := require.New(t)

		m := newNumberMatcher()
		tree, err := m.Match("1.5", "number")
		r.NoError(err)
		r.NotNil(tree)

		nv, err := ParseNumber(tree)
		r.NoError(err)

		f, err := nv.AsFloat64()
		r.NoError(err)
		r.InDelta(1.5, f, 0.0001)
	})

	t.Run("decodes scientific notation", func(t *testing.T) {
		r := require.New(t)

		m := newNumberMatcher()
		tree, err := m.Match("3e2", "number")
		r.NoError(err)
		r.NotNil(tree)

		nv, err := ParseNumber(tree)
		r.NoError(err)

		f, err := nv.AsFloat64()
		r.NoError(err)
		r.InDelta(300.0, f, 0.0001)
	})

	t.Run("rejects a digit out of range for its base", func(t *testing.T) {
		r := require.New(t)

		nv := &NumberValue{Base: 2, Str: "102"}
		_, err := nv.AsBigInt()
		r.ErrorIs(err, ErrRangeError)
	})
}
