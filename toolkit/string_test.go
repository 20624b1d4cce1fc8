package toolkit

import (
	"testing"

	"github.com/mpaulk/pegrec"
	"github.com/stretchr/testify/require"
)

func newStringMatcher() *pegrec.Matcher {
	m := pegrec.NewMatcher(pegrec.Standard)
	AddStringRules(m)
	return m
}

func TestString(t *testing.T) {
	t.Run("matches a simple double-quoted string", func(t *testing.T) {
		r := require.New(t)

		m := newStringMatcher()
		tree, err := m.Match(`"hello"`, "string")
		r.NoError(err)
		r.NotNil(tree)

		sv, err := DecodeString(tree)
		r.NoError(err)
		r.Equal("hello", sv.Value)
	})

	t.Run("matches a simple single-quoted string", func(t *testing.T) {
		r := require.New(t)

		m := newStringMatcher()
		tree, err := m.Match(`'hello'`, "string")
		r.NoError(err)
		r.NotNil(tree)

		sv, err := DecodeString(tree)
		r.NoError(err)
		r.Equal("hello", sv.Value)
	})

	t.Run("decodes simple escapes", func(t *testing.T) {
		r := require.New(t)

		m := newStringMatcher()
		tree, err := m.Match(`"a\nb\tc"`, "string")
		r.NoError(err)
		r.NotNil(tree)

		sv, err := DecodeString(tree)
		r.NoError(err)
		r.Equal("a\nb\tc", sv.Value)
	})

	t.Run("does not stop at an escaped quote", func(t *testing.T) {
		r := require.New(t)

		m := newStringMatcher()
		tree, err := m.Match(`"a\"b"`, "string")
		r.NoError(err)
		r.NotNil(tree)

		sv, err := DecodeString(tree)
		r.NoError(err)
		r.Equal(`a"b`, sv.Value)
	})

	t.Run("passes through a literal multi-byte rune unescaped", func(t *testing.T) {
		r := require.New(t)

		m := newStringMatcher()
		tree, err := m.Match(`"é"`, "string")
		r.NoError(err)
		r.NotNil(tree)

		sv, err := DecodeString(tree)
		r.NoError(err)
		r.Equal("é", sv.Value)
	})

	t.Run("decodes a \\u escape", func(t *testing.T) {
		r := require.New(t)

		m := newStringMatcher()
		tree, err := m.Match("\"\\u00e9\"", "string")
		r.NoError(err)
		r.NotNil(tree)

		sv, err := DecodeString(tree)
		r.NoError(err)
		r.Equal("é", sv.Value)
	})
}
