package slice

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/impodog/leas/lexer"
)

func build(t *testing.T, src string) Slice {
	t.Helper()
	toks, err := lexer.Lex(src)
	require.NoError(t, err)
	s, err := Build(toks)
	require.NoError(t, err)
	return s
}

func TestEmptyBlockCollapses(t *testing.T) {
	s := build(t, "{}")
	require.Equal(t, KBlock, s.Kind)
	require.Empty(t, s.Children)
	require.True(t, s.Empty())
}

func TestSingleLineUnwrapped(t *testing.T) {
	s := build(t, "1")
	require.Equal(t, KToken, s.Kind)
}

func TestTransparentParens(t *testing.T) {
	s := build(t, "(1 adds 2)")
	require.Equal(t, KLine, s.Kind)
	require.Len(t, s.Children, 3)
}

func TestReservedBracket(t *testing.T) {
	toks, err := lexer.Lex("[1, 2]")
	require.NoError(t, err)
	_, err = Build(toks)
	require.Error(t, err)
}
