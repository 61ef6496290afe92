package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/impodog/leas/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestNumericLiterals(t *testing.T) {
	toks, err := Lex("42")
	require.NoError(t, err)
	require.Equal(t, token.KInt, toks[0].Kind)
	require.Equal(t, int64(42), toks[0].Int)

	toks, err = Lex("42u")
	require.NoError(t, err)
	require.Equal(t, token.KUint, toks[0].Kind)
	require.Equal(t, uint64(42), toks[0].Uint)

	toks, err = Lex("3.14")
	require.NoError(t, err)
	require.Equal(t, token.KFloat, toks[0].Kind)
	require.InDelta(t, 3.14, toks[0].Float, 1e-9)

	toks, err = Lex("42.")
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.KInt, token.KDot, token.KEnd}, kinds(toks))

	_, err = Lex("3.u")
	require.Error(t, err)
}

func TestNegativeNumberVsMinusOperator(t *testing.T) {
	toks, err := Lex("-5")
	require.NoError(t, err)
	require.Equal(t, token.KInt, toks[0].Kind)
	require.Equal(t, int64(-5), toks[0].Int)
}

func TestStringEscapes(t *testing.T) {
	toks, err := Lex(`"a\nb"`)
	require.NoError(t, err)
	require.Equal(t, "a\nb", toks[0].Str)

	toks, err = Lex(`"a%\nb%"`)
	require.NoError(t, err)
	require.Equal(t, `a\nb`, toks[0].Str)
}

func TestComment(t *testing.T) {
	toks, err := Lex("#x\n1")
	require.NoError(t, err)
	// Comment swallows to end of line; the End from the newline plus the
	// Int(1) plus the trailing implicit End both remain.
	require.Equal(t, []token.Kind{token.KEnd, token.KInt, token.KEnd}, kinds(toks))
	require.Equal(t, int64(1), toks[1].Int)
}

func TestEnclosureSpans(t *testing.T) {
	toks, err := Lex("(1 adds 2)")
	require.NoError(t, err)
	require.Equal(t, token.KEnter, toks[0].Kind)
	closeIdx := int(toks[0].Span) - 1
	require.Equal(t, token.KClose, toks[closeIdx].Kind)
}

func TestMismatchedEnclosure(t *testing.T) {
	_, err := Lex("(1, 2]")
	require.Error(t, err)
}

func TestUnclosedEnclosure(t *testing.T) {
	_, err := Lex("(1 adds 2")
	require.Error(t, err)
}

func TestUnrecognizedCharacter(t *testing.T) {
	_, err := Lex("@")
	require.Error(t, err)
}
