package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/impodog/leas/cook"
	"github.com/impodog/leas/env"
	"github.com/impodog/leas/lexer"
	"github.com/impodog/leas/slice"
	"github.com/impodog/leas/value"
)

// nativeFunc wraps a Go closure as a Func value, the shape every builtin in
// the final stdlib package uses; body ignores self, matches shape spec.md
// §4.4 describes for built-in functions.
func nativeFunc(name string, body func(arg value.Value) (value.Value, error)) value.Value {
	fn := &value.Func{Name: name, Body: func(_ value.Value, arg value.Value) (value.Value, error) {
		return body(arg)
	}}
	return value.FromResource(value.NewResource(fn, "fn"))
}

func testRoot(t *testing.T) *env.Map {
	t.Helper()
	root := env.NewRoot(env.NewEnv())
	root.Set("add", nativeFunc("add", func(arg value.Value) (value.Value, error) {
		out, err := value.Listed().WithSingles("a", "b").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, _ := out["a"].AsInt()
		b, _ := out["b"].AsInt()
		return value.Int(a + b), nil
	}))
	root.Set("lt", nativeFunc("lt", func(arg value.Value) (value.Value, error) {
		out, err := value.Listed().WithSingles("a", "b").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, _ := out["a"].AsInt()
		b, _ := out["b"].AsInt()
		return value.Bool(a < b), nil
	}))
	return root
}

func runSource(t *testing.T, m *env.Map, src string) value.Value {
	t.Helper()
	toks, err := lexer.Lex(src)
	require.NoError(t, err)
	sl, err := slice.Build(toks)
	require.NoError(t, err)
	st, err := cook.Cook(sl)
	require.NoError(t, err)
	v, err := Run(st, m)
	require.NoError(t, err)
	return v
}

func TestScenario1AddCall(t *testing.T) {
	m := testRoot(t)
	v := runSource(t, m, "add(1, 2)")
	i, ok := v.AsInt()
	require.True(t, ok)
	require.Equal(t, int64(3), i)
}

func TestScenario2Reassignment(t *testing.T) {
	m := testRoot(t)
	v := runSource(t, m, "x = 10\nx = add(x, 1)\nx")
	i, _ := v.AsInt()
	require.Equal(t, int64(11), i)
}

func TestScenario3FnAndCall(t *testing.T) {
	m := testRoot(t)
	v := runSource(t, m, "f = fn { add(arg, 1) }\nf(41)")
	i, _ := v.AsInt()
	require.Equal(t, int64(42), i)
}

func TestScenario4DoSnapshotsBareBlock(t *testing.T) {
	m := testRoot(t)
	v := runSource(t, m, "{ a = 1\na } do { a = 2\na }")
	i, _ := v.AsInt()
	require.Equal(t, int64(2), i)
}

func TestScenario5ThenElse(t *testing.T) {
	m := testRoot(t)
	v := runSource(t, m, "then true 1 else 2")
	i, _ := v.AsInt()
	require.Equal(t, int64(1), i)

	m2 := testRoot(t)
	v2 := runSource(t, m2, "then false 1 else 2")
	i2, _ := v2.AsInt()
	require.Equal(t, int64(2), i2)
}

func TestScenario6Repeat(t *testing.T) {
	m := testRoot(t)
	v := runSource(t, m, "i = 0\nrepeat lt(i, 3) { i = add(i, 1) }\ni")
	i, _ := v.AsInt()
	require.Equal(t, int64(3), i)
}

func TestFnSeesItselfForRecursion(t *testing.T) {
	m := testRoot(t)
	// sum assigns to the same map Fn closed over (defMap == m at
	// construction time), so by the time sum(3) runs, "sum" already
	// resolves inside the function's own body.
	v := runSource(t, m, "sum = fn { then lt(arg, 1) 0 else add(arg, sum(add(arg, -1))) }\nsum(3)")
	i, ok := v.AsInt()
	require.True(t, ok)
	require.Equal(t, int64(6), i)
}

func TestDotAndMetaFallback(t *testing.T) {
	m := testRoot(t)
	v := runSource(t, m, "outer = map { x = 1 }\nmeta_holder = map { meta = outer\ny = 2 }\nmeta_holder.x")
	i, ok := v.AsInt()
	require.True(t, ok)
	require.Equal(t, int64(1), i)
}

func TestExternFailsWithoutParent(t *testing.T) {
	m := testRoot(t)
	toks, err := lexer.Lex("extern q")
	require.NoError(t, err)
	sl, err := slice.Build(toks)
	require.NoError(t, err)
	st, err := cook.Cook(sl)
	require.NoError(t, err)
	_, err = Run(st, m)
	require.Error(t, err)
}

func TestAcqFailsOnDeadWeak(t *testing.T) {
	m := testRoot(t)
	r := value.NewResource("payload", "s")
	w := r.Downgrade()
	r.Release()
	m.Set("w", value.FromWeak(w))
	toks, err := lexer.Lex("acq w")
	require.NoError(t, err)
	sl, err := slice.Build(toks)
	require.NoError(t, err)
	st, err := cook.Cook(sl)
	require.NoError(t, err)
	_, err = Run(st, m)
	require.Error(t, err)
}

func TestMatcherShapeMismatchThroughEval(t *testing.T) {
	m := testRoot(t)
	toks, err := lexer.Lex("add(1)")
	require.NoError(t, err)
	sl, err := slice.Build(toks)
	require.NoError(t, err)
	st, err := cook.Cook(sl)
	require.NoError(t, err)
	_, err = Run(st, m)
	require.Error(t, err)
}

func TestMoveRemovesBinding(t *testing.T) {
	m := testRoot(t)
	v := runSource(t, m, "x = 9\ny = move x\ny")
	i, _ := v.AsInt()
	require.Equal(t, int64(9), i)
	_, ok := m.GetLocal("x")
	require.False(t, ok)
}

func TestUseBindsTerminalSegment(t *testing.T) {
	m := testRoot(t)
	v := runSource(t, m, "inner = map { z = 77 }\nuse inner.z\nz")
	i, _ := v.AsInt()
	require.Equal(t, int64(77), i)
}
