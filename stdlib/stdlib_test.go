package stdlib

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/impodog/leas/env"
	"github.com/impodog/leas/value"
)

// loadModule drives the same `_init_<name>` handshake eval.Import uses: it
// fetches the initializer Install bound on root, invokes it with a fresh
// child map as its argument, and returns that now-populated map.
func loadModule(t *testing.T, root *env.Map, name string) *env.Map {
	t.Helper()
	initVal, ok := root.Get("_init_" + name)
	require.True(t, ok)
	initRes, ok := initVal.AsRes()
	require.True(t, ok)
	initFn, ok := value.As[value.Func](initRes)
	require.True(t, ok)

	child := root.NewChild()
	mapArg := value.FromResource(value.NewResource(child, "map"))
	_, err := initFn.Call(value.Null(), mapArg)
	require.NoError(t, err)
	return child
}

func callFn(t *testing.T, mod *env.Map, name string, arg value.Value) value.Value {
	t.Helper()
	v, ok := mod.Get(name)
	require.True(t, ok)
	r, ok := v.AsRes()
	require.True(t, ok)
	f, ok := value.As[value.Func](r)
	require.True(t, ok)
	out, err := f.Call(value.Null(), arg)
	require.NoError(t, err)
	return out
}

func listed(vals ...value.Value) value.Value {
	return value.FromResource(value.NewSequenceResource(vals))
}

func TestInstallRegistersEveryModuleInitializer(t *testing.T) {
	root := env.NewRoot(env.NewEnv())
	Install(root)
	for _, name := range []string{"bool", "int", "float", "uint", "str", "vec", "sys", "toml"} {
		_, ok := root.Get("_init_" + name)
		require.Truef(t, ok, "missing _init_%s", name)
	}
}

func TestIntArithmeticAndComparison(t *testing.T) {
	root := env.NewRoot(env.NewEnv())
	Install(root)
	mod := loadModule(t, root, "int")

	sum := callFn(t, mod, "add", listed(value.Int(2), value.Int(3)))
	i, ok := sum.AsInt()
	require.True(t, ok)
	require.Equal(t, int64(5), i)

	lt := callFn(t, mod, "lt", listed(value.Int(2), value.Int(3)))
	b, ok := lt.AsBool()
	require.True(t, ok)
	require.True(t, b)
}

func TestIntDivByZeroErrors(t *testing.T) {
	root := env.NewRoot(env.NewEnv())
	Install(root)
	mod := loadModule(t, root, "int")

	v, ok := mod.Get("div")
	require.True(t, ok)
	r, _ := v.AsRes()
	f, _ := value.As[value.Func](r)
	_, err := f.Call(value.Null(), listed(value.Int(1), value.Int(0)))
	require.Error(t, err)
}

func TestBoolOps(t *testing.T) {
	root := env.NewRoot(env.NewEnv())
	Install(root)
	mod := loadModule(t, root, "bool")

	and := callFn(t, mod, "and", listed(value.Bool(true), value.Bool(false)))
	b, _ := and.AsBool()
	require.False(t, b)

	not := callFn(t, mod, "not", value.Bool(false))
	b2, _ := not.AsBool()
	require.True(t, b2)
}

func TestStrUpperSplitJoin(t *testing.T) {
	root := env.NewRoot(env.NewEnv())
	Install(root)
	mod := loadModule(t, root, "str")

	upper := callFn(t, mod, "upper", value.FromResource(value.NewStringResource("hi")))
	r, _ := upper.AsRes()
	s, _ := value.AsString(r)
	require.Equal(t, "HI", s)

	split := callFn(t, mod, "split", listed(
		value.FromResource(value.NewStringResource("a,b,c")),
		value.FromResource(value.NewStringResource(",")),
	))
	parts, ok := value.AsSequence(split)
	require.True(t, ok)
	require.Len(t, parts, 3)

	joined := callFn(t, mod, "join", listed(split, value.FromResource(value.NewStringResource("-"))))
	jr, _ := joined.AsRes()
	js, _ := value.AsString(jr)
	require.Equal(t, "a-b-c", js)
}

func TestStrGetSetMutatesInPlace(t *testing.T) {
	root := env.NewRoot(env.NewEnv())
	Install(root)
	mod := loadModule(t, root, "str")

	s := value.FromResource(value.NewStringResource("cat"))

	got := callFn(t, mod, "get", listed(s, value.Int(1)))
	u, ok := got.AsUint()
	require.True(t, ok)
	require.Equal(t, uint64('a'), u)

	callFn(t, mod, "set", listed(s, value.Int(0), value.Uint(uint64('b'))))
	r, _ := s.AsRes()
	v, _ := value.AsString(r)
	require.Equal(t, "bat", v)
}

func TestSysSameAndIsStop(t *testing.T) {
	root := env.NewRoot(env.NewEnv())
	Install(root)
	mod := loadModule(t, root, "sys")

	same := callFn(t, mod, "same", listed(value.Int(3), value.Int(3)))
	b, _ := same.AsBool()
	require.True(t, b)

	stopCheck := callFn(t, mod, "is_stop", value.Stop())
	b2, _ := stopCheck.AsBool()
	require.True(t, b2)
}

func TestVecPushPopLen(t *testing.T) {
	root := env.NewRoot(env.NewEnv())
	Install(root)
	mod := loadModule(t, root, "vec")

	v := callFn(t, mod, "new", value.Null())
	v = callFn(t, mod, "push", listed(v, value.Int(1)))
	v = callFn(t, mod, "push", listed(v, value.Int(2)))

	ln := callFn(t, mod, "len", v)
	i, _ := ln.AsInt()
	require.Equal(t, int64(2), i)

	popped := callFn(t, mod, "pop", v)
	pi, _ := popped.AsInt()
	require.Equal(t, int64(2), pi)

	ln2 := callFn(t, mod, "len", v)
	i2, _ := ln2.AsInt()
	require.Equal(t, int64(1), i2)
}

func TestVecAtOutOfRangeErrors(t *testing.T) {
	root := env.NewRoot(env.NewEnv())
	Install(root)
	mod := loadModule(t, root, "vec")

	v := callFn(t, mod, "new", value.Null())
	vv, ok := mod.Get("at")
	require.True(t, ok)
	r, _ := vv.AsRes()
	f, _ := value.As[value.Func](r)
	_, err := f.Call(value.Null(), listed(v, value.Int(0)))
	require.Error(t, err)
}
