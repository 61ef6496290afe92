package value

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrimitiveEquality(t *testing.T) {
	require.True(t, Int(3).Equal(Int(3)))
	require.False(t, Int(3).Equal(Int(4)))
	require.False(t, Int(3).Equal(Uint(3)))
}

func TestResourceEqualityIsPointerIdentity(t *testing.T) {
	a := NewResource("hi", "str")
	b := NewResource("hi", "str")
	require.False(t, FromResource(a).Equal(FromResource(b)))
	require.True(t, FromResource(a).Equal(FromResource(a.Clone())))
}

func TestWeakLiveness(t *testing.T) {
	r := NewResource(42, "n")
	w := r.Downgrade()
	require.True(t, w.Alive())
	r.Release()
	require.False(t, w.Alive())
	_, ok := w.Upgrade()
	require.False(t, ok)
}

func TestWeakUpgradeKeepsAliveUntilReleased(t *testing.T) {
	r := NewResource("payload", "s")
	w := r.Downgrade()
	up, ok := w.Upgrade()
	require.True(t, ok)
	// Two strong refs now (r and up); releasing one must not kill the other.
	r.Release()
	require.True(t, w.Alive())
	up.Release()
	require.False(t, w.Alive())
}

func TestVisitMutRejectsReentrantBorrow(t *testing.T) {
	type box struct{ n int }
	r := NewResource(&box{n: 1}, "box")
	_, err := VisitMut(r, func(b *box) (Value, error) {
		_, innerErr := VisitMut(r, func(b2 *box) (Value, error) {
			return Null(), nil
		})
		require.Error(t, innerErr)
		return Int(int64(b.n)), nil
	})
	require.NoError(t, err)
}

func TestVisitMutWrongType(t *testing.T) {
	r := NewResource("a string", "s")
	_, err := VisitMut(r, func(i *int) (Value, error) { return Null(), nil })
	require.Error(t, err)
}

func TestMatcherSingle(t *testing.T) {
	out, err := Single("x").Match(Int(9))
	require.NoError(t, err)
	require.True(t, out["x"].Equal(Int(9)))
}

func TestMatcherListedWithSingles(t *testing.T) {
	seq := NewSequenceResource([]Value{Int(1), Int(2)})
	out, err := Listed().WithSingles("a", "b").Match(FromResource(seq))
	require.NoError(t, err)
	require.True(t, out["a"].Equal(Int(1)))
	require.True(t, out["b"].Equal(Int(2)))
}

func TestMatcherListedWithRestAbsorbsTail(t *testing.T) {
	seq := NewSequenceResource([]Value{Int(1), Int(2), Int(3), Int(4)})
	out, err := Listed().WithSingles("a").WithRest("tail").Match(FromResource(seq))
	require.NoError(t, err)
	require.True(t, out["a"].Equal(Int(1)))
	tail, ok := AsSequence(out["tail"])
	require.True(t, ok)
	require.Len(t, tail, 3)
}

func TestMatcherShapeMismatch(t *testing.T) {
	_, err := Listed().WithSingles("a", "b").Match(Int(1))
	require.Error(t, err)
}

func TestFuncCallPassesSelfAndArgToBody(t *testing.T) {
	var gotSelf, gotArg Value
	fn := &Func{Name: "probe", Body: func(self, arg Value) (Value, error) {
		gotSelf, gotArg = self, arg
		return arg, nil
	}}
	selfVal := FromResource(NewResource(fn, "fn"))
	out, err := fn.Call(selfVal, Int(7))
	require.NoError(t, err)
	require.True(t, out.Equal(Int(7)))
	require.True(t, gotSelf.Equal(selfVal))
	require.True(t, gotArg.Equal(Int(7)))
}

func TestFuncCallWrapsErrorWithName(t *testing.T) {
	fn := &Func{Name: "boom", Body: func(self, arg Value) (Value, error) {
		return Value{}, fmt.Errorf("bad input")
	}}
	_, err := fn.Call(Null(), Null())
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}
