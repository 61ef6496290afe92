package env

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/impodog/leas/value"
)

func TestSnapshotRollbackRestoresNonGlobalKeys(t *testing.T) {
	m := NewRoot(NewEnv())
	m.ForcedSet("k", value.Int(1))

	m.Snapshot()
	m.Set("k", value.Int(2))
	v, _ := m.Get("k")
	require.True(t, v.Equal(value.Int(2)))
	m.Rollback()

	v, _ = m.Get("k")
	require.True(t, v.Equal(value.Int(1)))
}

func TestGlobalSurvivesRollback(t *testing.T) {
	m := NewRoot(NewEnv())
	m.ForcedSet("k", value.Int(1))

	m.Snapshot()
	m.Global("k")
	m.Set("k", value.Int(2))
	m.Rollback()

	v, _ := m.Get("k")
	require.True(t, v.Equal(value.Int(2)))
}

func TestRepeatedSetInSnapshotDoesNotStackTwice(t *testing.T) {
	m := NewRoot(NewEnv())
	m.Snapshot()
	m.Set("k", value.Int(1))
	m.Set("k", value.Int(2))
	m.Set("k", value.Int(3))
	m.Rollback()
	_, ok := m.Get("k")
	require.False(t, ok)
}

func TestRemRollback(t *testing.T) {
	m := NewRoot(NewEnv())
	m.ForcedSet("k", value.Int(9))
	m.Snapshot()
	m.Rem("k")
	_, ok := m.Get("k")
	require.False(t, ok)
	m.Rollback()
	v, ok := m.Get("k")
	require.True(t, ok)
	require.True(t, v.Equal(value.Int(9)))
}

func TestPushPopNameUnconditional(t *testing.T) {
	m := NewRoot(NewEnv())
	m.ForcedSet("self", value.Int(1))
	m.PushName("self", value.Int(2))
	v, _ := m.Get("self")
	require.True(t, v.Equal(value.Int(2)))
	m.PopName("self")
	v, _ = m.Get("self")
	require.True(t, v.Equal(value.Int(1)))
}

func TestPushNameWithNoPriorBindingPopsToAbsent(t *testing.T) {
	m := NewRoot(NewEnv())
	m.PushName("arg", value.Int(5))
	m.PopName("arg")
	_, ok := m.Get("arg")
	require.False(t, ok)
}

func TestParentLookupIsReadOnly(t *testing.T) {
	parent := NewRoot(NewEnv())
	parent.ForcedSet("x", value.Int(7))
	child := parent.NewChild()
	child.Link(parent)

	v, ok := child.Get("x")
	require.True(t, ok)
	require.True(t, v.Equal(value.Int(7)))

	child.ForcedSet("x", value.Int(99))
	pv, _ := parent.Get("x")
	require.True(t, pv.Equal(value.Int(7)))
}

func TestUnlinkRemovesParentVisibility(t *testing.T) {
	parent := NewRoot(NewEnv())
	parent.ForcedSet("x", value.Int(7))
	child := parent.NewChild()
	prev := child.Link(parent)
	child.Unlink()
	_, ok := child.Get("x")
	require.False(t, ok)
	child.UnlinkTo(prev)
	_, ok = child.Get("x")
	require.False(t, ok)
}

func TestSharedLineCellPropagatesToChildren(t *testing.T) {
	root := NewRoot(NewEnv())
	child := root.NewChild()
	child.SetLine(42)
	require.Equal(t, uint32(42), root.Line())
}
