package env

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/impodog/leas/value"
)

func TestFindModuleResolvesPlainFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub.lea"), []byte("x = 7"), 0o644))

	e := NewEnv()
	e.ForwardBase(dir)
	path, ok := e.FindModule(context.Background(), "sub")
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, "sub.lea"), path)
}

func TestFindModuleResolvesDirectoryAsModFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pkg", "mod.lea"), []byte("y = 1"), 0o644))

	e := NewEnv()
	e.ForwardBase(dir)
	path, ok := e.FindModule(context.Background(), "pkg")
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, "pkg", "mod.lea"), path)
}

func TestFindModuleMissingReturnsNotFound(t *testing.T) {
	e := NewEnv()
	e.ForwardBase(t.TempDir())
	_, ok := e.FindModule(context.Background(), "nope")
	require.False(t, ok)
}

func TestImportCacheRoundTrip(t *testing.T) {
	e := NewEnv()
	r := value.NewResource("module map placeholder", "map")
	e.CacheSet("/abs/m.lea", r)

	got, ok := e.CacheGet("/abs/m.lea")
	require.True(t, ok)
	require.True(t, got.ID() == r.ID())

	got.Release()
	r.Release()
	_, ok = e.CacheGet("/abs/m.lea")
	require.False(t, ok)
}
