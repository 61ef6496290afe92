package env

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"

	"github.com/impodog/leas/errs"
	"github.com/impodog/leas/value"
)

// Env holds module search roots, the current base-path stack, and the
// import cache shared by every Map descended from one root (spec.md §4.6).
// Reads go through viant/afs so the same Env can resolve local-filesystem
// and remote-backed module roots alike.
type Env struct {
	fs       afs.Service
	roots    []string
	basePath []string
	cache    map[string]value.WeakResource
}

// NewEnv builds an Env whose roots are the process CWD followed by every
// path in LEAS_PATH (colon-separated), per spec.md §4.6/§6.
func NewEnv() *Env {
	roots := []string{"."}
	if p := os.Getenv("LEAS_PATH"); p != "" {
		for _, r := range strings.Split(p, ":") {
			if r != "" {
				roots = append(roots, r)
			}
		}
	}
	return &Env{
		fs:    afs.New(),
		roots: roots,
		cache: make(map[string]value.WeakResource),
	}
}

// ForwardBase pushes dir as the base for resolving relative imports inside
// the module currently being evaluated.
func (e *Env) ForwardBase(dir string) {
	e.basePath = append(e.basePath, dir)
}

// BackwardBase pops the base pushed by the matching ForwardBase.
func (e *Env) BackwardBase() {
	if len(e.basePath) == 0 {
		return
	}
	e.basePath = e.basePath[:len(e.basePath)-1]
}

func (e *Env) currentBase() string {
	if len(e.basePath) == 0 {
		return "."
	}
	return e.basePath[len(e.basePath)-1]
}

// FindModule resolves name to a canonical file path: for each root
// (substituting the current base path for the first root), try
// root/name/mod.lea (name names a directory module), then root/name, then
// root/name.lea, and return the first that exists (spec.md §4.6).
func (e *Env) FindModule(ctx context.Context, name string) (string, bool) {
	roots := append([]string{e.currentBase()}, e.roots[1:]...)
	for _, root := range roots {
		for _, candidate := range []string{
			filepath.Join(root, name, "mod.lea"),
			filepath.Join(root, name),
			filepath.Join(root, name+".lea"),
		} {
			if ok, err := e.fs.Exists(ctx, candidate); err == nil && ok {
				return filepath.Clean(candidate), true
			}
		}
	}
	return "", false
}

// Read downloads the source at path.
func (e *Env) Read(ctx context.Context, path string) (string, error) {
	data, err := e.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return "", errs.Wrap(err, "reading module %s", path)
	}
	return string(data), nil
}

// CacheGet returns the cached module map for a canonical path, upgrading
// its weak handle; ok is false if never imported or since collected
// (spec.md §8's import-idempotency property).
func (e *Env) CacheGet(canonical string) (value.Resource, bool) {
	w, ok := e.cache[canonical]
	if !ok {
		return value.Resource{}, false
	}
	return w.Upgrade()
}

// CacheSet stores a weak handle to r under canonical, so subsequent imports
// reuse it without re-evaluating the module body.
func (e *Env) CacheSet(canonical string, r value.Resource) {
	e.cache[canonical] = r.Downgrade()
}
