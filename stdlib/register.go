// Package stdlib implements the standard-library modules spec.md §1/§6
// lists as registration targets (bool, int, float, uint, str, vec, sys,
// toml). Each module is installed as an `_init_<name>` entry on the root
// Map, the same handshake eval.Import already drives for a dotted path
// that misses the filesystem (spec.md §6, §9's Open Questions).
package stdlib

import (
	"github.com/impodog/leas/env"
	"github.com/impodog/leas/errs"
	"github.com/impodog/leas/value"
)

// fn wraps a Go closure as the Func value every builtin below returns,
// matching spec.md §6's Host API shape `f: (Map&mut, Value) -> Result<Value>`
// minus the map (builtins here take no scope; `vec` works on the resource
// passed in, and `toml.load` closes over its own module map).
func fn(name string, body func(arg value.Value) (value.Value, error)) value.Value {
	f := &value.Func{Name: name, Body: func(_ value.Value, arg value.Value) (value.Value, error) {
		return body(arg)
	}}
	return value.FromResource(value.NewResource(f, "fn"))
}

// registerInit binds name as `_init_<name>` on root. eval.Import invokes it
// with a freshly-created child map as its call argument when `import name`
// can't resolve name on the filesystem; populate fills that map in place.
func registerInit(root *env.Map, name string, populate func(mod *env.Map)) {
	initName := "_init_" + name
	root.Set(initName, fn(initName, func(arg value.Value) (value.Value, error) {
		res, ok := arg.AsRes()
		if !ok {
			return value.Value{}, errs.New(0, "%s: expected a map argument", initName)
		}
		mod, ok := value.As[env.Map](res)
		if !ok {
			return value.Value{}, errs.New(0, "%s: expected a map argument", initName)
		}
		populate(mod)
		return value.Null(), nil
	}))
}

// Install registers every standard-library module's initializer onto root
// so `import bool`, `import str`, `import vec`, ... each resolve to a
// working module map (SPEC_FULL.md's SUPPLEMENTED FEATURES).
func Install(root *env.Map) {
	registerInit(root, "bool", installBool)
	registerInit(root, "int", installInt)
	registerInit(root, "float", installFloat)
	registerInit(root, "uint", installUint)
	registerInit(root, "str", installStr)
	registerInit(root, "vec", installVec)
	registerInit(root, "sys", installSys)
	registerInit(root, "toml", installToml)
}
