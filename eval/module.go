package eval

import (
	"context"
	"path/filepath"

	"github.com/impodog/leas/cook"
	"github.com/impodog/leas/env"
	"github.com/impodog/leas/errs"
	"github.com/impodog/leas/lexer"
	"github.com/impodog/leas/slice"
	"github.com/impodog/leas/token"
	"github.com/impodog/leas/value"
)

// pathSegments decomposes a possibly-dotted module path (cooked as a
// Dot chain of bare Words) into its component names, without evaluating
// anything — the segments are raw identifiers, not expressions to look up.
func pathSegments(s *cook.Stmt) ([]string, error) {
	switch s.Kind {
	case cook.SToken:
		if s.Tok.Kind == token.KWord {
			return []string{s.Tok.Word}, nil
		}
		return nil, errs.New(s.Line, "expected a module path segment")
	case cook.SDot:
		left, err := pathSegments(s.Left)
		if err != nil {
			return nil, err
		}
		right, err := pathSegments(s.Right)
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil
	default:
		return nil, errs.New(s.Line, "expected a dotted module path")
	}
}

func compile(src string) (*cook.Stmt, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	sl, err := slice.Build(toks)
	if err != nil {
		return nil, err
	}
	return cook.Cook(sl)
}

func rootOf(m *env.Map) *env.Map {
	cur := m
	for {
		p, ok := cur.Parent()
		if !ok {
			return cur
		}
		cur = p
	}
}

// evalImport implements spec.md §4.4's Import construct, including the
// filesystem-miss / _init_<name> handshake from §6/§9.
func evalImport(s *cook.Stmt, m *env.Map) (value.Value, error) {
	segs, err := pathSegments(s.Operand)
	if err != nil {
		return value.Value{}, err
	}
	joined := filepath.Join(segs...)
	name := segs[len(segs)-1]
	e := m.Env()
	ctx := context.Background()

	canonical, found := e.FindModule(ctx, joined)
	cacheKey := canonical
	if !found {
		cacheKey = "_init_:" + name
	}

	if cached, ok := e.CacheGet(cacheKey); ok {
		bindPathChain(m, segs, cached)
		return value.Null(), nil
	}

	var moduleMap *env.Map
	if found {
		src, err := e.Read(ctx, canonical)
		if err != nil {
			return value.Value{}, errs.With(err, "while importing %s", joined)
		}
		body, err := compile(src)
		if err != nil {
			return value.Value{}, errs.With(err, "while importing %s", joined)
		}

		child := m.NewChild()
		prev := child.Link(m)
		e.ForwardBase(filepath.Dir(canonical))
		_, err = Run(body, child)
		e.BackwardBase()
		child.UnlinkTo(prev)
		if err != nil {
			return value.Value{}, errs.With(err, "while importing %s", joined)
		}
		moduleMap = child
	} else {
		root := rootOf(m)
		initVal, ok := root.Get("_init_" + name)
		if !ok {
			return value.Value{}, errs.New(s.Line, "module %s not found", joined)
		}
		initRes, ok := initVal.AsRes()
		if !ok {
			return value.Value{}, errs.New(s.Line, "module %s: _init_%s is not callable", joined, name)
		}
		initFn, ok := value.As[value.Func](initRes)
		if !ok {
			return value.Value{}, errs.New(s.Line, "module %s: _init_%s is not callable", joined, name)
		}
		child := m.NewChild()
		mapArg := value.FromResource(value.NewResource(child, "map"))
		if _, err := initFn.Call(value.Null(), mapArg); err != nil {
			return value.Value{}, errs.With(err, "while initializing module %s", joined)
		}
		moduleMap = child
	}

	res := value.NewResource(moduleMap, "map")
	e.CacheSet(cacheKey, res)
	bindPathChain(m, segs, res)
	return value.FromResource(res), nil
}

// bindPathChain installs moduleRes under the dotted path segs into m,
// building single-entry intermediate maps for every segment but the last
// (spec.md §4.4: "Intermediate path segments become nested single-entry
// maps"), reusing an already-bound intermediate map when present so a
// second `import m.other` extends rather than replaces `m`.
func bindPathChain(m *env.Map, segs []string, moduleRes value.Resource) {
	if len(segs) == 1 {
		m.Set(segs[0], value.FromResource(moduleRes))
		return
	}
	top := segs[0]
	var topMap *env.Map
	if existing, ok := m.Get(top); ok {
		if r, ok2 := existing.AsRes(); ok2 {
			if mm, ok3 := value.As[env.Map](r); ok3 {
				topMap = mm
			}
		}
	}
	if topMap == nil {
		topMap = m.NewChild()
		m.Set(top, value.FromResource(value.NewResource(topMap, "map")))
	}
	bindPathChain(topMap, segs[1:], moduleRes)
}

// evalInclude implements spec.md §4.4's Include: resolve, read, compile and
// evaluate into the current map, with no child scope.
func evalInclude(s *cook.Stmt, m *env.Map) (value.Value, error) {
	segs, err := pathSegments(s.Operand)
	if err != nil {
		return value.Value{}, err
	}
	joined := filepath.Join(segs...)
	e := m.Env()
	ctx := context.Background()

	canonical, found := e.FindModule(ctx, joined)
	if !found {
		return value.Value{}, errs.New(s.Line, "module %s not found", joined)
	}
	src, err := e.Read(ctx, canonical)
	if err != nil {
		return value.Value{}, errs.With(err, "while including %s", joined)
	}
	body, err := compile(src)
	if err != nil {
		return value.Value{}, errs.With(err, "while including %s", joined)
	}

	e.ForwardBase(filepath.Dir(canonical))
	result, err := Run(body, m)
	e.BackwardBase()
	if err != nil {
		return value.Value{}, errs.With(err, "while including %s", joined)
	}
	return result, nil
}
