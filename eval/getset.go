package eval

import (
	"github.com/impodog/leas/cook"
	"github.com/impodog/leas/env"
	"github.com/impodog/leas/errs"
	"github.com/impodog/leas/token"
	"github.com/impodog/leas/value"
)

// Get is like Eval but, when s is a bare name, looks it up directly against
// m rather than recursing through Eval's ambient scope — the operation
// Dot's right operand uses against the inner map (spec.md §4.4).
func Get(s *cook.Stmt, m *env.Map) (value.Value, error) {
	if s.Kind == cook.SToken && s.Tok.Kind == token.KWord {
		v, ok := m.Get(s.Tok.Word)
		if !ok {
			return value.Value{}, errs.New(s.Line, "unknown name %q", s.Tok.Word)
		}
		return v, nil
	}
	return Eval(s, m)
}

// Set installs v at the location s denotes against m (spec.md §4.4).
func Set(s *cook.Stmt, m *env.Map, v value.Value) error {
	switch s.Kind {
	case cook.SToken:
		switch s.Tok.Kind {
		case token.KWord:
			m.Set(s.Tok.Word, v)
			return nil
		case token.KStop:
			return nil
		default:
			return errs.New(s.Line, "cannot assign to a literal")
		}
	case cook.SDot:
		return setDot(s, m, v)
	case cook.SExtern:
		parent, ok := m.Parent()
		if !ok {
			return errs.New(s.Line, "extern: map has no parent")
		}
		return Set(s.Operand, parent, v)
	default:
		return errs.New(s.Line, "cannot assign to this expression")
	}
}

func evalDot(s *cook.Stmt, m *env.Map) (value.Value, error) {
	lv, err := Eval(s.Left, m)
	if err != nil {
		return value.Value{}, err
	}
	inner, err := asMap(s.Line, lv)
	if err != nil {
		return value.Value{}, err
	}
	v, err := Get(s.Right, inner)
	if err == nil {
		return v, nil
	}
	if meta, ok := lookupMeta(inner); ok {
		if v2, err2 := Get(s.Right, meta); err2 == nil {
			return v2, nil
		}
	}
	return value.Value{}, err
}

func setDot(s *cook.Stmt, m *env.Map, v value.Value) error {
	lv, err := Eval(s.Left, m)
	if err != nil {
		return err
	}
	inner, err := asMap(s.Line, lv)
	if err != nil {
		return err
	}
	if err := Set(s.Right, inner, v); err != nil {
		if meta, ok := lookupMeta(inner); ok {
			return Set(s.Right, meta, v)
		}
		return err
	}
	return nil
}

func asMap(line uint32, v value.Value) (*env.Map, error) {
	r, ok := v.AsRes()
	if !ok {
		return nil, errs.New(line, "non-Map for Dot")
	}
	m, ok := value.As[env.Map](r)
	if !ok {
		return nil, errs.New(line, "non-Map for Dot")
	}
	return m, nil
}

func lookupMeta(m *env.Map) (*env.Map, bool) {
	v, ok := m.GetLocal("meta")
	if !ok {
		return nil, false
	}
	r, ok := v.AsRes()
	if !ok {
		return nil, false
	}
	meta, ok := value.As[env.Map](r)
	return meta, ok
}

// flattenList walks a right-associative Stmt::List chain into its elements,
// used by Use/Expose whose operand is a comma-separated list of names.
func flattenList(s *cook.Stmt) []*cook.Stmt {
	var out []*cook.Stmt
	cur := s
	for cur.Kind == cook.SList {
		out = append(out, cur.Left)
		cur = cur.Right
	}
	return append(out, cur)
}

// terminalSegment extracts the rightmost Word of a bare name or dotted Dot
// chain (e.g. a.b.c -> "c"), the binding target Use/Expose use.
func terminalSegment(s *cook.Stmt) (string, bool) {
	switch s.Kind {
	case cook.SToken:
		if s.Tok.Kind == token.KWord {
			return s.Tok.Word, true
		}
		return "", false
	case cook.SDot:
		return terminalSegment(s.Right)
	default:
		return "", false
	}
}
