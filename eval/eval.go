// Package eval walks a cook.Stmt tree against an env.Map, implementing the
// three polymorphic operations spec.md §4.4 names: Eval (produce a value),
// Get (like Eval but treats a bare name as a direct lookup against whatever
// map is passed, rather than the ambient current scope), and Set (install a
// value at the location an expression denotes). A single big type-switch
// over Stmt.Kind dispatches to one evalX per kind.
package eval

import (
	"github.com/impodog/leas/cook"
	"github.com/impodog/leas/env"
	"github.com/impodog/leas/errs"
	"github.com/impodog/leas/token"
	"github.com/impodog/leas/value"
)

// Eval produces the value of s against the current scope m.
func Eval(s *cook.Stmt, m *env.Map) (value.Value, error) {
	m.SetLine(s.Line)
	switch s.Kind {
	case cook.SEmpty:
		return value.Null(), nil
	case cook.SToken:
		return evalToken(s, m)
	case cook.SBlock:
		return evalBlock(s, m)
	case cook.SDot:
		return evalDot(s, m)
	case cook.SColon:
		return evalColon(s, m)
	case cook.SCall:
		return evalCall(s, m)
	case cook.SDo:
		return evalDo(s, m)
	case cook.SList:
		vals, err := evalListElements(s, m)
		if err != nil {
			return value.Value{}, err
		}
		return value.FromResource(value.NewSequenceResource(vals)), nil
	case cook.SThen:
		return evalThen(s, m)
	case cook.SElse:
		return evalElse(s, m)
	case cook.SRepeat:
		return evalRepeat(s, m)
	case cook.SAsn:
		return evalAsn(s, m)
	case cook.SImport:
		return evalImport(s, m)
	case cook.SInclude:
		return evalInclude(s, m)
	case cook.SExtern:
		parent, ok := m.Parent()
		if !ok {
			return value.Value{}, errs.New(s.Line, "extern: map has no parent")
		}
		return Eval(s.Operand, parent)
	case cook.SMap:
		return evalMapLiteral(s, m)
	case cook.SFn:
		return evalFn(s, m)
	case cook.SNeg:
		return evalNeg(s, m)
	case cook.SMove:
		return evalMove(s, m)
	case cook.SAcq:
		return evalAcqOrReturn(s, m, false)
	case cook.SReturn:
		return evalAcqOrReturn(s, m, true)
	case cook.SUse:
		return evalUse(s, m)
	case cook.SExpose:
		return evalExpose(s, m)
	default:
		return value.Value{}, errs.New(s.Line, "eval: unhandled stmt kind %d", s.Kind)
	}
}

func evalToken(s *cook.Stmt, m *env.Map) (value.Value, error) {
	tok := s.Tok
	switch tok.Kind {
	case token.KInt:
		return value.Int(tok.Int), nil
	case token.KUint:
		return value.Uint(tok.Uint), nil
	case token.KFloat:
		return value.Float(tok.Float), nil
	case token.KBool:
		return value.Bool(tok.Bool), nil
	case token.KNull:
		return value.Null(), nil
	case token.KStop:
		return value.Stop(), nil
	case token.KStr:
		return value.FromResource(value.NewStringResource(tok.Str)), nil
	case token.KWord:
		v, ok := m.Get(tok.Word)
		if !ok {
			return value.Value{}, errs.New(s.Line, "unknown name %q", tok.Word)
		}
		return v, nil
	default:
		return value.Value{}, errs.New(s.Line, "eval: unexpected token kind %s", tok.Kind)
	}
}

func evalBlock(s *cook.Stmt, m *env.Map) (value.Value, error) {
	result := value.Null()
	for i := range s.Block {
		v, err := Eval(&s.Block[i], m)
		if err != nil {
			return value.Value{}, err
		}
		result = v
	}
	return result, nil
}

func evalColon(s *cook.Stmt, m *env.Map) (value.Value, error) {
	lv, err := Eval(s.Left, m)
	if err != nil {
		return value.Value{}, err
	}
	m.PushName("this", lv)
	defer m.PopName("this")
	return Eval(s.Right, m)
}

func evalCall(s *cook.Stmt, m *env.Map) (value.Value, error) {
	fv, err := Eval(s.Left, m)
	if err != nil {
		return value.Value{}, err
	}
	av, err := Eval(s.Right, m)
	if err != nil {
		return value.Value{}, err
	}
	res, ok := fv.AsRes()
	if !ok {
		return value.Value{}, errs.New(s.Line, "non-Resource for Call")
	}
	fn, ok := value.As[value.Func](res)
	if !ok {
		return value.Value{}, errs.New(s.Line, "non-Resource for Call")
	}
	return fn.Call(fv, av)
}

func evalListElements(s *cook.Stmt, m *env.Map) ([]value.Value, error) {
	var out []value.Value
	cur := s
	for cur.Kind == cook.SList {
		lv, err := Eval(cur.Left, m)
		if err != nil {
			return nil, err
		}
		if lv.AsStop() {
			return out, nil
		}
		out = append(out, lv)
		cur = cur.Right
	}
	v, err := Eval(cur, m)
	if err != nil {
		return nil, err
	}
	if !v.AsStop() {
		out = append(out, v)
	}
	return out, nil
}

func evalThen(s *cook.Stmt, m *env.Map) (value.Value, error) {
	cv, err := Eval(s.Left, m)
	if err != nil {
		return value.Value{}, err
	}
	b, ok := cv.AsBool()
	if !ok {
		return value.Value{}, errs.New(s.Line, "non-Bool for Then condition")
	}
	if !b {
		return value.Stop(), nil
	}
	return Eval(s.Right, m)
}

func evalElse(s *cook.Stmt, m *env.Map) (value.Value, error) {
	if s.Left.Kind != cook.SThen {
		return value.Value{}, errs.New(s.Line, "else: left operand must be a Then")
	}
	cv, err := Eval(s.Left.Left, m)
	if err != nil {
		return value.Value{}, err
	}
	b, ok := cv.AsBool()
	if !ok {
		return value.Value{}, errs.New(s.Line, "non-Bool for Then condition")
	}
	if b {
		return Eval(s.Left.Right, m)
	}
	return Eval(s.Right, m)
}

func evalRepeat(s *cook.Stmt, m *env.Map) (value.Value, error) {
	result := value.Stop()
	for {
		cv, err := Eval(s.Left, m)
		if err != nil {
			return value.Value{}, err
		}
		b, ok := cv.AsBool()
		if !ok {
			return value.Value{}, errs.New(s.Line, "non-Bool for Repeat condition")
		}
		if !b {
			return result, nil
		}
		v, err := Eval(s.Right, m)
		if err != nil {
			return value.Value{}, err
		}
		result = v
	}
}

func evalNeg(s *cook.Stmt, m *env.Map) (value.Value, error) {
	v, err := Eval(s.Operand, m)
	if err != nil {
		return value.Value{}, err
	}
	switch v.Kind {
	case value.KInt:
		i, _ := v.AsInt()
		return value.Int(-i), nil
	case value.KFloat:
		f, _ := v.AsFloat()
		return value.Float(-f), nil
	case value.KUint:
		u, _ := v.AsUint()
		return value.Int(-int64(u)), nil
	default:
		return value.Value{}, errs.New(s.Line, "neg: non-numeric operand")
	}
}

func evalMove(s *cook.Stmt, m *env.Map) (value.Value, error) {
	if s.Operand.Kind != cook.SToken || s.Operand.Tok.Kind != token.KWord {
		return value.Value{}, errs.New(s.Line, "move: expected a bare name")
	}
	name := s.Operand.Tok.Word
	v, ok := m.GetLocal(name)
	if !ok {
		return value.Stop(), nil
	}
	m.Rem(name)
	return v, nil
}

func evalAcqOrReturn(s *cook.Stmt, m *env.Map, isReturn bool) (value.Value, error) {
	v, err := Eval(s.Operand, m)
	if err != nil {
		return value.Value{}, err
	}
	v, ok := v.Upgrade()
	if !ok {
		return value.Value{}, errs.New(s.Line, "dead weak reference")
	}
	if isReturn {
		return value.Value{}, &returnSignal{val: v}
	}
	return v, nil
}

func evalAsn(s *cook.Stmt, m *env.Map) (value.Value, error) {
	rv, err := Eval(s.Right, m)
	if err != nil {
		return value.Value{}, err
	}
	if s.Left.Kind == cook.SToken && s.Left.Tok.Kind == token.KWord {
		if res, ok := rv.AsRes(); ok {
			if fn, ok := value.As[value.Func](res); ok && fn.Name == "" {
				fn.Name = s.Left.Tok.Word
			}
		}
	}
	if err := Set(s.Left, m, rv); err != nil {
		return value.Value{}, err
	}
	return rv, nil
}

func evalFn(s *cook.Stmt, m *env.Map) (value.Value, error) {
	sharedVal, hasShared := m.Get("shared")
	var capturedShared value.Value
	if hasShared {
		capturedShared = sharedVal.Downgrade()
	}
	defMap := m
	body := s.Operand
	fn := &value.Func{
		Body: func(self value.Value, arg value.Value) (value.Value, error) {
			defMap.PushName("self", self)
			defMap.PushName("arg", arg)
			if hasShared {
				defMap.PushName("shared", capturedShared)
			}
			defMap.Snapshot()
			v, err := Eval(body, defMap)
			v, err = unwrapReturn(v, err)
			defMap.Rollback()
			if hasShared {
				defMap.PopName("shared")
			}
			defMap.PopName("arg")
			defMap.PopName("self")
			return v, err
		},
	}
	return value.FromResource(value.NewResource(fn, "fn")), nil
}

func evalMapLiteral(s *cook.Stmt, m *env.Map) (value.Value, error) {
	child := m.NewChild()
	prev := child.Link(m)
	_, err := Eval(s.Operand, child)
	child.UnlinkTo(prev)
	if err != nil {
		return value.Value{}, err
	}
	return value.FromResource(value.NewResource(child, "map")), nil
}

func evalDo(s *cook.Stmt, m *env.Map) (value.Value, error) {
	inner, err := evalDoLeft(s.Left, m)
	if err != nil {
		return value.Value{}, err
	}
	prev := inner.Link(m)
	inner.Snapshot()
	result, err := Eval(s.Right, inner)
	inner.Rollback()
	inner.UnlinkTo(prev)
	if err != nil {
		return value.Value{}, err
	}
	return result, nil
}

// evalDoLeft special-cases a bare Block operand: spec.md's scenario 4
// ("{ a = 1 \n a } do { a = 2 \n a }") writes Do's receiver as a plain
// brace block, not a `map { ... }` expression, so Do treats a Block operand
// as implicitly constructing a fresh map the same way Stmt::Map does. Any
// other operand is evaluated normally and must already resolve to a
// Resource<Map>. See DESIGN.md.
func evalDoLeft(l *cook.Stmt, m *env.Map) (*env.Map, error) {
	if l.Kind == cook.SBlock {
		child := m.NewChild()
		prev := child.Link(m)
		_, err := Eval(l, child)
		child.UnlinkTo(prev)
		if err != nil {
			return nil, err
		}
		return child, nil
	}
	lv, err := Eval(l, m)
	if err != nil {
		return nil, err
	}
	return asMap(l.Line, lv)
}

func evalUse(s *cook.Stmt, m *env.Map) (value.Value, error) {
	for _, nameExpr := range flattenList(s.Operand) {
		v, err := Eval(nameExpr, m)
		if err != nil {
			return value.Value{}, err
		}
		term, ok := terminalSegment(nameExpr)
		if !ok {
			return value.Value{}, errs.New(s.Line, "use: expected a name or dotted path")
		}
		m.Set(term, v)
	}
	return value.Null(), nil
}

func evalExpose(s *cook.Stmt, m *env.Map) (value.Value, error) {
	for _, nameExpr := range flattenList(s.Operand) {
		term, ok := terminalSegment(nameExpr)
		if !ok {
			return value.Value{}, errs.New(s.Line, "expose: expected a bare name")
		}
		m.Global(term)
	}
	return value.Null(), nil
}
