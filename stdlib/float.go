package stdlib

import (
	"github.com/impodog/leas/env"
	"github.com/impodog/leas/errs"
	"github.com/impodog/leas/value"
)

func wantFloat(name string, v value.Value) (float64, error) {
	f, ok := v.AsFloat()
	if !ok {
		return 0, errs.New(0, "%s: argument is not a float", name)
	}
	return f, nil
}

func floatPair(name string, arg value.Value) (float64, float64, error) {
	out, err := value.Listed().WithSingles("a", "b").Match(arg)
	if err != nil {
		return 0, 0, err
	}
	a, err := wantFloat(name, out["a"])
	if err != nil {
		return 0, 0, err
	}
	b, err := wantFloat(name, out["b"])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func installFloat(mod *env.Map) {
	arith := func(name string, op func(a, b float64) (value.Value, error)) {
		mod.Set(name, fn("float."+name, func(arg value.Value) (value.Value, error) {
			a, b, err := floatPair("float."+name, arg)
			if err != nil {
				return value.Value{}, err
			}
			return op(a, b)
		}))
	}
	arith("add", func(a, b float64) (value.Value, error) { return value.Float(a + b), nil })
	arith("sub", func(a, b float64) (value.Value, error) { return value.Float(a - b), nil })
	arith("mul", func(a, b float64) (value.Value, error) { return value.Float(a * b), nil })
	arith("div", func(a, b float64) (value.Value, error) {
		if b == 0 {
			return value.Value{}, errs.New(0, "float.div: division by zero")
		}
		return value.Float(a / b), nil
	})
	arith("eq", func(a, b float64) (value.Value, error) { return value.Bool(a == b), nil })
	arith("lt", func(a, b float64) (value.Value, error) { return value.Bool(a < b), nil })
	arith("gt", func(a, b float64) (value.Value, error) { return value.Bool(a > b), nil })

	mod.Set("neg", fn("float.neg", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, err := wantFloat("float.neg", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		return value.Float(-a), nil
	}))
	mod.Set("to_int", fn("float.to_int", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, err := wantFloat("float.to_int", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		return value.Int(int64(a)), nil
	}))
	mod.Set("to_str", fn("float.to_str", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, err := wantFloat("float.to_str", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		return value.FromResource(value.NewStringResource(value.Float(a).String())), nil
	}))
}
