package stdlib

import (
	"github.com/impodog/leas/env"
	"github.com/impodog/leas/errs"
	"github.com/impodog/leas/value"
)

func wantInt(name string, v value.Value) (int64, error) {
	i, ok := v.AsInt()
	if !ok {
		return 0, errs.New(0, "%s: argument is not an int", name)
	}
	return i, nil
}

func intPair(name string, arg value.Value) (int64, int64, error) {
	out, err := value.Listed().WithSingles("a", "b").Match(arg)
	if err != nil {
		return 0, 0, err
	}
	a, err := wantInt(name, out["a"])
	if err != nil {
		return 0, 0, err
	}
	b, err := wantInt(name, out["b"])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func installInt(mod *env.Map) {
	arith := func(name string, op func(a, b int64) (value.Value, error)) {
		mod.Set(name, fn("int."+name, func(arg value.Value) (value.Value, error) {
			a, b, err := intPair("int."+name, arg)
			if err != nil {
				return value.Value{}, err
			}
			return op(a, b)
		}))
	}
	arith("add", func(a, b int64) (value.Value, error) { return value.Int(a + b), nil })
	arith("sub", func(a, b int64) (value.Value, error) { return value.Int(a - b), nil })
	arith("mul", func(a, b int64) (value.Value, error) { return value.Int(a * b), nil })
	arith("div", func(a, b int64) (value.Value, error) {
		if b == 0 {
			return value.Value{}, errs.New(0, "int.div: division by zero")
		}
		return value.Int(a / b), nil
	})
	arith("mod", func(a, b int64) (value.Value, error) {
		if b == 0 {
			return value.Value{}, errs.New(0, "int.mod: division by zero")
		}
		return value.Int(a % b), nil
	})
	arith("eq", func(a, b int64) (value.Value, error) { return value.Bool(a == b), nil })
	arith("lt", func(a, b int64) (value.Value, error) { return value.Bool(a < b), nil })
	arith("gt", func(a, b int64) (value.Value, error) { return value.Bool(a > b), nil })

	mod.Set("neg", fn("int.neg", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, err := wantInt("int.neg", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		return value.Int(-a), nil
	}))
	mod.Set("to_float", fn("int.to_float", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, err := wantInt("int.to_float", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		return value.Float(float64(a)), nil
	}))
	mod.Set("to_uint", fn("int.to_uint", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, err := wantInt("int.to_uint", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		return value.Uint(uint64(a)), nil
	}))
	mod.Set("to_str", fn("int.to_str", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, err := wantInt("int.to_str", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		return value.FromResource(value.NewStringResource(value.Int(a).String())), nil
	}))
}
