package stdlib

import (
	"github.com/impodog/leas/env"
	"github.com/impodog/leas/errs"
	"github.com/impodog/leas/value"
)

func wantUint(name string, v value.Value) (uint64, error) {
	u, ok := v.AsUint()
	if !ok {
		return 0, errs.New(0, "%s: argument is not a uint", name)
	}
	return u, nil
}

func uintPair(name string, arg value.Value) (uint64, uint64, error) {
	out, err := value.Listed().WithSingles("a", "b").Match(arg)
	if err != nil {
		return 0, 0, err
	}
	a, err := wantUint(name, out["a"])
	if err != nil {
		return 0, 0, err
	}
	b, err := wantUint(name, out["b"])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func installUint(mod *env.Map) {
	arith := func(name string, op func(a, b uint64) (value.Value, error)) {
		mod.Set(name, fn("uint."+name, func(arg value.Value) (value.Value, error) {
			a, b, err := uintPair("uint."+name, arg)
			if err != nil {
				return value.Value{}, err
			}
			return op(a, b)
		}))
	}
	arith("add", func(a, b uint64) (value.Value, error) { return value.Uint(a + b), nil })
	arith("sub", func(a, b uint64) (value.Value, error) { return value.Uint(a - b), nil })
	arith("mul", func(a, b uint64) (value.Value, error) { return value.Uint(a * b), nil })
	arith("div", func(a, b uint64) (value.Value, error) {
		if b == 0 {
			return value.Value{}, errs.New(0, "uint.div: division by zero")
		}
		return value.Uint(a / b), nil
	})
	arith("mod", func(a, b uint64) (value.Value, error) {
		if b == 0 {
			return value.Value{}, errs.New(0, "uint.mod: division by zero")
		}
		return value.Uint(a % b), nil
	})
	arith("eq", func(a, b uint64) (value.Value, error) { return value.Bool(a == b), nil })
	arith("lt", func(a, b uint64) (value.Value, error) { return value.Bool(a < b), nil })
	arith("gt", func(a, b uint64) (value.Value, error) { return value.Bool(a > b), nil })

	mod.Set("to_int", fn("uint.to_int", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, err := wantUint("uint.to_int", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		return value.Int(int64(a)), nil
	}))
	mod.Set("to_float", fn("uint.to_float", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, err := wantUint("uint.to_float", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		return value.Float(float64(a)), nil
	}))
	mod.Set("to_str", fn("uint.to_str", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, err := wantUint("uint.to_str", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		return value.FromResource(value.NewStringResource(value.Uint(a).String())), nil
	}))
}
