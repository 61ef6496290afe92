package stdlib

import (
	"github.com/impodog/leas/env"
	"github.com/impodog/leas/errs"
	"github.com/impodog/leas/value"
)

func wantBool(name string, v value.Value) (bool, error) {
	b, ok := v.AsBool()
	if !ok {
		return false, errs.New(0, "%s: argument is not a bool", name)
	}
	return b, nil
}

func boolPair(name string, arg value.Value) (bool, bool, error) {
	out, err := value.Listed().WithSingles("a", "b").Match(arg)
	if err != nil {
		return false, false, err
	}
	a, err := wantBool(name, out["a"])
	if err != nil {
		return false, false, err
	}
	b, err := wantBool(name, out["b"])
	if err != nil {
		return false, false, err
	}
	return a, b, nil
}

func installBool(mod *env.Map) {
	mod.Set("and", fn("bool.and", func(arg value.Value) (value.Value, error) {
		a, b, err := boolPair("bool.and", arg)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(a && b), nil
	}))
	mod.Set("or", fn("bool.or", func(arg value.Value) (value.Value, error) {
		a, b, err := boolPair("bool.or", arg)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(a || b), nil
	}))
	mod.Set("xor", fn("bool.xor", func(arg value.Value) (value.Value, error) {
		a, b, err := boolPair("bool.xor", arg)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(a != b), nil
	}))
	mod.Set("not", fn("bool.not", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, err := wantBool("bool.not", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(!a), nil
	}))
	mod.Set("eq", fn("bool.eq", func(arg value.Value) (value.Value, error) {
		a, b, err := boolPair("bool.eq", arg)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(a == b), nil
	}))
	mod.Set("to_int", fn("bool.to_int", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, err := wantBool("bool.to_int", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		if a {
			return value.Int(1), nil
		}
		return value.Int(0), nil
	}))
}
