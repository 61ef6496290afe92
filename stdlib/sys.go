package stdlib

import (
	"os"

	"github.com/impodog/leas/env"
	"github.com/impodog/leas/errs"
	"github.com/impodog/leas/value"
)

func installSys(mod *env.Map) {
	mod.Set("same", fn("sys.same", func(arg value.Value) (value.Value, error) {
		out, err := value.Listed().WithSingles("a", "b").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(out["a"].Equal(out["b"])), nil
	}))
	mod.Set("is_stop", fn("sys.is_stop", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(out["a"].AsStop()), nil
	}))
	mod.Set("args", fn("sys.args", func(arg value.Value) (value.Value, error) {
		args := os.Args
		vals := make([]value.Value, len(args))
		for i, a := range args {
			vals[i] = strResult(a)
		}
		return value.FromResource(value.NewSequenceResource(vals)), nil
	}))
	mod.Set("env", fn("sys.env", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("name").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		name, err := wantStr("sys.env", out["name"])
		if err != nil {
			return value.Value{}, err
		}
		v, ok := os.LookupEnv(name)
		if !ok {
			return value.Null(), nil
		}
		return strResult(v), nil
	}))
	mod.Set("exit", fn("sys.exit", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("code").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		code, ok := out["code"].AsInt()
		if !ok {
			return value.Value{}, errs.New(0, "sys.exit: code is not an int")
		}
		os.Exit(int(code))
		return value.Null(), nil
	}))
}
