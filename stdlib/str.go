package stdlib

import (
	"strings"

	"github.com/impodog/leas/env"
	"github.com/impodog/leas/errs"
	"github.com/impodog/leas/value"
)

func wantStr(name string, v value.Value) (string, error) {
	r, ok := v.AsRes()
	if !ok {
		return "", errs.New(0, "%s: argument is not a str", name)
	}
	s, ok := value.AsString(r)
	if !ok {
		return "", errs.New(0, "%s: argument is not a str", name)
	}
	return s, nil
}

func strResult(s string) value.Value {
	return value.FromResource(value.NewStringResource(s))
}

func installStr(mod *env.Map) {
	mod.Set("len", fn("str.len", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		s, err := wantStr("str.len", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		return value.Int(int64(len(s))), nil
	}))
	mod.Set("upper", fn("str.upper", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		s, err := wantStr("str.upper", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		return strResult(strings.ToUpper(s)), nil
	}))
	mod.Set("lower", fn("str.lower", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		s, err := wantStr("str.lower", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		return strResult(strings.ToLower(s)), nil
	}))
	mod.Set("concat", fn("str.concat", func(arg value.Value) (value.Value, error) {
		out, err := value.Listed().WithSingles("a", "b").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, err := wantStr("str.concat", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		b, err := wantStr("str.concat", out["b"])
		if err != nil {
			return value.Value{}, err
		}
		return strResult(a + b), nil
	}))
	mod.Set("eq", fn("str.eq", func(arg value.Value) (value.Value, error) {
		out, err := value.Listed().WithSingles("a", "b").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, err := wantStr("str.eq", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		b, err := wantStr("str.eq", out["b"])
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(a == b), nil
	}))
	mod.Set("split", fn("str.split", func(arg value.Value) (value.Value, error) {
		out, err := value.Listed().WithSingles("a", "sep").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, err := wantStr("str.split", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		sep, err := wantStr("str.split", out["sep"])
		if err != nil {
			return value.Value{}, err
		}
		parts := strings.Split(a, sep)
		vals := make([]value.Value, len(parts))
		for i, p := range parts {
			vals[i] = strResult(p)
		}
		return value.FromResource(value.NewSequenceResource(vals)), nil
	}))
	mod.Set("join", fn("str.join", func(arg value.Value) (value.Value, error) {
		out, err := value.Listed().WithSingles("elems", "sep").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		seq, ok := value.AsSequence(out["elems"])
		if !ok {
			return value.Value{}, errs.New(0, "str.join: elems is not a sequence")
		}
		sep, err := wantStr("str.join", out["sep"])
		if err != nil {
			return value.Value{}, err
		}
		parts := make([]string, len(seq))
		for i, v := range seq {
			s, err := wantStr("str.join", v)
			if err != nil {
				return value.Value{}, err
			}
			parts[i] = s
		}
		return strResult(strings.Join(parts, sep)), nil
	}))
	mod.Set("length", fn("str.length", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		s, err := wantStr("str.length", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		return value.Uint(uint64(len([]rune(s)))), nil
	}))
	mod.Set("get", fn("str.get", func(arg value.Value) (value.Value, error) {
		out, err := value.Listed().WithSingles("str", "index").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		s, err := wantStr("str.get", out["str"])
		if err != nil {
			return value.Value{}, err
		}
		i, ok := out["index"].AsInt()
		if !ok {
			return value.Value{}, errs.New(0, "str.get: index is not an int")
		}
		runes := []rune(s)
		if i < 0 || i >= int64(len(runes)) {
			return value.Stop(), nil
		}
		return value.Uint(uint64(runes[i])), nil
	}))
	mod.Set("set", fn("str.set", func(arg value.Value) (value.Value, error) {
		out, err := value.Listed().WithSingles("str", "index", "char").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		r, ok := out["str"].AsRes()
		if !ok {
			return value.Value{}, errs.New(0, "str.set: str is not a str")
		}
		i, ok := out["index"].AsInt()
		if !ok {
			return value.Value{}, errs.New(0, "str.set: index is not an int")
		}
		c, ok := out["char"].AsUint()
		if !ok {
			return value.Value{}, errs.New(0, "str.set: char is not a uint")
		}
		return value.VisitMut[value.Str](r, func(cell *value.Str) (value.Value, error) {
			runes := []rune(cell.Value)
			if i < 0 || i >= int64(len(runes)) {
				return value.Stop(), nil
			}
			runes[i] = rune(c)
			cell.Value = string(runes)
			return value.Null(), nil
		})
	}))
	mod.Set("clone", fn("str.clone", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("a").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		s, err := wantStr("str.clone", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		return strResult(s), nil
	}))
	mod.Set("slice", fn("str.slice", func(arg value.Value) (value.Value, error) {
		out, err := value.Listed().WithSingles("a", "start", "end").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		a, err := wantStr("str.slice", out["a"])
		if err != nil {
			return value.Value{}, err
		}
		start, ok := out["start"].AsInt()
		if !ok {
			return value.Value{}, errs.New(0, "str.slice: start is not an int")
		}
		end, ok := out["end"].AsInt()
		if !ok {
			return value.Value{}, errs.New(0, "str.slice: end is not an int")
		}
		if start < 0 || end > int64(len(a)) || start > end {
			return value.Value{}, errs.New(0, "str.slice: out-of-range bounds [%d, %d) for length %d", start, end, len(a))
		}
		return strResult(a[start:end]), nil
	}))
}
