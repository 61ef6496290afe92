package stdlib

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/impodog/leas/env"
	"github.com/impodog/leas/errs"
	"github.com/impodog/leas/value"
)

// tomlToValue converts a BurntSushi/toml-decoded Go value into a Value,
// building a fresh Resource<Map> (a child of mod, purely for its shared
// line/env cells — TOML tables have no lexical parent) for each table.
func tomlToValue(a any, mod *env.Map) (value.Value, error) {
	switch t := a.(type) {
	case map[string]any:
		child := mod.NewChild()
		for k, v := range t {
			cv, err := tomlToValue(v, mod)
			if err != nil {
				return value.Value{}, err
			}
			child.Set(k, cv)
		}
		return value.FromResource(value.NewResource(child, "map")), nil
	case []map[string]any:
		vals := make([]value.Value, len(t))
		for i, v := range t {
			cv, err := tomlToValue(v, mod)
			if err != nil {
				return value.Value{}, err
			}
			vals[i] = cv
		}
		return value.FromResource(value.NewSequenceResource(vals)), nil
	case []any:
		vals := make([]value.Value, len(t))
		for i, v := range t {
			cv, err := tomlToValue(v, mod)
			if err != nil {
				return value.Value{}, err
			}
			vals[i] = cv
		}
		return value.FromResource(value.NewSequenceResource(vals)), nil
	case string:
		return strResult(t), nil
	case int64:
		return value.Int(t), nil
	case float64:
		return value.Float(t), nil
	case bool:
		return value.Bool(t), nil
	case nil:
		return value.Null(), nil
	default:
		return value.Value{}, errs.New(0, "toml.load: unsupported TOML value of type %T", a)
	}
}

// valueToTOML converts a Value back into a plain Go value the TOML encoder
// understands, the inverse of tomlToValue.
func valueToTOML(v value.Value) (any, error) {
	switch v.Kind {
	case value.KInt:
		i, _ := v.AsInt()
		return i, nil
	case value.KUint:
		u, _ := v.AsUint()
		return u, nil
	case value.KFloat:
		f, _ := v.AsFloat()
		return f, nil
	case value.KBool:
		b, _ := v.AsBool()
		return b, nil
	case value.KNull:
		return nil, nil
	case value.KRes:
		r, _ := v.AsRes()
		if s, ok := value.AsString(r); ok {
			return s, nil
		}
		if seq, ok := value.AsSequence(v); ok {
			out := make([]any, len(seq))
			for i, elem := range seq {
				ev, err := valueToTOML(elem)
				if err != nil {
					return nil, err
				}
				out[i] = ev
			}
			return out, nil
		}
		if m, ok := value.As[env.Map](r); ok {
			return mapToTOML(m)
		}
		return nil, errs.New(0, "toml.dump: unsupported resource %s", r.String())
	default:
		return nil, errs.New(0, "toml.dump: unsupported value kind %s", v.Kind)
	}
}

func mapToTOML(m *env.Map) (map[string]any, error) {
	out := make(map[string]any)
	for k, v := range m.Entries() {
		tv, err := valueToTOML(v)
		if err != nil {
			return nil, err
		}
		out[k] = tv
	}
	return out, nil
}

func installToml(mod *env.Map) {
	mod.Set("load", fn("toml.load", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("path").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		path, err := wantStr("toml.load", out["path"])
		if err != nil {
			return value.Value{}, err
		}
		var data map[string]any
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return value.Value{}, errs.Wrap(err, "toml.load: %s", path)
		}
		return tomlToValue(data, mod)
	}))
	mod.Set("dump", fn("toml.dump", func(arg value.Value) (value.Value, error) {
		out, err := value.Listed().WithSingles("table", "path").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		path, err := wantStr("toml.dump", out["path"])
		if err != nil {
			return value.Value{}, err
		}
		r, ok := out["table"].AsRes()
		if !ok {
			return value.Value{}, errs.New(0, "toml.dump: table is not a map")
		}
		m, ok := value.As[env.Map](r)
		if !ok {
			return value.Value{}, errs.New(0, "toml.dump: table is not a map")
		}
		data, err := mapToTOML(m)
		if err != nil {
			return value.Value{}, err
		}
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(data); err != nil {
			return value.Value{}, errs.Wrap(err, "toml.dump: encoding %s", path)
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return value.Value{}, errs.Wrap(err, "toml.dump: writing %s", path)
		}
		return value.Null(), nil
	}))
}
