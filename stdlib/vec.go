package stdlib

import (
	"github.com/impodog/leas/env"
	"github.com/impodog/leas/errs"
	"github.com/impodog/leas/value"
)

func wantSeqRes(name string, v value.Value) (value.Resource, error) {
	r, ok := v.AsRes()
	if !ok {
		return value.Resource{}, errs.New(0, "%s: argument is not a vec", name)
	}
	if _, ok := value.As[value.Sequence](r); !ok {
		return value.Resource{}, errs.New(0, "%s: argument is not a vec", name)
	}
	return r, nil
}

func wantFunc(name string, v value.Value) (*value.Func, error) {
	r, ok := v.AsRes()
	if !ok {
		return nil, errs.New(0, "%s: argument is not a fn", name)
	}
	f, ok := value.As[value.Func](r)
	if !ok {
		return nil, errs.New(0, "%s: argument is not a fn", name)
	}
	return f, nil
}

func installVec(mod *env.Map) {
	mod.Set("new", fn("vec.new", func(arg value.Value) (value.Value, error) {
		seq, ok := value.AsSequence(arg)
		if !ok {
			// Bare `vec.new()` (a Null argument) builds an empty vec rather
			// than erroring — there's nothing to destructure.
			if arg.AsNull() {
				seq = nil
			} else {
				return value.Value{}, errs.New(0, "vec.new: argument is not a sequence")
			}
		}
		fresh := make([]value.Value, len(seq))
		copy(fresh, seq)
		return value.FromResource(value.NewSequenceResource(fresh)), nil
	}))
	mod.Set("len", fn("vec.len", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("v").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		r, err := wantSeqRes("vec.len", out["v"])
		if err != nil {
			return value.Value{}, err
		}
		seq, _ := value.As[value.Sequence](r)
		return value.Int(int64(len(*seq))), nil
	}))
	mod.Set("at", fn("vec.at", func(arg value.Value) (value.Value, error) {
		out, err := value.Listed().WithSingles("v", "i").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		r, err := wantSeqRes("vec.at", out["v"])
		if err != nil {
			return value.Value{}, err
		}
		idx, ok := out["i"].AsInt()
		if !ok {
			return value.Value{}, errs.New(0, "vec.at: index is not an int")
		}
		seq, _ := value.As[value.Sequence](r)
		if idx < 0 || idx >= int64(len(*seq)) {
			return value.Value{}, errs.New(0, "vec.at: index %d out of range for length %d", idx, len(*seq))
		}
		return (*seq)[idx], nil
	}))
	mod.Set("push", fn("vec.push", func(arg value.Value) (value.Value, error) {
		out, err := value.Listed().WithSingles("v", "item").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		r, err := wantSeqRes("vec.push", out["v"])
		if err != nil {
			return value.Value{}, err
		}
		item := out["item"]
		return value.VisitMut(r, func(seq *value.Sequence) (value.Value, error) {
			*seq = append(*seq, item)
			return out["v"], nil
		})
	}))
	mod.Set("pop", fn("vec.pop", func(arg value.Value) (value.Value, error) {
		out, err := value.Single("v").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		r, err := wantSeqRes("vec.pop", out["v"])
		if err != nil {
			return value.Value{}, err
		}
		return value.VisitMut(r, func(seq *value.Sequence) (value.Value, error) {
			if len(*seq) == 0 {
				return value.Value{}, errs.New(0, "vec.pop: vec is empty")
			}
			last := (*seq)[len(*seq)-1]
			*seq = (*seq)[:len(*seq)-1]
			return last, nil
		})
	}))
	mod.Set("each", fn("vec.each", func(arg value.Value) (value.Value, error) {
		out, err := value.Listed().WithSingles("v", "f").Match(arg)
		if err != nil {
			return value.Value{}, err
		}
		r, err := wantSeqRes("vec.each", out["v"])
		if err != nil {
			return value.Value{}, err
		}
		f, err := wantFunc("vec.each", out["f"])
		if err != nil {
			return value.Value{}, err
		}
		seq, _ := value.As[value.Sequence](r)
		elems := make([]value.Value, len(*seq))
		copy(elems, *seq)
		for _, elem := range elems {
			if _, err := f.Call(out["f"], elem); err != nil {
				return value.Value{}, err
			}
		}
		return value.Null(), nil
	}))
}
