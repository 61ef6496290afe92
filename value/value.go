// Package value implements the tagged-union runtime value (spec.md §3) and
// the reference-counted Resource/WeakResource box it carries (spec.md §4.7).
package value

import "fmt"

// Kind tags a Value's active variant.
type Kind uint8

const (
	KInt Kind = iota
	KUint
	KFloat
	KBool
	KNull
	KStop
	KRes
	KWeak
)

func (k Kind) String() string {
	switch k {
	case KInt:
		return "int"
	case KUint:
		return "uint"
	case KFloat:
		return "float"
	case KBool:
		return "bool"
	case KNull:
		return "null"
	case KStop:
		return "stop"
	case KRes:
		return "resource"
	case KWeak:
		return "weak"
	default:
		return "unknown"
	}
}

// Value is the single tagged union every runtime quantity flows through.
// Only the field matching Kind is meaningful.
type Value struct {
	Kind Kind

	i int64
	u uint64
	f float64
	b bool
	r Resource
	w WeakResource
}

func Int(v int64) Value   { return Value{Kind: KInt, i: v} }
func Uint(v uint64) Value { return Value{Kind: KUint, u: v} }
func Float(v float64) Value { return Value{Kind: KFloat, f: v} }
func Bool(v bool) Value   { return Value{Kind: KBool, b: v} }
func Null() Value         { return Value{Kind: KNull} }
func Stop() Value         { return Value{Kind: KStop} }

func FromResource(r Resource) Value { return Value{Kind: KRes, r: r} }
func FromWeak(w WeakResource) Value { return Value{Kind: KWeak, w: w} }

func (v Value) AsInt() (int64, bool) {
	if v.Kind != KInt {
		return 0, false
	}
	return v.i, true
}

func (v Value) AsUint() (uint64, bool) {
	if v.Kind != KUint {
		return 0, false
	}
	return v.u, true
}

func (v Value) AsFloat() (float64, bool) {
	if v.Kind != KFloat {
		return 0, false
	}
	return v.f, true
}

func (v Value) AsBool() (bool, bool) {
	if v.Kind != KBool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsNull() bool { return v.Kind == KNull }
func (v Value) AsStop() bool { return v.Kind == KStop }

func (v Value) AsRes() (Resource, bool) {
	if v.Kind != KRes {
		return Resource{}, false
	}
	return v.r, true
}

func (v Value) AsWeak() (WeakResource, bool) {
	if v.Kind != KWeak {
		return WeakResource{}, false
	}
	return v.w, true
}

// Downgrade converts a strong Res value into a Weak one; any other kind is
// returned unchanged (spec.md §4.7: "downgrade()/upgrade() operate on the
// strong/weak forms").
func (v Value) Downgrade() Value {
	if v.Kind != KRes {
		return v
	}
	return FromWeak(v.r.Downgrade())
}

// Upgrade converts a Weak value into a strong Res, failing if the payload is
// already dead. Non-Weak values are returned unchanged with ok=true.
func (v Value) Upgrade() (Value, bool) {
	if v.Kind != KWeak {
		return v, true
	}
	r, ok := v.w.Upgrade()
	if !ok {
		return Value{}, false
	}
	return FromResource(r), true
}

// Equal implements spec.md §3's equality rule: primitives by value, Res/Weak
// by pointer identity (underlying box pointer, ignoring strength).
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KInt:
		return v.i == other.i
	case KUint:
		return v.u == other.u
	case KFloat:
		return v.f == other.f
	case KBool:
		return v.b == other.b
	case KNull, KStop:
		return true
	case KRes:
		return v.r.box == other.r.box
	case KWeak:
		return v.w.box == other.w.box
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KInt:
		return fmt.Sprintf("%d", v.i)
	case KUint:
		return fmt.Sprintf("%du", v.u)
	case KFloat:
		return fmt.Sprintf("%g", v.f)
	case KBool:
		return fmt.Sprintf("%t", v.b)
	case KNull:
		return "null"
	case KStop:
		return "stop"
	case KRes:
		return v.r.String()
	case KWeak:
		return "weak(...)"
	default:
		return "?"
	}
}
