package value

// Sequence is the "ordered sequence of Value" payload type named in spec.md
// §4.7. List expressions build one from their elements when evaluated;
// NewSequenceResource packages the finished slice as a Resource so builtins
// can pass/return it like any other value.
type Sequence []Value

func NewSequenceResource(vals []Value) Resource {
	seq := Sequence(vals)
	return NewResource(&seq, "sequence")
}

// AsSequence downcasts a Value to its backing Sequence, following Res
// indirection; used by Matcher's Listed shape and by stdlib vec builtins.
func AsSequence(v Value) (Sequence, bool) {
	r, ok := v.AsRes()
	if !ok {
		return nil, false
	}
	seq, ok := As[Sequence](r)
	if !ok {
		return nil, false
	}
	return *seq, true
}
