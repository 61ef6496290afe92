package value

import "github.com/impodog/leas/errs"

// Func is an owned callable with an optional diagnostic name (spec.md §3).
// Body receives self (the Func's own Value, as seen via "self") and arg;
// whatever scope the body needs (definition map, shared bindings) is
// closed over by Body itself — Call has no scope of its own to offer.
type Func struct {
	Name string
	Body func(self Value, arg Value) (Value, error)
}

// Call is the single dispatch point for function invocation (spec.md
// §4.7): it routes to Body and annotates any error with the function's
// debug name.
func (f *Func) Call(self Value, arg Value) (Value, error) {
	v, err := f.Body(self, arg)
	if err != nil {
		name := f.Name
		if name == "" {
			name = "<anonymous>"
		}
		return Value{}, errs.With(err, "while calling %s", name)
	}
	return v, nil
}
