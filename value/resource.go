package value

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/impodog/leas/errs"
)

// resourceBox is the shared heterogeneous cell behind every Resource/
// WeakResource. Strong count reaching zero drops the payload so any live
// WeakResource observes it as dead (spec.md §4.7, §5's weak-liveness rule).
type resourceBox struct {
	id      uuid.UUID
	name    string
	payload any
	strong  int64
	borrow  bool
}

// Resource is a strong, ref-counted heterogeneous mutable cell (spec.md
// §4.7). The zero Resource has a nil box and is never valid to dereference.
type Resource struct {
	box *resourceBox
}

// WeakResource never keeps its payload alive (spec.md §3's Value::Weak rule).
type WeakResource struct {
	box *resourceBox
}

// NewResource creates a strong handle over payload (spec.md §4.7's
// "new<T: Debug + 'static>(v)"). name is used for diagnostics only.
func NewResource(payload any, name string) Resource {
	return Resource{box: &resourceBox{
		id:      uuid.New(),
		name:    name,
		payload: payload,
		strong:  1,
	}}
}

// Clone increments the strong count and returns a new handle to the same box.
func (r Resource) Clone() Resource {
	r.box.strong++
	return r
}

// Release decrements the strong count; at zero the payload is dropped so
// outstanding weak references observe death.
func (r Resource) Release() {
	if r.box == nil {
		return
	}
	r.box.strong--
	if r.box.strong <= 0 {
		r.box.payload = nil
	}
}

// Downgrade produces a weak view that does not extend the box's lifetime.
func (r Resource) Downgrade() WeakResource {
	return WeakResource{box: r.box}
}

// Upgrade promotes a weak view back to a strong handle, failing if the
// payload has already been dropped.
func (w WeakResource) Upgrade() (Resource, bool) {
	if w.box == nil || w.box.strong <= 0 {
		return Resource{}, false
	}
	w.box.strong++
	return Resource{box: w.box}, true
}

// Alive reports whether the weak view's payload is still reachable through
// some strong Resource.
func (w WeakResource) Alive() bool {
	return w.box != nil && w.box.strong > 0
}

func (r Resource) ID() uuid.UUID {
	if r.box == nil {
		return uuid.Nil
	}
	return r.box.id
}

func (r Resource) Name() string {
	if r.box == nil {
		return ""
	}
	return r.box.name
}

func (r Resource) String() string {
	if r.box == nil || r.box.payload == nil {
		return "resource(dead)"
	}
	if r.box.name != "" {
		return fmt.Sprintf("resource(%s)", r.box.name)
	}
	return fmt.Sprintf("resource(%s)", r.box.id)
}

// As is the read-only half of spec.md §4.7's "visit<T>": a type-safe dynamic
// downcast that returns ok=false if the payload is not a *T or is dead.
func As[T any](r Resource) (*T, bool) {
	if r.box == nil || r.box.payload == nil {
		return nil, false
	}
	t, ok := r.box.payload.(*T)
	return t, ok
}

// VisitMut is the exclusive-borrow half ("visit_mut<T>"): it rejects a
// mismatched payload type and detects + rejects re-entrant mutable borrows
// of the same box (spec.md §5).
func VisitMut[T any](r Resource, fn func(*T) (Value, error)) (Value, error) {
	t, ok := As[T](r)
	if !ok {
		return Value{}, errs.New(0, "resource %s does not hold the expected payload type", r.String())
	}
	if r.box.borrow {
		return Value{}, errs.New(0, "re-entrant borrow of resource %s", r.String())
	}
	r.box.borrow = true
	defer func() { r.box.borrow = false }()
	return fn(t)
}
