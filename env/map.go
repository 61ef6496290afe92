// Package env implements the scope tree (Map) and module-resolution state
// (Env) the evaluator walks Stmt trees against (spec.md §4.5, §4.6).
package env

import "github.com/impodog/leas/value"

// pushedEntry records a binding's prior state so it can be restored by
// either PopName (unconditional shadow/unshadow) or Rollback (snapshot
// undo) — spec.md §3 has both disciplines share one `pushed` field because
// the evaluator's call structure always nests them properly LIFO.
type pushedEntry struct {
	had bool
	val value.Value
}

// snapshotFrame is one entry of Map's snapshot stack: the set of keys
// mutated since the frame opened, and the subset declared global (spec.md
// §4.5's set/global/rollback trio).
type snapshotFrame struct {
	changes map[string]bool
	globals map[string]bool
}

// Map is the core environment: a scope of name->Value bindings with
// snapshot/rollback call-local mutation, transient shadowing, and a
// lexical parent link (spec.md §3, §4.5).
type Map struct {
	data     map[string]value.Value
	pushed   map[string][]pushedEntry
	snapshot []snapshotFrame
	line     *uint32
	env      *Env
	parent   *Map
}

// NewRoot creates a root Map with a fresh shared line cell (spec.md §3's
// Lifecycle: "Map is created either as a root (via new) or under another
// map").
func NewRoot(e *Env) *Map {
	line := uint32(0)
	return &Map{
		data:   make(map[string]value.Value),
		pushed: make(map[string][]pushedEntry),
		line:   &line,
		env:    e,
	}
}

// NewChild creates a map inheriting line and env from m, initially with no
// parent; callers attach one with Link when lexical lookup is needed.
func (m *Map) NewChild() *Map {
	return &Map{
		data:   make(map[string]value.Value),
		pushed: make(map[string][]pushedEntry),
		line:   m.line,
		env:    m.env,
	}
}

// Get returns the binding for name from this map or, recursively, the
// linked parent. Read-only against parent.
func (m *Map) Get(name string) (value.Value, bool) {
	if v, ok := m.data[name]; ok {
		return v, true
	}
	if m.parent != nil {
		return m.parent.Get(name)
	}
	return value.Value{}, false
}

// GetLocal returns name's binding only from this map's own data, without
// searching the linked parent (used by Move, which scopes to "the current
// scope" per spec.md §4.4).
func (m *Map) GetLocal(name string) (value.Value, bool) {
	v, ok := m.data[name]
	return v, ok
}

// ForcedSet unconditionally mutates the current map, bypassing snapshots.
func (m *Map) ForcedSet(name string, v value.Value) {
	m.data[name] = v
}

// ForcedRem unconditionally removes name from the current map.
func (m *Map) ForcedRem(name string) {
	delete(m.data, name)
}

func (m *Map) topFrame() (*snapshotFrame, bool) {
	if len(m.snapshot) == 0 {
		return nil, false
	}
	return &m.snapshot[len(m.snapshot)-1], true
}

func (m *Map) recordForRollback(f *snapshotFrame, name string) {
	if f.changes[name] {
		return
	}
	prior, had := m.data[name]
	m.pushed[name] = append(m.pushed[name], pushedEntry{had: had, val: prior})
	f.changes[name] = true
}

// Set is snapshot-aware: inside an active snapshot, the first mutation of a
// non-global name saves its prior value for rollback; subsequent mutations
// in the same frame overwrite without stacking again.
func (m *Map) Set(name string, v value.Value) {
	if f, ok := m.topFrame(); ok && !f.globals[name] {
		m.recordForRollback(f, name)
		m.data[name] = v
		return
	}
	m.ForcedSet(name, v)
}

// Rem is Set's removal counterpart.
func (m *Map) Rem(name string) {
	if f, ok := m.topFrame(); ok && !f.globals[name] {
		m.recordForRollback(f, name)
		delete(m.data, name)
		return
	}
	m.ForcedRem(name)
}

// Snapshot opens a new call-local mutation frame.
func (m *Map) Snapshot() {
	m.snapshot = append(m.snapshot, snapshotFrame{
		changes: make(map[string]bool),
		globals: make(map[string]bool),
	})
}

// Rollback restores every key mutated in the top frame by popping its saved
// prior value, then discards the frame. Each call pops exactly one frame;
// with no frame open it does nothing.
func (m *Map) Rollback() {
	if len(m.snapshot) == 0 {
		return
	}
	f := m.snapshot[len(m.snapshot)-1]
	m.snapshot = m.snapshot[:len(m.snapshot)-1]
	for name := range f.changes {
		stack := m.pushed[name]
		if len(stack) == 0 {
			continue
		}
		entry := stack[len(stack)-1]
		m.pushed[name] = stack[:len(stack)-1]
		if entry.had {
			m.data[name] = entry.val
		} else {
			delete(m.data, name)
		}
	}
}

// Global marks name as exempt from rollback within the top snapshot frame
// (the Expose construct).
func (m *Map) Global(name string) {
	if f, ok := m.topFrame(); ok {
		f.globals[name] = true
	}
}

// PushName unconditionally shadows name with v, saving the prior binding
// (or its absence) onto the same pushed stack Set/Rem use.
func (m *Map) PushName(name string, v value.Value) {
	prior, had := m.data[name]
	m.pushed[name] = append(m.pushed[name], pushedEntry{had: had, val: prior})
	m.data[name] = v
}

// PopName unconditionally restores the binding PushName shadowed.
func (m *Map) PopName(name string) {
	stack := m.pushed[name]
	if len(stack) == 0 {
		delete(m.data, name)
		return
	}
	entry := stack[len(stack)-1]
	m.pushed[name] = stack[:len(stack)-1]
	if entry.had {
		m.data[name] = entry.val
	} else {
		delete(m.data, name)
	}
}

// Link attaches parent as m's lexical parent for the duration of a call,
// returning the previous parent so the caller can restore it via UnlinkTo
// (spec.md §9's transient parent linkage note).
func (m *Map) Link(parent *Map) *Map {
	prev := m.parent
	m.parent = parent
	return prev
}

// Unlink detaches m's parent entirely.
func (m *Map) Unlink() {
	m.parent = nil
}

// UnlinkTo restores a parent previously displaced by Link.
func (m *Map) UnlinkTo(ref *Map) {
	m.parent = ref
}

// Parent exposes the current lexical parent, if any.
func (m *Map) Parent() (*Map, bool) {
	return m.parent, m.parent != nil
}

// Env returns the shared module-resolution state.
func (m *Map) Env() *Env {
	return m.env
}

// Line reads the shared diagnostic cursor.
func (m *Map) Line() uint32 {
	return *m.line
}

// SetLine updates the shared diagnostic cursor; every descendant map sees
// the change since line is a shared cell (spec.md §4.5).
func (m *Map) SetLine(l uint32) {
	*m.line = l
}

// Entries returns a shallow copy of this map's own local bindings, without
// walking the linked parent. Used by stdlib/toml.go to serialize a Map
// value back into a TOML table.
func (m *Map) Entries() map[string]value.Value {
	out := make(map[string]value.Value, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}
