package value

import (
	"strings"

	"github.com/impodog/leas/errs"
)

// shapeKind tags a Matcher's variant (spec.md §4.4's Matcher paragraph).
type shapeKind uint8

const (
	shapeSingle shapeKind = iota
	shapeListed
	shapeRest
)

// Matcher declares a builtin's expected argument shape and destructures an
// incoming call argument against it. Build one with Single, Listed, or Rest.
type Matcher struct {
	kind     shapeKind
	name     string
	singles  []string
	restName string
	hasRest  bool
}

// Single matches the whole argument as one named value.
func Single(name string) Matcher {
	return Matcher{kind: shapeSingle, name: name}
}

// Listed matches a Resource<Sequence> positionally. Chain WithSingles and
// optionally WithRest to describe the positions.
func Listed() Matcher {
	return Matcher{kind: shapeListed}
}

// WithSingles names the leading positions of a Listed shape.
func (m Matcher) WithSingles(names ...string) Matcher {
	m.singles = names
	return m
}

// WithRest names a trailing position that absorbs every remaining element,
// such that exactly (n-i-1) values remain for subsequent positions — here
// there are none after Rest, so it always takes the tail.
func (m Matcher) WithRest(name string) Matcher {
	m.hasRest = true
	m.restName = name
	return m
}

// Rest matches the whole argument (expected to be a Sequence) under one name.
func Rest(name string) Matcher {
	return Matcher{kind: shapeRest, name: name}
}

func (m Matcher) String() string {
	switch m.kind {
	case shapeSingle:
		return "single(" + m.name + ")"
	case shapeRest:
		return "rest(" + m.name + ")"
	case shapeListed:
		var b strings.Builder
		b.WriteString("listed(")
		b.WriteString(strings.Join(m.singles, ", "))
		if m.hasRest {
			if len(m.singles) > 0 {
				b.WriteString(", ")
			}
			b.WriteString("*" + m.restName)
		}
		b.WriteString(")")
		return b.String()
	default:
		return "<unknown shape>"
	}
}

// Match destructures arg per the declared shape, returning named bindings or
// a shape-mismatch error citing the shape string (spec.md §4.4, §7).
func (m Matcher) Match(arg Value) (map[string]Value, error) {
	switch m.kind {
	case shapeSingle:
		return map[string]Value{m.name: arg}, nil
	case shapeRest:
		return map[string]Value{m.name: arg}, nil
	case shapeListed:
		seq, ok := AsSequence(arg)
		if !ok {
			return nil, errs.New(0, "matcher shape mismatch: expected %s, argument is not a sequence", m)
		}
		need := len(m.singles)
		if m.hasRest {
			if len(seq) < need {
				return nil, errs.New(0, "matcher shape mismatch: expected %s, got %d elements", m, len(seq))
			}
		} else if len(seq) != need {
			return nil, errs.New(0, "matcher shape mismatch: expected %s, got %d elements", m, len(seq))
		}
		out := make(map[string]Value, need+1)
		for i, name := range m.singles {
			out[name] = seq[i]
		}
		if m.hasRest {
			out[m.restName] = FromResource(NewSequenceResource(seq[need:]))
		}
		return out, nil
	default:
		return nil, errs.New(0, "matcher: unknown shape")
	}
}
