// Package slice converts the lexer's flat token stream into a recursive
// Slice tree using the Enter span annotations (spec.md §4.2): parentheses
// are transparent grouping, braces open a new block split on line-ends,
// and brackets are reserved.
package slice

import (
	"github.com/impodog/leas/errs"
	"github.com/impodog/leas/token"
)

// Kind tags a Slice's variant.
type Kind uint8

const (
	KToken Kind = iota
	KEnd
	KLine
	KBlock
)

// Slice is a semi-parsed token grouping preserving enclosure and line
// structure, the intermediate tree between the flat lexer output and the
// cooked Stmt tree.
type Slice struct {
	Kind     Kind
	Token    token.Token // valid when Kind == KToken
	Line     uint32      // valid when Kind == KEnd
	Children []Slice     // valid when Kind == KLine or KBlock
}

// Empty reports whether a Slice contains no token-bearing content: only End
// markers (or nothing) count as empty, so line numbers keep propagating
// through syntactically empty lines without those lines contributing any
// statement.
func (s Slice) Empty() bool {
	switch s.Kind {
	case KToken:
		return false
	case KEnd:
		return true
	case KLine, KBlock:
		for _, c := range s.Children {
			if !c.Empty() {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Build builds the Slice tree for an entire token stream (spec.md §4.2,
// top-level entry: not inside a block, not inside parens).
func Build(toks []token.Token) (Slice, error) {
	return sliceRange(toks, 0, len(toks), false, false)
}

// sliceRange implements the recursive algorithm over the token range
// [lo, hi), honoring is_paren (End does not split lines) and is_block
// (gates the transparent-paren-unwrap rule).
func sliceRange(toks []token.Token, lo, hi int, isParen, isBlock bool) (Slice, error) {
	// Rule 1: empty / single-token ranges.
	if lo >= hi {
		return Slice{Kind: KBlock}, nil
	}
	if hi-lo == 1 {
		t := toks[lo]
		if t.Kind == token.KEnd {
			return Slice{Kind: KBlock}, nil
		}
		if t.Kind == token.KEnter {
			// A standalone Enter with nothing else in range only happens
			// for a degenerate zero-length enclosure; treat as empty.
			return Slice{Kind: KBlock}, nil
		}
		return Slice{Kind: KToken, Token: t}, nil
	}

	// Rule 2: whole range is a single transparent paren group.
	if !isBlock && toks[lo].Kind == token.KEnter && toks[lo].Enc == token.Paren {
		span := int(toks[lo].Span)
		if lo+span == hi {
			return sliceRange(toks, lo+1, lo+span-1, true, true)
		}
	}

	// Rule 3: linear walk, splitting into Lines (unless inside parens).
	return walkLines(toks, lo, hi, isParen)
}

// walkLines performs the bullet-3 linear scan, producing a single Line (or
// that Line's only child, when it has just one child besides End markers)
// when only one non-empty line results, and a Block of Lines otherwise.
func walkLines(toks []token.Token, lo, hi int, isParen bool) (Slice, error) {
	var lines []Slice
	var cur []Slice

	flushLine := func() {
		lines = append(lines, Slice{Kind: KLine, Children: cur})
		cur = nil
	}

	p := lo
	for p < hi {
		t := toks[p]
		switch t.Kind {
		case token.KEnd:
			cur = append(cur, Slice{Kind: KEnd, Line: t.Line})
			if !isParen {
				flushLine()
			}
			p++
		case token.KEnter:
			span := int(t.Span)
			if lo <= p && p+span > hi {
				return Slice{}, errs.New(t.Line, "enclosure span escapes its containing range")
			}
			child, err := sliceEnclosure(toks, p)
			if err != nil {
				return Slice{}, err
			}
			cur = append(cur, child)
			p += span
		case token.KClose:
			// Only reachable if a span computation went wrong upstream.
			return Slice{}, errs.New(t.Line, "unexpected closing delimiter in slice")
		default:
			cur = append(cur, Slice{Kind: KToken, Token: t})
			p++
		}
	}
	flushLine()

	// Prune trailing empty lines.
	for len(lines) > 0 && lines[len(lines)-1].Empty() {
		lines = lines[:len(lines)-1]
	}

	if len(lines) == 0 {
		return Slice{Kind: KBlock}, nil
	}
	if len(lines) == 1 {
		var content []Slice
		for _, c := range lines[0].Children {
			if c.Kind != KEnd {
				content = append(content, c)
			}
		}
		if len(content) == 1 {
			return content[0], nil
		}
		return lines[0], nil
	}
	return Slice{Kind: KBlock, Children: lines}, nil
}

// sliceEnclosure handles one Enter token encountered during a linear walk
// (or as the sole content of a range), per enclosure kind.
func sliceEnclosure(toks []token.Token, idx int) (Slice, error) {
	t := toks[idx]
	span := int(t.Span)
	interiorLo, interiorHi := idx+1, idx+span-1

	switch t.Enc {
	case token.Paren:
		return sliceRange(toks, interiorLo, interiorHi, true, true)
	case token.Bracket:
		return Slice{}, errs.New(t.Line, "reserved enclosure: [...] is not available")
	case token.Brace:
		return sliceBlock(toks, interiorLo, interiorHi, t.Line)
	default:
		return Slice{}, errs.New(t.Line, "unknown enclosure kind")
	}
}

// sliceBlock implements "Enter(_, Brace) opens a new block": repeatedly
// skip runs of End tokens, slice one sub-range per line, collect non-empty
// results, and collapse to a single child when exactly one remains.
func sliceBlock(toks []token.Token, lo, hi int, line uint32) (Slice, error) {
	var children []Slice
	p := lo
	for p < hi {
		for p < hi && toks[p].Kind == token.KEnd {
			p++
		}
		if p >= hi {
			break
		}
		start := p
		for p < hi && toks[p].Kind != token.KEnd {
			if toks[p].Kind == token.KEnter {
				p += int(toks[p].Span)
				continue
			}
			p++
		}
		child, err := sliceRange(toks, start, p, false, true)
		if err != nil {
			return Slice{}, err
		}
		if !child.Empty() {
			children = append(children, child)
		}
	}

	if len(children) == 0 {
		return Slice{Kind: KBlock}, nil
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return Slice{Kind: KBlock, Children: children}, nil
}
