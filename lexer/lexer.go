// Package lexer turns leas source text into a flat stream of tokens,
// annotating matched enclosure pairs with their span length as it goes
// (spec.md §4.1). It never looks ahead more than one character; number and
// word scanning "re-examine" the terminating character in Normal state
// instead of buffering a lookahead rune.
package lexer

import (
	"strings"
	"unicode"

	"github.com/impodog/leas/errs"
	"github.com/impodog/leas/token"
)

type delim struct {
	index int
	enc   token.Enclosure
}

// Lex scans the whole input and returns the flat token stream with every
// Enter placeholder rewritten to its final span.
func Lex(input string) ([]token.Token, error) {
	l := &lexer{input: input + "\n", line: 1}
	return l.run()
}

type lexer struct {
	input string
	pos   int
	line  uint32
	toks  []token.Token
	stack []delim
}

func (l *lexer) run() ([]token.Token, error) {
	for l.pos < len(l.input) {
		if err := l.step(); err != nil {
			return nil, err
		}
	}
	if len(l.stack) > 0 {
		return nil, errs.New(l.line, "unclosed opening delimiter (%s)", l.stack[len(l.stack)-1].enc)
	}
	return l.toks, nil
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.input) {
		return 0
	}
	return l.input[l.pos+off]
}

// step consumes exactly one lexical item (token, comment, or whitespace run)
// starting at l.pos, in the Normal state.
func (l *lexer) step() error {
	ch := l.peek()

	switch {
	case ch == '\n':
		l.toks = append(l.toks, token.Token{Kind: token.KEnd, Line: l.line})
		l.line++
		l.pos++
		return nil
	case ch == ' ' || ch == '\t' || ch == '\r':
		l.pos++
		return nil
	case ch == '#':
		for l.pos < len(l.input) && l.input[l.pos] != '\n' {
			l.pos++
		}
		return nil
	case ch == '(' || ch == '[' || ch == '{':
		enc := encOf(ch)
		l.stack = append(l.stack, delim{index: len(l.toks), enc: enc})
		l.toks = append(l.toks, token.Token{Kind: token.KEnter, Enc: enc, Line: l.line})
		l.pos++
		return nil
	case ch == ')' || ch == ']' || ch == '}':
		return l.closeDelim(ch)
	case ch == '-' || isDigit(ch):
		return l.lexNumber()
	case ch == '"':
		return l.lexString()
	case ch == '.':
		l.toks = append(l.toks, token.Token{Kind: token.KDot, Line: l.line})
		l.pos++
		return nil
	case ch == ':':
		l.toks = append(l.toks, token.Token{Kind: token.KColon, Line: l.line})
		l.pos++
		return nil
	case ch == ',':
		l.toks = append(l.toks, token.Token{Kind: token.KList, Line: l.line})
		l.pos++
		return nil
	case ch == '=':
		l.toks = append(l.toks, token.Token{Kind: token.KAsn, Line: l.line})
		l.pos++
		return nil
	case isIdentStart(ch):
		return l.lexWord()
	default:
		return errs.New(l.line, "unrecognized character %q", string(ch))
	}
}

func encOf(ch byte) token.Enclosure {
	switch ch {
	case '(', ')':
		return token.Paren
	case '[', ']':
		return token.Bracket
	default:
		return token.Brace
	}
}

func (l *lexer) closeDelim(ch byte) error {
	enc := encOf(ch)
	if len(l.stack) == 0 {
		return errs.New(l.line, "unmatched closing delimiter %q", string(ch))
	}
	top := l.stack[len(l.stack)-1]
	if top.enc != enc {
		return errs.New(l.line, "mismatched enclosure: expected close for %s, got %q", top.enc, string(ch))
	}
	l.stack = l.stack[:len(l.stack)-1]

	span := uint32((len(l.toks) + 1) - top.index)
	l.toks[top.index].Span = span
	l.toks[top.index].Enc = enc
	l.toks = append(l.toks, token.Token{Kind: token.KClose, Enc: enc, Line: l.line})
	l.pos++
	return nil
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	r := rune(ch)
	return unicode.IsLetter(r) || ch == '_'
}

func isIdentCont(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// lexNumber handles the Int/Float state: digits accumulate, '.' switches to
// Float, 'u' terminates as Uint. A lone '-' buffer (no digits followed) is
// emitted as the unary Neg operator instead of an integer.
func (l *lexer) lexNumber() error {
	start := l.pos
	line := l.line
	neg := false
	if l.peek() == '-' {
		neg = true
		l.pos++
	}
	digitsStart := l.pos
	for isDigit(l.peek()) {
		l.pos++
	}
	if l.pos == digitsStart {
		if !neg {
			return errs.New(line, "expected digits")
		}
		// Buffer is exactly "-": unary minus operator.
		l.toks = append(l.toks, token.Token{Kind: token.KNeg, Line: line})
		return nil
	}

	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.pos++ // consume '.'
		for isDigit(l.peek()) {
			l.pos++
		}
		lit := l.input[start:l.pos]
		v, err := parseFloat(lit)
		if err != nil {
			return errs.Wrap(err, "could not parse %q as float", lit)
		}
		l.toks = append(l.toks, token.Token{Kind: token.KFloat, Float: v, Line: line})
		return nil
	}

	if l.peek() == '.' && l.peekAt(1) == 'u' {
		// "3.u" is rejected outright (spec.md §8): a dot immediately
		// followed by the uint suffix is not a valid float (no digits
		// after the dot) and not a sensible dot-call target either.
		return errs.New(line, "invalid numeric literal: %q", l.input[start:l.pos]+".u")
	}

	if l.peek() == '.' {
		// "42." -> Int(42), Dot: the '.' belongs to method-call syntax, not
		// the number (the Float buffer would end in '.', which is rejected
		// as a float and instead re-emitted as Int + Dot).
		lit := l.input[start:l.pos]
		v, err := parseInt(lit)
		if err != nil {
			return errs.Wrap(err, "could not parse %q as integer", lit)
		}
		l.toks = append(l.toks, token.Token{Kind: token.KInt, Int: v, Line: line})
		l.pos++ // consume '.'
		l.toks = append(l.toks, token.Token{Kind: token.KDot, Line: line})
		return nil
	}

	if l.peek() == 'u' {
		lit := l.input[start:l.pos]
		v, err := parseUint(lit)
		if err != nil {
			return errs.Wrap(err, "could not parse %q as unsigned integer", lit)
		}
		l.pos++ // consume 'u'
		l.toks = append(l.toks, token.Token{Kind: token.KUint, Uint: v, Line: line})
		return nil
	}

	lit := l.input[start:l.pos]
	v, err := parseInt(lit)
	if err != nil {
		return errs.Wrap(err, "could not parse %q as integer", lit)
	}
	l.toks = append(l.toks, token.Token{Kind: token.KInt, Int: v, Line: line})
	return nil
}

// lexString scans a double-quoted string literal, toggling between cooked
// and raw escape modes on every unescaped '%'.
func (l *lexer) lexString() error {
	line := l.line
	l.pos++ // consume opening quote
	var out strings.Builder
	raw := false
	for {
		if l.pos >= len(l.input) {
			return errs.New(line, "unterminated string literal")
		}
		ch := l.input[l.pos]
		switch {
		case ch == '"':
			l.pos++
			l.toks = append(l.toks, token.Token{Kind: token.KStr, Str: out.String(), Line: line})
			return nil
		case ch == '%':
			raw = !raw
			l.pos++
		case ch == '\n':
			l.line++
			out.WriteByte(ch)
			l.pos++
		case ch == '\\' && !raw:
			l.pos++
			if l.pos >= len(l.input) {
				return errs.New(line, "unterminated string literal")
			}
			esc := l.input[l.pos]
			switch esc {
			case 'n':
				out.WriteByte('\n')
			case 'r':
				out.WriteByte('\r')
			case 't':
				out.WriteByte('\t')
			default:
				out.WriteByte(esc)
			}
			l.pos++
		case ch == '\\' && raw:
			// Raw mode preserves the backslash verbatim ahead of whatever
			// it escapes.
			out.WriteByte(ch)
			l.pos++
			if l.pos < len(l.input) {
				out.WriteByte(l.input[l.pos])
				l.pos++
			}
		default:
			out.WriteByte(ch)
			l.pos++
		}
	}
}

func (l *lexer) lexWord() error {
	start := l.pos
	line := l.line
	for l.pos < len(l.input) && isIdentCont(l.input[l.pos]) {
		l.pos++
	}
	buf := l.input[start:l.pos]
	l.toks = append(l.toks, token.LookupWord(buf, line))
	return nil
}
