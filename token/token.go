// Package token defines the vocabulary produced by the lexer and consumed
// by the slicer and cooker: the flat alphabet the rest of the front end is
// built on.
package token

// Enclosure identifies which bracket pair an Enter/matching-close token
// belongs to.
type Enclosure uint8

const (
	Paren Enclosure = iota
	Bracket
	Brace
)

func (e Enclosure) String() string {
	switch e {
	case Paren:
		return "paren"
	case Bracket:
		return "bracket"
	case Brace:
		return "brace"
	default:
		return "enclosure?"
	}
}

// Kind is the tag of a Token's variant.
type Kind uint8

const (
	KInt Kind = iota
	KUint
	KFloat
	KBool
	KStr
	KNull
	KStop
	KWord
	KEnd
	KEnter
	KClose // matching close of an Enter; consumed by the slicer, never emitted standalone in final trees
	KDot
	KColon
	KAsn
	KList
	KNeg
	KCall
	KImport
	KInclude
	KExtern
	KMap
	KFn
	KMove
	KAcq
	KReturn
	KDo
	KUse
	KExpose
	KThen
	KElse
	KRepeat
)

var kindNames = map[Kind]string{
	KInt: "Int", KUint: "Uint", KFloat: "Float", KBool: "Bool", KStr: "Str",
	KNull: "Null", KStop: "Stop", KWord: "Word", KEnd: "End", KEnter: "Enter",
	KClose: "Close", KDot: "Dot", KColon: "Colon", KAsn: "Asn", KList: "List",
	KNeg: "Neg", KCall: "Call", KImport: "Import", KInclude: "Include",
	KExtern: "Extern", KMap: "Map", KFn: "Fn", KMove: "Move", KAcq: "Acq",
	KReturn: "Return", KDo: "Do", KUse: "Use", KExpose: "Expose",
	KThen: "Then", KElse: "Else", KRepeat: "Repeat",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "?"
}

// Token is a single lexical unit. Only the fields relevant to its Kind are
// populated; Line always is.
type Token struct {
	Kind Kind
	Line uint32

	// Literal payloads.
	Int   int64
	Uint  uint64
	Float float64
	Bool  bool
	Str   string
	Word  string

	// Enter payload: span is the distance (in tokens) to the matching
	// close, inclusive, filled in by the lexer once the close is seen.
	Span uint32
	Enc  Enclosure
}

// keywords maps reserved identifier spellings to their keyword-operator
// Kind. Anything not in this table (and not true/false/null/stop) lexes as
// KWord.
var keywords = map[string]Kind{
	"true": KBool, "false": KBool, "null": KNull, "stop": KStop,

	"import":  KImport,
	"include": KInclude,
	"extern":  KExtern,
	"map":     KMap,
	"fn":      KFn,
	"move":    KMove,
	"acq":     KAcq,
	"return":  KReturn,
	"do":      KDo,
	"use":     KUse,
	"expose":  KExpose,
	"then":    KThen,
	"else":    KElse,
	"repeat":  KRepeat,
}

// LookupWord classifies an identifier buffer, returning a fully-formed
// Token for keywords/true/false/null/stop and a bare KWord Token otherwise.
func LookupWord(buf string, line uint32) Token {
	if k, ok := keywords[buf]; ok {
		switch k {
		case KBool:
			return Token{Kind: KBool, Bool: buf == "true", Line: line}
		default:
			return Token{Kind: k, Line: line}
		}
	}
	return Token{Kind: KWord, Word: buf, Line: line}
}
