package cook

import (
	"github.com/impodog/leas/errs"
	"github.com/impodog/leas/slice"
	"github.com/impodog/leas/token"
)

type assoc uint8

const (
	left assoc = iota
	right
	unary
)

type opInfo struct {
	stmtKind Kind
	priority int
	assoc    assoc
}

// operators is the table from spec.md §4.3. Lower priority binds tighter.
// callKind is synthetic: the lexer never produces it, the cooker injects it
// between adjacent non-operator operands.
const callKind = token.KCall

var operators = map[token.Kind]opInfo{
	token.KDot:     {SDot, 1, left},
	token.KColon:   {SColon, 2, left},
	token.KImport:  {SImport, 3, unary},
	token.KInclude: {SInclude, 3, unary},
	token.KExtern:  {SExtern, 3, unary},
	token.KMap:     {SMap, 4, unary},
	token.KFn:      {SFn, 5, unary},
	token.KDo:      {SDo, 6, left}, // not in spec's precedence table; placed between Fn and Neg, see DESIGN.md
	token.KNeg:     {SNeg, 10, unary},
	token.KMove:    {SMove, 15, unary},
	token.KAcq:     {SAcq, 15, unary},
	token.KReturn:  {SReturn, 15, unary},
	callKind:       {SCall, 20, left},
	token.KList:    {SList, 50, right},
	token.KUse:     {SUse, 60, unary},
	token.KExpose:  {SExpose, 60, unary},
	token.KThen:    {SThen, 100, right},
	token.KElse:    {SElse, 101, right},
	token.KRepeat:  {SRepeat, 102, right},
	token.KAsn:     {SAsn, 200, right},
}

// Cook converts a Slice tree into a Stmt tree (spec.md §4.3, final
// paragraph: a Block slice cooks to Stmt::Block of cooked children; an
// empty Block cooks to Stmt::Empty).
func Cook(s slice.Slice) (*Stmt, error) {
	switch s.Kind {
	case slice.KEnd:
		return leaf(SEmpty, s.Line), nil
	case slice.KToken:
		return &Stmt{Kind: SToken, Tok: s.Token, Line: s.Token.Line}, nil
	case slice.KBlock:
		if len(s.Children) == 0 {
			return &Stmt{Kind: SEmpty}, nil
		}
		out := make([]Stmt, 0, len(s.Children))
		for _, c := range s.Children {
			cs, err := Cook(c)
			if err != nil {
				return nil, err
			}
			out = append(out, *cs)
		}
		return &Stmt{Kind: SBlock, Block: out, Line: out[0].Line}, nil
	case slice.KLine:
		return cookLine(s.Children)
	default:
		return nil, errs.New(0, "cook: unknown slice kind")
	}
}

// item is one entry in the shunting-yard's output queue: either a cooked
// operand (already-folded Stmt) or a pending operator token to be resolved
// against its operands during the fold pass.
type item struct {
	isOp bool
	opnd *Stmt       // valid when !isOp
	op   token.Kind  // valid when isOp
	line uint32
}

// cookLine runs the shunting-yard pass described in spec.md §4.3 over one
// Line's children, then folds the resulting RPN-like queue into a Stmt.
func cookLine(children []slice.Slice) (*Stmt, error) {
	var output []item
	var opStack []token.Kind
	var opLines []uint32
	callPending := false
	var lastLine uint32

	popWhile := func(should func(top opInfo) bool) {
		for len(opStack) > 0 {
			top := opStack[len(opStack)-1]
			info := operators[top]
			if !should(info) {
				break
			}
			output = append(output, item{isOp: true, op: top, line: opLines[len(opLines)-1]})
			opStack = opStack[:len(opStack)-1]
			opLines = opLines[:len(opLines)-1]
		}
	}

	pushOp := func(k token.Kind, line uint32) {
		info := operators[k]
		popWhile(func(top opInfo) bool {
			if info.assoc == right {
				return top.priority < info.priority
			}
			return top.priority <= info.priority
		})
		opStack = append(opStack, k)
		opLines = append(opLines, line)
	}

	pushAtom := func(s *Stmt, line uint32) {
		if callPending {
			pushOp(callKind, line)
		}
		output = append(output, item{isOp: false, opnd: s, line: line})
		callPending = true
	}

	for _, child := range children {
		switch child.Kind {
		case slice.KEnd:
			lastLine = child.Line
			continue
		case slice.KToken:
			tok := child.Token
			if _, ok := operators[tok.Kind]; ok {
				callPending = false
				pushOp(tok.Kind, tok.Line)
				lastLine = tok.Line
				continue
			}
			pushAtom(&Stmt{Kind: SToken, Tok: tok, Line: tok.Line}, tok.Line)
			lastLine = tok.Line
		case slice.KLine, slice.KBlock:
			sub, err := Cook(child)
			if err != nil {
				return nil, err
			}
			pushAtom(sub, lastLine)
		}
	}

	// Flush remaining operators.
	for i := len(opStack) - 1; i >= 0; i-- {
		output = append(output, item{isOp: true, op: opStack[i], line: opLines[i]})
	}

	return fold(output, lastLine)
}

// fold scans the RPN-like queue left to right, pushing atoms and reducing
// operators against their operands, per spec.md §4.3.
func fold(output []item, line uint32) (*Stmt, error) {
	var stack []*Stmt
	for _, it := range output {
		if !it.isOp {
			stack = append(stack, it.opnd)
			continue
		}
		info, ok := operators[it.op]
		if !ok {
			return nil, errs.New(it.line, "cook: unknown operator")
		}
		if info.assoc == unary {
			if len(stack) < 1 {
				return nil, errs.New(it.line, "missing operand for unary operator")
			}
			operand := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack = append(stack, &Stmt{Kind: info.stmtKind, Operand: operand, Line: it.line})
			continue
		}
		// Then/Repeat admit two written forms: infix (`cond then body`,
		// `cond repeat body`), which leaves two distinct operands on the
		// stack same as any other binary operator, and prefix (`then
		// cond body`, `repeat cond body` — the keyword precedes both
		// operands). In the prefix form cond and body are plain adjacent
		// atoms with no operator between them, so the implicit-Call rule
		// (§4.3) has already folded them into one Call(cond, body) node
		// by the time this operator is reduced, leaving only one operand
		// on the stack; unwrap that Call's Left/Right rather than
		// wrapping it again. See DESIGN.md.
		if it.op == token.KThen || it.op == token.KRepeat {
			if len(stack) >= 2 {
				rightOperand := stack[len(stack)-1]
				leftOperand := stack[len(stack)-2]
				stack = stack[:len(stack)-2]
				stack = append(stack, &Stmt{Kind: info.stmtKind, Left: leftOperand, Right: rightOperand, Line: it.line})
				continue
			}
			if len(stack) < 1 {
				return nil, errs.New(it.line, "missing condition/body for %s", info.stmtKind)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.Kind != SCall {
				return nil, errs.New(it.line, "%s requires a condition followed directly by a body", info.stmtKind)
			}
			stack = append(stack, &Stmt{Kind: info.stmtKind, Left: top.Left, Right: top.Right, Line: it.line})
			continue
		}
		if len(stack) < 2 {
			return nil, errs.New(it.line, "missing operand for binary operator")
		}
		rightOperand := stack[len(stack)-1]
		leftOperand := stack[len(stack)-2]
		stack = stack[:len(stack)-2]
		stack = append(stack, &Stmt{Kind: info.stmtKind, Left: leftOperand, Right: rightOperand, Line: it.line})
	}

	if len(stack) == 0 {
		return &Stmt{Kind: SEmpty, Line: line}, nil
	}
	if len(stack) != 1 {
		return nil, errs.New(line, "unclosed operator: %d residual nodes after fold", len(stack))
	}
	return stack[0], nil
}
