package eval

import (
	"github.com/impodog/leas/cook"
	"github.com/impodog/leas/env"
	"github.com/impodog/leas/value"
)

// returnSignal is how Eval threads Stmt::Return's "return immediately"
// control flow back through nested Block evaluations without unwrapping it
// at every layer — only Run (the module boundary) and a Fn body (the
// function-call boundary) unwrap it.
// Block evaluation forwards the signal unchanged; only a call boundary
// peels it off.
type returnSignal struct {
	val value.Value
}

func (r *returnSignal) Error() string { return "return" }

func unwrapReturn(v value.Value, err error) (value.Value, error) {
	if rs, ok := err.(*returnSignal); ok {
		return rs.val, nil
	}
	return v, err
}

// Run evaluates s against m and unwraps a top-level Return, the boundary a
// module body or a Fn invocation both sit at.
func Run(s *cook.Stmt, m *env.Map) (value.Value, error) {
	return unwrapReturn(Eval(s, m))
}
