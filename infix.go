package notation

import (
	"github.com/zephyrtronium/notation/internal/container"
)

// EvaluateInfix validates and evaluates a numeric infix expression directly,
// without converting it first. It uses two stacks, one of values and one of
// operators, applying each operator as soon as precedence and associativity
// allow. The steps are the same as evaluating the postfix conversion.
//
// Errors are as for Validate, then as for Evaluate.
func EvaluateInfix(expr string, opts ...Option) (Result, error) {
	c := newConfig(opts)
	c.operands, c.fixed = Numeric, true
	var ev evaluator
	if err := c.validate(expr); err != nil {
		return ev.fail(err)
	}
	var (
		vals container.Stack[float64]
		ops  container.Stack[lexToken]
	)
	// apply pops the top operator and its operands and pushes the result.
	apply := func() error {
		tok, _ := ops.Pop()
		op := c.operator(tok.text[0])
		var a, b float64
		if op.Unary {
			x, ok := vals.Pop()
			if !ok {
				return &EvalError{Kind: StackUnderflow, Col: tok.pos, Text: tok.text}
			}
			a = x
		} else {
			if vals.Len() < 2 {
				return &EvalError{Kind: StackUnderflow, Col: tok.pos, Text: tok.text}
			}
			b, _ = vals.Pop()
			a, _ = vals.Pop()
		}
		r, err := ev.reduce(op, a, b, tok.pos)
		if err != nil {
			return err
		}
		vals.Push(r)
		return nil
	}
	for _, tok := range c.lexInfix(expr) {
		switch tok.kind {
		case tokenNum:
			vals.Push(atof(tok.text))
		case tokenOpen:
			ops.Push(tok)
		case tokenClose:
			for {
				top, ok := ops.Peek()
				if !ok {
					panic("notation: unmatched ) in validated expression")
				}
				if top.kind == tokenOpen {
					ops.Pop()
					break
				}
				if err := apply(); err != nil {
					return ev.fail(err)
				}
			}
		case tokenOp:
			op := c.operator(tok.text[0])
			for {
				top, ok := ops.Peek()
				if !ok || top.kind != tokenOp || !op.yields(c.operator(top.text[0]), Postfix) {
					break
				}
				if err := apply(); err != nil {
					return ev.fail(err)
				}
			}
			ops.Push(tok)
		default:
			panic("notation: unexpected token in numeric expression: " + tok.String())
		}
	}
	for ops.Len() > 0 {
		if err := apply(); err != nil {
			return ev.fail(err)
		}
	}
	if vals.Len() != 1 {
		return ev.fail(&EvalError{Kind: MalformedExpression})
	}
	v, _ := vals.Pop()
	return ev.done(v)
}
