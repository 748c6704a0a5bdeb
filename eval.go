package notation

import (
	"math"

	"github.com/zephyrtronium/notation/internal/container"
)

// Result is the outcome of a numeric evaluation.
type Result struct {
	// Value is the value of the expression. It is NaN if evaluation failed.
	Value float64
	// Steps is every reduction the evaluation performed, in order. If
	// evaluation failed, it holds the reductions up to the failure.
	Steps []Step
}

// Evaluate evaluates a converted numeric expression in postfix or prefix
// notation. Tokens may be separated by spaces; numbers must be.
//
// A postfix expression is evaluated with an operand stack: numbers are
// pushed, and each operator pops its operands, the first popped being the
// right-hand one, and pushes its result. A prefix expression is evaluated by
// repeatedly replacing the leftmost operator whose operands are both numbers
// with its result.
//
// If the expression is over the length limit or does not reduce to exactly
// one number, the error is an *EvalError. A division by zero stops evaluation with a
// *DivisionByZeroError, which is fatal. In either case Value is NaN.
// Panics if from is neither Postfix nor Prefix.
func Evaluate(converted string, from Notation, opts ...Option) (Result, error) {
	c := newConfig(opts)
	var ev evaluator
	toks, err := c.lexConverted(converted)
	if err != nil {
		return ev.fail(err)
	}
	switch from {
	case Postfix:
		return ev.postfix(c, toks)
	case Prefix:
		return ev.prefix(c, toks)
	default:
		panic("notation: cannot evaluate " + from.String())
	}
}

// evaluator collects the steps of one evaluation.
type evaluator struct {
	steps container.Queue[Step]
}

func (ev *evaluator) fail(err error) (Result, error) {
	return Result{Value: math.NaN(), Steps: ev.steps.Drain()}, err
}

func (ev *evaluator) done(v float64) (Result, error) {
	return Result{Value: v, Steps: ev.steps.Drain()}, nil
}

// reduce applies op and records the step.
func (ev *evaluator) reduce(op operator, a, b float64, col int) (float64, error) {
	r, err := op.apply(a, b, col)
	if err != nil {
		return r, err
	}
	ev.steps.Enqueue(Step{Operand1: a, Operand2: b, Operator: op.Symbol, Result: r})
	return r, nil
}

func (ev *evaluator) postfix(c config, toks []lexToken) (Result, error) {
	st := container.NewStack[float64](len(toks)/2 + 1)
	for _, tok := range toks {
		if tok.kind == tokenNum {
			st.Push(atof(tok.text))
			continue
		}
		op := c.operator(tok.text[0])
		var a, b float64
		if op.Unary {
			x, ok := st.Pop()
			if !ok {
				return ev.fail(&EvalError{Kind: StackUnderflow, Col: tok.pos, Text: tok.text})
			}
			a = x
		} else {
			if st.Len() < 2 {
				return ev.fail(&EvalError{Kind: StackUnderflow, Col: tok.pos, Text: tok.text})
			}
			b, _ = st.Pop()
			a, _ = st.Pop()
		}
		r, err := ev.reduce(op, a, b, tok.pos)
		if err != nil {
			return ev.fail(err)
		}
		st.Push(r)
	}
	if st.Len() != 1 {
		return ev.fail(&EvalError{Kind: MalformedExpression})
	}
	v, _ := st.Pop()
	return ev.done(v)
}

// term is an element of a prefix expression under reduction.
type term struct {
	num bool
	v   float64
	op  operator
	pos int
}

func (ev *evaluator) prefix(c config, toks []lexToken) (Result, error) {
	var l container.DList[term]
	for _, tok := range toks {
		if tok.kind == tokenNum {
			l.PushBack(term{num: true, v: atof(tok.text), pos: tok.pos})
		} else {
			l.PushBack(term{op: c.operator(tok.text[0]), pos: tok.pos})
		}
	}
	for {
		if l.Len() == 1 && l.Front().Value.num {
			return ev.done(l.Front().Value.v)
		}
		n, err := ev.substitute(&l)
		if err != nil {
			return ev.fail(err)
		}
		if !n {
			break
		}
	}
	// Nothing left to reduce. Point at the first stuck operator, if any.
	for n := l.Front(); n != nil; n = n.Next() {
		if !n.Value.num {
			return ev.fail(&EvalError{Kind: MalformedExpression, Col: n.Value.pos, Text: string(n.Value.op.Symbol)})
		}
	}
	return ev.fail(&EvalError{Kind: MalformedExpression})
}

// substitute replaces the leftmost operator applied to numbers with its
// result. The result is false if there is no such operator.
func (ev *evaluator) substitute(l *container.DList[term]) (bool, error) {
	for n := l.Front(); n != nil; n = n.Next() {
		t := n.Value
		if t.num {
			continue
		}
		x := n.Next()
		if x == nil || !x.Value.num {
			continue
		}
		if t.op.Unary {
			r, err := ev.reduce(t.op, x.Value.v, 0, t.pos)
			if err != nil {
				return false, err
			}
			n.Value = term{num: true, v: r, pos: t.pos}
			l.Remove(x)
			return true, nil
		}
		y := x.Next()
		if y == nil || !y.Value.num {
			continue
		}
		r, err := ev.reduce(t.op, x.Value.v, y.Value.v, t.pos)
		if err != nil {
			return false, err
		}
		n.Value = term{num: true, v: r, pos: t.pos}
		l.Remove(x)
		l.Remove(y)
		return true, nil
	}
	return false, nil
}
