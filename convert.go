package notation

import (
	"strings"

	"github.com/zephyrtronium/notation/internal/container"
)

// Conversion is the result of converting an infix expression.
type Conversion struct {
	// Infix is the expression that was converted.
	Infix string
	// Output is the converted expression, tokens separated by single spaces.
	Output string
	// To is the notation of Output.
	To Notation
	// Operands is the operand kind of the expression.
	Operands OperandKind
	// Events is every action the conversion took, in order.
	Events []Event
}

func (cv *Conversion) String() string {
	return cv.Output
}

// Convert validates an infix expression and converts it to postfix or prefix
// notation with the shunting-yard algorithm. If the expression is invalid,
// the result is nil and a *SyntaxError; nothing is converted.
//
// Postfix conversion scans left to right. Prefix conversion scans right to
// left with the roles of the parentheses swapped, then reverses its output.
// Panics if to is neither Postfix nor Prefix.
func Convert(expr string, to Notation, opts ...Option) (*Conversion, error) {
	if to != Postfix && to != Prefix {
		panic("notation: cannot convert to " + to.String())
	}
	c := newConfig(opts)
	if err := c.validate(expr); err != nil {
		return nil, err
	}
	return c.convert(expr, to), nil
}

// converter is the state of one conversion.
type converter struct {
	c   config
	to  Notation
	ops container.Stack[lexToken]
	out container.DList[string]
	ev  []Event
}

func (cv *converter) record(kind EventKind, tok string) {
	var s strings.Builder
	cv.ops.Each(func(t lexToken) {
		if s.Len() > 0 {
			s.WriteByte(' ')
		}
		s.WriteString(t.text)
	})
	cv.ev = append(cv.ev, Event{
		Kind:   kind,
		Token:  tok,
		Stack:  s.String(),
		Output: strings.Join(cv.out.Values(), " "),
	})
}

func (c config) convert(expr string, to Notation) *Conversion {
	toks := c.lexInfix(expr)
	opening, closing := tokenOpen, tokenClose
	if to == Prefix {
		for i, j := 0, len(toks)-1; i < j; i, j = i+1, j-1 {
			toks[i], toks[j] = toks[j], toks[i]
		}
		opening, closing = tokenClose, tokenOpen
	}
	cv := converter{c: c, to: to}
	for _, tok := range toks {
		switch tok.kind {
		case tokenNum, tokenIdent:
			cv.out.PushBack(tok.text)
			cv.record(EventAppend, tok.text)
		case opening:
			cv.ops.Push(tok)
			cv.record(EventPush, tok.text)
		case closing:
			cv.unwind(tok)
		case tokenOp:
			cv.operator(tok)
		default:
			panic("notation: unknown token: " + tok.String())
		}
	}
	for top, ok := cv.ops.Pop(); ok; top, ok = cv.ops.Pop() {
		cv.out.PushBack(top.text)
		cv.record(EventFlush, top.text)
	}

	r := Conversion{Infix: expr, To: to, Operands: c.operandsFor(expr)}
	if to == Prefix {
		r.Output = strings.Join(cv.out.Reversed(), " ")
		cv.ev = append(cv.ev, Event{Kind: EventReverse, Output: r.Output})
	} else {
		r.Output = strings.Join(cv.out.Values(), " ")
	}
	r.Events = cv.ev
	return &r
}

// unwind pops operators to the output until the opening parenthesis matching
// the closing one in tok.
func (cv *converter) unwind(tok lexToken) {
	for {
		top, ok := cv.ops.Pop()
		if !ok {
			// Validation guarantees balanced parentheses.
			panic("notation: unmatched " + tok.String() + " in validated expression")
		}
		if top.kind == tokenOpen || top.kind == tokenClose {
			cv.record(EventDiscard, top.text)
			return
		}
		cv.out.PushBack(top.text)
		cv.record(EventPop, top.text)
	}
}

// operator pops every operator that must be emitted before tok, then pushes
// tok.
func (cv *converter) operator(tok lexToken) {
	op := cv.c.operator(tok.text[0])
	for {
		top, ok := cv.ops.Peek()
		if !ok || top.kind != tokenOp {
			break
		}
		if !op.yields(cv.c.operator(top.text[0]), cv.to) {
			break
		}
		cv.ops.Pop()
		cv.out.PushBack(top.text)
		cv.record(EventPop, top.text)
	}
	cv.ops.Push(tok)
	cv.record(EventPush, tok.text)
}
