package notation

import (
	"strconv"
	"strings"

	"github.com/zephyrtronium/notation/internal/container"
)

// ReduceState is the terminal state of a symbolic reduction.
type ReduceState int8

const (
	// Reduced means the expression reduced to a single letter.
	Reduced ReduceState = iota + 1
	// Residual means no further substitution applied while more than one
	// symbol remained. It is inconclusive rather than an error.
	Residual
)

func (s ReduceState) String() string {
	switch s {
	case Reduced:
		return "reduced"
	case Residual:
		return "residual"
	default:
		return "ReduceState(" + strconv.Itoa(int(s)) + ")"
	}
}

// Reduction is the result of reducing a symbolic expression.
type Reduction struct {
	// Input is the converted expression with spaces removed.
	Input string
	// Residual is what remains after the last substitution. When State is
	// Reduced, it is a single letter.
	Residual string
	// State is the terminal state.
	State ReduceState
	// Substitutions is every substitution made, in order.
	Substitutions []Substitution
}

// Reduce verifies a converted symbolic expression by repeatedly replacing the
// leftmost fully applied operator with a placeholder letter until none is
// left. In postfix that is two letters then a binary operator, or a letter
// then a unary operator; prefix mirrors it. Postfix placeholders count down
// from Z and prefix ones from z, wrapping around after A or a.
//
// Reduce never fails. An expression that does not come down to one letter
// ends in the Residual state, as does one over the length limit, which is not
// reduced at all.
// Panics if from is neither Postfix nor Prefix.
func Reduce(converted string, from Notation, opts ...Option) Reduction {
	c := newConfig(opts)
	var last byte
	switch from {
	case Postfix:
		last = 'Z'
	case Prefix:
		last = 'z'
	default:
		panic("notation: cannot reduce " + from.String())
	}
	s := compact(converted)
	r := Reduction{Input: s}
	if len(s) > c.maxlen {
		r.Residual, r.State = s, Residual
		return r
	}
	p := placeholders{c: c, last: last, next: last}
	for {
		i, n := c.redex(s, from)
		if n == 0 {
			break
		}
		ph := p.take()
		found := s[i : i+n]
		s = s[:i] + string(ph) + s[i+n:]
		r.Substitutions = append(r.Substitutions, Substitution{Found: found, Placeholder: ph, Expr: s})
	}
	r.Residual = s
	r.State = Residual
	if len(s) == 1 && c.isSymbol(s[0]) {
		r.State = Reduced
	}
	return r
}

// redex finds the leftmost reducible operator application in s. n is 0 if
// there is none.
func (c config) redex(s string, from Notation) (i, n int) {
	for i := 0; i < len(s); i++ {
		if from == Postfix {
			if i+1 < len(s) && c.isSymbol(s[i]) && c.isUnary(s[i+1]) {
				return i, 2
			}
			if i+2 < len(s) && c.isSymbol(s[i]) && c.isSymbol(s[i+1]) && c.isBinary(s[i+2]) {
				return i, 3
			}
			continue
		}
		if i+1 < len(s) && c.isUnary(s[i]) && c.isSymbol(s[i+1]) {
			return i, 2
		}
		if i+2 < len(s) && c.isBinary(s[i]) && c.isSymbol(s[i+1]) && c.isSymbol(s[i+2]) {
			return i, 3
		}
	}
	return 0, 0
}

// CheckArity reports whether a converted symbolic expression is a complete
// expression tree: every operator has its operands and exactly one value is
// left. It agrees with Reduce reaching the Reduced state, so it is false for
// expressions over the length limit.
// Panics if from is neither Postfix nor Prefix.
func CheckArity(converted string, from Notation, opts ...Option) bool {
	c := newConfig(opts)
	s := compact(converted)
	if len(s) > c.maxlen {
		return false
	}
	var st container.Stack[byte]
	step := func(b byte) bool {
		switch {
		case c.isSymbol(b):
			st.Push(b)
		case c.isUnary(b):
			if _, ok := st.Pop(); !ok {
				return false
			}
			st.Push('?')
		case c.isBinary(b):
			if st.Len() < 2 {
				return false
			}
			st.Pop()
			st.Pop()
			st.Push('?')
		default:
			return false
		}
		return true
	}
	switch from {
	case Postfix:
		for i := 0; i < len(s); i++ {
			if !step(s[i]) {
				return false
			}
		}
	case Prefix:
		for i := len(s) - 1; i >= 0; i-- {
			if !step(s[i]) {
				return false
			}
		}
	default:
		panic("notation: cannot check arity of " + from.String())
	}
	return st.Len() == 1
}

// placeholders hands out placeholder letters counting down from last.
type placeholders struct {
	c    config
	last byte
	next byte
}

func (p *placeholders) take() byte {
	for {
		b := p.next
		if b == p.last-25 {
			p.next = p.last
		} else {
			p.next--
		}
		if !p.c.isOperator(b) {
			return b
		}
	}
}

func (c config) isSymbol(b byte) bool {
	return isLetter(b) && !c.isOperator(b)
}

func (c config) isUnary(b byte) bool {
	op, ok := c.lookup(b)
	return ok && op.Unary
}

func (c config) isBinary(b byte) bool {
	op, ok := c.lookup(b)
	return ok && !op.Unary
}

// compact removes spaces from s.
func compact(s string) string {
	if !strings.ContainsAny(s, " \t") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if !isSpace(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
