package notation

import "math"

// Operators contains the bytes which are always operators. The unary square
// root s is added by the Sqrt option.
const Operators = "+-*/^"

// SqrtOperator is the unary square root operator.
const SqrtOperator = 's'

// Assoc is the associativity of an operator.
type Assoc int8

const (
	// Left associativity groups a-b-c as (a-b)-c.
	Left Assoc = iota
	// Right associativity groups a^b^c as a^(b^c).
	Right
)

func (a Assoc) String() string {
	if a == Right {
		return "right"
	}
	return "left"
}

// OperatorSpec describes one operator.
type OperatorSpec struct {
	// Symbol is the operator character.
	Symbol byte
	// Prec is the precedence. Higher binds tighter.
	Prec int
	// Assoc is the tie-break for operators of equal precedence.
	Assoc Assoc
	// Unary is whether the operator takes one operand, written before it in
	// infix.
	Unary bool
}

type operator struct {
	OperatorSpec
}

var optable = [...]operator{
	{OperatorSpec{'+', 1, Left, false}},
	{OperatorSpec{'-', 1, Left, false}},
	{OperatorSpec{'*', 2, Left, false}},
	{OperatorSpec{'/', 2, Left, false}},
	{OperatorSpec{'^', 3, Right, false}},
	{OperatorSpec{SqrtOperator, 4, Right, true}},
}

// lookup gets the operator for a byte. The second result is false if c is not
// an operator under the config.
func (c config) lookup(b byte) (operator, bool) {
	for _, op := range optable {
		if op.Symbol != b {
			continue
		}
		if op.Unary && !c.sqrt {
			return operator{}, false
		}
		return op, true
	}
	return operator{}, false
}

// operator is lookup for bytes already known to be operators. Panics if b is
// not one.
func (c config) operator(b byte) operator {
	op, ok := c.lookup(b)
	if !ok {
		panic("notation: not an operator: " + string(b))
	}
	return op
}

func (c config) isOperator(b byte) bool {
	_, ok := c.lookup(b)
	return ok
}

// OperatorTable returns the operators recognized under the given options, in
// increasing precedence.
func OperatorTable(opts ...Option) []OperatorSpec {
	c := newConfig(opts)
	r := make([]OperatorSpec, 0, len(optable))
	for _, op := range optable {
		if _, ok := c.lookup(op.Symbol); ok {
			r = append(r, op.OperatorSpec)
		}
	}
	return r
}

// yields reports whether op, arriving while top is on the operator stack,
// must let top be emitted first. Scanning right to left for prefix notation
// mirrors associativity, so equal precedence pops for right-associative
// operators there and for left-associative ones otherwise.
func (op operator) yields(top operator, dir Notation) bool {
	if top.Prec != op.Prec {
		return top.Prec > op.Prec
	}
	if dir == Prefix {
		return op.Assoc == Right
	}
	return op.Assoc == Left
}

// apply computes op on its operands. b is ignored for unary operators. col is
// the position of the operator for errors.
func (op operator) apply(a, b float64, col int) (float64, error) {
	switch op.Symbol {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	case '/':
		if b == 0 {
			return math.NaN(), &DivisionByZeroError{Col: col, Dividend: a}
		}
		return a / b, nil
	case '^':
		return math.Pow(a, b), nil
	case SqrtOperator:
		if a < 0 {
			return math.NaN(), &DomainError{Col: col, X: a, Func: string(SqrtOperator)}
		}
		return math.Sqrt(a), nil
	default:
		panic("notation: no arithmetic for operator " + string(op.Symbol))
	}
}
