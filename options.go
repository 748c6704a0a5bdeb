package notation

import "strconv"

// Notation is the position of operators relative to their operands.
type Notation int8

const (
	// Infix places operators between operands: a+b.
	Infix Notation = iota
	// Postfix places operators after both operands: a b +.
	Postfix
	// Prefix places operators before both operands: + a b.
	Prefix
)

func (n Notation) String() string {
	switch n {
	case Infix:
		return "infix"
	case Postfix:
		return "postfix"
	case Prefix:
		return "prefix"
	default:
		return "Notation(" + strconv.Itoa(int(n)) + ")"
	}
}

// OperandKind distinguishes numeric expressions from symbolic ones.
type OperandKind int8

const (
	// Numeric operands are decimal numbers: digits with at most one point.
	Numeric OperandKind = iota
	// Symbolic operands are single letters.
	Symbolic
)

func (k OperandKind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Symbolic:
		return "symbolic"
	default:
		return "OperandKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// DefaultMaxLen is the default limit on meaningful (non-space) bytes in an
// expression.
const DefaultMaxLen = 255

// Option is an option for validating, converting, or evaluating.
type Option interface {
	option(config) config
}

type (
	operandsopt OperandKind
	sqrtopt     bool
	maxlenopt   int
)

// config holds the options for one call. Every exported operation builds a
// fresh config, so calls share nothing.
type config struct {
	// operands is the operand kind when fixed is set. Otherwise it is
	// detected from each expression.
	operands OperandKind
	fixed    bool
	// sqrt enables the unary square root operator s.
	sqrt bool
	// maxlen is the limit on meaningful bytes.
	maxlen int
}

func newConfig(opts []Option) config {
	c := config{maxlen: DefaultMaxLen}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	return c
}

// Operands fixes the operand kind instead of detecting it from the
// expression. A fixed kind makes operands of the other kind invalid
// characters.
func Operands(k OperandKind) Option {
	return operandsopt(k)
}

func (o operandsopt) option(c config) config {
	switch OperandKind(o) {
	case Numeric, Symbolic:
	default:
		panic("notation: invalid operand kind " + OperandKind(o).String())
	}
	c.operands = OperandKind(o)
	c.fixed = true
	return c
}

// Sqrt enables or disables the unary square root operator s. While it is
// enabled, the letter s is an operator and never an operand.
func Sqrt(enabled bool) Option {
	return sqrtopt(enabled)
}

func (o sqrtopt) option(c config) config {
	c.sqrt = bool(o)
	return c
}

// MaxLen sets the limit on meaningful bytes in an expression. n must be
// positive.
func MaxLen(n int) Option {
	if n <= 0 {
		panic("notation: non-positive length limit " + strconv.Itoa(n))
	}
	return maxlenopt(n)
}

func (o maxlenopt) option(c config) config {
	c.maxlen = int(o)
	return c
}

// operandsFor returns the operand kind to use for expr.
func (c config) operandsFor(expr string) OperandKind {
	if c.fixed {
		return c.operands
	}
	for i := 0; i < len(expr); i++ {
		if isLetter(expr[i]) && !c.isOperator(expr[i]) {
			return Symbolic
		}
	}
	return Numeric
}

// Detect reports the operand kind of expr: Symbolic if it contains any letter
// that is not an operator, Numeric otherwise. An Operands option overrides
// detection.
func Detect(expr string, opts ...Option) OperandKind {
	return newConfig(opts).operandsFor(expr)
}
