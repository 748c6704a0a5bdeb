package notation

import (
	"errors"
	"strconv"
)

// SyntaxKind identifies the rule an invalid infix expression breaks.
type SyntaxKind int8

const (
	SyntaxNone SyntaxKind = iota
	// EmptyExpression is an expression with no meaningful characters.
	EmptyExpression
	// InvalidCharacter is a character that is not an operand, operator,
	// space, or parenthesis, or an operand of the wrong kind.
	InvalidCharacter
	// MissingOperatorBeforeParen is a ( directly after an operand.
	MissingOperatorBeforeParen
	// MissingOperandBeforeParen is a ) directly after an operator.
	MissingOperandBeforeParen
	// EmptyParentheses is a ) directly after a (.
	EmptyParentheses
	// UnbalancedClose is a ) with no ( to match.
	UnbalancedClose
	// ConsecutiveOperators is an operator directly after another.
	ConsecutiveOperators
	// MissingOperator is an operand directly after another.
	MissingOperator
	// LeadingOperator is a binary operator at the start of the expression
	// or of a parenthesized group.
	LeadingOperator
	// TrailingOperator is an operator at the end of the expression.
	TrailingOperator
	// UnbalancedOpen is a ( with no ) to match.
	UnbalancedOpen
	// MalformedNumber is a number with two decimal points or no digits.
	MalformedNumber
	// ExpressionTooLong is an expression over the length limit.
	ExpressionTooLong
)

var syntaxmsgs = [...]string{
	SyntaxNone:                 "no error",
	EmptyExpression:            "empty expression",
	InvalidCharacter:           "invalid character",
	MissingOperatorBeforeParen: "missing operator before parenthesis",
	MissingOperandBeforeParen:  "missing operand before parenthesis",
	EmptyParentheses:           "empty parentheses",
	UnbalancedClose:            "close parenthesis with no open parenthesis",
	ConsecutiveOperators:       "consecutive operators",
	MissingOperator:            "missing operator between operands",
	LeadingOperator:            "expression cannot start with operator",
	TrailingOperator:           "expression cannot end with operator",
	UnbalancedOpen:             "open parenthesis with no close parenthesis",
	MalformedNumber:            "malformed number",
	ExpressionTooLong:          "expression too long",
}

func (k SyntaxKind) String() string {
	if k < 0 || int(k) >= len(syntaxmsgs) {
		return "SyntaxKind(" + strconv.Itoa(int(k)) + ")"
	}
	return syntaxmsgs[k]
}

// SyntaxError is an error indicating an invalid infix expression. It
// implements InputError.
type SyntaxError struct {
	// Kind is the rule that the expression breaks.
	Kind SyntaxKind
	// Char is the offending character, or 0 if there is none.
	Char byte
	// Col is the 1-based byte position of Char.
	Col int
}

func (err *SyntaxError) Error() string {
	if err.Char == 0 {
		return errpos(err.Col, err.Kind.String())
	}
	return errpos(err.Col, err.Kind.String()+" "+strconv.QuoteRune(rune(err.Char)))
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

func synerr(kind SyntaxKind, c byte, col int) error {
	return &SyntaxError{Kind: kind, Char: c, Col: col}
}

// EvalKind identifies a recoverable evaluation failure.
type EvalKind int8

const (
	// MalformedExpression is a converted expression that does not reduce to
	// exactly one value.
	MalformedExpression EvalKind = iota + 1
	// StackUnderflow is an operator with too few operands before it.
	StackUnderflow
	// InputTooLong is a converted expression over the length limit.
	InputTooLong
)

func (k EvalKind) String() string {
	switch k {
	case MalformedExpression:
		return "malformed expression"
	case StackUnderflow:
		return "stack underflow"
	case InputTooLong:
		return "expression too long"
	default:
		return "EvalKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// EvalError is an error indicating a converted expression that cannot be
// evaluated. It implements InputError. The value accompanying an EvalError is
// always NaN.
type EvalError struct {
	// Kind is the failure.
	Kind EvalKind
	// Col is the 1-based position of the token where evaluation failed, or 0
	// if it failed at the end of the expression.
	Col int
	// Text is the token where evaluation failed, if any.
	Text string
}

func (err *EvalError) Error() string {
	msg := err.Kind.String()
	if err.Text != "" {
		msg += " at " + strconv.Quote(err.Text)
	}
	if err.Col <= 0 {
		return "end: " + msg
	}
	return errpos(err.Col, msg)
}

func (err *EvalError) Pos() int {
	return err.Col
}

// DivisionByZeroError is a fatal error from dividing by zero. An evaluation
// that produces it stops immediately; callers must not treat its value as a
// result. It implements InputError.
type DivisionByZeroError struct {
	// Col is the position of the division operator.
	Col int
	// Dividend is the left operand of the division.
	Dividend float64
}

func (err *DivisionByZeroError) Error() string {
	return errpos(err.Col, "division by zero: "+strconv.FormatFloat(err.Dividend, 'g', -1, 64)+" / 0")
}

func (err *DivisionByZeroError) Pos() int {
	return err.Col
}

// Fatal marks division by zero as fatal.
func (err *DivisionByZeroError) Fatal() bool {
	return true
}

// DomainError is an error returned when an operator is applied to an operand
// outside its domain. It implements InputError.
type DomainError struct {
	// Col is the position of the operator.
	Col int
	// X is the out-of-domain operand.
	X float64
	// Func is the operator.
	Func string
}

func (err *DomainError) Error() string {
	return errpos(err.Col, strconv.FormatFloat(err.X, 'g', -1, 64)+" outside domain of "+err.Func)
}

func (err *DomainError) Pos() int {
	return err.Col
}

// IsFatal reports whether err, or any error it wraps, is fatal to an
// evaluation.
func IsFatal(err error) bool {
	var f interface{ Fatal() bool }
	return errors.As(err, &f) && f.Fatal()
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based byte position of the character that caused
	// the error.
	Pos() int
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*EvalError)(nil)
	_ InputError = (*DivisionByZeroError)(nil)
	_ InputError = (*DomainError)(nil)
)
