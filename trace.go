package notation

import (
	"strconv"
	"strings"
)

// EventKind is the kind of a conversion event.
type EventKind int8

const (
	eventNone EventKind = iota
	// EventAppend is an operand appended to the output.
	EventAppend
	// EventPush is an operator or opening parenthesis pushed on the stack.
	EventPush
	// EventPop is an operator popped from the stack and appended to the
	// output while scanning.
	EventPop
	// EventDiscard is an opening parenthesis popped and dropped when its
	// match is found.
	EventDiscard
	// EventFlush is an operator popped and appended after the scan.
	EventFlush
	// EventReverse is the final reversal of prefix output.
	EventReverse
)

func (k EventKind) String() string {
	switch k {
	case EventAppend:
		return "ADD"
	case EventPush:
		return "PUSH"
	case EventPop:
		return "POP"
	case EventDiscard:
		return "DISCARD"
	case EventFlush:
		return "FINAL POP"
	case EventReverse:
		return "REVERSE"
	default:
		return "EventKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Event is one action of the shunting-yard algorithm, with the state after
// it.
type Event struct {
	Kind EventKind
	// Token is the text the action moved.
	Token string
	// Stack is the operator stack after the action, bottom first, separated
	// by spaces.
	Stack string
	// Output is the output after the action, in the order it was built,
	// separated by spaces. For prefix conversion this is reversed until the
	// EventReverse event.
	Output string
}

func (e Event) String() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Token != "" {
		b.WriteString(" [")
		b.WriteString(e.Token)
		b.WriteByte(']')
	}
	b.WriteString(" stack=(")
	b.WriteString(e.Stack)
	b.WriteString(") out=(")
	b.WriteString(e.Output)
	b.WriteByte(')')
	return b.String()
}

// Substitution is one step of symbolic reduction: a fully reduced operator
// and its operands replaced by a placeholder letter.
type Substitution struct {
	// Found is the reduced text, e.g. "ab+" or "+ab".
	Found string
	// Placeholder is the letter that replaced it.
	Placeholder byte
	// Expr is the whole expression after the substitution.
	Expr string
}

func (s Substitution) String() string {
	return s.Found + "=" + string(s.Placeholder) + " -> " + s.Expr
}

// Step is one reduction of numeric evaluation. For the unary square root,
// Operand2 is 0.
type Step struct {
	Operand1 float64
	Operand2 float64
	Operator byte
	Result   float64
}

// Unary reports whether the step applied a unary operator.
func (s Step) Unary() bool {
	return s.Operator == SqrtOperator
}

func (s Step) String() string {
	r := " = " + strconv.FormatFloat(s.Result, 'g', -1, 64)
	if s.Unary() {
		return string(s.Operator) + strconv.FormatFloat(s.Operand1, 'g', -1, 64) + r
	}
	return strconv.FormatFloat(s.Operand1, 'g', -1, 64) + " " + string(s.Operator) + " " +
		strconv.FormatFloat(s.Operand2, 'g', -1, 64) + r
}
