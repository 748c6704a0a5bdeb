package notation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/zephyrtronium/notation"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		opts []notation.Option
		kind notation.SyntaxKind
		char byte
		col  int
	}{
		// valid
		{"num", "3", nil, 0, 0, 0},
		{"sum", "3+4*5", nil, 0, 0, 0},
		{"spaces", " ( 3 + 4 ) * 5 ", nil, 0, 0, 0},
		{"decimal", "2.5*.5-3.", nil, 0, 0, 0},
		{"letters", "a+b*c", nil, 0, 0, 0},
		{"nested", "((a))^(b-c)", nil, 0, 0, 0},
		{"signed", "-3+4", nil, 0, 0, 0},
		{"group-signed", "2*(-1.5)", nil, 0, 0, 0},
		{"sqrt", "2*s(3+6)", []notation.Option{notation.Sqrt(true)}, 0, 0, 0},
		{"sqrt-twice", "ss16", []notation.Option{notation.Sqrt(true)}, 0, 0, 0},
		{"sqrt-symbolic", "sa+sb", []notation.Option{notation.Sqrt(true)}, 0, 0, 0},
		{"at-limit", "1 + 2 + 3", []notation.Option{notation.MaxLen(5)}, 0, 0, 0},
		// errors
		{"empty", "", nil, notation.EmptyExpression, 0, 1},
		{"blank", " \t ", nil, notation.EmptyExpression, 0, 1},
		{"invalid", "3+#", nil, notation.InvalidCharacter, '#', 3},
		{"mixed-digit", "a+3", nil, notation.InvalidCharacter, '3', 3},
		{"mixed-letter", "a+3", []notation.Option{notation.Operands(notation.Numeric)}, notation.InvalidCharacter, 'a', 1},
		{"sqrt-off", "s9", nil, notation.InvalidCharacter, '9', 2},
		{"operator-before-paren", "3(4)", nil, notation.MissingOperatorBeforeParen, '(', 2},
		{"operand-before-paren", "(3+)", nil, notation.MissingOperandBeforeParen, ')', 4},
		{"empty-parens", "3*()", nil, notation.EmptyParentheses, ')', 4},
		{"unbalanced-close", "3+4)", nil, notation.UnbalancedClose, ')', 4},
		{"consecutive", "3++4", nil, notation.ConsecutiveOperators, '+', 3},
		{"consecutive-sign", "2*-3", nil, notation.ConsecutiveOperators, '-', 3},
		{"missing-operator", "3 4", nil, notation.MissingOperator, '4', 3},
		{"missing-operator-letters", "ab", nil, notation.MissingOperator, 'b', 2},
		{"missing-operator-sqrt", "9s", []notation.Option{notation.Sqrt(true)}, notation.MissingOperator, 's', 2},
		{"leading", "*3", nil, notation.LeadingOperator, '*', 1},
		{"leading-group", "(*3)", nil, notation.LeadingOperator, '*', 2},
		{"leading-sign-group", "-(3)", nil, notation.LeadingOperator, '-', 1},
		{"leading-sign-letter", "-a", nil, notation.LeadingOperator, '-', 1},
		{"trailing", "3+", nil, notation.TrailingOperator, '+', 2},
		{"trailing-space", "3 + ", nil, notation.TrailingOperator, '+', 3},
		{"trailing-sqrt", "s", []notation.Option{notation.Sqrt(true)}, notation.TrailingOperator, 's', 1},
		{"unbalanced-open", "(3+4", nil, notation.UnbalancedOpen, '(', 1},
		{"unbalanced-outer", "(3+(4)", nil, notation.UnbalancedOpen, '(', 1},
		{"unbalanced-two", "(3+(4", nil, notation.UnbalancedOpen, '(', 1},
		{"two-points", "3.1.4", nil, notation.MalformedNumber, '.', 4},
		{"lone-point", ".", nil, notation.MalformedNumber, '.', 1},
		{"lone-point-op", "3+.", nil, notation.MalformedNumber, '.', 3},
		{"signed-point", "-.", nil, notation.MalformedNumber, '.', 2},
		{"too-long", "1+2+34", []notation.Option{notation.MaxLen(5)}, notation.ExpressionTooLong, '4', 6},
		{"too-long-default", strings.Repeat("1+", 128), nil, notation.ExpressionTooLong, '+', 256},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := notation.Validate(c.src, c.opts...)
			if c.kind == 0 {
				if err != nil {
					t.Fatalf("%q failed to validate: %v", c.src, err)
				}
				return
			}
			var se *notation.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("%q gave wrong error: want *SyntaxError, got %#v", c.src, err)
			}
			if se.Kind != c.kind {
				t.Errorf("%q gave wrong kind: want %v, got %v", c.src, c.kind, se.Kind)
			}
			if se.Char != c.char {
				t.Errorf("%q gave wrong char: want %q, got %q", c.src, c.char, se.Char)
			}
			if se.Col != c.col || se.Pos() != c.col {
				t.Errorf("%q gave wrong position: want %d, got %d", c.src, c.col, se.Col)
			}
			if notation.IsFatal(err) {
				t.Errorf("%q gave fatal syntax error", c.src)
			}
		})
	}
}

func TestValidateIdempotent(t *testing.T) {
	srcs := []string{"3+4*5", "(3+4", "3++4", "", "a*(b+c)", "2^3^2", "1.2.3"}
	for _, src := range srcs {
		a := notation.Validate(src)
		b := notation.Validate(src)
		if (a == nil) != (b == nil) || a != nil && a.Error() != b.Error() {
			t.Errorf("%q validated differently: %v then %v", src, a, b)
		}
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	err := notation.Validate("3++4")
	if err == nil {
		t.Fatal("no error")
	}
	if want := `3: consecutive operators '+'`; err.Error() != want {
		t.Errorf("wrong message: want %q, got %q", want, err.Error())
	}
	err = notation.Validate("")
	if want := "1: empty expression"; err.Error() != want {
		t.Errorf("wrong message: want %q, got %q", want, err.Error())
	}
}

func TestDetect(t *testing.T) {
	cases := []struct {
		src  string
		opts []notation.Option
		want notation.OperandKind
	}{
		{"3+4", nil, notation.Numeric},
		{"", nil, notation.Numeric},
		{"a+b", nil, notation.Symbolic},
		{"s9", nil, notation.Symbolic},
		{"s9", []notation.Option{notation.Sqrt(true)}, notation.Numeric},
		{"sa", []notation.Option{notation.Sqrt(true)}, notation.Symbolic},
		{"a+b", []notation.Option{notation.Operands(notation.Numeric)}, notation.Numeric},
	}
	for _, c := range cases {
		if got := notation.Detect(c.src, c.opts...); got != c.want {
			t.Errorf("%q detected as %v, want %v", c.src, got, c.want)
		}
	}
}

func TestOperatorTable(t *testing.T) {
	ops := notation.OperatorTable()
	if len(ops) != len(notation.Operators) {
		t.Fatalf("wrong number of operators: want %d, got %d", len(notation.Operators), len(ops))
	}
	for i, op := range ops {
		if op.Symbol != notation.Operators[i] {
			t.Errorf("operator %d: want %c, got %c", i, notation.Operators[i], op.Symbol)
		}
		if op.Unary {
			t.Errorf("operator %c is unary", op.Symbol)
		}
	}
	ops = notation.OperatorTable(notation.Sqrt(true))
	last := ops[len(ops)-1]
	if last.Symbol != notation.SqrtOperator || !last.Unary || last.Prec != 4 || last.Assoc != notation.Right {
		t.Errorf("wrong square root operator: %+v", last)
	}
}
