package notation

import "github.com/zephyrtronium/notation/internal/container"

// Validate checks that expr is a well-formed infix expression. The result is
// nil or a *SyntaxError naming the first rule the expression breaks and where.
//
// The operand kind is detected from expr unless an Operands option fixes it.
// In numeric expressions, a + or - that starts the expression or a
// parenthesized group is accepted as the sign of the number directly after
// it.
func Validate(expr string, opts ...Option) error {
	return newConfig(opts).validate(expr)
}

func (c config) validate(expr string) error {
	if col := c.overLimit(expr); col > 0 {
		return synerr(ExpressionTooLong, expr[col-1], col)
	}
	if compact(expr) == "" {
		return synerr(EmptyExpression, 0, 1)
	}

	kind := c.operandsFor(expr)
	var (
		// opens holds the positions of unmatched open parentheses.
		opens container.Stack[int]
		// expect is whether an operand must come next.
		expect = true
		// prev and prevcol are the last non-space character and its position.
		prev    byte
		prevcol int
		// innum is whether we are in the middle of a number, and dot whether
		// that number already has a point.
		innum, dot bool
	)
	for i := 0; i < len(expr); i++ {
		b := expr[i]
		col := i + 1
		if isSpace(b) {
			innum = false
			continue
		}
		switch {
		case b == '(':
			if !expect {
				return synerr(MissingOperatorBeforeParen, b, col)
			}
			opens.Push(col)
			innum = false
		case b == ')':
			if opens.Len() == 0 {
				return synerr(UnbalancedClose, b, col)
			}
			if prev == '(' {
				return synerr(EmptyParentheses, b, col)
			}
			if expect {
				return synerr(MissingOperandBeforeParen, b, col)
			}
			opens.Pop()
			innum = false
		case isNumByte(b):
			if kind != Numeric {
				return synerr(InvalidCharacter, b, col)
			}
			if innum {
				if b == '.' {
					if dot {
						return synerr(MalformedNumber, b, col)
					}
					dot = true
				}
				break
			}
			if !expect {
				return synerr(MissingOperator, b, col)
			}
			if b == '.' && (i+1 >= len(expr) || !isDigit(expr[i+1])) {
				return synerr(MalformedNumber, b, col)
			}
			expect, innum, dot = false, true, b == '.'
		case c.isOperator(b):
			op := c.operator(b)
			innum = false
			if op.Unary {
				// Prefix unary operators take the place of an operand and
				// still need one after them.
				if !expect {
					return synerr(MissingOperator, b, col)
				}
				break
			}
			if !expect {
				expect = true
				break
			}
			// A sign only counts at the start of the expression or a group.
			// Elsewhere, as in 3*-4, it is a second operator.
			lead := prev == 0 || prev == '('
			if kind == Numeric && lead && isSign(b) && i+1 < len(expr) && isNumByte(expr[i+1]) {
				// Sign of the next number.
				if expr[i+1] == '.' && (i+2 >= len(expr) || !isDigit(expr[i+2])) {
					return synerr(MalformedNumber, '.', col+1)
				}
				expect, innum, dot = false, true, false
				break
			}
			if lead {
				return synerr(LeadingOperator, b, col)
			}
			return synerr(ConsecutiveOperators, b, col)
		case isLetter(b):
			if kind != Symbolic {
				return synerr(InvalidCharacter, b, col)
			}
			if !expect {
				return synerr(MissingOperator, b, col)
			}
			expect = false
		default:
			return synerr(InvalidCharacter, b, col)
		}
		prev, prevcol = b, col
	}
	if opens.Len() > 0 {
		// Report the outermost unmatched parenthesis.
		first := 0
		opens.Each(func(col int) {
			if first == 0 {
				first = col
			}
		})
		return synerr(UnbalancedOpen, '(', first)
	}
	if expect {
		return synerr(TrailingOperator, prev, prevcol)
	}
	return nil
}
