package notation

import (
	"strconv"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenNum is a number, possibly signed.
	tokenNum
	// tokenIdent is a letter operand.
	tokenIdent
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is (.
	tokenOpen
	// tokenClose is ).
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// TokenKind discriminates the variants of Token.
type TokenKind int8

const (
	// TokenNumber is a numeric operand.
	TokenNumber TokenKind = iota + 1
	// TokenOperator is an operator, or any other non-parenthesis character.
	TokenOperator
	// TokenParen is ( or ).
	TokenParen
)

func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "number"
	case TokenOperator:
		return "operator"
	case TokenParen:
		return "paren"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is one element of a numeric infix expression. Exactly one of Number
// and Symbol is meaningful, chosen by Kind.
type Token struct {
	Kind TokenKind
	// Number is the value of a TokenNumber.
	Number float64
	// Symbol is the character of a TokenOperator or TokenParen.
	Symbol byte
	// Pos is the 1-based byte position of the start of the token.
	Pos int
}

func (t Token) String() string {
	if t.Kind == TokenNumber {
		return strconv.FormatFloat(t.Number, 'g', -1, 64)
	}
	return string(t.Symbol)
}

// Tokenize splits a numeric infix expression into tokens. Runs of digits and
// points form one number, with C atof semantics for anything malformed. A +
// or - at the start of the expression or after ( and directly before a digit
// is the sign of that number. Every other non-space character is an operator
// or parenthesis. Tokenize does not validate.
func Tokenize(expr string, opts ...Option) []Token {
	c := newConfig(opts)
	c.operands, c.fixed = Numeric, true
	toks := c.lexInfix(expr)
	r := make([]Token, 0, len(toks))
	for _, tok := range toks {
		switch tok.kind {
		case tokenNum:
			r = append(r, Token{Kind: TokenNumber, Number: atof(tok.text), Pos: tok.pos})
		case tokenOpen, tokenClose:
			r = append(r, Token{Kind: TokenParen, Symbol: tok.text[0], Pos: tok.pos})
		default:
			r = append(r, Token{Kind: TokenOperator, Symbol: tok.text[0], Pos: tok.pos})
		}
	}
	return r
}

// lexInfix splits an infix expression into tokens. Letters are single-letter
// operands and anything unrecognized is an operator token; expressions should
// be validated first.
func (c config) lexInfix(expr string) []lexToken {
	kind := c.operandsFor(expr)
	var toks []lexToken
	// lead is whether the next token starts the expression or a group, where
	// a sign belongs to a number.
	lead := true
	for i := 0; i < len(expr); {
		b := expr[i]
		switch {
		case isSpace(b):
			i++
			continue
		case isNumByte(b),
			kind == Numeric && lead && isSign(b) && i+1 < len(expr) && isNumByte(expr[i+1]):
			j := i + 1
			for j < len(expr) && isNumByte(expr[j]) {
				j++
			}
			toks = append(toks, lexToken{text: expr[i:j], kind: tokenNum, pos: i + 1})
			i = j
			lead = false
			continue
		case b == '(':
			toks = append(toks, lexToken{text: "(", kind: tokenOpen, pos: i + 1})
			lead = true
			i++
			continue
		case b == ')':
			toks = append(toks, lexToken{text: ")", kind: tokenClose, pos: i + 1})
		case isLetter(b) && !c.isOperator(b):
			toks = append(toks, lexToken{text: expr[i : i+1], kind: tokenIdent, pos: i + 1})
		default:
			toks = append(toks, lexToken{text: expr[i : i+1], kind: tokenOp, pos: i + 1})
		}
		lead = false
		i++
	}
	return toks
}

// lexConverted splits a converted numeric expression into number and
// operator tokens. A sign directly before a digit is part of a number when it
// starts a space-separated word. Letters and other characters are an error.
func (c config) lexConverted(s string) ([]lexToken, error) {
	if col := c.overLimit(s); col > 0 {
		return nil, &EvalError{Kind: InputTooLong, Col: col, Text: s[col-1 : col]}
	}
	var toks []lexToken
	for i := 0; i < len(s); {
		b := s[i]
		switch {
		case isSpace(b):
			i++
		case isNumByte(b),
			isSign(b) && i+1 < len(s) && isNumByte(s[i+1]) && (i == 0 || isSpace(s[i-1])):
			j := i + 1
			for j < len(s) && isNumByte(s[j]) {
				j++
			}
			toks = append(toks, lexToken{text: s[i:j], kind: tokenNum, pos: i + 1})
			i = j
		case c.isOperator(b):
			toks = append(toks, lexToken{text: s[i : i+1], kind: tokenOp, pos: i + 1})
			i++
		default:
			return nil, &EvalError{Kind: MalformedExpression, Col: i + 1, Text: s[i : i+1]}
		}
	}
	return toks, nil
}

// overLimit returns the column of the first non-space byte of s past the
// length limit, or 0 if s is within it.
func (c config) overLimit(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if isSpace(s[i]) {
			continue
		}
		n++
		if n > c.maxlen {
			return i + 1
		}
	}
	return 0
}

// atof parses the longest prefix of s that is a decimal number, like C atof.
// The result is 0 if there is no such prefix and ±Inf on overflow.
func atof(s string) float64 {
	i := 0
	if i < len(s) && isSign(s[i]) {
		i++
	}
	dot := false
	for ; i < len(s); i++ {
		if s[i] == '.' {
			if dot {
				break
			}
			dot = true
			continue
		}
		if !isDigit(s[i]) {
			break
		}
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		if ne, _ := err.(*strconv.NumError); ne != nil && ne.Err == strconv.ErrRange {
			// v is already ±Inf or ±0.
			return v
		}
		return 0
	}
	return v
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isNumByte(b byte) bool {
	return isDigit(b) || b == '.'
}

func isSign(b byte) bool {
	return b == '+' || b == '-'
}

func isLetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}
