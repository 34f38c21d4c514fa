// Package rate evaluates the arithmetic drop-rate expressions found in the
// reward catalog ("1/128", "(3+1)/512"). The grammar is limited to numeric
// literals, the four arithmetic operators and parentheses; anything else is
// rejected so catalog data can never smuggle code into the pipeline.
package rate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidExpression reports an expression outside the supported grammar.
var ErrInvalidExpression = errors.New("invalid expression")

// Precision is the number of fractional digits kept in evaluated rates.
const Precision = 9

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenOperator
	tokenLeftParen
	tokenRightParen
)

type token struct {
	kind  tokenKind
	value float64
	op    byte
}

// Evaluate parses expr and returns its value rounded to Precision fractional
// digits. It fails with ErrInvalidExpression on any non-arithmetic input.
func Evaluate(expr string) (float64, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}

	p := &parser{tokens: tokens}
	value, err := p.parseExpression()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.tokens) {
		return 0, fmt.Errorf("%w: unexpected trailing input in %q", ErrInvalidExpression, expr)
	}
	return Round(value), nil
}

// Round truncates v to Precision fractional digits using half-away rounding.
func Round(v float64) float64 {
	shift := math.Pow10(Precision)
	return math.Round(v*shift) / shift
}

func tokenize(expr string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c >= '0' && c <= '9' || c == '.':
			start := i
			for i < len(expr) && (expr[i] >= '0' && expr[i] <= '9' || expr[i] == '.') {
				i++
			}
			value, err := strconv.ParseFloat(expr[start:i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad numeric literal %q", ErrInvalidExpression, expr[start:i])
			}
			tokens = append(tokens, token{kind: tokenNumber, value: value})
		case c == '+' || c == '-' || c == '*' || c == '/':
			tokens = append(tokens, token{kind: tokenOperator, op: c})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenLeftParen})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRightParen})
			i++
		default:
			return nil, fmt.Errorf("%w: unsupported token %q", ErrInvalidExpression, describeToken(expr[i:]))
		}
	}
	return tokens, nil
}

// describeToken extracts a readable fragment for error messages, so that
// "Thieving@1/128" style mistakes name the identifier instead of one rune.
func describeToken(rest string) string {
	end := strings.IndexFunc(rest, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	if end <= 0 {
		end = 1
	}
	return rest[:end]
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) parseExpression() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for p.pos < len(p.tokens) {
		t := p.tokens[p.pos]
		if t.kind != tokenOperator || (t.op != '+' && t.op != '-') {
			break
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if t.op == '+' {
			left += right
		} else {
			left -= right
		}
	}
	return left, nil
}

func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for p.pos < len(p.tokens) {
		t := p.tokens[p.pos]
		if t.kind != tokenOperator || (t.op != '*' && t.op != '/') {
			break
		}
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if t.op == '*' {
			left *= right
		} else {
			if right == 0 {
				return 0, fmt.Errorf("%w: division by zero", ErrInvalidExpression)
			}
			left /= right
		}
	}
	return left, nil
}

func (p *parser) parseFactor() (float64, error) {
	if p.pos >= len(p.tokens) {
		return 0, fmt.Errorf("%w: unexpected end of expression", ErrInvalidExpression)
	}
	t := p.tokens[p.pos]
	switch t.kind {
	case tokenNumber:
		p.pos++
		return t.value, nil
	case tokenOperator:
		// Unary sign.
		if t.op == '+' || t.op == '-' {
			p.pos++
			value, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if t.op == '-' {
				return -value, nil
			}
			return value, nil
		}
		return 0, fmt.Errorf("%w: misplaced operator %q", ErrInvalidExpression, string(t.op))
	case tokenLeftParen:
		p.pos++
		value, err := p.parseExpression()
		if err != nil {
			return 0, err
		}
		if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != tokenRightParen {
			return 0, fmt.Errorf("%w: missing closing parenthesis", ErrInvalidExpression)
		}
		p.pos++
		return value, nil
	default:
		return 0, fmt.Errorf("%w: unexpected token", ErrInvalidExpression)
	}
}
