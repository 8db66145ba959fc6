package tool

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Calculator evaluates arithmetic expressions: + - * / %, ** for
// exponentiation, parentheses, and unary minus.
type Calculator struct{}

func NewCalculator() *Calculator { return &Calculator{} }

func (c *Calculator) Name() string { return "calculator" }

func (c *Calculator) Description() string {
	return "Performs mathematical calculations. " +
		"Supports basic operations (+, -, *, /, %), " +
		"exponentiation (**), and parentheses. " +
		"Example: '2 + 2 * 3' or '(10 + 5) ** 2'"
}

func (c *Calculator) Parameters() []Parameter {
	return []Parameter{
		{
			Name:        "expression",
			Type:        "string",
			Description: "The mathematical expression to evaluate",
			Required:    true,
		},
	}
}

func (c *Calculator) Execute(ctx context.Context, args map[string]any) (Result, error) {
	raw, ok := args["expression"]
	if !ok {
		return Result{Success: false, Error: "missing required parameter: expression"}, nil
	}
	expression, ok := raw.(string)
	if !ok {
		return Result{Success: false, Error: "expression must be a string"}, nil
	}

	val, err := evalExpression(expression)
	if err != nil {
		return Result{Success: false, Error: err.Error()}, nil
	}

	return Result{Success: true, Output: formatNumber(val)}, nil
}

func formatNumber(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Sprintf("%v", v)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// evalExpression parses and evaluates an arithmetic expression.
//
// Grammar (standard precedence, ** binds tightest and is right-associative):
//
//	expr   = term   { ("+" | "-") term }
//	term   = unary  { ("*" | "/" | "%") unary }
//	unary  = "-" unary | power
//	power  = atom [ "**" unary ]
//	atom   = number | "(" expr ")"
func evalExpression(input string) (float64, error) {
	p := &exprParser{input: input}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("unexpected %q at position %d", p.input[p.pos], p.pos)
	}
	return v, nil
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

// peek returns the next non-space byte without consuming it, or 0 at end.
func (p *exprParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		// "**" is exponentiation, not multiplication; leave it for parsePower.
		if op == '*' && strings.HasPrefix(p.input[p.pos:], "**") {
			return left, nil
		}
		switch op {
		case '*', '/', '%':
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			switch op {
			case '*':
				left *= right
			case '/':
				if right == 0 {
					return 0, fmt.Errorf("division by zero")
				}
				left /= right
			case '%':
				if right == 0 {
					return 0, fmt.Errorf("division by zero")
				}
				left = math.Mod(left, right)
			}
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseUnary() (float64, error) {
	if p.peek() == '-' {
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	return p.parsePower()
}

func (p *exprParser) parsePower() (float64, error) {
	base, err := p.parseAtom()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if strings.HasPrefix(p.input[p.pos:], "**") {
		p.pos += 2
		exp, err := p.parseUnary() // right-associative
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	}
	return base, nil
}

func (p *exprParser) parseAtom() (float64, error) {
	switch ch := p.peek(); {
	case ch == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	case ch >= '0' && ch <= '9' || ch == '.':
		return p.parseNumber()
	case ch == 0:
		return 0, fmt.Errorf("unexpected end of expression")
	default:
		return 0, fmt.Errorf("unexpected %q at position %d", ch, p.pos)
	}
}

func (p *exprParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch >= '0' && ch <= '9' || ch == '.' {
			p.pos++
			continue
		}
		break
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return v, nil
}
