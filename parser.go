package polyeq

import (
	"fmt"
	"strconv"
)

// ParseError reports malformed input with a human-readable reason and the
// byte offset of the offending token.
type ParseError struct {
	Reason string
	Pos    int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Reason, e.Pos)
}

// Parse tokenizes and parses an expression string into an AST.
//
// Precedence, low to high: addition/subtraction (left-associative, with
// unary minus at this level), multiplication/division (left-associative),
// exponentiation (right-associative), function calls and primaries. Unary
// minus binds the whole following product: -x*y is -(x*y) and -x^2 is
// -(x^2). A second consecutive unary minus and a unary-minus exponent are
// both rejected.
func Parse(text string) (Node, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.Kind != TokenEOF {
		return nil, &ParseError{Reason: fmt.Sprintf("unexpected token %q", tok.Text), Pos: tok.Pos}
	}
	return node, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) current() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *parser) advance() Token {
	tok := p.current()
	p.pos++
	return tok
}

func (p *parser) parseExpression() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.current()
		if tok.Kind != TokenPlus && tok.Kind != TokenMinus {
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = BinaryOp{Op: tok.Text[0], Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (Node, error) {
	if p.current().Kind != TokenMinus {
		return p.parseTerm()
	}
	p.advance()
	if tok := p.current(); tok.Kind == TokenMinus {
		return nil, &ParseError{Reason: "consecutive unary minus is not supported", Pos: tok.Pos}
	}
	// The operand is the whole following term, not just the next factor.
	operand, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return UnaryOp{Op: '-', Operand: operand}, nil
}

func (p *parser) parseTerm() (Node, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.current()
		if tok.Kind != TokenMultiply && tok.Kind != TokenImplicitMultiply && tok.Kind != TokenDivide {
			return left, nil
		}
		p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		op := byte('*')
		if tok.Kind == TokenDivide {
			op = '/'
		}
		left = BinaryOp{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parsePower() (Node, error) {
	left, err := p.parseFunction()
	if err != nil {
		return nil, err
	}
	if p.current().Kind != TokenPower {
		return left, nil
	}
	p.advance()
	if tok := p.current(); tok.Kind == TokenMinus {
		return nil, &ParseError{Reason: "negative exponents are not supported", Pos: tok.Pos}
	}
	// Right-associative: a^b^c parses as a^(b^c).
	right, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return BinaryOp{Op: '^', Left: left, Right: right}, nil
}

func (p *parser) parseFunction() (Node, error) {
	if p.current().Kind != TokenFunction {
		return p.parsePrimary()
	}
	fn := p.advance()
	arg, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return FunctionCall{Name: fn.Text, Arg: arg}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.current()
	switch tok.Kind {
	case TokenNumber:
		p.advance()
		value, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, &ParseError{Reason: fmt.Sprintf("number %q out of range", tok.Text), Pos: tok.Pos}
		}
		return Number{Value: value}, nil
	case TokenVariable:
		p.advance()
		return Variable{Name: tok.Text}, nil
	case TokenLParen:
		p.advance()
		if inner := p.current(); inner.Kind == TokenRParen {
			return nil, &ParseError{Reason: "empty parentheses", Pos: inner.Pos}
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if closing := p.current(); closing.Kind != TokenRParen {
			return nil, &ParseError{Reason: "missing closing parenthesis", Pos: closing.Pos}
		}
		p.advance()
		return expr, nil
	case TokenEOF:
		return nil, &ParseError{Reason: "unexpected end of input", Pos: tok.Pos}
	}
	return nil, &ParseError{Reason: fmt.Sprintf("unexpected token %q", tok.Text), Pos: tok.Pos}
}
