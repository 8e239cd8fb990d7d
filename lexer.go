package polyeq

import (
	"fmt"
	"strings"
)

// ============================================================
// Tokens
// ============================================================

type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenVariable
	TokenFunction
	TokenPlus
	TokenMinus
	TokenMultiply
	TokenImplicitMultiply
	TokenDivide
	TokenPower
	TokenLParen
	TokenRParen
	TokenComma // reserved; no grammar production consumes it yet
	TokenEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "NUMBER"
	case TokenVariable:
		return "VARIABLE"
	case TokenFunction:
		return "FUNCTION"
	case TokenPlus:
		return "PLUS"
	case TokenMinus:
		return "MINUS"
	case TokenMultiply:
		return "MULTIPLY"
	case TokenImplicitMultiply:
		return "IMPLICIT_MULTIPLY"
	case TokenDivide:
		return "DIVIDE"
	case TokenPower:
		return "POWER"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenComma:
		return "COMMA"
	case TokenEOF:
		return "EOF"
	}
	return "UNKNOWN"
}

// Token is an immutable lexeme with its byte offset in the input.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

// LexError reports an unrecognized input character.
type LexError struct {
	Char byte
	Pos  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q at position %d", e.Char, e.Pos)
}

// functionNames are the recognized function keywords. A keyword only
// becomes a FUNCTION token when the next non-space character is '(';
// otherwise its letters lex as ordinary single-letter variables, so
// "sinx" is the product s*i*n*x rather than a call.
var functionNames = []string{"sqrt", "sin", "cos", "tan", "ln"}

// ============================================================
// Lexer
// ============================================================

type lexer struct {
	src    string
	pos    int
	tokens []Token
}

// Tokenize converts an expression string into a token stream terminated by
// EOF, with implicit-multiplication tokens already inserted so the parser
// needs no special case for juxtaposed products.
func Tokenize(text string) ([]Token, error) {
	lx := &lexer{src: text}
	if err := lx.run(); err != nil {
		return nil, err
	}
	return insertImplicitMultiply(lx.tokens), nil
}

func (lx *lexer) run() error {
	for lx.pos < len(lx.src) {
		lx.skipWhitespace()
		if lx.pos >= len(lx.src) {
			break
		}
		ch := lx.src[lx.pos]
		switch {
		case isDigit(ch):
			lx.readNumber()
		case isLetter(ch):
			lx.readLetters()
		case ch == '+':
			lx.emit(TokenPlus, "+")
		case ch == '-':
			lx.emit(TokenMinus, "-")
		case ch == '*':
			lx.emit(TokenMultiply, "*")
		case ch == '/':
			lx.emit(TokenDivide, "/")
		case ch == '^':
			lx.emit(TokenPower, "^")
		case ch == '(':
			lx.emit(TokenLParen, "(")
		case ch == ')':
			lx.emit(TokenRParen, ")")
		case ch == ',':
			lx.emit(TokenComma, ",")
		default:
			return &LexError{Char: ch, Pos: lx.pos}
		}
	}
	lx.tokens = append(lx.tokens, Token{Kind: TokenEOF, Pos: lx.pos})
	return nil
}

func (lx *lexer) emit(kind TokenKind, text string) {
	lx.tokens = append(lx.tokens, Token{Kind: kind, Text: text, Pos: lx.pos})
	lx.pos += len(text)
}

func (lx *lexer) skipWhitespace() {
	for lx.pos < len(lx.src) && isSpace(lx.src[lx.pos]) {
		lx.pos++
	}
}

func (lx *lexer) readNumber() {
	start := lx.pos
	for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
		lx.pos++
	}
	lx.tokens = append(lx.tokens, Token{Kind: TokenNumber, Text: lx.src[start:lx.pos], Pos: start})
}

// readLetters consumes one function keyword or one single-letter variable.
func (lx *lexer) readLetters() {
	for _, name := range functionNames {
		if strings.HasPrefix(lx.src[lx.pos:], name) && lx.parenFollows(lx.pos+len(name)) {
			lx.tokens = append(lx.tokens, Token{Kind: TokenFunction, Text: name, Pos: lx.pos})
			lx.pos += len(name)
			return
		}
	}
	lx.tokens = append(lx.tokens, Token{Kind: TokenVariable, Text: lx.src[lx.pos : lx.pos+1], Pos: lx.pos})
	lx.pos++
}

func (lx *lexer) parenFollows(pos int) bool {
	for pos < len(lx.src) && isSpace(lx.src[pos]) {
		pos++
	}
	return pos < len(lx.src) && lx.src[pos] == '('
}

func isDigit(ch byte) bool  { return ch >= '0' && ch <= '9' }
func isLetter(ch byte) bool { return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' }
func isSpace(ch byte) bool  { return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' }

// ============================================================
// Implicit multiplication
// ============================================================

// insertImplicitMultiply splices a synthetic '*' between adjacent tokens
// whose juxtaposition conventionally denotes a product: 2x, 2(…), 2sin(…),
// xy, x2, x(…), (…)y, (…)2, (…)(…). A FUNCTION token followed by '(' is a
// call, never a product.
func insertImplicitMultiply(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for i, tok := range tokens {
		out = append(out, tok)
		if i+1 >= len(tokens) {
			continue
		}
		if juxtaposed(tok.Kind, tokens[i+1].Kind) {
			out = append(out, Token{
				Kind: TokenImplicitMultiply,
				Text: "*",
				Pos:  tok.Pos + len(tok.Text),
			})
		}
	}
	return out
}

func juxtaposed(cur, next TokenKind) bool {
	switch cur {
	case TokenNumber:
		return next == TokenVariable || next == TokenFunction || next == TokenLParen
	case TokenVariable, TokenRParen:
		return next == TokenVariable || next == TokenFunction || next == TokenLParen || next == TokenNumber
	}
	return false
}
