package polyeq_test

import (
	"errors"
	"testing"

	polyeq "github.com/polyeq/polyeq"
)

func kinds(tokens []polyeq.Token) []polyeq.TokenKind {
	out := make([]polyeq.TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func sameKinds(a, b []polyeq.TokenKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ============================================================
// Basic tokens
// ============================================================

func TestTokenize_Operators(t *testing.T) {
	tokens, err := polyeq.Tokenize("1 + 2 - 3 * 4 / 5 ^ 6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []polyeq.TokenKind{
		polyeq.TokenNumber, polyeq.TokenPlus, polyeq.TokenNumber,
		polyeq.TokenMinus, polyeq.TokenNumber, polyeq.TokenMultiply,
		polyeq.TokenNumber, polyeq.TokenDivide, polyeq.TokenNumber,
		polyeq.TokenPower, polyeq.TokenNumber, polyeq.TokenEOF,
	}
	if !sameKinds(kinds(tokens), want) {
		t.Errorf("want %v, got %v", want, kinds(tokens))
	}
}

func TestTokenize_MultiDigitNumber(t *testing.T) {
	tokens, err := polyeq.Tokenize("1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Text != "1234" || tokens[0].Pos != 0 {
		t.Errorf("want 1234 at 0, got %q at %d", tokens[0].Text, tokens[0].Pos)
	}
}

func TestTokenize_Positions(t *testing.T) {
	tokens, err := polyeq.Tokenize("x + 12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Pos != 0 || tokens[1].Pos != 2 || tokens[2].Pos != 4 {
		t.Errorf("want positions 0 2 4, got %d %d %d", tokens[0].Pos, tokens[1].Pos, tokens[2].Pos)
	}
}

// ============================================================
// Function keywords
// ============================================================

func TestTokenize_FunctionBeforeParen(t *testing.T) {
	tokens, err := polyeq.Tokenize("sin(x)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Kind != polyeq.TokenFunction || tokens[0].Text != "sin" {
		t.Errorf("want FUNCTION sin, got %s %q", tokens[0].Kind, tokens[0].Text)
	}
}

func TestTokenize_FunctionSpaceBeforeParen(t *testing.T) {
	tokens, err := polyeq.Tokenize("cos (x)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Kind != polyeq.TokenFunction {
		t.Errorf("keyword with space before paren should lex as FUNCTION, got %s", tokens[0].Kind)
	}
}

func TestTokenize_KeywordWithoutParenIsVariables(t *testing.T) {
	tokens, err := polyeq.Tokenize("sinx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// s * i * n * x: four variables with implicit products between them.
	want := []polyeq.TokenKind{
		polyeq.TokenVariable, polyeq.TokenImplicitMultiply,
		polyeq.TokenVariable, polyeq.TokenImplicitMultiply,
		polyeq.TokenVariable, polyeq.TokenImplicitMultiply,
		polyeq.TokenVariable, polyeq.TokenEOF,
	}
	if !sameKinds(kinds(tokens), want) {
		t.Errorf("want %v, got %v", want, kinds(tokens))
	}
}

// ============================================================
// Implicit multiplication
// ============================================================

func TestTokenize_ImplicitMultiply(t *testing.T) {
	cases := []struct {
		input string
		want  []polyeq.TokenKind
	}{
		{"2x", []polyeq.TokenKind{polyeq.TokenNumber, polyeq.TokenImplicitMultiply, polyeq.TokenVariable, polyeq.TokenEOF}},
		{"x2", []polyeq.TokenKind{polyeq.TokenVariable, polyeq.TokenImplicitMultiply, polyeq.TokenNumber, polyeq.TokenEOF}},
		{"xy", []polyeq.TokenKind{polyeq.TokenVariable, polyeq.TokenImplicitMultiply, polyeq.TokenVariable, polyeq.TokenEOF}},
		{"2(x)", []polyeq.TokenKind{polyeq.TokenNumber, polyeq.TokenImplicitMultiply, polyeq.TokenLParen, polyeq.TokenVariable, polyeq.TokenRParen, polyeq.TokenEOF}},
		{"(x)y", []polyeq.TokenKind{polyeq.TokenLParen, polyeq.TokenVariable, polyeq.TokenRParen, polyeq.TokenImplicitMultiply, polyeq.TokenVariable, polyeq.TokenEOF}},
		{"(x)(y)", []polyeq.TokenKind{polyeq.TokenLParen, polyeq.TokenVariable, polyeq.TokenRParen, polyeq.TokenImplicitMultiply, polyeq.TokenLParen, polyeq.TokenVariable, polyeq.TokenRParen, polyeq.TokenEOF}},
		{"(x)2", []polyeq.TokenKind{polyeq.TokenLParen, polyeq.TokenVariable, polyeq.TokenRParen, polyeq.TokenImplicitMultiply, polyeq.TokenNumber, polyeq.TokenEOF}},
		{"2sin(x)", []polyeq.TokenKind{polyeq.TokenNumber, polyeq.TokenImplicitMultiply, polyeq.TokenFunction, polyeq.TokenLParen, polyeq.TokenVariable, polyeq.TokenRParen, polyeq.TokenEOF}},
	}
	for _, c := range cases {
		tokens, err := polyeq.Tokenize(c.input)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.input, err)
		}
		if !sameKinds(kinds(tokens), c.want) {
			t.Errorf("%s: want %v, got %v", c.input, c.want, kinds(tokens))
		}
	}
}

func TestTokenize_NoImplicitMultiplyAfterFunction(t *testing.T) {
	tokens, err := polyeq.Tokenize("sin(x)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tok := range tokens {
		if tok.Kind == polyeq.TokenImplicitMultiply {
			t.Errorf("sin(x) must be a call, found implicit multiply")
		}
	}
}

func TestTokenize_ExplicitStarUnchanged(t *testing.T) {
	tokens, err := polyeq.Tokenize("2*x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[1].Kind != polyeq.TokenMultiply {
		t.Errorf("want MULTIPLY, got %s", tokens[1].Kind)
	}
}

// ============================================================
// Errors
// ============================================================

func TestTokenize_DecimalRejected(t *testing.T) {
	_, err := polyeq.Tokenize("3.14")
	var lexErr *polyeq.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("want LexError, got %v", err)
	}
	if lexErr.Char != '.' || lexErr.Pos != 1 {
		t.Errorf("want '.' at 1, got %q at %d", lexErr.Char, lexErr.Pos)
	}
}

func TestTokenize_UnknownCharacter(t *testing.T) {
	_, err := polyeq.Tokenize("x!")
	var lexErr *polyeq.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("want LexError, got %v", err)
	}
	if lexErr.Char != '!' {
		t.Errorf("want '!', got %q", lexErr.Char)
	}
}

func TestTokenize_EmptyInput(t *testing.T) {
	tokens, err := polyeq.Tokenize("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Kind != polyeq.TokenEOF {
		t.Errorf("want lone EOF, got %v", kinds(tokens))
	}
}
