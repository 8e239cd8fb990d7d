package polyeq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	polyeq "github.com/polyeq/polyeq"
)

func checkEquivalence(t *testing.T, a, b string) (bool, error) {
	t.Helper()
	ta, err := polyeq.Parse(a)
	require.NoError(t, err, "parse %q", a)
	tb, err := polyeq.Parse(b)
	require.NoError(t, err, "parse %q", b)
	return polyeq.AreEquivalent(ta, tb)
}

func TestAreEquivalent_Polynomials(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"x+y", "y+x", true},
		{"2(x+3)", "2x+6", true},
		{"(x+1)^2", "x^2+2x+1", true},
		{"(x+1)(x-1)", "x^2-1", true},
		{"x*y*z", "z*y*x", true},
		{"x-x", "0", true},
		{"(x+y)^3", "x^3+3x^2y+3xy^2+y^3", true},
		{"x^2", "x*x", true},
		{"-x-y", "-(x+y)", true},
		{"x/2", "(1*x)/2", true},

		{"x", "y", false},
		{"x-y", "y-x", false},
		{"(x+1)^2", "x^2+1", false},
		{"x+1", "x+2", false},
		{"2x", "3x", false},
	}
	for _, c := range cases {
		got, err := checkEquivalence(t, c.a, c.b)
		require.NoError(t, err, "%s vs %s", c.a, c.b)
		assert.Equal(t, c.want, got, "%s vs %s", c.a, c.b)
	}
}

func TestAreEquivalent_Atoms(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"sin(x)", "sin(x)", true},
		{"sin(x+y)", "sin(y+x)", true},
		{"2sin(x)", "sin(x)+sin(x)", true},
		{"sqrt(x)*sqrt(x)", "sqrt(x)^2", true}, // same atom squared either way
		{"sqrt(x*x)", "x", false},              // no root semantics, sqrt stays opaque
		{"sin(x)", "cos(x)", false},
		{"sin(x)", "sin(y)", false},
		{"sin(2x)", "2sin(x)", false},
		{"(x+1)^4", "(1+x)^4", true}, // same atom modulo commutativity
		{"(x+1)^4", "x^4+4x^3+6x^2+4x+1", false},
		{"x^(4294967296*4294967296)", "1", false}, // exponent 2^64 overflows int64
		{"x^(4294967296*4294967296)", "x^(4294967296*4294967296)", true},
	}
	for _, c := range cases {
		got, err := checkEquivalence(t, c.a, c.b)
		require.NoError(t, err, "%s vs %s", c.a, c.b)
		assert.Equal(t, c.want, got, "%s vs %s", c.a, c.b)
	}
}

func TestAreEquivalent_RationalFallback(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		// Identities the atom view alone cannot prove.
		{"x/x", "1", true},
		{"(x+1)/(x+1)", "1", true},
		{"1 - 1/x", "(x-1)/x", true},
		{"x/y + 1", "(x+y)/y", true},
		{"(x^2-1)/(x+1)", "x-1", true},
		{"1/(x*y)", "1/x * 1/y", true},
		{"x/2/3", "x/6", true},

		{"x/y", "y/x", false},
		{"1/x", "1/y", false},
		{"1/(x+1)", "1/x + 1", false},
	}
	for _, c := range cases {
		got, err := checkEquivalence(t, c.a, c.b)
		require.NoError(t, err, "%s vs %s", c.a, c.b)
		assert.Equal(t, c.want, got, "%s vs %s", c.a, c.b)
	}
}

func TestAreEquivalent_DivisionByZero(t *testing.T) {
	_, err := checkEquivalence(t, "x/0", "x")
	var divErr *polyeq.DivisionByZeroError
	require.ErrorAs(t, err, &divErr)

	_, err = checkEquivalence(t, "x", "1/(2-2)")
	require.ErrorAs(t, err, &divErr)
}

func TestAreEquivalent_ReflexiveOnAtoms(t *testing.T) {
	// An expression is always equivalent to itself, atoms included.
	for _, src := range []string{"sin(x)+cos(y)", "x/y + y/z", "(x+2)^4 - ln(x)"} {
		got, err := checkEquivalence(t, src, src)
		require.NoError(t, err, src)
		assert.True(t, got, "%s vs itself", src)
	}
}
