package polyeq

import (
	"math/big"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

// ============================================================
// Rational — exact coefficient arithmetic
// ============================================================

// Rational is an exact rational number, always in lowest terms with the
// sign carried by the numerator. The denominator is never zero.
type Rational struct{ *big.Rat }

func RatInt(n int64) Rational     { return Rational{big.NewRat(n, 1)} }
func RatFrac(a, b int64) Rational { return Rational{big.NewRat(a, b)} }

func (r Rational) Add(o Rational) Rational { return Rational{new(big.Rat).Add(r.Rat, o.Rat)} }
func (r Rational) Sub(o Rational) Rational { return Rational{new(big.Rat).Sub(r.Rat, o.Rat)} }
func (r Rational) Mul(o Rational) Rational { return Rational{new(big.Rat).Mul(r.Rat, o.Rat)} }
func (r Rational) Div(o Rational) Rational { return Rational{new(big.Rat).Quo(r.Rat, o.Rat)} }
func (r Rational) Neg() Rational           { return Rational{new(big.Rat).Neg(r.Rat)} }
func (r Rational) Abs() Rational           { return Rational{new(big.Rat).Abs(r.Rat)} }
func (r Rational) IsZero() bool            { return r.Sign() == 0 }
func (r Rational) IsOne() bool             { return r.Cmp(big.NewRat(1, 1)) == 0 }
func (r Rational) Equal(o Rational) bool   { return r.Cmp(o.Rat) == 0 }
func (r Rational) String() string          { return r.RatString() }

// ============================================================
// Monomial — a product of factors
// ============================================================

// Factor is one variable or atom raised to a positive integer exponent.
type Factor struct {
	Name string
	Exp  int
}

// Monomial is a sorted vector of factors, at most one per name. The empty
// monomial is the constant term. Sorting makes equality order-independent,
// which is the formalization of commutativity of multiplication.
type Monomial []Factor

func monomialOf(name string) Monomial { return Monomial{{Name: name, Exp: 1}} }

// key is the canonical lookup form. Factor names may themselves contain
// '*' and '^' (atom display names), so an unprintable separator keeps the
// key unambiguous.
func (m Monomial) key() string {
	var sb strings.Builder
	for i, f := range m {
		if i > 0 {
			sb.WriteByte(0)
		}
		sb.WriteString(f.Name)
		sb.WriteByte(0)
		sb.WriteString(strconv.Itoa(f.Exp))
	}
	return sb.String()
}

// Degree is the sum of all exponents.
func (m Monomial) Degree() int {
	total := 0
	for _, f := range m {
		total += f.Exp
	}
	return total
}

func (m Monomial) String() string {
	parts := make([]string, len(m))
	for i, f := range m {
		if f.Exp == 1 {
			parts[i] = f.Name
		} else {
			parts[i] = f.Name + "^" + strconv.Itoa(f.Exp)
		}
	}
	return strings.Join(parts, "*")
}

// mulMonomials unions the factor sets, summing exponents of shared names.
func mulMonomials(a, b Monomial) Monomial {
	out := make(Monomial, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Name < b[j].Name:
			out = append(out, a[i])
			i++
		case a[i].Name > b[j].Name:
			out = append(out, b[j])
			j++
		default:
			out = append(out, Factor{Name: a[i].Name, Exp: a[i].Exp + b[j].Exp})
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// ============================================================
// Polynomial — canonical sum of monomials
// ============================================================

type term struct {
	mono  Monomial
	coeff Rational
}

// Polynomial maps monomials to nonzero rational coefficients. Zero
// coefficients are pruned immediately after every combination, so the
// zero polynomial has no terms at all.
type Polynomial struct {
	terms map[string]term
}

func newPolynomial() Polynomial { return Polynomial{terms: map[string]term{}} }

func constPolynomial(c Rational) Polynomial {
	p := newPolynomial()
	if !c.IsZero() {
		p.terms[""] = term{coeff: c}
	}
	return p
}

func varPolynomial(name string) Polynomial {
	p := newPolynomial()
	m := monomialOf(name)
	p.terms[m.key()] = term{mono: m, coeff: RatInt(1)}
	return p
}

func (p Polynomial) addTerm(m Monomial, c Rational) {
	k := m.key()
	if existing, ok := p.terms[k]; ok {
		c = existing.coeff.Add(c)
	}
	if c.IsZero() {
		delete(p.terms, k)
		return
	}
	p.terms[k] = term{mono: m, coeff: c}
}

func (p Polynomial) Add(o Polynomial) Polynomial {
	out := p.clone()
	for _, t := range o.terms {
		out.addTerm(t.mono, t.coeff)
	}
	return out
}

func (p Polynomial) Sub(o Polynomial) Polynomial {
	out := p.clone()
	for _, t := range o.terms {
		out.addTerm(t.mono, t.coeff.Neg())
	}
	return out
}

// Mul is the Cartesian product over monomial pairs, realizing
// distributivity and commutativity of multiplication at once.
func (p Polynomial) Mul(o Polynomial) Polynomial {
	out := newPolynomial()
	for _, a := range p.terms {
		for _, b := range o.terms {
			out.addTerm(mulMonomials(a.mono, b.mono), a.coeff.Mul(b.coeff))
		}
	}
	return out
}

func (p Polynomial) Neg() Polynomial {
	out := newPolynomial()
	for k, t := range p.terms {
		out.terms[k] = term{mono: t.mono, coeff: t.coeff.Neg()}
	}
	return out
}

// div divides every coefficient by a nonzero constant.
func (p Polynomial) div(c Rational) Polynomial {
	out := newPolynomial()
	for k, t := range p.terms {
		out.terms[k] = term{mono: t.mono, coeff: t.coeff.Div(c)}
	}
	return out
}

func (p Polynomial) pow(e int) Polynomial {
	out := constPolynomial(RatInt(1))
	for i := 0; i < e; i++ {
		out = out.Mul(p)
	}
	return out
}

func (p Polynomial) clone() Polynomial {
	out := newPolynomial()
	for k, t := range p.terms {
		out.terms[k] = t
	}
	return out
}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool { return len(p.terms) == 0 }

// Len is the number of monomials with nonzero coefficient.
func (p Polynomial) Len() int { return len(p.terms) }

// constantValue returns the value of a pure constant polynomial. The zero
// polynomial is the constant 0.
func (p Polynomial) constantValue() (Rational, bool) {
	switch len(p.terms) {
	case 0:
		return RatInt(0), true
	case 1:
		if t, ok := p.terms[""]; ok {
			return t.coeff, true
		}
	}
	return Rational{}, false
}

// Equal compares two polynomials as maps: same monomial set, identical
// coefficients.
func (p Polynomial) Equal(o Polynomial) bool {
	if len(p.terms) != len(o.terms) {
		return false
	}
	for k, t := range p.terms {
		ot, ok := o.terms[k]
		if !ok || !t.coeff.Equal(ot.coeff) {
			return false
		}
	}
	return true
}

// String renders terms sorted by descending total degree, then lexically,
// joined by " + " with negative coefficients absorbed into " - ".
func (p Polynomial) String() string {
	if len(p.terms) == 0 {
		return "0"
	}
	terms := maps.Values(p.terms)
	sort.Slice(terms, func(i, j int) bool {
		di, dj := terms[i].mono.Degree(), terms[j].mono.Degree()
		if di != dj {
			return di > dj
		}
		return terms[i].mono.key() < terms[j].mono.key()
	})
	var sb strings.Builder
	for i, t := range terms {
		negative := t.coeff.Sign() < 0
		switch {
		case i == 0 && negative:
			sb.WriteString("-")
		case i > 0 && negative:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		abs := t.coeff.Abs()
		switch {
		case len(t.mono) == 0:
			sb.WriteString(abs.String())
		case abs.IsOne():
			sb.WriteString(t.mono.String())
		default:
			sb.WriteString(abs.String())
			sb.WriteString("*")
			sb.WriteString(t.mono.String())
		}
	}
	return sb.String()
}

// ============================================================
// Atom registry
// ============================================================

// An atom stands in for a subexpression the engine cannot expand: a
// division by a non-constant, a function call, or an unsupported exponent.
// The registry is created fresh per normalization or equivalence call and
// shared across both sides of one check so that structurally identical
// atoms (modulo commutative reordering of + and *) collapse to one id.
type atomRegistry struct {
	atoms []atomEntry
}

type atomEntry struct {
	node Node
	name string
}

// intern returns the display name of the atom for the given subexpression,
// reusing an existing entry on a structural match.
func (r *atomRegistry) intern(n Node) string {
	for _, a := range r.atoms {
		if equalCommutative(a.node, n) {
			return a.name
		}
	}
	name := exprString(n)
	r.atoms = append(r.atoms, atomEntry{node: n, name: name})
	return name
}

func (r *atomRegistry) empty() bool { return len(r.atoms) == 0 }

// ============================================================
// Normalization
// ============================================================

// DivisionByZeroError reports a structural division whose divisor
// normalizes to the constant zero.
type DivisionByZeroError struct {
	Divisor Node
}

func (e *DivisionByZeroError) Error() string {
	return "division by zero: divisor " + exprString(e.Divisor) + " reduces to 0"
}

// NormalizeExpression expands an AST into canonical polynomial form.
// Non-expandable subexpressions become atoms that participate in monomials
// like variables.
func NormalizeExpression(n Node) (Polynomial, error) {
	return normalize(n, &atomRegistry{})
}

func normalize(n Node, reg *atomRegistry) (Polynomial, error) {
	switch v := n.(type) {
	case Number:
		return constPolynomial(RatInt(v.Value)), nil

	case Variable:
		return varPolynomial(v.Name), nil

	case UnaryOp:
		operand, err := normalize(v.Operand, reg)
		if err != nil {
			return Polynomial{}, err
		}
		return operand.Neg(), nil

	case BinaryOp:
		switch v.Op {
		case '+', '-', '*':
			left, err := normalize(v.Left, reg)
			if err != nil {
				return Polynomial{}, err
			}
			right, err := normalize(v.Right, reg)
			if err != nil {
				return Polynomial{}, err
			}
			switch v.Op {
			case '+':
				return left.Add(right), nil
			case '-':
				return left.Sub(right), nil
			default:
				return left.Mul(right), nil
			}

		case '/':
			// Probe the divisor with a scratch registry: its atoms are
			// only needed if the division itself stays expandable, which
			// it never does for a non-constant divisor.
			divisor, err := normalize(v.Right, &atomRegistry{})
			if err != nil {
				return Polynomial{}, err
			}
			c, constant := divisor.constantValue()
			if !constant {
				return varPolynomial(reg.intern(v)), nil
			}
			if c.IsZero() {
				return Polynomial{}, &DivisionByZeroError{Divisor: v.Right}
			}
			dividend, err := normalize(v.Left, reg)
			if err != nil {
				return Polynomial{}, err
			}
			return dividend.div(c), nil

		case '^':
			exp, err := normalize(v.Right, &atomRegistry{})
			if err != nil {
				return Polynomial{}, err
			}
			e, ok := expandableExponent(exp)
			if !ok {
				return varPolynomial(reg.intern(v)), nil
			}
			if e == 0 {
				return constPolynomial(RatInt(1)), nil
			}
			base, err := normalize(v.Left, reg)
			if err != nil {
				return Polynomial{}, err
			}
			return base.pow(e), nil
		}
		return varPolynomial(reg.intern(v)), nil

	case FunctionCall:
		// Function semantics are never expanded.
		return varPolynomial(reg.intern(v)), nil
	}
	return Polynomial{}, nil
}

// expandableExponent reports whether an exponent polynomial is a constant
// integer in 0..3, the only values exact expansion supports.
func expandableExponent(p Polynomial) (int, bool) {
	c, ok := p.constantValue()
	if !ok || !c.IsInt() || !c.Num().IsInt64() {
		return 0, false
	}
	v := c.Num().Int64()
	if v < 0 || v > 3 {
		return 0, false
	}
	return int(v), true
}

// IsExpandable reports whether a tree contains only +, -, * and unary
// minus over numbers and variables, i.e. normalizes with no atoms and no
// division.
func IsExpandable(n Node) bool {
	switch v := n.(type) {
	case Number, Variable:
		return true
	case UnaryOp:
		return v.Op == '-' && IsExpandable(v.Operand)
	case BinaryOp:
		switch v.Op {
		case '+', '-', '*':
			return IsExpandable(v.Left) && IsExpandable(v.Right)
		}
		return false
	}
	return false
}
