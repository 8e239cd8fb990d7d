package polyeq

// AreEquivalent decides whether two expression trees denote the same
// function, returning true only when equivalence is proven.
//
// Both sides normalize against one shared atom registry, so identical
// non-expandable subexpressions on either side collapse to the same atom.
// Equal canonical polynomials prove equivalence outright. When the
// polynomials differ and atoms were involved, a rational fallback rewrites
// each side as a single fraction of atom-free polynomials and compares by
// cross-multiplication, which proves identities like x/x = 1 that the
// atom view cannot see. A DivisionByZeroError from either side is
// propagated.
func AreEquivalent(a, b Node) (bool, error) {
	reg := &atomRegistry{}
	pa, err := normalize(a, reg)
	if err != nil {
		return false, err
	}
	pb, err := normalize(b, reg)
	if err != nil {
		return false, err
	}
	if pa.Equal(pb) {
		return true, nil
	}
	if reg.empty() {
		// Purely polynomial sides with different canonical forms are
		// provably inequivalent.
		return false, nil
	}

	frac := &atomRegistry{}
	na, da, err := rationalParts(a, frac)
	if err != nil {
		return false, err
	}
	nb, db, err := rationalParts(b, frac)
	if err != nil {
		return false, err
	}
	return na.Mul(db).Equal(nb.Mul(da)), nil
}

// rationalParts rewrites a tree as one fraction num/den of polynomials,
// combining nested fractions by the usual field rules. Subtrees that are
// not rational in the variables (function calls, non-constant exponents)
// still become atoms. A divisor whose numerator part is the zero
// polynomial is a division by zero regardless of its denominator part.
func rationalParts(n Node, reg *atomRegistry) (num, den Polynomial, err error) {
	one := constPolynomial(RatInt(1))
	switch v := n.(type) {
	case Number:
		return constPolynomial(RatInt(v.Value)), one, nil

	case Variable:
		return varPolynomial(v.Name), one, nil

	case UnaryOp:
		num, den, err = rationalParts(v.Operand, reg)
		if err != nil {
			return Polynomial{}, Polynomial{}, err
		}
		return num.Neg(), den, nil

	case BinaryOp:
		switch v.Op {
		case '+', '-', '*', '/':
			ln, ld, err := rationalParts(v.Left, reg)
			if err != nil {
				return Polynomial{}, Polynomial{}, err
			}
			rn, rd, err := rationalParts(v.Right, reg)
			if err != nil {
				return Polynomial{}, Polynomial{}, err
			}
			switch v.Op {
			case '+':
				return ln.Mul(rd).Add(rn.Mul(ld)), ld.Mul(rd), nil
			case '-':
				return ln.Mul(rd).Sub(rn.Mul(ld)), ld.Mul(rd), nil
			case '*':
				return ln.Mul(rn), ld.Mul(rd), nil
			default:
				if rn.IsZero() {
					return Polynomial{}, Polynomial{}, &DivisionByZeroError{Divisor: v.Right}
				}
				return ln.Mul(rd), ld.Mul(rn), nil
			}

		case '^':
			exp, err := normalize(v.Right, &atomRegistry{})
			if err != nil {
				return Polynomial{}, Polynomial{}, err
			}
			e, ok := expandableExponent(exp)
			if !ok {
				return varPolynomial(reg.intern(v)), one, nil
			}
			bn, bd, err := rationalParts(v.Left, reg)
			if err != nil {
				return Polynomial{}, Polynomial{}, err
			}
			return bn.pow(e), bd.pow(e), nil
		}
		return varPolynomial(reg.intern(v)), one, nil

	case FunctionCall:
		return varPolynomial(reg.intern(v)), one, nil
	}
	return Polynomial{}, Polynomial{}, nil
}
