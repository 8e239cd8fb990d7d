// Package polyeq decides whether two mathematical expressions are
// equivalent.
//
// The pipeline is text → tokens → AST → canonical polynomial → verdict:
// expressions are parsed with precedence-correct recursive descent
// (implicit multiplication included), expanded into a canonical
// sum-of-monomials form with exact rational coefficients, and compared.
// Subexpressions that cannot be expanded — division by a non-constant,
// function calls, exponents outside 0..3 — are treated as opaque atoms,
// with a rational cross-multiplication fallback for fractions.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat), never floating point
//   - Deterministic normalization and stable output
//   - No heuristic sampling: equivalence is only reported when proven
package polyeq

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Node variants
// ============================================================

// Node is the closed set of expression shapes produced by the parser.
// Every node owns its children exclusively; trees are finite and acyclic.
type Node interface {
	node()
}

// Number is an integer constant.
type Number struct {
	Value int64
}

// Variable is a single-letter, case-sensitive variable.
type Variable struct {
	Name string
}

// BinaryOp applies one of + - * / ^ to two sub-expressions.
type BinaryOp struct {
	Op    byte
	Left  Node
	Right Node
}

// UnaryOp is unary minus applied to a sub-expression.
type UnaryOp struct {
	Op      byte
	Operand Node
}

// FunctionCall applies one of sin, cos, tan, ln, sqrt to one argument.
type FunctionCall struct {
	Name string
	Arg  Node
}

func (Number) node()       {}
func (Variable) node()     {}
func (BinaryOp) node()     {}
func (UnaryOp) node()      {}
func (FunctionCall) node() {}

// ============================================================
// Structural equality
// ============================================================

// Equal reports whether two trees have identical structure: same variant
// at every node, equal values, names and operators throughout.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case Number:
		y, ok := b.(Number)
		return ok && x.Value == y.Value
	case Variable:
		y, ok := b.(Variable)
		return ok && x.Name == y.Name
	case BinaryOp:
		y, ok := b.(BinaryOp)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case UnaryOp:
		y, ok := b.(UnaryOp)
		return ok && x.Op == y.Op && Equal(x.Operand, y.Operand)
	case FunctionCall:
		y, ok := b.(FunctionCall)
		return ok && x.Name == y.Name && Equal(x.Arg, y.Arg)
	}
	return false
}

// equalCommutative is Equal with + and * allowed to swap their operands at
// any depth. The atom registry uses it so that, say, sin(x+y) and sin(y+x)
// collapse to one atom.
func equalCommutative(a, b Node) bool {
	switch x := a.(type) {
	case Number:
		y, ok := b.(Number)
		return ok && x.Value == y.Value
	case Variable:
		y, ok := b.(Variable)
		return ok && x.Name == y.Name
	case BinaryOp:
		y, ok := b.(BinaryOp)
		if !ok || x.Op != y.Op {
			return false
		}
		if equalCommutative(x.Left, y.Left) && equalCommutative(x.Right, y.Right) {
			return true
		}
		if x.Op == '+' || x.Op == '*' {
			return equalCommutative(x.Left, y.Right) && equalCommutative(x.Right, y.Left)
		}
		return false
	case UnaryOp:
		y, ok := b.(UnaryOp)
		return ok && x.Op == y.Op && equalCommutative(x.Operand, y.Operand)
	case FunctionCall:
		y, ok := b.(FunctionCall)
		return ok && x.Name == y.Name && equalCommutative(x.Arg, y.Arg)
	}
	return false
}

// ============================================================
// Rendering
// ============================================================

// PrintAST renders the tree in indented form for debugging, one node per
// line with children indented under their parent.
func PrintAST(n Node) string {
	var sb strings.Builder
	printNode(&sb, n, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, n Node, indent int) {
	prefix := strings.Repeat("  ", indent)
	switch v := n.(type) {
	case Number:
		fmt.Fprintf(sb, "%sNumber: %d\n", prefix, v.Value)
	case Variable:
		fmt.Fprintf(sb, "%sVariable: %s\n", prefix, v.Name)
	case BinaryOp:
		fmt.Fprintf(sb, "%sBinaryOp: %c\n", prefix, v.Op)
		fmt.Fprintf(sb, "%s  Left:\n", prefix)
		printNode(sb, v.Left, indent+2)
		fmt.Fprintf(sb, "%s  Right:\n", prefix)
		printNode(sb, v.Right, indent+2)
	case UnaryOp:
		fmt.Fprintf(sb, "%sUnaryOp: %c\n", prefix, v.Op)
		fmt.Fprintf(sb, "%s  Operand:\n", prefix)
		printNode(sb, v.Operand, indent+2)
	case FunctionCall:
		fmt.Fprintf(sb, "%sFunctionCall: %s\n", prefix, v.Name)
		fmt.Fprintf(sb, "%s  Argument:\n", prefix)
		printNode(sb, v.Arg, indent+2)
	}
}

// exprString is a fully parenthesized one-line rendering. Distinct tree
// structures always render distinctly, which makes it usable as a stable
// display name for atoms.
func exprString(n Node) string {
	switch v := n.(type) {
	case Number:
		return strconv.FormatInt(v.Value, 10)
	case Variable:
		return v.Name
	case BinaryOp:
		return "(" + exprString(v.Left) + string(v.Op) + exprString(v.Right) + ")"
	case UnaryOp:
		return "(" + string(v.Op) + exprString(v.Operand) + ")"
	case FunctionCall:
		return v.Name + "(" + exprString(v.Arg) + ")"
	}
	return ""
}

// nodeJSON returns a type-tagged map form of the tree for the tool layer.
func nodeJSON(n Node) map[string]interface{} {
	switch v := n.(type) {
	case Number:
		return map[string]interface{}{"type": "number", "value": v.Value}
	case Variable:
		return map[string]interface{}{"type": "variable", "name": v.Name}
	case BinaryOp:
		return map[string]interface{}{
			"type":  "binary",
			"op":    string(v.Op),
			"left":  nodeJSON(v.Left),
			"right": nodeJSON(v.Right),
		}
	case UnaryOp:
		return map[string]interface{}{
			"type":    "unary",
			"op":      string(v.Op),
			"operand": nodeJSON(v.Operand),
		}
	case FunctionCall:
		return map[string]interface{}{
			"type": "call",
			"name": v.Name,
			"arg":  nodeJSON(v.Arg),
		}
	}
	return nil
}
