// Package formula is the Formula collaborator described in spec §4.3: it
// parses an expression string into an evaluable Artifact, lists the
// positions it references, and evaluates it against a Sheet-supplied
// Lookup. The concrete grammar (four-operator arithmetic with parenthesized
// sub-expressions and cell references) is this package's own business —
// the sheet package never inspects it.
package formula

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/kalexmills/gridsheet/internal/cellvalue"
	"github.com/kalexmills/gridsheet/internal/position"
)

// ErrParse is returned when an expression is syntactically invalid. The
// sheet package wraps this into its own FormulaParse error plane (spec §7).
var ErrParse = errors.New("formula parse error")

// Artifact is a parsed, evaluable formula.
type Artifact struct {
	root expr
	src  string // canonicalized expression text, without the leading '='
}

// Parse parses expr (the text following '=') into an Artifact.
func Parse(expr string) (Artifact, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return Artifact{}, err
	}
	root, rest, err := parseExpr(tokens)
	if err != nil {
		return Artifact{}, err
	}
	if len(rest) != 0 {
		return Artifact{}, fmt.Errorf("%w: unexpected trailing tokens", ErrParse)
	}
	return Artifact{root: root, src: canonicalize(root)}, nil
}

// Evaluate computes the Artifact's value against lookup, per the coercion
// and propagation rules in spec §4.3 and §7.
func (a Artifact) Evaluate(lookup Lookup) cellvalue.Value {
	return evaluate(a.root, lookup)
}

// GetReferencedCells returns the deduplicated, valid positions a formula
// references, in first-encountered order.
func (a Artifact) GetReferencedCells() []position.Position {
	var all []position.Position
	collectRefs(a.root, &all)

	seen := make(map[position.Position]struct{}, len(all))
	out := make([]position.Position, 0, len(all))
	for _, p := range all {
		if !p.IsValid() {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// GetExpression returns the canonicalized expression text (no leading '=').
func (a Artifact) GetExpression() string {
	return a.src
}

// canonicalize renders the AST back to text, the same way FormulaImpl's
// text_ is rebuilt from formula_ptr_->GetExpression() in the original.
func canonicalize(e expr) string {
	switch n := e.(type) {
	case numberExpr:
		return strconv.FormatFloat(n.value, 'g', -1, 64)
	case refExpr:
		return n.pos.String()
	case unaryExpr:
		return "-" + parenthesizeIfBinary(n.x)
	case binaryExpr:
		right := parenthesizeIfLower(n.y, n.op)
		if b, ok := n.y.(binaryExpr); ok && (n.op == '-' || n.op == '/') && precedence(b.op) == precedence(n.op) {
			right = "(" + canonicalize(n.y) + ")"
		}
		return parenthesizeIfLower(n.x, n.op) + string(n.op) + right
	default:
		return ""
	}
}

func parenthesizeIfBinary(e expr) string {
	if _, ok := e.(binaryExpr); ok {
		return "(" + canonicalize(e) + ")"
	}
	return canonicalize(e)
}

// parenthesizeIfLower wraps e in parentheses when its operator binds more
// loosely than op. A right operand of '-' or '/' at equal precedence (e.g. a
// subtraction on the right of a '-' operator) is parenthesized by
// canonicalize itself, since its meaning would change if rendered bare.
func parenthesizeIfLower(e expr, op byte) string {
	b, ok := e.(binaryExpr)
	if !ok {
		return canonicalize(e)
	}
	if precedence(b.op) < precedence(op) {
		return "(" + canonicalize(e) + ")"
	}
	return canonicalize(e)
}

func precedence(op byte) int {
	switch op {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	default:
		return 0
	}
}
