package formula

import (
	"math"

	"github.com/kalexmills/gridsheet/internal/cellvalue"
	"github.com/kalexmills/gridsheet/internal/position"
)

// Lookup resolves the value a formula should see at pos. The sheet package
// supplies this; a position outside the valid grid is never passed in — an
// out-of-range reference is instead caught before the lookup is invoked.
type Lookup func(pos position.Position) cellvalue.Value

// evaluate walks e, applying the coercion rules from spec §4.3. The first
// error encountered along an operand chain wins and short-circuits the
// rest of that subtree, matching "first-encountered wins" from spec §7.
func evaluate(e expr, lookup Lookup) cellvalue.Value {
	switch n := e.(type) {
	case numberExpr:
		return cellvalue.Number(n.value)
	case refExpr:
		if !n.pos.IsValid() {
			return cellvalue.Error(cellvalue.Ref)
		}
		return lookup(n.pos).ToNumber()
	case unaryExpr:
		x := evaluate(n.x, lookup)
		if x.IsError() {
			return x
		}
		return cellvalue.Number(-x.AsNumber())
	case binaryExpr:
		x := evaluate(n.x, lookup)
		if x.IsError() {
			return x
		}
		y := evaluate(n.y, lookup)
		if y.IsError() {
			return y
		}
		return applyOp(n.op, x.AsNumber(), y.AsNumber())
	default:
		return cellvalue.Error(cellvalue.Arithmetic)
	}
}

func applyOp(op byte, x, y float64) cellvalue.Value {
	var result float64
	switch op {
	case '+':
		result = x + y
	case '-':
		result = x - y
	case '*':
		result = x * y
	case '/':
		if y == 0 {
			return cellvalue.Error(cellvalue.Arithmetic)
		}
		result = x / y
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return cellvalue.Error(cellvalue.Arithmetic)
	}
	return cellvalue.Number(result)
}
