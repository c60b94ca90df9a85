package formula

import (
	"testing"

	"github.com/kalexmills/gridsheet/internal/cellvalue"
	"github.com/kalexmills/gridsheet/internal/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, expr string) Artifact {
	t.Helper()
	a, err := Parse(expr)
	require.NoError(t, err)
	return a
}

func TestEvaluateArithmetic(t *testing.T) {
	lookup := func(p position.Position) cellvalue.Value {
		if p == (position.Position{Row: 0, Col: 0}) { // A1
			return cellvalue.Number(2)
		}
		if p == (position.Position{Row: 1, Col: 0}) { // A2
			return cellvalue.Number(3)
		}
		return cellvalue.Text("")
	}

	cases := map[string]float64{
		"A1+A2":     5,
		"A1*A2":     6,
		"(A1+A2)*2": 10,
		"-A1+A2":    1,
		"A1-A2":     -1,
	}
	for expr, want := range cases {
		a := mustParse(t, expr)
		v := a.Evaluate(lookup)
		require.True(t, v.IsNumber(), "expr %q produced %v", expr, v)
		assert.InDelta(t, want, v.AsNumber(), 1e-9, expr)
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	a := mustParse(t, "1/0")
	v := a.Evaluate(func(position.Position) cellvalue.Value { return cellvalue.Number(0) })
	require.True(t, v.IsError())
	assert.Equal(t, cellvalue.Arithmetic, v.AsError())
}

func TestEvaluateRefOutOfRange(t *testing.T) {
	a := mustParse(t, "ZZZ1")
	v := a.Evaluate(func(position.Position) cellvalue.Value { return cellvalue.Number(1) })
	require.True(t, v.IsError())
	assert.Equal(t, cellvalue.Ref, v.AsError())
}

func TestGetReferencedCellsDedup(t *testing.T) {
	a := mustParse(t, "A1+A1+B2")
	refs := a.GetReferencedCells()
	assert.Equal(t, []position.Position{{Row: 0, Col: 0}, {Row: 1, Col: 1}}, refs)
}

func TestParseErrors(t *testing.T) {
	for _, expr := range []string{"", "1+", "(1+2", "1 2"} {
		_, err := Parse(expr)
		assert.Error(t, err)
	}
}
