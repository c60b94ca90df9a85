package sheet

import (
	"fmt"

	"golang.org/x/exp/maps"

	"github.com/kalexmills/gridsheet/internal/cellvalue"
	"github.com/kalexmills/gridsheet/internal/formula"
	"github.com/kalexmills/gridsheet/internal/position"
)

// kind tags which of the three variants a Cell currently holds. This is
// the tagged-sum replacement for the teacher's Cell.expr == nil check and
// for the original's EmptyImpl/TextImpl/FormulaImpl hierarchy (spec §9).
type kind int

const (
	kindEmpty kind = iota
	kindText
	kindFormula
)

// Cell is a single grid cell: its content (Empty/Text/Formula), its cached
// value when it holds a formula, and its outbound dependency edges. Inbound
// edges are tracked by the owning Sheet (see Sheet.in) so that they survive
// a Clear/re-Set cycle at this position — see DESIGN.md for why.
type Cell struct {
	sheet *Sheet
	pos   position.Position

	kind  kind
	text  string
	value cellvalue.Value // populated for kindEmpty/kindText

	artifact formula.Artifact
	cache    *cellvalue.Value // nil means "stale or never computed"

	out map[position.Position]struct{} // positions this cell's formula references
}

func newCell(sh *Sheet, pos position.Position) *Cell {
	return &Cell{sheet: sh, pos: pos, kind: kindEmpty, value: cellvalue.Text("")}
}

// Set replaces the cell's content per the classification rules of spec §6:
// empty string -> Empty, "="+body (body non-empty) -> Formula, anything
// else -> Text. It fails with ErrFormulaParse or ErrCircularDependency
// without modifying the cell or the dependency graph.
func (c *Cell) Set(text string) error {
	newKind, newValue, newArtifact, newRefs, err := classify(text)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFormulaParse, err)
	}

	if len(newRefs) > 0 {
		closure := c.sheet.backwardClosure(c.pos)
		for _, r := range newRefs {
			if _, ok := closure[r]; ok {
				return ErrCircularDependency
			}
		}
	}

	for _, p := range maps.Keys(c.out) {
		c.sheet.removeIn(p, c.pos)
	}

	newOut := make(map[position.Position]struct{}, len(newRefs))
	for _, r := range newRefs {
		c.sheet.ensureCell(r)
		c.sheet.addIn(r, c.pos)
		newOut[r] = struct{}{}
	}

	c.kind = newKind
	c.value = newValue
	c.artifact = newArtifact
	c.out = newOut
	c.text = buildText(text, newKind, newArtifact)
	c.cache = nil

	c.sheet.invalidate(c.pos)
	return nil
}

// Clear resets the cell to Empty. It detaches this cell's own outbound
// edges (spec §9 Open Question b) and invalidates every dependant's
// cache, but leaves dependants' out-sets untouched — they continue to
// reference this position and see Empty on their next evaluation.
func (c *Cell) Clear() {
	for _, p := range maps.Keys(c.out) {
		c.sheet.removeIn(p, c.pos)
	}
	c.out = nil
	c.kind = kindEmpty
	c.value = cellvalue.Text("")
	c.artifact = formula.Artifact{}
	c.cache = nil
	c.sheet.invalidate(c.pos)
}

// GetValue returns the cell's value, evaluating and caching a Formula
// cell's result lazily. Evaluation errors are never cached.
func (c *Cell) GetValue() cellvalue.Value {
	if c.kind != kindFormula {
		return c.value
	}
	if c.cache != nil {
		return *c.cache
	}
	v := c.artifact.Evaluate(c.sheet.lookup)
	if v.IsNumber() {
		cached := v
		c.cache = &cached
	}
	return v
}

// GetText returns the raw source text, with any leading '\'' or '=' intact.
func (c *Cell) GetText() string {
	return c.text
}

// GetReferencedCells returns the deduplicated valid positions this cell's
// formula references. It is empty for non-Formula cells.
func (c *Cell) GetReferencedCells() []position.Position {
	if c.kind != kindFormula {
		return nil
	}
	return c.artifact.GetReferencedCells()
}

// IsReferenced reports whether any cell currently references this position.
func (c *Cell) IsReferenced() bool {
	return len(c.sheet.in[c.pos]) > 0
}

// IsCached reports whether a Formula cell currently holds a memoized value.
// Always false for Empty/Text cells, which have no cache to speak of.
func (c *Cell) IsCached() bool {
	return c.kind == kindFormula && c.cache != nil
}

// classify implements the textual-input rules of spec §6, returning the
// proposed new state without mutating anything — Set only commits it after
// the cycle check passes.
func classify(text string) (kind, cellvalue.Value, formula.Artifact, []position.Position, error) {
	switch {
	case text == "":
		return kindEmpty, cellvalue.Text(""), formula.Artifact{}, nil, nil
	case len(text) > 1 && text[0] == '=':
		a, err := formula.Parse(text[1:])
		if err != nil {
			return kindEmpty, cellvalue.Value{}, formula.Artifact{}, nil, err
		}
		return kindFormula, cellvalue.Value{}, a, a.GetReferencedCells(), nil
	default:
		v := text
		if len(text) > 0 && text[0] == '\'' {
			v = text[1:]
		}
		return kindText, cellvalue.Text(v), formula.Artifact{}, nil, nil
	}
}

// buildText reconstructs the stored source text: Empty collapses to "",
// Formula rebuilds "="+canonical expression, Text keeps the raw input
// (escape marker included) exactly as the original implementation's
// FormulaImpl/TextImpl constructors do.
func buildText(raw string, k kind, a formula.Artifact) string {
	switch k {
	case kindEmpty:
		return ""
	case kindFormula:
		return "=" + a.GetExpression()
	default:
		return raw
	}
}
