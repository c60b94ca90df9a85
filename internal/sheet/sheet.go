// Package sheet implements the Sheet container and the Cell dependency
// graph described in spec §4.1-4.2: a sparse owner of cells, the
// bidirectional reference graph between them, cycle detection, and
// invalidation propagation. Formula parsing is delegated entirely to the
// formula package; sheet never inspects an expression's grammar.
package sheet

import (
	"fmt"
	"io"

	"github.com/kalexmills/gridsheet/internal/cellvalue"
	"github.com/kalexmills/gridsheet/internal/position"
)

// Sheet is a sparse 2-D owner of Cells.
type Sheet struct {
	cells map[position.Position]*Cell

	// in[target] is the set of positions whose formula references target.
	// Kept at the Sheet level, independent of whether target currently has
	// a materialized Cell, so that Clear/re-Set at target never drops the
	// knowledge that other cells depend on it (spec invariant 1 must hold
	// even across a cell's destruction and re-creation).
	in map[position.Position]map[position.Position]struct{}
}

// New creates an empty Sheet.
func New() *Sheet {
	return &Sheet{
		cells: make(map[position.Position]*Cell),
		in:    make(map[position.Position]map[position.Position]struct{}),
	}
}

// SetCell validates pos, auto-creates the slot if needed, and delegates
// Set(text) to the cell there.
func (s *Sheet) SetCell(pos position.Position, text string) error {
	if !pos.IsValid() {
		return ErrInvalidPosition
	}
	return s.ensureCell(pos).Set(text)
}

// GetCell returns the cell at pos, or nil if the slot is unmaterialized.
func (s *Sheet) GetCell(pos position.Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, ErrInvalidPosition
	}
	return s.cells[pos], nil
}

// ClearCell resets the cell at pos to Empty and drops the owning slot. Its
// own outbound edges are detached from their targets' inbound sets first;
// other cells' references to pos are left alone and will see Empty on
// their next evaluation (spec §4.1 Clear, §9 Open Question b).
func (s *Sheet) ClearCell(pos position.Position) error {
	if !pos.IsValid() {
		return ErrInvalidPosition
	}
	cell, ok := s.cells[pos]
	if !ok {
		return nil
	}
	cell.Clear()
	delete(s.cells, pos)
	return nil
}

// GetPrintableSize returns the smallest rectangle anchored at (0,0) that
// contains every cell whose GetText() is non-empty.
func (s *Sheet) GetPrintableSize() position.Size {
	var sz position.Size
	for pos, c := range s.cells {
		if c.GetText() == "" {
			continue
		}
		if pos.Row+1 > sz.Rows {
			sz.Rows = pos.Row + 1
		}
		if pos.Col+1 > sz.Cols {
			sz.Cols = pos.Col + 1
		}
	}
	return sz
}

// PrintValues writes the printable rectangle's values, tab-separated
// within a row and newline-terminated per row.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.print(w, func(c *Cell) string { return c.GetValue().String() })
}

// PrintTexts writes the printable rectangle's raw source text.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.print(w, func(c *Cell) string { return c.GetText() })
}

func (s *Sheet) print(w io.Writer, render func(*Cell) string) error {
	sz := s.GetPrintableSize()
	for r := 0; r < sz.Rows; r++ {
		for col := 0; col < sz.Cols; col++ {
			if col > 0 {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
			if c, ok := s.cells[position.Position{Row: r, Col: col}]; ok {
				if _, err := io.WriteString(w, render(c)); err != nil {
					return err
				}
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// ensureCell returns the cell at pos, auto-materializing an Empty one if
// absent. Callers must have already validated pos.
func (s *Sheet) ensureCell(pos position.Position) *Cell {
	if c, ok := s.cells[pos]; ok {
		return c
	}
	c := newCell(s, pos)
	s.cells[pos] = c
	return c
}

// lookup is the formula.Lookup the Cell package hands to formula.Artifact
// Evaluate calls: a position with no materialized cell reads as Text("").
func (s *Sheet) lookup(pos position.Position) cellvalue.Value {
	if c, ok := s.cells[pos]; ok {
		return c.GetValue()
	}
	return cellvalue.Text("")
}

func (s *Sheet) addIn(target, referrer position.Position) {
	if s.in[target] == nil {
		s.in[target] = make(map[position.Position]struct{})
	}
	s.in[target][referrer] = struct{}{}
}

func (s *Sheet) removeIn(target, referrer position.Position) {
	delete(s.in[target], referrer)
	if len(s.in[target]) == 0 {
		delete(s.in, target)
	}
}

// backwardClosure computes B from spec §4.1.a: the set of positions
// (including start) reachable from start by walking inbound edges. A
// proposed outbound reference into B would create a cycle through start.
func (s *Sheet) backwardClosure(start position.Position) map[position.Position]struct{} {
	visited := map[position.Position]struct{}{start: {}}
	queue := []position.Position{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for p := range s.in[cur] {
			if _, ok := visited[p]; !ok {
				visited[p] = struct{}{}
				queue = append(queue, p)
			}
		}
	}
	return visited
}

// invalidate drops pos's cache and recursively forwards along inbound
// edges, visiting each position at most once (spec §4.1.b idempotence).
func (s *Sheet) invalidate(pos position.Position) {
	visited := make(map[position.Position]struct{})
	queue := []position.Position{pos}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, ok := visited[cur]; ok {
			continue
		}
		visited[cur] = struct{}{}
		if c, ok := s.cells[cur]; ok {
			c.cache = nil
		}
		for referrer := range s.in[cur] {
			queue = append(queue, referrer)
		}
	}
}

// String returns a short summary of s (its number of materialized cells),
// for debugging convenience.
func (s *Sheet) String() string {
	return fmt.Sprintf("Sheet{%d cells}", len(s.cells))
}
