package formula

import "github.com/kalexmills/gridsheet/internal/position"

// expr is an evaluable formula expression node. The shape mirrors the
// teacher's expr.go: a small closed set of node kinds dispatched over in
// evaluate and collectRefs, rather than a visitor hierarchy.
type expr interface {
	isExpr()
}

type numberExpr struct {
	value float64
}

type refExpr struct {
	pos position.Position
}

type unaryExpr struct {
	op byte // only '-'
	x  expr
}

type binaryExpr struct {
	op   byte // '+', '-', '*', '/'
	x, y expr
}

func (numberExpr) isExpr() {}
func (refExpr) isExpr()    {}
func (unaryExpr) isExpr()  {}
func (binaryExpr) isExpr() {}

// collectRefs walks e depth-first, appending every referenced position in
// the order encountered. Deduplication happens in GetReferencedCells.
func collectRefs(e expr, out *[]position.Position) {
	switch n := e.(type) {
	case refExpr:
		*out = append(*out, n.pos)
	case unaryExpr:
		collectRefs(n.x, out)
	case binaryExpr:
		collectRefs(n.x, out)
		collectRefs(n.y, out)
	}
}
