// Package cellvalue defines the sum type held by every cell and returned
// from formula evaluation: a Number, a Text, or an ArithmeticError.
package cellvalue

import "strconv"

// Kind tags which alternative of Value is populated.
type Kind int

const (
	Num Kind = iota
	Str
	Err
)

// ArithmeticError enumerates the evaluation-plane errors a formula can
// produce. Unlike the structural errors returned from Set, these become a
// cell's Value rather than aborting an operation.
type ArithmeticError int

const (
	// Ref means a formula referenced a position outside the valid grid.
	Ref ArithmeticError = iota
	// ValueError means an operand could not be coerced to a number.
	ValueError
	// Arithmetic means the arithmetic itself failed (e.g. division by zero).
	Arithmetic
)

// Error renders the sigil used both in formula-error propagation and in
// Sheet.PrintValues.
func (e ArithmeticError) Error() string {
	switch e {
	case Ref:
		return "#REF!"
	case ValueError:
		return "#VALUE!"
	case Arithmetic:
		return "#ARITHM!"
	default:
		return "#ARITHM!"
	}
}

// Value is the sum type produced by a cell or a formula evaluation.
type Value struct {
	kind Kind
	num  float64
	str  string
	err  ArithmeticError
}

// Number constructs a numeric Value.
func Number(n float64) Value { return Value{kind: Num, num: n} }

// Text constructs a textual Value.
func Text(s string) Value { return Value{kind: Str, str: s} }

// Error constructs an error Value.
func Error(e ArithmeticError) Value { return Value{kind: Err, err: e} }

// Kind reports which alternative v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNumber reports whether v holds a Number.
func (v Value) IsNumber() bool { return v.kind == Num }

// IsError reports whether v holds an ArithmeticError.
func (v Value) IsError() bool { return v.kind == Err }

// AsNumber returns the numeric payload; valid only when Kind() == Num.
func (v Value) AsNumber() float64 { return v.num }

// AsText returns the textual payload; valid only when Kind() == Str.
func (v Value) AsText() string { return v.str }

// AsError returns the error payload; valid only when Kind() == Err.
func (v Value) AsError() ArithmeticError { return v.err }

// String renders v the way Sheet.PrintValues does: a default decimal
// rendering for numbers, the raw string for text, the sigil for errors.
func (v Value) String() string {
	switch v.kind {
	case Num:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case Str:
		return v.str
	case Err:
		return v.err.Error()
	default:
		return ""
	}
}

// ToNumber applies the coercion rules of spec §4.3: Text("") yields 0, a
// well-formed decimal Text yields that number, any other Text yields
// Value, and an Error value propagates unchanged.
func (v Value) ToNumber() Value {
	switch v.kind {
	case Num:
		return v
	case Err:
		return v
	case Str:
		if v.str == "" {
			return Number(0)
		}
		n, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return Error(ValueError)
		}
		return Number(n)
	default:
		return Number(0)
	}
}
