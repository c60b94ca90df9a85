package sheet

import "errors"

// The three structural errors from spec §6/§7: each aborts the current
// mutation and leaves the prior state of the cell and graph untouched.
var (
	ErrInvalidPosition    = errors.New("invalid position")
	ErrCircularDependency = errors.New("circular dependency")
	ErrFormulaParse       = errors.New("formula parse error")
)
