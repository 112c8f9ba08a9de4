package rewrite

import "errors"

// ErrParse is wrapped into the "Parse errors: [ ... ]" diagnostic spec.md §6
// requires verbatim; the capitalization mirrors that external contract.
var ErrParse = errors.New("Parse errors") //nolint:stylecheck // external error-message contract

// ErrMissingBody is returned when a function-like node has no body field,
// a tree-shape surprise a conforming host grammar should never produce
// (spec.md §7).
var ErrMissingBody = errors.New("rewrite: function-like node has no body")
