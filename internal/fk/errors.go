package fk

import "errors"

// All of these indicate a caller invariant violation: the precomputed
// tables, the domain and the evaluation vector were not built for one
// another. They are rejected before any transform runs.
var (
	ErrSRSTooSmall        = errors.New("srs does not cover the domain")
	ErrExtendedDomainSize = errors.New("extended domain does not have twice the domain size")
	ErrEvaluationsSize    = errors.New("evaluation vector does not match the domain size")
	ErrPrecomputedYSize   = errors.New("precomputed vector does not match the extended domain size")
	ErrPointwiseMismatch  = errors.New("mismatched vector lengths in pointwise multiplication")
)
