package boolproof

import "errors"

var (
	ErrEvaluationsSize    = errors.New("number of evaluations does not match the domain size")
	ErrExtendedDomainSize = errors.New("extended domain must have twice the cardinality of the base domain")
	ErrNotBoolean         = errors.New("evaluations are not all boolean")
	ErrInvalidCertificate = errors.New("boolean certificate does not verify")
)
