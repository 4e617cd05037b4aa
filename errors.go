package laconicot

import "errors"

// Configuration and usage errors. These indicate a caller bug or an
// unsupported parameter choice, not adversarial input.
var (
	ErrUnsupportedBackend = errors.New("unsupported backend")
	ErrDegreeTooLarge     = errors.New("degree exponent exceeds the two-adicity of the scalar field")
	ErrVectorTooLong      = errors.New("bit vector is longer than the supported domain")
	ErrVectorEmpty        = errors.New("bit vector is empty")
	ErrNonBooleanBit      = errors.New("bit vector entries must be 0 or 1")
	ErrIndexOutOfRange    = errors.New("index is outside the committed vector")
	ErrBatchMismatch      = errors.New("number of indices does not match number of message pairs")
)

// Decode errors. These indicate malformed or mismatched wire data.
var (
	ErrBackendMismatch = errors.New("wire data was produced for a different backend")
	ErrMalformedWire   = errors.New("malformed wire data")
)

// Verification errors. These indicate adversarial or corrupted input
// that failed a cryptographic check.
var (
	ErrCommitmentRejected = errors.New("commitment failed well-formedness verification")
)
