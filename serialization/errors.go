package serialization

import "errors"

var (
	ErrNonCanonicalScalar = errors.New("scalar is not canonical")

	ErrBadMagic          = errors.New("parameter file: bad magic")
	ErrBadVersion        = errors.New("parameter file: unsupported version")
	ErrBadForm           = errors.New("parameter file: unknown form byte")
	ErrBadBackend        = errors.New("parameter file: unknown backend byte")
	ErrTruncated         = errors.New("parameter file: truncated")
	ErrTrailingBytes     = errors.New("parameter file: trailing bytes")
	ErrUnsupportedDegree = errors.New("parameter file: unsupported degree exponent")
)
