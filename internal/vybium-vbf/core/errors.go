package core

import "errors"

// Precondition failures shared by every analysis package. They are never
// retried or corrected; callers wrap them with the offending value.
var (
	// ErrInvalidDimension reports a dimension that is zero, too large for the
	// tables, or odd where an even dimension is required.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrMalformedTruthTable reports a table whose length is not a power of
	// two or whose outputs fall outside [0, 2^n).
	ErrMalformedTruthTable = errors.New("malformed truth table")

	// ErrMissingFieldContext reports an operation that needs GF(2^n)
	// multiplication but was given no irreducible polynomial.
	ErrMissingFieldContext = errors.New("missing field context")

	// ErrInvalidPolynomial reports a reduction polynomial that cannot build
	// discrete-log tables with generator 2.
	ErrInvalidPolynomial = errors.New("invalid polynomial")

	// ErrNotCanonicalTriplicate reports a function that is not uniformly
	// 3-to-1 over the multiplicative orbits of the tripling element.
	ErrNotCanonicalTriplicate = errors.New("not canonical triplicate")

	// ErrDimensionMismatch reports two functions of different dimension.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInconsistentSpectrum reports a spectral value outside its
	// theoretical bound, which indicates a computation bug.
	ErrInconsistentSpectrum = errors.New("inconsistent spectrum")
)
