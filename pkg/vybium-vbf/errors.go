package vybiumvbf

import (
	"context"
	"errors"
	"fmt"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/equivalence"
)

// ErrorCode represents a Vybium VBF error code
type ErrorCode int

const (
	// ErrCodeUnknown represents an unknown error
	ErrCodeUnknown ErrorCode = iota

	// ErrCodeInvalidDimension represents a dimension outside the supported range
	ErrCodeInvalidDimension

	// ErrCodeMalformedTruthTable represents a truth table with a bad length or values
	ErrCodeMalformedTruthTable

	// ErrCodeMissingFieldContext represents an operation that needs GF(2^n) arithmetic
	ErrCodeMissingFieldContext

	// ErrCodeInvalidPolynomial represents a reduction polynomial that is not primitive
	ErrCodeInvalidPolynomial

	// ErrCodeNotCanonicalTriplicate represents a function that is not canonical 3-to-1
	ErrCodeNotCanonicalTriplicate

	// ErrCodeDimensionMismatch represents two functions of different dimension
	ErrCodeDimensionMismatch

	// ErrCodeInconsistentSpectrum represents an internal spectral inconsistency
	ErrCodeInconsistentSpectrum

	// ErrCodeSearchLimit represents an equivalence search that ran out of budget
	ErrCodeSearchLimit

	// ErrCodeCanceled represents a canceled or timed out operation
	ErrCodeCanceled

	// ErrCodeInvalidConfig represents an invalid configuration error
	ErrCodeInvalidConfig
)

// VBFError represents a Vybium VBF error
type VBFError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error returns the error message
func (e *VBFError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vybium-vbf error [%d]: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("vybium-vbf error [%d]: %s", e.Code, e.Message)
}

// Unwrap returns the cause of the error
func (e *VBFError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error
func (e *VBFError) Is(target error) bool {
	t, ok := target.(*VBFError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// codes maps internal sentinels to public codes, most specific first.
var codes = []struct {
	err  error
	code ErrorCode
}{
	{core.ErrInvalidDimension, ErrCodeInvalidDimension},
	{core.ErrMalformedTruthTable, ErrCodeMalformedTruthTable},
	{core.ErrMissingFieldContext, ErrCodeMissingFieldContext},
	{core.ErrInvalidPolynomial, ErrCodeInvalidPolynomial},
	{core.ErrNotCanonicalTriplicate, ErrCodeNotCanonicalTriplicate},
	{core.ErrDimensionMismatch, ErrCodeDimensionMismatch},
	{core.ErrInconsistentSpectrum, ErrCodeInconsistentSpectrum},
	{equivalence.ErrSearchLimit, ErrCodeSearchLimit},
	{context.Canceled, ErrCodeCanceled},
	{context.DeadlineExceeded, ErrCodeCanceled},
}

// CodeOf returns the code of err. Errors not produced by this package map to
// ErrCodeUnknown.
func CodeOf(err error) ErrorCode {
	var ve *VBFError
	if errors.As(err, &ve) {
		return ve.Code
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ErrCodeUnknown
}

// wrapError converts an internal error into a VBFError
func wrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &VBFError{
		Code:    CodeOf(err),
		Message: message,
		Cause:   err,
	}
}
