package vybiumvbf

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/equivalence"
)

func TestErrors(t *testing.T) {
	t.Run("VBFError", func(t *testing.T) {
		err := &VBFError{Code: ErrCodeInvalidDimension, Message: "bad n"}
		if got := err.Error(); got != "vybium-vbf error [1]: bad n" {
			t.Errorf("Error() = %q", got)
		}
		if !errors.Is(err, &VBFError{Code: ErrCodeInvalidDimension}) {
			t.Error("errors.Is should match on code")
		}
		if errors.Is(err, &VBFError{Code: ErrCodeDimensionMismatch}) {
			t.Error("errors.Is should not match a different code")
		}
	})

	t.Run("ErrorWrapping", func(t *testing.T) {
		cause := fmt.Errorf("%w: length 3", core.ErrMalformedTruthTable)
		err := wrapError(cause, "invalid truth table")
		if !errors.Is(err, core.ErrMalformedTruthTable) {
			t.Error("wrapped error should unwrap to the sentinel")
		}
		if CodeOf(err) != ErrCodeMalformedTruthTable {
			t.Errorf("CodeOf() = %d", CodeOf(err))
		}
		if wrapError(nil, "nothing") != nil {
			t.Error("wrapError(nil) should be nil")
		}
	})
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorCode
	}{
		{core.ErrInvalidDimension, ErrCodeInvalidDimension},
		{core.ErrMissingFieldContext, ErrCodeMissingFieldContext},
		{core.ErrInvalidPolynomial, ErrCodeInvalidPolynomial},
		{fmt.Errorf("second function: %w", core.ErrNotCanonicalTriplicate), ErrCodeNotCanonicalTriplicate},
		{core.ErrDimensionMismatch, ErrCodeDimensionMismatch},
		{core.ErrInconsistentSpectrum, ErrCodeInconsistentSpectrum},
		{equivalence.ErrSearchLimit, ErrCodeSearchLimit},
		{context.Canceled, ErrCodeCanceled},
		{context.DeadlineExceeded, ErrCodeCanceled},
		{errors.New("other"), ErrCodeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
