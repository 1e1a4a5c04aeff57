// Package vbf holds truth-table representations of vectorial Boolean
// functions over GF(2^n).
package vbf

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/utils"
)

// Function is a dense truth table F: [0, 2^n) -> uint32 with an optional
// reduction polynomial for field-aware operations.
type Function struct {
	n      uint
	values []uint32
	poly   uint32
}

// New wraps a truth table. The length must be a power of two of at least 2;
// output values are only range-checked by Validate. poly may be 0.
func New(values []uint32, poly uint32) (*Function, error) {
	if len(values) < 2 || !utils.IsPowerOfTwo(len(values)) {
		return nil, fmt.Errorf("%w: length %d is not a power of two", core.ErrMalformedTruthTable, len(values))
	}
	n := uint(utils.Log2(len(values)))
	if n > core.MaxFieldDimension {
		return nil, fmt.Errorf("%w: dimension %d exceeds %d", core.ErrInvalidDimension, n, core.MaxFieldDimension)
	}
	return &Function{
		n:      n,
		values: append([]uint32(nil), values...),
		poly:   poly,
	}, nil
}

// FromUnivariate evaluates a univariate polynomial over gf.
func FromUnivariate(gf *core.Field, u core.Univariate) *Function {
	return &Function{
		n:      gf.Dimension(),
		values: u.TruthTable(gf),
		poly:   gf.Polynomial(),
	}
}

// FromField builds a function from an evaluation callback.
func FromField(gf *core.Field, eval func(x uint32) uint32) *Function {
	values := make([]uint32, gf.Size())
	for x := range values {
		values[x] = eval(uint32(x))
	}
	return &Function{n: gf.Dimension(), values: values, poly: gf.Polynomial()}
}

// Dimension returns n.
func (f *Function) Dimension() uint {
	return f.n
}

// Size returns 2^n.
func (f *Function) Size() uint32 {
	return uint32(len(f.values))
}

// Polynomial returns the attached reduction polynomial, 0 if none.
func (f *Function) Polynomial() uint32 {
	return f.poly
}

// WithPolynomial returns a copy of f carrying poly.
func (f *Function) WithPolynomial(poly uint32) *Function {
	return &Function{n: f.n, values: f.values, poly: poly}
}

// At returns F(x).
func (f *Function) At(x uint32) uint32 {
	return f.values[x]
}

// Values returns a copy of the truth table.
func (f *Function) Values() []uint32 {
	return append([]uint32(nil), f.values...)
}

// Table exposes the truth table without copying. Callers must not modify it.
func (f *Function) Table() []uint32 {
	return f.values
}

// Validate reports ErrMalformedTruthTable if any output is >= 2^n.
func (f *Function) Validate() error {
	size := f.Size()
	for x, v := range f.values {
		if v >= size {
			return fmt.Errorf("%w: F(%d) = %d is outside [0, %d)", core.ErrMalformedTruthTable, x, v, size)
		}
	}
	return nil
}

// IsConstant reports whether every output equals F(0).
func (f *Function) IsConstant() bool {
	for _, v := range f.values {
		if v != f.values[0] {
			return false
		}
	}
	return true
}

// Field returns the field context for the attached polynomial, or
// ErrMissingFieldContext when none is attached.
func (f *Function) Field(cache *core.FieldCache) (*core.Field, error) {
	if f.poly == 0 {
		return nil, fmt.Errorf("%w: no polynomial attached to dimension-%d function", core.ErrMissingFieldContext, f.n)
	}
	if cache != nil {
		return cache.Get(f.n, f.poly)
	}
	return core.NewField(f.n, f.poly)
}

// Equal reports whether two functions have identical truth tables.
func (f *Function) Equal(other *Function) bool {
	if f.n != other.n {
		return false
	}
	for i, v := range f.values {
		if other.values[i] != v {
			return false
		}
	}
	return true
}

// Digest returns the Tip5 digest of the dimension followed by the table.
func (f *Function) Digest() hash.Digest {
	elements := make([]field.Element, 0, len(f.values)+1)
	elements = append(elements, field.New(uint64(f.n)))
	for _, v := range f.values {
		elements = append(elements, field.New(uint64(v)))
	}
	return hash.HashVarlen(elements)
}

// DigestHex renders Digest as little-endian hex.
func (f *Function) DigestHex() string {
	digest := f.Digest()
	out := make([]byte, len(digest)*8)
	for i, elem := range digest {
		binary.LittleEndian.PutUint64(out[i*8:], elem.Value())
	}
	return hex.EncodeToString(out)
}

// Fingerprint returns the hex SHA3-256 of the dimension byte followed by the
// little-endian table. It identifies a truth table in storage and batches.
func (f *Function) Fingerprint() string {
	buf := make([]byte, 1+4*len(f.values))
	buf[0] = byte(f.n)
	for i, v := range f.values {
		binary.LittleEndian.PutUint32(buf[1+4*i:], v)
	}
	sum := sha3.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

// String returns a short description.
func (f *Function) String() string {
	return fmt.Sprintf("VBF(n=%d, fp=%s)", f.n, f.Fingerprint()[:12])
}
