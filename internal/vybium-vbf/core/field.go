package core

import (
	"fmt"
	"math/bits"
)

// MaxFieldDimension is the largest n for which discrete-log tables are built.
// Two tables of 2^n uint32 entries are held per field.
const MaxFieldDimension = 24

// Generator is the fixed multiplicative generator alpha used to build the
// log tables. The reduction polynomial must be primitive for it.
const Generator uint32 = 2

// Field represents GF(2^n) with discrete-log arithmetic.
// A Field is immutable once built and safe for concurrent use.
type Field struct {
	n    uint
	size uint32 // 2^n
	poly uint32
	log  []uint32
	alog []uint32
}

// NewField builds the log/antilog tables of GF(2^n) for the reduction
// polynomial given as a bitmask over exponents 0..n (bit n included).
func NewField(n uint, poly uint32) (*Field, error) {
	if n == 0 || n > MaxFieldDimension {
		return nil, fmt.Errorf("%w: field dimension %d outside [1, %d]", ErrInvalidDimension, n, MaxFieldDimension)
	}
	if poly == 0 {
		return nil, fmt.Errorf("%w: zero polynomial", ErrInvalidPolynomial)
	}
	if deg := uint(bits.Len32(poly)) - 1; deg != n {
		return nil, fmt.Errorf("%w: %s has degree %d, want %d", ErrInvalidPolynomial, FormatPolynomial(poly), deg, n)
	}

	size := uint32(1) << n
	f := &Field{
		n:    n,
		size: size,
		poly: poly,
		log:  make([]uint32, size),
		alog: make([]uint32, size),
	}

	// alog[i] = alpha^i for i in [0, size-2]; log is its inverse.
	// Each value must be new, otherwise alpha does not generate the group.
	seen := make([]bool, size)
	f.alog[0] = 1
	seen[1] = true
	for i := uint32(1); i < size-1; i++ {
		next := f.alog[i-1] << 1
		if next&size != 0 {
			next ^= poly
		}
		if next == 0 || next >= size || seen[next] {
			return nil, fmt.Errorf("%w: %s is not primitive (alpha order %d)", ErrInvalidPolynomial, FormatPolynomial(poly), i)
		}
		seen[next] = true
		f.alog[i] = next
	}
	for i := uint32(0); i < size-1; i++ {
		f.log[f.alog[i]] = i
	}
	// alog[size-1] wraps back to alpha^0 so Exp never needs a reduction.
	f.alog[size-1] = 1

	return f, nil
}

// NewDefaultField builds GF(2^n) over the default primitive polynomial.
func NewDefaultField(n uint) (*Field, error) {
	poly, ok := DefaultPolynomial(n)
	if !ok {
		return nil, fmt.Errorf("%w: no default polynomial for n=%d", ErrInvalidDimension, n)
	}
	return NewField(n, poly)
}

// Dimension returns n.
func (f *Field) Dimension() uint {
	return f.n
}

// Size returns the number of field elements, 2^n.
func (f *Field) Size() uint32 {
	return f.size
}

// Polynomial returns the reduction polynomial bitmask.
func (f *Field) Polynomial() uint32 {
	return f.poly
}

// Order returns the order of the multiplicative group, 2^n - 1.
func (f *Field) Order() uint32 {
	return f.size - 1
}

// Mul returns x*y.
func (f *Field) Mul(x, y uint32) uint32 {
	if x == 0 || y == 0 {
		return 0
	}
	s := uint64(f.log[x]) + uint64(f.log[y])
	return f.alog[s%uint64(f.size-1)]
}

// Pow returns x^d with the convention 0^0 = 1.
func (f *Field) Pow(x uint32, d uint64) uint32 {
	if d == 0 {
		return 1
	}
	if x == 0 {
		return 0
	}
	order := uint64(f.size - 1)
	e := (uint64(f.log[x]) * (d % order)) % order
	return f.alog[e]
}

// Inv returns the multiplicative inverse of x.
func (f *Field) Inv(x uint32) (uint32, error) {
	if x == 0 {
		return 0, fmt.Errorf("inverse of zero")
	}
	order := f.size - 1
	return f.alog[(order-f.log[x])%order], nil
}

// Div returns x/y.
func (f *Field) Div(x, y uint32) (uint32, error) {
	inv, err := f.Inv(y)
	if err != nil {
		return 0, fmt.Errorf("division by zero")
	}
	return f.Mul(x, inv), nil
}

// Log returns the discrete logarithm of a nonzero x to base alpha.
func (f *Field) Log(x uint32) (uint32, error) {
	if x == 0 || x >= f.size {
		return 0, fmt.Errorf("logarithm of %d undefined in GF(2^%d)", x, f.n)
	}
	return f.log[x], nil
}

// Exp returns alpha^e.
func (f *Field) Exp(e uint64) uint32 {
	return f.alog[e%uint64(f.size-1)]
}

// ElementOfOrder returns the canonical element of multiplicative order k,
// alpha^((2^n-1)/k). It fails when k does not divide 2^n - 1.
func (f *Field) ElementOfOrder(k uint32) (uint32, error) {
	order := f.size - 1
	if k == 0 || order%k != 0 {
		return 0, fmt.Errorf("%w: no element of order %d in GF(2^%d)", ErrInvalidDimension, k, f.n)
	}
	return f.alog[order/k], nil
}

// Contains reports whether x is an element of the field.
func (f *Field) Contains(x uint32) bool {
	return x < f.size
}

// Equals reports whether two fields share dimension and polynomial.
func (f *Field) Equals(other *Field) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.n == other.n && f.poly == other.poly
}

// String returns a short description such as GF(2^4)[x^4 + x + 1].
func (f *Field) String() string {
	return fmt.Sprintf("GF(2^%d)[%s]", f.n, FormatPolynomial(f.poly))
}
