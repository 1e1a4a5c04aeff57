package vbf

import (
	"fmt"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
)

// LinearMap is a GF(2)-linear map on n-bit vectors, stored as the images of
// the unit vectors: m[i] = L(1 << i).
type LinearMap []uint32

// Identity returns the identity map on n bits.
func Identity(n uint) LinearMap {
	m := make(LinearMap, n)
	for i := range m {
		m[i] = 1 << uint(i)
	}
	return m
}

// MulMap returns x -> c*x in gf.
func MulMap(gf *core.Field, c uint32) LinearMap {
	m := make(LinearMap, gf.Dimension())
	for i := range m {
		m[i] = gf.Mul(c, 1<<uint(i))
	}
	return m
}

// FrobeniusMap returns x -> x^(2^k) in gf.
func FrobeniusMap(gf *core.Field, k uint) LinearMap {
	m := make(LinearMap, gf.Dimension())
	for i := range m {
		m[i] = gf.Pow(1<<uint(i), uint64(1)<<k)
	}
	return m
}

// FromTable recovers a linear map from its full truth table, failing if the
// table is not linear.
func FromTable(table []uint32) (LinearMap, error) {
	if len(table) < 2 || len(table)&(len(table)-1) != 0 {
		return nil, fmt.Errorf("%w: linear map table length %d", core.ErrMalformedTruthTable, len(table))
	}
	var n uint
	for 1<<n < len(table) {
		n++
	}
	m := make(LinearMap, n)
	for i := range m {
		m[i] = table[1<<uint(i)]
	}
	for x, y := range table {
		if m.Apply(uint32(x)) != y {
			return nil, fmt.Errorf("table is not linear at %d", x)
		}
	}
	return m, nil
}

// Dimension returns the number of input bits.
func (m LinearMap) Dimension() uint {
	return uint(len(m))
}

// Apply returns L(x).
func (m LinearMap) Apply(x uint32) uint32 {
	var y uint32
	for i := 0; x != 0; i, x = i+1, x>>1 {
		if x&1 != 0 {
			y ^= m[i]
		}
	}
	return y
}

// Table evaluates the map on every n-bit input.
func (m LinearMap) Table() []uint32 {
	size := uint32(1) << uint(len(m))
	t := make([]uint32, size)
	// t[x] = t[x without its top bit] ^ m[top bit]
	for i, col := range m {
		bit := uint32(1) << uint(i)
		for x := uint32(0); x < bit; x++ {
			t[bit|x] = t[x] ^ col
		}
	}
	return t
}

// IsInvertible reports whether the columns are linearly independent.
func (m LinearMap) IsInvertible() bool {
	n := uint(len(m))
	basis := make([]uint32, 32)
	for _, col := range m {
		if col>>n != 0 {
			return false
		}
		r := col
		for b := 31; b >= 0 && r != 0; b-- {
			if r&(1<<uint(b)) == 0 {
				continue
			}
			if basis[b] == 0 {
				basis[b] = r
				break
			}
			r ^= basis[b]
		}
		if r == 0 {
			return false
		}
	}
	return true
}

// Inverse returns L^-1.
func (m LinearMap) Inverse() (LinearMap, error) {
	if !m.IsInvertible() {
		return nil, fmt.Errorf("linear map is singular")
	}
	t := m.Table()
	inv := make([]uint32, len(t))
	for x, y := range t {
		inv[y] = uint32(x)
	}
	out := make(LinearMap, len(m))
	for i := range out {
		out[i] = inv[1<<uint(i)]
	}
	return out, nil
}

// Then returns next∘m, i.e. x -> next(m(x)).
func (m LinearMap) Then(next LinearMap) LinearMap {
	out := make(LinearMap, len(m))
	for i, col := range m {
		out[i] = next.Apply(col)
	}
	return out
}

// Compose returns G = L2∘F∘L1^-1, so that G(L1 x) = L2(F x) for all x.
func (f *Function) Compose(l1, l2 LinearMap) (*Function, error) {
	if l1.Dimension() != f.n || l2.Dimension() != f.n {
		return nil, fmt.Errorf("%w: maps of dimension %d, %d for function of dimension %d",
			core.ErrDimensionMismatch, l1.Dimension(), l2.Dimension(), f.n)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if !l1.IsInvertible() {
		return nil, fmt.Errorf("input map is singular")
	}
	if !l2.IsInvertible() {
		return nil, fmt.Errorf("output map is singular")
	}
	values := make([]uint32, len(f.values))
	for x, y := range l1.Table() {
		values[y] = l2.Apply(f.values[x])
	}
	return &Function{n: f.n, values: values, poly: f.poly}, nil
}
