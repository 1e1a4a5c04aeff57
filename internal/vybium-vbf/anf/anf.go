// Package anf computes algebraic normal forms, algebraic degree and the
// monomial test for vectorial Boolean functions.
package anf

import (
	"fmt"
	"strings"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/utils"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

// Transform applies the binary Möbius transform to bits in place. It is an
// involution: applying it twice restores the input.
func Transform(bits []uint8) {
	size := len(bits)
	for step := 1; step < size; step <<= 1 {
		for j := 0; j < size; j++ {
			if j&step != 0 {
				bits[j] ^= bits[j^step]
			}
		}
	}
}

// coordinate returns the c-th output bit plane of tt.
func coordinate(tt []uint32, c uint) []uint8 {
	plane := make([]uint8, len(tt))
	for x, v := range tt {
		plane[x] = uint8((v >> c) & 1)
	}
	return plane
}

// AlgebraicDegree returns the largest Hamming weight of a monomial index with
// coefficient 1 in the ANF of any output coordinate. Constant functions have
// degree 0.
func AlgebraicDegree(f *vbf.Function) (int, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	degree := 0
	for c := uint(0); c < f.Dimension(); c++ {
		plane := coordinate(f.Table(), c)
		Transform(plane)
		for j, bit := range plane {
			if bit == 0 {
				continue
			}
			if w := utils.Popcount(uint32(j)); w > degree {
				degree = w
			}
		}
	}
	return degree, nil
}

// IsQuadratic reports whether the algebraic degree is exactly 2.
func IsQuadratic(f *vbf.Function) (bool, error) {
	d, err := AlgebraicDegree(f)
	if err != nil {
		return false, err
	}
	return d == 2, nil
}

// Coordinates returns, per output bit, the monomial indices whose ANF
// coefficient is 1. Index j stands for the product of x_i over the set bits i
// of j; index 0 is the constant term.
func Coordinates(f *vbf.Function) ([][]uint32, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	out := make([][]uint32, f.Dimension())
	for c := range out {
		plane := coordinate(f.Table(), uint(c))
		Transform(plane)
		for j, bit := range plane {
			if bit != 0 {
				out[c] = append(out[c], uint32(j))
			}
		}
	}
	return out, nil
}

// FormatCoordinate renders monomial indices as "1 + x0 + x1*x3".
func FormatCoordinate(monomials []uint32) string {
	if len(monomials) == 0 {
		return "0"
	}
	terms := make([]string, len(monomials))
	for i, m := range monomials {
		if m == 0 {
			terms[i] = "1"
			continue
		}
		var vars []string
		for b := 0; m>>uint(b) != 0; b++ {
			if m&(1<<uint(b)) != 0 {
				vars = append(vars, fmt.Sprintf("x%d", b))
			}
		}
		terms[i] = strings.Join(vars, "*")
	}
	return strings.Join(terms, " + ")
}
