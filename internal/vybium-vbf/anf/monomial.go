package anf

import (
	"fmt"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

// MaxMonomialDimension bounds the exponent search of IsMonomial, which costs
// up to 2^n full table checks.
const MaxMonomialDimension = 16

// Monomial describes F(x) = Coeff * x^Exp + Offset over GF(2^n).
type Monomial struct {
	Coeff  uint32
	Exp    uint32
	Offset uint32
}

// String renders the monomial form.
func (m Monomial) String() string {
	if m.Offset == 0 {
		return fmt.Sprintf("%d*x^%d", m.Coeff, m.Exp)
	}
	return fmt.Sprintf("%d*x^%d + %d", m.Coeff, m.Exp, m.Offset)
}

// IsMonomial searches d = 0 .. 2^n-2 for F(x) = a*x^d + F(0). For each d the
// coefficient a is solved from the first x != 0 with x^d != 0 and then
// checked on every point; the first fully verified d is returned.
//
// gf may be nil, in which case the polynomial attached to f is used. Constant
// functions are not monomials.
func IsMonomial(f *vbf.Function, gf *core.Field) (Monomial, bool, error) {
	if gf == nil {
		var err error
		if gf, err = f.Field(nil); err != nil {
			return Monomial{}, false, err
		}
	}
	if gf.Dimension() != f.Dimension() {
		return Monomial{}, false, fmt.Errorf("%w: field %s for function of dimension %d",
			core.ErrDimensionMismatch, gf, f.Dimension())
	}
	if f.Dimension() > MaxMonomialDimension {
		return Monomial{}, false, fmt.Errorf("%w: monomial test limited to n <= %d, got %d",
			core.ErrInvalidDimension, MaxMonomialDimension, f.Dimension())
	}
	if err := f.Validate(); err != nil {
		return Monomial{}, false, err
	}
	if f.IsConstant() {
		return Monomial{}, false, nil
	}

	tt := f.Table()
	size := gf.Size()
	b := tt[0]
	for d := uint64(0); d < uint64(size-1); d++ {
		x, xd, ok := firstInvertible(gf, d)
		if !ok {
			continue
		}
		inv, _ := gf.Inv(xd)
		a := gf.Mul(tt[x]^b, inv)
		if verify(gf, tt, a, d, b) {
			return Monomial{Coeff: a, Exp: uint32(d), Offset: b}, true, nil
		}
	}
	return Monomial{}, false, nil
}

// firstInvertible returns the first x != 0 with x^d != 0.
func firstInvertible(gf *core.Field, d uint64) (uint32, uint32, bool) {
	for x := uint32(1); x < gf.Size(); x++ {
		if xd := gf.Pow(x, d); xd != 0 {
			return x, xd, true
		}
	}
	return 0, 0, false
}

func verify(gf *core.Field, tt []uint32, a uint32, d uint64, b uint32) bool {
	for y, v := range tt {
		if gf.Mul(a, gf.Pow(uint32(y), d))^b != v {
			return false
		}
	}
	return true
}
