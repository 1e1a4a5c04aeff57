package spectra

import (
	"fmt"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/utils"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

// Orthoderivative returns od with od(0) = 0 and, for a != 0, the smallest
// v != 0 orthogonal to every F(0)^F(a)^F(x)^F(x^a), or 0 if none exists.
//
// The derivative values are reduced to a basis of their span first, so each
// candidate v is tested against at most n vectors instead of 2^n.
func Orthoderivative(f *vbf.Function) ([]uint32, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	tt := f.Table()
	size := uint32(len(tt))
	n := f.Dimension()
	od := make([]uint32, size)
	basis := make([]uint32, n)

	for a := uint32(1); a < size; a++ {
		clear(basis)
		var rank uint
		shift := tt[0] ^ tt[a]
		for x := uint32(0); x < size && rank < n; x++ {
			if reduce(basis, shift^tt[x]^tt[x^a]) {
				rank++
			}
		}
		if rank == n {
			continue
		}
		for v := uint32(1); v < size; v++ {
			if orthogonal(v, basis) {
				od[a] = v
				break
			}
		}
	}
	return od, nil
}

// reduce inserts d into the echelon basis and reports whether it was new.
func reduce(basis []uint32, d uint32) bool {
	for b := len(basis) - 1; b >= 0 && d != 0; b-- {
		if d&(1<<uint(b)) == 0 {
			continue
		}
		if basis[b] == 0 {
			basis[b] = d
			return true
		}
		d ^= basis[b]
	}
	return false
}

func orthogonal(v uint32, basis []uint32) bool {
	for _, d := range basis {
		if d != 0 && utils.Dot(v, d) != 0 {
			return false
		}
	}
	return true
}

// Walsh returns sum over x of (-1)^(<a,x> ^ <b,F(x)>).
func Walsh(tt []uint32, a, b uint32) int {
	sum := 0
	for x, y := range tt {
		if utils.Dot(a, uint32(x))^utils.Dot(b, y) == 0 {
			sum++
		} else {
			sum--
		}
	}
	return sum
}

// ODDS returns the differential spectrum of the ortho-derivative. For every
// a != 0 the multiplicities #{x : od(x)^od(x^a) = c} of all N values c are
// tallied, so the total is N(N-1).
func ODDS(f *vbf.Function) (Spectrum, error) {
	od, err := Orthoderivative(f)
	if err != nil {
		return nil, err
	}
	size := uint32(len(od))
	spectrum := make(Spectrum, size+1)
	counts := make([]uint32, size)
	for a := uint32(1); a < size; a++ {
		clear(counts)
		for x := uint32(0); x < size; x++ {
			counts[od[x]^od[x^a]]++
		}
		for _, c := range counts {
			spectrum[c]++
		}
	}
	return spectrum, nil
}

// ODWS returns the extended Walsh spectrum of the ortho-derivative: the
// counts of |W_od(a, b)| over all a and all b != 0. A value above N is
// reported as ErrInconsistentSpectrum.
func ODWS(f *vbf.Function) (Spectrum, error) {
	od, err := Orthoderivative(f)
	if err != nil {
		return nil, err
	}
	size := uint32(len(od))
	spectrum := make(Spectrum, size+1)
	w := make([]int32, size)
	for b := uint32(1); b < size; b++ {
		for x, y := range od {
			w[x] = 1 - 2*int32(utils.Dot(b, y))
		}
		hadamard(w)
		for a, v := range w {
			if v < 0 {
				v = -v
			}
			if uint32(v) > size {
				return nil, fmt.Errorf("%w: |W(%d, %d)| = %d exceeds %d", core.ErrInconsistentSpectrum, a, b, v, size)
			}
			spectrum[v]++
		}
	}
	return spectrum, nil
}

// hadamard applies the in-place fast Walsh-Hadamard transform, turning
// (-1)^g(x) into the Walsh coefficients of g.
func hadamard(w []int32) {
	for h := 1; h < len(w); h <<= 1 {
		for i := 0; i < len(w); i += h << 1 {
			for j := i; j < i+h; j++ {
				u, v := w[j], w[j+h]
				w[j], w[j+h] = u+v, u-v
			}
		}
	}
}
