// Package spectra computes differential and Walsh invariants of vectorial
// Boolean functions, including the ortho-derivative spectra ODDS and ODWS.
package spectra

import (
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

// NotKToOne is returned by KToOne when F is not uniformly k-to-1.
const NotKToOne = -1

// DifferentialUniformity returns max over a != 0 and b of
// #{x : F(x) ^ F(x^a) = b}. Counts are kept for one a at a time.
func DifferentialUniformity(f *vbf.Function) (int, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	tt := f.Table()
	size := uint32(len(tt))
	counts := make([]uint32, size)
	var best uint32
	for a := uint32(1); a < size; a++ {
		clear(counts)
		for x := uint32(0); x < size; x++ {
			b := tt[x] ^ tt[x^a]
			counts[b]++
			if counts[b] > best {
				best = counts[b]
			}
		}
	}
	return int(best), nil
}

// IsAPN reports whether the differential uniformity is exactly 2.
func IsAPN(f *vbf.Function) (bool, error) {
	du, err := DifferentialUniformity(f)
	if err != nil {
		return false, err
	}
	return du == 2, nil
}

// KToOne returns k when 0 is reached only from F(0) = 0 and every other
// reached output has exactly k preimages. Otherwise, including for any
// output >= 2^n, it returns NotKToOne.
func KToOne(f *vbf.Function) int {
	tt := f.Table()
	size := uint32(len(tt))
	if tt[0] != 0 {
		return NotKToOne
	}
	freq := make([]uint32, size)
	for _, v := range tt {
		if v >= size {
			return NotKToOne
		}
		freq[v]++
	}
	if freq[0] != 1 {
		return NotKToOne
	}

	k := uint32(0)
	for v := uint32(1); v < size; v++ {
		switch {
		case freq[v] == 0:
		case k == 0:
			k = freq[v]
		case freq[v] != k:
			return NotKToOne
		}
	}
	return int(k)
}
