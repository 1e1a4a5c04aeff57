package spectra

import (
	"fmt"
	"strings"
)

// Spectrum is a histogram of length N+1: Spectrum[v] counts occurrences of
// the value v.
type Spectrum []uint64

// Total returns the sum of all counts.
func (s Spectrum) Total() uint64 {
	var total uint64
	for _, c := range s {
		total += c
	}
	return total
}

// Equal reports whether two spectra have the same nonzero buckets.
func (s Spectrum) Equal(other Spectrum) bool {
	n := len(s)
	if len(other) > n {
		n = len(other)
	}
	for v := 0; v < n; v++ {
		if s.count(v) != other.count(v) {
			return false
		}
	}
	return true
}

func (s Spectrum) count(v int) uint64 {
	if v < len(s) {
		return s[v]
	}
	return 0
}

// Map returns the nonzero buckets as value -> count.
func (s Spectrum) Map() map[int]uint64 {
	m := make(map[int]uint64)
	for v, c := range s {
		if c != 0 {
			m[v] = c
		}
	}
	return m
}

// FromMap rebuilds a spectrum of length size+1 from its nonzero buckets.
func FromMap(m map[int]uint64, size int) (Spectrum, error) {
	s := make(Spectrum, size+1)
	for v, c := range m {
		if v < 0 || v > size {
			return nil, fmt.Errorf("spectrum value %d outside [0, %d]", v, size)
		}
		s[v] = c
	}
	return s, nil
}

// String renders the nonzero buckets as "{v^count, ...}" in increasing v.
func (s Spectrum) String() string {
	var parts []string
	for v, c := range s {
		if c != 0 {
			parts = append(parts, fmt.Sprintf("%d^%d", v, c))
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
