package equivalence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

var cubeGF16 = []uint32{0, 1, 8, 15, 12, 10, 1, 1, 10, 15, 15, 12, 8, 10, 8, 12}

func cube(t *testing.T, n uint) *vbf.Function {
	t.Helper()
	gf, err := core.NewDefaultField(n)
	require.NoError(t, err)
	return vbf.FromField(gf, func(x uint32) uint32 { return gf.Pow(x, 3) })
}

func table(t *testing.T, values []uint32) *vbf.Function {
	t.Helper()
	f, err := vbf.New(values, 0)
	require.NoError(t, err)
	return f
}

// TestCanonicalize tests the triple table of x^3 over GF(2^4)
func TestCanonicalize(t *testing.T) {
	tr, err := Canonicalize(table(t, cubeGF16), nil)
	require.NoError(t, err)

	assert.Equal(t, uint(4), tr.Dimension())
	assert.Equal(t, uint32(6), tr.Beta())
	require.Equal(t, 5, tr.Len())
	assert.Equal(t, Triple{Output: 1, Reps: [3]uint32{1, 6, 7}}, tr.Triple(0))

	seen := make(map[uint32]bool)
	for i := 0; i < tr.Len(); i++ {
		triple := tr.Triple(i)
		for _, r := range triple.Reps {
			assert.False(t, seen[r], "representative %d repeated", r)
			seen[r] = true
			assert.Equal(t, triple.Output, cubeGF16[r])
		}
		idx, ok := tr.IndexOf(triple.Output)
		assert.True(t, ok)
		assert.Equal(t, i, idx)
	}
	assert.Len(t, seen, 15)

	_, ok := tr.IndexOf(2)
	assert.False(t, ok, "2 is not an output of x^3")
	_, ok = tr.IndexOf(0)
	assert.False(t, ok)
}

// TestCanonicalizeLargerDimensions tests derived β beyond small fields
func TestCanonicalizeLargerDimensions(t *testing.T) {
	for _, n := range []uint{2, 6, 8, 10} {
		tr, err := Canonicalize(cube(t, n), nil)
		require.NoError(t, err, "n=%d", n)
		assert.Equal(t, int((uint32(1)<<n-1)/3), tr.Len())
	}
}

// TestCanonicalizeRejects tests every rejection path
func TestCanonicalizeRejects(t *testing.T) {
	nonzeroAtZero := append([]uint32(nil), cubeGF16...)
	nonzeroAtZero[0] = 3

	broken := append([]uint32(nil), cubeGF16...)
	broken[6] = 8

	merged := append([]uint32(nil), cubeGF16...)
	for x, v := range merged {
		if v == 8 {
			merged[x] = 1
		}
	}

	tests := []struct {
		name string
		f    *vbf.Function
		want error
	}{
		{"odd dimension", cube(t, 3), core.ErrInvalidDimension},
		{"zero function", table(t, make([]uint32, 16)), core.ErrNotCanonicalTriplicate},
		{"nonzero at zero", table(t, nonzeroAtZero), core.ErrNotCanonicalTriplicate},
		{"not constant on a triple", table(t, broken), core.ErrNotCanonicalTriplicate},
		{"two triples share an output", table(t, merged), core.ErrNotCanonicalTriplicate},
		{"permutation", table(t, []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}), core.ErrNotCanonicalTriplicate},
		{"out of range", table(t, []uint32{0, 1, 1, 16}), core.ErrMalformedTruthTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Canonicalize(tt.f, nil)
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, IsCanonicalTriplicate(tt.f, nil))
		})
	}
}

// TestCanonicalizeFieldMismatch tests an explicit field of the wrong size
func TestCanonicalizeFieldMismatch(t *testing.T) {
	gf, err := core.NewDefaultField(6)
	require.NoError(t, err)
	_, err = Canonicalize(table(t, cubeGF16), gf)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}
