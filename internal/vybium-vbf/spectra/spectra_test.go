package spectra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

func power(t *testing.T, n uint, d uint64) *vbf.Function {
	t.Helper()
	gf, err := core.NewDefaultField(n)
	require.NoError(t, err)
	return vbf.FromField(gf, func(x uint32) uint32 { return gf.Pow(x, d) })
}

func mustNew(t *testing.T, values []uint32) *vbf.Function {
	t.Helper()
	f, err := vbf.New(values, 0)
	require.NoError(t, err)
	return f
}

// TestDifferentialUniformity tests known uniformity values
func TestDifferentialUniformity(t *testing.T) {
	tests := []struct {
		name string
		f    func(t *testing.T) *vbf.Function
		want int
	}{
		{"identity n=3", func(t *testing.T) *vbf.Function { return mustNew(t, []uint32{0, 1, 2, 3, 4, 5, 6, 7}) }, 8},
		{"zero n=3", func(t *testing.T) *vbf.Function { return mustNew(t, make([]uint32, 8)) }, 8},
		{"cube n=3", func(t *testing.T) *vbf.Function { return power(t, 3, 3) }, 2},
		{"cube n=4", func(t *testing.T) *vbf.Function { return power(t, 4, 3) }, 2},
		{"cube n=6", func(t *testing.T) *vbf.Function { return power(t, 6, 3) }, 2},
		{"inverse n=4", func(t *testing.T) *vbf.Function { return power(t, 4, 14) }, 4},
		{"inverse n=5", func(t *testing.T) *vbf.Function { return power(t, 5, 30) }, 2},
		{"inverse n=6", func(t *testing.T) *vbf.Function { return power(t, 6, 62) }, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.f(t)
			du, err := DifferentialUniformity(f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, du)
			assert.Zero(t, du%2, "differential uniformity is always even")

			apn, err := IsAPN(f)
			require.NoError(t, err)
			assert.Equal(t, tt.want == 2, apn)
		})
	}
}

// TestDifferentialUniformityRejectsOutOfRange tests range validation
func TestDifferentialUniformityRejectsOutOfRange(t *testing.T) {
	f := mustNew(t, []uint32{0, 1, 2, 9})
	_, err := DifferentialUniformity(f)
	assert.ErrorIs(t, err, core.ErrMalformedTruthTable)
	_, err = ODDS(f)
	assert.ErrorIs(t, err, core.ErrMalformedTruthTable)
}

// TestKToOne tests uniform k-to-1 detection
func TestKToOne(t *testing.T) {
	tests := []struct {
		name   string
		values []uint32
		want   int
	}{
		{"permutation", []uint32{0, 3, 1, 2}, 1},
		{"cube n=4", []uint32{0, 1, 8, 15, 12, 10, 1, 1, 10, 15, 15, 12, 8, 10, 8, 12}, 3},
		{"zero function", make([]uint32, 8), NotKToOne},
		{"second zero", []uint32{0, 0, 1, 1}, NotKToOne},
		{"nonzero at zero", []uint32{1, 0, 2, 3}, NotKToOne},
		{"uneven", []uint32{0, 1, 1, 1, 2, 2, 3, 3}, NotKToOne},
		{"out of range", []uint32{0, 1, 2, 4}, NotKToOne},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KToOne(mustNew(t, tt.values)))
		})
	}
}

// TestOrthoderivative tests the ortho-derivative of x^3 over GF(2^3) and GF(2^4)
func TestOrthoderivative(t *testing.T) {
	od, err := Orthoderivative(power(t, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 7, 1, 6, 3, 4, 2, 5}, od)

	od, err = Orthoderivative(power(t, 4, 3))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 8, 7, 9, 13, 11, 8, 8, 11, 9, 9, 13, 7, 11, 7, 13}, od)

	// every derivative of the identity spans a single line
	od, err = Orthoderivative(mustNew(t, []uint32{0, 1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), od[0])
	for a := 1; a < 4; a++ {
		assert.NotZero(t, od[a])
	}
}

// TestWalsh tests the direct transform against known sums
func TestWalsh(t *testing.T) {
	id := []uint32{0, 1, 2, 3, 4, 5, 6, 7}
	assert.Equal(t, 8, Walsh(id, 5, 5))
	assert.Equal(t, 0, Walsh(id, 5, 3))
	assert.Equal(t, 8, Walsh(id, 0, 0))

	// hadamard agrees with the direct sum
	od, err := Orthoderivative(power(t, 4, 3))
	require.NoError(t, err)
	for b := uint32(1); b < 16; b++ {
		w := make([]int32, 16)
		for x, y := range od {
			w[x] = int32(Walsh([]uint32{y}, 0, b))
		}
		hadamard(w)
		for a := uint32(0); a < 16; a++ {
			require.Equal(t, Walsh(od, a, b), int(w[a]), "a=%d b=%d", a, b)
		}
	}
}

// TestODSpectra tests ODDS and ODWS of power functions
func TestODSpectra(t *testing.T) {
	tests := []struct {
		name string
		n    uint
		d    uint64
		odds string
		odws string
	}{
		{"cube n=3", 3, 3, "{0^49, 8^7}", "{0^49, 8^7}"},
		{"cube n=4", 4, 3, "{0^120, 2^120}", "{0^60, 4^160, 8^20}"},
		{"cube n=5", 5, 3, "{0^496, 2^496}", "{0^496, 8^496}"},
		{"cube n=6", 6, 3, "{0^2205, 2^1764, 8^63}", "{0^1764, 8^1680, 16^588}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := power(t, tt.n, tt.d)
			size := uint64(f.Size())

			odds, err := ODDS(f)
			require.NoError(t, err)
			assert.Len(t, odds, int(size)+1)
			assert.Equal(t, tt.odds, odds.String())
			assert.Equal(t, size*(size-1), odds.Total())

			odws, err := ODWS(f)
			require.NoError(t, err)
			assert.Equal(t, tt.odws, odws.String())
			assert.Equal(t, size*(size-1), odws.Total())
		})
	}
}

// TestSpectrumMap tests conversion between spectra and bucket maps
func TestSpectrumMap(t *testing.T) {
	s := Spectrum{60, 0, 0, 0, 160, 0, 0, 0, 20}
	m := s.Map()
	assert.Equal(t, map[int]uint64{0: 60, 4: 160, 8: 20}, m)

	back, err := FromMap(m, 8)
	require.NoError(t, err)
	assert.True(t, back.Equal(s))
	assert.True(t, Spectrum{1, 2}.Equal(Spectrum{1, 2, 0, 0}))
	assert.False(t, Spectrum{1, 2}.Equal(Spectrum{1, 2, 1}))

	_, err = FromMap(map[int]uint64{9: 1}, 8)
	assert.Error(t, err)
	assert.Equal(t, "{}", Spectrum{0, 0}.String())
}
