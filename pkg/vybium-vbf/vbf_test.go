package vybiumvbf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cubeGF16 = []uint32{0, 1, 8, 15, 12, 10, 1, 1, 10, 15, 15, 12, 8, 10, 8, 12}

func TestAnalyze(t *testing.T) {
	inv, err := Analyze(cubeGF16, 0, nil)
	require.NoError(t, err)
	assert.True(t, inv.APN)
	assert.Equal(t, 2, inv.AlgebraicDegree)
	assert.Equal(t, 3, inv.KToOne)
	assert.True(t, inv.CanonicalTriplicate)
	assert.Equal(t, uint64(120), inv.ODDS[2])

	_, err = Analyze([]uint32{0, 1, 2}, 0, nil)
	assert.Equal(t, ErrCodeMalformedTruthTable, CodeOf(err))

	_, err = Analyze([]uint32{0, 1, 2, 4}, 0, nil)
	assert.Equal(t, ErrCodeMalformedTruthTable, CodeOf(err))

	_, err = Analyze(cubeGF16, 0, &Options{MaxDimension: 3, MonomialMaxDimension: 3})
	assert.Equal(t, ErrCodeInvalidDimension, CodeOf(err))

	_, err = Analyze(cubeGF16, 0, &Options{})
	assert.Equal(t, ErrCodeInvalidConfig, CodeOf(err))
}

func TestIsCanonicalTriplicate(t *testing.T) {
	ok, err := IsCanonicalTriplicate(cubeGF16, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsCanonicalTriplicate(cubeGF16, 0x13)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsCanonicalTriplicate(make([]uint32, 16), 0)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = IsCanonicalTriplicate(cubeGF16, 0x11)
	assert.Equal(t, ErrCodeInvalidPolynomial, CodeOf(err))
}

func TestCheckLinearEquivalence(t *testing.T) {
	ctx := context.Background()

	res, err := CheckLinearEquivalence(ctx, cubeGF16, cubeGF16, 0, nil)
	require.NoError(t, err)
	require.True(t, res.Equivalent)
	for x := uint32(0); x < 16; x++ {
		assert.Equal(t, res.L2.Apply(cubeGF16[x]), cubeGF16[res.L1.Apply(x)])
	}

	res, err = CheckLinearEquivalence(ctx,
		[]uint32{0, 3, 10, 13, 2, 5, 3, 3, 5, 13, 13, 2, 10, 5, 10, 2},
		[]uint32{0, 2, 8, 13, 14, 12, 2, 2, 12, 13, 13, 14, 8, 12, 8, 14}, 0, nil)
	require.NoError(t, err)
	assert.False(t, res.Equivalent)

	res, err = CheckLinearEquivalence(ctx, cubeGF16, []uint32{0, 1, 3, 2}, 0, nil)
	require.NoError(t, err)
	assert.False(t, res.Equivalent, "different dimensions are never equivalent")

	identity := make([]uint32, 16)
	for i := range identity {
		identity[i] = uint32(i)
	}
	_, err = CheckLinearEquivalence(ctx, cubeGF16, identity, 0, nil)
	assert.True(t, errors.Is(err, &VBFError{Code: ErrCodeNotCanonicalTriplicate}), "got %v", err)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = CheckLinearEquivalence(canceled, cubeGF16, cubeGF16, 0, nil)
	assert.Equal(t, ErrCodeCanceled, CodeOf(err))
}
