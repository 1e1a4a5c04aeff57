package equivalence

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/utils"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

// Canonical triplicates over GF(2^4) that are not linearly equivalent.
var inequivalentGF16 = [][2][]uint32{
	{
		{0, 3, 10, 13, 2, 5, 3, 3, 5, 13, 13, 2, 10, 5, 10, 2},
		{0, 2, 8, 13, 14, 12, 2, 2, 12, 13, 13, 14, 8, 12, 8, 14},
	},
	{
		{0, 11, 7, 13, 4, 2, 11, 11, 2, 13, 13, 4, 7, 2, 7, 4},
		{0, 8, 1, 7, 13, 10, 8, 8, 10, 7, 7, 13, 1, 10, 1, 13},
	},
}

// transformed returns A(F(c^-1 y)) for a random invertible A and nonzero c,
// which is again a canonical triplicate equivalent to f.
func transformed(t *testing.T, f *vbf.Function, seed string) *vbf.Function {
	t.Helper()
	gf, err := core.NewDefaultField(f.Dimension())
	require.NoError(t, err)
	tr := utils.NewTranscript([]byte(seed))
	c := tr.ReceiveNonzero(gf.Size())
	a := vbf.LinearMap(tr.ReceiveInvertibleMatrix(f.Dimension()))
	g, err := f.Compose(vbf.MulMap(gf, c), a)
	require.NoError(t, err)
	return g
}

func check(t *testing.T, f, g *vbf.Function) *Result {
	t.Helper()
	res, err := NewEngine(Config{}).Check(context.Background(), f, g, nil)
	require.NoError(t, err)
	return res
}

// TestCheckReflexive tests that every triplicate is equivalent to itself
func TestCheckReflexive(t *testing.T) {
	for _, n := range []uint{2, 4, 6, 8} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			f := cube(t, n)
			res := check(t, f, f)
			require.True(t, res.Equivalent)
			assert.NoError(t, res.Verify(f, f))
			assert.Positive(t, res.Nodes)
		})
	}
}

// TestCheckTransformed tests equivalents built from explicit linear maps
func TestCheckTransformed(t *testing.T) {
	for _, n := range []uint{4, 6, 8} {
		for i := 0; i < 3; i++ {
			t.Run(fmt.Sprintf("n=%d/%d", n, i), func(t *testing.T) {
				f := cube(t, n)
				g := transformed(t, f, fmt.Sprintf("%d-%d", n, i))

				res := check(t, f, g)
				require.True(t, res.Equivalent)
				assert.NoError(t, res.Verify(f, g))

				back := check(t, g, f)
				require.True(t, back.Equivalent)
				assert.NoError(t, back.Verify(g, f))
			})
		}
	}
}

// TestCheckFrobenius tests equivalence under x -> x^2 on the input
func TestCheckFrobenius(t *testing.T) {
	gf, err := core.NewDefaultField(6)
	require.NoError(t, err)
	f := cube(t, 6)

	g, err := f.Compose(vbf.FrobeniusMap(gf, 1), vbf.Identity(6))
	require.NoError(t, err)
	require.True(t, IsCanonicalTriplicate(g, gf))

	res := check(t, f, g)
	require.True(t, res.Equivalent)
	assert.NoError(t, res.Verify(f, g))
}

// TestCheckInequivalent tests pairs that no linear maps relate
func TestCheckInequivalent(t *testing.T) {
	for i, p := range inequivalentGF16 {
		t.Run(fmt.Sprintf("pair %d", i), func(t *testing.T) {
			f, g := table(t, p[0]), table(t, p[1])
			require.True(t, IsCanonicalTriplicate(f, nil))
			require.True(t, IsCanonicalTriplicate(g, nil))

			assert.False(t, check(t, f, g).Equivalent)
			assert.False(t, check(t, g, f).Equivalent, "equivalence is symmetric")
			assert.True(t, check(t, f, f).Equivalent)
		})
	}
}

// TestCheckRejects tests inputs refused before the search starts
func TestCheckRejects(t *testing.T) {
	e := NewEngine(Config{})
	ctx := context.Background()

	_, err := e.Check(ctx, cube(t, 4), cube(t, 6), nil)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)

	perm := table(t, []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15})
	_, err = e.Check(ctx, cube(t, 4), perm, nil)
	assert.ErrorIs(t, err, core.ErrNotCanonicalTriplicate)

	_, err = e.Check(ctx, cube(t, 3), cube(t, 3), nil)
	assert.ErrorIs(t, err, core.ErrInvalidDimension)
}

// TestCheckLimits tests cancellation and the node budget
func TestCheckLimits(t *testing.T) {
	f := cube(t, 6)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEngine(Config{}).Check(ctx, f, f, nil)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = NewEngine(Config{MaxSearchNodes: 1}).Check(context.Background(), f, f, nil)
	assert.ErrorIs(t, err, ErrSearchLimit)
}

// TestTracer tests that events describe the search without altering it
func TestTracer(t *testing.T) {
	f := cube(t, 6)
	g := transformed(t, f, "tracer")

	counts := make(map[EventKind]int)
	var last Event
	tracer := TracerFunc(func(ev Event) {
		counts[ev.Kind]++
		last = ev
	})

	res, err := NewEngine(Config{Tracer: MultiTracer{tracer, nil}}).Check(context.Background(), f, g, nil)
	require.NoError(t, err)
	require.True(t, res.Equivalent)

	assert.Equal(t, 1, counts[EventEquivalent])
	assert.Zero(t, counts[EventExhausted])
	assert.Positive(t, counts[EventBranch])
	assert.Equal(t, EventEquivalent, last.Kind)
	assert.Equal(t, res.Nodes, last.Nodes)
	assert.Equal(t, "contradiction", EventContradiction.String())

	plain := check(t, f, g)
	assert.Equal(t, plain.Nodes, res.Nodes)
	assert.Equal(t, plain.L1, res.L1)
}

// TestResultVerify tests rejection of bad witnesses
func TestResultVerify(t *testing.T) {
	f := cube(t, 4)
	g := transformed(t, f, "verify")
	res := check(t, f, g)
	require.True(t, res.Equivalent)

	other := table(t, inequivalentGF16[0][0])
	assert.Error(t, res.Verify(f, other))

	singular := &Result{Equivalent: true, L1: vbf.LinearMap{1, 1, 4, 8}, L2: vbf.Identity(4)}
	assert.Error(t, singular.Verify(f, g))
	assert.Error(t, (&Result{}).Verify(f, g))
	assert.ErrorIs(t, res.Verify(f, cube(t, 6)), core.ErrDimensionMismatch)
}

// TestPartialMap tests closure and contradiction rules
func TestPartialMap(t *testing.T) {
	m := newPartialMap(8)

	out, ok := m.extend(1, 2, nil)
	require.True(t, ok)
	assert.Equal(t, []pair{{from: 1, to: 2}}, out)

	out, ok = m.extend(2, 4, nil)
	require.True(t, ok)
	assert.Equal(t, []pair{{from: 2, to: 4}, {from: 3, to: 6}}, out)

	_, ok = m.extend(3, 6, nil)
	assert.True(t, ok, "consistent known pair")
	_, ok = m.extend(3, 5, nil)
	assert.False(t, ok, "conflicting image")

	c := m.clone()
	_, ok = c.extend(4, 6, nil)
	assert.False(t, ok, "image already used")
	_, ok = c.extend(4, 0, nil)
	assert.False(t, ok, "nonzero to zero")
	_, ok = c.extend(0, 1, nil)
	assert.False(t, ok, "zero to nonzero")

	c.fill()
	assert.True(t, c.complete())
	assert.Equal(t, uint32(1), c.fwd[4])
	assert.False(t, m.complete(), "clone is independent")
	assert.Len(t, m.known, 4)
}
