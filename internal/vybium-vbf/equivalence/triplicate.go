// Package equivalence decides linear equivalence of triplicate functions:
// uniformly 3-to-1 functions whose fibres are the multiplicative orbits
// {x, βx, β²x} of an element β of order 3.
package equivalence

import (
	"fmt"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

// Triple is one fibre of a triplicate function: Output = F(r) for each of
// the three representatives r = i, βi, βi^i.
type Triple struct {
	Output uint32
	Reps   [3]uint32
}

// Triplicate is the canonical triple table of a function. Triples are
// ordered by their smallest representative.
type Triplicate struct {
	n       uint
	beta    uint32
	table   []uint32
	triples []Triple
	index   []uint32 // output -> triple index + 1, 0 if unused
}

// fieldFor resolves the field used to derive β: gf if given, else the
// polynomial attached to f, else the default polynomial for its dimension.
func fieldFor(f *vbf.Function, gf *core.Field) (*core.Field, error) {
	if gf != nil {
		return gf, nil
	}
	if f.Polynomial() != 0 {
		return f.Field(nil)
	}
	return core.NewDefaultField(f.Dimension())
}

// Canonicalize checks that f is a canonical triplicate and builds its
// triple table. Starting from the smallest unvisited nonzero i it requires
// F(i) = F(βi) = F(βi^i) != 0 with an output no earlier triple claimed.
func Canonicalize(f *vbf.Function, gf *core.Field) (*Triplicate, error) {
	n := f.Dimension()
	if n%2 != 0 {
		return nil, fmt.Errorf("%w: triplicate functions need an even dimension, got %d", core.ErrInvalidDimension, n)
	}
	gf, err := fieldFor(f, gf)
	if err != nil {
		return nil, err
	}
	if gf.Dimension() != n {
		return nil, fmt.Errorf("%w: field %s for function of dimension %d", core.ErrDimensionMismatch, gf, n)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	beta, err := gf.ElementOfOrder(3)
	if err != nil {
		return nil, err
	}

	tt := f.Table()
	size := f.Size()
	if tt[0] != 0 {
		return nil, fmt.Errorf("%w: F(0) = %d", core.ErrNotCanonicalTriplicate, tt[0])
	}

	t := &Triplicate{
		n:       n,
		beta:    beta,
		table:   tt,
		triples: make([]Triple, 0, (size-1)/3),
		index:   make([]uint32, size),
	}
	visited := make([]bool, size)
	for i := uint32(1); i < size; i++ {
		if visited[i] {
			continue
		}
		out := tt[i]
		if out == 0 {
			return nil, fmt.Errorf("%w: F(%d) = 0", core.ErrNotCanonicalTriplicate, i)
		}
		if t.index[out] != 0 {
			return nil, fmt.Errorf("%w: output %d already used by triple %d", core.ErrNotCanonicalTriplicate, out, t.index[out]-1)
		}
		k := gf.Mul(beta, i)
		if tt[k] != out || tt[k^i] != out {
			return nil, fmt.Errorf("%w: F is not constant on {%d, %d, %d}", core.ErrNotCanonicalTriplicate, i, k, k^i)
		}
		t.triples = append(t.triples, Triple{Output: out, Reps: [3]uint32{i, k, k ^ i}})
		t.index[out] = uint32(len(t.triples))
		visited[i], visited[k], visited[k^i] = true, true, true
	}
	return t, nil
}

// IsCanonicalTriplicate reports whether Canonicalize accepts f.
func IsCanonicalTriplicate(f *vbf.Function, gf *core.Field) bool {
	_, err := Canonicalize(f, gf)
	return err == nil
}

// Dimension returns n.
func (t *Triplicate) Dimension() uint {
	return t.n
}

// Beta returns the element of order 3 that generated the triples.
func (t *Triplicate) Beta() uint32 {
	return t.beta
}

// Len returns the number of triples, (2^n - 1) / 3.
func (t *Triplicate) Len() int {
	return len(t.triples)
}

// Triple returns the i-th triple.
func (t *Triplicate) Triple(i int) Triple {
	return t.triples[i]
}

// IndexOf returns the triple whose output is v.
func (t *Triplicate) IndexOf(v uint32) (int, bool) {
	if v >= uint32(len(t.index)) || t.index[v] == 0 {
		return 0, false
	}
	return int(t.index[v] - 1), true
}
