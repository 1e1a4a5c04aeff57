package vybiumvbf

import (
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/store"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

// Function represents a vectorial Boolean function F: GF(2^n) -> GF(2^n)
// given by its truth table
type Function = vbf.Function

// LinearMap represents an n x n binary matrix stored by columns
type LinearMap = vbf.LinearMap

// Invariants represents the equivalence invariants of a function
type Invariants = store.Invariants

// Options represents the options for analyses and equivalence checks
type Options struct {
	// Largest n accepted for truth tables
	MaxDimension uint

	// Largest n for which the monomial test runs
	MonomialMaxDimension uint

	// Equivalence search node budget, 0 for unlimited
	MaxSearchNodes uint64
}

// EquivalenceResult represents the outcome of a linear equivalence check
type EquivalenceResult struct {
	// Whether G = L2 o F o L1^-1 for invertible linear L1 and L2
	Equivalent bool

	// Witness maps with G(L1 x) = L2(F x), nil unless Equivalent
	L1, L2 LinearMap

	// Number of visited search nodes
	Nodes uint64
}
