package vybiumvbf

import (
	"context"
	"errors"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/batch"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/equivalence"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/metrics"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/utils"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

// DefaultOptions returns the default options
func DefaultOptions() *Options {
	cfg := utils.DefaultConfig()
	return &Options{
		MaxDimension:         cfg.MaxDimension,
		MonomialMaxDimension: cfg.MonomialMaxDimension,
		MaxSearchNodes:       cfg.MaxSearchNodes,
	}
}

func (o *Options) config() *utils.Config {
	return utils.DefaultConfig().
		WithMaxDimension(o.MaxDimension).
		WithMonomialMaxDimension(o.MonomialMaxDimension).
		WithMaxSearchNodes(o.MaxSearchNodes)
}

// NewFunction creates a function from its truth table. A zero poly selects
// the default primitive polynomial when field arithmetic is needed.
func NewFunction(values []uint32, poly uint32) (*Function, error) {
	f, err := vbf.New(values, poly)
	if err != nil {
		return nil, wrapError(err, "invalid truth table")
	}
	if err := f.Validate(); err != nil {
		return nil, wrapError(err, "invalid truth table")
	}
	return f, nil
}

// Analyze computes the invariants of the function given by values
func Analyze(values []uint32, poly uint32, opts *Options) (*Invariants, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	f, err := NewFunction(values, poly)
	if err != nil {
		return nil, err
	}
	runner, err := batch.NewRunner(opts.config())
	if err != nil {
		return nil, &VBFError{Code: ErrCodeInvalidConfig, Message: "invalid options", Cause: err}
	}
	inv, err := runner.Compute(f)
	if err != nil {
		return nil, wrapError(err, "analysis failed")
	}
	return inv, nil
}

// IsCanonicalTriplicate reports whether F is canonical 3-to-1 over the field
// selected by poly
func IsCanonicalTriplicate(values []uint32, poly uint32) (bool, error) {
	f, err := NewFunction(values, poly)
	if err != nil {
		return false, err
	}
	gf, err := f.Field(nil)
	if errors.Is(err, core.ErrMissingFieldContext) {
		gf, err = core.NewDefaultField(f.Dimension())
	}
	if err != nil {
		return false, wrapError(err, "no field context")
	}
	return equivalence.IsCanonicalTriplicate(f, gf), nil
}

// CheckLinearEquivalence decides whether the canonical 3-to-1 functions f and
// g are linearly equivalent. Functions of different dimension are reported
// as not equivalent.
func CheckLinearEquivalence(ctx context.Context, f, g []uint32, poly uint32, opts *Options) (*EquivalenceResult, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	ff, err := NewFunction(f, poly)
	if err != nil {
		return nil, err
	}
	gg, err := NewFunction(g, poly)
	if err != nil {
		return nil, err
	}
	if ff.Dimension() != gg.Dimension() {
		return &EquivalenceResult{}, nil
	}

	engine := equivalence.NewEngine(equivalence.Config{
		MaxSearchNodes: opts.MaxSearchNodes,
		Tracer:         metrics.Tracer{},
	})
	res, err := engine.Check(ctx, ff, gg, nil)
	metrics.ObserveCheck(res, err)
	if err != nil {
		return nil, wrapError(err, "equivalence check failed")
	}
	return &EquivalenceResult{
		Equivalent: res.Equivalent,
		L1:         res.L1,
		L2:         res.L2,
		Nodes:      res.Nodes,
	}, nil
}
