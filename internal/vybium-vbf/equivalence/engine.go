package equivalence

import (
	"context"
	"errors"
	"fmt"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

// ErrSearchLimit is returned when a search exceeds Config.MaxSearchNodes.
var ErrSearchLimit = errors.New("search node limit reached")

// configurations lists the six ways to send the second and third
// representatives of an F-triple onto two distinct representatives of a
// G-triple. Together with linearity this fixes the whole triple.
var configurations = [6][2]int{
	{0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1},
}

// Config controls an Engine.
type Config struct {
	// MaxSearchNodes bounds the number of visited search nodes; 0 means no
	// bound.
	MaxSearchNodes uint64

	// Tracer receives search events. It may be nil.
	Tracer Tracer
}

// Engine runs linear equivalence searches. An Engine holds no per-search
// state and may be shared between goroutines.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Result is the outcome of a completed search.
type Result struct {
	Equivalent bool
	// L1 and L2 satisfy G(L1 x) = L2(F x) when Equivalent is set.
	L1, L2 vbf.LinearMap
	// Nodes counts visited search nodes.
	Nodes uint64
}

// Verify checks the witness maps against f and g.
func (r *Result) Verify(f, g *vbf.Function) error {
	if !r.Equivalent {
		return fmt.Errorf("no witness to verify")
	}
	if r.L1.Dimension() != f.Dimension() || r.L2.Dimension() != g.Dimension() || f.Dimension() != g.Dimension() {
		return core.ErrDimensionMismatch
	}
	if !r.L1.IsInvertible() || !r.L2.IsInvertible() {
		return fmt.Errorf("witness map is singular")
	}
	for x := uint32(0); x < f.Size(); x++ {
		if g.At(r.L1.Apply(x)) != r.L2.Apply(f.At(x)) {
			return fmt.Errorf("G(L1 %d) != L2(F %d)", x, x)
		}
	}
	return nil
}

// Check decides whether g = L2∘f∘L1^-1 for invertible linear L1, L2. Both
// functions are canonicalized over gf first (see Canonicalize for the nil
// case); a dimension mismatch or a non-triplicate input is returned as an
// error before any search starts.
func (e *Engine) Check(ctx context.Context, f, g *vbf.Function, gf *core.Field) (*Result, error) {
	if f.Dimension() != g.Dimension() {
		return nil, fmt.Errorf("%w: %d and %d", core.ErrDimensionMismatch, f.Dimension(), g.Dimension())
	}
	gf, err := fieldFor(f, gf)
	if err != nil {
		return nil, err
	}
	ft, err := Canonicalize(f, gf)
	if err != nil {
		return nil, fmt.Errorf("first function: %w", err)
	}
	gt, err := Canonicalize(g, gf)
	if err != nil {
		return nil, fmt.Errorf("second function: %w", err)
	}
	return e.CheckTriplicates(ctx, ft, gt)
}

// CheckTriplicates runs the search on two canonical triple tables.
func (e *Engine) CheckTriplicates(ctx context.Context, ft, gt *Triplicate) (*Result, error) {
	if ft.n != gt.n {
		return nil, fmt.Errorf("%w: %d and %d", core.ErrDimensionMismatch, ft.n, gt.n)
	}
	s := &search{
		ctx:    ctx,
		ft:     ft,
		gt:     gt,
		limit:  e.cfg.MaxSearchNodes,
		tracer: e.cfg.Tracer,
	}
	size := uint32(len(ft.table))
	root := branch{l1: newPartialMap(size), l2: newPartialMap(size)}

	found, err := s.run(root, 0)
	if err != nil {
		return nil, err
	}
	res := &Result{Nodes: s.nodes}
	if found == nil {
		s.emit(Event{Kind: EventExhausted, Nodes: s.nodes})
		return res, nil
	}

	found.l2.fill()
	if res.L1, err = vbf.FromTable(found.l1.fwd); err != nil {
		return nil, fmt.Errorf("search produced a nonlinear L1: %w", err)
	}
	if res.L2, err = vbf.FromTable(found.l2.fwd); err != nil {
		return nil, fmt.Errorf("search produced a nonlinear L2: %w", err)
	}
	res.Equivalent = true
	s.emit(Event{Kind: EventEquivalent, Nodes: s.nodes})
	return res, nil
}

// branch is the private state of one search node.
type branch struct {
	l1 partialMap // domain map, F-inputs to G-inputs
	l2 partialMap // codomain map, F-outputs to G-outputs
}

func (b *branch) clone() branch {
	return branch{l1: b.l1.clone(), l2: b.l2.clone()}
}

type search struct {
	ctx    context.Context
	ft, gt *Triplicate
	limit  uint64
	nodes  uint64
	tracer Tracer
}

func (s *search) emit(ev Event) {
	if s.tracer != nil {
		s.tracer.Trace(ev)
	}
}

// run explores b and returns a completed branch, or nil when every
// extension of b leads to a contradiction.
func (s *search) run(b branch, depth int) (*branch, error) {
	if err := s.ctx.Err(); err != nil {
		return nil, err
	}
	s.nodes++
	if s.limit != 0 && s.nodes > s.limit {
		return nil, fmt.Errorf("%w: %d nodes", ErrSearchLimit, s.limit)
	}
	if b.l1.complete() {
		return &b, nil
	}

	fi, targets := s.next(&b)
	ftr := s.ft.triples[fi]
	for _, gi := range targets {
		gtr := s.gt.triples[gi]
		for c, cfg := range configurations {
			s.emit(Event{Kind: EventBranch, Depth: depth, FTriple: fi, GTriple: gi, Config: c, Nodes: s.nodes})
			child := b.clone()
			ok := s.propagate(&child, []pair{
				{from: ftr.Reps[1], to: gtr.Reps[cfg[0]]},
				{from: ftr.Reps[2], to: gtr.Reps[cfg[1]]},
			})
			if !ok {
				s.emit(Event{Kind: EventContradiction, Depth: depth, FTriple: fi, GTriple: gi, Config: c, Nodes: s.nodes})
				continue
			}
			found, err := s.run(child, depth+1)
			if err != nil || found != nil {
				return found, err
			}
		}
	}
	return nil, nil
}

// next picks the F-triple to place and its candidate G-triples. A triple is
// placed once L1 knows all of its representatives. An unplaced triple whose
// output already has an L2 image is forced onto the G-triple owning that
// image; otherwise the first unplaced triple is tried against every G-triple
// whose output is still outside the L2 image.
func (s *search) next(b *branch) (int, []int) {
	free := -1
	for i, tr := range s.ft.triples {
		if b.l1.has(tr.Reps[0]) && b.l1.has(tr.Reps[1]) {
			continue
		}
		if b.l2.has(tr.Output) {
			gi, _ := s.gt.IndexOf(b.l2.fwd[tr.Output])
			return i, []int{gi}
		}
		if free < 0 {
			free = i
		}
	}

	var targets []int
	for gi, tr := range s.gt.triples {
		if !b.l2.hasPreimage(tr.Output) {
			targets = append(targets, gi)
		}
	}
	return free, targets
}

// propagate applies the L1 pairs and everything they force. Each new L1
// pair (a, c) forces the L2 pair (F(a), G(c)); each new L2 pair must send
// F-outputs to G-outputs and non-outputs to non-outputs.
func (s *search) propagate(b *branch, pending []pair) bool {
	ftab, gtab := s.ft.table, s.gt.table
	var forced, scratch []pair
	var ok bool
	for len(pending) > 0 || len(forced) > 0 {
		for len(pending) > 0 {
			p := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			if scratch, ok = b.l1.extend(p.from, p.to, scratch[:0]); !ok {
				return false
			}
			for _, q := range scratch {
				forced = append(forced, pair{from: ftab[q.from], to: gtab[q.to]})
			}
		}
		for len(forced) > 0 {
			p := forced[len(forced)-1]
			forced = forced[:len(forced)-1]
			if scratch, ok = b.l2.extend(p.from, p.to, scratch[:0]); !ok {
				return false
			}
			for _, q := range scratch {
				if (s.ft.index[q.from] != 0) != (s.gt.index[q.to] != 0) {
					return false
				}
			}
		}
	}
	return true
}
