package batch

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/equivalence"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/metrics"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/store"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

// Match is a stored record whose invariants agree with a candidate.
type Match struct {
	Record *store.Record
	// Decided is set when the equivalence engine ran to completion.
	Decided    bool
	Equivalent bool
	Result     *equivalence.Result
	// Reason explains an undecided match.
	Reason string
}

// Compatible reports whether two invariant sets can belong to linearly
// equivalent functions.
func Compatible(a, b *store.Invariants) bool {
	if a == nil || b == nil {
		return false
	}
	if a.DifferentialUniformity != b.DifferentialUniformity ||
		a.AlgebraicDegree != b.AlgebraicDegree ||
		a.KToOne != b.KToOne ||
		a.CanonicalTriplicate != b.CanonicalTriplicate {
		return false
	}
	if a.Quadratic {
		return maps.Equal(a.ODDS, b.ODDS) && maps.Equal(a.ODWS, b.ODWS)
	}
	return true
}

// Match compares candidate against records of the same dimension. Records
// with incompatible invariants are dropped; the rest are decided by the
// equivalence engine when both sides are canonical 3-to-1 functions over
// the same field.
func (r *Runner) Match(ctx context.Context, candidate *vbf.Function, inv *store.Invariants, records []*store.Record) ([]Match, error) {
	if inv == nil {
		var err error
		if inv, err = r.Compute(candidate); err != nil {
			return nil, err
		}
	}
	gf := r.field(candidate)

	var out []Match
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if rec.Dimension != candidate.Dimension() || !Compatible(inv, rec.Invariants) {
			continue
		}
		m := Match{Record: rec}
		switch {
		case inv.KToOne != 3 || !inv.CanonicalTriplicate:
			m.Reason = "not a canonical 3-to-1 function"
		case gf == nil:
			m.Reason = "no field context"
		case rec.Polynomial != 0 && rec.Polynomial != gf.Polynomial():
			m.Reason = fmt.Sprintf("stored over a different polynomial %#x", rec.Polynomial)
		default:
			if err := r.decide(ctx, candidate, &m); err != nil {
				return out, err
			}
		}
		l.Debugf("Candidate %s vs %s: decided=%v equivalent=%v %s",
			candidate.Fingerprint(), rec.Fingerprint, m.Decided, m.Equivalent, m.Reason)
		out = append(out, m)
	}
	return out, nil
}

func (r *Runner) decide(ctx context.Context, candidate *vbf.Function, m *Match) error {
	g, err := m.Record.Function()
	if err != nil {
		m.Reason = err.Error()
		return nil
	}
	res, err := r.engine.Check(ctx, candidate, g, r.field(candidate))
	metrics.ObserveCheck(res, err)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case err != nil:
		m.Reason = err.Error()
		return nil
	}
	m.Decided = true
	m.Equivalent = res.Equivalent
	m.Result = res
	return nil
}
