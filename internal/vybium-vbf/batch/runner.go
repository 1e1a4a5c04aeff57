// Package batch computes invariants for many functions in parallel and
// matches candidates against the known-function store.
package batch

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/anf"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/equivalence"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/logger"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/metrics"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/spectra"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/store"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/utils"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

var l = logger.DefaultLogger.NewFacility("batch", "Batch analysis and matching")

// Job is one named function to analyze.
type Job struct {
	Name     string
	Function *vbf.Function
}

// Result is the outcome of one job. Record is shared between a job and its
// duplicates.
type Result struct {
	Name        string
	Record      *store.Record
	DuplicateOf string
	Err         error
}

// Runner computes invariants. A Runner may be used by several goroutines.
type Runner struct {
	cfg    *utils.Config
	fields *core.FieldCache
	engine *equivalence.Engine
}

// NewRunner creates a runner. A nil cfg selects utils.DefaultConfig.
func NewRunner(cfg *utils.Config) (*Runner, error) {
	if cfg == nil {
		cfg = utils.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	fields, err := core.NewFieldCache(cfg.FieldCacheSize)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:    cfg.Clone(),
		fields: fields,
		engine: equivalence.NewEngine(equivalence.Config{
			MaxSearchNodes: cfg.MaxSearchNodes,
			Tracer:         equivalence.MultiTracer{metrics.Tracer{}, equivalence.LogTracer()},
		}),
	}, nil
}

// Fields returns the runner's field cache.
func (r *Runner) Fields() *core.FieldCache {
	return r.fields
}

// field resolves the field of f, or nil when no field applies.
func (r *Runner) field(f *vbf.Function) *core.Field {
	gf, err := r.fields.Get(f.Dimension(), f.Polynomial())
	if err != nil {
		l.Debugf("No field for n=%d poly=%#x: %v", f.Dimension(), f.Polynomial(), err)
		return nil
	}
	return gf
}

// Compute returns the invariants of f. The ortho-derivative spectra are only
// computed for quadratic functions; the monomial and triplicate checks need
// a field and are skipped without one.
func (r *Runner) Compute(f *vbf.Function) (*store.Invariants, error) {
	if f.Dimension() > r.cfg.MaxDimension {
		return nil, fmt.Errorf("%w: dimension %d exceeds limit %d", core.ErrInvalidDimension, f.Dimension(), r.cfg.MaxDimension)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	inv := new(store.Invariants)
	var err error

	start := time.Now()
	if inv.DifferentialUniformity, err = spectra.DifferentialUniformity(f); err != nil {
		return nil, err
	}
	inv.APN = inv.DifferentialUniformity == 2
	metrics.ObserveAnalysis("differential_uniformity", start)

	start = time.Now()
	if inv.AlgebraicDegree, err = anf.AlgebraicDegree(f); err != nil {
		return nil, err
	}
	inv.Quadratic = inv.AlgebraicDegree == 2
	metrics.ObserveAnalysis("algebraic_degree", start)

	start = time.Now()
	inv.KToOne = spectra.KToOne(f)
	metrics.ObserveAnalysis("k_to_1", start)

	if gf := r.field(f); gf != nil {
		if f.Dimension() <= r.cfg.MonomialMaxDimension {
			start = time.Now()
			m, ok, err := anf.IsMonomial(f, gf)
			if err != nil {
				return nil, err
			}
			if ok {
				inv.Monomial = m.String()
			}
			metrics.ObserveAnalysis("monomial", start)
		}

		start = time.Now()
		inv.CanonicalTriplicate = equivalence.IsCanonicalTriplicate(f, gf)
		metrics.ObserveAnalysis("canonical_triplicate", start)
	}

	if inv.Quadratic {
		start = time.Now()
		odds, err := spectra.ODDS(f)
		if err != nil {
			return nil, err
		}
		inv.ODDS = odds.Map()
		metrics.ObserveAnalysis("odds", start)

		start = time.Now()
		odws, err := spectra.ODWS(f)
		if err != nil {
			return nil, err
		}
		inv.ODWS = odws.Map()
		metrics.ObserveAnalysis("odws", start)
	}
	return inv, nil
}

// Run analyzes jobs on at most cfg.Workers goroutines. Jobs with the same
// fingerprint are computed once. Per-job failures are reported in the
// results; the returned error is only set when ctx ends the run.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	first := make(map[string]int, len(jobs))
	var unique []int
	for i, job := range jobs {
		results[i].Name = job.Name
		if job.Function == nil {
			results[i].Err = fmt.Errorf("job %q has no function", job.Name)
			continue
		}
		fp := job.Function.Fingerprint()
		if j, ok := first[fp]; ok {
			results[i].DuplicateOf = jobs[j].Name
			continue
		}
		first[fp] = i
		unique = append(unique, i)
	}
	l.Debugf("Running %d jobs (%d unique) on %d workers", len(jobs), len(unique), r.cfg.Workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for _, i := range unique {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			job := jobs[i]
			inv, err := r.Compute(job.Function)
			if err != nil {
				l.Infof("Job %q failed: %v", job.Name, err)
				results[i].Err = err
				return nil
			}
			rec := store.NewRecord(job.Name, job.Function)
			rec.Invariants = inv
			results[i].Record = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	for i := range results {
		if results[i].DuplicateOf == "" {
			continue
		}
		j := first[jobs[i].Function.Fingerprint()]
		results[i].Record = results[j].Record
		results[i].Err = results[j].Err
	}
	return results, nil
}
