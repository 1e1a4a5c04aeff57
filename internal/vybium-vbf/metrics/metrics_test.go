package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/equivalence"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

func TestTracerCountsEvents(t *testing.T) {
	gf, err := core.NewDefaultField(6)
	require.NoError(t, err)
	f := vbf.FromField(gf, func(x uint32) uint32 { return gf.Pow(x, 3) })

	branches := testutil.ToFloat64(BranchesTotal)
	contradictions := testutil.ToFloat64(ContradictionsTotal)

	var seenBranches, seenContradictions float64
	counter := equivalence.TracerFunc(func(ev equivalence.Event) {
		switch ev.Kind {
		case equivalence.EventBranch:
			seenBranches++
		case equivalence.EventContradiction:
			seenContradictions++
		}
	})

	e := equivalence.NewEngine(equivalence.Config{Tracer: equivalence.MultiTracer{Tracer{}, counter}})
	res, err := e.Check(context.Background(), f, f, gf)
	require.NoError(t, err)
	require.True(t, res.Equivalent)

	assert.Equal(t, branches+seenBranches, testutil.ToFloat64(BranchesTotal))
	assert.Equal(t, contradictions+seenContradictions, testutil.ToFloat64(ContradictionsTotal))
	assert.Positive(t, seenBranches)
}

func TestObserveCheck(t *testing.T) {
	eq := testutil.ToFloat64(ChecksTotal.WithLabelValues(OutcomeEquivalent))
	neq := testutil.ToFloat64(ChecksTotal.WithLabelValues(OutcomeInequivalent))
	failed := testutil.ToFloat64(ChecksTotal.WithLabelValues(OutcomeError))

	ObserveCheck(&equivalence.Result{Equivalent: true, Nodes: 4}, nil)
	ObserveCheck(&equivalence.Result{Nodes: 9}, nil)
	ObserveCheck(nil, errors.New("boom"))

	assert.Equal(t, eq+1, testutil.ToFloat64(ChecksTotal.WithLabelValues(OutcomeEquivalent)))
	assert.Equal(t, neq+1, testutil.ToFloat64(ChecksTotal.WithLabelValues(OutcomeInequivalent)))
	assert.Equal(t, failed+1, testutil.ToFloat64(ChecksTotal.WithLabelValues(OutcomeError)))
}

func TestObserveAnalysis(t *testing.T) {
	before := testutil.ToFloat64(AnalysesTotal.WithLabelValues("odds"))
	ObserveAnalysis("odds", time.Now().Add(-time.Millisecond))
	assert.Equal(t, before+1, testutil.ToFloat64(AnalysesTotal.WithLabelValues("odds")))
	assert.Positive(t, testutil.ToFloat64(AnalysisSeconds.WithLabelValues("odds")))
}
