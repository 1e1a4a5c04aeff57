// Package metrics exposes Prometheus instrumentation for analyses and
// equivalence searches.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/equivalence"
)

var (
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vybium_vbf",
		Subsystem: "analysis",
		Name:      "runs_total",
		Help:      "Total number of invariant computations, per invariant",
	}, []string{"invariant"})
	AnalysisSeconds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vybium_vbf",
		Subsystem: "analysis",
		Name:      "seconds_total",
		Help:      "Total time spent computing invariants, per invariant",
	}, []string{"invariant"})

	ChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vybium_vbf",
		Subsystem: "equivalence",
		Name:      "checks_total",
		Help:      "Total number of linear equivalence checks, per outcome (equivalent/inequivalent/error)",
	}, []string{"outcome"})
	BranchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vybium_vbf",
		Subsystem: "equivalence",
		Name:      "branches_total",
		Help:      "Total number of tentative triple placements",
	})
	ContradictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vybium_vbf",
		Subsystem: "equivalence",
		Name:      "contradictions_total",
		Help:      "Total number of branches pruned by propagation",
	})
	SearchNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "vybium_vbf",
		Subsystem: "equivalence",
		Name:      "search_nodes",
		Help:      "Search nodes per completed check",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})

	StoredFunctions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "vybium_vbf",
		Subsystem: "store",
		Name:      "functions",
		Help:      "Number of functions in the database",
	})
)

// Outcome labels for ChecksTotal.
const (
	OutcomeEquivalent   = "equivalent"
	OutcomeInequivalent = "inequivalent"
	OutcomeError        = "error"
)

// ObserveAnalysis records one invariant computation that started at start.
func ObserveAnalysis(invariant string, start time.Time) {
	AnalysesTotal.WithLabelValues(invariant).Inc()
	AnalysisSeconds.WithLabelValues(invariant).Add(time.Since(start).Seconds())
}

// ObserveCheck records the outcome of an equivalence check.
func ObserveCheck(res *equivalence.Result, err error) {
	switch {
	case err != nil:
		ChecksTotal.WithLabelValues(OutcomeError).Inc()
	case res.Equivalent:
		ChecksTotal.WithLabelValues(OutcomeEquivalent).Inc()
	default:
		ChecksTotal.WithLabelValues(OutcomeInequivalent).Inc()
	}
	if res != nil {
		SearchNodes.Observe(float64(res.Nodes))
	}
}

// Tracer counts search events.
type Tracer struct{}

// Trace implements equivalence.Tracer.
func (Tracer) Trace(ev equivalence.Event) {
	switch ev.Kind {
	case equivalence.EventBranch:
		BranchesTotal.Inc()
	case equivalence.EventContradiction:
		ContradictionsTotal.Inc()
	}
}
