package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/spectra"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/store"
)

func formatBuckets(m map[int]uint64) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]int, 0, len(m))
	for v := range m {
		keys = append(keys, v)
	}
	sort.Ints(keys)
	parts := make([]string, len(keys))
	for i, v := range keys {
		parts[i] = fmt.Sprintf("%d^%d", v, m[v])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatKToOne(k int) string {
	if k == spectra.NotKToOne {
		return "no"
	}
	return fmt.Sprintf("%d-to-1", k)
}

// Summary writes a two-column text summary of inv.
func Summary(w io.Writer, name string, inv *store.Invariants) error {
	if inv == nil {
		return fmt.Errorf("no invariants for %s", name)
	}
	monomial := inv.Monomial
	if monomial == "" {
		monomial = "no"
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "function\t%s\n", name)
	fmt.Fprintf(tw, "differential uniformity\t%d\n", inv.DifferentialUniformity)
	fmt.Fprintf(tw, "APN\t%v\n", inv.APN)
	fmt.Fprintf(tw, "algebraic degree\t%d\n", inv.AlgebraicDegree)
	fmt.Fprintf(tw, "k-to-1\t%s\n", formatKToOne(inv.KToOne))
	fmt.Fprintf(tw, "monomial\t%s\n", monomial)
	fmt.Fprintf(tw, "canonical triplicate\t%v\n", inv.CanonicalTriplicate)
	if inv.Quadratic {
		fmt.Fprintf(tw, "ODDS\t%s\n", formatBuckets(inv.ODDS))
		fmt.Fprintf(tw, "ODWS\t%s\n", formatBuckets(inv.ODWS))
	}
	return tw.Flush()
}
