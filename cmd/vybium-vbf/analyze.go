package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/anf"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/batch"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/equivalence"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/metrics"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/report"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/spectra"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/utils"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

// functionArg is embedded by every command taking one function.
type functionArg struct {
	Function string `arg:"" help:"Truth table (\"0,1,8,15,...\") or YAML/JSON document"`
	Poly     string `placeholder:"POLY" help:"Reduction polynomial, e.g. \"x^4 + x + 1\""`
}

func (a *functionArg) load() (string, *vbf.Function, error) {
	return loadFunction(a.Function, a.Poly)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type invariantsCommand struct {
	functionArg
	JSON bool `name:"json" help:"Print JSON instead of text"`
}

func (c *invariantsCommand) Run(cfg *utils.Config) error {
	name, f, err := c.load()
	if err != nil {
		return err
	}
	runner, err := batch.NewRunner(cfg)
	if err != nil {
		return err
	}
	inv, err := runner.Compute(f)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(inv)
	}
	return report.Summary(os.Stdout, name, inv)
}

type spectraCommand struct {
	functionArg
	HTML string `name:"html" placeholder:"FILE" help:"Also write an HTML bar chart page"`
}

func (c *spectraCommand) Run() error {
	name, f, err := c.load()
	if err != nil {
		return err
	}
	quadratic, err := anf.IsQuadratic(f)
	if err != nil {
		return err
	}
	if !quadratic {
		l.Warnf("%s is not quadratic; ortho-derivative spectra are only invariants for quadratic functions", name)
	}
	odds, err := spectra.ODDS(f)
	if err != nil {
		return err
	}
	odws, err := spectra.ODWS(f)
	if err != nil {
		return err
	}
	fmt.Println("ODDS", odds)
	fmt.Println("ODWS", odws)

	if c.HTML == "" {
		return nil
	}
	out, err := os.Create(c.HTML)
	if err != nil {
		return err
	}
	if err := report.SpectrumChart(out, name, odds, odws); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

type anfCommand struct {
	functionArg
}

func (c *anfCommand) Run() error {
	_, f, err := c.load()
	if err != nil {
		return err
	}
	coords, err := anf.Coordinates(f)
	if err != nil {
		return err
	}
	degree, err := anf.AlgebraicDegree(f)
	if err != nil {
		return err
	}
	for i, monomials := range coords {
		fmt.Printf("f%d = %s\n", i, anf.FormatCoordinate(monomials))
	}
	fmt.Println("degree", degree)
	return nil
}

type triplicateCommand struct {
	functionArg
}

func (c *triplicateCommand) Run() error {
	name, f, err := c.load()
	if err != nil {
		return err
	}
	t, err := equivalence.Canonicalize(f, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	fmt.Printf("%s is a canonical triplicate: beta=%d, %d triples\n", name, t.Beta(), t.Len())
	for i := 0; i < t.Len(); i++ {
		tr := t.Triple(i)
		fmt.Printf("%4d -> {%d, %d, %d}\n", tr.Output, tr.Reps[0], tr.Reps[1], tr.Reps[2])
	}
	return nil
}

type lineqCommand struct {
	F     string `arg:"" help:"First function"`
	G     string `arg:"" help:"Second function"`
	Poly  string `placeholder:"POLY" help:"Reduction polynomial, e.g. \"x^4 + x + 1\""`
	Trace bool   `help:"Log every search event"`
}

func (c *lineqCommand) Run(ctx context.Context, cfg *utils.Config) error {
	_, f, err := loadFunction(c.F, c.Poly)
	if err != nil {
		return err
	}
	_, g, err := loadFunction(c.G, c.Poly)
	if err != nil {
		return err
	}
	if f.Dimension() != g.Dimension() {
		fmt.Println("not equivalent: dimensions differ")
		return nil
	}

	tracers := equivalence.MultiTracer{metrics.Tracer{}}
	if c.Trace {
		tracers = append(tracers, equivalence.TracerFunc(func(ev equivalence.Event) {
			fmt.Fprintf(os.Stderr, "%-13s depth=%d f=%d g=%d config=%d nodes=%d\n",
				ev.Kind, ev.Depth, ev.FTriple, ev.GTriple, ev.Config, ev.Nodes)
		}))
	} else {
		tracers = append(tracers, equivalence.LogTracer())
	}
	engine := equivalence.NewEngine(equivalence.Config{MaxSearchNodes: cfg.MaxSearchNodes, Tracer: tracers})

	res, err := engine.Check(ctx, f, g, nil)
	metrics.ObserveCheck(res, err)
	if err != nil {
		return err
	}
	if !res.Equivalent {
		fmt.Printf("not equivalent (%d nodes)\n", res.Nodes)
		return nil
	}
	if err := res.Verify(f, g); err != nil {
		return fmt.Errorf("witness check: %w", err)
	}
	fmt.Printf("equivalent (%d nodes)\n", res.Nodes)
	fmt.Println("L1", formatTable(res.L1.Table()))
	fmt.Println("L2", formatTable(res.L2.Table()))
	return nil
}

func formatTable(values []uint32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type transformCommand struct {
	functionArg
	Seed      string `required:"" help:"Seed for the linear maps"`
	Frobenius uint   `help:"Additionally apply x -> x^(2^k) on the input side"`
}

// Run prints A(F(c^-1 x)) for a seeded invertible A and nonzero c, which is
// linearly equivalent to F and stays triplicate when F is.
func (c *transformCommand) Run() error {
	_, f, err := c.load()
	if err != nil {
		return err
	}
	gf, err := fieldOf(f)
	if err != nil {
		return err
	}
	tr := utils.NewTranscript([]byte(c.Seed))
	tr.Absorb([]byte(f.Fingerprint()))
	l1 := vbf.MulMap(gf, tr.ReceiveNonzero(gf.Size()))
	if c.Frobenius != 0 {
		l1 = l1.Then(vbf.FrobeniusMap(gf, c.Frobenius))
	}
	l2 := vbf.LinearMap(tr.ReceiveInvertibleMatrix(f.Dimension()))

	g, err := f.Compose(l1, l2)
	if err != nil {
		return err
	}
	l.Debugf("transcript %s", tr)
	fmt.Println(formatTable(g.Table()))
	return nil
}

// fieldOf resolves the field for f, falling back to the default polynomial.
func fieldOf(f *vbf.Function) (*core.Field, error) {
	return newField(f.Dimension(), f.Polynomial())
}
