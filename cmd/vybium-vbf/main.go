// Command vybium-vbf analyzes vectorial Boolean functions over GF(2^n):
// invariants, spectra, algebraic normal form, canonical triplicates and
// linear equivalence, with a LevelDB store of known functions.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/logger"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/utils"
)

var l = logger.DefaultLogger.NewFacility("main", "Command line interface")

type CLI struct {
	DB            string `name:"db" placeholder:"PATH" env:"VBF_DB" default:"vbf.db" help:"Known-function database directory"`
	Workers       int    `env:"VBF_WORKERS" default:"4" help:"Parallel workers for batch runs"`
	MaxNodes      uint64 `name:"max-nodes" env:"VBF_MAX_NODES" default:"0" help:"Equivalence search node budget, 0 for unlimited"`
	MaxDimension  uint   `name:"max-dimension" env:"VBF_MAX_DIMENSION" default:"20" help:"Largest accepted dimension"`
	Debug         string `placeholder:"FACILITIES" env:"VBF_DEBUG" help:"Comma separated debug facilities, or \"all\""`
	PrintMetrics  bool   `name:"metrics" help:"Print Prometheus metrics to stderr on exit"`

	Invariants invariantsCommand `cmd:"" help:"Compute the equivalence invariants of a function"`
	Spectra    spectraCommand    `cmd:"" help:"Compute the ortho-derivative spectra of a quadratic function"`
	ANF        anfCommand        `cmd:"" name:"anf" help:"Print the algebraic normal form of every coordinate"`
	Triplicate triplicateCommand `cmd:"" help:"Print the canonical triple table of a 3-to-1 function"`
	Lineq      lineqCommand      `cmd:"" help:"Decide linear equivalence of two canonical triplicates"`
	Transform  transformCommand  `cmd:"" help:"Apply a seeded random linear transformation"`
	Store      storeCommand      `cmd:"" help:"Known-function database command group"`
	Batch      batchCommand      `cmd:"" help:"Analyze every function of a YAML or JSON document"`
}

// AfterApply turns the global flags into the shared configuration.
func (cli *CLI) AfterApply(kongCtx *kong.Context) error {
	cfg := utils.DefaultConfig().
		WithStorePath(cli.DB).
		WithWorkers(cli.Workers).
		WithMaxSearchNodes(cli.MaxNodes).
		WithMaxDimension(cli.MaxDimension).
		WithLogFacilities(cli.Debug)
	if cfg.MonomialMaxDimension > cfg.MaxDimension {
		cfg.WithMonomialMaxDimension(cfg.MaxDimension)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("command line options: %w", err)
	}
	logger.Enable(logger.DefaultLogger, cfg.Facilities())
	kongCtx.Bind(cfg)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	kongCtx := kong.Parse(&cli,
		kong.Name("vybium-vbf"),
		kong.Description("Vectorial Boolean function analysis over GF(2^n)"),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	err := kongCtx.Run()
	if cli.PrintMetrics {
		printMetrics()
	}
	kongCtx.FatalIfErrorf(err)
}

func printMetrics() {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		l.Warnln("Gathering metrics:", err)
		return
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stderr, mf); err != nil {
			l.Warnln("Writing metrics:", err)
			return
		}
	}
}
