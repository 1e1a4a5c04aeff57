package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/batch"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/report"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/store"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/utils"
)

type storeCommand struct {
	Add    storeAddCommand    `cmd:"" help:"Analyze a function and add it to the database"`
	List   storeListCommand   `cmd:"" help:"List stored functions"`
	Get    storeGetCommand    `cmd:"" help:"Show one stored function"`
	Delete storeDeleteCommand `cmd:"" help:"Remove a stored function"`
	Reset  storeResetCommand  `cmd:"" help:"Remove every stored function"`
	Match  storeMatchCommand  `cmd:"" help:"Find stored functions equivalent to a candidate"`
}

func openStore(cfg *utils.Config) (*store.Store, error) {
	if cfg.StorePath == "" {
		return store.OpenMem()
	}
	return store.Open(cfg.StorePath)
}

type storeAddCommand struct {
	functionArg
	Name string `help:"Name to store the function under"`
}

func (c *storeAddCommand) Run(cfg *utils.Config) error {
	name, f, err := c.load()
	if err != nil {
		return err
	}
	if c.Name != "" {
		name = c.Name
	}
	runner, err := batch.NewRunner(cfg)
	if err != nil {
		return err
	}
	inv, err := runner.Compute(f)
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	rec := store.NewRecord(name, f)
	rec.Invariants = inv
	created, err := s.Put(rec)
	if err != nil {
		return err
	}
	if created {
		fmt.Println("added", rec.Fingerprint)
	} else {
		fmt.Println("updated", rec.Fingerprint)
	}
	return nil
}

type storeListCommand struct {
	Dimension uint `short:"n" help:"Only list functions of this dimension"`
}

func (c *storeListCommand) Run(cfg *utils.Config) error {
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.List(c.Dimension)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "FINGERPRINT\tN\tNAME\tDU\tDEGREE\tK-TO-1")
	for _, r := range records {
		du, deg, k := "-", "-", "-"
		if inv := r.Invariants; inv != nil {
			du, deg, k = fmt.Sprint(inv.DifferentialUniformity), fmt.Sprint(inv.AlgebraicDegree), fmt.Sprint(inv.KToOne)
		}
		fmt.Fprintf(tw, "%.16s\t%d\t%s\t%s\t%s\t%s\n", r.Fingerprint, r.Dimension, r.Name, du, deg, k)
	}
	return tw.Flush()
}

type storeGetCommand struct {
	Fingerprint string `arg:""`
	JSON        bool   `name:"json" help:"Print the full record as JSON"`
}

func (c *storeGetCommand) Run(cfg *utils.Config) error {
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	r, err := s.Get(c.Fingerprint)
	if err != nil {
		return err
	}
	f, err := r.Function()
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(r)
	}
	fmt.Println(formatTable(f.Values()))
	fmt.Printf("digest  %s\n", r.Digest)
	return report.Summary(os.Stdout, r.Name, r.Invariants)
}

type storeDeleteCommand struct {
	Fingerprint string `arg:""`
}

func (c *storeDeleteCommand) Run(cfg *utils.Config) error {
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Delete(c.Fingerprint)
}

type storeResetCommand struct {
	Yes bool `help:"Confirm deletion of every record"`
}

func (c *storeResetCommand) Run(cfg *utils.Config) error {
	if !c.Yes {
		return fmt.Errorf("refusing to reset %s without --yes", cfg.StorePath)
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Reset()
}

type storeMatchCommand struct {
	functionArg
}

func (c *storeMatchCommand) Run(ctx context.Context, cfg *utils.Config) error {
	name, f, err := c.load()
	if err != nil {
		return err
	}
	runner, err := batch.NewRunner(cfg)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.List(f.Dimension())
	if err != nil {
		return err
	}
	matches, err := runner.Match(ctx, f, nil, records)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Printf("%s: no stored function shares its invariants\n", name)
		return nil
	}
	for _, m := range matches {
		switch {
		case m.Equivalent:
			fmt.Printf("equivalent to %s (%s)\n", m.Record.Name, m.Record.Fingerprint)
		case m.Decided:
			fmt.Printf("not equivalent to %s (%s)\n", m.Record.Name, m.Record.Fingerprint)
		default:
			fmt.Printf("same invariants as %s (%s): %s\n", m.Record.Name, m.Record.Fingerprint, m.Reason)
		}
	}
	return nil
}
