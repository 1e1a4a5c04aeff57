package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/batch"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/report"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/utils"
)

type batchCommand struct {
	File  string `arg:"" type:"existingfile" help:"YAML or JSON document with a functions list"`
	Poly  string `placeholder:"POLY" help:"Default reduction polynomial"`
	Store bool   `help:"Add every analyzed function to the database"`
}

func (c *batchCommand) Run(ctx context.Context, cfg *utils.Config) error {
	names, funcs, err := loadBatch(c.File, c.Poly)
	if err != nil {
		return err
	}
	jobs := make([]batch.Job, len(funcs))
	for i := range funcs {
		jobs[i] = batch.Job{Name: names[i], Function: funcs[i]}
	}

	runner, err := batch.NewRunner(cfg)
	if err != nil {
		return err
	}
	results, err := runner.Run(ctx, jobs)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
			fmt.Printf("%s: %v\n\n", res.Name, res.Err)
		case res.DuplicateOf != "":
			fmt.Printf("%s: same truth table as %s\n\n", res.Name, res.DuplicateOf)
		default:
			if err := report.Summary(os.Stdout, res.Name, res.Record.Invariants); err != nil {
				return err
			}
			fmt.Println()
		}
	}

	if c.Store {
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()
		added := 0
		for _, res := range results {
			if res.Err != nil || res.DuplicateOf != "" {
				continue
			}
			created, err := s.Put(res.Record)
			if err != nil {
				return err
			}
			if created {
				added++
			}
		}
		l.Infof("Added %d new functions to %s", added, s.Location())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d functions failed", failed, len(results))
	}
	return nil
}
