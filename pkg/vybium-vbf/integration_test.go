package vybiumvbf_test

import (
	"context"
	"testing"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/batch"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/store"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/utils"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
	vybiumvbf "github.com/vybium/vybium-vbf/pkg/vybium-vbf"
)

// TestKnownFunctionFlow tests the full classification flow:
// 1. Analyze x^3 over GF(2^6)
// 2. Store it with its invariants
// 3. Hide it behind random linear maps
// 4. Match the disguised function against the store
// 5. Confirm the witness through the public API
func TestKnownFunctionFlow(t *testing.T) {
	ctx := context.Background()

	t.Log("Step 1: Analyzing x^3 over GF(2^6)...")
	gf, err := core.NewDefaultField(6)
	if err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}
	cube := vbf.FromField(gf, func(x uint32) uint32 { return gf.Pow(x, 3) })
	inv, err := vybiumvbf.Analyze(cube.Values(), gf.Polynomial(), nil)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if inv.KToOne != 3 || !inv.CanonicalTriplicate {
		t.Fatalf("x^3 should be canonical 3-to-1, got k=%d triplicate=%v", inv.KToOne, inv.CanonicalTriplicate)
	}
	t.Logf("  DU=%d degree=%d", inv.DifferentialUniformity, inv.AlgebraicDegree)

	t.Log("Step 2: Storing x^3...")
	db, err := store.OpenMem()
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()
	rec := store.NewRecord("x^3", cube)
	rec.Invariants = inv
	if _, err := db.Put(rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	t.Log("Step 3: Disguising x^3...")
	tr := utils.NewTranscript([]byte("integration"))
	a := vbf.LinearMap(tr.ReceiveInvertibleMatrix(6))
	disguised, err := cube.Compose(vbf.MulMap(gf, tr.ReceiveNonzero(gf.Size())), a)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if disguised.Equal(cube) {
		t.Fatal("disguised function should differ from x^3")
	}

	t.Log("Step 4: Matching against the store...")
	runner, err := batch.NewRunner(utils.DefaultConfig())
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	records, err := db.List(6)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	matches, err := runner.Match(ctx, disguised, nil, records)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(matches) != 1 || !matches[0].Equivalent {
		t.Fatalf("expected one equivalent match, got %+v", matches)
	}
	t.Logf("  ✓ Matched %s after %d nodes", matches[0].Record.Name, matches[0].Result.Nodes)

	t.Log("Step 5: Confirming through the public API...")
	res, err := vybiumvbf.CheckLinearEquivalence(ctx, cube.Values(), disguised.Values(), gf.Polynomial(), nil)
	if err != nil {
		t.Fatalf("CheckLinearEquivalence failed: %v", err)
	}
	if !res.Equivalent {
		t.Fatal("x^3 and its disguise should be equivalent")
	}
	for x := uint32(0); x < gf.Size(); x++ {
		if disguised.At(res.L1.Apply(x)) != res.L2.Apply(cube.At(x)) {
			t.Fatalf("witness fails at x=%d", x)
		}
	}
	t.Log("  ✓ Witness verified")
}
