// Package vybiumvbf provides analysis of vectorial Boolean functions over GF(2^n).
//
// A vectorial Boolean function (VBF) F: GF(2^n) -> GF(2^n) is given by its
// truth table, the list F(0), F(1), ..., F(2^n - 1). Vybium VBF computes the
// invariants used to classify such functions up to equivalence and decides
// linear equivalence of canonical 3-to-1 functions.
//
// # Features
//
// - GF(2^n) arithmetic with log/antilog tables for n up to 24
// - Differential uniformity, APN test and k-to-1 detection
// - Ortho-derivative differential and Walsh spectra (ODDS, ODWS)
// - Algebraic normal form, algebraic degree and monomial detection
// - Canonical triplicate recognition
// - Linear equivalence search with witness maps
//
// # Quick Start
//
// Computing the invariants of x^3 over GF(2^4):
//
//	cube := []uint32{0, 1, 8, 15, 12, 10, 1, 1, 10, 15, 15, 12, 8, 10, 8, 12}
//	inv, err := vybiumvbf.Analyze(cube, 0, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(inv.APN, inv.KToOne) // true 3
//
// Deciding linear equivalence of two canonical 3-to-1 functions:
//
//	res, err := vybiumvbf.CheckLinearEquivalence(ctx, f, g, 0, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if res.Equivalent {
//		fmt.Println("G(L1 x) = L2(F x) with", res.L1, res.L2)
//	}
//
// # Errors
//
// All errors returned by this package are *VBFError values. Use CodeOf or
// errors.Is with a VBFError carrying the wanted code to classify them:
//
//	if vybiumvbf.CodeOf(err) == vybiumvbf.ErrCodeNotCanonicalTriplicate {
//		// the equivalence test does not apply
//	}
//
// # Architecture
//
// Vybium VBF uses a hybrid public/private architecture:
//
// - pkg/vybium-vbf/: Public API (this package)
// - internal/vybium-vbf/: Private implementation (not importable)
// - cmd/vybium-vbf/: Command line interface
//
// Implementation details in internal/ can be refactored without breaking the public API.
//
// # References
//
// - Kaleyski, Deciding EA-equivalence via invariants: https://doi.org/10.1007/s12095-021-00513-x
// - Budaghyan, Calderini, Carlet, Davidova, Kaleyski, On two fundamental problems on APN power functions
//
// # License
//
// See LICENSE file in the repository root.
package vybiumvbf
