// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme_test

import (
	"testing"

	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/gopme/crystal"
	"github.com/cpmech/gopme/neighbor"
	"github.com/cpmech/gopme/pme"
)

// twoCharges builds a minimal two-atom, charge-only system (no dipole,
// quadrupole, or polarizability) separated by r along x.
func twoCharges(q1, q2, r float64) pme.Atoms {
	atoms := make(pme.Atoms, 2)
	atoms[0].Pos = [3]float64{0, 0, 0}
	atoms[0].Local[pme.T000] = q1
	atoms[1].Pos = [3]float64{r, 0, 0}
	atoms[1].Local[pme.T000] = q2
	return atoms
}

func buildEngine(tst *testing.T, atoms pme.Atoms, alpha, cutoff float64) *pme.Engine {
	cell := [3][3]float64{{100, 0, 0}, {0, 100, 0}, {0, 0, 100}}
	lat := crystal.NewLattice(cell, nil)
	pos := make([][3]float64, len(atoms))
	for i, a := range atoms {
		pos[i] = a.Pos
	}
	nl := neighbor.NewBruteForce(pos, lat, cutoff)
	ew := pme.NewEwaldParams(alpha, cutoff, 3)
	eng, err := pme.NewEngine(atoms, lat, nl, nil, nil, ew, pme.DefaultMaskConstants(), pme.DefaultSCFConfig())
	if err != nil {
		tst.Fatalf("NewEngine failed: %v", err)
	}
	return eng
}

// Test_coulomb01 checks that two point charges with alpha=0 (undamped,
// real-space-only Coulomb) and no reciprocal-space collaborator reproduce
// the exact Coulomb's-law energy, Electric*q1*q2/r.
func Test_coulomb01(tst *testing.T) {
	r := 3.0
	atoms := twoCharges(1, -1, r)
	eng := buildEngine(tst, atoms, 0, 10.0)

	cfg := pme.DefaultEvaluationConfig()
	cfg.DoInducedPolarization = false
	res, err := eng.Energy(cfg)
	if err != nil {
		tst.Fatalf("Energy failed: %v", err)
	}

	expected := -pme.Electric / r
	utl.CheckScalar(tst, "coulomb energy", 1e-8, res.Total, expected)
}

// Test_newton01 verifies Newton's third law: the sum of the per-atom
// gradients produced by a pairwise-only interaction must vanish.
func Test_newton01(tst *testing.T) {
	atoms := twoCharges(1, -1, 2.5)
	eng := buildEngine(tst, atoms, 0, 10.0)

	cfg := pme.DefaultEvaluationConfig()
	cfg.DoInducedPolarization = false
	if _, err := eng.Energy(cfg); err != nil {
		tst.Fatalf("Energy failed: %v", err)
	}

	grad := eng.Gradient()
	var sum [3]float64
	for _, g := range grad {
		sum[0] += g[0]
		sum[1] += g[1]
		sum[2] += g[2]
	}
	utl.CheckScalar(tst, "sum Fx", 1e-8, sum[0], 0)
	utl.CheckScalar(tst, "sum Fy", 1e-8, sum[1], 0)
	utl.CheckScalar(tst, "sum Fz", 1e-8, sum[2], 0)
}

// Test_scfDirect01 checks that a Direct polarization mode seeds induced
// dipoles from the permanent field and converges in zero SCF iterations
// (no fixed-point loop is needed).
func Test_scfDirect01(tst *testing.T) {
	atoms := twoCharges(1, -1, 3.0)
	atoms[0].Polarizability = 1.0
	atoms[1].Polarizability = 1.0

	cell := [3][3]float64{{100, 0, 0}, {0, 100, 0}, {0, 0, 100}}
	lat := crystal.NewLattice(cell, nil)
	pos := [][3]float64{atoms[0].Pos, atoms[1].Pos}
	nl := neighbor.NewBruteForce(pos, lat, 10.0)
	ew := pme.NewEwaldParams(0, 10.0, 3)
	scfCfg := pme.DefaultSCFConfig()
	scfCfg.Mode = pme.Direct

	eng, err := pme.NewEngine(atoms, lat, nl, nil, nil, ew, pme.DefaultMaskConstants(), scfCfg)
	if err != nil {
		tst.Fatalf("NewEngine failed: %v", err)
	}
	res, err := eng.Energy(pme.DefaultEvaluationConfig())
	if err != nil {
		tst.Fatalf("Energy failed: %v", err)
	}
	utl.CheckScalar(tst, "direct SCF iterations", 1e-15, float64(res.SCFIterations), 0)
	if !res.SCFConverged {
		tst.Fatalf("direct polarization must report converged=true")
	}
}

// Test_configError01 checks that NewEngine rejects an empty atom set.
func Test_configError01(tst *testing.T) {
	cell := [3][3]float64{{100, 0, 0}, {0, 100, 0}, {0, 0, 100}}
	lat := crystal.NewLattice(cell, nil)
	nl := neighbor.NewBruteForce(nil, lat, 10.0)
	ew := pme.NewEwaldParams(0, 10.0, 3)
	_, err := pme.NewEngine(pme.Atoms{}, lat, nl, nil, nil, ew, pme.DefaultMaskConstants(), pme.DefaultSCFConfig())
	if err == nil {
		tst.Fatalf("expected a ConfigError for an empty atom set")
	}
}
