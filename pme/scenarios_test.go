// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme_test

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/gopme/crystal"
	"github.com/cpmech/gopme/neighbor"
	"github.com/cpmech/gopme/pme"
)

// Test_selfEnergy01 is spec.md §8 scenario S1/S2: a lone ion has no
// neighbor to interact with, so its total energy is exactly the permanent
// Ewald self-energy term, -(alpha/sqrt(pi)) * Electric * q^2.
func Test_selfEnergy01(tst *testing.T) {
	atoms := make(pme.Atoms, 1)
	atoms[0].Pos = [3]float64{0, 0, 0}
	atoms[0].Local[pme.T000] = 1.0

	alpha := 0.54
	eng := buildEngine(tst, atoms, alpha, 9.0)

	cfg := pme.DefaultEvaluationConfig()
	cfg.DoInducedPolarization = false
	res, err := eng.Energy(cfg)
	if err != nil {
		tst.Fatalf("Energy failed: %v", err)
	}

	expected := -(alpha / math.Sqrt(math.Pi)) * pme.Electric
	utl.CheckScalar(tst, "ion self-energy", 1e-6, res.Total, expected)
}

// Test_maskedPair01 is the regression for review item 2: a covalently
// bonded 1-2 pair must be fully masked out of the real-space energy under
// the default mask constants (M12=0), leaving nothing but the (here zero,
// since alpha=0) self-energy term.
func Test_maskedPair01(tst *testing.T) {
	atoms := twoCharges(1, -1, 1.5)
	atoms[0].Conn12 = []int{1}
	atoms[1].Conn12 = []int{0}

	eng := buildEngine(tst, atoms, 0, 10.0)
	cfg := pme.DefaultEvaluationConfig()
	cfg.DoInducedPolarization = false
	res, err := eng.Energy(cfg)
	if err != nil {
		tst.Fatalf("Energy failed: %v", err)
	}
	utl.CheckScalar(tst, "masked 1-2 pair energy", 1e-10, res.Total, 0)
}

// Test_lambdaDerivative01 is spec.md §8's lambda-continuity scenario,
// checked against an exact closed form rather than a numeric sweep: with
// both atoms Soft and alpha=0, ScaleForLambda scales each charge linearly
// in lambda, so U(lambda) = lambda^2 * E1 where E1 is the unscaled
// (lambda=1) Coulomb energy. That makes dU/dlambda = 2*lambda*E1 and
// d2U/dlambda2 = 2*E1 exact identities, independent of the finite-
// difference step used internally.
func Test_lambdaDerivative01(tst *testing.T) {
	atoms := twoCharges(1, -1, 3.0)
	atoms[0].Soft = true
	atoms[1].Soft = true
	eng := buildEngine(tst, atoms, 0, 10.0)

	full := pme.DefaultEvaluationConfig()
	full.DoInducedPolarization = false
	e1Res, err := eng.Energy(full)
	if err != nil {
		tst.Fatalf("Energy (lambda=1 reference) failed: %v", err)
	}
	e1 := e1Res.Total

	cfg := pme.DefaultEvaluationConfig()
	cfg.DoInducedPolarization = false
	cfg.LambdaActive = true
	cfg.Lambda = 0.5
	res, err := eng.Energy(cfg)
	if err != nil {
		tst.Fatalf("Energy (lambda=0.5) failed: %v", err)
	}

	utl.CheckScalar(tst, "U(0.5)", 1e-6, res.Total, 0.25*e1)
	utl.CheckScalar(tst, "dU/dlambda(0.5)", 1e-4, res.DUDLambda, e1)
	utl.CheckScalar(tst, "d2U/dlambda2(0.5)", 1e-4, res.D2UDLambda2, 2*e1)
}

// Test_lambdaEndpoint01 checks the lambda=0 endpoint named in spec.md §8:
// a Soft atom pair contributes no permanent electrostatics once lambda
// scales its charge to zero.
func Test_lambdaEndpoint01(tst *testing.T) {
	atoms := twoCharges(1, -1, 3.0)
	atoms[0].Soft = true
	atoms[1].Soft = true
	eng := buildEngine(tst, atoms, 0, 10.0)

	cfg := pme.DefaultEvaluationConfig()
	cfg.DoInducedPolarization = false
	cfg.LambdaActive = true
	cfg.Lambda = 0.0
	res, err := eng.Energy(cfg)
	if err != nil {
		tst.Fatalf("Energy (lambda=0) failed: %v", err)
	}
	utl.CheckScalar(tst, "U(0)", 1e-10, res.Total, 0)
}

// Test_scfMutualConverges01 is spec.md §8's S3 scenario: a Mutual-mode SCF
// solve on a simple polarizable pair converges within a modest number of
// iterations and reports converged=true.
func Test_scfMutualConverges01(tst *testing.T) {
	atoms := twoCharges(1, -1, 3.0)
	atoms[0].Polarizability = 1.0
	atoms[1].Polarizability = 1.0

	cell := [3][3]float64{{100, 0, 0}, {0, 100, 0}, {0, 0, 100}}
	lat := crystal.NewLattice(cell, nil)
	pos := [][3]float64{atoms[0].Pos, atoms[1].Pos}
	nl := neighbor.NewBruteForce(pos, lat, 10.0)
	ew := pme.NewEwaldParams(0, 10.0, 3)
	scfCfg := pme.DefaultSCFConfig()
	scfCfg.Mode = pme.Mutual

	eng, err := pme.NewEngine(atoms, lat, nl, nil, nil, ew, pme.DefaultMaskConstants(), scfCfg)
	if err != nil {
		tst.Fatalf("NewEngine failed: %v", err)
	}
	res, err := eng.Energy(pme.DefaultEvaluationConfig())
	if err != nil {
		tst.Fatalf("Energy failed: %v", err)
	}
	if !res.SCFConverged {
		tst.Fatalf("mutual SCF must converge for this simple pair")
	}
	if res.SCFIterations < 1 || res.SCFIterations > 50 {
		tst.Fatalf("mutual SCF took an unexpected iteration count: %d", res.SCFIterations)
	}
}

// Test_torqueMirror01 is spec.md §8's S4 torque-projection scenario. The
// geometry is mirror-symmetric about the xz-plane (H1=(0.6,0.8,0),
// H2=(0.6,-0.8,0), both unit distance from the central atom) and the probe
// torque (1,0,0) lies in that mirror plane. For this geometry dp/du =
// dp/dv exactly (both axis directions share the same x-projection of the
// torque), so the Z-THEN-X force split produces equal-and-opposite forces
// on the two axis atoms, pointed along u^v (the global z-axis, normal to
// the H-O-H plane), with zero net reaction on the central atom.
func Test_torqueMirror01(tst *testing.T) {
	atoms := make(pme.Atoms, 3)
	atoms[0].Pos = [3]float64{0, 0, 0}
	atoms[0].Frame = pme.FrameZThenX
	atoms[0].Axis = [3]int{1, 2, -1}
	atoms[1].Pos = [3]float64{0.6, 0.8, 0}
	atoms[2].Pos = [3]float64{0.6, -0.8, 0}

	sc := pme.NewScratch(3, 1)
	sc.Coords[0][0] = atoms[0].Pos
	sc.Coords[0][1] = atoms[1].Pos
	sc.Coords[0][2] = atoms[2].Pos

	trq := [3]float64{1, 0, 0}
	pme.TorqueToForce(&atoms[0], 0, trq, sc)

	f1 := sc.Gradient[1]
	f2 := sc.Gradient[2]
	f0 := sc.Gradient[0]

	utl.CheckScalar(tst, "f1.x + f2.x", 1e-8, f1[0]+f2[0], 0)
	utl.CheckScalar(tst, "f1.y + f2.y", 1e-8, f1[1]+f2[1], 0)
	utl.CheckScalar(tst, "f1.z + f2.z", 1e-8, f1[2]+f2[2], 0)
	utl.CheckScalar(tst, "f1.x (in-plane component)", 1e-8, f1[0], 0)
	utl.CheckScalar(tst, "f1.y (in-plane component)", 1e-8, f1[1], 0)
	if math.Abs(f1[2]) < 1e-6 {
		tst.Fatalf("expected a nonzero out-of-plane force, got f1=%v", f1)
	}
	utl.CheckScalar(tst, "oxygen reaction Fx", 1e-8, f0[0], 0)
	utl.CheckScalar(tst, "oxygen reaction Fy", 1e-8, f0[1], 0)
	utl.CheckScalar(tst, "oxygen reaction Fz", 1e-8, f0[2], 0)
}
