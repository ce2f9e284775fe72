// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

import (
	"testing"

	"github.com/cpmech/gosl/utl"
)

// Test_scfExtraSeed01 is the regression for review item 4: the Direct-mode
// seed must add extraD/extraP (the Ewald self-field and reciprocal
// permanent field the caller assembles) to the real-space field before
// scaling by polarizability, not just sc.FieldD/FieldP alone.
func Test_scfExtraSeed01(tst *testing.T) {
	atoms := make(Atoms, 1)
	atoms[0].Polarizability = 2.0

	sc := NewScratch(1, 1)
	// sc.FieldD/FieldP are left at zero, as if RealField found no neighbor.
	extraD := [][3]float64{{0, 0, 0.3}}
	extraP := [][3]float64{{0, 0, 0.3}}

	cfg := DefaultSCFConfig()
	cfg.Mode = Direct
	iters, converged, err := SCF(atoms, sc, nil, &EwaldParams{}, extraD, extraP, nil, cfg, nil, NewPool())
	if err != nil {
		tst.Fatalf("SCF failed: %v", err)
	}
	utl.CheckScalar(tst, "direct seed iterations", 1e-15, float64(iters), 0)
	if !converged {
		tst.Fatalf("direct mode must report converged=true")
	}

	expected := atoms[0].Polarizability * extraD[0][2]
	utl.CheckScalar(tst, "MuD.z seeded from extraD", 1e-12, sc.MuD[0][2], expected)
	utl.CheckScalar(tst, "MuP.z seeded from extraP", 1e-12, sc.MuP[0][2], expected)
}
