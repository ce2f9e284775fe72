// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/gopme/crystal"
	"github.com/cpmech/gopme/ffio"
	"github.com/cpmech/gopme/neighbor"
	"github.com/cpmech/gopme/pme"
)

func main() {

	// catch errors
	utl.Tsilent = false
	defer func() {
		if mpi.Rank() == 0 {
			if err := recover(); err != nil {
				utl.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// message
	utl.PfWhite("\nGopme -- PME/AMOEBA polarizable multipole electrostatics\n\n")
	utl.Pf("Copyright 2024 The Gopme Authors. All rights reserved.\n")
	utl.Pf("Use of this source code is governed by a BSD-style\n")
	utl.Pf("license that can be found in the LICENSE file.\n\n")

	// force-field filename
	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		utl.Panic("Please, provide a force-field filename. Ex.: water32.ff.json\n")
	}

	// load and build
	ff, err := ffio.LoadForceField(fnamepath)
	if err != nil {
		utl.Panic("%v\n", err)
	}
	atoms, err := ff.BuildAtoms()
	if err != nil {
		utl.Panic("%v\n", err)
	}

	pos := make([][3]float64, len(atoms))
	for i, a := range atoms {
		pos[i] = a.Pos
	}
	lat := crystal.NewLattice(ff.Cell, nil)
	nl := neighbor.NewBruteForce(pos, lat, ff.CutOff)

	eng, err := pme.NewEngine(atoms, lat, nl, nil, nil, ff.EwaldParams(), ff.MaskConstants(), ff.SCFConfig())
	if err != nil {
		utl.Panic("%v\n", err)
	}

	result, err := eng.Energy(pme.DefaultEvaluationConfig())
	if err != nil {
		utl.Panic("%v\n", err)
	}

	utl.Pfgreen("Total energy       = %g kcal/mol\n", result.Total)
	utl.Pf("  permanent        = %g\n", result.Permanent)
	utl.Pf("  reciprocal       = %g\n", result.Reciprocal)
	utl.Pf("  polarization     = %g\n", result.Polarization)
	utl.Pf("  SCF iterations   = %d (converged=%v)\n", result.SCFIterations, result.SCFConverged)
	utl.Pf("  real-space pairs = %d\n", result.Interactions)
}
