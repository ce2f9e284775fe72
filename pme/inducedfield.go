// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

import (
	"math"
	"sync/atomic"
)

// InducedField is the Induced Dipole Real-Space Field Evaluator (spec.md
// §4.4): the SCF loop's inner kernel. For every asymmetric-unit atom i it
// accumulates the field produced by every other atom's current induced
// dipole (MuD for the d-masked pass, MuP for the p-masked pass) within the
// real-space cutoff, Thole-damping the dipole field tensor at short range
// to avoid the polarization catastrophe (spec.md §4.3/§4.4).
//
// Unlike RealField, the d-mask/p-mask exclusion lists are not reapplied
// here: the SCF iteration already separates the d- and p-field channels by
// running this evaluator once against MuD and once against MuP, so the
// per-pair asymmetry lives in which dipole array is read, not in an
// additional scale factor.
func InducedField(atoms Atoms, sc *Scratch, nl NeighborLists, ew *EwaldParams, mu [][3]float64, out [][3]float64, pool *Pool) {
	n := len(atoms)
	pool.Run(n, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			a := &atoms[i]
			ri := sc.Coords[0][i]
			var e [3]float64
			var count int64

			for s := 0; s < sc.NumImages; s++ {
				for _, k := range nl.Neighbors(s, i) {
					if s == 0 && k == i {
						continue
					}
					scale := 1.0
					if s > 0 && k == i {
						scale = SelfScale
					}
					dr := vsub(ri, sc.Coords[s][k])
					r2 := vdot(dr, dr)
					if r2 > ew.Off2 || r2 < 1e-12 {
						continue
					}
					r := math.Sqrt(r2)
					bn := ew.bnSeries(r, r2, 2)

					kAtom := &atoms[k]
					sc3, sc5, _ := tholeScales(r, a.PDamp, kAtom.PDamp, a.PThole, kAtom.PThole)
					// The Thole-damped dipole field tensor replaces the bare
					// bn1/bn2 scalars with their short-range-corrected forms:
					// the damping only ever removes part of the singular
					// short-range divergence, so it subtracts from bn, never
					// adds (spec.md §4.3).
					bn1 := bn[1] - (1-sc3)/(r2*r)
					bn2 := bn[2] - 3*(1-sc5)/(r2*r2*r)

					d := mu[k]
					rd := vdot(dr, d)
					fi := vsub(vscale(dr, bn2*rd), vscale(d, bn1))

					e = vadd(e, vscale(fi, scale))
					count++
				}
			}
			out[i] = e
			atomic.AddInt64(&sc.Interactions, count)
		}
	})
}
