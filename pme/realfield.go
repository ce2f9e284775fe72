// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

import (
	"math"
	"sync/atomic"
)

// RealField is the Real-Space Permanent Field Evaluator (spec.md §4.3). For
// every asymmetric-unit atom i it accumulates the electric field produced by
// every other atom's permanent multipole within the Ewald real-space cutoff,
// across every symmetry image, into two variants:
//
//   - FieldD: the "d-masked" field, used to seed/drive induction, with the
//     bonded m12..m15 exclusion scale applied at image 0.
//   - FieldP: the "p-masked" field, used for the polarization-group
//     bookkeeping the SCF solver needs to avoid double-counting a dipole's
//     own group, with the p12/p13 (plus 1-4-of-group) exclusion applied at
//     image 0.
//
// Masks only apply within image 0 (the asymmetric unit's own bonded
// topology); a neighbor reached through a symmetry image is always a
// distinct periodic copy and is never bonded to the central atom (spec.md
// §4.3). A self-image pair (i==k, s>0) is scaled by SelfScale so that the
// atom's own symmetry-equivalent copies contribute at half weight, matching
// the convention used to halve self-energy double counting.
//
// Thole damping (spec.md §4.3) also applies here, the same way it applies
// to InducedField (see thole.go): the bn1/bn2/bn3 scalars are replaced by
// their short-range-corrected forms bn1 - (1-scale3)/r^3, bn2 -
// 3*(1-scale5)/r^5, bn3 - 15*(1-scale7)/r^7 before the field contraction,
// so the permanent field that seeds induction is damped exactly like the
// induced field it drives.
func RealField(atoms Atoms, sc *Scratch, nl NeighborLists, ew *EwaldParams, mc MaskConstants, pool *Pool) {
	n := len(atoms)
	masks := make([]*maskState, pool.N)
	for w := range masks {
		masks[w] = newMaskState(n)
	}
	pool.Run(n, func(workerID, lo, hi int) {
		ms := masks[workerID]
		for i := lo; i < hi; i++ {
			a := &atoms[i]
			ms.apply(a, mc)

			ri := sc.Coords[0][i]
			var ed, ep [3]float64
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
					bn := ew.bnSeries(r, r2, 3)

					kAtom := &atoms[k]
					sc3, sc5, sc7 := tholeScales(r, a.PDamp, kAtom.PDamp, a.PThole, kAtom.PThole)
					r3 := r2 * r
					bnD := [4]float64{
						bn[0],
						bn[1] - (1-sc3)/r3,
						bn[2] - 3*(1-sc5)/(r3*r2),
						bn[3] - 15*(1-sc7)/(r3*r2*r2),
					}
					e := multipoleField(dr, bnD[:], sc.Global[s][k])

					dScale, pScale := 1.0, 1.0
					if s == 0 {
						dScale = m14Scale(a, k, mc)
						pScale = ms.pmask[k]
					}
					ed = vadd(ed, vscale(e, scale*dScale))
					ep = vadd(ep, vscale(e, scale*pScale))
					count++
				}
			}
			sc.FieldD[i] = ed
			sc.FieldP[i] = ep
			atomic.AddInt64(&sc.Interactions, count)
			ms.revert()
		}
	})
}

// multipoleField evaluates the electric field at the origin of dr = r_i -
// r_k due to the global-frame multipole mk sitting at r_k, using the
// damped interaction-tensor scalars bn[1..3] (bn[0] is the potential term
// and unused here). Derived from the standard Cartesian multipole field
// expansion: E = q*bn1*dr - bn1*d + 2*bn2*(Q·dr) + bn2*(dr·d)*dr -
// bn3*(dr·Q·dr)*dr, with Q already carrying the traceless-quadrupole
// packing convention of Multipole.QuadMatrix.
func multipoleField(dr [3]float64, bn []float64, mk Multipole) [3]float64 {
	q := mk[T000]
	d := mk.Dipole()
	Q := mk.QuadMatrix()

	rd := vdot(dr, d)
	Qr := mat3Vec(Q, dr)
	rQr := vdot(dr, Qr)

	coeff := q*bn[1] + bn[2]*rd - bn[3]*rQr
	e := vscale(dr, coeff)
	e = vsub(e, vscale(d, bn[1]))
	e = vadd(e, vscale(Qr, 2*bn[2]))
	return e
}

// mat3Vec multiplies a symmetric 3x3 matrix by a 3-vector.
func mat3Vec(m [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}
