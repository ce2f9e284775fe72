// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

import "math"

// Energy is the permanent-multipole real-space Energy & Gradient Assembler
// (spec.md §4.6, permanent-permanent term). For every asymmetric-unit atom
// i, central in image 0, it visits every neighbor k across every symmetry
// image within cutoff and accumulates:
//
//   - the charge-charge, charge-dipole, and dipole-dipole pairwise
//     interaction energy (terms involving the quadrupole are not part of
//     this real-space pair energy; see DESIGN.md for the scoping rationale),
//   - the analytic gradient -dU/dr_i, from differentiating the bn
//     recursion (d bn[n]/d dr = -dr * bn[n+1]).
//
// Every unordered pair is visited exactly twice — once with each atom
// playing the central role — except a self-image pair (i==k, s>0), visited
// once and scaled by SelfScale, by the same convention RealField uses. A
// bonded pair reached at image 0 (1-2/1-3/1-4/1-5) is scaled down by the
// same m14Scale factor RealField applies to its d-masked field (spec.md
// §4.6, "{rr1..rr9} to give the 'already scaled' part to subtract"): this
// pairwise assembler does not need the full pmask/dmask machinery of
// maskState, since it only ever produces one (unsplit) energy/gradient
// channel, not the separate d-masked/p-masked pair RealField must keep
// apart for the SCF solver. A worker only ever writes Gradient[i] for the
// atom it owns: the force on atom k from this same interaction is
// assembled independently when k's own central-atom pass visits i in the
// conjugate image, so no cross-worker write ever occurs (spec.md §5).
func Energy(atoms Atoms, sc *Scratch, nl NeighborLists, ew *EwaldParams, mc MaskConstants, pool *Pool) float64 {
	n := len(atoms)
	partial := make([]float64, pool.N)

	pool.Run(n, func(workerID, lo, hi int) {
		var e float64
		for i := lo; i < hi; i++ {
			a := &atoms[i]
			mi := sc.Global[0][i]
			qi := mi[T000]
			di := mi.Dipole()
			ri := sc.Coords[0][i]
			var grad [3]float64

			for s := 0; s < sc.NumImages; s++ {
				for _, k := range nl.Neighbors(s, i) {
					if s == 0 && k == i {
						continue
					}
					scale := 1.0
					if s > 0 && k == i {
						scale = SelfScale
					}
					if s == 0 {
						scale *= m14Scale(a, k, mc)
					}
					dr := vsub(ri, sc.Coords[s][k])
					r2 := vdot(dr, dr)
					if r2 > ew.Off2 || r2 < 1e-12 {
						continue
					}
					r := math.Sqrt(r2)
					bn := ew.bnSeries(r, r2, 3)

					mk := sc.Global[s][k]
					qk := mk[T000]
					dk := mk.Dipole()

					didr := vdot(di, dr)
					dkdr := vdot(dk, dr)
					didk := vdot(di, dk)

					u := qi*qk*bn[0] + bn[1]*(qi*dkdr-qk*didr) - bn[2]*didr*dkdr + bn[1]*didk

					scalarCoeff := -bn[1]*qi*qk - qi*bn[2]*dkdr + qk*bn[2]*didr + bn[3]*didr*dkdr - bn[2]*didk
					vecTerm := vadd(vscale(dk, qi*bn[1]), vscale(di, -qk*bn[1]))
					vecTerm = vsub(vecTerm, vadd(vscale(di, bn[2]*dkdr), vscale(dk, bn[2]*didr)))
					dUddr := vadd(vscale(dr, scalarCoeff), vecTerm)

					e += scale * u
					grad = vsub(grad, vscale(dUddr, scale))
				}
			}
			sc.Gradient[i] = vadd(sc.Gradient[i], vscale(grad, Electric))
		}
		partial[workerID] += e
	})

	var total float64
	for _, p := range partial {
		total += p
	}
	return 0.5 * Electric * total
}

// selfEnergy is the permanent Ewald self-energy correction of spec.md
// §4.6: the energy of each atom's own Gaussian-smeared multipole
// interacting with itself under the Ewald real/reciprocal splitting. It
// is zero whenever alpha==0 (no Ewald splitting in effect).
//
//	Eself = -(alpha/sqrt(pi)) * Sum_i [c_i^2 + (2*alpha^2/3)*|d_i|^2 +
//	         (2*alpha^2/5)^2*(4/9)*|Q_i|^2]
func selfEnergy(atoms Atoms, sc *Scratch, ew *EwaldParams) float64 {
	if ew.Alpha == 0 {
		return 0
	}
	a2 := ew.Alpha * ew.Alpha
	quadCoeff := (2 * a2 / 5) * (2 * a2 / 5) * (4.0 / 9.0)
	var acc float64
	for i := range atoms {
		m := sc.Global[0][i]
		c := m[T000]
		d := m.Dipole()
		q := quadFrobeniusSq(m.QuadMatrix())
		acc += c*c + (2*a2/3)*vdot(d, d) + quadCoeff*q
	}
	return -(ew.Alpha / math.Sqrt(math.Pi)) * Electric * acc
}

// quadFrobeniusSq returns Sum_ab Q_ab^2, the rotation-invariant squared
// Frobenius norm of the quadrupole matrix used by selfEnergy.
func quadFrobeniusSq(q [3][3]float64) float64 {
	var s float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			s += q[r][c] * q[r][c]
		}
	}
	return s
}
