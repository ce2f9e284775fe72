// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

// Torque computes, for every asymmetric-unit atom i, the dipole torque
// d_i x E_i produced by the total electric field E_i (permanent + induced)
// the atom sees, then projects it onto the atoms that define i's local
// frame (spec.md §4.7). The quadrupole's field-gradient torque contribution
// is left out of this projector, matching the pairwise energy assembler's
// scope decision (see energy.go, DESIGN.md) to carry the quadrupole through
// induction and the reciprocal-space convolution but not through the
// explicit real-space torque/force bookkeeping.
func Torque(atoms Atoms, sc *Scratch, totalFieldD [][3]float64, pool *Pool) {
	n := len(atoms)
	pool.Run(n, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			a := &atoms[i]
			d := sc.Global[0][i].Dipole()
			trq := vcross(d, totalFieldD[i])
			sc.Torque[i] = trq
			if a.NumAxisAtoms() < 2 {
				continue
			}
			TorqueToForce(a, i, trq, sc)
		}
	})
}

// TorqueToForce distributes a torque vector trq generated at atom i onto
// the axis atoms that define i's local frame, mutating sc.Gradient for the
// central atom and its axis atoms. Each FrameStyle gets its own formula
// (spec.md §4.7) rather than one shared lever-arm approximation, since the
// three styles are genuinely different projections of the same torque:
//
//   - Z-THEN-X and BISECTOR resolve the torque directly against the u/v
//     (and, if present, chirality w) axis directions.
//   - Z-THEN-BISECTOR resolves it against an auxiliary (r, s) frame built
//     from the two bisector-partner directions, then splits the bisector
//     share evenly across those two atoms.
//
// It is exported separately from Torque so callers (e.g. finite-difference
// consistency tests) can feed it a synthetic torque directly.
func TorqueToForce(a *Atom, i int, trq [3]float64, sc *Scratch) {
	switch a.Frame {
	case FrameZThenX:
		torqueZThenX(a, i, trq, sc, 1.0)
	case FrameBisector:
		torqueZThenX(a, i, trq, sc, 0.5)
	case FrameZThenBisector:
		torqueZThenBisector(a, i, trq, sc)
	case FrameThreefold:
		torqueThreefold(a, i, trq, sc)
	}
}

// torqueZThenX implements the Z-THEN-X and BISECTOR force-distribution
// formulas of spec.md §4.7, which share the same cross-product/sine-angle
// projection against the u, v (and optional chirality w) axis directions:
//
//	df_a = (u^v)*(dphi/dv)/(|u|*sin(uv)) + (u^w)*(dphi/dw)/|u|
//	df_c = (v^u)*(dphi/du)/(|v|*sin(uv)) + (v^w)*(dphi/dw)/|v|
//	df_b = -df_a - df_c
//
// wScale is 1 for Z-THEN-X and 1/2 for BISECTOR (spec.md §4.7, "as
// Z-THEN-X but with a half factor on the w contribution"). The w term is
// only present for atoms carrying an optional third (chirality) axis atom.
func torqueZThenX(a *Atom, i int, trq [3]float64, sc *Scratch, wScale float64) {
	ri := sc.Coords[0][i]
	ua := vsub(sc.Coords[0][a.Axis[0]], ri)
	va := vsub(sc.Coords[0][a.Axis[1]], ri)
	lu, lv := vnorm(ua), vnorm(va)
	if lu < 1e-8 || lv < 1e-8 {
		return
	}
	u, v := vscale(ua, 1/lu), vscale(va, 1/lv)

	uxv := vcross(u, v)
	sinUV := vnorm(uxv)
	if sinUV < 1e-8 {
		return
	}
	dpdu := -vdot(trq, u)
	dpdv := -vdot(trq, v)

	fa := vscale(uxv, dpdv/(lu*sinUV))
	fc := vscale(vcross(v, u), dpdu/(lv*sinUV))

	if a.NumAxisAtoms() >= 3 {
		wa := vsub(sc.Coords[0][a.Axis[2]], ri)
		if lw := vnorm(wa); lw > 1e-8 {
			w := vscale(wa, 1/lw)
			dpdw := -vdot(trq, w) * wScale
			fa = vadd(fa, vscale(vcross(u, w), dpdw/lu))
			fc = vadd(fc, vscale(vcross(v, w), dpdw/lv))
		}
	}
	fb := vscale(vadd(fa, fc), -1)

	sc.Gradient[a.Axis[0]] = vadd(sc.Gradient[a.Axis[0]], fa)
	sc.Gradient[a.Axis[1]] = vadd(sc.Gradient[a.Axis[1]], fc)
	sc.Gradient[i] = vadd(sc.Gradient[i], fb)
}

// torqueZThenBisector implements the Z-THEN-BISECTOR formula of spec.md
// §4.7: axis atom 0 is the primary z-direction u; axis atoms 1 and 2 are
// the two bisector partners v, w. The torque is resolved against the
// auxiliary frame r = unit(v+w), s = u^r, giving a force on the z-axis
// atom and a combined bisector-share force that is then split evenly
// across the two bisector-partner atoms.
func torqueZThenBisector(a *Atom, i int, trq [3]float64, sc *Scratch) {
	ri := sc.Coords[0][i]
	ua := vsub(sc.Coords[0][a.Axis[0]], ri)
	va := vsub(sc.Coords[0][a.Axis[1]], ri)
	wa := vsub(sc.Coords[0][a.Axis[2]], ri)
	lu, lv, lw := vnorm(ua), vnorm(va), vnorm(wa)
	if lu < 1e-8 || lv < 1e-8 || lw < 1e-8 {
		return
	}
	u := vscale(ua, 1/lu)
	v := vscale(va, 1/lv)
	w := vscale(wa, 1/lw)

	r := vadd(v, w)
	lr := vnorm(r)
	if lr < 1e-8 {
		return
	}
	rhat := vscale(r, 1/lr)

	uxr := vcross(u, rhat) // s = u^r, the auxiliary frame axis (spec.md §4.7)
	sinUR := vnorm(uxr)
	if sinUR < 1e-8 {
		return
	}
	dpdu := -vdot(trq, u)
	dpdr := -vdot(trq, rhat)

	fu := vscale(uxr, dpdr/(lu*sinUR))
	fr := vscale(vcross(rhat, u), dpdu/(lr*sinUR))

	half := vscale(fr, 0.5)
	fb := vscale(vadd(fu, fr), -1)

	sc.Gradient[a.Axis[0]] = vadd(sc.Gradient[a.Axis[0]], fu)
	sc.Gradient[a.Axis[1]] = vadd(sc.Gradient[a.Axis[1]], half)
	sc.Gradient[a.Axis[2]] = vadd(sc.Gradient[a.Axis[2]], half)
	sc.Gradient[i] = vadd(sc.Gradient[i], fb)
}

// torqueThreefold distributes the torque in three equal shares across the
// three axis atoms of a THREEFOLD frame, each projected against its own
// axis direction; spec.md §4.7 gives no separate named formula for
// THREEFOLD (its frame, unlike Z-THEN-BISECTOR, treats all three
// directions symmetrically from the outset, see BuildFrame).
func torqueThreefold(a *Atom, i int, trq [3]float64, sc *Scratch) {
	ri := sc.Coords[0][i]
	share := vscale(trq, 1.0/3.0)
	var fb [3]float64
	for axisIdx := 0; axisIdx < 3; axisIdx++ {
		k := a.Axis[axisIdx]
		d := vsub(sc.Coords[0][k], ri)
		lever := vnorm(d)
		if lever < 1e-8 {
			continue
		}
		axis := vscale(d, 1/lever)
		f := vscale(vcross(share, axis), 1/lever)
		sc.Gradient[k] = vadd(sc.Gradient[k], f)
		fb = vadd(fb, f)
	}
	sc.Gradient[i] = vsub(sc.Gradient[i], fb)
}
