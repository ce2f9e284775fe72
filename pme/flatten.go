// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

// flattenCoords packs the asymmetric-unit positions into the flat layout
// reciprocal.Space expects. Crystallographic symmetry expansion of the
// reciprocal-space sum itself (spreading every symmetry mate, not just the
// asymmetric unit, onto the grid) is left to the production FFT
// implementation and out of scope here (spec.md §1); see DESIGN.md.
func flattenCoords(sc *Scratch) []float64 {
	out := make([]float64, 3*sc.NumAtoms)
	for i, c := range sc.Coords[0] {
		out[3*i], out[3*i+1], out[3*i+2] = c[0], c[1], c[2]
	}
	return out
}

func flattenMultipoles(sc *Scratch) []float64 {
	out := make([]float64, NMpole*sc.NumAtoms)
	for i, m := range sc.Global[0] {
		copy(out[NMpole*i:NMpole*i+NMpole], m[:])
	}
	return out
}

func flattenVec3(v [][3]float64) []float64 {
	out := make([]float64, 3*len(v))
	for i, x := range v {
		out[3*i], out[3*i+1], out[3*i+2] = x[0], x[1], x[2]
	}
	return out
}

// unflattenField extracts the gradient (T100,T010,T001) block of a flat
// 20-wide phi tensor array as a per-atom field, negated (E = -grad phi).
func unflattenField(phi []float64, n int) [][3]float64 {
	out := make([][3]float64, n)
	for i := 0; i < n; i++ {
		out[i] = [3]float64{-phi[20*i+1], -phi[20*i+2], -phi[20*i+3]}
	}
	return out
}

// contractPhi computes the permanent-multipole/phi-tensor energy
// contraction for one atom: charge*phi + dipole.grad(phi) +
// quadrupole:hessian(phi), with the standard factor of 2 on the symmetric
// off-diagonal quadrupole terms.
func contractPhi(m Multipole, phi Phi) float64 {
	e := m[T000] * phi[T000]
	e += m[T100]*phi[T100] + m[T010]*phi[T010] + m[T001]*phi[T001]
	e += m[T200]*phi[T200] + m[T020]*phi[T020] + m[T002]*phi[T002]
	e += 2 * (m[T110]*phi[T110] + m[T101]*phi[T101] + m[T011]*phi[T011])
	return e
}
