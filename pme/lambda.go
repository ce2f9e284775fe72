// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

// ScaleForLambda returns a copy of atoms with every Soft-flagged atom's
// permanent multipole moment scaled by lambda and polarizability scaled
// by lambda^2 (spec.md §4.8, alchemical softcore electrostatics); atoms
// with Soft==false pass through unscaled. At lambda=0 every soft atom
// carries no permanent charge and is not polarizable — full electrostatics
// with all soft atoms removed (spec.md §8, "Lambda endpoints") — and at
// lambda=1 every atom is at the unscaled force field. Scaling the
// polarizability quadratically keeps the induced-dipole self-energy term,
// which is itself quadratic in the field, continuous as lambda sweeps
// across 0 and 1 (spec.md §8, continuity testable property).
func ScaleForLambda(atoms Atoms, lambda float64) Atoms {
	if lambda == 1.0 {
		return atoms
	}
	out := make(Atoms, len(atoms))
	copy(out, atoms)
	l2 := lambda * lambda
	for i := range out {
		if !out[i].Soft {
			continue
		}
		var m LocalMultipole
		for j := range m {
			m[j] = out[i].Local[j] * lambda
		}
		out[i].Local = m
		out[i].Polarizability = out[i].Polarizability * l2
	}
	return out
}
