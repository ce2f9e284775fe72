// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

// Named indices into the length-10 global multipole tuple
// {c, dx, dy, dz, Qxx, Qyy, Qzz, Qxy, Qxz, Qyz}. Kept as compile-time
// constants so hot-path contractions can be written as unrolled dot
// products instead of looping over symbolic names.
const (
	T000 = iota // charge
	T100        // dipole x
	T010        // dipole y
	T001        // dipole z
	T200        // quadrupole xx
	T020        // quadrupole yy
	T002        // quadrupole zz
	T110        // quadrupole xy
	T101        // quadrupole xz
	T011        // quadrupole yz
	NMpole = 10
)

// Multipole is the length-10 global-frame tuple of one atom in one
// symmetry image: charge, dipole (3), traceless symmetric quadrupole (6,
// packed diagonal-then-off-diagonal per T200..T011).
type Multipole [NMpole]float64

// Charge returns the monopole term.
func (m *Multipole) Charge() float64 { return m[T000] }

// Dipole returns the dipole vector.
func (m *Multipole) Dipole() [3]float64 {
	return [3]float64{m[T100], m[T010], m[T001]}
}

// QuadMatrix expands the packed quadrupole into a symmetric 3x3 matrix,
// with no scaling: the field evaluators and selfEnergy use the packed
// values exactly as stored, so any 1/3 convention is whatever the
// force-field values already carry.
func (m *Multipole) QuadMatrix() [3][3]float64 {
	return [3][3]float64{
		{m[T200], m[T110], m[T101]},
		{m[T110], m[T020], m[T011]},
		{m[T101], m[T011], m[T002]},
	}
}

// Trace returns Qxx+Qyy+Qzz, which must be ~0 for a valid traceless
// quadrupole (testable property 2 in spec.md §8).
func (m *Multipole) Trace() float64 {
	return m[T200] + m[T020] + m[T002]
}

// Phi is the length-20 truncated Taylor expansion of the electrostatic
// potential at an atom (the "phi tensor"), indexed by monomial power:
// t000=potential, t100..t001=gradient, t200..t011=Hessian diagonal/mixed,
// and ten third-derivative terms (T300..T111), which no code in this
// package reads. Only the first 10 are used by the permanent-energy
// contraction; the
// full 20 are kept so the reciprocal-space collaborator can hand back a
// single flat tensor per atom without forcing callers to special-case
// orders.
type Phi [20]float64

// Named indices for the third-derivative block of Phi, continuing the
// T-prefixed convention of the quadrupole block.
const (
	T300 = 10 + iota
	T030
	T003
	T210
	T201
	T120
	T021
	T102
	T012
	T111
)
