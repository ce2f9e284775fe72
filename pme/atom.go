// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

// FrameStyle is the tagged variant for local-frame construction (spec.md
// §4.1). A tagged enum is used instead of polymorphic dispatch per the
// re-architecture guidance in spec.md §9: the rotator and torque projector
// switch on this tag directly.
type FrameStyle int

const (
	FrameNone FrameStyle = iota
	FrameZThenX
	FrameBisector
	FrameZThenBisector
	FrameThreefold
)

func (s FrameStyle) String() string {
	switch s {
	case FrameZThenX:
		return "Z-THEN-X"
	case FrameBisector:
		return "BISECTOR"
	case FrameZThenBisector:
		return "Z-THEN-BISECTOR"
	case FrameThreefold:
		return "THREEFOLD"
	default:
		return "NONE"
	}
}

// LocalMultipole holds the local-frame permanent multipole parameters of
// one atom, as parsed from the force-field file: charge, dipole, and the
// symmetric traceless quadrupole packed the same way as Multipole.
type LocalMultipole Multipole

// Atom holds the per-atom static data that is read-only across an energy
// call (spec.md §3). Atoms are owned by the caller and referenced by
// index throughout the engine; Atom itself carries no mutable state.
type Atom struct {
	Pos [3]float64 // asymmetric-unit position

	Local LocalMultipole // local-frame permanent multipole
	Frame FrameStyle     // local-frame construction rule
	Axis  [3]int         // axis-atom indices, -1 if unused; len given by Frame

	Polarizability float64 // alpha[i], Å^3
	PDamp          float64 // Thole width
	PThole         float64 // Thole damping coefficient (pt[i])

	// Soft marks an atom as alchemically softened: only Soft atoms are
	// touched by ScaleForLambda (spec.md §4.8). Atoms with Soft==false are
	// always evaluated at full strength regardless of Lambda.
	Soft bool

	// Polarization-group membership: 1-2/1-3 partners-of-group, used to
	// derive temporary p-mask/d-mask overrides while processing this atom.
	IP11 []int // atoms in the same polarization group
	IP12 []int // 1-2 partners of the group
	IP13 []int // 1-3 partners of the group

	// Covalent topology, used for masking during the asymmetric-unit pass.
	Conn12 []int
	Conn13 []int
	Conn14 []int
	Conn15 []int
}

// NumAxisAtoms reports how many axis atoms are actually referenced by this
// atom's frame (0, 1, 2, or 3); frames with fewer than 2 contribute no
// torque force (spec.md §4.7).
func (a *Atom) NumAxisAtoms() int {
	n := 0
	for _, ax := range a.Axis {
		if ax >= 0 {
			n++
		}
	}
	return n
}

// Atoms is the read-only, per-simulation atom array the Engine is built
// from. It is never mutated during an energy call.
type Atoms []Atom

// validate checks the configuration-error class of spec.md §7 that can be
// seen in the atom array: an empty atom set, a negative polarizability, and
// structural axis-atom problems. A multipole or polarizability left at zero
// is accepted as given; it is not distinguishable from a missing parameter.
func (atoms Atoms) validate() error {
	n := len(atoms)
	if n < 1 {
		return &ConfigError{Msg: "gopme: need at least one atom, got 0", Atom: -1}
	}
	for i := range atoms {
		a := &atoms[i]
		if a.Polarizability < 0 {
			return &ConfigError{Msg: "gopme: atom has negative polarizability", Atom: i}
		}
		need := 0
		switch a.Frame {
		case FrameZThenX:
			need = 2
		case FrameBisector:
			need = 2
		case FrameZThenBisector:
			need = 3
		case FrameThreefold:
			need = 3
		case FrameNone:
			need = 0
		}
		if a.NumAxisAtoms() < need {
			return &ConfigError{Msg: "gopme: frame style requires more axis atoms than supplied", Atom: i}
		}
		for _, ax := range a.Axis[:need] {
			if ax < 0 || ax >= n || ax == i {
				return &ConfigError{Msg: "gopme: axis atom index out of range", Atom: i}
			}
		}
	}
	return nil
}
