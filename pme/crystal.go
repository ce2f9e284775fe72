// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

// Crystal is the external collaborator providing crystal/space-group
// geometry primitives (spec.md §6). Its implementation — general triclinic
// cells, arbitrary space groups, minimum-image conventions — is
// deliberately out of scope for this engine (spec.md §1); gopme depends
// only on this interface. See package crystal for a dependency-free
// reference implementation used by the test suite.
type Crystal interface {
	// NumImages returns the number of symmetry images S, including the
	// identity image 0 (the asymmetric unit itself).
	NumImages() int

	// Image maps a displacement vector into its minimum-image equivalent,
	// mutating v in place, and returns the squared length |v|².
	Image(v *[3]float64) float64

	// ApplySymOp maps an asymmetric-unit coordinate into image s.
	ApplySymOp(s int, v [3]float64) [3]float64

	// ApplySymRotation applies only the rotational part of image s's
	// symmetry operator (no translation), used to rotate dipoles,
	// quadrupoles, and symmetry-mate gradients.
	ApplySymRotation(s int, v [3]float64) [3]float64

	// Reciprocal returns the reciprocal lattice matrix (rows are
	// reciprocal lattice vectors b1,b2,b3).
	Reciprocal() [3][3]float64
}

// NeighborLists indexes, for each symmetry image and atom, the ordered
// list of neighbor atom indices within the real-space cutoff (spec.md
// §6). Construction is out of scope for this engine; gopme only consumes
// this three-dimensional indexing. See package neighbor for a
// dependency-free brute-force reference implementation.
type NeighborLists interface {
	// Neighbors returns atom's ordered neighbor list within the given
	// symmetry image.
	Neighbors(image, atom int) []int
}
