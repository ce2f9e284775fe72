// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

// Scratch holds the per-energy-call state (spec.md §3, "Lifecycle"): the
// orchestrator exclusively owns these buffers (spec.md §5); worker threads
// only borrow slices of them for accumulation.
//
// Coords and Global are indexed [image][atom], since every symmetry image
// has its own expanded position and its own rotated multipole moment.
// Fields, induced dipoles, gradients, and torques are properties of the
// asymmetric unit only ([atom]): each asymmetric-unit atom accumulates
// contributions from every neighbor in every image, and its induced
// dipole is the single physical degree of freedom the SCF loop solves
// for. A symmetry mate's global-frame multipole is already rotated and
// stored per image in Global (see rotate.go); the real-space kernels
// never need a separate Crystal.ApplySymRotation call of their own, since
// every pair interaction is assembled from the central atom's own image-0
// perspective (see realfield.go, energy.go).
type Scratch struct {
	NumImages int
	NumAtoms  int

	Coords [][][3]float64 // [image][atom] expanded positions
	Global [][]Multipole  // [image][atom] global-frame multipoles
	Frame0 []Frame        // [atom] local frame in the asymmetric unit (image 0)

	FieldD [][3]float64 // [atom] d-masked permanent field E
	FieldP [][3]float64 // [atom] p-masked permanent field E' ("CR" field)

	MuD [][3]float64 // [atom] d-masked induced dipole
	MuP [][3]float64 // [atom] p-masked induced dipole

	MuDPrev [][3]float64 // previous SCF iterate, for the SOR update
	MuPPrev [][3]float64

	FieldInducedD [][3]float64 // [atom] induced-dipole field, d-masked
	FieldInducedP [][3]float64 // [atom] induced-dipole field, p-masked

	Gradient [][3]float64 // [atom] Cartesian force contribution (-dE/dr)
	Torque   [][3]float64 // [atom] torque about the local frame origin

	Interactions int64 // diagnostic pair-interaction counter (SPEC_FULL.md §9)
}

// NewScratch allocates a Scratch for the given atom count and number of
// symmetry images (>=1; index 0 is the asymmetric unit itself).
func NewScratch(numAtoms, numImages int) *Scratch {
	s := &Scratch{NumImages: numImages, NumAtoms: numAtoms}
	alloc3img := func() [][][3]float64 {
		out := make([][][3]float64, numImages)
		for i := range out {
			out[i] = make([][3]float64, numAtoms)
		}
		return out
	}
	alloc3 := func() [][3]float64 { return make([][3]float64, numAtoms) }

	s.Coords = alloc3img()
	s.Global = make([][]Multipole, numImages)
	for i := 0; i < numImages; i++ {
		s.Global[i] = make([]Multipole, numAtoms)
	}
	s.Frame0 = make([]Frame, numAtoms)

	s.FieldD = alloc3()
	s.FieldP = alloc3()
	s.MuD = alloc3()
	s.MuP = alloc3()
	s.MuDPrev = alloc3()
	s.MuPPrev = alloc3()
	s.FieldInducedD = alloc3()
	s.FieldInducedP = alloc3()
	s.Gradient = alloc3()
	s.Torque = alloc3()
	return s
}

// ResetFields zeroes the accumulators that must start fresh before each
// field pass (spec.md §3, §4.2).
func (s *Scratch) ResetFields() {
	zero3 := func(a [][3]float64) {
		for i := range a {
			a[i] = [3]float64{}
		}
	}
	zero3(s.FieldD)
	zero3(s.FieldP)
	zero3(s.FieldInducedD)
	zero3(s.FieldInducedP)
}

// ResetOutputs zeroes the gradient/torque/interaction accumulators.
func (s *Scratch) ResetOutputs() {
	for i := range s.Gradient {
		s.Gradient[i] = [3]float64{}
		s.Torque[i] = [3]float64{}
	}
	s.Interactions = 0
}

// ResetInduced zeroes the induced-dipole state, used once before seeding
// the direct dipoles.
func (s *Scratch) ResetInduced() {
	for i := range s.MuD {
		s.MuD[i] = [3]float64{}
		s.MuP[i] = [3]float64{}
		s.MuDPrev[i] = [3]float64{}
		s.MuPPrev[i] = [3]float64{}
	}
}
