// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reciprocal defines the external reciprocal-space collaborator
// contract used by the PME engine (spec.md §6). The production
// implementation — B-spline charge spreading onto a grid, FFT-based
// convolution with the Ewald Green's function, and the inverse transform
// back to per-atom potential derivatives — is deliberately out of scope
// (spec.md §1, §2 component 5): only the interface is specified here.
//
// Space operates on flat arrays rather than gopme's own Multipole/Phi
// types so that this package stays independent of package pme (pme
// depends on reciprocal, not the other way around), the same way gofem's
// shp package is independent of fem and is driven through plain
// []float64/[][]float64 arguments.
package reciprocal

// Space is implemented by the reciprocal-space collaborator. All
// multipole/dipole arrays are laid out per-atom: Multipoles has length
// 10*N with the 10 components in the order documented by
// pme.Multipole (charge, dipole x3, quadrupole x6); the induced-dipole
// arrays mu and muP have length 3*N. Use is an optional per-atom active mask (nil means "all atoms
// active").
type Space interface {
	// ComputeBSplines (re)computes the B-spline coefficients for the
	// current grid/atom positions. Must be called once per energy
	// evaluation before any Spline* call.
	ComputeBSplines(coords []float64, numAtoms int) error

	// SplinePermanentMultipoles spreads the permanent multipoles onto the
	// FFT grid.
	SplinePermanentMultipoles(multipoles []float64, use []bool) error

	// PermanentMultipoleConvolution performs the forward FFT, multiplies
	// by the Ewald Green's function, and performs the inverse FFT for the
	// permanent-multipole grid.
	PermanentMultipoleConvolution() error

	// ComputePermanentPhi fills out (length 20*N) with the Cartesian phi
	// tensor at each atom produced by the permanent-multipole convolution.
	ComputePermanentPhi(out []float64) error

	// SplineInducedDipoles spreads the d-masked and p-masked induced
	// dipoles onto the FFT grid.
	SplineInducedDipoles(mu, muP []float64, use []bool) error

	// InducedDipoleConvolution performs the forward FFT, Green's-function
	// multiply, and inverse FFT for the induced-dipole grid.
	InducedDipoleConvolution() error

	// ComputeInducedPhi fills out and outCR (each length 20*N) with the
	// Cartesian phi tensors produced by the d-masked and p-masked induced
	// dipole convolutions respectively.
	ComputeInducedPhi(out, outCR []float64) error

	// FractionalMultipoles returns the fractional-coordinate multipole
	// tensor last spline'd (length 10*N), used by the gradient/torque
	// contraction against the fractional phi tensor.
	FractionalMultipoles() []float64

	// FractionalInducedDipoles returns the fractional-coordinate induced
	// dipoles last spline'd (length 3*N each, d-masked then p-masked).
	FractionalInducedDipoles() (mu, muP []float64)

	// GridDims returns the three FFT grid dimensions.
	GridDims() (nx, ny, nz int)
}
