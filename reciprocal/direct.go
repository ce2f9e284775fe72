// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reciprocal

import "math"

// Direct is a brute-force k-space reference implementation of Space: it
// sums explicit reciprocal-lattice vectors instead of spreading multipoles
// onto an FFT grid, so "ComputeBSplines" and the Spline* calls only record
// their inputs and the two Convolution steps are no-ops. It exists for the engine's own test
// suite (spec.md §8, properties that need a working reciprocal-space
// collaborator without a real grid/FFT dependency) and is never meant to
// scale past the small systems that suite exercises — its cost is
// O(numAtoms * numKVectors) per Compute*Phi call.
//
// Only the charge and dipole terms of the reciprocal structure factor are
// carried (Phi's quadrupole/third-derivative components are left at zero),
// matching the same permanent-energy scope decision made in pme/energy.go;
// see DESIGN.md.
type Direct struct {
	Recip  [3][3]float64 // reciprocal lattice vectors (rows b1, b2, b3), 2*pi convention
	Volume float64
	Alpha  float64
	KMax   int // k-vectors range over [-KMax, KMax]^3, excluding the origin

	kvecs [][3]float64
	pre   []float64 // exp(-k^2/4alpha^2)/k^2, precomputed per kvec

	numAtoms   int
	coords     []float64
	multipoles []float64
	use        []bool

	muD, muP []float64
}

// NewDirect builds a Direct collaborator and precomputes its k-vector
// shell and Ewald weights, which depend only on the (fixed) cell and alpha.
func NewDirect(recip [3][3]float64, volume, alpha float64, kmax int) *Direct {
	d := &Direct{Recip: recip, Volume: volume, Alpha: alpha, KMax: kmax}
	for nx := -kmax; nx <= kmax; nx++ {
		for ny := -kmax; ny <= kmax; ny++ {
			for nz := -kmax; nz <= kmax; nz++ {
				if nx == 0 && ny == 0 && nz == 0 {
					continue
				}
				k := [3]float64{
					float64(nx)*recip[0][0] + float64(ny)*recip[1][0] + float64(nz)*recip[2][0],
					float64(nx)*recip[0][1] + float64(ny)*recip[1][1] + float64(nz)*recip[2][1],
					float64(nx)*recip[0][2] + float64(ny)*recip[1][2] + float64(nz)*recip[2][2],
				}
				k2 := k[0]*k[0] + k[1]*k[1] + k[2]*k[2]
				d.kvecs = append(d.kvecs, k)
				d.pre = append(d.pre, math.Exp(-k2/(4*alpha*alpha))/k2)
			}
		}
	}
	return d
}

func (d *Direct) ComputeBSplines(coords []float64, numAtoms int) error {
	d.coords = coords
	d.numAtoms = numAtoms
	return nil
}

func (d *Direct) SplinePermanentMultipoles(multipoles []float64, use []bool) error {
	d.multipoles = multipoles
	d.use = use
	return nil
}

func (d *Direct) PermanentMultipoleConvolution() error { return nil }

// ComputePermanentPhi fills out (20*numAtoms) with the potential and its
// gradient produced at every atom by the charge+dipole reciprocal structure factor,
// derived from phi_i = sum_k pre(k)*(Sc*cos(k.ri) + Ss*sin(k.ri)) with Sc,
// Ss the real/imaginary parts of the structure factor S(k) = sum_j (q_j +
// i*(k.d_j)) exp(i k.rj).
func (d *Direct) ComputePermanentPhi(out []float64) error {
	for i := range out {
		out[i] = 0
	}
	n := d.numAtoms
	for ik, k := range d.kvecs {
		pre := d.pre[ik]
		var sc, ss float64
		for j := 0; j < n; j++ {
			if d.use != nil && !d.use[j] {
				continue
			}
			rj := [3]float64{d.coords[3*j], d.coords[3*j+1], d.coords[3*j+2]}
			kr := k[0]*rj[0] + k[1]*rj[1] + k[2]*rj[2]
			qj := d.multipoles[10*j]
			dj := [3]float64{d.multipoles[10*j+1], d.multipoles[10*j+2], d.multipoles[10*j+3]}
			kd := k[0]*dj[0] + k[1]*dj[1] + k[2]*dj[2]
			sc += qj*math.Cos(kr) - kd*math.Sin(kr)
			ss += qj*math.Sin(kr) + kd*math.Cos(kr)
		}
		for i := 0; i < n; i++ {
			ri := [3]float64{d.coords[3*i], d.coords[3*i+1], d.coords[3*i+2]}
			kr := k[0]*ri[0] + k[1]*ri[1] + k[2]*ri[2]
			cos, sin := math.Cos(kr), math.Sin(kr)
			out[20*i] += pre * (sc*cos + ss*sin)
			grad := pre * (ss*cos - sc*sin)
			out[20*i+1] += grad * k[0]
			out[20*i+2] += grad * k[1]
			out[20*i+3] += grad * k[2]
		}
	}
	scale := 2 * math.Pi / d.Volume
	for i := range out {
		out[i] *= scale
	}
	return nil
}

func (d *Direct) SplineInducedDipoles(mu, muP []float64, use []bool) error {
	d.muD, d.muP = mu, muP
	d.use = use
	return nil
}

func (d *Direct) InducedDipoleConvolution() error { return nil }

// ComputeInducedPhi fills out/outCR the same way as ComputePermanentPhi,
// but for a pure-dipole source (no charge term).
func (d *Direct) ComputeInducedPhi(out, outCR []float64) error {
	if err := d.dipolePhi(d.muD, out); err != nil {
		return err
	}
	return d.dipolePhi(d.muP, outCR)
}

func (d *Direct) dipolePhi(mu []float64, out []float64) error {
	for i := range out {
		out[i] = 0
	}
	n := d.numAtoms
	for ik, k := range d.kvecs {
		pre := d.pre[ik]
		var sc, ss float64
		for j := 0; j < n; j++ {
			if d.use != nil && !d.use[j] {
				continue
			}
			rj := [3]float64{d.coords[3*j], d.coords[3*j+1], d.coords[3*j+2]}
			kr := k[0]*rj[0] + k[1]*rj[1] + k[2]*rj[2]
			dj := [3]float64{mu[3*j], mu[3*j+1], mu[3*j+2]}
			kd := k[0]*dj[0] + k[1]*dj[1] + k[2]*dj[2]
			sc += -kd * math.Sin(kr)
			ss += kd * math.Cos(kr)
		}
		for i := 0; i < n; i++ {
			ri := [3]float64{d.coords[3*i], d.coords[3*i+1], d.coords[3*i+2]}
			kr := k[0]*ri[0] + k[1]*ri[1] + k[2]*ri[2]
			cos, sin := math.Cos(kr), math.Sin(kr)
			out[20*i] += pre * (sc*cos + ss*sin)
			grad := pre * (ss*cos - sc*sin)
			out[20*i+1] += grad * k[0]
			out[20*i+2] += grad * k[1]
			out[20*i+3] += grad * k[2]
		}
	}
	scale := 2 * math.Pi / d.Volume
	for i := range out {
		out[i] *= scale
	}
	return nil
}

func (d *Direct) FractionalMultipoles() []float64 { return d.multipoles }

func (d *Direct) FractionalInducedDipoles() (mu, muP []float64) { return d.muD, d.muP }

// GridDims reports no grid: Direct never spreads onto one.
func (d *Direct) GridDims() (nx, ny, nz int) { return 0, 0, 0 }
