// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

import "math"

// EwaldParams holds the screening parameter, real-space cutoff, and the
// derived {aN} damping-recursion constants of spec.md §3.
type EwaldParams struct {
	Alpha float64 // Ewald coefficient; 0 disables reciprocal space
	Off   float64 // real-space cutoff
	Off2  float64 // Off*Off, cached

	a []float64 // a[0..] recursion constants, a0 = 2*alpha^2/(sqrt(pi)*alpha)... see aCoeffs
}

// NewEwaldParams derives Off2 and the {aN} sequence from alpha and off.
// a0 = 2*alpha^2/(sqrt(pi)*alpha), a(n+1) = 2*alpha^2 * a(n) (spec.md §3).
func NewEwaldParams(alpha, off float64, norder int) EwaldParams {
	p := EwaldParams{Alpha: alpha, Off: off, Off2: off * off}
	p.a = make([]float64, norder+1)
	if alpha > 0 {
		p.a[0] = 2 * alpha * alpha / (math.Sqrt(math.Pi) * alpha)
		for n := 0; n < norder; n++ {
			p.a[n+1] = 2 * alpha * alpha * p.a[n]
		}
	}
	return p
}

// bnSeries returns bn0..bn[order] for separation r (r>0, r2=r*r), the
// damped Ewald scalars of spec.md §4.3:
//
//	bn0      = erfc(alpha*r)/r
//	bn(k+1)  = ((2k+1)*bnK + aK*exp(-alpha^2 r^2)) / r2
func (p *EwaldParams) bnSeries(r, r2 float64, order int) []float64 {
	bn := make([]float64, order+1)
	if p.Alpha == 0 {
		// aperiodic / no screening: bn0 = 1/r, higher terms from the
		// same recursion with a==0 reduce to the bare multipole kernel.
		bn[0] = 1 / r
		for k := 0; k < order; k++ {
			bn[k+1] = float64(2*k+1) * bn[k] / r2
		}
		return bn
	}
	ar := p.Alpha * r
	expTerm := math.Exp(-ar * ar)
	bn[0] = math.Erfc(ar) / r
	for k := 0; k < order; k++ {
		bn[k+1] = (float64(2*k+1)*bn[k] + p.a[k]*expTerm) / r2
	}
	return bn
}

// ChooseAlpha binary-searches for the smallest alpha such that
// erfc(alpha*off)/off < precision (spec.md §6). This is a supplemented
// convenience (SPEC_FULL.md §9); direct construction with an explicit
// alpha is always still available via NewEwaldParams.
func ChooseAlpha(off, precision float64) float64 {
	lo, hi := 0.01, 10.0
	// expand hi until it satisfies the precision bound, then bisect.
	for math.Erfc(hi*off)/off >= precision && hi < 1e6 {
		hi *= 2
	}
	for i := 0; i < 100; i++ {
		mid := 0.5 * (lo + hi)
		if math.Erfc(mid*off)/off < precision {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}
