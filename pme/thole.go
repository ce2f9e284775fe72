// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

import "math"

// tholeScales computes the cubic Thole damping scale factors for a pair
// (i,k) separated by distance r, per spec.md §4.3:
//
//	damp = -pgamma * (r / (pdampI*pdampK))^3,  pgamma = min(ptI, ptK)
//	if damp > -50: scale3 = 1-e^damp, scale5 = 1-e^damp(1-damp),
//	               scale7 = 1-e^damp(1-damp+0.6damp^2)
//	else:          scale3 = scale5 = scale7 = 1
//
// damp <= -50 is numerical underflow in the damping exponential; spec.md
// §7 classifies this as silent recovery to full undamping, not an error.
func tholeScales(r, pdampI, pdampK, ptI, ptK float64) (scale3, scale5, scale7 float64) {
	if pdampI == 0 || pdampK == 0 {
		return 1, 1, 1
	}
	pgamma := ptI
	if ptK < pgamma {
		pgamma = ptK
	}
	u := r / (pdampI * pdampK)
	damp := -pgamma * u * u * u
	if damp > -50 {
		expDamp := math.Exp(damp)
		scale3 = 1 - expDamp
		scale5 = 1 - expDamp*(1-damp)
		scale7 = 1 - expDamp*(1-damp+0.6*damp*damp)
		return
	}
	return 1, 1, 1
}
