// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

import "math"

// Small fixed-size vector helpers, written as unrolled operations per the
// hot-path guidance of spec.md §9 rather than generic slice loops.

func vsub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func vadd(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func vscale(a [3]float64, s float64) [3]float64 {
	return [3]float64{a[0] * s, a[1] * s, a[2] * s}
}

func vdot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func vcross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func vnorm(a [3]float64) float64 {
	return math.Sqrt(vdot(a, a))
}

// vunit normalizes a, returning the zero vector if |a| is degenerate.
func vunit(a [3]float64) [3]float64 {
	n := vnorm(a)
	if n < 1e-14 {
		return [3]float64{}
	}
	return vscale(a, 1/n)
}
