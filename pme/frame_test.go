// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

import (
	"testing"

	"github.com/cpmech/gosl/utl"
)

// Test_frame01 checks that BuildFrame always returns an orthonormal basis
// for the Z-then-X rule (spec.md §8, testable property 1).
func Test_frame01(tst *testing.T) {
	ri := [3]float64{0, 0, 0}
	axis := [3][3]float64{
		{0, 0, 1.5}, // z-axis atom
		{1.2, 0.3, 0},
		{},
	}
	f := BuildFrame(FrameZThenX, ri, axis)

	utl.CheckScalar(tst, "|X|", 1e-12, vnorm(f.X), 1)
	utl.CheckScalar(tst, "|Y|", 1e-12, vnorm(f.Y), 1)
	utl.CheckScalar(tst, "|Z|", 1e-12, vnorm(f.Z), 1)
	utl.CheckScalar(tst, "X.Y", 1e-12, vdot(f.X, f.Y), 0)
	utl.CheckScalar(tst, "X.Z", 1e-12, vdot(f.X, f.Z), 0)
	utl.CheckScalar(tst, "Y.Z", 1e-12, vdot(f.Y, f.Z), 0)
}

// Test_trace01 checks that a rotated quadrupole stays traceless (spec.md
// §8, testable property 2).
func Test_trace01(tst *testing.T) {
	var local LocalMultipole
	local[T200], local[T020], local[T002] = 0.6, -0.2, -0.4
	local[T110], local[T101], local[T011] = 0.05, -0.05, 0.1

	ri := [3]float64{0, 0, 0}
	axis := [3][3]float64{{0, 0, 1.5}, {1.2, 0.3, 0}, {}}
	f := BuildFrame(FrameZThenX, ri, axis)
	global := RotateMultipole(local, FrameZThenX, f, false)

	utl.CheckScalar(tst, "trace", 1e-12, global.Trace(), 0)
}
