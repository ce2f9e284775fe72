// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/utl"
)

// Test_bn01 checks the alpha=0 (aperiodic) degenerate case reduces to the
// bare multipole kernel 1/r, 1/r^3, 3/r^5.
func Test_bn01(tst *testing.T) {
	p := NewEwaldParams(0, 12.0, 3)
	r := 2.0
	bn := p.bnSeries(r, r*r, 3)
	utl.CheckScalar(tst, "bn0", 1e-14, bn[0], 1/r)
	utl.CheckScalar(tst, "bn1", 1e-14, bn[1], 1/(r*r*r))
	utl.CheckScalar(tst, "bn2", 1e-13, bn[2], 3/math.Pow(r, 5))
}

// Test_chooseAlpha01 checks that ChooseAlpha meets the requested precision
// bound at the cutoff distance.
func Test_chooseAlpha01(tst *testing.T) {
	off := 9.0
	precision := 1e-5
	alpha := ChooseAlpha(off, precision)
	residual := math.Erfc(alpha*off) / off
	if residual >= precision*1.01 {
		tst.Fatalf("ChooseAlpha residual %v does not meet precision %v", residual, precision)
	}
}
