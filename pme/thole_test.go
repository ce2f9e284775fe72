// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

import (
	"testing"
)

// Test_realFieldDamping01 is the regression for review item 3: RealField
// must apply Thole damping to the field it builds from a nearby dipole,
// the same way InducedField does, not just pass the bare bn1 scalar
// through. A damped pdamp/pthole pair at short range must produce a
// noticeably smaller field magnitude than the same geometry with damping
// disabled (pdamp=0, which tholeScales treats as "no damping").
func Test_realFieldDamping01(tst *testing.T) {
	build := func(pdamp float64) [3]float64 {
		atoms := make(Atoms, 2)
		atoms[0].PDamp = pdamp
		atoms[0].PThole = 0.39
		atoms[1].Pos = [3]float64{1.0, 0, 0}
		atoms[1].Local[T001] = 1.0 // dipole along z at the neighbor
		atoms[1].PDamp = pdamp
		atoms[1].PThole = 0.39

		sc := NewScratch(2, 1)
		sc.Coords[0][0] = atoms[0].Pos
		sc.Coords[0][1] = atoms[1].Pos
		sc.Global[0][1][T001] = 1.0

		nl := bruteList{{1}, {0}}
		ew := NewEwaldParams(0, 10.0, 3)
		RealField(atoms, sc, nl, &ew, DefaultMaskConstants(), NewPool())
		return sc.FieldD[0]
	}

	damped := build(2.5)
	undamped := build(0)

	dMag := vnorm(damped)
	uMag := vnorm(undamped)
	if dMag >= uMag {
		tst.Fatalf("damped field (%v, |.|=%v) should be smaller than undamped field (%v, |.|=%v) at short range", damped, dMag, undamped, uMag)
	}
}

// bruteList is a fixed neighbor list used to isolate RealField from the
// crystal/neighbor-search machinery in unit tests.
type bruteList [][]int

func (b bruteList) Neighbors(image, i int) []int {
	if image != 0 {
		return nil
	}
	return b[i]
}
