// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

// Rotate builds, for every (image s, atom i), the global-frame multipole
// tuple by constructing the local frame from axis atoms already expanded
// into image s and rotating the local dipole/quadrupole into it (spec.md
// §4.1). Frame and chirality use the coordinates within the same image so
// that a rigidly-transformed asymmetric unit yields a rigidly-rotated set
// of local frames without a separate call into Crystal.ApplySymRotation.
func Rotate(atoms Atoms, sc *Scratch, pool *Pool) {
	for s := 0; s < sc.NumImages; s++ {
		image := s
		pool.Run(len(atoms), func(_, lo, hi int) {
			for i := lo; i < hi; i++ {
				a := &atoms[i]
				n := a.NumAxisAtoms()
				if n < 2 {
					if image == 0 {
						sc.Frame0[i] = Frame{}
					}
					sc.Global[image][i] = Multipole{T000: a.Local[T000]}
					continue
				}
				var axisPos [3][3]float64
				for k := 0; k < n && k < 3; k++ {
					axisPos[k] = sc.Coords[image][a.Axis[k]]
				}
				f := BuildFrame(a.Frame, sc.Coords[image][i], axisPos)
				flip := false
				if a.Frame == FrameZThenX && n == 3 {
					flip = chiralityFlip(sc.Coords[image][i], axisPos[0], axisPos[1], axisPos[2])
				}
				if image == 0 {
					sc.Frame0[i] = f
				}
				sc.Global[image][i] = RotateMultipole(a.Local, a.Frame, f, flip)
			}
		})
	}
}
