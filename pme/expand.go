// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

// Expand applies each symmetry operator to the asymmetric-unit coordinates
// to produce coordinates in every crystal image (spec.md §4.2), and zeros
// the per-energy-call scratch buffers. Image 0 is always the identity
// image (the asymmetric unit itself) and is copied, not transformed.
func Expand(atoms Atoms, cr Crystal, sc *Scratch, pool *Pool) {
	for i := range atoms {
		sc.Coords[0][i] = atoms[i].Pos
	}
	pool.Run(sc.NumImages-1, func(_, lo, hi int) {
		for j := lo; j < hi; j++ {
			s := j + 1
			for i := range atoms {
				sc.Coords[s][i] = cr.ApplySymOp(s, atoms[i].Pos)
			}
		}
	})
	sc.ResetFields()
	sc.ResetOutputs()
}
