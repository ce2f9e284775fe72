// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package neighbor is a dependency-free reference implementation of
// pme.NeighborLists (spec.md §6): an O(N^2) all-pairs search, suitable for
// the small systems the engine's own test suite exercises. Production
// callers with real cell-list or Verlet-list infrastructure are expected
// to supply their own implementation of the interface.
package neighbor

import "github.com/cpmech/gopme/pme"

// BruteForce builds, for every symmetry image and asymmetric-unit atom, the
// ordered list of neighbor atoms within a fixed cutoff by brute-force
// distance search.
type BruteForce struct {
	lists [][][]int // [image][atom]
}

// NewBruteForce expands pos (asymmetric-unit Cartesian positions) into
// every symmetry image of cr, then records, for each (image, atom) pair,
// the neighbor atoms within cutoff of the asymmetric-unit atom. Minimum
// image wrapping is applied via cr.Image before the cutoff test, so a
// single-image periodic cell (P1, NumImages()==1) still searches across
// periodic boundaries.
func NewBruteForce(pos [][3]float64, cr pme.Crystal, cutoff float64) *BruteForce {
	n := len(pos)
	numImages := cr.NumImages()
	cutoff2 := cutoff * cutoff

	coords := make([][][3]float64, numImages)
	coords[0] = pos
	for s := 1; s < numImages; s++ {
		coords[s] = make([][3]float64, n)
		for i := 0; i < n; i++ {
			coords[s][i] = cr.ApplySymOp(s, pos[i])
		}
	}

	bf := &BruteForce{lists: make([][][]int, numImages)}
	for s := 0; s < numImages; s++ {
		bf.lists[s] = make([][]int, n)
		for i := 0; i < n; i++ {
			var nb []int
			for k := 0; k < n; k++ {
				if s == 0 && k == i {
					continue
				}
				dr := [3]float64{
					coords[0][i][0] - coords[s][k][0],
					coords[0][i][1] - coords[s][k][1],
					coords[0][i][2] - coords[s][k][2],
				}
				r2 := cr.Image(&dr)
				if r2 <= cutoff2 {
					nb = append(nb, k)
				}
			}
			bf.lists[s][i] = nb
		}
	}
	return bf
}

func (bf *BruteForce) Neighbors(image, atom int) []int {
	return bf.lists[image][atom]
}
