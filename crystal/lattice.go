// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package crystal is a dependency-free reference implementation of
// pme.Crystal (spec.md §6): a general triclinic cell with a user-supplied
// list of space-group symmetry operators, defaulting to P1 (the identity
// operator only) when none are given. It exists so gopme's test suite and
// simple callers have a concrete Crystal without pulling in a real
// crystallography library; production callers with genuine space-group
// needs are expected to supply their own implementation of the interface.
package crystal

import "math"

// SymOp is a space-group symmetry operator: x' = Rot*x + Trans, applied to
// fractional coordinates.
type SymOp struct {
	Rot   [3][3]float64
	Trans [3]float64
}

// Identity is the trivial P1 symmetry operator.
func Identity() SymOp {
	return SymOp{Rot: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Lattice is a general triclinic periodic cell. Cell rows are the real-space
// lattice vectors a, b, c (Cartesian Å). SymOps defaults to {Identity} (P1)
// if left empty.
type Lattice struct {
	Cell   [3][3]float64
	SymOps []SymOp

	recip   [3][3]float64
	inverse [3][3]float64
}

// NewLattice builds a Lattice from explicit lattice vectors, precomputing
// the reciprocal lattice and the Cartesian-to-fractional transform. An
// empty symOps defaults to P1.
func NewLattice(cell [3][3]float64, symOps []SymOp) *Lattice {
	l := &Lattice{Cell: cell, SymOps: symOps}
	if len(l.SymOps) == 0 {
		l.SymOps = []SymOp{Identity()}
	}
	l.inverse = invert3(transpose(cell))
	l.recip = reciprocalOf(cell)
	return l
}

func (l *Lattice) NumImages() int { return len(l.SymOps) }

// Image applies the minimum-image convention in fractional coordinates:
// wrap each fractional component into [-0.5, 0.5) before mapping back to
// Cartesian space.
func (l *Lattice) Image(v *[3]float64) float64 {
	f := matVec(l.inverse, *v)
	for i := range f {
		f[i] -= math.Round(f[i])
	}
	*v = matVec(transpose(l.Cell), f)
	r2 := v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
	return r2
}

func (l *Lattice) ApplySymOp(s int, v [3]float64) [3]float64 {
	op := l.SymOps[s]
	f := matVec(l.inverse, v)
	f2 := matVec(op.Rot, f)
	f2[0] += op.Trans[0]
	f2[1] += op.Trans[1]
	f2[2] += op.Trans[2]
	return matVec(transpose(l.Cell), f2)
}

func (l *Lattice) ApplySymRotation(s int, v [3]float64) [3]float64 {
	op := l.SymOps[s]
	f := matVec(l.inverse, v)
	f2 := matVec(op.Rot, f)
	return matVec(transpose(l.Cell), f2)
}

func (l *Lattice) Reciprocal() [3][3]float64 { return l.recip }

func reciprocalOf(cell [3][3]float64) [3][3]float64 {
	a, b, c := cell[0], cell[1], cell[2]
	vol := a[0]*(b[1]*c[2]-b[2]*c[1]) - a[1]*(b[0]*c[2]-b[2]*c[0]) + a[2]*(b[0]*c[1]-b[1]*c[0])
	cross := func(u, w [3]float64) [3]float64 {
		return [3]float64{u[1]*w[2] - u[2]*w[1], u[2]*w[0] - u[0]*w[2], u[0]*w[1] - u[1]*w[0]}
	}
	bc, ca, ab := cross(b, c), cross(c, a), cross(a, b)
	scale := 2 * math.Pi / vol
	return [3][3]float64{
		{bc[0] * scale, bc[1] * scale, bc[2] * scale},
		{ca[0] * scale, ca[1] * scale, ca[2] * scale},
		{ab[0] * scale, ab[1] * scale, ab[2] * scale},
	}
}

func matVec(m [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

func transpose(m [3][3]float64) [3][3]float64 {
	return [3][3]float64{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

func invert3(m [3][3]float64) [3][3]float64 {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	inv := 1 / det
	var out [3][3]float64
	out[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * inv
	out[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv
	out[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv
	out[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * inv
	out[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv
	out[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv
	out[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * inv
	out[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv
	out[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv
	return out
}
