// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

// Frame is the orthonormal local coordinate system built at one atom from
// its axis atoms (spec.md §4.1). X, Y, Z are unit vectors expressed in the
// global (or symmetry-image) Cartesian frame; R's columns are X, Y, Z.
type Frame struct {
	X, Y, Z [3]float64
}

// RotMatrix returns R with columns X, Y, Z, mapping local-frame vectors to
// the frame's ambient Cartesian frame: v_global = R * v_local.
func (f Frame) RotMatrix() [3][3]float64 {
	return [3][3]float64{
		{f.X[0], f.Y[0], f.Z[0]},
		{f.X[1], f.Y[1], f.Z[1]},
		{f.X[2], f.Y[2], f.Z[2]},
	}
}

// BuildFrame constructs the orthonormal local frame at position ri given
// the (already image-expanded) positions of up to 3 axis atoms, per the
// four non-trivial rules of spec.md §4.1. How many entries of axisPos are
// read depends on style: 2 for Z-THEN-X and BISECTOR, 3 for
// Z-THEN-BISECTOR and THREEFOLD.
func BuildFrame(style FrameStyle, ri [3]float64, axisPos [3][3]float64) Frame {
	switch style {
	case FrameZThenX:
		z := vunit(vsub(axisPos[0], ri))
		xraw := vsub(axisPos[1], ri)
		x := vunit(vsub(xraw, vscale(z, vdot(xraw, z))))
		y := vcross(z, x)
		return Frame{X: x, Y: y, Z: z}

	case FrameBisector:
		u := vunit(vsub(axisPos[0], ri))
		v := vunit(vsub(axisPos[1], ri))
		z := vunit(vadd(u, v))
		xraw := vsub(v, vscale(z, vdot(v, z)))
		x := vunit(xraw)
		y := vcross(z, x)
		return Frame{X: x, Y: y, Z: z}

	case FrameZThenBisector:
		z := vunit(vsub(axisPos[0], ri))
		u := vunit(vsub(axisPos[1], ri))
		v := vunit(vsub(axisPos[2], ri))
		bi := vunit(vadd(u, v))
		xraw := vsub(bi, vscale(z, vdot(bi, z)))
		x := vunit(xraw)
		y := vcross(z, x)
		return Frame{X: x, Y: y, Z: z}

	case FrameThreefold:
		u0 := vunit(vsub(axisPos[0], ri))
		u1 := vunit(vsub(axisPos[1], ri))
		u2 := vunit(vsub(axisPos[2], ri))
		w := vunit(vadd(vadd(u0, u1), u2))
		xraw := vsub(u0, vscale(w, vdot(u0, w)))
		x := vunit(xraw)
		y := vcross(w, x)
		return Frame{X: x, Y: y, Z: w}

	default: // FrameNone: arbitrary orthonormal triad, never used for rotation
		return Frame{X: [3]float64{1, 0, 0}, Y: [3]float64{0, 1, 0}, Z: [3]float64{0, 0, 1}}
	}
}

// chiralityFlip reports whether the signed scalar triple product of
// (ri-r2), (r0-r2), (r1-r2) is negative, per spec.md §4.1's chirality
// correction for Z-THEN-X frames with a third reference atom.
func chiralityFlip(ri, r0, r1, r2 [3]float64) bool {
	a := vsub(ri, r2)
	b := vsub(r0, r2)
	c := vsub(r1, r2)
	triple := vdot(a, vcross(b, c))
	return triple < 0
}

// rotVec3 applies R (columns are the local basis vectors) to a local
// vector, producing the vector's ambient-frame representation.
func rotVec3(R [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		R[0][0]*v[0] + R[0][1]*v[1] + R[0][2]*v[2],
		R[1][0]*v[0] + R[1][1]*v[1] + R[1][2]*v[2],
		R[2][0]*v[0] + R[2][1]*v[1] + R[2][2]*v[2],
	}
}

// rotMat3 computes R * Q * Rᵀ for a symmetric 3x3 quadrupole Q.
func rotMat3(R, Q [3][3]float64) [3][3]float64 {
	var RQ [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += R[i][k] * Q[k][j]
			}
			RQ[i][j] = s
		}
	}
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += RQ[i][k] * R[j][k] // times R^T(k,j) = R(j,k)
			}
			out[i][j] = s
		}
	}
	return out
}

// RotateMultipole rotates one atom's local-frame multipole into the
// ambient Cartesian frame given by f, applying the chirality correction
// when flipChirality is set (spec.md §4.1). The quadrupole is returned
// packed the way Multipole expects (diagonal then off-diagonal). No 1/3
// factor is applied here or by the evaluators that read the result; the
// local quadrupole values are rotated and used as given (see
// Multipole.QuadMatrix).
func RotateMultipole(local LocalMultipole, style FrameStyle, f Frame, flipChirality bool) Multipole {
	var out Multipole
	out[T000] = local[T000]

	if style == FrameNone {
		return out // dipole and quadrupole zeroed, per spec.md §4.1
	}

	d := [3]float64{local[T100], local[T010], local[T001]}
	q := [3][3]float64{
		{local[T200], local[T110], local[T101]},
		{local[T110], local[T020], local[T011]},
		{local[T101], local[T011], local[T002]},
	}
	if flipChirality {
		d[1] = -d[1]
		q[0][1], q[1][0] = -q[0][1], -q[1][0]
		q[1][2], q[2][1] = -q[1][2], -q[2][1]
	}

	R := f.RotMatrix()
	dg := rotVec3(R, d)
	qg := rotMat3(R, q)

	out[T100], out[T010], out[T001] = dg[0], dg[1], dg[2]
	out[T200], out[T020], out[T002] = qg[0][0], qg[1][1], qg[2][2]
	out[T110], out[T101], out[T011] = qg[0][1], qg[0][2], qg[1][2]
	return out
}
