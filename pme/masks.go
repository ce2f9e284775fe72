// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

// MaskConstants holds the configurable covalent/polarization-group scale
// factors of spec.md §3, with the documented defaults.
type MaskConstants struct {
	M12, M13, M14, M15 float64 // direct/d-mask scales by bond separation
	P12, P13           float64 // polarization-mask scales
	D11                float64 // d-mask scale within a polarization group
}

// DefaultMaskConstants returns the defaults from spec.md §3.
func DefaultMaskConstants() MaskConstants {
	return MaskConstants{
		M12: 0, M13: 0, M14: 0.4, M15: 0.8,
		P12: 0, P13: 0,
		D11: 0,
	}
}

// maskState is thread-local scratch holding the temporary per-atom p-mask
// and d-mask overrides used while processing one asymmetric-unit atom i
// (spec.md §4.3). One maskState lives per worker thread context and is
// reused across atoms within a region; overrides are applied and reverted
// per atom so no atom ever sees another atom's leftover mask (spec.md §5,
// "read-only during a region ... after temporary per-atom adjustment").
type maskState struct {
	pmask []float64 // per-atom polarization mask, default 1
	dmask []float64 // per-atom d-mask, default 1
	dirty []int     // indices touched this pass, for fast revert
}

func newMaskState(n int) *maskState {
	s := &maskState{
		pmask: make([]float64, n),
		dmask: make([]float64, n),
	}
	for i := range s.pmask {
		s.pmask[i] = 1
		s.dmask[i] = 1
	}
	return s
}

// apply sets the temporary masks for atom i's neighbors, per spec.md §4.3:
// p12 for 1-2 partners, p13 for 1-3, 0.5 for atoms that are both in
// ip11[i] and a 1-4 partner, and d11 for ip11[i] members.
func (s *maskState) apply(a *Atom, mc MaskConstants) {
	s.dirty = s.dirty[:0]
	mark := func(idx int, p, d float64, setP, setD bool) {
		if setP {
			s.pmask[idx] = p
		}
		if setD {
			s.dmask[idx] = d
		}
		s.dirty = append(s.dirty, idx)
	}
	for _, k := range a.Conn12 {
		mark(k, mc.P12, 0, true, false)
	}
	for _, k := range a.Conn13 {
		mark(k, mc.P13, 0, true, false)
	}
	for _, k := range a.IP11 {
		mark(k, 0, mc.D11, false, true)
	}
	// 0.5 override for 1-4 partners that are also group members.
	in14 := func(k int) bool {
		for _, c := range a.Conn14 {
			if c == k {
				return true
			}
		}
		return false
	}
	for _, k := range a.IP11 {
		if in14(k) {
			s.pmask[k] = 0.5
		}
	}
}

// revert restores pmask/dmask to the default (1) for every index touched
// by the last apply call.
func (s *maskState) revert() {
	for _, idx := range s.dirty {
		s.pmask[idx] = 1
		s.dmask[idx] = 1
	}
	s.dirty = s.dirty[:0]
}

// m14Scale returns the m14/m15/m12/m13-class scale for the "d-masked"
// interaction-group field, given the covalent separation between atoms i
// and k (spec.md §4.3: masks are applied only to the asymmetric-unit self
// image).
func m14Scale(a *Atom, k int, mc MaskConstants) float64 {
	for _, c := range a.Conn12 {
		if c == k {
			return mc.M12
		}
	}
	for _, c := range a.Conn13 {
		if c == k {
			return mc.M13
		}
	}
	for _, c := range a.Conn14 {
		if c == k {
			return mc.M14
		}
	}
	for _, c := range a.Conn15 {
		if c == k {
			return mc.M15
		}
	}
	return 1
}
