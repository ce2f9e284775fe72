// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ffio implements the JSON force-field file ingestion layer
// (spec.md §3, SPEC_FULL.md §9): the on-disk schema for atoms, Ewald/SCF
// tuning, and masking constants, parsed the way gofem's inp package reads
// a .sim/.mat JSON file into typed Go structs.
package ffio

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gopme/pme"
)

// AtomRecord is the on-disk representation of one pme.Atom.
type AtomRecord struct {
	Pos   [3]float64 `json:"pos"`
	Frame string     `json:"frame"` // "Z-THEN-X","BISECTOR","Z-THEN-BISECTOR","THREEFOLD","NONE"
	Axis  [3]int     `json:"axis"`

	Charge  float64    `json:"charge"`
	Dipole  [3]float64 `json:"dipole"`
	Quad    [6]float64 `json:"quad"` // xx,yy,zz,xy,xz,yz

	Polarizability float64 `json:"polarizability"`
	PDamp          float64 `json:"pdamp"`
	PThole         float64 `json:"pthole"`

	IP11 []int `json:"ip11"`
	IP12 []int `json:"ip12"`
	IP13 []int `json:"ip13"`

	Conn12 []int `json:"conn12"`
	Conn13 []int `json:"conn13"`
	Conn14 []int `json:"conn14"`
	Conn15 []int `json:"conn15"`
}

// PolarizationMode mirrors pme.PolarizationMode in its on-disk spelling
// ("direct"/"mutual") rather than requiring callers to know the numeric
// enum (spec.md §9 supplemented features).
type PolarizationMode string

const (
	PolarizationDirect PolarizationMode = "direct"
	PolarizationMutual PolarizationMode = "mutual"
)

// ForceField is the root JSON document: atom records plus Ewald/SCF/masking
// tuning (spec.md §3, §9).
type ForceField struct {
	Desc  string       `json:"desc"`
	Atoms []AtomRecord `json:"atoms"`

	Cell [3][3]float64 `json:"cell"` // lattice vector rows; zero => large aperiodic box

	Alpha  float64 `json:"alpha"`  // 0 => auto-tune from CutOff/Precision
	CutOff float64 `json:"cutoff"`
	Precision float64 `json:"precision"`

	Polarization PolarizationMode `json:"polarization"`
	SOR          float64          `json:"sor"`
	Poleps       float64          `json:"poleps"`
	MaxIter      int              `json:"maxiter"`

	M12 float64 `json:"m12"`
	M13 float64 `json:"m13"`
	M14 float64 `json:"m14"`
	M15 float64 `json:"m15"`
	P12 float64 `json:"p12"`
	P13 float64 `json:"p13"`
	D11 float64 `json:"d11"`
}

// LoadForceField reads and parses a force-field JSON file, applies
// defaults, and validates/clamps tuning parameters (spec.md §7:
// "Masking-constant clamping ... is silent recovery with a warning").
func LoadForceField(path string) (*ForceField, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("gopme: cannot read force-field file %q: %v", path, err)
	}
	var ff ForceField
	if err := json.Unmarshal(data, &ff); err != nil {
		return nil, chk.Err("gopme: cannot parse force-field file %q: %v", path, err)
	}
	ff.SetDefault()
	ff.Validate()
	return &ff, nil
}

// SetDefault fills in zero-valued tuning fields with spec.md's documented
// defaults, matching the SetDefault convention of gofem's inp.Data.
func (ff *ForceField) SetDefault() {
	if ff.Polarization == "" {
		ff.Polarization = PolarizationMutual
	}
	if ff.SOR == 0 {
		ff.SOR = 0.70
	}
	if ff.Poleps == 0 {
		ff.Poleps = 1e-6
	}
	if ff.MaxIter == 0 {
		ff.MaxIter = 1000
	}
	if ff.Precision == 0 {
		ff.Precision = 1e-8
	}
	if ff.M14 == 0 {
		ff.M14 = 0.4
	}
	if ff.M15 == 0 {
		ff.M15 = 0.8
	}
	if ff.Cell == ([3][3]float64{}) {
		const big = 1000.0
		ff.Cell = [3][3]float64{{big, 0, 0}, {0, big, 0}, {0, 0, big}}
	}
	if ff.CutOff == 0 {
		ff.CutOff = 9.0
	}
}

// Validate resets out-of-range tuning values, logging a warning for each,
// instead of failing the load (spec.md §7): mask constants outside [0,1]
// are set to 0, sor outside (0,1] to 0.70, and maxiter <= 0 to 1000.
func (ff *ForceField) Validate() {
	clamp01 := func(name string, v *float64) {
		if *v < 0 || *v > 1 {
			LogErrCond(true, "gopme: %s=%v out of [0,1], clamped to 0", name, *v)
			*v = 0
		}
	}
	clamp01("m12", &ff.M12)
	clamp01("m13", &ff.M13)
	clamp01("m14", &ff.M14)
	clamp01("m15", &ff.M15)
	clamp01("p12", &ff.P12)
	clamp01("p13", &ff.P13)
	clamp01("d11", &ff.D11)
	if ff.SOR <= 0 || ff.SOR > 1 {
		LogErrCond(true, "gopme: sor=%v out of (0,1], reset to 0.70", ff.SOR)
		ff.SOR = 0.70
	}
	if ff.MaxIter <= 0 {
		LogErrCond(true, "gopme: maxiter=%v <= 0, reset to 1000", ff.MaxIter)
		ff.MaxIter = 1000
	}
}

// MaskConstants converts the flat JSON fields into a pme.MaskConstants.
func (ff *ForceField) MaskConstants() pme.MaskConstants {
	return pme.MaskConstants{
		M12: ff.M12, M13: ff.M13, M14: ff.M14, M15: ff.M15,
		P12: ff.P12, P13: ff.P13,
		D11: ff.D11,
	}
}

// SCFConfig converts the flat JSON fields into a pme.SCFConfig.
func (ff *ForceField) SCFConfig() pme.SCFConfig {
	mode := pme.Mutual
	if ff.Polarization == PolarizationDirect {
		mode = pme.Direct
	}
	return pme.SCFConfig{
		Mode:      mode,
		SOR:       ff.SOR,
		Poleps:    ff.Poleps,
		MaxIter:   ff.MaxIter,
		DebyeConv: pme.DebyeConvFactor,
	}
}

// EwaldParams builds pme.EwaldParams, auto-tuning Alpha from CutOff and
// Precision when Alpha is left at its zero value (spec.md §9, Ewald
// auto-tuning).
func (ff *ForceField) EwaldParams() pme.EwaldParams {
	alpha := ff.Alpha
	if alpha == 0 {
		alpha = pme.ChooseAlpha(ff.CutOff, ff.Precision)
	}
	return pme.NewEwaldParams(alpha, ff.CutOff, 3)
}

// BuildAtoms converts the JSON atom records into a pme.Atoms slice, ready
// for pme.Engine construction.
func (ff *ForceField) BuildAtoms() (pme.Atoms, error) {
	atoms := make(pme.Atoms, len(ff.Atoms))
	for i, r := range ff.Atoms {
		frame, err := frameFromString(r.Frame)
		if err != nil {
			return nil, chk.Err("gopme: atom %d: %v", i, err)
		}
		var local pme.LocalMultipole
		local[pme.T000] = r.Charge
		local[pme.T100], local[pme.T010], local[pme.T001] = r.Dipole[0], r.Dipole[1], r.Dipole[2]
		local[pme.T200], local[pme.T020], local[pme.T002] = r.Quad[0], r.Quad[1], r.Quad[2]
		local[pme.T110], local[pme.T101], local[pme.T011] = r.Quad[3], r.Quad[4], r.Quad[5]

		atoms[i] = pme.Atom{
			Pos:            r.Pos,
			Local:          local,
			Frame:          frame,
			Axis:           r.Axis,
			Polarizability: r.Polarizability,
			PDamp:          r.PDamp,
			PThole:         r.PThole,
			IP11:           r.IP11,
			IP12:           r.IP12,
			IP13:           r.IP13,
			Conn12:         r.Conn12,
			Conn13:         r.Conn13,
			Conn14:         r.Conn14,
			Conn15:         r.Conn15,
		}
	}
	return atoms, nil
}

func frameFromString(s string) (pme.FrameStyle, error) {
	switch s {
	case "", "NONE":
		return pme.FrameNone, nil
	case "Z-THEN-X":
		return pme.FrameZThenX, nil
	case "BISECTOR":
		return pme.FrameBisector, nil
	case "Z-THEN-BISECTOR":
		return pme.FrameZThenBisector, nil
	case "THREEFOLD":
		return pme.FrameThreefold, nil
	default:
		return pme.FrameNone, chk.Err("gopme: unknown frame style %q", s)
	}
}
