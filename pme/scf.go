// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

import "math"

// ReciprocalInducedField computes the PME reciprocal-space contribution to
// the induced-dipole field, given the current d-masked and p-masked induced
// dipoles of every asymmetric-unit atom. Engine wires this to the
// reciprocal.Space collaborator (spline -> convolve -> compute-phi); SCF
// itself stays independent of the grid/FFT machinery (spec.md §6).
type ReciprocalInducedField func(muD, muP [][3]float64) (fieldD, fieldP [][3]float64, err error)

// SCF is the Self-Consistent-Field Solver (spec.md §4.5). It seeds the
// induced dipoles from the total permanent field (the "direct"
// polarization answer) — sc.FieldD/FieldP (the real-space field RealField
// must already have populated) plus extraD/extraP, the Ewald self-field
// and reciprocal permanent field (and, optionally, an external reaction
// field), which the caller assembles per spec.md §4.5 steps 2-3 before
// calling SCF. Then, in Mutual mode, iterates an SOR-relaxed fixed point:
//
//	mu_new = mu_prev + SOR * (alpha*(E_perm + extra + E_induced(mu_prev)) - mu_prev)
//
// until the RMS change in the induced dipoles, converted to Debye, falls
// below cfg.Poleps. An RMS change that grows from one iteration to the next,
// or exceeding MaxIter, is returned as an EvalError of kind
// EvalErrDivergence; a failure of recip is returned as an EvalError of kind
// EvalErrCollaborator.
func SCF(atoms Atoms, sc *Scratch, nl NeighborLists, ew *EwaldParams, extraD, extraP [][3]float64, recip ReciprocalInducedField, cfg SCFConfig, evalCfg *EvaluationConfig, pool *Pool) (iterations int, converged bool, err error) {
	n := len(atoms)
	sc.ResetInduced()
	for i := range atoms {
		sc.MuD[i] = vscale(vadd(sc.FieldD[i], extraD[i]), atoms[i].Polarizability)
		sc.MuP[i] = vscale(vadd(sc.FieldP[i], extraP[i]), atoms[i].Polarizability)
	}
	if cfg.Mode == Direct {
		return 0, true, nil
	}

	var prevRms float64
	for iter := 1; iter <= cfg.MaxIter; iter++ {
		if evalCfg != nil && evalCfg.terminated() {
			return iter, false, &EvalError{Kind: EvalErrDivergence, Msg: "gopme: SCF terminated externally", Iter: iter}
		}
		copy(sc.MuDPrev, sc.MuD)
		copy(sc.MuPPrev, sc.MuP)

		InducedField(atoms, sc, nl, ew, sc.MuD, sc.FieldInducedD, pool)
		InducedField(atoms, sc, nl, ew, sc.MuP, sc.FieldInducedP, pool)

		if recip != nil {
			rd, rp, rerr := recip(sc.MuD, sc.MuP)
			if rerr != nil {
				return iter, false, &EvalError{Kind: EvalErrCollaborator, Msg: rerr.Error(), Iter: iter}
			}
			for i := range atoms {
				sc.FieldInducedD[i] = vadd(sc.FieldInducedD[i], rd[i])
				sc.FieldInducedP[i] = vadd(sc.FieldInducedP[i], rp[i])
			}
		}

		var rmsSq float64
		for i := range atoms {
			alpha := atoms[i].Polarizability
			targetD := vscale(vadd(vadd(sc.FieldD[i], extraD[i]), sc.FieldInducedD[i]), alpha)
			targetP := vscale(vadd(vadd(sc.FieldP[i], extraP[i]), sc.FieldInducedP[i]), alpha)
			sc.MuD[i] = vadd(sc.MuDPrev[i], vscale(vsub(targetD, sc.MuDPrev[i]), cfg.SOR))
			sc.MuP[i] = vadd(sc.MuPPrev[i], vscale(vsub(targetP, sc.MuPPrev[i]), cfg.SOR))
			d := vsub(sc.MuD[i], sc.MuDPrev[i])
			rmsSq += vdot(d, d)
		}
		rms := math.Sqrt(rmsSq/float64(n)) * cfg.DebyeConv
		if rms < cfg.Poleps {
			return iter, true, nil
		}
		if iter > 1 && rms > prevRms {
			return iter, false, &EvalError{Kind: EvalErrDivergence, Msg: "gopme: SCF residual grew between iterations", Iter: iter}
		}
		prevRms = rms
	}
	return cfg.MaxIter, false, &EvalError{Kind: EvalErrDivergence, Msg: "gopme: SCF failed to converge within MaxIter", Iter: cfg.MaxIter}
}
