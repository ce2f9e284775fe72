// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

import (
	"math"

	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/gopme/reciprocal"
)

// ReactionField is the Generalized Kirkwood collaborator contract as seen
// from the engine (spec.md §6); package gk provides the concrete interface
// and a no-op implementation. An Engine built with a nil ReactionField
// skips both reaction-field calls.
type ReactionField interface {
	// Field feeds the reaction-field contribution into the SCF fixed point
	// before induced-dipole seeding (spec.md §4.5 step 3).
	Field(charges []float64, dipoles [][3]float64) (field [][3]float64, err error)

	// Correct returns the reaction-field energy term once induction has
	// converged, given the final per-atom total field.
	Correct(charges []float64, dipoles [][3]float64, field [][3]float64) (energy float64, err error)
}

// EnergyResult is the outcome of one Engine.Energy call (spec.md §2/§4).
type EnergyResult struct {
	Total        float64
	Permanent    float64
	Reciprocal   float64
	Polarization float64

	// DUDLambda and D2UDLambda2 are the first and second derivatives of
	// Total with respect to EvaluationConfig.Lambda (spec.md §4.8), left
	// zero unless the call had LambdaActive set.
	DUDLambda   float64
	D2UDLambda2 float64

	SCFIterations int
	SCFConverged  bool
	Interactions  int64

	// PartialResult is true when EvaluationConfig.Terminate fired mid-SCF;
	// Total/Permanent/Reciprocal are still the genuine partial sums up to
	// that point (spec.md §7).
	PartialResult bool
}

// Engine is the orchestrator that wires together every component of the
// electrostatics pipeline (spec.md §2, §4): Expand -> Rotate -> real/
// reciprocal-space permanent fields -> SCF induction -> energy assembly ->
// torque projection. It owns the Scratch buffers and worker pool for the
// lifetime of the atom set it was built from (spec.md §3, "Lifecycle").
type Engine struct {
	atoms Atoms
	cr    Crystal
	nl    NeighborLists
	rs    reciprocal.Space // nil disables the reciprocal-space section
	gk    ReactionField

	ew EwaldParams
	mc MaskConstants

	scfCfg SCFConfig
	pool   *Pool
	sc     *Scratch
}

// NewEngine validates atoms and allocates the per-call scratch state.
// Construction fails fast (returns *ConfigError) rather than building a
// partially-usable Engine (spec.md §7).
func NewEngine(atoms Atoms, cr Crystal, nl NeighborLists, rs reciprocal.Space, reaction ReactionField, ew EwaldParams, mc MaskConstants, scfCfg SCFConfig) (*Engine, error) {
	if err := atoms.validate(); err != nil {
		return nil, err
	}
	return &Engine{
		atoms:  atoms,
		cr:     cr,
		nl:     nl,
		rs:     rs,
		gk:     reaction,
		ew:     ew,
		mc:     mc,
		scfCfg: scfCfg,
		pool:   NewPool(),
		sc:     NewScratch(len(atoms), cr.NumImages()),
	}, nil
}

// lambdaFDStep is the central finite-difference step used to derive
// DUDLambda/D2UDLambda2, small enough to resolve the smooth lambda^1/
// lambda^2 scaling of ScaleForLambda without the cancellation error that a
// tighter step would bring at float64 precision.
const lambdaFDStep = 1e-3

// Energy runs one full energy/gradient evaluation under cfg (spec.md §4,
// §5). The returned Gradient/Torque buffers live in the Engine's Scratch
// and are only valid until the next Energy call, and belong to the
// cfg.Lambda evaluation itself even when LambdaActive triggers the extra
// finite-difference probes below.
func (e *Engine) Energy(cfg EvaluationConfig) (EnergyResult, error) {
	if !cfg.LambdaActive {
		return e.energyAt(cfg)
	}

	probe := cfg
	probe.Terminate = nil
	probe.Lambda = cfg.Lambda + lambdaFDStep
	plus, err := e.energyAt(probe)
	if err != nil {
		return EnergyResult{}, err
	}
	probe.Lambda = cfg.Lambda - lambdaFDStep
	minus, err := e.energyAt(probe)
	if err != nil {
		return EnergyResult{}, err
	}

	res, err := e.energyAt(cfg)
	if err != nil {
		return EnergyResult{}, err
	}
	res.DUDLambda = (plus.Total - minus.Total) / (2 * lambdaFDStep)
	res.D2UDLambda2 = (plus.Total - 2*res.Total + minus.Total) / (lambdaFDStep * lambdaFDStep)
	return res, nil
}

// energyAt runs one energy/gradient evaluation at the lambda value named by
// cfg, with no lambda-derivative bookkeeping of its own.
func (e *Engine) energyAt(cfg EvaluationConfig) (EnergyResult, error) {
	atoms := e.atoms
	if cfg.LambdaActive {
		atoms = ScaleForLambda(atoms, cfg.Lambda)
	}

	Expand(atoms, e.cr, e.sc, e.pool)
	Rotate(atoms, e.sc, e.pool)

	var permanentEnergy, reciprocalEnergy float64
	var recipFieldPerm [][3]float64
	var recipErr error

	runReal := func() {
		if cfg.DoPermanentRealSpace {
			RealField(atoms, e.sc, e.nl, &e.ew, e.mc, e.pool)
			permanentEnergy = Energy(atoms, e.sc, e.nl, &e.ew, e.mc, e.pool) + selfEnergy(atoms, e.sc, &e.ew)
		}
	}
	runRecip := func() {
		if cfg.DoReciprocalSpace && e.rs != nil {
			reciprocalEnergy, recipFieldPerm, recipErr = e.reciprocalPermanent(atoms)
		}
	}
	Fork(cfg.SequentialSections, runReal, runRecip)
	if recipErr != nil {
		return EnergyResult{}, &EvalError{Kind: EvalErrCollaborator, Msg: recipErr.Error(), Iter: -1}
	}
	if recipFieldPerm == nil {
		recipFieldPerm = make([][3]float64, len(atoms))
	}

	var scfIter int
	converged := true
	var polarizationEnergy float64
	var partial bool
	extraD := make([][3]float64, len(atoms))
	extraP := make([][3]float64, len(atoms))

	if cfg.DoInducedPolarization {
		// Ewald self-field term (spec.md §4.5 step 2): the reaction of an
		// atom's own Gaussian-smeared dipole against the real/reciprocal
		// splitting, symmetric with selfEnergy's self-energy term.
		selfFieldD := make([][3]float64, len(atoms))
		if e.ew.Alpha > 0 {
			coeff := 4 * e.ew.Alpha * e.ew.Alpha * e.ew.Alpha / (3 * math.Sqrt(math.Pi))
			for i := range atoms {
				selfFieldD[i] = vscale(e.sc.Global[0][i].Dipole(), coeff)
			}
		}

		var rfFieldD [][3]float64
		if cfg.DoReactionField && e.gk != nil {
			charges := make([]float64, len(atoms))
			for i := range atoms {
				charges[i] = e.sc.Global[0][i][T000]
			}
			seedDipoles := make([][3]float64, len(atoms))
			var rfErr error
			rfFieldD, rfErr = e.gk.Field(charges, seedDipoles)
			if rfErr != nil {
				return EnergyResult{}, &EvalError{Kind: EvalErrCollaborator, Msg: rfErr.Error(), Iter: -1}
			}
		}

		for i := range atoms {
			extraD[i] = vadd(selfFieldD[i], recipFieldPerm[i])
			if rfFieldD != nil {
				extraD[i] = vadd(extraD[i], rfFieldD[i])
			}
			extraP[i] = extraD[i]
		}

		var recip ReciprocalInducedField
		if cfg.DoReciprocalSpace && e.rs != nil {
			recip = e.reciprocalInducedField(atoms)
		}
		iters, conv, err := SCF(atoms, e.sc, e.nl, &e.ew, extraD, extraP, recip, e.scfCfg, &cfg, e.pool)
		scfIter, converged = iters, conv
		if err != nil {
			if evalErr, ok := err.(*EvalError); ok && cfg.terminated() {
				partial = true
				_ = evalErr
			} else {
				return EnergyResult{}, err
			}
		}

		selfE, recipE, realE := inducedEnergy(e.sc, selfFieldD, recipFieldPerm)
		polarizationEnergy = selfE + recipE + realE

		totalFieldD := make([][3]float64, len(atoms))
		for i := range atoms {
			totalFieldD[i] = vadd(vadd(e.sc.FieldD[i], extraD[i]), e.sc.FieldInducedD[i])
		}
		Torque(atoms, e.sc, totalFieldD, e.pool)
	}

	if cfg.DoReactionField && e.gk != nil {
		charges := make([]float64, len(atoms))
		dipoles := make([][3]float64, len(atoms))
		field := make([][3]float64, len(atoms))
		for i := range atoms {
			charges[i] = e.sc.Global[0][i][T000]
			dipoles[i] = e.sc.Global[0][i].Dipole()
			field[i] = vadd(vadd(e.sc.FieldD[i], extraD[i]), e.sc.FieldInducedD[i])
		}
		rfEnergy, err := e.gk.Correct(charges, dipoles, field)
		if err != nil {
			return EnergyResult{}, &EvalError{Kind: EvalErrCollaborator, Msg: err.Error(), Iter: -1}
		}
		polarizationEnergy += rfEnergy
	}

	total := permanentEnergy + reciprocalEnergy + polarizationEnergy
	if mpi.IsOn() {
		buf := []float64{total}
		work := make([]float64, 1)
		mpi.AllReduceSum(buf, work)
		total = buf[0]
	}

	return EnergyResult{
		Total:         total,
		Permanent:     permanentEnergy,
		Reciprocal:    reciprocalEnergy,
		Polarization:  polarizationEnergy,
		SCFIterations: scfIter,
		SCFConverged:  converged,
		Interactions:  e.sc.Interactions,
		PartialResult: partial,
	}, nil
}

// Gradient returns the per-atom Cartesian force accumulated by the last
// Energy call.
func (e *Engine) Gradient() [][3]float64 { return e.sc.Gradient }

// TorqueResult returns the per-atom local-frame torque accumulated by the last
// Energy call.
func (e *Engine) TorqueResult() [][3]float64 { return e.sc.Torque }

// reciprocalPermanent runs the permanent-multipole half of the PME
// reciprocal-space pipeline (spline -> convolve -> compute-phi) and
// returns both the permanent reciprocal energy and, per atom, the
// reciprocal permanent field alpha^3*d_i - grad(phi_perm) that seeds
// induction (spec.md §4.5 step 2). unflattenField already returns
// -grad(phi), so the alpha^3 term is simply added to it.
func (e *Engine) reciprocalPermanent(atoms Atoms) (energy float64, fieldPerm [][3]float64, err error) {
	n := len(atoms)
	if err = e.rs.ComputeBSplines(flattenCoords(e.sc), n); err != nil {
		return
	}
	if err = e.rs.SplinePermanentMultipoles(flattenMultipoles(e.sc), nil); err != nil {
		return
	}
	if err = e.rs.PermanentMultipoleConvolution(); err != nil {
		return
	}
	phi := make([]float64, 20*n)
	if err = e.rs.ComputePermanentPhi(phi); err != nil {
		return
	}
	var sum float64
	for i := 0; i < n; i++ {
		var p Phi
		copy(p[:], phi[20*i:20*i+20])
		sum += contractPhi(e.sc.Global[0][i], p)
	}
	energy = 0.5 * Electric * sum

	alpha3 := e.ew.Alpha * e.ew.Alpha * e.ew.Alpha
	negGradPhi := unflattenField(phi, n)
	fieldPerm = make([][3]float64, n)
	for i := range fieldPerm {
		d := e.sc.Global[0][i].Dipole()
		fieldPerm[i] = vadd(negGradPhi[i], vscale(d, alpha3))
	}
	return
}

func (e *Engine) reciprocalInducedField(atoms Atoms) ReciprocalInducedField {
	n := len(atoms)
	return func(muD, muP [][3]float64) (fieldD, fieldP [][3]float64, err error) {
		if err = e.rs.SplineInducedDipoles(flattenVec3(muD), flattenVec3(muP), nil); err != nil {
			return
		}
		if err = e.rs.InducedDipoleConvolution(); err != nil {
			return
		}
		phiD := make([]float64, 20*n)
		phiP := make([]float64, 20*n)
		if err = e.rs.ComputeInducedPhi(phiD, phiP); err != nil {
			return
		}
		fieldD = unflattenField(phiD, n)
		fieldP = unflattenField(phiP, n)
		return
	}
}

// inducedEnergy is the polarization energy term of spec.md §4.6, computed
// as three separately-named contributions that together equal the
// standard stationary-point identity U_pol = -1/2 * sum_i mu_i . E_perm_i,
// each built from the part of E_perm it corresponds to:
//
//   - induced self-energy: the Ewald self-field contribution (selfFieldD),
//   - induced reciprocal energy: the reciprocal permanent field
//     contribution (recipFieldD),
//   - real-space permanent-induced pairwise energy: the real-space field
//     RealField already populated into sc.FieldD.
//
// Splitting the stationary-point dot product this way, instead of
// assembling an explicit induced-induced pairwise double sum, is why no
// separate Direct-mode double-counting correction is applied: that
// correction is only needed when an implementation pairs every induced
// dipole against every other induced dipole's field directly, which
// double-counts an induced-induced cross term whenever Direct mode
// performs zero Mutual iterations. The field-based identity used here is
// exact at the SCF fixed point regardless of how many iterations produced
// it (zero, in Direct mode; MaxIter or fewer, in Mutual mode), so it never
// needs that correction in either mode.
func inducedEnergy(sc *Scratch, selfFieldD, recipFieldD [][3]float64) (selfE, recipE, realE float64) {
	var selfAcc, recipAcc, realAcc float64
	for i := range sc.MuD {
		avg := vscale(vadd(sc.MuD[i], sc.MuP[i]), 0.5)
		selfAcc += vdot(avg, selfFieldD[i])
		recipAcc += vdot(avg, recipFieldD[i])
		realAcc += vdot(avg, sc.FieldD[i])
	}
	return -0.5 * Electric * selfAcc, -0.5 * Electric * recipAcc, -0.5 * Electric * realAcc
}
