// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

// PolarizationMode selects how induced dipoles are determined (spec.md
// §4.5).
type PolarizationMode int

const (
	Direct PolarizationMode = iota
	Mutual
)

// EvaluationConfig is the per-call configuration struct of spec.md §9
// ("global-state toggles ... -> per-call EvaluationConfig struct passed
// down the call tree rather than field mutation on a long-lived object").
type EvaluationConfig struct {
	UseSymmetry           bool // advisory only: no evaluator reads it, every image of the Crystal is used (spec.md open question, see DESIGN.md)
	DoPermanentRealSpace  bool
	DoReciprocalSpace     bool // false when Alpha == 0
	DoInducedPolarization bool
	DoReactionField       bool // consult the GeneralizedKirkwood collaborator
	SequentialSections    bool // collapse real/reciprocal fork-join to sequential

	Lambda       float64 // alchemical lambda, see lambda.go; 1.0 when disabled
	LambdaActive bool

	Terminate *bool // external termination flag, polled between SCF iterations
}

// DefaultEvaluationConfig returns a config with every optional section
// enabled and lambda disabled.
func DefaultEvaluationConfig() EvaluationConfig {
	return EvaluationConfig{
		UseSymmetry:           true,
		DoPermanentRealSpace:  true,
		DoReciprocalSpace:     true,
		DoInducedPolarization: true,
		Lambda:                1.0,
	}
}

// terminated polls the external termination flag, if any.
func (c *EvaluationConfig) terminated() bool {
	return c.Terminate != nil && *c.Terminate
}

// SCFConfig holds the SCF solver's tuning knobs (spec.md §4.5), normally
// sourced from the force-field file the way gofem sources its Solver
// tolerances from inp.Simulation.
type SCFConfig struct {
	Mode      PolarizationMode
	SOR       float64 // omega, default 0.70
	Poleps    float64 // convergence threshold in Debye, default 1e-6
	MaxIter   int     // default 1000
	DebyeConv float64 // Debye conversion factor for the convergence check
}

// DefaultSCFConfig returns the defaults named in spec.md §4.5.
func DefaultSCFConfig() SCFConfig {
	return SCFConfig{
		Mode:      Mutual,
		SOR:       0.70,
		Poleps:    1e-6,
		MaxIter:   1000,
		DebyeConv: DebyeConvFactor,
	}
}
