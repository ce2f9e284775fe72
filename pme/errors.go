// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

import "fmt"

// ConfigError reports a configuration problem detected at construction
// time (spec.md §7): N < 1, a negative polarizability, or missing or
// out-of-range axis atoms (see Atoms.validate). Lambda is a per-call
// setting and is not range-checked at construction. Construction fails
// fast; there is no partial Engine.
type ConfigError struct {
	Msg  string
	Atom int // -1 if not atom-specific
}

func (e *ConfigError) Error() string {
	if e.Atom >= 0 {
		return fmt.Sprintf("%s (atom %d)", e.Msg, e.Atom)
	}
	return e.Msg
}

// EvalErrorKind classifies why an energy evaluation aborted.
type EvalErrorKind int

const (
	// EvalErrDivergence: the SCF residual grew between iterations, or
	// maxIter was reached without convergence.
	EvalErrDivergence EvalErrorKind = iota
	// EvalErrCollaborator: the reciprocal-space or GK collaborator
	// returned an error.
	EvalErrCollaborator
)

// EvalError reports a failure during Engine.Energy. The energy function
// never returns a partial energy alongside a non-nil EvalError (spec.md
// §7); a clean termination request is reported separately via
// EnergyResult.PartialResult, not as an error.
type EvalError struct {
	Kind EvalErrorKind
	Msg  string
	Iter int // SCF iteration at which the failure was detected, or -1
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case EvalErrDivergence:
		return fmt.Sprintf("gopme: SCF divergence at iteration %d: %s", e.Iter, e.Msg)
	case EvalErrCollaborator:
		return fmt.Sprintf("gopme: reciprocal-space or reaction-field collaborator failed: %s", e.Msg)
	default:
		return "gopme: evaluation failed: " + e.Msg
	}
}
