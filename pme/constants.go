// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pme

// Electric converts electrostatic units (e, Å) to kcal/mol (spec.md §6).
const Electric = 332.063713

// DebyeConvFactor converts the induced-dipole RMS residual (e·Å) to Debye
// for the SCF convergence check (spec.md §4.5). 1 e·Å = 4.803204... Debye.
const DebyeConvFactor = 4.80320425

// SelfScale is the weight applied to a self-image pair (i==k, s>0) in the
// real-space evaluators (spec.md §4.3).
const SelfScale = 0.5
