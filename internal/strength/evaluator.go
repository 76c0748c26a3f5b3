// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"fmt"
	"math/big"
)

// Denylist reports whether a password is a known weak password.
type Denylist interface {
	Contains(password string) (bool, error)
}

// Result is the evaluation of a single password.
type Result struct {
	Length       int
	Classes      ClassSet
	PoolSize     int
	Entropy      float64
	Combinations *big.Int
	Seconds      *big.Int
	AttackRate   float64
	Denylisted   bool
	Label        Label
	Pattern      Pattern
}

// Evaluator applies a Policy and a read-only Denylist to passwords. It holds no
// mutable state and is safe to share.
type Evaluator struct {
	policy   Policy
	denylist Denylist
}

// NewEvaluator creates an evaluator. denylist may be nil.
func NewEvaluator(policy Policy, denylist Denylist) *Evaluator {
	return &Evaluator{policy: policy, denylist: denylist}
}

// Evaluate computes the entropy, the brute force estimate and the label of password.
// It fails on a policy without a usable attack rate or when the denylist lookup fails.
func (e *Evaluator) Evaluate(password string) (Result, error) {
	classes := Classes(password)
	combinations := Combinations(password)
	seconds, err := BruteForceSeconds(combinations, e.policy.AttackRate)
	if err != nil {
		return Result{}, err
	}

	r := Result{
		Length:       Length(password),
		Classes:      classes,
		PoolSize:     classes.PoolSize(),
		Entropy:      Entropy(password),
		Combinations: combinations,
		Seconds:      seconds,
		AttackRate:   e.policy.AttackRate,
		Pattern:      patternScore(password),
	}

	if e.policy.UseDenylist && e.denylist != nil {
		listed, err := e.denylist.Contains(password)
		if err != nil {
			return Result{}, fmt.Errorf("error checking denylist: %w", err)
		}
		r.Denylisted = listed
	}

	r.Label = e.policy.Classify(r.Entropy, r.Denylisted)
	return r, nil
}
