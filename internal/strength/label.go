// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import "fmt"

// Label is the qualitative strength of a password.
type Label int

const (
	Weak Label = iota
	Acceptable
	Strong
)

func (l Label) String() string {
	switch l {
	case Weak:
		return "WEAK"
	case Acceptable:
		return "ACCEPTABLE"
	case Strong:
		return "STRONG"
	default:
		return "UNKNOWN"
	}
}

// Attack rates in guesses per second.
const (
	StandardAttackRate = 1e9
	StrictAttackRate   = 1e11
)

// Policy maps entropy and denylist membership to a Label.
//
// Entropy below WeakBelow is Weak, from StrongFrom up is Strong, anything
// in between is Acceptable.
type Policy struct {
	Name        string
	WeakBelow   float64
	StrongFrom  float64
	AttackRate  float64
	UseDenylist bool
}

var (
	// StandardPolicy is the default: a denylisted password is always weak.
	StandardPolicy = Policy{
		Name:        "standard",
		WeakBelow:   28,
		StrongFrom:  50,
		AttackRate:  StandardAttackRate,
		UseDenylist: true,
	}

	// StrictPolicy ignores the denylist and asks for more entropy against a faster attacker.
	StrictPolicy = Policy{
		Name:        "strict",
		WeakBelow:   40,
		StrongFrom:  60,
		AttackRate:  StrictAttackRate,
		UseDenylist: false,
	}
)

// PolicyByName returns one of the named policies.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case StandardPolicy.Name:
		return StandardPolicy, nil
	case StrictPolicy.Name:
		return StrictPolicy, nil
	default:
		return Policy{}, fmt.Errorf("unknown policy %q", name)
	}
}

// WithAttackRate returns a copy of the policy using rate, if positive.
func (p Policy) WithAttackRate(rate float64) Policy {
	if rate > 0 {
		p.AttackRate = rate
	}
	return p
}

// Classify labels an entropy value. Denylisted passwords are Weak when the policy uses the denylist.
func (p Policy) Classify(entropy float64, denylisted bool) Label {
	if p.UseDenylist && denylisted {
		return Weak
	}

	switch {
	case entropy < p.WeakBelow:
		return Weak
	case entropy < p.StrongFrom:
		return Acceptable
	default:
		return Strong
	}
}
