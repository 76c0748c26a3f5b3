// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"fmt"
	"math"
	"math/big"
	"unicode/utf8"
)

// Length counts the characters (code points) of password.
func Length(password string) int {
	return utf8.RuneCountInString(password)
}

// Entropy estimates the bits of entropy of password as length * log2(pool size).
func Entropy(password string) float64 {
	pool := PoolSize(password)
	if pool == 0 {
		return 0
	}
	return float64(Length(password)) * math.Log2(float64(pool))
}

// Combinations is the size of the search space, pool size ^ length.
func Combinations(password string) *big.Int {
	pool := big.NewInt(int64(PoolSize(password)))
	return pool.Exp(pool, big.NewInt(int64(Length(password))), nil)
}

// BruteForceSeconds is the time in whole seconds needed to try every
// combination at attackRate guesses per second.
func BruteForceSeconds(combinations *big.Int, attackRate float64) (*big.Int, error) {
	if !(attackRate > 0) || math.IsInf(attackRate, 1) {
		return nil, fmt.Errorf("attack rate must be a positive finite number, got %g", attackRate)
	}

	seconds := new(big.Float).SetInt(combinations)
	seconds.Quo(seconds, big.NewFloat(attackRate))
	whole, _ := seconds.Int(nil)
	return whole, nil
}
