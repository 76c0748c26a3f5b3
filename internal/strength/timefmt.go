// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
)

var timeUnits = []struct {
	name    string
	seconds int64
}{
	{"year", 60 * 60 * 24 * 365},
	{"day", 60 * 60 * 24},
	{"hour", 60 * 60},
	{"minute", 60},
	{"second", 1},
}

func unitString(value *big.Int, name string) string {
	if value.IsInt64() && value.Int64() == 1 {
		return "1 " + name
	}
	return humanize.BigComma(value) + " " + name + "s"
}

// FormatTime renders seconds largest unit first, truncating each unit to a
// whole number and leaving out zero units. Zero renders as "0 seconds".
func FormatTime(seconds *big.Int) string {
	rest := new(big.Int).Set(seconds)
	if rest.Sign() <= 0 {
		return "0 seconds"
	}

	var parts []string
	for _, unit := range timeUnits {
		value, rem := new(big.Int).QuoRem(rest, big.NewInt(unit.seconds), new(big.Int))
		rest = rem
		if value.Sign() > 0 {
			parts = append(parts, unitString(value, unit.name))
		}
	}

	return strings.Join(parts, ", ")
}

// ApproxTime renders seconds as its largest unit, rounded to the nearest whole value.
func ApproxTime(seconds *big.Int) string {
	if seconds.Sign() <= 0 {
		return "less than a second"
	}

	for i, unit := range timeUnits {
		size := big.NewInt(unit.seconds)
		if seconds.Cmp(size) < 0 {
			continue
		}

		value := roundQuo(seconds, size)
		// 3599 seconds is about 1 hour, not about 60 minutes.
		if i > 0 && new(big.Int).Mul(value, size).Cmp(big.NewInt(timeUnits[i-1].seconds)) >= 0 {
			unit = timeUnits[i-1]
			value = roundQuo(seconds, big.NewInt(unit.seconds))
		}
		return fmt.Sprintf("about %s", unitString(value, unit.name))
	}

	return "less than a second"
}

// roundQuo is x / y rounded half up.
func roundQuo(x, y *big.Int) *big.Int {
	value := new(big.Int).Add(x, new(big.Int).Rsh(y, 1))
	return value.Quo(value, y)
}
