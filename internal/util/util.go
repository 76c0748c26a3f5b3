package util

import (
	"fmt"
	"runtime"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/mem"
)

// Stats returns a func that logs the memory statistics of the process at debug level.
// Meant to be deferred.
func Stats() func() {
	return func() {
		if zerolog.GlobalLevel() > zerolog.DebugLevel {
			return
		}

		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		log.Debug().Msgf("Alloc: %d MB, TotalAlloc: %d MB, Sys: %d MB",
			ms.Alloc/1024/1024, ms.TotalAlloc/1024/1024, ms.Sys/1024/1024)
		log.Debug().Msgf("Mallocs: %d, Frees: %d, GC: %d", ms.Mallocs, ms.Frees, ms.NumGC)
		log.Debug().Msgf("HeapAlloc: %d MB, HeapSys: %d MB, HeapIdle: %d MB",
			ms.HeapAlloc/1024/1024, ms.HeapSys/1024/1024, ms.HeapIdle/1024/1024)
		log.Debug().Msgf("HeapObjects: %d", ms.HeapObjects)
	}
}

func ApplyCliSettings(verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Msg("verbosity up")
	}
}

// CheckRam fails when the system does not have enough free memory to hold the
// given amount of 64 bit items. If the memory stats are unavailable it only warns.
func CheckRam(items uint64) error {
	required := items * 8
	memStat, err := mem.VirtualMemory()
	if err != nil {
		log.Warn().Msgf("estimated memory use for %d items is %d MiB", items, required/(1024*1024))
		return nil
	}

	log.Debug().Msgf("system has %.2f MiB of RAM available", float64(memStat.Available)/(1024*1024))
	if required > memStat.Available {
		return fmt.Errorf("system does not have the required %d MiB of RAM available", required/(1024*1024))
	}

	return nil
}

// ToKebabCase converts a Go field name (AttackRate) to its flag name (attack-rate).
func ToKebabCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
