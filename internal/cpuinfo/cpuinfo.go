// Package cpuinfo picks a default sieve worker count from the detected
// CPU topology. The sieve is embarrassingly parallel across polynomials
// (spec §5), so more cores directly translates to more concurrent
// sievers; machines with a large L2 cache can also afford a bigger
// per-worker sieve chunk before it stops fitting in cache.
package cpuinfo

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// Workers returns a sensible default sieve worker count: one goroutine per
// logical core, reserving one core for the caller (CLI output, relation
// dedup bookkeeping) on machines with more than two cores.
func Workers() int {
	n := runtime.NumCPU()
	if n > 2 {
		n--
	}
	return n
}

// SieveChunkHint returns a suggested per-worker sieve sub-interval length,
// sized so the working set (one float64 log-accumulator per position) stays
// within roughly half of the detected L2 cache.
func SieveChunkHint(halfWidth int) int {
	l2 := cpuid.CPU.Cache.L2
	if l2 <= 0 {
		return 2 * halfWidth
	}
	budget := l2 / 2
	words := budget / 8 // one float64 accumulator per sieve position
	if words < 1024 {
		words = 1024
	}
	if words > 2*halfWidth {
		words = 2 * halfWidth
	}
	return words
}
