// Package metrics accumulates sieve-run statistics for progress reporting.
// It is purely observational: nothing here feeds back into the factoring
// contract, only into the CLI's progress lines (spec §6).
package metrics

import (
	"sync"
	"time"

	"github.com/montanaflynn/stats"
)

// RunStats is an immutable snapshot of a sieve run's progress.
type RunStats struct {
	Polynomials            int
	Relations              int
	MeanRelationsPerPoly   float64
	StdDevRelationsPerPoly float64
	Elapsed                time.Duration
}

// Collector accumulates per-polynomial relation counts across (possibly
// concurrent) sieve workers.
type Collector struct {
	mu        sync.Mutex
	started   time.Time
	perPoly   []float64
	relations int
}

// NewCollector starts a collector with its clock running from now.
func NewCollector(start time.Time) *Collector {
	return &Collector{started: start}
}

// Observe records the number of relations a single polynomial's sieve pass
// produced. Safe to call from multiple sieve worker goroutines.
func (c *Collector) Observe(relationsThisPoly int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.perPoly = append(c.perPoly, float64(relationsThisPoly))
	c.relations += relationsThisPoly
}

// Snapshot returns the current run statistics. With zero observations the
// mean and standard deviation are both 0, never NaN.
func (c *Collector) Snapshot(now time.Time) RunStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var mean, stddev float64
	if len(c.perPoly) > 0 {
		mean, _ = stats.Mean(c.perPoly)
		if len(c.perPoly) > 1 {
			stddev, _ = stats.StandardDeviation(c.perPoly)
		}
	}
	return RunStats{
		Polynomials:            len(c.perPoly),
		Relations:              c.relations,
		MeanRelationsPerPoly:   mean,
		StdDevRelationsPerPoly: stddev,
		Elapsed:                now.Sub(c.started),
	}
}
