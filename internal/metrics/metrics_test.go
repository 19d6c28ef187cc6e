package metrics

import (
	"testing"
	"time"
)

func TestSnapshotZeroObservations(t *testing.T) {
	start := time.Now()
	c := NewCollector(start)
	snap := c.Snapshot(start)
	if snap.Polynomials != 0 || snap.Relations != 0 {
		t.Fatalf("expected zero counts, got %+v", snap)
	}
	if snap.MeanRelationsPerPoly != 0 || snap.StdDevRelationsPerPoly != 0 {
		t.Fatalf("expected zero mean/stddev (not NaN), got %+v", snap)
	}
}

func TestSnapshotAccumulates(t *testing.T) {
	start := time.Now()
	c := NewCollector(start)
	c.Observe(10)
	c.Observe(20)
	c.Observe(30)
	snap := c.Snapshot(start.Add(time.Second))
	if snap.Polynomials != 3 || snap.Relations != 60 {
		t.Fatalf("unexpected accumulation: %+v", snap)
	}
	if snap.MeanRelationsPerPoly != 20 {
		t.Fatalf("mean = %v, want 20", snap.MeanRelationsPerPoly)
	}
	if snap.Elapsed != time.Second {
		t.Fatalf("elapsed = %v, want 1s", snap.Elapsed)
	}
}
