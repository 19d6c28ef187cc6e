package siqs

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bfix/siqs/internal/bigint"
)

// TestSieveFactorsSmallSemiprime drives the factor-base, polynomial,
// sieve, linear-algebra and combine stages directly (bypassing Factor's
// auto-sized factor base and random base-prime selection) against a toy
// semiprime small enough to hand-verify, confirming the pipeline as a
// whole recovers the two prime factors.
func TestSieveFactorsSmallSemiprime(t *testing.T) {
	const (
		p1 = 1429
		p2 = 1087
	)
	n := bigint.NewInt(p1 * p2)

	fb := BuildFactorBase(n, 40)
	basePrimes := primeList(7, 23)
	sieveFB := excludePrimes(fb.Primes, basePrimes)

	gen, err := NewPolyGenerator(n, basePrimes, sieveFB)
	if err != nil {
		t.Fatalf("NewPolyGenerator: %v", err)
	}

	target := len(sieveFB)
	rs, polyCount, err := RunSieve(context.Background(), gen, sieveFB, n, 4000, target, 2, 0, 2.0/3.0, nil)
	if err != nil {
		t.Fatalf("RunSieve: %v", err)
	}
	if polyCount == 0 {
		t.Fatalf("expected at least one polynomial to be sieved")
	}

	relations := rs.Snapshot()
	if len(relations) < len(sieveFB) {
		t.Fatalf("got %d relations, want at least %d", len(relations), len(sieveFB))
	}

	vectors := parityVectors(relations)
	f, cofactor, ok := trySolve(n, sieveFB, gen.A(), relations, vectors, zerolog.Nop())
	if !ok {
		t.Fatalf("trySolve found no nontrivial factor from %d relations", len(relations))
	}

	got := [2]int64{f.Int64(), cofactor.Int64()}
	want := [2]int64{p1, p2}
	if got != want && got != [2]int64{want[1], want[0]} {
		t.Fatalf("factors = %v, want {%d, %d} in either order", got, p1, p2)
	}
}
