// Package siqs implements the self-initializing multiple-polynomial
// quadratic sieve: factor-base construction, the Gray-code polynomial
// family, the sieving pass, GF(2) linear algebra over the relation set,
// and the final congruence combination step.
package siqs

import (
	"github.com/bfix/siqs/internal/bigint"
	"github.com/bfix/siqs/internal/primes"
)

// FactorBase is the set of odd primes p for which N is a quadratic
// residue mod p, the only primes that can ever divide a value of the
// sieving polynomial.
type FactorBase struct {
	Primes []*bigint.Int
}

// BuildFactorBase generates primes up to the bound for the amount-th
// prime and keeps those p != 2 with (N|p) = 1.
func BuildFactorBase(n *bigint.Int, amount int) *FactorBase {
	limit := primes.NthPrimeBound(amount)
	if limit < 3 {
		limit = 3
	}
	candidates := primes.Sieve(limit + 1)

	fb := &FactorBase{Primes: make([]*bigint.Int, 0, len(candidates))}
	for _, p := range candidates {
		if p == 2 {
			continue
		}
		prime := bigint.NewInt(p)
		if isQuadraticResidue(n, prime) {
			fb.Primes = append(fb.Primes, prime)
		}
	}
	return fb
}

// isQuadraticResidue reports whether n is a quadratic residue mod the
// (odd) prime p, via Euler's criterion.
func isQuadraticResidue(n, p *bigint.Int) bool {
	return n.Legendre(p) == 1
}

// Len returns the number of primes in the factor base.
func (fb *FactorBase) Len() int {
	return len(fb.Primes)
}

// basePrimeWindow selects the contiguous slice of the factor base with
// primes in [low, high), the pool that a polynomial family's base primes
// (the factors of its coefficient `a`) are drawn from. Only the primes
// actually chosen from this pool are removed from the sieving factor base
// (see excludePrimes); the rest of the window is still sieved.
func basePrimeWindow(fb *FactorBase, low, high int) []*bigint.Int {
	var out []*bigint.Int
	for _, p := range fb.Primes {
		if p.Cmp(bigint.NewInt(int64(low))) >= 0 && p.Cmp(bigint.NewInt(int64(high))) < 0 {
			out = append(out, p)
		}
	}
	return out
}

// excludePrimes returns the primes in all that are not also in exclude,
// preserving all's order. Used to derive the sieving factor base from
// the full factor base once a polynomial family's base primes (the
// factors of a) have been chosen — a's own factors can never contribute
// a smooth Q(x) residue and aren't invertible mod themselves.
func excludePrimes(all, exclude []*bigint.Int) []*bigint.Int {
	skip := make(map[string]struct{}, len(exclude))
	for _, p := range exclude {
		skip[p.String()] = struct{}{}
	}
	out := make([]*bigint.Int, 0, len(all))
	for _, p := range all {
		if _, ok := skip[p.String()]; ok {
			continue
		}
		out = append(out, p)
	}
	return out
}
