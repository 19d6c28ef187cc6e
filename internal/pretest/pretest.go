// Package pretest is the external collaborator spec §4.8 describes:
// a cheap pass that peels off any factor small enough that the sieve
// would be overkill, so Factor only reaches for SIQS once trial
// division and Pollard's rho have both given up.
package pretest

import (
	"github.com/bfix/siqs/internal/bigint"
	"github.com/bfix/siqs/internal/primes"
)

const (
	rhoRetry = 100
	rhoLoop  = 8192
)

// Peel trial-divides n by every prime in the shared first-1000-primes
// table below smallLimit, stripping each one out to exhaustion (a
// repeated small factor like 2*2*3 peels off every occurrence, not just
// the first), then runs Pollard's rho repeatedly over whatever composite
// cofactor remains, recursing into any factor rho turns up that is
// itself still composite. Mirrors
// original_source/factorize.cpp's preprocessNumber (the per-prime `while`
// loop) followed by pollardRho. Returns the fully-reduced cofactor and
// the multiset of factors found; an empty factors slice means neither
// pass found anything, leaving n to be handed to the sieve whole.
func Peel(n, smallLimit *bigint.Int) (cofactor *bigint.Int, factors []*bigint.Int) {
	num := newNumber(n)

	for _, p64 := range primes.Small1000() {
		p := bigint.NewInt(p64)
		if p.Cmp(smallLimit) >= 0 {
			break
		}
		for num.value.Sign() != 0 && num.value.Mod(p).Sign() == 0 {
			num.AddFactor(p)
		}
	}

	for num.value.Cmp(bigint.One) > 0 && !num.value.ProbablyPrime(32) {
		d := pollardRho(num.value)
		if d == nil {
			break
		}
		peelFactor(num, d)
	}

	return num.value, num.Factors()
}

// peelFactor adds d to num's factor multiset, first recursing to split d
// itself if Pollard's rho found it composite — a single rho run isn't
// guaranteed to land on a prime.
func peelFactor(num *Number, d *bigint.Int) {
	if d.ProbablyPrime(32) {
		num.AddFactor(d)
		return
	}
	sub := pollardRho(d)
	if sub == nil {
		num.AddFactor(d)
		return
	}
	peelFactor(num, sub)
	peelFactor(num, d.Div(sub))
}

// pollardRho runs Floyd's cycle-finding variant of Pollard's rho,
// retrying with a fresh pseudo-random seed when a run's sequence
// degenerates without separating a factor.
func pollardRho(n *bigint.Int) *bigint.Int {
	for attempt := 0; attempt < rhoRetry; attempt++ {
		c := bigint.RandRange(bigint.One, n)
		x := bigint.Two
		y := bigint.Two
		d := bigint.One

		for loop := 0; d.Cmp(bigint.One) == 0 && loop < rhoLoop; loop++ {
			x = step(x, c, n)
			y = step(step(y, c, n), c, n)
			d = x.Sub(y).Abs().GCD(n)
		}
		if d.Cmp(bigint.One) > 0 && d.Cmp(n) < 0 {
			return d
		}
	}
	return nil
}

// step advances Pollard's rho pseudo-random sequence x -> x^2+c (mod n).
func step(x, c, n *bigint.Int) *bigint.Int {
	return x.Mul(x).Add(c).Mod(n)
}
