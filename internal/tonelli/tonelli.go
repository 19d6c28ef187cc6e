// Package tonelli implements the Tonelli-Shanks algorithm for computing
// modular square roots, used pervasively by SIQS initialization: every
// factor-base prime's √N mod p is found this way, and the self-initializing
// polynomial family derives its B-values from the same roots.
package tonelli

import "github.com/bfix/siqs/internal/bigint"

// Sqrt computes a square root of n modulo the odd prime p, given that n is
// a quadratic residue mod p (i.e. Legendre(n, p) == 1). It follows the
// standard Tonelli-Shanks loop: factor p-1 = q*2^s with q odd, find the
// least quadratic non-residue z, then repeatedly square-root t down to 1
// while keeping R as the running root. It returns the root in [0, p) that
// the loop ends on (for n=5, p=41 that is 28, not 13); the second root is
// p - r.
//
// Calling Sqrt when n is not a quadratic residue mod p is a contract
// violation and panics - callers are expected to have already checked the
// Legendre symbol (factor-base construction does this as part of prime
// selection).
func Sqrt(n, p *bigint.Int) *bigint.Int {
	if n.Legendre(p) != 1 {
		panic("tonelli: n is not a quadratic residue mod p")
	}

	// 1. Factor p-1 = q * 2^s with q odd.
	s := 0
	q := p.Sub(bigint.One)
	for q.IsEven() {
		s++
		q = q.Div(bigint.Two)
	}

	// Fast path: p = 3 (mod 4) ⇒ s == 1, root is n^((p+1)/4).
	if s == 1 {
		exp := p.Add(bigint.One).Div(bigint.Four)
		return n.ModPow(exp, p)
	}

	// 2. Find the smallest z >= 2 that is a quadratic non-residue mod p.
	z := bigint.Two
	for z.Legendre(p) != -1 {
		z = z.Add(bigint.One)
	}

	// 3. Initialize M, c, t, R.
	c := z.ModPow(q, p)
	tVal := n.ModPow(q, p)
	r := n.ModPow(q.Add(bigint.One).Div(bigint.Two), p)
	m := s

	for {
		if tVal.Sign() == 0 {
			return bigint.Zero
		}
		if tVal.Equal(bigint.One) {
			return r
		}
		// find least i >= 1 with t^(2^i) == 1 (mod p)
		i := 1
		ti := tVal.Mul(tVal).Mod(p)
		for !ti.Equal(bigint.One) {
			ti = ti.Mul(ti).Mod(p)
			i++
		}
		b := c.ModPow(bigint.NewInt(1).Lsh(m - i - 1), p)
		r = r.Mul(b).Mod(p)
		c = b.Mul(b).Mod(p)
		tVal = tVal.Mul(c).Mod(p)
		m = i
	}
}
