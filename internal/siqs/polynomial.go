package siqs

import (
	"fmt"
	"math/bits"

	"github.com/bfix/siqs/internal/bigint"
	"github.com/bfix/siqs/internal/tonelli"
)

// Polynomial is one member Q(x) = ((a*x+b)^2 - N) / a of a
// self-initializing polynomial family sharing the same leading
// coefficient a.
type Polynomial struct {
	A, B, N *bigint.Int
}

// Eval returns Q(x) for the given x. The division by a is exact: the
// generator chooses b so that b^2 ≡ N (mod a), so a always divides
// (a*x+b)^2 - N cleanly. Sieving over Q(x) rather than the raw
// (a*x+b)^2-N is what lets the factor base skip the base primes that
// make up a entirely — see NewPolyGenerator.
func (p *Polynomial) Eval(x *bigint.Int) *bigint.Int {
	ax := p.A.Mul(x)
	t := ax.Add(p.B)
	num := t.Mul(t).Sub(p.N)
	return num.Div(p.A)
}

// PolyGenerator produces the Gray-code family of self-initializing
// polynomials sharing a single coefficient a = product(basePrimes), and
// tracks the per-factor-base-prime roots of Q(x) = 0 (mod p) across the
// family without resolving Tonelli-Shanks for every polynomial: each
// successive root is reached from the previous one by adding a
// precomputed delta (addFactors).
type PolyGenerator struct {
	n          *bigint.Int
	a          *bigint.Int
	b          *bigint.Int
	bValues    []*bigint.Int
	addFactors [][]*bigint.Int // [factorBaseIndex][basePrimeIndex]
	factorBase []*bigint.Int

	counter int64
}

// maxBasePrimes bounds how many base primes may multiply together into
// a, since the Gray-code index is tracked in an int64 counter (the 2^61
// member family of 62 base primes is already astronomically more polynomials than any sieve run
// will ever need).
const maxBasePrimes = 62

// NewPolyGenerator builds the polynomial family for N with leading
// coefficient a = product(basePrimes), precomputing the root-update
// deltas for every prime in factorBase.
func NewPolyGenerator(n *bigint.Int, basePrimes, factorBase []*bigint.Int) (*PolyGenerator, error) {
	if len(basePrimes) == 0 {
		return nil, fmt.Errorf("siqs: polynomial generator needs at least one base prime")
	}
	if len(basePrimes) > maxBasePrimes {
		return nil, fmt.Errorf("siqs: %d base primes exceeds the %d-prime limit", len(basePrimes), maxBasePrimes)
	}

	a := basePrimes[0]
	for _, p := range basePrimes[1:] {
		a = a.Mul(p)
	}

	bValues := make([]*bigint.Int, len(basePrimes))
	for i, p := range basePrimes {
		frac := a.Div(p)
		inv, ok := frac.ModInverse(p)
		if !ok {
			return nil, fmt.Errorf("siqs: base prime %s shares a factor with a/%s", p, p)
		}

		t1 := tonelli.Sqrt(n, p)
		t2 := p.Sub(t1)

		gamma1 := t1.Mul(inv).Mod(p)
		gamma2 := t2.Mul(inv).Mod(p)

		gamma := gamma1
		if gamma2.Cmp(gamma1) < 0 {
			gamma = gamma2
		}
		bValues[i] = frac.Mul(gamma)
	}

	addFactors := make([][]*bigint.Int, len(factorBase))
	for i, p := range factorBase {
		aInv, ok := a.ModInverse(p)
		if !ok {
			return nil, fmt.Errorf("siqs: a shares a factor with factor-base prime %s", p)
		}
		row := make([]*bigint.Int, len(basePrimes))
		for j, bv := range bValues {
			row[j] = bigint.Two.Mul(bv).Mul(aInv).Mod(p)
		}
		addFactors[i] = row
	}

	return &PolyGenerator{
		n:          n,
		a:          a,
		bValues:    bValues,
		addFactors: addFactors,
		factorBase: factorBase,
	}, nil
}

// A returns the shared leading coefficient of the polynomial family.
func (g *PolyGenerator) A() *bigint.Int {
	return g.a
}

// HasNext reports whether the Gray code has members left to enumerate.
func (g *PolyGenerator) HasNext() bool {
	return g.counter < int64(1)<<(uint(len(g.bValues))-1)
}

// Next returns the next polynomial in the self-initializing family. Must
// not be called once HasNext is false.
func (g *PolyGenerator) Next() *Polynomial {
	if g.counter == 0 {
		b := bigint.Zero
		for _, bv := range g.bValues {
			b = b.Add(bv)
		}
		g.b = b.Mod(g.a)
		g.counter = 1
		return &Polynomial{A: g.a, B: g.b, N: g.n}
	}

	mu := bits.TrailingZeros64(uint64(g.counter))
	exponent := 1 + (g.counter-1)/(int64(1)<<uint(mu+1))
	multiplier := bigint.Two
	if exponent%2 != 0 {
		multiplier = multiplier.Neg()
	}

	g.b = g.b.Add(multiplier.Mul(g.bValues[mu]))
	g.counter++
	return &Polynomial{A: g.a, B: g.b, N: g.n}
}

// Root is a pair of roots {x1, x2} of Q(x) = 0 (mod p) for one
// factor-base prime.
type Root struct {
	X1, X2 *bigint.Int
}

// Roots computes Q(x) = 0 (mod p) for every prime in the factor base,
// for the polynomial most recently returned by Next. When prev is nil
// the roots are solved from scratch via Tonelli-Shanks; otherwise each
// root is derived from prev by adding the precomputed delta for the
// Gray-code step that produced poly, which is far cheaper than a fresh
// square-root computation per polynomial.
func (g *PolyGenerator) Roots(poly *Polynomial, prev []Root) []Root {
	out := make([]Root, len(g.factorBase))

	if prev == nil {
		for i, p := range g.factorBase {
			root := tonelli.Sqrt(g.n, p)
			aInv, _ := poly.A.ModInverse(p)

			sol1 := root.Sub(poly.B).Mul(aInv).Mod(p)
			sol2 := root.Neg().Sub(poly.B).Mul(aInv).Mod(p)
			out[i] = Root{X1: sol1, X2: sol2}
		}
		return out
	}

	mu := bits.TrailingZeros64(uint64(g.counter - 1))
	exponent := 1 + (g.counter-2)/(int64(1)<<uint(mu+1))
	multiplier := bigint.One
	if exponent%2 == 0 {
		multiplier = multiplier.Neg()
	}

	for i, p := range g.factorBase {
		addFactor := g.addFactors[i][mu].Mul(multiplier)
		out[i] = Root{
			X1: prev[i].X1.Add(addFactor).Mod(p),
			X2: prev[i].X2.Add(addFactor).Mod(p),
		}
	}
	return out
}
