// Package bigint provides the arbitrary-precision signed integer type used
// throughout the sieve: comparison, modular arithmetic, integer square
// roots and the handful of number-theoretic helpers the quadratic sieve
// needs on its hot path.
package bigint

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
)

var (
	// Zero is 0.
	Zero = NewInt(0)
	// One is 1.
	One = NewInt(1)
	// Two is 2.
	Two = NewInt(2)
	// Three is 3.
	Three = NewInt(3)
	// Four is 4.
	Four = NewInt(4)
)

// Int is a signed integer of unbounded magnitude. Zero is always
// canonicalized to +0; there is no other invariant to maintain since the
// underlying math/big representation is already canonical.
type Int struct {
	v *big.Int
}

// NewInt wraps an int64 value.
func NewInt(v int64) *Int {
	return &Int{v: big.NewInt(v)}
}

// NewFromString parses a decimal string with an optional leading '-'.
// Leading zeros are stripped by math/big; the result is always canonical.
func NewFromString(s string) (*Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("bigint: %q is not a decimal integer", s)
	}
	return &Int{v: v}, nil
}

// MustFromString is NewFromString for literals and tests; it panics on a
// malformed string, which is a programming fault, not a runtime condition.
func MustFromString(s string) *Int {
	i, err := NewFromString(s)
	if err != nil {
		panic(err)
	}
	return i
}

// NewFromBytes interprets buf as a big-endian unsigned magnitude.
func NewFromBytes(buf []byte) *Int {
	return &Int{v: new(big.Int).SetBytes(buf)}
}

// Bytes returns the big-endian unsigned magnitude.
func (i *Int) Bytes() []byte { return i.v.Bytes() }

// String renders the canonical decimal representation.
func (i *Int) String() string { return i.v.String() }

// Int64 truncates to an int64; callers are responsible for range-checking.
func (i *Int) Int64() int64 { return i.v.Int64() }

// ProbablyPrime reports whether i passes n rounds of Miller-Rabin (plus a
// Baillie-PSW check, inherited from math/big). Used only by the optional
// pre-test collaborator, never as part of the core sieve contract.
func (i *Int) ProbablyPrime(n int) bool { return i.v.ProbablyPrime(n) }

// Add returns i+j.
func (i *Int) Add(j *Int) *Int { return &Int{v: new(big.Int).Add(i.v, j.v)} }

// Sub returns i-j. a.Sub(a) is always +0.
func (i *Int) Sub(j *Int) *Int { return &Int{v: new(big.Int).Sub(i.v, j.v)} }

// Mul returns i*j. math/big switches from schoolbook to Karatsuba
// multiplication internally once operands cross its built-in threshold
// (a few dozen words), satisfying the "Karatsuba above a cutoff" contract
// without a separate hand-rolled implementation.
func (i *Int) Mul(j *Int) *Int { return &Int{v: new(big.Int).Mul(i.v, j.v)} }

// Neg returns -i.
func (i *Int) Neg() *Int { return &Int{v: new(big.Int).Neg(i.v)} }

// Abs returns the magnitude of i.
func (i *Int) Abs() *Int { return &Int{v: new(big.Int).Abs(i.v)} }

// DivMod performs truncating division: q = i/j rounded toward zero, and r
// has the sign of i, satisfying q*j + r == i. Divides by zero panics - a
// contract violation, not a runtime error.
func (i *Int) DivMod(j *Int) (q, r *Int) {
	if j.v.Sign() == 0 {
		panic("bigint: division by zero")
	}
	qq, rr := new(big.Int).QuoRem(i.v, j.v, new(big.Int))
	return &Int{v: qq}, &Int{v: rr}
}

// Div is truncating division; see DivMod.
func (i *Int) Div(j *Int) *Int {
	q, _ := i.DivMod(j)
	return q
}

// Mod is the public modulo operator. Unlike DivMod's remainder, it is
// normalized into [0, |j|) - mathematical mod, not the truncating
// remainder - because sieve code (Tonelli-Shanks, root updates, smoothness
// trial division) relies on a non-negative result throughout. Use DivMod
// directly when the truncating remainder is actually wanted.
func (i *Int) Mod(j *Int) *Int {
	if j.v.Sign() == 0 {
		panic("bigint: modulus by zero")
	}
	m := new(big.Int).Mod(i.v, new(big.Int).Abs(j.v))
	return &Int{v: m}
}

// Lsh returns i shifted left by n bits (i * 2^n). n must be non-negative.
func (i *Int) Lsh(n int) *Int {
	if n < 0 {
		panic("bigint: Lsh with negative shift")
	}
	return &Int{v: new(big.Int).Lsh(i.v, uint(n))}
}

// Rsh returns i shifted right by n bits (floor(i / 2^n)). n must be
// non-negative.
func (i *Int) Rsh(n int) *Int {
	if n < 0 {
		panic("bigint: Rsh with negative shift")
	}
	return &Int{v: new(big.Int).Rsh(i.v, uint(n))}
}

// IsEven reports whether i is divisible by two.
func (i *Int) IsEven() bool { return i.v.Bit(0) == 0 }

// Bit returns bit n (0 = least significant) of the magnitude.
func (i *Int) Bit(n int) uint { return i.v.Bit(n) }

// BitLen returns the number of bits required to represent the magnitude.
func (i *Int) BitLen() int { return i.v.BitLen() }

// Sign returns -1, 0 or 1.
func (i *Int) Sign() int { return i.v.Sign() }

// Cmp returns -1, 0 or 1 as i is less than, equal to, or greater than j.
func (i *Int) Cmp(j *Int) int { return i.v.Cmp(j.v) }

// Equal reports whether i and j are numerically equal.
func (i *Int) Equal(j *Int) bool { return i.v.Cmp(j.v) == 0 }

// GCD returns the non-negative greatest common divisor of i and j.
// GCD(0,0) = 0.
func (i *Int) GCD(j *Int) *Int {
	a, b := new(big.Int).Abs(i.v), new(big.Int).Abs(j.v)
	if a.Sign() == 0 && b.Sign() == 0 {
		return Zero
	}
	return &Int{v: new(big.Int).GCD(nil, nil, a, b)}
}

// Isqrt computes floor(sqrt(n)) for n >= 0 by delegating to math/big's
// Sqrt (a Newton iteration seeded from the bit length). Negative n is a
// contract violation.
func (i *Int) Isqrt() *Int {
	if i.Sign() < 0 {
		panic("bigint: isqrt of a negative number")
	}
	if i.Sign() == 0 {
		return Zero
	}
	return &Int{v: new(big.Int).Sqrt(i.v)}
}

// CeilSqrt returns isqrt(n) rounded up if n is not a perfect square.
func (i *Int) CeilSqrt() *Int {
	r := i.Isqrt()
	if r.Mul(r).Cmp(i) < 0 {
		return r.Add(One)
	}
	return r
}

// ModPow computes i^exp. If mod is nil, the result is the unreduced power
// (used only for small exponents where overflow isn't a concern); if mod
// is non-nil it must be positive and the result lies in [0, mod). Negative
// exponents are a contract violation - the sieve never raises to a
// negative power.
func (i *Int) ModPow(exp, mod *Int) *Int {
	if exp.Sign() < 0 {
		panic("bigint: ModPow with negative exponent")
	}
	if mod == nil {
		return &Int{v: new(big.Int).Exp(i.v, exp.v, nil)}
	}
	if mod.Sign() <= 0 {
		panic("bigint: ModPow with non-positive modulus")
	}
	return &Int{v: new(big.Int).Exp(i.v, exp.v, mod.v)}
}

// ModInverse returns the unique t in [0, m) with i*t == 1 (mod m).
// Precondition: gcd(i, m) == 1; violated preconditions are a contract
// fault and are reported via the ok return rather than panicking, so the
// polynomial generator can turn them into an error.
func (i *Int) ModInverse(m *Int) (inv *Int, ok bool) {
	r := new(big.Int).ModInverse(i.v, m.v)
	if r == nil {
		return nil, false
	}
	return &Int{v: r}, true
}

// Legendre computes the Legendre symbol (i|p) for an odd prime p via
// Euler's criterion: returns 1 if i is a quadratic residue mod p, -1 if
// it is a non-residue, and 0 if p divides i.
func (i *Int) Legendre(p *Int) int {
	m := i.Mod(p)
	if m.Sign() == 0 {
		return 0
	}
	k := p.Sub(One).Div(Two)
	if m.ModPow(k, p).Equal(One) {
		return 1
	}
	return -1
}

// Log2 approximates log2(n) for n > 0. Values of up to 63 bits go through
// math.Log2 directly; larger values use the leading-digit approximation
// floor(log2(d1*10+d2) + 3.32192809*(digits-2)). A sieve threshold
// computation tolerates +-1 error here, so this never needs exactness.
func (i *Int) Log2() float64 {
	if i.Sign() <= 0 {
		panic("bigint: Log2 of a non-positive number")
	}
	if i.BitLen() <= 63 {
		return math.Log2(float64(i.Int64()))
	}
	s := i.v.String()
	d1 := int(s[0] - '0')
	d2 := int(s[1] - '0')
	lead := float64(d1*10 + d2)
	return math.Floor(math.Log2(lead) + 3.32192809*float64(len(s)-2))
}

// RandBelow returns a uniform random value in [0, n).
func RandBelow(n *Int) *Int {
	r, err := rand.Int(rand.Reader, n.v)
	if err != nil {
		panic(err)
	}
	return &Int{v: r}
}

// RandRange returns a uniform random value in [lo, hi].
func RandRange(lo, hi *Int) *Int {
	span := hi.Sub(lo).Add(One)
	return lo.Add(RandBelow(span))
}
