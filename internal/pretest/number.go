package pretest

import "github.com/bfix/siqs/internal/bigint"

// Number is the preprocessing wrapper from spec §3: it tracks the
// original value, the current (shrinking) cofactor, and the multiset of
// factors peeled off so far. Mirrors original_source/factorize/number.h's
// Number class (originalValue/value/factors).
type Number struct {
	Original *bigint.Int
	value    *bigint.Int
	factors  []*bigint.Int
}

// newNumber wraps n with an empty factor multiset.
func newNumber(n *bigint.Int) *Number {
	return &Number{Original: n, value: n}
}

// AddFactor records a newly found factor and divides it out of the
// running cofactor.
func (num *Number) AddFactor(factor *bigint.Int) {
	num.factors = append(num.factors, factor)
	num.value = num.value.Div(factor)
}

// Value returns the current, possibly still composite, cofactor.
func (num *Number) Value() *bigint.Int {
	return num.value
}

// Factors returns the multiset of factors found so far, in discovery
// order; duplicates mean a repeated prime power was peeled off.
func (num *Number) Factors() []*bigint.Int {
	out := make([]*bigint.Int, len(num.factors))
	copy(out, num.factors)
	return out
}
