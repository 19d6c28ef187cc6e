package siqs

import "github.com/bfix/siqs/internal/bigint"

// ComputeSquareCongruence multiplies the X values of the relations named
// by dep into square1, and reconstructs square2 = sqrt(product of their
// Y values times a^len(dep)) from the halved combined prime exponents
// plus the matching power of a. Each relation's Y is Q(x) = ((ax+b)^2-N)/a,
// so product(Y) * a^len(dep) = product(ax+b)^2 - ... is the quantity that
// is an actual perfect square; the sign and constant columns in each
// relation's exponent vector are excluded from square2 on purpose —
// FindDependency already guarantees both sum to zero over dep (the
// constant column forces len(dep) even, which is exactly what makes
// a^len(dep) itself a perfect square).
//
// The larger of the two results is returned first, matching the
// ordering the gcd step downstream expects.
func ComputeSquareCongruence(dep []int, relations []Relation, fb []*bigint.Int, a *bigint.Int) (square1, square2 *bigint.Int) {
	square1 = bigint.One
	counts := make([]int, len(fb))

	for _, i := range dep {
		r := relations[i]
		square1 = square1.Mul(r.X)
		for j := range fb {
			counts[j] += r.Exponents[j+2]
		}
	}

	square2 = a.ModPow(bigint.NewInt(int64(len(dep)/2)), nil)
	for j, p := range fb {
		half := counts[j] / 2
		if half == 0 {
			continue
		}
		square2 = square2.Mul(p.ModPow(bigint.NewInt(int64(half)), nil))
	}

	if square1.Cmp(square2) < 0 {
		square1, square2 = square2, square1
	}
	return square1, square2
}
