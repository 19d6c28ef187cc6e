package pretest

import (
	"testing"

	"github.com/bfix/siqs/internal/bigint"
)

func TestPeelFindsSmallPrimeFactor(t *testing.T) {
	n := bigint.NewInt(2 * 982451653) // 982451653 is prime, well above smallLimit
	cofactor, factors := Peel(n, bigint.NewInt(1000))
	if len(factors) != 1 || factors[0].Cmp(bigint.Two) != 0 {
		t.Fatalf("factors = %v, want [2]", factors)
	}
	if cofactor.Mul(factors[0]).Cmp(n) != 0 {
		t.Fatalf("factor * cofactor != n")
	}
}

func TestPeelStripsRepeatedSmallFactors(t *testing.T) {
	// 2*2*3*982451653, with the large prime well above smallLimit.
	n := bigint.NewInt(2 * 2 * 3 * 982451653)
	cofactor, factors := Peel(n, bigint.NewInt(1000))
	if len(factors) != 3 {
		t.Fatalf("factors = %v, want three entries (2,2,3)", factors)
	}
	product := bigint.One
	for _, f := range factors {
		product = product.Mul(f)
	}
	if product.Cmp(bigint.NewInt(12)) != 0 {
		t.Fatalf("product of factors = %s, want 12", product)
	}
	if cofactor.Cmp(bigint.NewInt(982451653)) != 0 {
		t.Fatalf("cofactor = %s, want 982451653", cofactor)
	}
}

func TestPeelFallsBackToPollardRho(t *testing.T) {
	// 10403 = 101 * 103, both above the small-prime limit.
	n := bigint.NewInt(10403)
	cofactor, factors := Peel(n, bigint.NewInt(50))
	if len(factors) != 1 {
		t.Fatalf("factors = %v, want one factor via Pollard's rho", factors)
	}
	factor := factors[0]
	if factor.Cmp(bigint.One) == 0 || factor.Cmp(n) == 0 {
		t.Fatalf("factor %s is trivial", factor)
	}
	if cofactor.Mul(factor).Cmp(n) != 0 {
		t.Fatalf("factor * cofactor != n")
	}
}

func TestPeelReportsNoFactorsOnPrime(t *testing.T) {
	n := bigint.NewInt(104729) // prime
	cofactor, factors := Peel(n, bigint.NewInt(100))
	if len(factors) != 0 {
		t.Fatalf("expected Peel to find nothing on a prime input, got %v", factors)
	}
	if cofactor.Cmp(n) != 0 {
		t.Fatalf("cofactor = %s, want unchanged %s", cofactor, n)
	}
}
