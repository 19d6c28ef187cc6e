package bigint

import (
	"testing"
)

func TestDivModTruncation(t *testing.T) {
	cases := [][2]int64{{17, 5}, {-17, 5}, {17, -5}, {-17, -5}, {0, 7}}
	for _, c := range cases {
		a, b := NewInt(c[0]), NewInt(c[1])
		q, r := a.DivMod(b)
		got := q.Mul(b).Add(r)
		if !got.Equal(a) {
			t.Fatalf("DivMod(%d,%d): q*b+r = %v, want %v", c[0], c[1], got, a)
		}
	}
}

func TestModNonNegative(t *testing.T) {
	for _, c := range [][2]int64{{17, 5}, {-17, 5}, {-1, 3}, {0, 9}} {
		a, b := NewInt(c[0]), NewInt(c[1])
		m := a.Mod(b)
		if m.Sign() < 0 || m.Cmp(b.Abs()) >= 0 {
			t.Fatalf("Mod(%d,%d) = %v, want in [0,%d)", c[0], c[1], m, c[1])
		}
	}
}

func TestSubSelfIsPositiveZero(t *testing.T) {
	a := NewInt(-42)
	z := a.Sub(a)
	if z.Sign() != 0 || !z.Equal(Zero) {
		t.Fatalf("a-a = %v, want +0", z)
	}
}

func TestIsqrtBoundary(t *testing.T) {
	cases := map[int64]int64{0: 0, 1: 1, 2: 1, 3: 1, 4: 2, 8: 2, 9: 3, 99: 9, 100: 10}
	for n, want := range cases {
		got := NewInt(n).Isqrt()
		if got.Int64() != want {
			t.Fatalf("Isqrt(%d) = %v, want %d", n, got, want)
		}
	}
}

func TestIsqrtInvariant(t *testing.T) {
	for _, n := range []int64{0, 1, 2, 1000000007, 999999999999} {
		a := NewInt(n)
		r := a.Isqrt()
		rp1 := r.Add(One)
		if r.Mul(r).Cmp(a) > 0 {
			t.Fatalf("isqrt(%d)^2 > n", n)
		}
		if rp1.Mul(rp1).Cmp(a) <= 0 {
			t.Fatalf("(isqrt(%d)+1)^2 <= n", n)
		}
	}
}

func TestCeilSqrt(t *testing.T) {
	cases := map[int64]int64{0: 0, 1: 1, 2: 2, 4: 2, 5: 3, 9: 3, 10: 4}
	for n, want := range cases {
		got := NewInt(n).CeilSqrt()
		if got.Int64() != want {
			t.Fatalf("CeilSqrt(%d) = %v, want %d", n, got, want)
		}
	}
}

func TestModInverse(t *testing.T) {
	primes := []int64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 997}
	for _, p := range primes {
		pp := NewInt(p)
		for a := int64(1); a < p; a++ {
			av := NewInt(a)
			inv, ok := av.ModInverse(pp)
			if !ok {
				t.Fatalf("ModInverse(%d, %d) reported not invertible", a, p)
			}
			if !av.Mul(inv).Mod(pp).Equal(One) {
				t.Fatalf("%d * inv(%d) mod %d != 1", a, a, p)
			}
		}
	}
}

func TestModInverseNonUnit(t *testing.T) {
	// gcd(4,6) = 2, 4 has no inverse mod 6.
	_, ok := NewInt(4).ModInverse(NewInt(6))
	if ok {
		t.Fatal("expected ModInverse to report non-invertible")
	}
}

func TestModPowModulusZeroIsUnreduced(t *testing.T) {
	got := NewInt(2).ModPow(NewInt(10), nil)
	if got.Int64() != 1024 {
		t.Fatalf("ModPow with nil modulus = %v, want 1024", got)
	}
}

func TestModPowRange(t *testing.T) {
	m := NewInt(97)
	for base := int64(0); base < 97; base++ {
		r := NewInt(base).ModPow(NewInt(5), m)
		if r.Sign() < 0 || r.Cmp(m) >= 0 {
			t.Fatalf("ModPow result %v out of range [0,%d)", r, m)
		}
	}
}

func TestGCD(t *testing.T) {
	if !NewInt(0).GCD(NewInt(0)).Equal(Zero) {
		t.Fatal("gcd(0,0) should be 0")
	}
	if !NewInt(48).GCD(NewInt(18)).Equal(NewInt(6)) {
		t.Fatal("gcd(48,18) should be 6")
	}
	if !NewInt(-48).GCD(NewInt(18)).Equal(NewInt(6)) {
		t.Fatal("gcd is non-negative regardless of operand sign")
	}
}

func TestLegendre(t *testing.T) {
	// 5 is a QR mod 41 (5 = 28^2 mod 41 per the Tonelli-Shanks fixture).
	if NewInt(5).Legendre(NewInt(41)) != 1 {
		t.Fatal("5 should be a quadratic residue mod 41")
	}
	if NewInt(3).Legendre(NewInt(7)) != -1 {
		t.Fatal("3 should not be a quadratic residue mod 7")
	}
}

func TestFromStringRoundTrip(t *testing.T) {
	vals := []string{"0", "1", "-1", "123456789012345678901234567890", "-42"}
	for _, s := range vals {
		v, err := NewFromString(s)
		if err != nil {
			t.Fatalf("NewFromString(%q): %v", s, err)
		}
		if v.String() != s {
			t.Fatalf("round trip %q -> %q", s, v.String())
		}
	}
}

func TestFromStringRejectsGarbage(t *testing.T) {
	if _, err := NewFromString("12x34"); err == nil {
		t.Fatal("expected error for malformed decimal string")
	}
}

func TestKaratsubaMultiplication(t *testing.T) {
	// ~40-digit operand squared; golden value computed independently.
	a := MustFromString("19283746501928374650192837465019283746")
	want := MustFromString("371862879150634825826408336373775318997132861361801941282389059642859792516")
	got := a.Mul(a)
	if !got.Equal(want) {
		t.Fatalf("Karatsuba-range multiply mismatch:\n got  %v\n want %v", got, want)
	}
}

func TestDivByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on division by zero")
		}
	}()
	NewInt(1).Div(Zero)
}

func TestIsqrtNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on isqrt of negative")
		}
	}()
	NewInt(-1).Isqrt()
}
