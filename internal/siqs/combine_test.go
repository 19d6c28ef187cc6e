package siqs

import (
	"testing"

	"github.com/bfix/siqs/internal/bigint"
)

func TestComputeSquareCongruenceSingleRelation(t *testing.T) {
	fb := primeList(3)
	// Exponents: [constant=1, sign=0, primeExps...]
	relations := []Relation{
		{X: bigint.NewInt(10), Y: bigint.NewInt(9), Exponents: []int{1, 0, 2}},
	}

	s1, s2 := ComputeSquareCongruence([]int{0}, relations, fb, bigint.One)
	if s1.Cmp(bigint.NewInt(10)) != 0 || s2.Cmp(bigint.NewInt(3)) != 0 {
		t.Fatalf("got (%s, %s), want (10, 3)", s1, s2)
	}
}

func TestComputeSquareCongruenceOrdersLargerFirst(t *testing.T) {
	fb := primeList(7)
	relations := []Relation{
		{X: bigint.NewInt(2), Y: bigint.NewInt(49), Exponents: []int{1, 0, 2}},
	}

	s1, s2 := ComputeSquareCongruence([]int{0}, relations, fb, bigint.One)
	if s1.Cmp(bigint.NewInt(7)) != 0 || s2.Cmp(bigint.NewInt(2)) != 0 {
		t.Fatalf("got (%s, %s), want (7, 2)", s1, s2)
	}
}

func TestComputeSquareCongruenceCombinesMultipleRelations(t *testing.T) {
	fb := primeList(3, 5)
	// relation 0: X=6, Y=45=3^2*5; relation 1: X=4, Y=5 (no square on its own)
	relations := []Relation{
		{X: bigint.NewInt(6), Y: bigint.NewInt(45), Exponents: []int{1, 0, 2, 1}},
		{X: bigint.NewInt(4), Y: bigint.NewInt(5), Exponents: []int{1, 0, 0, 1}},
	}
	s1, s2 := ComputeSquareCongruence([]int{0, 1}, relations, fb, bigint.One)
	// square1 = 6*4 = 24; counts = {2+0, 1+1} = {2,2}; square2 = 3^1*5^1 = 15
	if s1.Cmp(bigint.NewInt(24)) != 0 || s2.Cmp(bigint.NewInt(15)) != 0 {
		t.Fatalf("got (%s, %s), want (24, 15)", s1, s2)
	}
}

func TestComputeSquareCongruenceIncludesPowerOfA(t *testing.T) {
	fb := primeList(3)
	// Two relations (even dependency size) so a^1 enters square2.
	relations := []Relation{
		{X: bigint.NewInt(10), Y: bigint.NewInt(9), Exponents: []int{1, 0, 2}},
		{X: bigint.NewInt(20), Y: bigint.NewInt(1), Exponents: []int{1, 0, 0}},
	}
	s1, s2 := ComputeSquareCongruence([]int{0, 1}, relations, fb, bigint.NewInt(7))
	// square1 = 10*20 = 200; square2 = a^1 * 3^1 = 7*3 = 21
	if s1.Cmp(bigint.NewInt(200)) != 0 || s2.Cmp(bigint.NewInt(21)) != 0 {
		t.Fatalf("got (%s, %s), want (200, 21)", s1, s2)
	}
}
