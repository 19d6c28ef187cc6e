package siqs

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"

	"github.com/bfix/siqs/internal/bigint"
	"github.com/bfix/siqs/internal/config"
	"github.com/bfix/siqs/internal/cpuinfo"
	"github.com/bfix/siqs/internal/metrics"
	"github.com/bfix/siqs/internal/pretest"
)

// ErrFactorizationFailed is returned once every re-initialization budget
// is exhausted without finding a usable square congruence.
var ErrFactorizationFailed = errors.New("siqs: factorization failed — increase factor-base size or sieve interval")

// Factor returns a nontrivial factor pair (f, N/f) with 1 < f < N. It
// first runs the trial-division/Pollard's-rho pre-pass; if that alone
// peels off a factor, the sieve never runs. Otherwise it builds a factor
// base sized off N and drives the self-initializing sieve, retrying with
// a fresh random base-prime subset up to cfg.MaxReinitializations times
// before giving up.
func Factor(ctx context.Context, n *bigint.Int, cfg config.Config, log zerolog.Logger, collector *metrics.Collector) (f, cofactor *bigint.Int, err error) {
	if n.Cmp(bigint.Two) <= 0 {
		return nil, nil, errors.New("siqs: N must be greater than 2")
	}

	if f, rest, ok := peelToFactorPair(n, cfg); ok {
		log.Info().Str("factor", f.String()).Msg("pre-pass found a factor, skipping sieve")
		return f, rest, nil
	}

	amount := factorBaseTargetCount(n)
	fb := BuildFactorBase(n, amount)
	log.Info().Int("size", fb.Len()).Msg("Using factor base of size")

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	chunkSize := cpuinfo.SieveChunkHint(cfg.HalfWidth)

	for attempt := 0; attempt <= cfg.MaxReinitializations; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		basePrimes, err := chooseBasePrimes(fb, n, cfg)
		if err != nil {
			return nil, nil, err
		}
		// The factors of a can never appear in a smooth Q(x) residue (Q(x)
		// is already divided by a) and a is not invertible mod its own
		// factors, so they're excluded from the sieving factor base.
		sieveFB := excludePrimes(fb.Primes, basePrimes)
		target := len(sieveFB) + cfg.RelationMargin

		gen, err := NewPolyGenerator(n, basePrimes, sieveFB)
		if err != nil {
			return nil, nil, err
		}

		observe := func(int) {}
		if collector != nil {
			observe = func(added int) { collector.Observe(added) }
		}

		rs, polyCount, err := RunSieve(ctx, gen, sieveFB, n, cfg.HalfWidth, target, workers, chunkSize, cfg.SmoothnessConstant, observe)
		if err != nil {
			return nil, nil, err
		}

		relations := rs.Snapshot()
		log.Info().Int("count", len(relations)).Int("polynomials", polyCount).Msg("found congruences")

		if len(relations) < len(sieveFB) {
			log.Warn().Int("attempt", attempt).Msg("insufficient relations, re-initializing")
			continue
		}

		vectors := parityVectors(relations)
		f1, f2, ok := trySolve(n, sieveFB, gen.A(), relations, vectors, log)
		if ok {
			log.Info().Str("factor1", f1.String()).Msg("factor1")
			log.Info().Str("factor2", f2.String()).Msg("factor2")
			if f1.Mul(f2).Cmp(n) == 0 {
				log.Info().Msg("factors verified")
			}
			return f1, f2, nil
		}
		log.Warn().Int("attempt", attempt).Msg("only trivial dependencies, re-initializing")
	}

	return nil, nil, ErrFactorizationFailed
}

// peelToFactorPair runs the trial-division/Pollard's-rho pre-pass and
// collapses whatever multiset of factors it finds into the single
// nontrivial (f, N/f) pair Factor's contract requires. When the pre-pass
// fully factors n (cofactor == 1), the last factor found is held back as
// the cofactor instead, so the pair still satisfies 1 < f < n.
func peelToFactorPair(n *bigint.Int, cfg config.Config) (f, cofactor *bigint.Int, ok bool) {
	cofactor, factors := pretest.Peel(n, bigint.NewInt(cfg.SmallPrimeLimit))
	if len(factors) == 0 {
		return nil, nil, false
	}

	if cofactor.Cmp(bigint.One) == 0 {
		if len(factors) < 2 {
			return nil, nil, false
		}
		cofactor = factors[len(factors)-1]
		factors = factors[:len(factors)-1]
	}

	f = bigint.One
	for _, p := range factors {
		f = f.Mul(p)
	}
	return f, cofactor, true
}

// trySolve repeatedly extracts dependencies from the relation set,
// testing each square congruence for a nontrivial factor, until either a
// usable factor is found or no dependency remains.
func trySolve(n *bigint.Int, fb []*bigint.Int, a *bigint.Int, relations []Relation, vectors [][]bool, log zerolog.Logger) (f, cofactor *bigint.Int, ok bool) {
	remaining := make([][]bool, len(vectors))
	copy(remaining, vectors)
	indexMap := make([]int, len(vectors))
	for i := range indexMap {
		indexMap[i] = i
	}

	for len(remaining) > 0 {
		dep := FindDependency(remaining)
		if dep == nil {
			return nil, nil, false
		}
		log.Info().Int("size", len(dep)).Msg("Linear dependency found")

		origDep := make([]int, len(dep))
		for i, d := range dep {
			origDep[i] = indexMap[d]
		}

		x, y := ComputeSquareCongruence(origDep, relations, fb, a)

		factor := x.Sub(y).GCD(n)
		if factor.Cmp(bigint.One) != 0 && factor.Cmp(n) != 0 {
			return factor, n.Div(factor), true
		}
		factor2 := x.Add(y).GCD(n)
		if factor2.Cmp(bigint.One) != 0 && factor2.Cmp(n) != 0 {
			return factor2, n.Div(factor2), true
		}

		// This dependency only yielded a trivial congruence; drop the
		// lowest-indexed relation it used and keep looking for another.
		drop := origDep[0]
		remaining, indexMap = dropRelation(remaining, indexMap, drop)
	}
	return nil, nil, false
}

// dropRelation removes the relation at original index drop from the
// working vector set, returning the filtered vectors and updated index
// map.
func dropRelation(vectors [][]bool, indexMap []int, drop int) ([][]bool, []int) {
	var outVecs [][]bool
	var outIdx []int
	for i, orig := range indexMap {
		if orig == drop {
			continue
		}
		outVecs = append(outVecs, vectors[i])
		outIdx = append(outIdx, orig)
	}
	return outVecs, outIdx
}

// factorBaseTargetCount estimates how many factor-base primes a sieve of
// N needs, following the classical quadratic-sieve heuristic
// amount ~= 3^(sqrt(log2(N)*log2(log2(N)))/2).
func factorBaseTargetCount(n *bigint.Int) int {
	logn := n.Log2()
	if logn < 4 {
		return 20
	}
	loglogn := math.Log2(logn)
	if loglogn <= 0 {
		return 20
	}
	exponent := math.Sqrt(logn*loglogn) / 2
	amount := int(math.Pow(3, exponent))
	if amount < 20 {
		amount = 20
	}
	return amount
}

// chooseBasePrimes draws a random subset of the factor base's mid-range
// primes whose product approximates sqrt(2N)/M, the classical SIQS
// sizing target for the leading coefficient a.
func chooseBasePrimes(fb *FactorBase, n *bigint.Int, cfg config.Config) ([]*bigint.Int, error) {
	window := basePrimeWindow(fb, cfg.BasePrimeRangeLow, cfg.BasePrimeRangeHigh)
	if len(window) == 0 {
		return nil, errors.New("siqs: factor base has no primes in the configured base-prime range")
	}

	targetLog2 := 0.5*n.Log2() + 0.5 - math.Log2(float64(cfg.HalfWidth))
	if targetLog2 < 0 {
		targetLog2 = 0
	}

	order := shuffledIndices(len(window))

	var chosen []*bigint.Int
	sumLog2 := 0.0
	for _, idx := range order {
		if len(chosen) >= maxBasePrimes {
			break
		}
		p := window[idx]
		chosen = append(chosen, p)
		sumLog2 += p.Log2()
		if sumLog2 >= targetLog2 {
			break
		}
	}
	if len(chosen) < 2 {
		return nil, errors.New("siqs: could not assemble enough base primes for a")
	}
	return chosen, nil
}

// shuffledIndices returns a random permutation of [0, n) via
// Fisher-Yates, drawing randomness from the same CSPRNG bigint.RandBelow
// uses elsewhere.
func shuffledIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := int(bigint.RandBelow(bigint.NewInt(int64(i + 1))).Int64())
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}
