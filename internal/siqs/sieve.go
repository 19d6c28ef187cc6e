package siqs

import (
	"context"
	"math"
	"sync"

	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"

	"github.com/bfix/siqs/internal/bigint"
)

// Relation records one sieve hit: X^2 ≡ Y*a (mod N), with Y fully smooth
// over the sieving factor base (Y is Q(x), the polynomial value already
// divided by the family's shared leading coefficient a — see
// Polynomial.Eval). Exponents is the full parity vector used by the
// GF(2) linear algebra step: index 0 is a constant 1, present solely so
// a dependency always combines an even number of relations (a is
// squarefree, so a^m is a perfect square only when m is even); index 1
// is the sign of Y (1 if Y was negative); indices 2..len(factorBase)+1
// are the prime exponents.
type Relation struct {
	X, Y      *bigint.Int
	Exponents []int
}

// sieveOnePolynomial runs the additive log sieve for a single polynomial
// over the symmetric interval [-halfWidth, halfWidth], returning every
// relation the pass actually found smooth. smoothnessConstant tunes the
// trial-division threshold T(i) = floor(smoothnessConstant *
// log2(2*|i-M|*sqrt(N))): the 2/3 default tolerates a handful of missed
// higher prime powers without flooding the trial-division stage with
// candidates that turn out not to be smooth.
//
// The interval is processed chunkSize positions at a time (see
// cpuinfo.SieveChunkHint) so the log-accumulator working set stays
// cache-resident instead of allocating the full 2*halfWidth+1 array up
// front; chunking doesn't change which positions end up smooth, only how
// much memory is live at once.
func sieveOnePolynomial(poly *Polynomial, fb []*bigint.Int, roots []Root, halfWidth, chunkSize int, smoothnessConstant, nLog2 float64) []Relation {
	width := 2*halfWidth + 1
	if chunkSize <= 0 || chunkSize > width {
		chunkSize = width
	}
	hw := bigint.NewInt(int64(halfWidth))

	var out []Relation
	for lo := 0; lo < width; lo += chunkSize {
		hi := lo + chunkSize
		if hi > width {
			hi = width
		}
		acc := make([]float64, hi-lo)

		for i, p := range fb {
			logp := p.Log2()
			pInt := int(p.Int64())
			if pInt <= 0 {
				continue
			}
			for _, root := range []*bigint.Int{roots[i].X1, roots[i].X2} {
				start := int(root.Add(hw).Mod(p).Int64())
				first := start + ((lo-start)%pInt+pInt)%pInt
				for j := first; j < hi; j += pInt {
					acc[j-lo] += logp
				}
				if roots[i].X1.Cmp(roots[i].X2) == 0 {
					break
				}
			}
		}

		for j := lo; j < hi; j++ {
			u := int64(j - halfWidth)

			xAbs := math.Abs(float64(u))
			if xAbs < 1 {
				xAbs = 1
			}
			threshold := math.Floor(smoothnessConstant * (1 + math.Log2(xAbs) + 0.5*nLog2))
			if acc[j-lo] < threshold {
				continue
			}

			q := poly.Eval(bigint.NewInt(u))
			if q.Sign() == 0 {
				continue
			}
			qAbs := q.Abs()

			exps, rem := trialDivide(qAbs, fb)
			if rem.Cmp(bigint.One) != 0 {
				continue
			}

			full := make([]int, len(fb)+2)
			full[0] = 1
			if q.Sign() < 0 {
				full[1] = 1
			}
			copy(full[2:], exps)

			x := poly.A.Mul(bigint.NewInt(u)).Add(poly.B)
			out = append(out, Relation{X: x, Y: q, Exponents: full})
		}
	}
	return out
}

// trialDivide removes every factor-base prime from n, returning the
// per-prime exponents and whatever cofactor is left. A relation is
// smooth only when the cofactor reduces to 1.
func trialDivide(n *bigint.Int, fb []*bigint.Int) ([]int, *bigint.Int) {
	exps := make([]int, len(fb))
	rem := n
	for i, p := range fb {
		for rem.Sign() != 0 && rem.Mod(p).Sign() == 0 {
			rem = rem.Div(p)
			exps[i]++
		}
	}
	return exps, rem
}

// relationKey returns a deduplication key for a relation, keyed on its X
// value so two polynomials that happen to surface the same congruence
// don't get counted twice.
func relationKey(r Relation) [32]byte {
	return blake3.Sum256(r.X.Bytes())
}

// RelationSet is a concurrency-safe, deduplicating accumulator for
// relations surfacing from parallel sieve workers, guarded by a single
// mutex around the dedup map (the sieve arrays themselves are entirely
// worker-local, so this is the only shared write path).
type RelationSet struct {
	mu   sync.Mutex
	seen map[[32]byte]struct{}
	rels []Relation
}

// NewRelationSet returns an empty relation set.
func NewRelationSet() *RelationSet {
	return &RelationSet{seen: make(map[[32]byte]struct{})}
}

// Add inserts any relation in batch not already present, returning how
// many were newly added.
func (rs *RelationSet) Add(batch []Relation) int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	added := 0
	for _, r := range batch {
		key := relationKey(r)
		if _, ok := rs.seen[key]; ok {
			continue
		}
		rs.seen[key] = struct{}{}
		rs.rels = append(rs.rels, r)
		added++
	}
	return added
}

// Len returns the number of distinct relations collected so far.
func (rs *RelationSet) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.rels)
}

// Snapshot returns a copy of the relations collected so far.
func (rs *RelationSet) Snapshot() []Relation {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]Relation, len(rs.rels))
	copy(out, rs.rels)
	return out
}

// PolyObserver receives the relation count each completed polynomial's
// sieve pass produced, for progress metrics.
type PolyObserver func(relationsThisPoly int)

// RunSieve drives `workers` goroutines pulling polynomials from gen and
// sieving each one independently, feeding discovered relations into a
// shared deduplicating set, until the set holds at least `target`
// relations or the polynomial family is exhausted. Each goroutine
// carries its own running root state since Roots must be derived in
// Gray-code order: a single mutex serializes calls into gen itself while
// the (comparatively expensive) sieve pass over each polynomial runs
// unlocked.
func RunSieve(ctx context.Context, gen *PolyGenerator, fb []*bigint.Int, n *bigint.Int, halfWidth, target, workers, chunkSize int, smoothnessConstant float64, observe PolyObserver) (*RelationSet, int, error) {
	if workers < 1 {
		workers = 1
	}
	nLog2 := n.Log2()

	rs := NewRelationSet()
	var genMu sync.Mutex
	var prevRoots []Root
	polyCount := 0

	nextPoly := func() (*Polynomial, []Root, bool) {
		genMu.Lock()
		defer genMu.Unlock()
		if rs.Len() >= target || !gen.HasNext() {
			return nil, nil, false
		}
		poly := gen.Next()
		roots := gen.Roots(poly, prevRoots)
		prevRoots = roots
		polyCount++
		return poly, roots, true
	}

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				poly, roots, ok := nextPoly()
				if !ok {
					return nil
				}
				found := sieveOnePolynomial(poly, fb, roots, halfWidth, chunkSize, smoothnessConstant, nLog2)
				added := rs.Add(found)
				if observe != nil {
					observe(added)
				}
			}
		})
	}

	err := g.Wait()
	if err == context.Canceled || err == context.DeadlineExceeded {
		return rs, polyCount, err
	}
	return rs, polyCount, err
}
