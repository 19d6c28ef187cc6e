package siqs

import "sort"

// FindDependency searches for a linear dependency over GF(2) among the
// given exponent-parity vectors (each vector must be the same length),
// returning the indices of the vectors summing (mod 2, component-wise)
// to the zero vector. Returns nil if no dependency exists among the
// given vectors.
//
// The algorithm maintains an incremental reduced basis, one potential
// pivot row per column: each new vector is reduced against the existing
// basis, tracking (via XOR of index sets) which original vectors were
// combined to reach its current, possibly-reduced, form. A vector that
// fully reduces to zero before finding an empty pivot column is exactly
// a dependency among the vectors used to reduce it.
func FindDependency(vectors [][]bool) []int {
	if len(vectors) == 0 {
		return nil
	}
	width := len(vectors[0])

	basis := make([][]bool, width)
	usedBy := make([]map[int]bool, width)

	for i, v := range vectors {
		work := make([]bool, width)
		copy(work, v)

		used := map[int]bool{i: true}
		added := false

		for j := 0; j < width; j++ {
			if !work[j] {
				continue
			}
			if basis[j] == nil {
				basis[j] = work
				usedBy[j] = used
				added = true
				break
			}
			for k := 0; k < width; k++ {
				work[k] = work[k] != basis[j][k]
			}
			for idx := range usedBy[j] {
				if used[idx] {
					delete(used, idx)
				} else {
					used[idx] = true
				}
			}
		}

		if added {
			continue
		}

		out := make([]int, 0, len(used))
		for v := range used {
			out = append(out, v)
		}
		sort.Ints(out)
		return out
	}

	return nil
}

// parityVectors converts a slice of relations' full exponent vectors
// (constant column, sign bit, then per-prime exponents) into the GF(2)
// parity vectors FindDependency expects.
func parityVectors(relations []Relation) [][]bool {
	if len(relations) == 0 {
		return nil
	}
	width := len(relations[0].Exponents)
	out := make([][]bool, len(relations))
	for i, r := range relations {
		row := make([]bool, width)
		for j, e := range r.Exponents {
			row[j] = e%2 != 0
		}
		out[i] = row
	}
	return out
}
