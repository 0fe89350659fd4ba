package stats

import (
	"sort"
)

// AdjustBH returns Benjamini-Hochberg step-up adjusted q-values for the given
// p-values, in the same order as the input. q_(i) = min over j >= i of
// p_(j) * m / j over the ascending p-value ranks, clamped to [0, 1].
func AdjustBH(pvalues []float64) []float64 {
	m := len(pvalues)
	if m == 0 {
		return nil
	}

	// Rank p-values ascending, remembering original positions.
	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return pvalues[order[a]] < pvalues[order[b]]
	})

	// Raw BH values p * m / rank, then enforce monotonicity by a cumulative
	// minimum from the largest rank down (the step-up pass).
	adjusted := make([]float64, m)
	runningMin := 1.0
	for i := m - 1; i >= 0; i-- {
		rank := i + 1
		q := pvalues[order[i]] * float64(m) / float64(rank)
		if q < runningMin {
			runningMin = q
		}
		adjusted[order[i]] = runningMin
	}
	return adjusted
}

// CountBelow counts how many of the first limit values are strictly below the
// threshold. A limit < 0 or beyond len(values) means the whole slice.
func CountBelow(values []float64, threshold float64, limit int) int {
	if limit < 0 || limit > len(values) {
		limit = len(values)
	}
	count := 0
	for _, v := range values[:limit] {
		if v < threshold {
			count++
		}
	}
	return count
}
