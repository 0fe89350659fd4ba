package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// MinGroupSize is the smallest group for which the two-sample test is
// defined: variance needs at least two observations per side.
const MinGroupSize = 2

// WelchTTest performs Welch's unequal-variance two-sample t-test and returns
// the t-statistic and the two-sided p-value. Degenerate inputs (either group
// smaller than MinGroupSize, or zero variance on both sides) resolve to
// (0, 1): no evidence of association, never an error.
func WelchTTest(group1, group2 []float64) (tStat, pValue float64) {
	n1 := float64(len(group1))
	n2 := float64(len(group2))

	if len(group1) < MinGroupSize || len(group2) < MinGroupSize {
		return 0, 1.0
	}

	mean1 := mean(group1)
	mean2 := mean(group2)
	var1 := variance(group1, mean1)
	var2 := variance(group2, mean2)

	// Welch's t-statistic: t = (mean1 - mean2) / sqrt(var1/n1 + var2/n2)
	se := math.Sqrt(var1/n1 + var2/n2)
	if se == 0 || math.IsNaN(se) {
		return 0, 1.0
	}
	tStat = (mean1 - mean2) / se

	// Degrees of freedom using Welch-Satterthwaite equation
	df := math.Pow(var1/n1+var2/n2, 2) / (math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1))
	if df <= 0 || math.IsNaN(df) || math.IsInf(df, 0) {
		return 0, 1.0
	}

	pValue = TTestPValue(tStat, df)
	return tStat, pValue
}

// TTestPValue computes the two-sided p-value of a t-statistic using the
// Student's t-distribution, clamped into (0, 1].
func TTestPValue(tStatistic, degreesOfFreedom float64) float64 {
	if degreesOfFreedom <= 0 {
		return 1.0
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: degreesOfFreedom}
	p := 2 * (1 - tDist.CDF(math.Abs(tStatistic)))

	// Extreme t-statistics underflow the CDF tail to exactly zero; keep the
	// contract that p-values are strictly positive.
	if p < math.SmallestNonzeroFloat64 {
		p = math.SmallestNonzeroFloat64
	}
	if p > 1 {
		p = 1
	}
	return p
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// variance is the sample variance (n-1 denominator) around a precomputed mean.
func variance(data []float64, mean float64) float64 {
	if len(data) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range data {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(len(data)-1)
}
