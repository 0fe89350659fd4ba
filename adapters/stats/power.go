package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// PowerAnalysis provides the closed-form two-sample t-test power helpers used
// to choose a population size before any simulation is run. This is a
// one-shot precomputation: the simulation engine only ever sees the resulting
// K as a plain scalar.
type PowerAnalysis struct{}

// NewPowerAnalysis creates a power analysis helper.
func NewPowerAnalysis() *PowerAnalysis {
	return &PowerAnalysis{}
}

// TTestPower computes the approximate power of a two-sided two-sample t-test
// for a standardized effect size at significance level alpha with group sizes
// n1 and n2, using the normal approximation to the non-central t.
func (pa *PowerAnalysis) TTestPower(effectSize, alpha float64, n1, n2 int) float64 {
	if n1 <= 0 || n2 <= 0 {
		return 0
	}

	nonCentrality := math.Abs(effectSize) * math.Sqrt(float64(n1*n2)/float64(n1+n2))
	zCritical := distuv.UnitNormal.Quantile(1.0 - alpha/2.0)
	return distuv.UnitNormal.CDF(nonCentrality - zCritical)
}

// SampleSizeTTest computes the per-group sample size for the desired power of
// a two-sided two-sample t-test at the given standardized effect size.
func (pa *PowerAnalysis) SampleSizeTTest(effectSize, power, alpha float64) int {
	if effectSize == 0 {
		return 0
	}

	zAlpha := distuv.UnitNormal.Quantile(1.0 - alpha/2.0)
	zBeta := distuv.UnitNormal.Quantile(power)

	perGroup := 2 * (zAlpha + zBeta) * (zAlpha + zBeta) / (effectSize * effectSize)
	return int(math.Ceil(perGroup))
}

// UnequalGroupsTotal corrects an equal-groups per-group size n for a carrier
// fraction f, returning the total sample size needed when the two genotype
// classes split K as f : (1-f). With kappa = f/(1-f) the corrected per-group
// harmonic size gives total = n * (1+kappa)^2 / (2*kappa).
func (pa *PowerAnalysis) UnequalGroupsTotal(nPerGroup int, carrierFreq float64) int {
	if nPerGroup <= 0 || !(carrierFreq > 0 && carrierFreq < 1) {
		return 0
	}

	kappa := carrierFreq / (1 - carrierFreq)
	total := float64(nPerGroup) * (1 + kappa) * (1 + kappa) / (2 * kappa)
	return int(math.Ceil(total))
}
