package simulate

import (
	"fmt"
	"math/rand"

	mstats "github.com/montanaflynn/stats"

	"genpower/adapters/stats"
	"genpower/domain/architecture"
	"genpower/domain/power"
	"genpower/internal/errors"
)

// Scorer turns one replicate's test results into a summary row under the two
// multiple-testing regimes.
type Scorer struct {
	Alpha        float64 // family-wise significance level for Bonferroni
	FDRThreshold float64 // q-value cutoff for Benjamini-Hochberg detection
}

// NewScorer creates a detection scorer.
func NewScorer(alpha, fdrThreshold float64) *Scorer {
	return &Scorer{Alpha: alpha, FDRThreshold: fdrThreshold}
}

// Score computes the replicate summary. The N-n non-causal genes are not
// simulated explicitly: they are represented by uniform(0,1) null p-values
// drawn once from the replicate's own stream, then a single BH step-up pass
// adjusts the combined vector of all N genes.
func (sc *Scorer) Score(rep *Replicate, model *architecture.Model, rng *rand.Rand) (power.ReplicateSummary, error) {
	n := model.CausalGenes()
	total := model.TotalGenes()

	if len(rep.PValues) != n {
		return power.ReplicateSummary{}, errors.ShapeMismatch(fmt.Sprintf("p-value vector has length %d, want %d", len(rep.PValues), n))
	}
	if len(rep.Signal) != len(rep.Phenotype) {
		return power.ReplicateSummary{}, errors.ShapeMismatch(fmt.Sprintf("signal length %d does not match phenotype length %d", len(rep.Signal), len(rep.Phenotype)))
	}

	summary := power.ReplicateSummary{MinP: 1, MaxP: 0}
	for _, p := range rep.PValues {
		if p < summary.MinP {
			summary.MinP = p
		}
		if p > summary.MaxP {
			summary.MaxP = p
		}
	}

	// Bonferroni: per-test threshold alpha/N over the causal genes only.
	bonferroniThr := sc.Alpha / float64(total)
	summary.BonferroniTrue = stats.CountBelow(rep.PValues, bonferroniThr, n)

	// Combined p-value vector: the n causal tests first, then N-n synthetic
	// nulls for the genes with no true effect (assumed well-calibrated under
	// the null).
	combined := make([]float64, total)
	copy(combined, rep.PValues)
	for i := n; i < total; i++ {
		combined[i] = rng.Float64()
	}

	qvalues := stats.AdjustBH(combined)
	summary.FDRDetected = stats.CountBelow(qvalues, sc.FDRThreshold, total)
	summary.FDRTrue = stats.CountBelow(qvalues, sc.FDRThreshold, n)

	summary.RealizedH2 = realizedHeritability(rep.Signal, rep.Phenotype)
	return summary, nil
}

// realizedHeritability is the sample-variance ratio Var(signal)/Var(phenotype)
// for one replicate; it differs from the target h2 through finite-population
// noise.
func realizedHeritability(signal, phenotype []float64) float64 {
	varSignal, err := mstats.SampleVariance(signal)
	if err != nil {
		return 0
	}
	varPheno, err := mstats.SampleVariance(phenotype)
	if err != nil || varPheno == 0 {
		return 0
	}
	return varSignal / varPheno
}
