package simulate

import (
	"fmt"
	"math/rand"

	"genpower/adapters/stats"
	"genpower/domain/architecture"
	"genpower/internal/errors"
)

// Replicate holds one synthetic dataset together with its per-gene test
// results. Created fresh inside each replicate iteration and discarded once
// its summary statistics are extracted.
type Replicate struct {
	// Genotypes is column-major: Genotypes[j][i] is 1 when individual i
	// carries the causal allele of gene j, 0 otherwise.
	Genotypes [][]uint8
	// Phenotype is the additive genetic signal plus Normal(0, sigma) noise,
	// one value per individual.
	Phenotype []float64
	// Signal is the genetic component of the phenotype, kept alongside it so
	// the scorer can estimate the realized heritability.
	Signal []float64
	// PValues has one Welch-test p-value per causal gene, every entry in (0,1].
	PValues []float64
}

// Simulator generates one replicate at a time from a shared read-only
// architecture. It holds no state: all randomness comes from the caller's
// replicate-local stream.
type Simulator struct{}

// NewSimulator creates a replicate simulator.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Simulate draws a fresh genotype matrix and phenotype vector for a
// population of size k and runs the per-gene carrier vs non-carrier Welch
// test. Per-gene degeneracies (a genotype class with fewer than two members,
// or zero variance on both sides) resolve to p = 1 by policy; the operation
// itself never fails once k >= 1.
func (s *Simulator) Simulate(model *architecture.Model, k int, rng *rand.Rand) (*Replicate, error) {
	if model == nil {
		return nil, errors.InvalidInput("architecture model is required")
	}
	if k < 1 {
		return nil, errors.InvalidInput(fmt.Sprintf("population size must be >= 1, got %d", k))
	}

	n := model.CausalGenes()
	rep := &Replicate{
		Genotypes: make([][]uint8, n),
		Phenotype: make([]float64, k),
		Signal:    make([]float64, k),
		PValues:   make([]float64, n),
	}

	// Genotype columns are independent Bernoulli(f_j) draws: linkage
	// equilibrium, no correlation structure between genes.
	for j := 0; j < n; j++ {
		col := make([]uint8, k)
		f := model.AlleleFreqAt(j)
		beta := model.EffectSizeAt(j)
		for i := 0; i < k; i++ {
			if rng.Float64() < f {
				col[i] = 1
				rep.Signal[i] += beta
			}
		}
		rep.Genotypes[j] = col
	}

	sigma := model.NoiseSigma()
	for i := 0; i < k; i++ {
		rep.Phenotype[i] = rep.Signal[i] + rng.NormFloat64()*sigma
	}

	// Per-gene two-sample comparison of phenotype by carrier status.
	carriers := make([]float64, 0, k)
	nonCarriers := make([]float64, 0, k)
	for j := 0; j < n; j++ {
		carriers = carriers[:0]
		nonCarriers = nonCarriers[:0]
		for i, g := range rep.Genotypes[j] {
			if g == 1 {
				carriers = append(carriers, rep.Phenotype[i])
			} else {
				nonCarriers = append(nonCarriers, rep.Phenotype[i])
			}
		}
		_, p := stats.WelchTTest(carriers, nonCarriers)
		rep.PValues[j] = p
	}

	return rep, nil
}
