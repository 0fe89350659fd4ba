package testkit

import (
	"math/rand"

	"genpower/domain/architecture"
)

// TestKit provides deterministic fixtures for engine tests.
type TestKit struct{}

// NewTestKit creates a new test kit instance
func NewTestKit() *TestKit {
	return &TestKit{}
}

// DefaultArchitecture returns a small valid architecture: two causal genes at
// MAF 0.5 with unit effects out of four tested genes, h2 = 0.5.
func (t *TestKit) DefaultArchitecture() *architecture.Model {
	model, err := architecture.New(architecture.Params{
		CausalGenes:  2,
		TotalGenes:   4,
		AlleleFreqs:  []float64{0.5, 0.5},
		EffectSizes:  []float64{1, 1},
		Heritability: 0.5,
	})
	if err != nil {
		panic(err)
	}
	return model
}

// Architecture builds a valid n-gene architecture with constant MAF and
// effect size, panicking on invalid fixtures so tests fail loudly.
func (t *TestKit) Architecture(n, total int, maf, beta, h2 float64) *architecture.Model {
	freqs := make([]float64, n)
	effects := make([]float64, n)
	for i := range freqs {
		freqs[i] = maf
		effects[i] = beta
	}
	model, err := architecture.New(architecture.Params{
		CausalGenes:  n,
		TotalGenes:   total,
		AlleleFreqs:  freqs,
		EffectSizes:  effects,
		Heritability: h2,
	})
	if err != nil {
		panic(err)
	}
	return model
}

// SeededRNG returns a fixed-seed random source for test data generation.
func (t *TestKit) SeededRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
