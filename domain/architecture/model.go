package architecture

import (
	"fmt"
	"math"

	"genpower/internal/errors"
)

// Params holds the raw inputs for a genetic architecture.
type Params struct {
	CausalGenes  int       // n, number of truly causal genes
	TotalGenes   int       // N, total number of testable genes (N >= n)
	AlleleFreqs  []float64 // minor allele frequency per causal gene, each in (0,1)
	EffectSizes  []float64 // additive effect size per causal gene (scale-free)
	Heritability float64   // h2, target narrow-sense heritability, in (0,1)
}

// Model is the fixed genetic architecture shared read-only across replicates.
// Constructed once, immutable thereafter: the noise standard deviation is
// derived from the target heritability under linkage equilibrium.
type Model struct {
	params Params
	vg     float64 // additive genetic variance: sum over genes of beta^2 * f * (1-f)
	sigma2 float64 // environmental noise variance: (1-h2)/h2 * vg
	sigma  float64
}

// New validates params and derives the noise model.
func New(p Params) (*Model, error) {
	if p.CausalGenes < 1 {
		return nil, errors.InvalidArchitecture(fmt.Sprintf("causal gene count must be >= 1, got %d", p.CausalGenes))
	}
	if p.TotalGenes < p.CausalGenes {
		return nil, errors.InvalidArchitecture(fmt.Sprintf("total gene count %d is smaller than causal gene count %d", p.TotalGenes, p.CausalGenes))
	}
	if len(p.AlleleFreqs) != p.CausalGenes {
		return nil, errors.InvalidArchitecture(fmt.Sprintf("allele frequency vector has length %d, want %d", len(p.AlleleFreqs), p.CausalGenes))
	}
	if len(p.EffectSizes) != p.CausalGenes {
		return nil, errors.InvalidArchitecture(fmt.Sprintf("effect size vector has length %d, want %d", len(p.EffectSizes), p.CausalGenes))
	}
	for i, f := range p.AlleleFreqs {
		if !(f > 0 && f < 1) || math.IsNaN(f) {
			return nil, errors.InvalidArchitecture(fmt.Sprintf("allele frequency %g at gene %d is outside (0,1)", f, i))
		}
	}
	if !(p.Heritability > 0 && p.Heritability < 1) || math.IsNaN(p.Heritability) {
		return nil, errors.InvalidArchitecture(fmt.Sprintf("heritability %g is outside (0,1)", p.Heritability))
	}

	m := &Model{params: clone(p)}
	for i := range p.AlleleFreqs {
		f := p.AlleleFreqs[i]
		b := p.EffectSizes[i]
		m.vg += b * b * f * (1 - f)
	}
	m.sigma2 = (1 - p.Heritability) / p.Heritability * m.vg
	m.sigma = math.Sqrt(m.sigma2)
	return m, nil
}

func clone(p Params) Params {
	out := p
	out.AlleleFreqs = append([]float64(nil), p.AlleleFreqs...)
	out.EffectSizes = append([]float64(nil), p.EffectSizes...)
	return out
}

// CausalGenes returns n, the number of truly causal genes.
func (m *Model) CausalGenes() int { return m.params.CausalGenes }

// TotalGenes returns N, the total number of genes under test.
func (m *Model) TotalGenes() int { return m.params.TotalGenes }

// AlleleFreqs returns a copy of the per-gene minor allele frequencies.
func (m *Model) AlleleFreqs() []float64 {
	return append([]float64(nil), m.params.AlleleFreqs...)
}

// EffectSizes returns a copy of the per-gene additive effect sizes.
func (m *Model) EffectSizes() []float64 {
	return append([]float64(nil), m.params.EffectSizes...)
}

// Heritability returns the target narrow-sense h2.
func (m *Model) Heritability() float64 { return m.params.Heritability }

// GeneticVariance returns vg under the linkage-equilibrium assumption.
func (m *Model) GeneticVariance() float64 { return m.vg }

// NoiseVariance returns sigma2, the environmental variance implied by h2.
func (m *Model) NoiseVariance() float64 { return m.sigma2 }

// NoiseSigma returns the standard deviation of the environmental noise.
func (m *Model) NoiseSigma() float64 { return m.sigma }

// AlleleFreqAt returns the allele frequency of causal gene j without copying.
func (m *Model) AlleleFreqAt(j int) float64 { return m.params.AlleleFreqs[j] }

// EffectSizeAt returns the effect size of causal gene j without copying.
func (m *Model) EffectSizeAt(j int) float64 { return m.params.EffectSizes[j] }
