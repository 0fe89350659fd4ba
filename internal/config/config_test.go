package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GP_CAUSAL_GENES", "GP_TOTAL_GENES", "GP_ALLELE_FREQS", "GP_EFFECT_SIZES",
		"GP_HERITABILITY", "GP_POPULATION", "GP_REPLICATES", "GP_ALPHA",
		"GP_FDR_THRESHOLD", "GP_SEED", "GP_WORKERS", "GP_EXCEL_FILE",
		"GP_MARKDOWN_FILE", "GP_HTML_FILE", "DATABASE_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Architecture.CausalGenes)
	assert.Equal(t, 100, cfg.Architecture.TotalGenes)
	assert.Len(t, cfg.Architecture.AlleleFreqs, 10)
	assert.Equal(t, 0.25, cfg.Architecture.AlleleFreqs[0])
	assert.Len(t, cfg.Architecture.EffectSizes, 10)
	assert.Equal(t, 1.0, cfg.Architecture.EffectSizes[9])
	assert.Equal(t, 0.5, cfg.Architecture.Heritability)

	assert.Equal(t, 100, cfg.Run.Population)
	assert.Equal(t, 1000, cfg.Run.Replicates)
	assert.Equal(t, 0.05, cfg.Run.Alpha)
	assert.Equal(t, 0.05, cfg.Run.FDRThreshold)
	assert.Equal(t, int64(42), cfg.Run.Seed)
	assert.Equal(t, 0, cfg.Run.Workers)

	assert.Empty(t, cfg.Output.ExcelFile)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GP_CAUSAL_GENES", "3")
	t.Setenv("GP_TOTAL_GENES", "30")
	t.Setenv("GP_ALLELE_FREQS", "0.1, 0.2, 0.3")
	t.Setenv("GP_EFFECT_SIZES", "1.5,0.5,2")
	t.Setenv("GP_HERITABILITY", "0.8")
	t.Setenv("GP_POPULATION", "500")
	t.Setenv("GP_REPLICATES", "200")
	t.Setenv("GP_SEED", "7")
	t.Setenv("GP_WORKERS", "8")
	t.Setenv("GP_EXCEL_FILE", "out.xlsx")
	t.Setenv("DATABASE_URL", "postgres://localhost/genpower")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Architecture.CausalGenes)
	assert.Equal(t, 30, cfg.Architecture.TotalGenes)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, cfg.Architecture.AlleleFreqs)
	assert.Equal(t, []float64{1.5, 0.5, 2}, cfg.Architecture.EffectSizes)
	assert.Equal(t, 0.8, cfg.Architecture.Heritability)
	assert.Equal(t, 500, cfg.Run.Population)
	assert.Equal(t, 200, cfg.Run.Replicates)
	assert.Equal(t, int64(7), cfg.Run.Seed)
	assert.Equal(t, 8, cfg.Run.Workers)
	assert.Equal(t, "out.xlsx", cfg.Output.ExcelFile)
	assert.Equal(t, "postgres://localhost/genpower", cfg.Database.URL)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("GP_POPULATION", "not-a-number")
	t.Setenv("GP_HERITABILITY", "half")
	t.Setenv("GP_ALLELE_FREQS", "0.1,oops")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Run.Population)
	assert.Equal(t, 0.5, cfg.Architecture.Heritability)
	assert.Len(t, cfg.Architecture.AlleleFreqs, 10) // default list survives
}

func TestLoad_RejectsInconsistentShapes(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"zero causal genes", map[string]string{"GP_CAUSAL_GENES": "0"}},
		{"total below causal", map[string]string{"GP_CAUSAL_GENES": "5", "GP_TOTAL_GENES": "3", "GP_ALLELE_FREQS": "0.1,0.1,0.1,0.1,0.1", "GP_EFFECT_SIZES": "1,1,1,1,1"}},
		{"freq list wrong length", map[string]string{"GP_CAUSAL_GENES": "2", "GP_ALLELE_FREQS": "0.1,0.2,0.3", "GP_EFFECT_SIZES": "1,1"}},
		{"effect list wrong length", map[string]string{"GP_CAUSAL_GENES": "2", "GP_ALLELE_FREQS": "0.1,0.2", "GP_EFFECT_SIZES": "1"}},
		{"zero replicates", map[string]string{"GP_REPLICATES": "0"}},
		{"zero population", map[string]string{"GP_POPULATION": "0"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}
