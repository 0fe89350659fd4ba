package config

import (
	"os"
	"strconv"
	"strings"

	"genpower/internal/errors"
)

// Config represents the complete run configuration, assembled from
// environment variables and immutable afterwards. CLI flags may override
// individual fields before validation.
type Config struct {
	Architecture ArchitectureConfig
	Run          RunConfig
	Output       OutputConfig
	Database     DatabaseConfig
}

// ArchitectureConfig holds the genetic architecture inputs
type ArchitectureConfig struct {
	CausalGenes  int
	TotalGenes   int
	AlleleFreqs  []float64
	EffectSizes  []float64
	Heritability float64
}

// RunConfig holds the simulation scalars
type RunConfig struct {
	Population   int
	Replicates   int
	Alpha        float64
	FDRThreshold float64
	Seed         int64
	Workers      int
}

// OutputConfig holds the export destinations
type OutputConfig struct {
	ExcelFile    string
	MarkdownFile string
	HTMLFile     string
}

// DatabaseConfig holds the optional run-ledger connection
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Architecture: loadArchitectureConfig(),
		Run:          loadRunConfig(),
		Output:       loadOutputConfig(),
		Database:     DatabaseConfig{URL: getEnvOrDefault("DATABASE_URL", "")},
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadArchitectureConfig() ArchitectureConfig {
	n := getEnvIntOrDefault("GP_CAUSAL_GENES", 10)
	return ArchitectureConfig{
		CausalGenes:  n,
		TotalGenes:   getEnvIntOrDefault("GP_TOTAL_GENES", 100),
		AlleleFreqs:  getEnvFloatsOrDefault("GP_ALLELE_FREQS", repeated(0.25, n)),
		EffectSizes:  getEnvFloatsOrDefault("GP_EFFECT_SIZES", repeated(1.0, n)),
		Heritability: getEnvFloatOrDefault("GP_HERITABILITY", 0.5),
	}
}

func loadRunConfig() RunConfig {
	return RunConfig{
		Population:   getEnvIntOrDefault("GP_POPULATION", 100),
		Replicates:   getEnvIntOrDefault("GP_REPLICATES", 1000),
		Alpha:        getEnvFloatOrDefault("GP_ALPHA", 0.05),
		FDRThreshold: getEnvFloatOrDefault("GP_FDR_THRESHOLD", 0.05),
		Seed:         int64(getEnvIntOrDefault("GP_SEED", 42)),
		Workers:      getEnvIntOrDefault("GP_WORKERS", 0),
	}
}

func loadOutputConfig() OutputConfig {
	return OutputConfig{
		ExcelFile:    getEnvOrDefault("GP_EXCEL_FILE", ""),
		MarkdownFile: getEnvOrDefault("GP_MARKDOWN_FILE", ""),
		HTMLFile:     getEnvOrDefault("GP_HTML_FILE", ""),
	}
}

// Validate checks cross-field consistency. Range checks on individual values
// are owned by the architecture model and the runner; this catches the
// configuration-shape mistakes that would otherwise surface later.
func (c *Config) Validate() error {
	if c.Architecture.CausalGenes < 1 {
		return errors.ConfigInvalid("GP_CAUSAL_GENES must be >= 1")
	}
	if c.Architecture.TotalGenes < c.Architecture.CausalGenes {
		return errors.ConfigInvalid("GP_TOTAL_GENES must be >= GP_CAUSAL_GENES")
	}
	if len(c.Architecture.AlleleFreqs) != c.Architecture.CausalGenes {
		return errors.ConfigInvalid("GP_ALLELE_FREQS must list one frequency per causal gene")
	}
	if len(c.Architecture.EffectSizes) != c.Architecture.CausalGenes {
		return errors.ConfigInvalid("GP_EFFECT_SIZES must list one effect size per causal gene")
	}
	if c.Run.Replicates < 1 {
		return errors.ConfigInvalid("GP_REPLICATES must be >= 1")
	}
	if c.Run.Population < 1 {
		return errors.ConfigInvalid("GP_POPULATION must be >= 1")
	}
	return nil
}

func repeated(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvFloatsOrDefault parses a comma-separated list of floats.
func getEnvFloatsOrDefault(key string, defaultValue []float64) []float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return defaultValue
		}
		out = append(out, f)
	}
	return out
}
