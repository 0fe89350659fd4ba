package simulate

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"genpower/domain/architecture"
	"genpower/domain/core"
	"genpower/domain/power"
	"genpower/internal"
	"genpower/internal/errors"
)

// RunConfig holds the per-run scalars: everything except the architecture
// itself. Immutable once the run starts.
type RunConfig struct {
	Population   int     // K, individuals per replicate
	Replicates   int     // R, independent trials
	Alpha        float64 // Bonferroni family-wise significance level
	FDRThreshold float64 // Benjamini-Hochberg q-value cutoff
	Seed         int64   // root seed; replicate i draws from StreamSeed(Seed, i)
	Workers      int     // worker pool size; <= 0 means runtime.NumCPU()
}

// Validate checks the run scalars.
func (c RunConfig) Validate() error {
	if c.Population < 1 {
		return errors.InvalidInput(fmt.Sprintf("population size must be >= 1, got %d", c.Population))
	}
	if c.Replicates < 1 {
		return errors.InvalidInput(fmt.Sprintf("replicate count must be >= 1, got %d", c.Replicates))
	}
	if !(c.Alpha > 0 && c.Alpha < 1) {
		return errors.InvalidInput(fmt.Sprintf("alpha %g is outside (0,1)", c.Alpha))
	}
	if !(c.FDRThreshold > 0 && c.FDRThreshold < 1) {
		return errors.InvalidInput(fmt.Sprintf("FDR threshold %g is outside (0,1)", c.FDRThreshold))
	}
	return nil
}

// workerCount resolves the configured pool size.
func (c RunConfig) workerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Runner executes R independent replicates over a shared read-only
// architecture and collects one summary row per replicate.
type Runner struct {
	simulator *Simulator
	logger    *internal.Logger
}

// NewRunner creates a simulation runner. The detection thresholds come from
// the RunConfig at run time, so one runner can serve runs with different
// alpha/FDR settings.
func NewRunner() *Runner {
	return &Runner{
		simulator: NewSimulator(),
		logger:    internal.NewDefaultLogger(),
	}
}

// Run executes cfg.Replicates independent trials in a bounded worker pool.
// Row i of the returned table always corresponds to replicate i: the result
// set is a deterministic function of (architecture, config, seed), never of
// completion order or pool size.
func (r *Runner) Run(ctx context.Context, model *architecture.Model, cfg RunConfig) (power.Table, *power.RunManifest, error) {
	if model == nil {
		return power.Table{}, nil, errors.InvalidInput("architecture model is required")
	}
	if err := cfg.Validate(); err != nil {
		return power.Table{}, nil, err
	}

	workers := cfg.workerCount()
	scorer := NewScorer(cfg.Alpha, cfg.FDRThreshold)
	start := time.Now()
	r.logger.Info("[Runner] starting %d replicates (K=%d, workers=%d, seed=%d)",
		cfg.Replicates, cfg.Population, workers, cfg.Seed)

	table := power.NewTable(cfg.Replicates)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < cfg.Replicates; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Replicate-local stream: both the dataset draws and the scorer's
			// null uniforms consume it, in a fixed order.
			rng := Stream(cfg.Seed, i)
			rep, err := r.simulator.Simulate(model, cfg.Population, rng)
			if err != nil {
				return errors.Wrapf(err, "replicate %d simulation failed", i)
			}
			summary, err := scorer.Score(rep, model, rng)
			if err != nil {
				return errors.Wrapf(err, "replicate %d scoring failed", i)
			}
			r.logger.Debug("[Runner] replicate %d: bonferroni=%d fdr_detected=%d h2=%.3f",
				i, summary.BonferroniTrue, summary.FDRDetected, summary.RealizedH2)
			table.Rows[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.logger.Error("[Runner] run failed: %v", err)
		return power.Table{}, nil, err
	}

	runtimeMs := time.Since(start).Milliseconds()
	r.logger.Info("[Runner] completed %d replicates in %dms", cfg.Replicates, runtimeMs)

	manifest := &power.RunManifest{
		RunID:        core.NewRunID(),
		CausalGenes:  model.CausalGenes(),
		TotalGenes:   model.TotalGenes(),
		Heritability: model.Heritability(),
		Population:   cfg.Population,
		Replicates:   cfg.Replicates,
		Alpha:        cfg.Alpha,
		FDRThreshold: cfg.FDRThreshold,
		Seed:         cfg.Seed,
		Workers:      workers,
		RuntimeMs:    runtimeMs,
		CreatedAt:    core.Now(),
	}
	return table, manifest, nil
}
