package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"genpower/domain/core"
	"genpower/domain/power"
	"genpower/internal/errors"
)

// RunRepository persists run manifests and their replicate summaries. The
// ledger is an optional collaborator: the simulation core never depends on
// it, the CLI wires it in only when DATABASE_URL is set.
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// SaveRun stores a manifest and its full table in one transaction.
func (r *RunRepository) SaveRun(ctx context.Context, manifest *power.RunManifest, table power.Table) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin run transaction")
	}
	defer tx.Rollback()

	const insertRun = `
		INSERT INTO simulation_runs (
			run_id, causal_genes, total_genes, heritability, population,
			replicates, alpha, fdr_threshold, seed, workers, runtime_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = tx.ExecContext(ctx, insertRun,
		manifest.RunID.String(),
		manifest.CausalGenes,
		manifest.TotalGenes,
		manifest.Heritability,
		manifest.Population,
		manifest.Replicates,
		manifest.Alpha,
		manifest.FDRThreshold,
		manifest.Seed,
		manifest.Workers,
		manifest.RuntimeMs,
		manifest.CreatedAt.Time(),
	)
	if err != nil {
		return errors.Wrap(err, "failed to insert run manifest")
	}

	const insertSummary = `
		INSERT INTO replicate_summaries (
			run_id, replicate, min_p, max_p, bonferroni_true, fdr_detected, fdr_true, h2
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i, row := range table.Rows {
		_, err = tx.ExecContext(ctx, insertSummary,
			manifest.RunID.String(), i,
			row.MinP, row.MaxP, row.BonferroniTrue, row.FDRDetected, row.FDRTrue, row.RealizedH2,
		)
		if err != nil {
			return errors.Wrapf(err, "failed to insert summary for replicate %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit run transaction")
	}
	return nil
}

// GetManifest loads a stored run manifest by ID.
func (r *RunRepository) GetManifest(ctx context.Context, runID core.RunID) (*power.RunManifest, error) {
	const query = `
		SELECT run_id, causal_genes, total_genes, heritability, population,
		       replicates, alpha, fdr_threshold, seed, workers, runtime_ms, created_at
		FROM simulation_runs WHERE run_id = $1`

	var row struct {
		RunID        string    `db:"run_id"`
		CausalGenes  int       `db:"causal_genes"`
		TotalGenes   int       `db:"total_genes"`
		Heritability float64   `db:"heritability"`
		Population   int       `db:"population"`
		Replicates   int       `db:"replicates"`
		Alpha        float64   `db:"alpha"`
		FDRThreshold float64   `db:"fdr_threshold"`
		Seed         int64     `db:"seed"`
		Workers      int       `db:"workers"`
		RuntimeMs    int64     `db:"runtime_ms"`
		CreatedAt    time.Time `db:"created_at"`
	}
	if err := r.db.GetContext(ctx, &row, query, runID.String()); err != nil {
		return nil, errors.Wrapf(err, "failed to load run %s", runID)
	}

	return &power.RunManifest{
		RunID:        core.RunID(row.RunID),
		CausalGenes:  row.CausalGenes,
		TotalGenes:   row.TotalGenes,
		Heritability: row.Heritability,
		Population:   row.Population,
		Replicates:   row.Replicates,
		Alpha:        row.Alpha,
		FDRThreshold: row.FDRThreshold,
		Seed:         row.Seed,
		Workers:      row.Workers,
		RuntimeMs:    row.RuntimeMs,
		CreatedAt:    core.Timestamp(row.CreatedAt),
	}, nil
}

// GetTable loads the replicate summaries of a run in replicate-index order.
func (r *RunRepository) GetTable(ctx context.Context, runID core.RunID) (power.Table, error) {
	const query = `
		SELECT min_p, max_p, bonferroni_true, fdr_detected, fdr_true, h2
		FROM replicate_summaries WHERE run_id = $1 ORDER BY replicate`

	var rows []power.ReplicateSummary
	if err := r.db.SelectContext(ctx, &rows, query, runID.String()); err != nil {
		return power.Table{}, errors.Wrapf(err, "failed to load table for run %s", runID)
	}
	return power.Table{Rows: rows}, nil
}
