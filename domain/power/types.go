package power

import (
	"genpower/domain/core"
)

// ReplicateSummary is one row of the simulation table: the detection
// statistics extracted from a single independent replicate. The raw genotype
// and phenotype data never leave the replicate, only this summary does.
type ReplicateSummary struct {
	MinP           float64 `json:"min_p" db:"min_p"`
	MaxP           float64 `json:"max_p" db:"max_p"`
	BonferroniTrue int     `json:"bonferroni_true" db:"bonferroni_true"`
	FDRDetected    int     `json:"fdr_detected" db:"fdr_detected"`
	FDRTrue        int     `json:"fdr_true" db:"fdr_true"`
	RealizedH2     float64 `json:"h2" db:"h2"`
}

// Columns is the fixed column order of the simulation table, the consumed
// interface for downstream aggregation and export.
var Columns = []string{"min_p", "max_p", "bonferroni_true", "fdr_detected", "fdr_true", "h2"}

// Table is the ordered collection of replicate summaries, one row per
// replicate in replicate-index order. Owned by the runner; immutable once
// returned.
type Table struct {
	Rows []ReplicateSummary `json:"rows"`
}

// NewTable allocates a table for r replicates.
func NewTable(r int) Table {
	return Table{Rows: make([]ReplicateSummary, r)}
}

// Len returns the number of replicate rows.
func (t Table) Len() int { return len(t.Rows) }

// BonferroniCounts returns the bonferroni_true column.
func (t Table) BonferroniCounts() []int {
	out := make([]int, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row.BonferroniTrue
	}
	return out
}

// FDRTrueCounts returns the fdr_true column.
func (t Table) FDRTrueCounts() []int {
	out := make([]int, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row.FDRTrue
	}
	return out
}

// FDRDetectedCounts returns the fdr_detected column.
func (t Table) FDRDetectedCounts() []int {
	out := make([]int, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row.FDRDetected
	}
	return out
}

// Column returns a float64 view of a named numeric column. The boolean
// reports whether the name is one of the fixed table columns.
func (t Table) Column(name string) ([]float64, bool) {
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		switch name {
		case "min_p":
			out[i] = row.MinP
		case "max_p":
			out[i] = row.MaxP
		case "bonferroni_true":
			out[i] = float64(row.BonferroniTrue)
		case "fdr_detected":
			out[i] = float64(row.FDRDetected)
		case "fdr_true":
			out[i] = float64(row.FDRTrue)
		case "h2":
			out[i] = row.RealizedH2
		default:
			return nil, false
		}
	}
	return out, true
}

// RunManifest echoes the configuration of a completed run together with its
// identity and timing, for the ledger and the report.
type RunManifest struct {
	RunID        core.RunID     `json:"run_id" db:"run_id"`
	CausalGenes  int            `json:"causal_genes" db:"causal_genes"`
	TotalGenes   int            `json:"total_genes" db:"total_genes"`
	Heritability float64        `json:"heritability" db:"heritability"`
	Population   int            `json:"population" db:"population"`
	Replicates   int            `json:"replicates" db:"replicates"`
	Alpha        float64        `json:"alpha" db:"alpha"`
	FDRThreshold float64        `json:"fdr_threshold" db:"fdr_threshold"`
	Seed         int64          `json:"seed" db:"seed"`
	Workers      int            `json:"workers" db:"workers"`
	RuntimeMs    int64          `json:"runtime_ms" db:"runtime_ms"`
	CreatedAt    core.Timestamp `json:"created_at" db:"created_at"`
}
