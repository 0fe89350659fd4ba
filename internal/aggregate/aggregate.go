package aggregate

import (
	mstats "github.com/montanaflynn/stats"

	"genpower/domain/power"
	"genpower/internal/errors"
)

// ColumnSummary holds the descriptive statistics of one table column.
type ColumnSummary struct {
	Name   string  `json:"name"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// Distribution is the empirical distribution of a detection count: Freq[k] is
// the fraction of replicates that detected exactly k genes, CumAtLeast[k] the
// fraction that detected k or more.
type Distribution struct {
	Name       string    `json:"name"`
	Freq       []float64 `json:"freq"`
	CumAtLeast []float64 `json:"cum_at_least"`
}

// Summary is the full aggregation of a simulation table: the off-core
// consumer of the runner's output.
type Summary struct {
	Replicates  int             `json:"replicates"`
	Columns     []ColumnSummary `json:"columns"`
	Bonferroni  Distribution    `json:"bonferroni"`
	FDRTrue     Distribution    `json:"fdr_true"`
	FDRDetected Distribution    `json:"fdr_detected"`
}

// Aggregator consumes the R×6 result table read-only and builds
// distributions and cumulative-probability tables.
type Aggregator struct{}

// NewAggregator creates a result aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Summarize aggregates a simulation table. causalGenes bounds the detection
// count distributions for the true-positive columns; totalGenes bounds the
// fdr_detected distribution.
func (a *Aggregator) Summarize(table power.Table, causalGenes, totalGenes int) (*Summary, error) {
	if table.Len() == 0 {
		return nil, errors.InvalidInput("cannot aggregate an empty simulation table")
	}

	summary := &Summary{Replicates: table.Len()}
	for _, name := range power.Columns {
		col, _ := table.Column(name)
		cs, err := summarizeColumn(name, col)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to summarize column %s", name)
		}
		summary.Columns = append(summary.Columns, cs)
	}

	summary.Bonferroni = countDistribution("bonferroni_true", table.BonferroniCounts(), causalGenes)
	summary.FDRTrue = countDistribution("fdr_true", table.FDRTrueCounts(), causalGenes)
	summary.FDRDetected = countDistribution("fdr_detected", table.FDRDetectedCounts(), totalGenes)
	return summary, nil
}

func summarizeColumn(name string, values []float64) (ColumnSummary, error) {
	mean, err := mstats.Mean(values)
	if err != nil {
		return ColumnSummary{}, err
	}
	stdDev, _ := mstats.StandardDeviationSample(values)
	min, _ := mstats.Min(values)
	max, _ := mstats.Max(values)
	median, _ := mstats.Median(values)
	q25, _ := mstats.Percentile(values, 25)
	q75, _ := mstats.Percentile(values, 75)

	return ColumnSummary{
		Name:   name,
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
		Q25:    q25,
		Q75:    q75,
	}, nil
}

// countDistribution builds the exact-count frequencies over 0..max and the
// cumulative at-least table. The cumulative table is monotone non-increasing
// and starts at 1 for k=0.
func countDistribution(name string, counts []int, max int) Distribution {
	freq := make([]float64, max+1)
	for _, c := range counts {
		if c < 0 {
			c = 0
		}
		if c > max {
			c = max
		}
		freq[c]++
	}
	total := float64(len(counts))
	for k := range freq {
		freq[k] /= total
	}

	cum := make([]float64, max+1)
	running := 0.0
	for k := max; k >= 0; k-- {
		running += freq[k]
		cum[k] = running
	}
	// Guard against accumulated rounding at k=0.
	if cum[0] > 1 {
		cum[0] = 1
	}

	return Distribution{Name: name, Freq: freq, CumAtLeast: cum}
}
