package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genpower/domain/core"
	"genpower/domain/power"
	"genpower/internal/aggregate"
)

func fixtureInputs() (*power.RunManifest, *aggregate.Summary) {
	manifest := &power.RunManifest{
		RunID:        core.NewRunID(),
		CausalGenes:  2,
		TotalGenes:   10,
		Heritability: 0.5,
		Population:   100,
		Replicates:   3,
		Alpha:        0.05,
		FDRThreshold: 0.05,
		Seed:         42,
		Workers:      4,
		RuntimeMs:    17,
		CreatedAt:    core.Now(),
	}
	summary := &aggregate.Summary{
		Replicates: 3,
		Columns: []aggregate.ColumnSummary{
			{Name: "min_p", Mean: 0.01, StdDev: 0.005, Min: 0.004, Max: 0.02, Median: 0.01, Q25: 0.006, Q75: 0.015},
			{Name: "h2", Mean: 0.49, StdDev: 0.03, Min: 0.45, Max: 0.52, Median: 0.50, Q25: 0.47, Q75: 0.51},
		},
		Bonferroni: aggregate.Distribution{
			Name:       "bonferroni_true",
			Freq:       []float64{0, 1.0 / 3, 2.0 / 3},
			CumAtLeast: []float64{1, 1, 2.0 / 3},
		},
		FDRTrue: aggregate.Distribution{
			Name:       "fdr_true",
			Freq:       []float64{0, 0, 1},
			CumAtLeast: []float64{1, 1, 1},
		},
		FDRDetected: aggregate.Distribution{
			Name:       "fdr_detected",
			Freq:       []float64{0, 0, 1, 0},
			CumAtLeast: []float64{1, 1, 1, 0},
		},
	}
	return manifest, summary
}

func TestMarkdown_ContainsAllSections(t *testing.T) {
	manifest, summary := fixtureInputs()
	md := NewRenderer().Markdown(manifest, summary)

	assert.Contains(t, md, "# Detection power report")
	assert.Contains(t, md, "## Parameters")
	assert.Contains(t, md, "## Column summaries")
	assert.Contains(t, md, "## Bonferroni true positives")
	assert.Contains(t, md, "## FDR true positives")
	assert.Contains(t, md, "## FDR detections (all genes)")

	assert.Contains(t, md, string(manifest.RunID))
	assert.Contains(t, md, "| causal genes (n) | 2 |")
	assert.Contains(t, md, "| seed | 42 |")
	assert.Contains(t, md, "| min_p |")
	assert.Contains(t, md, "| h2 |")
}

func TestMarkdown_SkipsEmptyTailRows(t *testing.T) {
	manifest, summary := fixtureInputs()
	md := NewRenderer().Markdown(manifest, summary)

	// The fdr_detected distribution has an all-zero row at k=3 that must not
	// be printed.
	assert.NotContains(t, md, "| 3 | 0.0000 | 0.0000 |")
}

func TestRenderHTML_ProducesCompletePage(t *testing.T) {
	manifest, summary := fixtureInputs()
	r := NewRenderer()
	html := string(r.RenderHTML(r.Markdown(manifest, summary)))

	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "Detection power report")
	assert.True(t, strings.Count(html, "<table>") >= 4, "expected one table per section")
}

func TestWriteFiles(t *testing.T) {
	manifest, summary := fixtureInputs()
	r := NewRenderer()
	md := r.Markdown(manifest, summary)

	dir := t.TempDir()
	mdPath := filepath.Join(dir, "report.md")
	htmlPath := filepath.Join(dir, "report.html")
	require.NoError(t, r.WriteFiles(md, mdPath, htmlPath))

	gotMD, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Equal(t, md, string(gotMD))

	gotHTML, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(gotHTML), "<table>")

	// Empty paths skip that format without error.
	require.NoError(t, r.WriteFiles(md, "", ""))
}
