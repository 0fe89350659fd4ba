package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"genpower/domain/power"
	"genpower/internal/aggregate"
	"genpower/internal/errors"
)

// Renderer formats a completed run as a markdown report and can render it to
// a standalone HTML page.
type Renderer struct{}

// NewRenderer creates a report renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Markdown builds the full report: parameter echo, per-column summaries, and
// the cumulative detection tables.
func (r *Renderer) Markdown(manifest *power.RunManifest, summary *aggregate.Summary) string {
	var b strings.Builder

	b.WriteString("# Detection power report\n\n")
	fmt.Fprintf(&b, "Run `%s`: %d replicates of K=%d individuals.\n\n", manifest.RunID, manifest.Replicates, manifest.Population)

	b.WriteString("## Parameters\n\n")
	b.WriteString("| parameter | value |\n|---|---|\n")
	fmt.Fprintf(&b, "| causal genes (n) | %d |\n", manifest.CausalGenes)
	fmt.Fprintf(&b, "| tested genes (N) | %d |\n", manifest.TotalGenes)
	fmt.Fprintf(&b, "| heritability (h2) | %.3f |\n", manifest.Heritability)
	fmt.Fprintf(&b, "| population (K) | %d |\n", manifest.Population)
	fmt.Fprintf(&b, "| replicates (R) | %d |\n", manifest.Replicates)
	fmt.Fprintf(&b, "| alpha | %g |\n", manifest.Alpha)
	fmt.Fprintf(&b, "| FDR threshold | %g |\n", manifest.FDRThreshold)
	fmt.Fprintf(&b, "| seed | %d |\n", manifest.Seed)
	fmt.Fprintf(&b, "| workers | %d |\n", manifest.Workers)
	fmt.Fprintf(&b, "| runtime | %dms |\n\n", manifest.RuntimeMs)

	b.WriteString("## Column summaries\n\n")
	b.WriteString("| column | mean | sd | min | q25 | median | q75 | max |\n|---|---|---|---|---|---|---|---|\n")
	for _, c := range summary.Columns {
		fmt.Fprintf(&b, "| %s | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g |\n",
			c.Name, c.Mean, c.StdDev, c.Min, c.Q25, c.Median, c.Q75, c.Max)
	}
	b.WriteString("\n")

	writeDistribution(&b, "Bonferroni true positives", summary.Bonferroni)
	writeDistribution(&b, "FDR true positives", summary.FDRTrue)
	writeDistribution(&b, "FDR detections (all genes)", summary.FDRDetected)

	return b.String()
}

func writeDistribution(b *strings.Builder, title string, dist aggregate.Distribution) {
	fmt.Fprintf(b, "## %s\n\n", title)
	b.WriteString("| k | P(detect = k) | P(detect >= k) |\n|---|---|---|\n")
	for k := range dist.Freq {
		// Skip empty tail rows to keep wide distributions readable.
		if dist.Freq[k] == 0 && dist.CumAtLeast[k] == 0 {
			continue
		}
		fmt.Fprintf(b, "| %d | %.4f | %.4f |\n", k, dist.Freq[k], dist.CumAtLeast[k])
	}
	b.WriteString("\n")
}

// RenderHTML converts a markdown report to a complete HTML page.
func (r *Renderer) RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))

	opts := html.RendererOptions{
		Title: "Detection power report",
		Flags: html.CommonFlags | html.CompletePage,
	}
	renderer := html.NewRenderer(opts)
	return markdown.Render(doc, renderer)
}

// WriteFiles writes the markdown report and its HTML rendering next to each
// other. Either path may be empty to skip that format.
func (r *Renderer) WriteFiles(md string, mdPath, htmlPath string) error {
	if mdPath != "" {
		if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
			return errors.Wrapf(err, "failed to write markdown report %s", mdPath)
		}
	}
	if htmlPath != "" {
		if err := os.WriteFile(htmlPath, r.RenderHTML(md), 0o644); err != nil {
			return errors.Wrapf(err, "failed to write HTML report %s", htmlPath)
		}
	}
	return nil
}
