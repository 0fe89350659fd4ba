package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"genpower/domain/power"
	"genpower/internal/aggregate"
	"genpower/internal/errors"
)

const (
	replicatesSheet = "Replicates"
	summarySheet    = "Summary"
)

// Writer exports a simulation table and its aggregates to an xlsx workbook.
type Writer struct{}

// NewWriter creates an excel writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write produces a workbook with one sheet holding the R×6 replicate table
// and one holding the aggregate tables, then saves it to path.
func (w *Writer) Write(path string, table power.Table, summary *aggregate.Summary) error {
	if path == "" {
		return errors.ExportError("workbook path is empty")
	}

	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet to the replicate table sheet.
	if err := f.SetSheetName("Sheet1", replicatesSheet); err != nil {
		return errors.Wrap(err, "failed to name replicate sheet")
	}

	if err := w.writeReplicates(f, table); err != nil {
		return err
	}
	if summary != nil {
		if err := w.writeSummary(f, summary); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to save workbook %s", path)
	}
	return nil
}

func (w *Writer) writeReplicates(f *excelize.File, table power.Table) error {
	header := make([]interface{}, len(power.Columns))
	for i, name := range power.Columns {
		header[i] = name
	}
	if err := f.SetSheetRow(replicatesSheet, "A1", &header); err != nil {
		return errors.Wrap(err, "failed to write replicate header")
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "failed to compute cell coordinates")
		}
		values := []interface{}{row.MinP, row.MaxP, row.BonferroniTrue, row.FDRDetected, row.FDRTrue, row.RealizedH2}
		if err := f.SetSheetRow(replicatesSheet, cell, &values); err != nil {
			return errors.Wrapf(err, "failed to write replicate row %d", i)
		}
	}
	return nil
}

func (w *Writer) writeSummary(f *excelize.File, summary *aggregate.Summary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return errors.Wrap(err, "failed to create summary sheet")
	}

	rowIdx := 1
	writeRow := func(values ...interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		rowIdx++
		return f.SetSheetRow(summarySheet, cell, &values)
	}

	if err := writeRow("column", "mean", "sd", "min", "q25", "median", "q75", "max"); err != nil {
		return errors.Wrap(err, "failed to write summary header")
	}
	for _, c := range summary.Columns {
		if err := writeRow(c.Name, c.Mean, c.StdDev, c.Min, c.Q25, c.Median, c.Q75, c.Max); err != nil {
			return errors.Wrapf(err, "failed to write summary for column %s", c.Name)
		}
	}

	for _, dist := range []aggregate.Distribution{summary.Bonferroni, summary.FDRTrue, summary.FDRDetected} {
		rowIdx++ // blank separator row
		if err := writeRow(fmt.Sprintf("%s: k", dist.Name), "P(detect = k)", "P(detect >= k)"); err != nil {
			return errors.Wrapf(err, "failed to write distribution header for %s", dist.Name)
		}
		for k := range dist.Freq {
			if err := writeRow(k, dist.Freq[k], dist.CumAtLeast[k]); err != nil {
				return errors.Wrapf(err, "failed to write distribution row for %s", dist.Name)
			}
		}
	}
	return nil
}
