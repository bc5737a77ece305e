package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/openhta/ceaplane/internal/bia"
	"github.com/openhta/ceaplane/internal/cea"
	"github.com/openhta/ceaplane/internal/ceac"
)

// Workbook accumulates result tables and writes them as one xlsx file, a
// deliverable format HTA reviewers routinely ask for.
type Workbook struct {
	f *excelize.File
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{f: excelize.NewFile()}
}

// AddDeltaSheet writes one therapy's delta table.
func (w *Workbook) AddDeltaSheet(therapy string, deltas []cea.Delta) error {
	sheet := "deltas_" + therapy
	if _, err := w.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	if err := w.setRow(sheet, 1, []interface{}{"draw", "dE", "dC"}); err != nil {
		return err
	}
	for i, d := range deltas {
		if err := w.setRow(sheet, i+2, []interface{}{d.Draw, d.DE, d.DC}); err != nil {
			return err
		}
	}
	return nil
}

// AddCEACSheet writes the acceptability curve, one column per strategy.
func (w *Workbook) AddCEACSheet(curve ceac.Curve, strategies []string) error {
	const sheet = "ceac"
	if _, err := w.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	header := []interface{}{"wtp"}
	for _, s := range strategies {
		header = append(header, s)
	}
	header = append(header, "frontier")
	if err := w.setRow(sheet, 1, header); err != nil {
		return err
	}

	for i, p := range curve {
		row := []interface{}{p.WTP}
		for _, s := range strategies {
			row = append(row, p.Probability[s])
		}
		row = append(row, p.Frontier)
		if err := w.setRow(sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// AddBIASheet writes the budget-impact horizon table.
func (w *Workbook) AddBIASheet(res *bia.Result) error {
	const sheet = "budget_impact"
	if _, err := w.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	if err := w.setRow(sheet, 1, []interface{}{"year", "treated", "gross", "offset", "net"}); err != nil {
		return err
	}
	for i, y := range res.Years {
		row := []interface{}{y.Year, y.Treated, y.GrossCost, y.Offset, y.Net}
		if err := w.setRow(sheet, i+2, row); err != nil {
			return err
		}
	}
	return w.setRow(sheet, len(res.Years)+2, []interface{}{"cumulative", "", "", "", res.CumulativeNet})
}

// Save writes the workbook, dropping the default empty sheet excelize
// creates.
func (w *Workbook) Save(path string) error {
	w.f.DeleteSheet("Sheet1")
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return w.f.Close()
}

func (w *Workbook) setRow(sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := w.f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
