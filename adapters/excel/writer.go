package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gopolicy/domain/policy"
	"gopolicy/domain/sweep"
	apperrors "gopolicy/internal/errors"
	"gopolicy/internal/format"
	"gopolicy/ports"
)

// Writer exports sweep results to an Excel workbook: one sheet per sweep table
// and one per two-way pivot. Cells carry the same formatted strings the text
// tables use.
type Writer struct {
	file   *excelize.File
	sheets int
}

// NewWriter creates an empty workbook writer.
func NewWriter() *Writer {
	return &Writer{file: excelize.NewFile()}
}

var _ ports.TableExporterPort = (*Writer)(nil)

// AddSweepSheet writes a one-parameter sweep to its own sheet.
func (w *Writer) AddSweepSheet(name string, result *sweep.Result) error {
	if err := w.addSheet(name); err != nil {
		return err
	}

	headers := []string{"Parameter Value", "Decision", "Utility Mandate", "Utility Voluntary", "Utility Difference"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := w.file.SetCellValue(name, cell, header); err != nil {
			return apperrors.ExportError("failed to write header", err)
		}
	}

	for i, point := range result.Points {
		row := i + 2
		values := []interface{}{
			format.Parameter(result.Parameter, point.Value),
			string(point.Decision),
			format.Currency(point.UtilityMandate),
			format.Currency(point.UtilityVoluntary),
			format.Currency(point.UtilityDifference),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := w.file.SetCellValue(name, cell, value); err != nil {
				return apperrors.ExportError(fmt.Sprintf("failed to write row %d", row), err)
			}
		}
	}

	return nil
}

// AddGridSheet writes a two-parameter pivot to its own sheet: rows over
// Values1, columns over Values2.
func (w *Writer) AddGridSheet(name string, grid *sweep.Grid) error {
	if err := w.addSheet(name); err != nil {
		return err
	}

	corner, _ := excelize.CoordinatesToCellName(1, 1)
	label := fmt.Sprintf("%s \\ %s", grid.Param1, grid.Param2)
	if err := w.file.SetCellValue(name, corner, label); err != nil {
		return apperrors.ExportError("failed to write corner label", err)
	}

	for j, v2 := range grid.Values2 {
		cell, _ := excelize.CoordinatesToCellName(j+2, 1)
		if err := w.file.SetCellValue(name, cell, format.Parameter(grid.Param2, v2)); err != nil {
			return apperrors.ExportError("failed to write column header", err)
		}
	}

	pivot := grid.Pivot()
	for i, v1 := range grid.Values1 {
		rowCell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := w.file.SetCellValue(name, rowCell, format.Parameter(grid.Param1, v1)); err != nil {
			return apperrors.ExportError("failed to write row header", err)
		}
		for j, decision := range pivot[i] {
			cell, _ := excelize.CoordinatesToCellName(j+2, i+2)
			if err := w.file.SetCellValue(name, cell, string(decision)); err != nil {
				return apperrors.ExportError("failed to write cell", err)
			}
		}
	}

	return nil
}

// AddParameterSheet writes the baseline parameter table.
func (w *Writer) AddParameterSheet(name string, params policy.Parameters) error {
	if err := w.addSheet(name); err != nil {
		return err
	}

	if err := w.file.SetCellValue(name, "A1", "Parameter"); err != nil {
		return err
	}
	if err := w.file.SetCellValue(name, "B1", "Value"); err != nil {
		return err
	}

	for i, key := range policy.ParameterKeys() {
		value, _ := params.Value(key)
		keyCell, _ := excelize.CoordinatesToCellName(1, i+2)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+2)
		if err := w.file.SetCellValue(name, keyCell, string(key)); err != nil {
			return err
		}
		if err := w.file.SetCellValue(name, valueCell, format.Parameter(key, value)); err != nil {
			return err
		}
	}

	return nil
}

// Save writes the workbook to disk and closes it.
func (w *Writer) Save(path string) error {
	if err := w.file.SaveAs(path); err != nil {
		return apperrors.ExportError(fmt.Sprintf("failed to save workbook %s", path), err)
	}
	return w.file.Close()
}

// addSheet creates a named sheet, replacing the default Sheet1 the first time.
func (w *Writer) addSheet(name string) error {
	if w.sheets == 0 {
		if err := w.file.SetSheetName("Sheet1", name); err != nil {
			return apperrors.ExportError("failed to name first sheet", err)
		}
		w.sheets++
		return nil
	}
	if _, err := w.file.NewSheet(name); err != nil {
		return apperrors.ExportError(fmt.Sprintf("failed to create sheet %s", name), err)
	}
	w.sheets++
	return nil
}
