package excel

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"gopolicy/domain/policy"
	"gopolicy/domain/sweep"
	apperrors "gopolicy/internal/errors"
	"gopolicy/internal/testkit"
)

func TestWriter_SweepAndGridSheets(t *testing.T) {
	model := policy.NewModel(testkit.BaselineParameters())

	result, err := sweep.Sweep(model, policy.KeyFreedomValue, []float64{1e9, 1.2e9})
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	grid, err := sweep.TwoWay(model,
		policy.KeyFreedomValue, []float64{1e8, 4e8},
		policy.KeyVaccineEfficacy, []float64{0.7, 0.9})
	if err != nil {
		t.Fatalf("TwoWay failed: %v", err)
	}

	writer := NewWriter()
	if err := writer.AddParameterSheet("Parameters", model.Parameters()); err != nil {
		t.Fatalf("AddParameterSheet failed: %v", err)
	}
	if err := writer.AddSweepSheet("Sweep", result); err != nil {
		t.Fatalf("AddSweepSheet failed: %v", err)
	}
	if err := writer.AddGridSheet("Grid", grid); err != nil {
		t.Fatalf("AddGridSheet failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "results.xlsx")
	if err := writer.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 3 {
		t.Fatalf("got sheets %v, want 3", sheets)
	}

	if got, _ := f.GetCellValue("Parameters", "A2"); got != "baseline_deaths" {
		t.Errorf("Parameters!A2 = %q, want baseline_deaths", got)
	}
	if got, _ := f.GetCellValue("Sweep", "B2"); got != "Mandate" {
		t.Errorf("Sweep!B2 = %q, want Mandate", got)
	}
	if got, _ := f.GetCellValue("Sweep", "B3"); got != "Voluntary" {
		t.Errorf("Sweep!B3 = %q, want Voluntary", got)
	}
	if got, _ := f.GetCellValue("Grid", "B1"); got != "70.0%" {
		t.Errorf("Grid!B1 = %q, want 70.0%%", got)
	}
}

func TestWriter_SaveBadPath(t *testing.T) {
	writer := NewWriter()
	if err := writer.AddParameterSheet("Parameters", testkit.BaselineParameters()); err != nil {
		t.Fatalf("AddParameterSheet failed: %v", err)
	}

	err := writer.Save(filepath.Join(t.TempDir(), "missing", "results.xlsx"))
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
	if got := apperrors.GetCode(err); got != apperrors.CodeExportError {
		t.Errorf("error code = %s, want %s", got, apperrors.CodeExportError)
	}
}
