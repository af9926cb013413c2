package app

import (
	"context"
	"testing"

	"gopolicy/domain/core"
	"gopolicy/domain/policy"
	"gopolicy/domain/sweep"
	"gopolicy/internal/testkit"
)

func TestSweepService_RunSweep(t *testing.T) {
	model := policy.NewModel(testkit.BaselineParameters())
	before := model.Parameters()
	service := NewSweepService(model, 2)

	run, err := service.RunSweep(context.Background(), SweepRequest{
		Parameter: policy.KeyFreedomValue,
		Values:    []float64{1e8, 1e9, 1.2e9},
	})
	if err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}

	if run.SweepID.String() == "" {
		t.Error("sweep ID should not be empty")
	}
	if run.CreatedAt.IsZero() {
		t.Error("created-at timestamp should be set")
	}
	if len(run.Result.Points) != 3 {
		t.Fatalf("got %d points, want 3", len(run.Result.Points))
	}
	if len(run.Boundaries) != 1 {
		t.Errorf("boundaries = %v, want one flip", run.Boundaries)
	}

	if run.Summary == nil {
		t.Fatal("summary should be present for a non-empty sweep")
	}
	if run.Summary.MandateCount+run.Summary.VoluntaryCount != 3 {
		t.Errorf("summary counts = %d + %d, want total 3",
			run.Summary.MandateCount, run.Summary.VoluntaryCount)
	}
	if run.Summary.MinDifference > run.Summary.MeanDifference ||
		run.Summary.MeanDifference > run.Summary.MaxDifference {
		t.Errorf("summary ordering violated: %+v", run.Summary)
	}

	if model.Parameters() != before {
		t.Error("RunSweep changed model parameters")
	}
}

func TestSweepService_RunSweepEmpty(t *testing.T) {
	model := policy.NewModel(testkit.BaselineParameters())
	service := NewSweepService(model, 1)

	run, err := service.RunSweep(context.Background(), SweepRequest{
		Parameter: policy.KeyVaccineEfficacy,
		Values:    nil,
	})
	if err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}

	if len(run.Result.Points) != 0 {
		t.Errorf("got %d points, want 0", len(run.Result.Points))
	}
	if run.Summary != nil {
		t.Errorf("summary = %+v, want nil for empty sweep", run.Summary)
	}
}

func TestSweepService_RunSweepUnknownParameter(t *testing.T) {
	service := NewSweepService(policy.NewModel(testkit.BaselineParameters()), 1)

	_, err := service.RunSweep(context.Background(), SweepRequest{
		Parameter: "bogus_parameter",
		Values:    []float64{1},
	})
	if !core.IsUnknownParameterError(err) {
		t.Fatalf("RunSweep error = %v, want ErrUnknownParameter", err)
	}
}

func TestSweepService_RunGridMatchesSequential(t *testing.T) {
	values1 := sweep.Span(1e8, 4e8, 4)
	values2 := []float64{0.7, 0.8, 0.9, 0.95}

	model := policy.NewModel(testkit.BaselineParameters())
	before := model.Parameters()

	sequential, err := sweep.TwoWay(model, policy.KeyFreedomValue, values1, policy.KeyVaccineEfficacy, values2)
	if err != nil {
		t.Fatalf("TwoWay failed: %v", err)
	}

	service := NewSweepService(model, 3)
	run, err := service.RunGrid(context.Background(), GridRequest{
		Param1:  policy.KeyFreedomValue,
		Values1: values1,
		Param2:  policy.KeyVaccineEfficacy,
		Values2: values2,
	})
	if err != nil {
		t.Fatalf("RunGrid failed: %v", err)
	}

	if run.CreatedAt.IsZero() {
		t.Error("created-at timestamp should be set")
	}
	if len(run.Grid.Cells) != len(values1)*len(values2) {
		t.Fatalf("got %d cells, want %d", len(run.Grid.Cells), len(values1)*len(values2))
	}

	// Concurrent evaluation must not change the result or its ordering.
	for i := range sequential.Cells {
		if run.Grid.Cells[i] != sequential.Cells[i] {
			t.Fatalf("cell %d = %+v, want %+v", i, run.Grid.Cells[i], sequential.Cells[i])
		}
	}

	if run.MandateCount+run.VoluntaryCount != len(run.Grid.Cells) {
		t.Errorf("decision counts %d + %d do not cover %d cells",
			run.MandateCount, run.VoluntaryCount, len(run.Grid.Cells))
	}

	if model.Parameters() != before {
		t.Error("RunGrid changed model parameters")
	}
}

func TestSweepService_RunGridUnknownParameter(t *testing.T) {
	service := NewSweepService(policy.NewModel(testkit.BaselineParameters()), 1)

	_, err := service.RunGrid(context.Background(), GridRequest{
		Param1:  policy.KeyFreedomValue,
		Values1: []float64{1e8},
		Param2:  "bogus_parameter",
		Values2: []float64{0.9},
	})
	if !core.IsUnknownParameterError(err) {
		t.Fatalf("RunGrid error = %v, want ErrUnknownParameter", err)
	}
}
