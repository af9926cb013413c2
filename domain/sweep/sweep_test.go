package sweep_test

import (
	"math"
	"testing"

	"gopolicy/domain/core"
	"gopolicy/domain/policy"
	"gopolicy/domain/sweep"
	"gopolicy/internal/testkit"
)

func TestSweep_OrderMatchesInput(t *testing.T) {
	model := policy.NewModel(testkit.BaselineParameters())
	values := []float64{0.9, 0.5, 0.7} // deliberately unsorted

	result, err := sweep.Sweep(model, policy.KeyVaccineEfficacy, values)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	if len(result.Points) != len(values) {
		t.Fatalf("got %d points, want %d", len(result.Points), len(values))
	}
	for i, point := range result.Points {
		if point.Value != values[i] {
			t.Errorf("point %d value = %v, want %v", i, point.Value, values[i])
		}
		if diff := point.UtilityMandate - point.UtilityVoluntary; math.Abs(diff-point.UtilityDifference) > 1e-9 {
			t.Errorf("point %d difference = %v, want %v", i, point.UtilityDifference, diff)
		}
	}
}

func TestSweep_LeavesModelUnchanged(t *testing.T) {
	inputs := [][]float64{
		{0.5, 0.6, 0.7},
		{},
		nil,
	}

	for _, values := range inputs {
		model := policy.NewModel(testkit.BaselineParameters())
		before := model.Parameters()

		if _, err := sweep.Sweep(model, policy.KeyVaccineEfficacy, values); err != nil {
			t.Fatalf("Sweep(%v) failed: %v", values, err)
		}

		if model.Parameters() != before {
			t.Errorf("Sweep(%v) changed model parameters", values)
		}
	}
}

func TestSweep_UnchangedEvenOnFailure(t *testing.T) {
	model := policy.NewModel(testkit.BaselineParameters())
	before := model.Parameters()

	// The second value drives lives saved negative, failing the evaluation
	// mid-sweep.
	_, err := sweep.Sweep(model, policy.KeyVaccineEfficacy, []float64{0.9, -0.5, 0.8})
	if !core.IsUndefinedUtilityError(err) {
		t.Fatalf("Sweep error = %v, want ErrUndefinedUtility", err)
	}

	if model.Parameters() != before {
		t.Error("failed sweep changed model parameters")
	}
}

func TestSweep_UnknownParameter(t *testing.T) {
	model := policy.NewModel(testkit.BaselineParameters())

	_, err := sweep.Sweep(model, "bogus_parameter", []float64{1, 2})
	if !core.IsUnknownParameterError(err) {
		t.Fatalf("Sweep error = %v, want ErrUnknownParameter", err)
	}
}

func TestTwoWay_CartesianProduct(t *testing.T) {
	model := policy.NewModel(testkit.BaselineParameters())
	before := model.Parameters()

	values1 := []float64{1e8, 2e8, 3e8}
	values2 := []float64{0.7, 0.9}

	grid, err := sweep.TwoWay(model, policy.KeyFreedomValue, values1, policy.KeyVaccineEfficacy, values2)
	if err != nil {
		t.Fatalf("TwoWay failed: %v", err)
	}

	if len(grid.Cells) != len(values1)*len(values2) {
		t.Fatalf("got %d cells, want %d", len(grid.Cells), len(values1)*len(values2))
	}

	// Outer loop over values1, inner over values2.
	idx := 0
	for _, v1 := range values1 {
		for _, v2 := range values2 {
			cell := grid.Cells[idx]
			if cell.Value1 != v1 || cell.Value2 != v2 {
				t.Errorf("cell %d = (%v, %v), want (%v, %v)", idx, cell.Value1, cell.Value2, v1, v2)
			}
			idx++
		}
	}

	if model.Parameters() != before {
		t.Error("TwoWay changed model parameters")
	}
}

func TestTwoWay_UnknownParameter(t *testing.T) {
	model := policy.NewModel(testkit.BaselineParameters())

	if _, err := sweep.TwoWay(model, "bogus", []float64{1}, policy.KeyVaccineEfficacy, []float64{0.9}); !core.IsUnknownParameterError(err) {
		t.Errorf("TwoWay error = %v, want ErrUnknownParameter for param1", err)
	}
	if _, err := sweep.TwoWay(model, policy.KeyFreedomValue, []float64{1}, "bogus", []float64{0.9}); !core.IsUnknownParameterError(err) {
		t.Errorf("TwoWay error = %v, want ErrUnknownParameter for param2", err)
	}
}

func TestGrid_PivotShape(t *testing.T) {
	model := policy.NewModel(testkit.BaselineParameters())

	grid, err := sweep.TwoWay(model,
		policy.KeyFreedomValue, []float64{1e8, 4e8},
		policy.KeyVaccineEfficacy, []float64{0.7, 0.8, 0.9})
	if err != nil {
		t.Fatalf("TwoWay failed: %v", err)
	}

	pivot := grid.Pivot()
	if len(pivot) != 2 {
		t.Fatalf("pivot has %d rows, want 2", len(pivot))
	}
	for i, row := range pivot {
		if len(row) != 3 {
			t.Fatalf("pivot row %d has %d columns, want 3", i, len(row))
		}
		for j, decision := range row {
			if decision != grid.Cell(i, j).Decision {
				t.Errorf("pivot[%d][%d] = %s, want %s", i, j, decision, grid.Cell(i, j).Decision)
			}
		}
	}
}

func TestBoundaries_MarksDecisionFlip(t *testing.T) {
	model := policy.NewModel(testkit.BaselineParameters())

	// With defaults the decision flips from Mandate to Voluntary once the
	// freedom value crosses ~1.12e9.
	result, err := sweep.Sweep(model, policy.KeyFreedomValue, []float64{1e9, 1.2e9})
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	if result.Points[0].Decision != policy.DecisionMandate {
		t.Fatalf("first point decision = %s, want Mandate", result.Points[0].Decision)
	}
	if result.Points[1].Decision != policy.DecisionVoluntary {
		t.Fatalf("second point decision = %s, want Voluntary", result.Points[1].Decision)
	}

	boundaries := sweep.Boundaries(result)
	if len(boundaries) != 1 || boundaries[0] != 1.2e9 {
		t.Errorf("boundaries = %v, want [1.2e9]", boundaries)
	}
}

func TestBoundaries_NoFlip(t *testing.T) {
	model := policy.NewModel(testkit.BaselineParameters())

	result, err := sweep.Sweep(model, policy.KeyVaccineEfficacy, []float64{0.8, 0.85, 0.9})
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	if boundaries := sweep.Boundaries(result); len(boundaries) != 0 {
		t.Errorf("boundaries = %v, want none", boundaries)
	}
}

func TestSpan(t *testing.T) {
	values := sweep.Span(0.5, 0.99, 10)
	if len(values) != 10 {
		t.Fatalf("got %d values, want 10", len(values))
	}
	if values[0] != 0.5 {
		t.Errorf("first value = %v, want 0.5", values[0])
	}
	if math.Abs(values[9]-0.99) > 1e-12 {
		t.Errorf("last value = %v, want 0.99", values[9])
	}

	if single := sweep.Span(3, 7, 1); len(single) != 1 || single[0] != 3 {
		t.Errorf("Span(3,7,1) = %v, want [3]", single)
	}
	if empty := sweep.Span(0, 1, 0); empty != nil {
		t.Errorf("Span(0,1,0) = %v, want nil", empty)
	}
}
