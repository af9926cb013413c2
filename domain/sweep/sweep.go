package sweep

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"gopolicy/domain/policy"
)

// Sweep evaluates the decision at every value of the named parameter, in input
// order. Each evaluation runs against a derived parameter copy, so the model
// passed in is observably unchanged afterward, even when an evaluation fails
// mid-sweep. An unrecognized parameter is a hard failure: sweeping a parameter
// that does not exist is meaningless.
func Sweep(model *policy.Model, param policy.ParameterKey, values []float64) (*Result, error) {
	base := model.Parameters()
	if _, err := base.Value(param); err != nil {
		return nil, err
	}

	points := make([]Point, 0, len(values))
	for _, value := range values {
		derived, err := base.WithValue(param, value)
		if err != nil {
			return nil, err
		}

		outcome, err := policy.NewModel(derived).Decide()
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%v: %w", param, value, err)
		}

		points = append(points, Point{
			Value:             value,
			Decision:          outcome.Decision,
			UtilityMandate:    outcome.UtilityMandate,
			UtilityVoluntary:  outcome.UtilityVoluntary,
			UtilityDifference: outcome.UtilityDifference(),
		})
	}

	return &Result{Parameter: param, Points: points}, nil
}

// TwoWay evaluates the decision over the cartesian product values1 x values2,
// outer loop over values1, inner over values2. Both parameters must be
// recognized. Evaluations use derived parameter copies; nothing is restored
// because nothing is mutated.
func TwoWay(model *policy.Model, param1 policy.ParameterKey, values1 []float64, param2 policy.ParameterKey, values2 []float64) (*Grid, error) {
	base := model.Parameters()
	if _, err := base.Value(param1); err != nil {
		return nil, err
	}
	if _, err := base.Value(param2); err != nil {
		return nil, err
	}

	cells := make([]GridCell, 0, len(values1)*len(values2))
	for _, v1 := range values1 {
		withFirst, err := base.WithValue(param1, v1)
		if err != nil {
			return nil, err
		}
		for _, v2 := range values2 {
			derived, err := withFirst.WithValue(param2, v2)
			if err != nil {
				return nil, err
			}

			outcome, err := policy.NewModel(derived).Decide()
			if err != nil {
				return nil, fmt.Errorf("two-way %s=%v %s=%v: %w", param1, v1, param2, v2, err)
			}

			cells = append(cells, GridCell{Value1: v1, Value2: v2, Decision: outcome.Decision})
		}
	}

	return &Grid{
		Param1:  param1,
		Param2:  param2,
		Values1: values1,
		Values2: values2,
		Cells:   cells,
	}, nil
}

// Boundaries returns the swept values where the decision flips relative to the
// previous point. Chart renderers mark these as decision boundaries.
func Boundaries(result *Result) []float64 {
	var boundaries []float64
	for i := 1; i < len(result.Points); i++ {
		if result.Points[i].Decision != result.Points[i-1].Decision {
			boundaries = append(boundaries, result.Points[i].Value)
		}
	}
	return boundaries
}

// Span returns n evenly spaced values from lo to hi inclusive. n must be at
// least 2 for a range; n == 1 yields just lo.
func Span(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}
