package app

import (
	"context"
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"gopolicy/domain/core"
	"gopolicy/domain/policy"
	"gopolicy/domain/sweep"
)

// SweepService runs sensitivity sweeps over model parameters and assembles
// audit metadata (IDs, runtimes, summaries) around the raw sweep results.
type SweepService struct {
	model   *policy.Model
	workers int
}

// NewSweepService creates a sweep service. workers bounds concurrent grid row
// evaluation; values below 1 are treated as 1.
func NewSweepService(model *policy.Model, workers int) *SweepService {
	if workers < 1 {
		workers = 1
	}
	return &SweepService{model: model, workers: workers}
}

// SweepRequest defines the inputs for a one-parameter sweep.
type SweepRequest struct {
	Parameter policy.ParameterKey
	Values    []float64
}

// Summary aggregates the utility differences across a sweep.
type Summary struct {
	MinDifference  float64 `json:"min_difference"`
	MeanDifference float64 `json:"mean_difference"`
	MaxDifference  float64 `json:"max_difference"`
	MandateCount   int     `json:"mandate_count"`
	VoluntaryCount int     `json:"voluntary_count"`
}

// SweepRunResult contains the complete output of a one-parameter sweep run.
type SweepRunResult struct {
	SweepID    core.SweepID   `json:"sweep_id"`
	CreatedAt  core.Timestamp `json:"created_at"`
	Result     *sweep.Result  `json:"result"`
	Boundaries []float64      `json:"boundaries"`
	Summary    *Summary       `json:"summary,omitempty"`
	RuntimeMs  int64          `json:"runtime_ms"`
}

// RunSweep executes a one-parameter sensitivity sweep. The service's model is
// unchanged afterward for any input, including the empty sequence.
func (s *SweepService) RunSweep(ctx context.Context, req SweepRequest) (*SweepRunResult, error) {
	startTime := time.Now()

	result, err := sweep.Sweep(s.model, req.Parameter, req.Values)
	if err != nil {
		return nil, fmt.Errorf("sweep failed: %w", err)
	}

	return &SweepRunResult{
		SweepID:    core.SweepID(core.NewID()),
		CreatedAt:  core.Now(),
		Result:     result,
		Boundaries: sweep.Boundaries(result),
		Summary:    summarize(result),
		RuntimeMs:  time.Since(startTime).Milliseconds(),
	}, nil
}

// GridRequest defines the inputs for a two-parameter sweep.
type GridRequest struct {
	Param1  policy.ParameterKey
	Values1 []float64
	Param2  policy.ParameterKey
	Values2 []float64
}

// GridRunResult contains the complete output of a two-parameter sweep run.
type GridRunResult struct {
	SweepID        core.SweepID   `json:"sweep_id"`
	CreatedAt      core.Timestamp `json:"created_at"`
	Grid           *sweep.Grid    `json:"grid"`
	MandateCount   int            `json:"mandate_count"`
	VoluntaryCount int            `json:"voluntary_count"`
	RuntimeMs      int64          `json:"runtime_ms"`
}

// RunGrid executes a two-parameter sweep, evaluating rows of the cartesian
// product concurrently. Safe because every evaluation works on its own derived
// parameter copy; cell ordering stays outer Values1 / inner Values2 regardless
// of scheduling.
func (s *SweepService) RunGrid(ctx context.Context, req GridRequest) (*GridRunResult, error) {
	startTime := time.Now()

	base := s.model.Parameters()
	if _, err := base.Value(req.Param1); err != nil {
		return nil, err
	}
	if _, err := base.Value(req.Param2); err != nil {
		return nil, err
	}

	rows := make([][]sweep.GridCell, len(req.Values1))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, v1 := range req.Values1 {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rowGrid, err := sweep.TwoWay(s.model, req.Param1, []float64{v1}, req.Param2, req.Values2)
			if err != nil {
				return err
			}
			rows[i] = rowGrid.Cells
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("grid sweep failed: %w", err)
	}

	cells := make([]sweep.GridCell, 0, len(req.Values1)*len(req.Values2))
	for _, row := range rows {
		cells = append(cells, row...)
	}

	grid := &sweep.Grid{
		Param1:  req.Param1,
		Param2:  req.Param2,
		Values1: req.Values1,
		Values2: req.Values2,
		Cells:   cells,
	}

	mandate, voluntary := 0, 0
	for _, cell := range grid.Cells {
		if cell.Decision == policy.DecisionMandate {
			mandate++
		} else {
			voluntary++
		}
	}

	return &GridRunResult{
		SweepID:        core.SweepID(core.NewID()),
		CreatedAt:      core.Now(),
		Grid:           grid,
		MandateCount:   mandate,
		VoluntaryCount: voluntary,
		RuntimeMs:      time.Since(startTime).Milliseconds(),
	}, nil
}

// summarize computes min/mean/max of the utility difference across a sweep.
// Returns nil for an empty sweep.
func summarize(result *sweep.Result) *Summary {
	if len(result.Points) == 0 {
		return nil
	}

	diffs := make([]float64, len(result.Points))
	summary := &Summary{}
	for i, point := range result.Points {
		diffs[i] = point.UtilityDifference
		if point.Decision == policy.DecisionMandate {
			summary.MandateCount++
		} else {
			summary.VoluntaryCount++
		}
	}

	// stats errors only on empty input, which is excluded above.
	summary.MinDifference, _ = stats.Min(diffs)
	summary.MeanDifference, _ = stats.Mean(diffs)
	summary.MaxDifference, _ = stats.Max(diffs)

	return summary
}
