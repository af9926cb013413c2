package ports

import (
	"gopolicy/domain/sweep"
)

// ChartOptions carries presentation labels for rendered charts.
type ChartOptions struct {
	Title  string
	XLabel string
	YLabel string
}

// ChartRendererPort draws sweep results as image files.
// Renderers consume sweep outputs and perform no decision logic.
type ChartRendererPort interface {
	// RenderSweep draws utility-vs-parameter lines for both scenarios, with a
	// vertical marker at every decision boundary.
	RenderSweep(result *sweep.Result, boundaries []float64, opts ChartOptions, path string) error

	// RenderGrid draws the two-way decision map as a heatmap.
	RenderGrid(grid *sweep.Grid, opts ChartOptions, path string) error
}
