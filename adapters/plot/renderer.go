// Package plot renders sweep results as PNG charts: utility-vs-parameter lines
// with decision boundaries, and two-way decision heatmaps.
package plot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"gopolicy/domain/policy"
	"gopolicy/domain/sweep"
	apperrors "gopolicy/internal/errors"
	"gopolicy/ports"
)

// Renderer draws charts with gonum/plot. Implements ports.ChartRendererPort.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewRenderer creates a renderer with default figure dimensions.
func NewRenderer() *Renderer {
	return &Renderer{
		Width:  10 * vg.Inch,
		Height: 6 * vg.Inch,
	}
}

var _ ports.ChartRendererPort = (*Renderer)(nil)

// RenderSweep draws the mandate and voluntary utility curves over the swept
// values, a dashed zero line, and a vertical marker at each decision boundary.
func (r *Renderer) RenderSweep(result *sweep.Result, boundaries []float64, opts ports.ChartOptions, path string) error {
	if len(result.Points) == 0 {
		return apperrors.InvalidInput(fmt.Sprintf("cannot render empty sweep for %s", result.Parameter))
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	if p.Y.Label.Text == "" {
		p.Y.Label.Text = "Total Utility"
	}
	p.Add(plotter.NewGrid())

	mandateXYs := make(plotter.XYs, len(result.Points))
	voluntaryXYs := make(plotter.XYs, len(result.Points))
	yMin, yMax := result.Points[0].UtilityMandate, result.Points[0].UtilityMandate
	for i, point := range result.Points {
		mandateXYs[i] = plotter.XY{X: point.Value, Y: point.UtilityMandate}
		voluntaryXYs[i] = plotter.XY{X: point.Value, Y: point.UtilityVoluntary}
		for _, y := range []float64{point.UtilityMandate, point.UtilityVoluntary} {
			if y < yMin {
				yMin = y
			}
			if y > yMax {
				yMax = y
			}
		}
	}

	mandateLine, err := plotter.NewLine(mandateXYs)
	if err != nil {
		return apperrors.RenderError("failed to build mandate line", err)
	}
	mandateLine.Color = color.RGBA{B: 255, A: 255}

	voluntaryLine, err := plotter.NewLine(voluntaryXYs)
	if err != nil {
		return apperrors.RenderError("failed to build voluntary line", err)
	}
	voluntaryLine.Color = color.RGBA{R: 255, A: 255}

	p.Add(mandateLine, voluntaryLine)
	p.Legend.Add(string(policy.DecisionMandate), mandateLine)
	p.Legend.Add(string(policy.DecisionVoluntary), voluntaryLine)
	p.Legend.Top = true

	if zero, err := horizontalLine(0, result.Points[0].Value, result.Points[len(result.Points)-1].Value); err == nil {
		p.Add(zero)
	}

	for _, boundary := range boundaries {
		marker, err := verticalLine(boundary, yMin, yMax)
		if err != nil {
			return apperrors.RenderError(fmt.Sprintf("failed to mark decision boundary at %v", boundary), err)
		}
		p.Add(marker)
	}

	if err := p.Save(r.Width, r.Height, path); err != nil {
		return apperrors.RenderError(fmt.Sprintf("failed to save sweep chart %s", path), err)
	}
	return nil
}

// RenderGrid draws the two-way decision map as a heatmap with Values2 along X
// and Values1 along Y, Mandate cells hot and Voluntary cells cold.
func (r *Renderer) RenderGrid(grid *sweep.Grid, opts ports.ChartOptions, path string) error {
	if len(grid.Values1) == 0 || len(grid.Values2) == 0 {
		return apperrors.InvalidInput(fmt.Sprintf("cannot render empty grid %s x %s", grid.Param1, grid.Param2))
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	if p.X.Label.Text == "" {
		p.X.Label.Text = string(grid.Param2)
	}
	p.Y.Label.Text = opts.YLabel
	if p.Y.Label.Text == "" {
		p.Y.Label.Text = string(grid.Param1)
	}

	heatMap := plotter.NewHeatMap(decisionGrid{grid}, palette.Heat(2, 1))
	p.Add(heatMap)

	if err := p.Save(r.Width, r.Height, path); err != nil {
		return apperrors.RenderError(fmt.Sprintf("failed to save grid chart %s", path), err)
	}
	return nil
}

// decisionGrid adapts a sweep.Grid to plotter.GridXYZ: Mandate = 1,
// Voluntary = 0.
type decisionGrid struct {
	grid *sweep.Grid
}

func (d decisionGrid) Dims() (c, r int) {
	return len(d.grid.Values2), len(d.grid.Values1)
}

func (d decisionGrid) Z(c, r int) float64 {
	if d.grid.Cell(r, c).Decision == policy.DecisionMandate {
		return 1
	}
	return 0
}

func (d decisionGrid) X(c int) float64 { return d.grid.Values2[c] }

func (d decisionGrid) Y(r int) float64 { return d.grid.Values1[r] }

func verticalLine(x, yMin, yMax float64) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{{X: x, Y: yMin}, {X: x, Y: yMax}})
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{G: 180, A: 255}
	line.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	return line, nil
}

func horizontalLine(y, xMin, xMax float64) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{{X: xMin, Y: y}, {X: xMax, Y: y}})
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	line.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	return line, nil
}
