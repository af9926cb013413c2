package sweep

import (
	"gopolicy/domain/policy"
)

// Point is one row of a one-parameter sweep: the swept value, the decision it
// produced, and the utilities behind that decision.
type Point struct {
	Value             float64         `json:"value"`
	Decision          policy.Decision `json:"decision"`
	UtilityMandate    float64         `json:"utility_mandate"`
	UtilityVoluntary  float64         `json:"utility_voluntary"`
	UtilityDifference float64         `json:"utility_difference"`
}

// Result is an ordered one-parameter sweep; Points order matches input order.
type Result struct {
	Parameter policy.ParameterKey `json:"parameter"`
	Points    []Point             `json:"points"`
}

// GridCell is one cell of a two-parameter sweep.
type GridCell struct {
	Value1   float64         `json:"value1"`
	Value2   float64         `json:"value2"`
	Decision policy.Decision `json:"decision"`
}

// Grid is the full cartesian product of a two-parameter sweep. Cells are laid
// out outer loop over Values1, inner loop over Values2, so cell (i, j) sits at
// index i*len(Values2)+j.
type Grid struct {
	Param1  policy.ParameterKey `json:"param1"`
	Param2  policy.ParameterKey `json:"param2"`
	Values1 []float64           `json:"values1"`
	Values2 []float64           `json:"values2"`
	Cells   []GridCell          `json:"cells"`
}

// Cell returns the cell for Values1[i] x Values2[j].
func (g *Grid) Cell(i, j int) GridCell {
	return g.Cells[i*len(g.Values2)+j]
}

// Pivot returns the decision grid as rows over Values1 and columns over
// Values2, the shape table and heatmap consumers want.
func (g *Grid) Pivot() [][]policy.Decision {
	rows := make([][]policy.Decision, len(g.Values1))
	for i := range g.Values1 {
		row := make([]policy.Decision, len(g.Values2))
		for j := range g.Values2 {
			row[j] = g.Cell(i, j).Decision
		}
		rows[i] = row
	}
	return rows
}
