// Package report renders decision and sweep results as Markdown summary
// tables, with optional HTML output for file reports.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gopolicy/app"
	"gopolicy/domain/policy"
	"gopolicy/internal/format"
)

// BaselineTable renders the baseline decision: the parameter table followed by
// the decision results.
func BaselineTable(result *app.DecisionResult) string {
	var b strings.Builder

	b.WriteString("## Baseline Decision\n\n")
	b.WriteString("### Parameters\n\n")
	b.WriteString("| Parameter | Value |\n")
	b.WriteString("| --- | --- |\n")
	for _, key := range policy.ParameterKeys() {
		value, _ := result.Parameters.Value(key)
		fmt.Fprintf(&b, "| %s | %s |\n", key, format.Parameter(key, value))
	}

	b.WriteString("\n### Decision Results\n\n")
	fmt.Fprintf(&b, "Policy recommendation: **%s**\n\n", result.Outcome.Decision)
	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | --- |\n")
	fmt.Fprintf(&b, "| Utility with mandate | %s |\n", format.Currency(result.Outcome.UtilityMandate))
	fmt.Fprintf(&b, "| Utility without mandate | %s |\n", format.Currency(result.Outcome.UtilityVoluntary))
	fmt.Fprintf(&b, "| Utility difference | %s |\n", format.Currency(result.Outcome.UtilityDifference()))

	return b.String()
}

// SweepTable renders a one-parameter sweep as a table of formatted parameter
// values, decisions, and utility differences.
func SweepTable(run *app.SweepRunResult, title string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", title)
	b.WriteString("| Parameter Value | Decision | Utility Difference |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, point := range run.Result.Points {
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			format.Parameter(run.Result.Parameter, point.Value),
			point.Decision,
			format.Currency(point.UtilityDifference))
	}

	if len(run.Boundaries) > 0 {
		b.WriteString("\nDecision boundaries: ")
		marks := make([]string, len(run.Boundaries))
		for i, boundary := range run.Boundaries {
			marks[i] = format.Parameter(run.Result.Parameter, boundary)
		}
		b.WriteString(strings.Join(marks, ", "))
		b.WriteString("\n")
	}

	return b.String()
}

// GridTable renders a two-parameter sweep as a pivot table: rows over Values1,
// columns over Values2, decisions in the cells.
func GridTable(run *app.GridRunResult, title string) string {
	grid := run.Grid
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", title)

	fmt.Fprintf(&b, "| %s \\ %s |", grid.Param1, grid.Param2)
	for _, v2 := range grid.Values2 {
		fmt.Fprintf(&b, " %s |", format.Parameter(grid.Param2, v2))
	}
	b.WriteString("\n|")
	for i := 0; i <= len(grid.Values2); i++ {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	pivot := grid.Pivot()
	for i, v1 := range grid.Values1 {
		fmt.Fprintf(&b, "| %s |", format.Parameter(grid.Param1, v1))
		for _, decision := range pivot[i] {
			fmt.Fprintf(&b, " %s |", decision)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Document joins report sections under a top-level title.
func Document(title string, sections ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	for _, section := range sections {
		b.WriteString(section)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderHTML converts a Markdown report into a complete HTML page.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(md), p, renderer)
}
