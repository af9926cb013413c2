package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gopolicy/adapters/excel"
	"gopolicy/adapters/plot"
	"gopolicy/app"
	"gopolicy/domain/core"
	"gopolicy/domain/policy"
	"gopolicy/domain/sweep"
	"gopolicy/internal"
	"gopolicy/internal/config"
	apperrors "gopolicy/internal/errors"
	"gopolicy/internal/report"
	"gopolicy/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gopolicy-cli",
		Short: "gopolicy CLI for utility-based policy decisions and sensitivity sweeps",
	}

	rootCmd.AddCommand(
		newDecideCmd(),
		newSweepCmd(),
		newGridCmd(),
		newReportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadModel builds the model from env-configured parameters plus any
// --set key=value overrides. Unknown keys warn, they do not abort.
func loadModel(overrides []string) (*policy.Model, *config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	model := policy.NewModel(cfg.Parameters)

	updates := make(map[policy.ParameterKey]float64, len(overrides))
	for _, override := range overrides {
		key, raw, ok := strings.Cut(override, "=")
		if !ok {
			return nil, nil, apperrors.ValidationError(fmt.Sprintf("invalid --set %q, expected key=value", override))
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil, apperrors.ValidationError(fmt.Sprintf("invalid --set %q: %v", override, err))
		}
		updates[policy.ParameterKey(key)] = value
	}

	for _, warning := range model.SetParameters(updates) {
		internal.DefaultLogger.Warn("%s", warning)
	}

	return model, cfg, nil
}

func newDecideCmd() *cobra.Command {
	var overrides []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Evaluate the baseline decision with a utility breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, _, err := loadModel(overrides)
			if err != nil {
				return err
			}

			result, err := app.NewDecisionService(model).Evaluate(context.Background())
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(result)
			}
			fmt.Println(report.BaselineTable(result))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&overrides, "set", nil, "parameter override key=value (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit raw JSON instead of a table")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var overrides []string
	var asJSON bool
	var from, to float64
	var steps int
	var rawValues string
	var xlsxPath, pngPath string

	cmd := &cobra.Command{
		Use:   "sweep [parameter]",
		Short: "Run a one-parameter sensitivity sweep",
		Long: `Run a one-parameter sensitivity sweep over an even span or explicit values.

Example: gopolicy-cli sweep vaccine_efficacy --from 0.5 --to 0.99 --steps 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			param := policy.ParameterKey(args[0])

			values, err := sweepValues(rawValues, from, to, steps)
			if err != nil {
				return err
			}

			model, cfg, err := loadModel(overrides)
			if err != nil {
				return err
			}

			service := app.NewSweepService(model, cfg.Sweep.GridWorkers)
			run, err := service.RunSweep(context.Background(), app.SweepRequest{
				Parameter: param,
				Values:    values,
			})
			if err != nil {
				return err
			}

			if xlsxPath != "" {
				writer := excel.NewWriter()
				if err := writer.AddSweepSheet("Sweep", run.Result); err != nil {
					return err
				}
				if err := writer.Save(outPath(cfg, xlsxPath)); err != nil {
					return err
				}
			}

			if pngPath != "" {
				renderer := plot.NewRenderer()
				opts := ports.ChartOptions{
					Title:  fmt.Sprintf("Impact of %s on Decision", param),
					XLabel: string(param),
				}
				if err := renderer.RenderSweep(run.Result, run.Boundaries, opts, outPath(cfg, pngPath)); err != nil {
					return err
				}
			}

			if asJSON {
				return printJSON(run)
			}
			fmt.Println(report.SweepTable(run, fmt.Sprintf("Sensitivity to %s", param)))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&overrides, "set", nil, "parameter override key=value (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit raw JSON instead of a table")
	cmd.Flags().Float64Var(&from, "from", 0, "span start")
	cmd.Flags().Float64Var(&to, "to", 0, "span end")
	cmd.Flags().IntVar(&steps, "steps", 10, "number of span steps")
	cmd.Flags().StringVar(&rawValues, "values", "", "explicit comma-separated values (overrides span)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also export the table to this .xlsx file")
	cmd.Flags().StringVar(&pngPath, "png", "", "also render the utility chart to this .png file")
	return cmd
}

func newGridCmd() *cobra.Command {
	var overrides []string
	var asJSON bool
	var rawValues1, rawValues2 string
	var xlsxPath, pngPath string

	cmd := &cobra.Command{
		Use:   "grid [param1] [param2]",
		Short: "Run a two-parameter sensitivity sweep over a cartesian grid",
		Long: `Run a two-parameter sweep over the cartesian product of two value lists.

Example: gopolicy-cli grid freedom_value vaccine_efficacy --values1 1e8,2e8,3e8,4e8 --values2 0.7,0.8,0.9,0.95`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values1, err := parseValues(rawValues1)
			if err != nil {
				return fmt.Errorf("--values1: %w", err)
			}
			values2, err := parseValues(rawValues2)
			if err != nil {
				return fmt.Errorf("--values2: %w", err)
			}

			model, cfg, err := loadModel(overrides)
			if err != nil {
				return err
			}

			service := app.NewSweepService(model, cfg.Sweep.GridWorkers)
			run, err := service.RunGrid(context.Background(), app.GridRequest{
				Param1:  policy.ParameterKey(args[0]),
				Values1: values1,
				Param2:  policy.ParameterKey(args[1]),
				Values2: values2,
			})
			if err != nil {
				return err
			}

			if xlsxPath != "" {
				writer := excel.NewWriter()
				if err := writer.AddGridSheet("Grid", run.Grid); err != nil {
					return err
				}
				if err := writer.Save(outPath(cfg, xlsxPath)); err != nil {
					return err
				}
			}

			if pngPath != "" {
				renderer := plot.NewRenderer()
				opts := ports.ChartOptions{
					Title: fmt.Sprintf("Decision Map: %s vs. %s", run.Grid.Param1, run.Grid.Param2),
				}
				if err := renderer.RenderGrid(run.Grid, opts, outPath(cfg, pngPath)); err != nil {
					return err
				}
			}

			if asJSON {
				return printJSON(run)
			}
			title := fmt.Sprintf("Two-way Analysis: %s vs. %s", run.Grid.Param1, run.Grid.Param2)
			fmt.Println(report.GridTable(run, title))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&overrides, "set", nil, "parameter override key=value (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit raw JSON instead of a table")
	cmd.Flags().StringVar(&rawValues1, "values1", "", "comma-separated values for param1")
	cmd.Flags().StringVar(&rawValues2, "values2", "", "comma-separated values for param2")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also export the pivot to this .xlsx file")
	cmd.Flags().StringVar(&pngPath, "png", "", "also render the heatmap to this .png file")
	return cmd
}

func newReportCmd() *cobra.Command {
	var overrides []string
	var outFile string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the full HTML sensitivity report",
		Long: `Evaluate the baseline decision plus the canonical sensitivity sweeps
(vaccine efficacy, freedom value, mandate adoption, and the two standard
two-way grids) and write them as a single HTML report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, cfg, err := loadModel(overrides)
			if err != nil {
				return err
			}
			return writeReport(model, cfg, outFile)
		},
	}

	cmd.Flags().StringArrayVar(&overrides, "set", nil, "parameter override key=value (repeatable)")
	cmd.Flags().StringVar(&outFile, "out", "policy_report.html", "output HTML file")
	return cmd
}

func writeReport(model *policy.Model, cfg *config.Config, outFile string) error {
	ctx := context.Background()
	decisions := app.NewDecisionService(model)
	sweeps := app.NewSweepService(model, cfg.Sweep.GridWorkers)

	baseline, err := decisions.Evaluate(ctx)
	if err != nil {
		return err
	}
	sections := []string{report.BaselineTable(baseline)}

	oneWay := []struct {
		param  policy.ParameterKey
		values []float64
		title  string
	}{
		{policy.KeyVaccineEfficacy, sweep.Span(0.5, 0.95, 6), "Sensitivity to Vaccine Efficacy"},
		{policy.KeyFreedomValue, sweep.Span(1e8, 5e8, 5), "Sensitivity to Freedom Value"},
		{policy.KeyMandateAdoption, sweep.Span(0.65, 0.95, 5), "Sensitivity to Mandate Adoption Rate"},
	}
	for _, spec := range oneWay {
		run, err := sweeps.RunSweep(ctx, app.SweepRequest{Parameter: spec.param, Values: spec.values})
		if err != nil {
			return err
		}
		sections = append(sections, report.SweepTable(run, spec.title))
	}

	twoWay := []struct {
		param1  policy.ParameterKey
		values1 []float64
		param2  policy.ParameterKey
		values2 []float64
	}{
		{policy.KeyFreedomValue, sweep.Span(1e8, 4e8, 4), policy.KeyVaccineEfficacy, []float64{0.7, 0.8, 0.9, 0.95}},
		{policy.KeyEnforcementCost, sweep.Span(5e7, 2e8, 4), policy.KeyMandateAdoption, []float64{0.7, 0.8, 0.9, 0.95}},
	}
	for _, spec := range twoWay {
		run, err := sweeps.RunGrid(ctx, app.GridRequest{
			Param1: spec.param1, Values1: spec.values1,
			Param2: spec.param2, Values2: spec.values2,
		})
		if err != nil {
			return err
		}
		title := fmt.Sprintf("Two-way Analysis: %s vs. %s", spec.param1, spec.param2)
		sections = append(sections, report.GridTable(run, title))
	}

	doc := report.Document("Policy Decision Report", sections...)
	path := outPath(cfg, outFile)
	if err := os.WriteFile(path, report.RenderHTML(doc), 0o644); err != nil {
		return apperrors.Wrapf(err, "failed to write report %s", path)
	}

	internal.DefaultLogger.Info("report written to %s", path)
	return nil
}

// sweepValues resolves either explicit --values or an even span.
func sweepValues(rawValues string, from, to float64, steps int) ([]float64, error) {
	if rawValues != "" {
		return parseValues(rawValues)
	}
	if from == to {
		return nil, fmt.Errorf("%w: provide --values or a --from/--to span", core.ErrEmptySweep)
	}
	return sweep.Span(from, to, steps), nil
}

func parseValues(raw string) ([]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, core.ErrEmptySweep
	}
	parts := strings.Split(raw, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", part, err)
		}
		values = append(values, value)
	}
	return values, nil
}

// outPath resolves relative output paths against the configured output dir.
func outPath(cfg *config.Config, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cfg.Output.Dir, path)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
