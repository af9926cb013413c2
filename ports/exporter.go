package ports

import (
	"gopolicy/domain/policy"
	"gopolicy/domain/sweep"
)

// TableExporterPort writes decision and sweep tables to a workbook on disk.
// The exporter formats cells itself; callers hand over raw results only.
type TableExporterPort interface {
	AddParameterSheet(name string, params policy.Parameters) error
	AddSweepSheet(name string, result *sweep.Result) error
	AddGridSheet(name string, grid *sweep.Grid) error
	Save(path string) error
}
