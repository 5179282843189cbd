package viz

import (
	"context"
	"path/filepath"

	"github.com/wdm0006/dataviz/pkg/table"
)

const (
	// MissingValuesName keys the missing-values entry in the Result.
	MissingValuesName = "missing_values"
	// MissingHeatmapKey keys the heatmap artifact in the record returned
	// by MissingValues.Generate.
	MissingHeatmapKey = "missing_values_heatmap"

	missingHeatmapFile = "missing_values_heatmap.png"
)

// MissingMatrix derives the boolean missingness matrix from a frame:
// cell (r,c) is true iff the source cell is null.
func MissingMatrix(f *table.Frame) [][]bool {
	m := make([][]bool, f.Rows())
	for r := range m {
		row := make([]bool, f.Cols())
		for c := range row {
			row[c] = f.IsNull(r, c)
		}
		m[r] = row
	}
	return m
}

// MissingValues renders the missing-values heatmap: one cell per source
// cell, colored by whether the value is missing.
type MissingValues struct {
	Base
}

func NewMissingValues(f *table.Frame, outDir string, size FigSize) *MissingValues {
	return &MissingValues{Base: NewBase(f, outDir, size)}
}

func (v *MissingValues) Name() string { return MissingValuesName }

// Generate computes the missingness matrix over the full frame, renders it
// at the configured size, and writes <OutDir>/missing_values_heatmap.png.
// The matrix is recomputed on every call; the returned path is exactly the
// path written.
func (v *MissingValues) Generate(_ context.Context) (Artifacts, error) {
	matrix := MissingMatrix(v.Frame)
	out := filepath.Join(v.OutDir, missingHeatmapFile)
	if err := renderHeatmap(boolGrid{m: matrix}, presentMissing(), "Missing Values Heatmap", v.Frame.Names(), v.Size, out); err != nil {
		return nil, err
	}
	return Artifacts{MissingHeatmapKey: out}, nil
}
