package viz

import (
	"context"
	"math"
	"path/filepath"

	"github.com/wdm0006/dataviz/pkg/analyze"
	"github.com/wdm0006/dataviz/pkg/table"
)

const (
	// CorrelationName keys the missingness-correlation entry in the Result.
	CorrelationName = "missingness_correlation"
	// CorrelationHeatmapKey keys the heatmap artifact in the record
	// returned by MissingnessCorrelation.Generate.
	CorrelationHeatmapKey = "missingness_correlation_heatmap"

	correlationHeatmapFile = "missingness_correlation_heatmap.png"
)

// MissingnessCorrelation renders a column-by-column heatmap of how
// correlated the columns' missingness patterns are. Cell intensity is the
// absolute Pearson correlation; the sign is not distinguished.
type MissingnessCorrelation struct {
	Base
}

func NewMissingnessCorrelation(f *table.Frame, outDir string, size FigSize) *MissingnessCorrelation {
	return &MissingnessCorrelation{Base: NewBase(f, outDir, size)}
}

func (v *MissingnessCorrelation) Name() string { return CorrelationName }

func (v *MissingnessCorrelation) Generate(_ context.Context) (Artifacts, error) {
	matrix := CorrelationMatrix(v.Frame)
	out := filepath.Join(v.OutDir, correlationHeatmapFile)
	if err := renderHeatmap(floatGrid{m: matrix}, blueScale(16), "Missingness Correlation Heatmap", v.Frame.Names(), v.Size, out); err != nil {
		return nil, err
	}
	return Artifacts{CorrelationHeatmapKey: out}, nil
}

// CorrelationMatrix computes the symmetric Pearson correlation between the
// missingness vectors of every column pair. The diagonal is 1; a column
// whose missingness has zero variance correlates 0 with every other column.
func CorrelationMatrix(f *table.Frame) [][]float64 {
	n := f.Cols()
	vectors := make([][]bool, n)
	for c := 0; c < n; c++ {
		vectors[c] = analyze.MissingVector(f, c)
	}
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := pearson(vectors[i], vectors[j])
			m[i][j] = r
			m[j][i] = r
		}
	}
	return m
}

func pearson(x, y []bool) float64 {
	n := float64(len(x))
	if n == 0 {
		return 0
	}
	var sumX, sumY float64
	for i := range x {
		sumX += b2f(x[i])
		sumY += b2f(y[i])
	}
	meanX, meanY := sumX/n, sumY/n

	var num, varX, varY float64
	for i := range x {
		dx := b2f(x[i]) - meanX
		dy := b2f(y[i]) - meanY
		num += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	denom := math.Sqrt(varX) * math.Sqrt(varY)
	if denom == 0 {
		return 0
	}
	return num / denom
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
