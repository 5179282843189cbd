// Package viz generates diagnostic visualizations for a loaded data table
// and reports the image files it wrote.
package viz

import (
	"context"

	"github.com/wdm0006/dataviz/pkg/table"
)

// Artifacts maps an artifact key to the path of the file a visualization
// wrote for it.
type Artifacts map[string]string

// Result is the top-level record assembled by the orchestrator: one entry
// per visualization, keyed by Visualization.Name.
type Result map[string]Artifacts

// Visualization is a chart family rendered over a frame. Each Generate call
// writes the visualization's artifact files under its output directory and
// returns their paths.
type Visualization interface {
	Name() string
	Generate(ctx context.Context) (Artifacts, error)
}

// FigSize is a figure size in plot inches.
type FigSize struct {
	W, H float64
}

var DefaultFigSize = FigSize{W: 10, H: 6}

// Base carries the state shared by every visualization type: the source
// frame, the output directory, and the figure size. The frame is shared,
// never mutated.
type Base struct {
	Frame  *table.Frame
	OutDir string
	Size   FigSize
}

// NewBase applies the default figure size when none is given.
func NewBase(f *table.Frame, outDir string, size FigSize) Base {
	if size.W <= 0 || size.H <= 0 {
		size = DefaultFigSize
	}
	return Base{Frame: f, OutDir: outDir, Size: size}
}

// Runner composes a sequence of visualizations and assembles their results.
type Runner struct {
	vizs []Visualization
}

func NewRunner() *Runner { return &Runner{} }

func (r *Runner) Add(v Visualization) *Runner {
	r.vizs = append(r.vizs, v)
	return r
}

// Run invokes each visualization in order. The first failure aborts the run
// and propagates unchanged.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	out := make(Result, len(r.vizs))
	for _, v := range r.vizs {
		a, err := v.Generate(ctx)
		if err != nil {
			return nil, err
		}
		out[v.Name()] = a
	}
	return out, nil
}
