package viz

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// boolGrid adapts a missingness matrix to plotter.GridXYZ: 1 where the
// cell is missing, 0 where present.
type boolGrid struct {
	m [][]bool
}

func (g boolGrid) Dims() (c, r int) {
	if len(g.m) == 0 {
		return 0, 0
	}
	return len(g.m[0]), len(g.m)
}
func (g boolGrid) Z(c, r int) float64 {
	if g.m[r][c] {
		return 1
	}
	return 0
}
func (g boolGrid) X(c int) float64 { return float64(c) }
func (g boolGrid) Y(r int) float64 { return float64(r) }

// floatGrid adapts a square correlation matrix; intensity is the absolute
// correlation, so a pair missing together and a pair missing in opposition
// render with the same strength. The display shows how strongly columns'
// missingness is related, not the direction.
type floatGrid struct {
	m [][]float64
}

func (g floatGrid) Dims() (c, r int) {
	if len(g.m) == 0 {
		return 0, 0
	}
	return len(g.m[0]), len(g.m)
}
func (g floatGrid) Z(c, r int) float64 {
	v := g.m[r][c]
	if v < 0 {
		v = -v
	}
	return v
}
func (g floatGrid) X(c int) float64 { return float64(c) }
func (g floatGrid) Y(r int) float64 { return float64(r) }

// steps is a fixed list of colors satisfying palette.Palette.
type steps []color.Color

func (s steps) Colors() []color.Color { return s }

// presentMissing is the two-color scale for binary missingness: present
// cells white, missing cells red.
func presentMissing() palette.Palette {
	return steps{
		color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		color.RGBA{R: 0xd6, G: 0x2b, B: 0x2b, A: 0xff},
	}
}

// blueScale fades from white to blue over n steps.
func blueScale(n int) palette.Palette {
	s := make(steps, n)
	for i := range s {
		t := float64(i) / float64(n-1)
		v := uint8(255 * (1 - t))
		s[i] = color.RGBA{R: v, G: v, B: 0xff, A: 0xff}
	}
	return s
}

// renderHeatmap draws grid as a heatmap (no color bar) and writes it as a
// PNG to path, overwriting any existing file. Z values are interpreted on
// the fixed [0,1] scale so uniform grids render deterministically.
func renderHeatmap(grid plotter.GridXYZ, pal palette.Palette, title string, cols []string, size FigSize, path string) error {
	if c, r := grid.Dims(); c == 0 || r == 0 {
		return fmt.Errorf("cannot render heatmap: empty table")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Columns"
	p.Y.Label.Text = "Rows"

	hm := plotter.NewHeatMap(grid, pal)
	hm.Min, hm.Max = 0, 1
	p.Add(hm)
	if len(cols) > 0 {
		p.NominalX(cols...)
	}

	wt, err := p.WriterTo(vg.Length(size.W)*vg.Inch, vg.Length(size.H)*vg.Inch, "png")
	if err != nil {
		return err
	}
	// write through a temp file and rename so a failed render never leaves
	// a partial image at path
	out, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(out); err != nil {
		_ = out.Close()
		_ = os.Remove(out.Name())
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(out.Name())
		return err
	}
	if err := os.Rename(out.Name(), path); err != nil {
		_ = os.Remove(out.Name())
		return err
	}
	return nil
}
