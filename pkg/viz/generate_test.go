package viz_test

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/wdm0006/dataviz/pkg/io/parquetio"
	"github.com/wdm0006/dataviz/pkg/table"
	"github.com/wdm0006/dataviz/pkg/viz"
)

func writeDataset(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestGenerateEndToEnd(t *testing.T) {
	dataset := writeDataset(t, "data.csv", "a,b\n1,\n,2\n")
	outDir := t.TempDir()

	res, err := viz.Generate(context.Background(), dataset, viz.FileTypeCSV, outDir)
	if err != nil {
		t.Fatal(err)
	}

	mv, ok := res[viz.MissingValuesName]
	if !ok {
		t.Fatalf("result missing %q entry: %v", viz.MissingValuesName, res)
	}
	want := filepath.Join(outDir, "missing_values_heatmap.png")
	if got := mv[viz.MissingHeatmapKey]; got != want {
		t.Fatalf("returned path %q, want %q", got, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("heatmap file not written: %v", err)
	}

	corr, ok := res[viz.CorrelationName]
	if !ok {
		t.Fatalf("result missing %q entry: %v", viz.CorrelationName, res)
	}
	if _, err := os.Stat(corr[viz.CorrelationHeatmapKey]); err != nil {
		t.Fatalf("correlation heatmap not written: %v", err)
	}
}

func TestGenerateOverwritesInPlace(t *testing.T) {
	dataset := writeDataset(t, "data.csv", "a,b\n1,\n,2\n")
	outDir := t.TempDir()
	ctx := context.Background()

	first, err := viz.Generate(ctx, dataset, viz.FileTypeCSV, outDir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := viz.Generate(ctx, dataset, viz.FileTypeCSV, outDir)
	if err != nil {
		t.Fatal(err)
	}
	p1 := first[viz.MissingValuesName][viz.MissingHeatmapKey]
	p2 := second[viz.MissingValuesName][viz.MissingHeatmapKey]
	if p1 != p2 {
		t.Fatalf("second call returned different path: %q vs %q", p1, p2)
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected exactly 2 artifacts, found %d", len(entries))
	}
}

func TestGenerateLeavesNoPartialFile(t *testing.T) {
	dataset := writeDataset(t, "data.csv", "a,b\n1,\n,2\n")
	outDir := t.TempDir()
	// occupy the artifact path with a directory so the final rename fails
	// after the image bytes have been rendered
	target := filepath.Join(outDir, "missing_values_heatmap.png")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := viz.Generate(context.Background(), dataset, viz.FileTypeCSV, outDir); err == nil {
		t.Fatal("expected save error when artifact path is a directory")
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "missing_values_heatmap.png" {
			t.Fatalf("failed save left %q behind", e.Name())
		}
	}
	fi, err := os.Stat(target)
	if err != nil || !fi.IsDir() {
		t.Fatalf("target should still be the pre-existing directory: %v", err)
	}
}

func TestGenerateEmptyTable(t *testing.T) {
	dataset := writeDataset(t, "header_only.csv", "a,b\n")
	outDir := t.TempDir()
	if _, err := viz.Generate(context.Background(), dataset, viz.FileTypeCSV, outDir); err == nil {
		t.Fatal("expected render error for a table with no rows")
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("no artifacts should be written for an empty table, found %d", len(entries))
	}
}

func TestGenerateFrom(t *testing.T) {
	s := table.Schema{Columns: []table.ColumnSchema{
		{Name: "a", Type: table.KindFloat, Nullable: true},
		{Name: "b", Type: table.KindFloat, Nullable: true},
	}}
	f := table.NewFrame(s)
	for i := 0; i < 2; i++ {
		f.AppendNullRow()
	}
	_ = f.SetCell(0, "a", 1.0)
	_ = f.SetCell(1, "b", 2.0)

	outDir := t.TempDir()
	res, err := viz.GenerateFrom(context.Background(), f, outDir)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(outDir, "missing_values_heatmap.png")
	if got := res[viz.MissingValuesName][viz.MissingHeatmapKey]; got != want {
		t.Fatalf("returned path %q, want %q", got, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("heatmap file not written: %v", err)
	}
	if _, err := os.Stat(res[viz.CorrelationName][viz.CorrelationHeatmapKey]); err != nil {
		t.Fatalf("correlation heatmap not written: %v", err)
	}
}

func TestGenerateFileNotFound(t *testing.T) {
	_, err := viz.Generate(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), viz.FileTypeCSV, t.TempDir())
	if !errors.Is(err, viz.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerateUnsupportedType(t *testing.T) {
	dataset := writeDataset(t, "data.xlsx", "not really")
	_, err := viz.Generate(context.Background(), dataset, viz.FileType("xlsx"), t.TempDir())
	if err == nil || errors.Is(err, viz.ErrNotFound) {
		t.Fatalf("expected unsupported-type error, got %v", err)
	}
}

func TestGenerateMissingOutputDir(t *testing.T) {
	dataset := writeDataset(t, "data.csv", "a,b\n1,2\n")
	out := filepath.Join(t.TempDir(), "does", "not", "exist")
	if _, err := viz.Generate(context.Background(), dataset, viz.FileTypeCSV, out); err == nil {
		t.Fatal("expected save error for missing output directory")
	}
}

// reddish matches interior pixels of the "missing" heatmap color.
func reddish(c uint32, g uint32, b uint32) bool {
	return c > 0x9000 && g < 0x6000 && b < 0x6000
}

func countReddish(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if reddish(r, g, b) {
				n++
			}
		}
	}
	return n
}

func TestHeatmapColors(t *testing.T) {
	ctx := context.Background()

	allPresent := writeDataset(t, "full.csv", "a,b\n1,2\n3,4\n")
	outFull := t.TempDir()
	if _, err := viz.Generate(ctx, allPresent, viz.FileTypeCSV, outFull); err != nil {
		t.Fatal(err)
	}
	if n := countReddish(t, filepath.Join(outFull, "missing_values_heatmap.png")); n != 0 {
		t.Fatalf("all-present heatmap should have no missing-colored pixels, found %d", n)
	}

	allMissing := writeDataset(t, "empty.csv", "a,b\n,\n,\n")
	outEmpty := t.TempDir()
	if _, err := viz.Generate(ctx, allMissing, viz.FileTypeCSV, outEmpty); err != nil {
		t.Fatal(err)
	}
	if n := countReddish(t, filepath.Join(outEmpty, "missing_values_heatmap.png")); n == 0 {
		t.Fatal("all-missing heatmap should be filled with the missing color")
	}
}

func TestFormatEquivalence(t *testing.T) {
	csvPath := writeDataset(t, "data.csv", "a,b\n1,\n,2\n3,4\n")
	tsvPath := writeDataset(t, "data.tsv", "a\tb\n1\t\n\t2\n3\t4\n")

	fromCSV, err := viz.LoadFrame(csvPath, viz.FileTypeCSV)
	if err != nil {
		t.Fatal(err)
	}
	fromTSV, err := viz.LoadFrame(tsvPath, viz.FileTypeTSV)
	if err != nil {
		t.Fatal(err)
	}

	parquetPath := filepath.Join(t.TempDir(), "data.parquet")
	if err := parquetio.WriteAll(parquetPath, fromCSV); err != nil {
		t.Fatal(err)
	}
	fromParquet, err := viz.LoadFrame(parquetPath, viz.FileTypeParquet)
	if err != nil {
		t.Fatal(err)
	}

	for _, other := range []*table.Frame{fromTSV, fromParquet} {
		if other.Rows() != fromCSV.Rows() || other.Cols() != fromCSV.Cols() {
			t.Fatalf("shape differs: %dx%d vs %dx%d", other.Rows(), other.Cols(), fromCSV.Rows(), fromCSV.Cols())
		}
		for _, name := range fromCSV.Names() {
			want, _ := fromCSV.ColumnByName(name)
			have, ok := other.ColumnByName(name)
			if !ok {
				t.Fatalf("column %s missing", name)
			}
			for i := 0; i < fromCSV.Rows(); i++ {
				if want.IsNull(i) != have.IsNull(i) {
					t.Fatalf("null pattern differs in %s at row %d", name, i)
				}
			}
		}
	}
}

// stub visualization proving new types compose without orchestrator changes.
type marker struct {
	name string
	out  string
}

func (m marker) Name() string { return m.name }
func (m marker) Generate(context.Context) (viz.Artifacts, error) {
	return viz.Artifacts{"marker": m.out}, nil
}

func TestRunnerExtension(t *testing.T) {
	res, err := viz.NewRunner().
		Add(marker{name: "first", out: "a.png"}).
		Add(marker{name: "second", out: "b.png"}).
		Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 2 || res["first"]["marker"] != "a.png" || res["second"]["marker"] != "b.png" {
		t.Fatalf("unexpected runner result: %v", res)
	}
}
