package viz

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/wdm0006/dataviz/pkg/io/csvio"
	"github.com/wdm0006/dataviz/pkg/io/parquetio"
	"github.com/wdm0006/dataviz/pkg/table"
)

// FileType is the declared format of a dataset file. The set is closed;
// anything else is rejected before a load is attempted.
type FileType string

const (
	FileTypeCSV     FileType = "csv"
	FileTypeTSV     FileType = "tsv"
	FileTypeParquet FileType = "parquet"
)

// ErrNotFound reports that the dataset path does not reference an existing
// file. It is detected before any read and can be tested with errors.Is.
var ErrNotFound = errors.New("dataset file not found")

// Generate is the top-level entry point: it checks that datasetPath exists,
// loads it as fileType, runs every visualization over the loaded frame, and
// assembles the combined result keyed by visualization name. Loader and
// render failures propagate unchanged.
func Generate(ctx context.Context, datasetPath string, fileType FileType, outDir string) (Result, error) {
	fi, err := os.Stat(datasetPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, datasetPath)
		}
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, datasetPath)
	}

	f, err := LoadFrame(datasetPath, fileType)
	if err != nil {
		return nil, err
	}
	return GenerateFrom(ctx, f, outDir)
}

// GenerateFrom runs the visualization collection over an already-loaded
// frame. New visualization types are added here and nowhere else.
func GenerateFrom(ctx context.Context, f *table.Frame, outDir string) (Result, error) {
	r := NewRunner().
		Add(NewMissingValues(f, outDir, FigSize{})).
		Add(NewMissingnessCorrelation(f, outDir, FigSize{}))
	return r.Run(ctx)
}

// LoadFrame decodes a dataset file into a Frame according to its declared
// type: csv and tsv differ only by delimiter, parquet is columnar binary.
func LoadFrame(path string, fileType FileType) (*table.Frame, error) {
	switch fileType {
	case FileTypeCSV:
		return loadDelimited(path, ',')
	case FileTypeTSV:
		return loadDelimited(path, '\t')
	case FileTypeParquet:
		r, err := parquetio.OpenReader(path, 100)
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()
		return r.ReadAll()
	default:
		return nil, fmt.Errorf("unsupported file type %q", fileType)
	}
}

func loadDelimited(path string, delim rune) (*table.Frame, error) {
	r, err := csvio.Open(path, csvio.ReaderOptions{HasHeader: true, Delimiter: delim, SampleRows: 100})
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	schema, err := r.InferSchema()
	if err != nil {
		return nil, err
	}
	return r.ReadAll(schema)
}
