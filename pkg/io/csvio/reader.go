package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	iox "github.com/wdm0006/dataviz/pkg/io/ioutils"
	"github.com/wdm0006/dataviz/pkg/table"
)

type ReaderOptions struct {
	HasHeader  bool
	Delimiter  rune // 0 defaults to ','
	SampleRows int  // for inference; default 100
}

// Reader loads delimited text (CSV, or TSV via Delimiter '\t') into a Frame.
type Reader struct {
	r   *csv.Reader
	c   io.Closer
	opt ReaderOptions
	buf [][]string // rows consumed during schema inference
}

// Open opens a delimited file (transparently gunzipping) and returns a Reader.
// Close releases the underlying file.
func Open(path string, opt ReaderOptions) (*Reader, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	rr := csv.NewReader(rc)
	if opt.Delimiter != 0 {
		rr.Comma = opt.Delimiter
	}
	rr.FieldsPerRecord = -1
	return &Reader{r: rr, c: rc, opt: opt}, nil
}

func (r *Reader) Close() error {
	if r.c == nil {
		return nil
	}
	return r.c.Close()
}

// InferSchema reads the header (if present) and samples rows to determine
// column kinds. Sampled rows are retained for the subsequent ReadAll.
func (r *Reader) InferSchema() (table.Schema, error) {
	rec, err := r.r.Read()
	if err != nil {
		return table.Schema{}, err
	}
	var names []string
	if r.opt.HasHeader {
		names = make([]string, len(rec))
		for i := range rec {
			names[i] = strings.ToValidUTF8(rec[i], "?")
		}
		// strip BOM on first header cell if present
		if len(names) > 0 {
			names[0] = strings.TrimPrefix(names[0], bomPrefix)
		}
	} else {
		names = make([]string, len(rec))
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
		r.buf = append(r.buf, append([]string(nil), rec...))
	}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			return table.Schema{}, fmt.Errorf("duplicate column name: %s", n)
		}
		seen[n] = struct{}{}
	}

	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	for len(r.buf) < max {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return table.Schema{}, err
		}
		r.buf = append(r.buf, append([]string(nil), rec...))
	}

	kinds := inferKinds(r.buf, len(names))
	schema := table.Schema{Columns: make([]table.ColumnSchema, len(names))}
	for i := range names {
		schema.Columns[i] = table.ColumnSchema{Name: names[i], Type: kinds[i], Nullable: true}
	}
	return schema, nil
}

// ReadAll loads the remainder of the file into a Frame, draining any rows
// buffered during inference first.
func (r *Reader) ReadAll(schema table.Schema) (*table.Frame, error) {
	f := table.NewFrame(schema)
	for _, rec := range r.buf {
		appendRecord(f, schema, rec)
	}
	r.buf = nil
	for {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		appendRecord(f, schema, rec)
	}
	return f, nil
}

// appendRecord appends a null row then fills each non-empty field. Short
// records leave trailing cells null; extra fields are ignored.
func appendRecord(f *table.Frame, schema table.Schema, rec []string) {
	f.AppendNullRow()
	row := f.Rows() - 1
	for i, cs := range schema.Columns {
		if i >= len(rec) {
			continue
		}
		val := strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
		if val == "" {
			continue
		}
		switch cs.Type {
		case table.KindFloat:
			if x, err := strconv.ParseFloat(val, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		case table.KindInt:
			if x, err := strconv.ParseInt(val, 10, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		case table.KindBool:
			if x, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		default:
			_ = f.SetCell(row, cs.Name, val)
		}
	}
}

const bomPrefix = "\uFEFF"

var numRe = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

func inferKinds(rows [][]string, ncol int) []table.Kind {
	kinds := make([]table.Kind, ncol)
	for c := 0; c < ncol; c++ {
		num, integer, boolean, str := 0, 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			if v == "" {
				continue
			}
			switch {
			case numRe.MatchString(v):
				num++
				if !strings.ContainsAny(v, ".eE") {
					integer++
				}
			case strings.EqualFold(v, "true") || strings.EqualFold(v, "false"):
				boolean++
			default:
				str++
			}
		}
		switch {
		case boolean > 0 && num == 0 && str == 0:
			kinds[c] = table.KindBool
		case num > str:
			if integer == num {
				kinds[c] = table.KindInt
			} else {
				kinds[c] = table.KindFloat
			}
		default:
			kinds[c] = table.KindString
		}
	}
	return kinds
}
