package parquetio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	parquet "github.com/segmentio/parquet-go"

	"github.com/wdm0006/dataviz/pkg/table"
)

// Reader loads a Parquet file into a Frame. The schema is inferred from a
// sample of rows, then the file is re-read from the start.
type Reader struct {
	file   *os.File
	reader *parquet.GenericReader[map[string]any]
	schema table.Schema
}

func OpenReader(path string, sampleRows int) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	// map rows need an explicit schema option or NewGenericReader panics;
	// use the file's own schema
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r := parquet.NewGenericReader[map[string]any](pf, pf.Schema())
	if sampleRows <= 0 {
		sampleRows = 100
	}
	rows := make([]map[string]any, sampleRows)
	n, err := r.Read(rows)
	if err != nil && !isEOF(err) {
		_ = r.Close()
		_ = f.Close()
		return nil, err
	}
	schema := inferSchema(rows[:n])
	// segmentio readers cannot unread, so rewind and reopen for the full pass
	if err := r.Close(); err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.Seek(0, 0); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Reader{file: f, reader: parquet.NewGenericReader[map[string]any](pf, pf.Schema()), schema: schema}, nil
}

func (r *Reader) Close() error {
	_ = r.reader.Close()
	return r.file.Close()
}

func (r *Reader) Schema() table.Schema { return r.schema }

func (r *Reader) ReadAll() (*table.Frame, error) {
	f := table.NewFrame(r.schema)
	buf := make([]map[string]any, 1024)
	for {
		n, err := r.reader.Read(buf)
		for i := 0; i < n; i++ {
			f.AppendNullRow()
			setRow(f, f.Rows()-1, buf[i])
		}
		if err != nil {
			if isEOF(err) {
				break
			}
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return f, nil
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}

func inferSchema(rows []map[string]any) table.Schema {
	keySet := map[string]struct{}{}
	for _, m := range rows {
		for k := range m {
			keySet[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	schema := table.Schema{Columns: make([]table.ColumnSchema, len(keys))}
	for i, k := range keys {
		schema.Columns[i] = table.ColumnSchema{Name: k, Type: inferKind(rows, k), Nullable: true}
	}
	return schema
}

func inferKind(rows []map[string]any, key string) table.Kind {
	nNum, nInt, nBool, nStr := 0, 0, 0, 0
	for _, m := range rows {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case float32, float64:
			nNum++
			if f, ok := t.(float64); ok && float64(int64(f)) == f {
				nInt++
			}
		case int, int32, int64:
			nNum++
			nInt++
		case bool:
			nBool++
		default:
			nStr++
		}
	}
	switch {
	case nBool > nNum && nBool >= nStr:
		return table.KindBool
	case nNum > nStr:
		if nInt == nNum {
			return table.KindInt
		}
		return table.KindFloat
	default:
		return table.KindString
	}
}

func setRow(f *table.Frame, row int, m map[string]any) {
	for _, cs := range f.Schema().Columns {
		v, ok := m[cs.Name]
		if !ok || v == nil {
			continue
		}
		switch cs.Type {
		case table.KindFloat:
			switch t := v.(type) {
			case float64:
				_ = f.SetCell(row, cs.Name, t)
			case float32:
				_ = f.SetCell(row, cs.Name, float64(t))
			case int64:
				_ = f.SetCell(row, cs.Name, float64(t))
			case int32:
				_ = f.SetCell(row, cs.Name, float64(t))
			}
		case table.KindInt:
			switch t := v.(type) {
			case int64:
				_ = f.SetCell(row, cs.Name, t)
			case int32:
				_ = f.SetCell(row, cs.Name, int64(t))
			case float64:
				_ = f.SetCell(row, cs.Name, int64(t))
			}
		case table.KindBool:
			if b, ok := v.(bool); ok {
				_ = f.SetCell(row, cs.Name, b)
			}
		default:
			switch t := v.(type) {
			case string:
				_ = f.SetCell(row, cs.Name, t)
			case []byte:
				_ = f.SetCell(row, cs.Name, string(t))
			default:
				_ = f.SetCell(row, cs.Name, fmt.Sprintf("%v", t))
			}
		}
	}
}
