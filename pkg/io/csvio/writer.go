package csvio

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/wdm0006/dataviz/pkg/table"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll writes a Frame to a delimited file with a header row. Null cells
// are written as empty fields so a round trip preserves the null pattern.
func WriteAll(path string, f *table.Frame, opt WriterOptions) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}

	if err := w.Write(f.Names()); err != nil {
		return err
	}

	ncol := f.Cols()
	for r := 0; r < f.Rows(); r++ {
		row := make([]string, ncol)
		for c := 0; c < ncol; c++ {
			row[c] = formatCell(f.ColumnAt(c), r)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatCell(col table.Column, r int) string {
	if col.IsNull(r) {
		return ""
	}
	switch c := col.(type) {
	case *table.FloatColumn:
		v, _ := c.Get(r)
		return strconv.FormatFloat(v, 'g', -1, 64)
	case *table.IntColumn:
		v, _ := c.Get(r)
		return strconv.FormatInt(v, 10)
	case *table.BoolColumn:
		v, _ := c.Get(r)
		return strconv.FormatBool(v)
	case *table.StringColumn:
		v, _ := c.Get(r)
		return v
	case *table.TimeColumn:
		v, _ := c.Get(r)
		return v.Format(time.RFC3339)
	default:
		return ""
	}
}
