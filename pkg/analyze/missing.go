package analyze

import (
	"fmt"
	"strings"

	"github.com/wdm0006/dataviz/pkg/table"
)

// ColumnMissing holds the missing-value stats for one column.
type ColumnMissing struct {
	Name    string
	Kind    table.Kind
	Present int
	Nulls   int
	Pct     float64 // nulls as a percentage of total rows
}

// Analysis holds per-column missing-value stats in schema order.
type Analysis struct {
	Rows    int
	Columns []ColumnMissing
}

// MissingValues counts nulls per column over the whole frame.
func MissingValues(f *table.Frame) Analysis {
	a := Analysis{Rows: f.Rows(), Columns: make([]ColumnMissing, f.Cols())}
	for c, cs := range f.Schema().Columns {
		col := f.ColumnAt(c)
		cm := ColumnMissing{Name: cs.Name, Kind: cs.Type}
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				cm.Nulls++
			} else {
				cm.Present++
			}
		}
		if a.Rows > 0 {
			cm.Pct = float64(cm.Nulls) / float64(a.Rows) * 100
		}
		a.Columns[c] = cm
	}
	return a
}

// MissingVector returns the per-row missingness of the column at schema
// position c: true where the cell is null.
func MissingVector(f *table.Frame, c int) []bool {
	col := f.ColumnAt(c)
	v := make([]bool, col.Len())
	for i := range v {
		v[i] = col.IsNull(i)
	}
	return v
}

// ReportText renders a plain-text summary of the analysis.
func (a Analysis) ReportText() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Missing Values Summary (%d rows)\n", a.Rows))
	for _, cm := range a.Columns {
		b.WriteString(fmt.Sprintf("- %s (%v): present=%d missing=%d (%.1f%%)\n",
			cm.Name, cm.Kind, cm.Present, cm.Nulls, cm.Pct))
	}
	return b.String()
}
