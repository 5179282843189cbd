package table

import (
	"fmt"
	"time"
)

// Schema describes the logical shape of a dataset. Column order matches
// the order columns appeared in the source file.
type Schema struct {
	Columns []ColumnSchema
}

type ColumnSchema struct {
	Name     string
	Type     Kind
	Nullable bool
}

// Kind enumerates supported logical types.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	default:
		return "invalid"
	}
}

// Column is a typed, nullable column abstraction.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	SetNull(i int)
}

// Col is the shared backing for all concrete column types: values plus a
// parallel null mask.
type Col[T any] struct {
	name string
	kind Kind
	data []T
	null []bool
}

func (c *Col[T]) Name() string      { return c.name }
func (c *Col[T]) Kind() Kind        { return c.kind }
func (c *Col[T]) Len() int          { return len(c.data) }
func (c *Col[T]) IsNull(i int) bool { return c.null[i] }
func (c *Col[T]) SetNull(i int) {
	var zero T
	c.data[i] = zero
	c.null[i] = true
}

// Get returns the value at i and whether it is present.
func (c *Col[T]) Get(i int) (T, bool) { return c.data[i], !c.null[i] }

func (c *Col[T]) Set(i int, v T) {
	c.data[i] = v
	c.null[i] = false
}

func (c *Col[T]) Append(v T) {
	c.data = append(c.data, v)
	c.null = append(c.null, false)
}

func (c *Col[T]) AppendNull() {
	var zero T
	c.data = append(c.data, zero)
	c.null = append(c.null, true)
}

type (
	BoolColumn   = Col[bool]
	IntColumn    = Col[int64]
	FloatColumn  = Col[float64]
	StringColumn = Col[string]
	TimeColumn   = Col[time.Time]
)

func NewBoolColumn(name string) *BoolColumn     { return &BoolColumn{name: name, kind: KindBool} }
func NewIntColumn(name string) *IntColumn       { return &IntColumn{name: name, kind: KindInt} }
func NewFloatColumn(name string) *FloatColumn   { return &FloatColumn{name: name, kind: KindFloat} }
func NewStringColumn(name string) *StringColumn { return &StringColumn{name: name, kind: KindString} }
func NewTimeColumn(name string) *TimeColumn     { return &TimeColumn{name: name, kind: KindTime} }

// Frame is a columnar container for tabular data. Loaders build it row by
// row; readers treat it as immutable.
type Frame struct {
	schema Schema
	cols   []Column
	index  map[string]int // name -> col index
	nrows  int
}

func NewFrame(s Schema) *Frame {
	f := &Frame{schema: s, cols: make([]Column, len(s.Columns)), index: make(map[string]int)}
	for i, cs := range s.Columns {
		switch cs.Type {
		case KindBool:
			f.cols[i] = NewBoolColumn(cs.Name)
		case KindInt:
			f.cols[i] = NewIntColumn(cs.Name)
		case KindFloat:
			f.cols[i] = NewFloatColumn(cs.Name)
		case KindString:
			f.cols[i] = NewStringColumn(cs.Name)
		case KindTime:
			f.cols[i] = NewTimeColumn(cs.Name)
		default:
			panic("invalid column kind")
		}
		f.index[cs.Name] = i
	}
	return f
}

func (f *Frame) Schema() Schema { return f.schema }
func (f *Frame) Rows() int      { return f.nrows }
func (f *Frame) Cols() int      { return len(f.cols) }

// Names returns the column names in schema order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.schema.Columns))
	for i, cs := range f.schema.Columns {
		names[i] = cs.Name
	}
	return names
}

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// ColumnAt returns the column at schema position i.
func (f *Frame) ColumnAt(i int) Column { return f.cols[i] }

// IsNull reports whether the cell at (row, col) is missing; col is the
// schema position of the column.
func (f *Frame) IsNull(row, col int) bool { return f.cols[col].IsNull(row) }

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		switch col := c.(type) {
		case *BoolColumn:
			col.AppendNull()
		case *IntColumn:
			col.AppendNull()
		case *FloatColumn:
			col.AppendNull()
		case *StringColumn:
			col.AppendNull()
		case *TimeColumn:
			col.AppendNull()
		default:
			panic("unknown column type")
		}
	}
	f.nrows++
}

// SetCell sets a single cell value by column name (row must exist). A nil
// value marks the cell null.
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	c := f.cols[i]
	if v == nil {
		c.SetNull(row)
		return nil
	}
	switch col := c.(type) {
	case *BoolColumn:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("column %s expects bool", name)
		}
		col.Set(row, b)
	case *IntColumn:
		switch t := v.(type) {
		case int:
			col.Set(row, int64(t))
		case int64:
			col.Set(row, t)
		case float64:
			col.Set(row, int64(t))
		default:
			return fmt.Errorf("column %s expects int/int64", name)
		}
	case *FloatColumn:
		switch t := v.(type) {
		case float32:
			col.Set(row, float64(t))
		case float64:
			col.Set(row, t)
		case int:
			col.Set(row, float64(t))
		case int64:
			col.Set(row, float64(t))
		default:
			return fmt.Errorf("column %s expects float64", name)
		}
	case *StringColumn:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string", name)
		}
		col.Set(row, s)
	case *TimeColumn:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("column %s expects time.Time", name)
		}
		col.Set(row, t)
	default:
		return fmt.Errorf("unknown column kind")
	}
	return nil
}
