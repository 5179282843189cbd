// Package golearn converts between dataviz frames and
// github.com/sjwhitworth/golearn/base DenseInstances, so golearn datasets
// can be fed through the visualizers and loaded frames exported for ML use.
package golearn

import (
	"math"

	"github.com/sjwhitworth/golearn/base"

	"github.com/wdm0006/dataviz/pkg/table"
)

// ToDenseInstances converts a Frame into golearn DenseInstances. golearn
// has no null concept: missing numeric cells become NaN, missing string
// cells become the empty string.
func ToDenseInstances(f *table.Frame) (*base.DenseInstances, error) {
	attrs := make([]base.Attribute, f.Cols())
	for i, cs := range f.Schema().Columns {
		switch cs.Type {
		case table.KindFloat, table.KindInt:
			attrs[i] = base.NewFloatAttribute(cs.Name)
		default:
			ca := new(base.CategoricalAttribute)
			ca.SetName(cs.Name)
			attrs[i] = ca
		}
	}
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}

	for r := 0; r < f.Rows(); r++ {
		for c, cs := range f.Schema().Columns {
			col := f.ColumnAt(c)
			switch cs.Type {
			case table.KindFloat:
				v := math.NaN()
				if x, ok := col.(*table.FloatColumn).Get(r); ok {
					v = x
				}
				inst.Set(specs[c], r, base.PackFloatToBytes(v))
			case table.KindInt:
				v := math.NaN()
				if x, ok := col.(*table.IntColumn).Get(r); ok {
					v = float64(x)
				}
				inst.Set(specs[c], r, base.PackFloatToBytes(v))
			case table.KindString:
				if v, ok := col.(*table.StringColumn).Get(r); ok {
					inst.Set(specs[c], r, base.Attribute.GetSysValFromString(attrs[c], v))
				}
			case table.KindBool:
				v := math.NaN()
				if x, ok := col.(*table.BoolColumn).Get(r); ok {
					if x {
						v = 1
					} else {
						v = 0
					}
				}
				inst.Set(specs[c], r, base.PackFloatToBytes(v))
			}
		}
	}
	if len(attrs) > 0 {
		if err := inst.AddClassAttribute(attrs[len(attrs)-1]); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// FromDenseInstances converts golearn DenseInstances into a Frame. NaN
// float values are marked null so missingness survives the trip back.
func FromDenseInstances(inst *base.DenseInstances) (*table.Frame, error) {
	attrs := inst.AllAttributes()
	schema := table.Schema{Columns: make([]table.ColumnSchema, len(attrs))}
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		k := table.KindString
		if _, ok := a.(*base.FloatAttribute); ok {
			k = table.KindFloat
		}
		schema.Columns[i] = table.ColumnSchema{Name: a.GetName(), Type: k, Nullable: true}
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	f := table.NewFrame(schema)
	_, nrows := inst.Size()
	for r := 0; r < nrows; r++ {
		f.AppendNullRow()
		for c, cs := range schema.Columns {
			switch cs.Type {
			case table.KindFloat:
				v := base.UnpackBytesToFloat(inst.Get(specs[c], r))
				if !math.IsNaN(v) {
					_ = f.SetCell(r, cs.Name, v)
				}
			default:
				v := base.Attribute.GetStringFromSysVal(specs[c].GetAttribute(), inst.Get(specs[c], r))
				_ = f.SetCell(r, cs.Name, v)
			}
		}
	}
	return f, nil
}
