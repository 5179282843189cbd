package golearn

import (
	"testing"

	"github.com/wdm0006/dataviz/pkg/table"
)

func TestRoundTripPreservesFloatNulls(t *testing.T) {
	s := table.Schema{Columns: []table.ColumnSchema{
		{Name: "x", Type: table.KindFloat, Nullable: true},
		{Name: "label", Type: table.KindString, Nullable: true},
	}}
	f := table.NewFrame(s)
	for i := 0; i < 4; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, "label", "l")
	}
	_ = f.SetCell(0, "x", 1.0)
	_ = f.SetCell(2, "x", 3.0)
	// rows 1 and 3 stay null in x

	inst, err := ToDenseInstances(f)
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromDenseInstances(inst)
	if err != nil {
		t.Fatal(err)
	}
	if back.Rows() != f.Rows() || back.Cols() != f.Cols() {
		t.Fatalf("round trip changed shape: %dx%d", back.Rows(), back.Cols())
	}
	col, ok := back.ColumnByName("x")
	if !ok {
		t.Fatal("column x missing after round trip")
	}
	for i := 0; i < f.Rows(); i++ {
		want := f.IsNull(i, 0)
		if col.IsNull(i) != want {
			t.Fatalf("null mismatch at row %d: want %v", i, want)
		}
	}
}

func TestToDenseInstancesIntAsFloat(t *testing.T) {
	s := table.Schema{Columns: []table.ColumnSchema{
		{Name: "n", Type: table.KindInt, Nullable: true},
	}}
	f := table.NewFrame(s)
	f.AppendNullRow()
	_ = f.SetCell(0, "n", int64(7))

	inst, err := ToDenseInstances(f)
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromDenseInstances(inst)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := back.ColumnByName("n")
	v, ok := col.(*table.FloatColumn).Get(0)
	if !ok || v != 7 {
		t.Fatalf("expected 7, got %v (present=%v)", v, ok)
	}
}
