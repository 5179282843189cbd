package parquetio

import (
	"encoding/json"
	"fmt"

	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	"github.com/wdm0006/dataviz/pkg/table"
)

func parquetSchemaJSON(s table.Schema) string {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, cs := range s.Columns {
		tag := "name=" + cs.Name + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case table.KindFloat:
			tag += "DOUBLE"
		case table.KindInt:
			tag += "INT64"
		case table.KindBool:
			tag += "BOOLEAN"
		default:
			tag += "BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

// WriteAll writes a Frame to a Parquet file. Null cells are written as
// absent optional values so a round trip preserves the null pattern.
func WriteAll(path string, f *table.Frame) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	writer, err := pw.NewJSONWriter(parquetSchemaJSON(f.Schema()), fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	defer func() { _ = fw.Close() }()

	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, f.Cols())
		for _, cs := range f.Schema().Columns {
			col, _ := f.ColumnByName(cs.Name)
			switch cs.Type {
			case table.KindFloat:
				if v, ok := col.(*table.FloatColumn).Get(r); ok {
					rec[cs.Name] = v
				}
			case table.KindInt:
				if v, ok := col.(*table.IntColumn).Get(r); ok {
					rec[cs.Name] = v
				}
			case table.KindBool:
				if v, ok := col.(*table.BoolColumn).Get(r); ok {
					rec[cs.Name] = v
				}
			case table.KindString:
				if v, ok := col.(*table.StringColumn).Get(r); ok {
					rec[cs.Name] = v
				}
			case table.KindTime:
				if v, ok := col.(*table.TimeColumn).Get(r); ok {
					rec[cs.Name] = v.Format("2006-01-02T15:04:05Z07:00")
				}
			}
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("parquet encode row: %w", err)
		}
		if err := writer.Write(string(b)); err != nil {
			return fmt.Errorf("parquet write row: %w", err)
		}
	}
	return writer.WriteStop()
}
