package tabular

import (
	"fmt"
	"strconv"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// parquetSchema returns the CSV-writer schema entry for a column.
// Every field is optional so that missing values can be stored as
// nulls.  Categorical columns are written as their labels.
func parquetSchema(col *Column) string {

	switch col.kind {
	case Numeric:
		return fmt.Sprintf("name=%s, type=DOUBLE, repetitiontype=OPTIONAL", col.name)
	case Boolean:
		return fmt.Sprintf("name=%s, type=BOOLEAN, repetitiontype=OPTIONAL", col.name)
	case Timestamp:
		return fmt.Sprintf("name=%s, type=INT64, convertedtype=TIMESTAMP_MILLIS, repetitiontype=OPTIONAL", col.name)
	default:
		return fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL", col.name)
	}
}

// parquetField formats a value the way the parquet CSV writer parses
// it for the column's schema, or returns nil for a missing value.
func parquetField(v Value) *string {

	if v.Missing {
		return nil
	}

	var s string
	switch v.Kind {
	case Numeric:
		s = strconv.FormatFloat(v.Num, 'g', -1, 64)
	case Timestamp:
		s = strconv.FormatInt(v.Time.UnixMilli(), 10)
	default:
		s = v.String()
	}
	return &s
}

// WriteParquet writes the table to a snappy-compressed parquet file
// at path, using np goroutines for encoding.
func WriteParquet(tbl *Table, path string, np int64) error {

	if np < 1 {
		np = 1
	}

	md := make([]string, tbl.NumColumns())
	for j, col := range tbl.columns {
		md[j] = parquetSchema(col)
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer fw.Close()

	pw, err := writer.NewCSVWriter(md, fw, np)
	if err != nil {
		return fmt.Errorf("parquet writer for %s: %w", path, err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	rec := make([]*string, tbl.NumColumns())
	for i := 0; i < tbl.NumRows(); i++ {
		for j, col := range tbl.columns {
			rec[j] = parquetField(col.Value(i))
		}
		if err := pw.WriteString(rec); err != nil {
			return fmt.Errorf("write row %d to %s: %w", i, path, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("finish %s: %w", path, err)
	}
	return nil
}
