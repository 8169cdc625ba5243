package tabular

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// WriteCSV writes the table to w as CSV with a header row.  Missing
// values are written as empty fields, numbers in their shortest exact
// form and timestamps in RFC 3339 format.
func WriteCSV(tbl *Table, w io.Writer) error {

	cw := csv.NewWriter(w)

	if err := cw.Write(tbl.Names()); err != nil {
		return err
	}

	row := make([]string, tbl.NumColumns())
	for i := 0; i < tbl.NumRows(); i++ {
		for j, col := range tbl.columns {
			row[j] = formatField(col.Value(i))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatField(v Value) string {

	if v.Missing {
		return ""
	}
	switch v.Kind {
	case Numeric:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case Timestamp:
		return v.Time.Format(time.RFC3339)
	}
	return v.String()
}
