package tabular

import (
	"fmt"
	"io"
	"os"
)

// A Table is an ordered collection of uniquely named columns of equal
// length.  Tables are not modified after construction; the methods
// that subset or extend a table return a new one sharing unchanged
// columns.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// NewTable returns a table holding the given columns, in order.  All
// columns must have the same length and distinct names.
func NewTable(cols ...*Column) (*Table, error) {

	tbl := &Table{
		columns: make([]*Column, 0, len(cols)),
		index:   make(map[string]int, len(cols)),
	}

	for j, col := range cols {
		if col == nil {
			return nil, fmt.Errorf("%w: column %d is nil", ErrShape, j)
		}
		if _, ok := tbl.index[col.name]; ok {
			return nil, fmt.Errorf("%w: duplicate column name %q", ErrShape, col.name)
		}
		if j > 0 && col.length != tbl.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d",
				ErrShape, col.name, col.length, tbl.rows)
		}
		tbl.rows = col.length
		tbl.index[col.name] = j
		tbl.columns = append(tbl.columns, col)
	}

	return tbl, nil
}

// NumRows returns the number of rows.
func (tbl *Table) NumRows() int {
	return tbl.rows
}

// NumColumns returns the number of columns.
func (tbl *Table) NumColumns() int {
	return len(tbl.columns)
}

// Names returns the column names in order.
func (tbl *Table) Names() []string {

	names := make([]string, len(tbl.columns))
	for j, col := range tbl.columns {
		names[j] = col.name
	}
	return names
}

// Columns returns the columns in order.
func (tbl *Table) Columns() []*Column {
	return append([]*Column(nil), tbl.columns...)
}

// ColumnIndex returns the position of the named column, or -1.
func (tbl *Table) ColumnIndex(name string) int {
	j, ok := tbl.index[name]
	if !ok {
		return -1
	}
	return j
}

// Column returns the named column, or an InvalidColumnError.
func (tbl *Table) Column(name string) (*Column, error) {
	j, ok := tbl.index[name]
	if !ok {
		return nil, &InvalidColumnError{Column: name}
	}
	return tbl.columns[j], nil
}

// With returns a table in which col replaces the column of the same
// name, or is appended if there is none.
func (tbl *Table) With(col *Column) (*Table, error) {

	cols := tbl.Columns()
	if j, ok := tbl.index[col.name]; ok {
		cols[j] = col
	} else {
		cols = append(cols, col)
	}
	return NewTable(cols...)
}

// Select returns a table with only the named columns, in the given
// order.
func (tbl *Table) Select(names ...string) (*Table, error) {

	cols := make([]*Column, len(names))
	for k, name := range names {
		col, err := tbl.Column(name)
		if err != nil {
			return nil, err
		}
		cols[k] = col
	}
	return NewTable(cols...)
}

// Take returns a table holding the given rows, in the given order.
func (tbl *Table) Take(rows []int) (*Table, error) {

	for _, i := range rows {
		if i < 0 || i >= tbl.rows {
			return nil, fmt.Errorf("row %d out of range [0, %d)", i, tbl.rows)
		}
	}
	return tbl.take(rows), nil
}

func (tbl *Table) take(rows []int) *Table {

	cols := make([]*Column, len(tbl.columns))
	for j, col := range tbl.columns {
		cols[j] = col.take(rows)
	}
	out, _ := NewTable(cols...)
	if len(cols) == 0 {
		out.rows = len(rows)
	}
	return out
}

// Filter returns a table with the rows for which keep returns true.
func (tbl *Table) Filter(keep func(row int) bool) *Table {

	var rows []int
	for i := 0; i < tbl.rows; i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	return tbl.take(rows)
}

// Head returns a table with the first n rows.
func (tbl *Table) Head(n int) *Table {

	if n > tbl.rows {
		n = tbl.rows
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return tbl.take(rows)
}

// Row returns the values of row i, in column order.
func (tbl *Table) Row(i int) []Value {

	row := make([]Value, len(tbl.columns))
	for j, col := range tbl.columns {
		row[j] = col.Value(i)
	}
	return row
}

// AllClose returns (true, 0, 0) if all corresponding columns of the
// two tables have equal names and are within the given tolerance.
// Otherwise it returns (false, j, i), where j is the index of a column
// and i is as returned by Column.AllClose.  If the tables have
// different numbers of columns it returns (false, -1, -1), and if
// column j has a different name it returns (false, j, -3).
func (tbl *Table) AllClose(other *Table, tol float64) (bool, int, int) {

	if len(tbl.columns) != len(other.columns) {
		return false, -1, -1
	}

	for j, col := range tbl.columns {
		if col.name != other.columns[j].name {
			return false, j, -3
		}
		f, i := col.AllClose(other.columns[j], tol)
		if !f {
			return false, j, i
		}
	}

	return true, 0, 0
}

// AllEqual is equivalent to AllClose with tol = 0.
func (tbl *Table) AllEqual(other *Table) (bool, int, int) {
	return tbl.AllClose(other, 0.0)
}

// Write writes every column of the table to w, one after another, in
// the format of Column.Write.
func (tbl *Table) Write(w io.Writer) error {

	for j, col := range tbl.columns {
		if j > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := col.Write(w); err != nil {
			return err
		}
	}
	return nil
}

// Print writes the table to the standard output.
func (tbl *Table) Print() error {
	return tbl.Write(os.Stdout)
}
