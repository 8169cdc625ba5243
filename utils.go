package tabular

import (
	"errors"
	"fmt"
	"io"
	"slices"
)

// A TableReader reads a data set in chunks of consecutive records.
// Read returns io.EOF once the data set is exhausted.
type TableReader interface {
	Read(int) (*Table, error)
}

// ReadAll reads rdr to the end in chunks of the given size and returns
// the concatenated table.
func ReadAll(rdr TableReader, chunk int) (*Table, error) {

	var chunks []*Table
	for {
		tbl, err := rdr.Read(chunk)
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}
		chunks = append(chunks, tbl)
	}
	if len(chunks) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	return Concat(chunks...)
}

// Concat stacks tables with the same column names and kinds, in order.
// Categorical columns are recoded against the union of their levels.
func Concat(tables ...*Table) (*Table, error) {

	if len(tables) == 0 {
		return NewTable()
	}
	if len(tables) == 1 {
		return tables[0], nil
	}

	first := tables[0]
	names := first.Names()
	for _, tbl := range tables[1:] {
		if !slices.Equal(names, tbl.Names()) {
			return nil, fmt.Errorf("%w: concat of tables with columns %v and %v", ErrShape, names, tbl.Names())
		}
	}

	cols := make([]*Column, len(names))
	for j, col := range first.columns {
		var vals []Value
		for _, tbl := range tables {
			c := tbl.columns[j]
			if c.kind != col.kind {
				return nil, &TypeMismatchError{Column: c.name, Kind: c.kind, Op: "concat with " + col.kind.String()}
			}
			for i := 0; i < c.length; i++ {
				vals = append(vals, c.Value(i))
			}
		}
		var err error
		if cols[j], err = columnFromValues(col.name, col.kind, col.levels, vals); err != nil {
			return nil, err
		}
	}
	return NewTable(cols...)
}
