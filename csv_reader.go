package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Type names accepted in CSVReader type hints and reported in
// CSVReader.DataTypes.
const (
	TypeFloat64   = "float64"
	TypeString    = "string"
	TypeBool      = "bool"
	TypeTimestamp = "timestamp"
)

// sniffRows is the number of records inspected to infer column types.
const sniffRows = 100

// A CSVReader specifies how a data set in CSV format can be read from
// a text file.
type CSVReader struct {

	// Skip this number of rows before reading the header.
	SkipRows int

	// If true, there is a header to read, otherwise default column
	// names are used.
	HasHeader bool

	// The column names, in the order that they appear in the
	// file.  Can be set by caller.
	ColumnNames []string

	// User-specified data types (maps column name to type name).
	TypeHintsName map[string]string

	// User-specified data types (indexed by column number).
	TypeHintsPos []string

	// The data type for each column.
	DataTypes []string

	// Field values that denote a missing value.  Defaults to the
	// empty string and "NA".
	NAValues []string

	// Layout used to parse timestamp columns, see time.Parse.
	// Defaults to "2006-01-02".
	DateLayout string

	// Has the init method been run yet?
	initRun bool

	// Set once the underlying reader is exhausted.
	eof bool

	// Cached lines
	lines [][]string

	// The underlying csv Reader object
	csvreader *csv.Reader

	// Workspace
	dataArray []interface{}
	miss      [][]bool
	numRows   int
}

// NewCSVReader returns a CSVReader that reads CSV data from the given
// io.Reader, with type inference and chunking.
func NewCSVReader(r io.Reader) *CSVReader {

	rdr := new(CSVReader)
	rdr.HasHeader = true
	rdr.NAValues = []string{"", "NA"}
	rdr.DateLayout = "2006-01-02"

	rdr.csvreader = csv.NewReader(r)
	rdr.csvreader.FieldsPerRecord = -1

	return rdr
}

func (rdr *CSVReader) isNA(s string) bool {
	return slices.Contains(rdr.NAValues, strings.TrimSpace(s))
}

func (rdr *CSVReader) getColumnNames() {

	if rdr.HasHeader {
		rdr.ColumnNames = rdr.lines[0]
		rdr.lines = rdr.lines[1:]
		return
	}

	// Default names
	m := len(rdr.lines[0])
	rdr.ColumnNames = make([]string, m)
	for k := 0; k < m; k++ {
		rdr.ColumnNames[k] = fmt.Sprintf("Column %d", k+1)
	}
}

func (rdr *CSVReader) sniffTypes() error {

	nFloats, nBools, nObs := rdr.countTypes()

	rdr.DataTypes = make([]string, len(rdr.ColumnNames))
	for j, col := range rdr.ColumnNames {

		// Check for a type hint
		t := "infer"
		tm, ok := rdr.TypeHintsName[col]
		if ok {
			t = tm
		} else if len(rdr.TypeHintsPos) >= j+1 {
			if rdr.TypeHintsPos[j] != "" {
				t = rdr.TypeHintsPos[j]
			}
		}

		switch {
		case t == TypeFloat64, t == TypeString, t == TypeBool, t == TypeTimestamp:
			rdr.DataTypes[j] = t
		case t != "infer":
			return fmt.Errorf("%w: type hint %q for column %q", ErrUnknownType, t, col)
		case j < len(nObs) && nObs[j] > 0 && nFloats[j] == nObs[j]:
			rdr.DataTypes[j] = TypeFloat64
		case j < len(nObs) && nObs[j] > 0 && nBools[j] == nObs[j]:
			rdr.DataTypes[j] = TypeBool
		default:
			rdr.DataTypes[j] = TypeString
		}
	}
	return nil
}

// rectifyLines pads the cached lines to a common width.
func (rdr *CSVReader) rectifyLines() {

	mx := 0
	for _, line := range rdr.lines {
		if len(line) > mx {
			mx = len(line)
		}
	}

	for k, line := range rdr.lines {
		for len(line) < mx {
			line = append(line, "")
		}
		rdr.lines[k] = line
	}
}

// init performs some initializations before reading data.
func (rdr *CSVReader) init() error {

	// Read up to sniffRows lines.
	rdr.lines = make([][]string, 0, sniffRows)
	for k := 0; k < sniffRows+rdr.SkipRows; k++ {
		v, err := rdr.csvreader.Read()
		if err == io.EOF {
			rdr.eof = true
			break
		} else if err != nil {
			return err
		}
		if k >= rdr.SkipRows {
			rdr.lines = append(rdr.lines, v)
		}
	}

	rdr.rectifyLines()

	if len(rdr.lines) == 0 {
		return fmt.Errorf("file appears to be empty")
	}

	if rdr.ColumnNames == nil {
		rdr.getColumnNames()
	}

	if rdr.DataTypes == nil {
		if err := rdr.sniffTypes(); err != nil {
			return err
		}
	}
	if len(rdr.DataTypes) != len(rdr.ColumnNames) {
		return fmt.Errorf("%w: %d data types for %d columns", ErrShape, len(rdr.DataTypes), len(rdr.ColumnNames))
	}

	rdr.initRun = true

	return nil
}

func newWorkspace(dtype string, n int) interface{} {

	switch dtype {
	case TypeFloat64:
		return make([]float64, n, n+sniffRows)
	case TypeBool:
		return make([]bool, n, n+sniffRows)
	case TypeTimestamp:
		return make([]time.Time, n, n+sniffRows)
	default:
		return make([]string, n, n+sniffRows)
	}
}

// ensureWidth adds string columns, missing in all earlier rows of the
// chunk, when a record is wider than any seen so far.
func (rdr *CSVReader) ensureWidth(w int) {

	for k := len(rdr.ColumnNames); k < w; k++ {
		rdr.ColumnNames = append(rdr.ColumnNames, fmt.Sprintf("Column %d", k+1))
		rdr.DataTypes = append(rdr.DataTypes, TypeString)
	}

	for j := len(rdr.dataArray); j < w; j++ {
		rdr.dataArray = append(rdr.dataArray, newWorkspace(rdr.DataTypes[j], rdr.numRows))
		miss := make([]bool, rdr.numRows)
		for i := range miss {
			miss[i] = true
		}
		rdr.miss = append(rdr.miss, miss)
	}
}

// appendField parses one field into column j.
func (rdr *CSVReader) appendField(j int, field string, present bool) {

	na := !present || rdr.isNA(field)
	ok := !na
	switch rdr.DataTypes[j] {
	case TypeFloat64:
		var x float64
		if ok {
			var err error
			x, err = strconv.ParseFloat(strings.TrimSpace(field), 64)
			ok = err == nil
		}
		rdr.dataArray[j] = append(rdr.dataArray[j].([]float64), x)
	case TypeBool:
		var x bool
		if ok {
			var err error
			x, err = parseBool(field)
			ok = err == nil
		}
		rdr.dataArray[j] = append(rdr.dataArray[j].([]bool), x)
	case TypeTimestamp:
		var x time.Time
		if ok {
			var err error
			x, err = time.Parse(rdr.DateLayout, strings.TrimSpace(field))
			ok = err == nil
		}
		rdr.dataArray[j] = append(rdr.dataArray[j].([]time.Time), x)
	default:
		if na {
			field = ""
		}
		rdr.dataArray[j] = append(rdr.dataArray[j].([]string), field)
	}
	rdr.miss[j] = append(rdr.miss[j], !ok)
}

// Read reads up to lines rows of data and returns them as a Table.  If
// lines is not positive the rest of the file is read.  Data types of
// the columns are inferred from the first records of the file, use
// the type hints to control them directly.  Fields that fail to parse
// as the column's type are missing.  Once all rows have been
// returned, Read returns io.EOF.
func (rdr *CSVReader) Read(lines int) (*Table, error) {

	first := !rdr.initRun
	if first {
		if err := rdr.init(); err != nil {
			return nil, err
		}
	} else if rdr.eof && len(rdr.lines) == 0 {
		return nil, io.EOF
	}

	rdr.numRows = 0
	rdr.dataArray = make([]interface{}, len(rdr.ColumnNames))
	rdr.miss = make([][]bool, len(rdr.ColumnNames))
	for j := range rdr.ColumnNames {
		rdr.dataArray[j] = newWorkspace(rdr.DataTypes[j], 0)
		rdr.miss[j] = make([]bool, 0, sniffRows)
	}

	for {
		if lines > 0 && rdr.numRows >= lines {
			break
		}

		var line []string
		if len(rdr.lines) > 0 {
			line = rdr.lines[0]
			rdr.lines = rdr.lines[1:]
		} else if rdr.eof {
			break
		} else {
			var err error
			line, err = rdr.csvreader.Read()
			if err == io.EOF {
				rdr.eof = true
				break
			} else if err != nil {
				return nil, err
			}
		}
		rdr.ensureWidth(len(line))

		for j := range rdr.ColumnNames {
			if j < len(line) {
				rdr.appendField(j, line[j], true)
			} else {
				rdr.appendField(j, "", false)
			}
		}

		rdr.numRows++
	}

	// The first call always returns a table, possibly with no rows,
	// so that a header-only file yields an empty table.
	if rdr.numRows == 0 && !first {
		return nil, io.EOF
	}

	cols := make([]*Column, len(rdr.dataArray))
	for j := range rdr.dataArray {
		var err error
		cols[j], err = NewColumn(rdr.ColumnNames[j], rdr.dataArray[j], rdr.miss[j])
		if err != nil {
			return nil, err
		}
	}
	return NewTable(cols...)
}

// countTypes returns the number of non-missing elements of each
// column of the cached lines, and how many of them can be converted
// to float64 and to bool.
func (rdr *CSVReader) countTypes() ([]int, []int, []int) {

	// Find the longest record in the cache
	m := 0
	for _, v := range rdr.lines {
		if len(v) > m {
			m = len(v)
		}
	}

	numFloats := make([]int, m)
	numBools := make([]int, m)
	numObs := make([]int, m)

	for _, x := range rdr.lines {
		for j, y := range x {
			// Skip blanks
			if rdr.isNA(y) {
				continue
			}
			y = strings.TrimSpace(y)
			numObs[j]++
			if _, err := strconv.ParseFloat(y, 64); err == nil {
				numFloats[j]++
			}
			if _, err := parseBool(y); err == nil {
				numBools[j]++
			}
		}
	}

	return numFloats, numBools, numObs
}

// parseBool accepts the spellings TRUE, True, true, T and their false
// counterparts.  Unlike strconv.ParseBool it rejects 0 and 1, which
// are read as numbers.
func parseBool(s string) (bool, error) {

	switch strings.TrimSpace(s) {
	case "TRUE", "True", "true", "T":
		return true, nil
	case "FALSE", "False", "false", "F":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
