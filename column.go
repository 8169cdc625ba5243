package tabular

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// A Column is a named, fixed-kind one-dimensional sequence of data
// values, with an optional mask for missing values.
type Column struct {

	// A name describing what is in this column.
	name string

	// The kind of value held in data.
	kind Kind

	// The length of the column.
	length int

	// The data, one of []float64, []string, []bool, []int (level
	// codes) or []time.Time.
	data interface{}

	// Level labels of a categorical column, indexed by code.
	levels []string

	// Indicators that data values are missing.  If nil, there are
	// no missing values.
	missing []bool
}

// kindOf returns the kind and length of a slice held in an interface
// value.
func kindOf(data interface{}) (Kind, int, error) {

	switch x := data.(type) {
	case []float64:
		return Numeric, len(x), nil
	case []string:
		return Text, len(x), nil
	case []bool:
		return Boolean, len(x), nil
	case []time.Time:
		return Timestamp, len(x), nil
	default:
		return 0, 0, fmt.Errorf("%w: %T", ErrUnknownType, data)
	}
}

// upcastNumeric copies integer and float32 slices into a []float64.
// Other data is returned unchanged.
func upcastNumeric(data interface{}) interface{} {

	switch x := data.(type) {
	case []float32:
		return convertFloats(x)
	case []int:
		return convertFloats(x)
	case []int64:
		return convertFloats(x)
	case []int32:
		return convertFloats(x)
	case []int16:
		return convertFloats(x)
	case []int8:
		return convertFloats(x)
	case []uint64:
		return convertFloats(x)
	}
	return data
}

func convertFloats[T float32 | int | int64 | int32 | int16 | int8 | uint64](x []T) []float64 {
	a := make([]float64, len(x))
	for i, v := range x {
		a[i] = float64(v)
	}
	return a
}

// NewColumn returns a new Column with the given name and data
// contents.  The data may be a []float64, []string, []bool or
// []time.Time; integer and float32 slices are converted to float64.
// NaN entries of numeric data are marked missing.  The data slice
// parameter is not copied unless it had to be converted.
func NewColumn(name string, data interface{}, missing []bool) (*Column, error) {

	data = upcastNumeric(data)
	kind, length, err := kindOf(data)
	if err != nil {
		return nil, err
	}
	if missing != nil && len(missing) != length {
		return nil, fmt.Errorf("%w: column %q has %d values but %d missing indicators",
			ErrShape, name, length, len(missing))
	}

	if x, ok := data.([]float64); ok {
		owned := false
		for i, v := range x {
			if !math.IsNaN(v) || (missing != nil && missing[i]) {
				continue
			}
			if !owned {
				m := make([]bool, length)
				copy(m, missing)
				missing = m
				owned = true
			}
			missing[i] = true
		}
	}

	col := Column{
		name:    name,
		kind:    kind,
		length:  length,
		data:    data,
		missing: missing,
	}

	return &col, nil
}

// NewCategorical returns a categorical column holding the given level
// codes.  A negative code denotes a missing value, as does a true
// missing indicator.  Level labels must be distinct.
func NewCategorical(name string, codes []int, levels []string, missing []bool) (*Column, error) {

	n := len(codes)
	if missing != nil && len(missing) != n {
		return nil, fmt.Errorf("%w: column %q has %d values but %d missing indicators",
			ErrShape, name, n, len(missing))
	}

	seen := make(map[string]bool, len(levels))
	for _, l := range levels {
		if seen[l] {
			return nil, fmt.Errorf("%w: column %q has duplicate level %q", ErrShape, name, l)
		}
		seen[l] = true
	}

	cmiss := missing
	for i, c := range codes {
		if c >= len(levels) {
			return nil, fmt.Errorf("%w: column %q code %d at row %d exceeds %d levels",
				ErrShape, name, c, i, len(levels))
		}
		if c < 0 {
			if cmiss == nil {
				cmiss = make([]bool, n)
			}
			cmiss[i] = true
		}
	}

	col := Column{
		name:    name,
		kind:    Categorical,
		length:  n,
		data:    codes,
		levels:  append([]string(nil), levels...),
		missing: cmiss,
	}
	return &col, nil
}

// Numbers returns a numeric column.  NaN values are missing.
func Numbers(name string, values ...float64) *Column {
	col, _ := NewColumn(name, values, nil)
	return col
}

// Strings returns a text column with no missing values.
func Strings(name string, values ...string) *Column {
	col, _ := NewColumn(name, values, nil)
	return col
}

// Name returns the name of the column.
func (col *Column) Name() string {
	return col.name
}

// Rename returns a shallow copy of the column under a new name.
func (col *Column) Rename(name string) *Column {
	c := *col
	c.name = name
	return &c
}

// Kind returns the kind of values held in the column.
func (col *Column) Kind() Kind {
	return col.kind
}

// Len returns the number of elements in the column.
func (col *Column) Len() int {
	return col.length
}

// Data returns the data component of the column.
func (col *Column) Data() interface{} {
	return col.data
}

// Missing returns the array of missing value indicators, which may be
// nil.
func (col *Column) Missing() []bool {
	return col.missing
}

// Levels returns a copy of the level labels of a categorical column,
// or nil for other kinds.
func (col *Column) Levels() []string {
	if col.levels == nil {
		return nil
	}
	return append([]string(nil), col.levels...)
}

// IsMissing reports whether the value at row i is missing.
func (col *Column) IsMissing(i int) bool {
	return col.missing != nil && col.missing[i]
}

// Value returns the value at row i.
func (col *Column) Value(i int) Value {

	if col.IsMissing(i) {
		return MissingValue(col.kind)
	}

	v := Value{Kind: col.kind}
	switch d := col.data.(type) {
	case []float64:
		v.Num = d[i]
	case []string:
		v.Str = d[i]
	case []bool:
		v.Bool = d[i]
	case []int:
		v.Code = d[i]
		v.Str = col.levels[d[i]]
	case []time.Time:
		v.Time = d[i]
	}
	return v
}

// CountMissing returns the number of missing values in the column.
func (col *Column) CountMissing() int {

	m := 0
	for _, b := range col.missing {
		if b {
			m++
		}
	}

	return m
}

// Write writes the entire column to the given writer.
func (col *Column) Write(w io.Writer) error {
	return col.WriteRange(w, 0, col.length)
}

// WriteRange writes the given subinterval of the column to the given
// writer.  Missing values are written as an empty entry.
func (col *Column) WriteRange(w io.Writer, first, last int) error {

	if first < 0 || last > col.length || first > last {
		return fmt.Errorf("invalid range [%d, %d) for column of length %d", first, last, col.length)
	}

	if _, err := fmt.Fprintf(w, "Name: %s\nType: %s\n", col.name, col.kind); err != nil {
		return err
	}

	for j := first; j < last; j++ {
		var err error
		if col.IsMissing(j) {
			_, err = fmt.Fprintf(w, "%d:\n", j)
		} else {
			_, err = fmt.Fprintf(w, "%d:  %s\n", j, col.Value(j))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Print prints the entire column to the standard output.
func (col *Column) Print() error {
	return col.Write(os.Stdout)
}

// AllClose returns true, 0 if the column is within tol of the other
// column.  If the columns have different lengths, AllClose returns
// false, -1.  If the columns have different kinds, AllClose returns
// false, -2.  If the columns have the same kind and the same length
// but are not equal, AllClose returns false, j, where j is the index
// of the first position where the two columns differ.  Names are not
// compared.
func (col *Column) AllClose(other *Column, tol float64) (bool, int) {

	if col.length != other.length {
		return false, -1
	}
	if col.kind != other.kind {
		return false, -2
	}

	for i := 0; i < col.length; i++ {
		u, v := col.Value(i), other.Value(i)
		if u.Missing != v.Missing {
			return false, i
		}
		if u.Missing {
			continue
		}
		if col.kind == Numeric {
			if math.Abs(u.Num-v.Num) > tol {
				return false, i
			}
		} else if !u.Equal(v) {
			return false, i
		}
	}
	return true, 0
}

// AllEqual is equivalent to AllClose with tol=0.
func (col *Column) AllEqual(other *Column) (bool, int) {
	return col.AllClose(other, 0.0)
}

// copyMissing returns a copy of the missing mask with length n, all
// false when the column has no mask.
func (col *Column) copyMissing() []bool {

	cmiss := make([]bool, col.length)
	copy(cmiss, col.missing)
	return cmiss
}

// ForceNumeric converts text and categorical labels to numeric
// values, creating missing values where the conversion is not
// possible.  Other kinds are returned unchanged.
func (col *Column) ForceNumeric() *Column {

	if col.kind != Text && col.kind != Categorical {
		return col
	}

	n := col.length
	cmiss := col.copyMissing()
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		if cmiss[i] {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(col.Value(i).Str), 64)
		if err != nil {
			cmiss[i] = true
		} else {
			x[i] = v
		}
	}

	c, _ := NewColumn(col.name, x, cmiss)
	return c
}

// ToText returns a text column whose values are the formatted values
// of this column.  Missing values stay missing.
func (col *Column) ToText() *Column {

	if col.kind == Text {
		return col
	}

	n := col.length
	cmiss := col.copyMissing()
	x := make([]string, n)
	for i := 0; i < n; i++ {
		if !cmiss[i] {
			x[i] = col.Value(i).String()
		}
	}

	c, _ := NewColumn(col.name, x, cmiss)
	return c
}

// NullStringMissing returns a copy of a text column in which
// zero-length strings are treated as missing values.  If the method
// is applied to a column that is not of text kind, the column is
// returned unchanged.
func (col *Column) NullStringMissing() *Column {

	y, ok := col.data.([]string)
	if !ok {
		return col
	}

	cmiss := col.copyMissing()
	x := make([]string, len(y))
	copy(x, y)
	for i := range x {
		if len(x[i]) == 0 {
			cmiss[i] = true
		}
	}

	c, _ := NewColumn(col.name, x, cmiss)
	return c
}

// DateFromDuration returns a new timestamp column derived from
// numeric offsets relative to base.  The units may be "days",
// "hours" or "seconds".
func (col *Column) DateFromDuration(base time.Time, units string) (*Column, error) {

	td, ok := col.data.([]float64)
	if !ok {
		return nil, &TypeMismatchError{Column: col.name, Kind: col.kind, Op: "DateFromDuration"}
	}

	var unit time.Duration
	switch units {
	case "days":
		unit = 24 * time.Hour
	case "hours":
		unit = time.Hour
	case "seconds":
		unit = time.Second
	default:
		return nil, fmt.Errorf("unknown time unit %q", units)
	}

	cmiss := col.copyMissing()
	newdate := make([]time.Time, col.length)
	for i := range newdate {
		if !cmiss[i] {
			newdate[i] = base.Add(time.Duration(td[i] * float64(unit)))
		}
	}

	return NewColumn(col.name, newdate, cmiss)
}

// AsFloat64Slice returns the data of a numeric column as a float64
// slice, and a boolean slice for the missing value indicators.
func (col *Column) AsFloat64Slice() ([]float64, []bool, error) {

	v, ok := col.data.([]float64)
	if !ok {
		return nil, nil, fmt.Errorf("can't convert %s column %q to []float64", col.kind, col.name)
	}

	return v, col.missing, nil
}

// AsStringSlice returns the data of a text column as a string slice,
// and the missing data indicators.
func (col *Column) AsStringSlice() ([]string, []bool, error) {

	v, ok := col.data.([]string)
	if !ok {
		return nil, nil, fmt.Errorf("can't convert %s column %q to []string", col.kind, col.name)
	}

	return v, col.missing, nil
}

// take returns a new column holding the values at the given rows, in
// order.  A row index of -1 yields a missing value.
func (col *Column) take(rows []int) *Column {

	n := len(rows)
	cmiss := make([]bool, n)
	anyMiss := false
	for k, i := range rows {
		if i < 0 || col.IsMissing(i) {
			cmiss[k] = true
			anyMiss = true
		}
	}
	if !anyMiss {
		cmiss = nil
	}

	var data interface{}
	switch d := col.data.(type) {
	case []float64:
		data = gather(d, rows)
	case []string:
		data = gather(d, rows)
	case []bool:
		data = gather(d, rows)
	case []int:
		x := gather(d, rows)
		for k := range x {
			if cmiss != nil && cmiss[k] {
				x[k] = -1
			}
		}
		data = x
	case []time.Time:
		data = gather(d, rows)
	}

	c := Column{
		name:    col.name,
		kind:    col.kind,
		length:  n,
		data:    data,
		levels:  col.levels,
		missing: cmiss,
	}
	return &c
}

func gather[T any](x []T, rows []int) []T {
	y := make([]T, len(rows))
	for k, i := range rows {
		if i >= 0 {
			y[k] = x[i]
		}
	}
	return y
}

// columnFromValues builds a column of the given kind from values.
// For categorical columns, labels are coded against levels, and
// labels not found there are appended as new levels.
func columnFromValues(name string, kind Kind, levels []string, vals []Value) (*Column, error) {

	n := len(vals)
	cmiss := make([]bool, n)
	for i, v := range vals {
		if v.Kind != kind {
			return nil, &TypeMismatchError{Column: name, Kind: v.Kind, Op: "build " + kind.String() + " column"}
		}
		cmiss[i] = v.Missing
	}

	switch kind {
	case Numeric:
		x := make([]float64, n)
		for i, v := range vals {
			x[i] = v.Num
		}
		return NewColumn(name, x, cmiss)
	case Text:
		x := make([]string, n)
		for i, v := range vals {
			x[i] = v.Str
		}
		return NewColumn(name, x, cmiss)
	case Boolean:
		x := make([]bool, n)
		for i, v := range vals {
			x[i] = v.Bool
		}
		return NewColumn(name, x, cmiss)
	case Timestamp:
		x := make([]time.Time, n)
		for i, v := range vals {
			x[i] = v.Time
		}
		return NewColumn(name, x, cmiss)
	case Categorical:
		lev := append([]string(nil), levels...)
		codeOf := make(map[string]int, len(lev))
		for j, l := range lev {
			codeOf[l] = j
		}
		x := make([]int, n)
		for i, v := range vals {
			if v.Missing {
				x[i] = -1
				continue
			}
			c, ok := codeOf[v.Str]
			if !ok {
				c = len(lev)
				lev = append(lev, v.Str)
				codeOf[v.Str] = c
			}
			x[i] = c
		}
		return NewCategorical(name, x, lev, cmiss)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownType, kind)
}
