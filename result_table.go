package tabular

import (
	"slices"
	"time"
)

// A Number is a type ResultTable can store in a numeric column.
type Number interface {
	~float64 | ~float32 | ~int | ~int64 | ~int32
}

// ResultTable lays out a result as a table with one row per group, in
// result order: one column per grouping column, with that column's
// name and kind, followed by a numeric column named valueName.
func ResultTable[T Number](res *Result[T], valueName string) (*Table, error) {

	cols := make([]*Column, 0, len(res.columns)+1)
	for j, name := range res.columns {
		vals := make([]Value, len(res.groups))
		for gi, g := range res.groups {
			vals[gi] = g.Key[j]
		}
		col, err := columnFromValues(name, res.kinds[j], res.levels[j], vals)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}

	x := make([]float64, len(res.groups))
	for gi, g := range res.groups {
		x[gi] = float64(g.Value)
	}
	val, err := NewColumn(valueName, x, nil)
	if err != nil {
		return nil, err
	}
	cols = append(cols, val)

	return NewTable(cols...)
}

// toValue converts a plain Go value to a Value of the given kind.
func toValue(c interface{}, kind Kind, levels []string) (Value, bool) {

	if c == nil {
		return MissingValue(kind), true
	}

	var v Value
	switch x := c.(type) {
	case Value:
		return x, x.Kind == kind
	case float64:
		v = NumberValue(x)
	case float32:
		v = NumberValue(float64(x))
	case int:
		v = NumberValue(float64(x))
	case int64:
		v = NumberValue(float64(x))
	case int32:
		v = NumberValue(float64(x))
	case string:
		v = TextValue(x)
	case bool:
		v = BoolValue(x)
	case time.Time:
		v = TimeValue(x)
	default:
		return Value{}, false
	}

	if kind == Categorical && v.Kind == Text {
		code := slices.Index(levels, v.Str)
		if code < 0 {
			return Value{}, false
		}
		return Value{Kind: Categorical, Code: code, Str: v.Str}, true
	}
	return v, v.Kind == kind
}
