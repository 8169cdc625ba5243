package tabular

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies the type of values held by a Column.
type Kind int

const (
	// Numeric columns hold float64 values.
	Numeric Kind = iota

	// Text columns hold strings.
	Text

	// Boolean columns hold true/false values.
	Boolean

	// Categorical columns hold integer codes into a table of level labels.
	Categorical

	// Timestamp columns hold time.Time values.
	Timestamp
)

var kindNames = [...]string{"numeric", "text", "boolean", "categorical", "timestamp"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// A Value is a single cell of a Column.  Only the payload field that
// matches Kind is meaningful, and none of them are when Missing is
// true.
type Value struct {
	Kind    Kind
	Missing bool

	// Num holds a Numeric value.
	Num float64

	// Str holds a Text value, or the level label of a Categorical
	// value.
	Str string

	// Bool holds a Boolean value.
	Bool bool

	// Code is the level code of a Categorical value.
	Code int

	// Time holds a Timestamp value.
	Time time.Time
}

// NumberValue returns a Numeric value.
func NumberValue(x float64) Value {
	return Value{Kind: Numeric, Num: x}
}

// TextValue returns a Text value.
func TextValue(s string) Value {
	return Value{Kind: Text, Str: s}
}

// BoolValue returns a Boolean value.
func BoolValue(b bool) Value {
	return Value{Kind: Boolean, Bool: b}
}

// TimeValue returns a Timestamp value.
func TimeValue(t time.Time) Value {
	return Value{Kind: Timestamp, Time: t}
}

// MissingValue returns the missing value of the given kind.
func MissingValue(k Kind) Value {
	return Value{Kind: k, Missing: true, Code: -1}
}

// Equal reports whether two values are the same.  Values of different
// kinds are never equal, two missing values of the same kind are
// equal, timestamps compare by instant and categorical values compare
// by level label.
func (v Value) Equal(other Value) bool {

	if v.Kind != other.Kind || v.Missing != other.Missing {
		return false
	}
	if v.Missing {
		return true
	}

	switch v.Kind {
	case Numeric:
		return v.Num == other.Num
	case Text, Categorical:
		return v.Str == other.Str
	case Boolean:
		return v.Bool == other.Bool
	case Timestamp:
		return v.Time.Equal(other.Time)
	}
	return false
}

// String formats the value for display.  Missing values are shown as
// "NA".
func (v Value) String() string {

	if v.Missing {
		return "NA"
	}

	switch v.Kind {
	case Numeric:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case Text, Categorical:
		return v.Str
	case Boolean:
		return strconv.FormatBool(v.Bool)
	case Timestamp:
		return v.Time.Format(time.RFC3339)
	}
	return ""
}

// Float returns the value as a float64.  Booleans map to 0 and 1.  The
// second return is false for missing values and for kinds that have no
// numeric interpretation.
func (v Value) Float() (float64, bool) {

	if v.Missing {
		return 0, false
	}
	switch v.Kind {
	case Numeric:
		return v.Num, true
	case Boolean:
		if v.Bool {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// appendKey appends an encoding of v to b such that two values have
// the same encoding if and only if they are Equal, with Text and
// Categorical values sharing an encoding for equal labels.
func (v Value) appendKey(b []byte) []byte {

	if v.Missing {
		b = append(b, 'M')
		return strconv.AppendInt(b, int64(v.Kind), 10)
	}

	switch v.Kind {
	case Numeric:
		x := v.Num
		if x == 0 {
			x = 0 // fold -0
		}
		b = append(b, 'n')
		b = strconv.AppendFloat(b, x, 'g', -1, 64)
	case Text, Categorical:
		b = append(b, 's')
		b = strconv.AppendInt(b, int64(len(v.Str)), 10)
		b = append(b, ':')
		b = append(b, v.Str...)
	case Boolean:
		if v.Bool {
			b = append(b, "b1"...)
		} else {
			b = append(b, "b0"...)
		}
	case Timestamp:
		b = append(b, 't')
		b = v.Time.UTC().AppendFormat(b, time.RFC3339Nano)
	}
	return b
}

// compareValues orders two values of the same kind: numbers
// ascending, text lexicographically, false before true, categorical
// values by level code and timestamps chronologically.  Missing values
// sort after everything else.
func compareValues(a, b Value) int {

	switch {
	case a.Missing && b.Missing:
		return 0
	case a.Missing:
		return 1
	case b.Missing:
		return -1
	}

	switch a.Kind {
	case Numeric:
		return cmpOrdered(a.Num, b.Num)
	case Text:
		return strings.Compare(a.Str, b.Str)
	case Boolean:
		switch {
		case a.Bool == b.Bool:
			return 0
		case b.Bool:
			return -1
		default:
			return 1
		}
	case Categorical:
		return cmpOrdered(a.Code, b.Code)
	case Timestamp:
		return a.Time.Compare(b.Time)
	}
	return 0
}

func cmpOrdered[T int | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
