package tabular

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColumn(t *testing.T) {

	col, err := NewColumn("age", []int64{25, 49, 42}, nil)
	require.NoError(t, err)
	assert.Equal(t, Numeric, col.Kind())
	x, miss, err := col.AsFloat64Slice()
	require.NoError(t, err)
	assert.Equal(t, []float64{25, 49, 42}, x)
	assert.Nil(t, miss)

	_, err = NewColumn("bad", []complex128{1}, nil)
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = NewColumn("short", []string{"a", "b"}, []bool{true})
	assert.ErrorIs(t, err, ErrShape)

	// NaN is missing, and the caller's mask is left alone.
	mask := []bool{false, false}
	col, err = NewColumn("w", []float64{1, math.NaN()}, mask)
	require.NoError(t, err)
	assert.True(t, col.IsMissing(1))
	assert.Equal(t, []bool{false, false}, mask)
	assert.Equal(t, 1, col.CountMissing())
	assert.Equal(t, 0, Strings("s", "a").CountMissing())
}

func TestNewCategorical(t *testing.T) {

	col, err := NewCategorical("male", []int{1, -1, 0}, []string{"female", "male"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "male", col.Value(0).Str)
	assert.True(t, col.Value(1).Missing)
	assert.Equal(t, 0, col.Value(2).Code)

	_, err = NewCategorical("male", []int{2}, []string{"female", "male"}, nil)
	assert.ErrorIs(t, err, ErrShape)
	_, err = NewCategorical("male", []int{0}, []string{"x", "x"}, nil)
	assert.ErrorIs(t, err, ErrShape)
}

func TestColumnAllClose(t *testing.T) {

	a := Numbers("x", 1, 2, math.NaN())
	b := Numbers("y", 1, 2.05, math.NaN())

	ok, i := a.AllClose(b, 0.1)
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	ok, i = a.AllEqual(b)
	assert.False(t, ok)
	assert.Equal(t, 1, i)

	ok, i = a.AllEqual(Numbers("x", 1, 2))
	assert.False(t, ok)
	assert.Equal(t, -1, i)

	ok, i = a.AllEqual(Strings("x", "1", "2", "3"))
	assert.False(t, ok)
	assert.Equal(t, -2, i)

	ok, i = a.AllEqual(Numbers("x", 1, 2, 3))
	assert.False(t, ok)
	assert.Equal(t, 2, i)
}

func TestColumnConversions(t *testing.T) {

	txt := mustColumn(t, "cd4", []string{"178", " 9 ", "n/a", ""}, []bool{false, false, false, true})

	num := txt.ForceNumeric()
	assertColumnsEqual(t, Numbers("cd4", 178, 9, na, na), num)

	back := num.ToText()
	assert.Equal(t, Text, back.Kind())
	assert.Equal(t, "178", back.Value(0).Str)
	assert.True(t, back.IsMissing(2))

	blank := Strings("reg", "EFV", "", "NVP").NullStringMissing()
	assert.Equal(t, []bool{false, true, false}, blank.Missing())

	// Non-text columns pass through.
	assert.Same(t, num, num.ForceNumeric())
	assert.Same(t, num, num.NullStringMissing())
}

func TestDateFromDuration(t *testing.T) {

	base := time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC)
	days := Numbers("followup", 0, 366, na)

	dates, err := days.DateFromDuration(base, "days")
	require.NoError(t, err)
	assert.Equal(t, Timestamp, dates.Kind())
	assert.True(t, dates.Value(1).Time.Equal(time.Date(1961, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, dates.IsMissing(2))

	_, err = days.DateFromDuration(base, "fortnights")
	assert.Error(t, err)

	_, err = Strings("s", "1").DateFromDuration(base, "days")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestColumnWrite(t *testing.T) {

	var buf bytes.Buffer
	require.NoError(t, Numbers("weight", 58, na).Write(&buf))
	assert.Equal(t, "Name: weight\nType: numeric\n0:  58\n1:\n", buf.String())

	assert.Error(t, Numbers("x", 1).WriteRange(&buf, 0, 2))
}

func assertColumnsEqual(t *testing.T, want, got *Column) {
	t.Helper()
	ok, i := got.AllEqual(want)
	assert.True(t, ok, "columns differ at %d", i)
	assert.Equal(t, want.Name(), got.Name())
}
