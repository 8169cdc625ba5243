package tabular

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestFile(t *testing.T, name string) *os.File {
	t.Helper()
	file, err := os.Open(filepath.Join("test_files", "data", name))
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })
	return file
}

func mustColumn(t *testing.T, name string, data interface{}, missing []bool) *Column {
	t.Helper()
	col, err := NewColumn(name, data, missing)
	require.NoError(t, err)
	return col
}

func assertTablesEqual(t *testing.T, want, got *Table) {
	t.Helper()
	ok, j, i := got.AllEqual(want)
	assert.True(t, ok, "tables differ at column %d, row %d", j, i)
}

func TestCSV1(t *testing.T) {

	rdr := NewCSVReader(openTestFile(t, "testcsv1.csv"))
	data, err := rdr.Read(-1)
	require.NoError(t, err)

	expected := mustTable(t,
		Numbers("Var1", 1, 4, 7),
		Numbers("Var2", 2, 5, 8),
		Numbers("Var3", 3, 6, 9))
	assertTablesEqual(t, expected, data)
}

func TestCSV2(t *testing.T) {

	rdr := NewCSVReader(openTestFile(t, "testcsv2.csv"))
	rdr.HasHeader = false
	data, err := rdr.Read(-1)
	require.NoError(t, err)

	expected := mustTable(t,
		Strings("Column 1", "a", "1", "4", "7"),
		Strings("Column 2", "b", "2", "5", "8"),
		Strings("Column 3", "c", "3", "6", "9"))
	assertTablesEqual(t, expected, data)
}

func TestCSV3(t *testing.T) {

	rdr := NewCSVReader(openTestFile(t, "testcsv2.csv"))
	rdr.HasHeader = false
	rdr.SkipRows = 2
	data, err := rdr.Read(-1)
	require.NoError(t, err)

	expected := mustTable(t,
		Numbers("Column 1", 4, 7),
		Numbers("Column 2", 5, 8),
		Numbers("Column 3", 6, 9))
	assertTablesEqual(t, expected, data)
}

func TestCSV4(t *testing.T) {

	rdr := NewCSVReader(openTestFile(t, "testcsv2.csv"))
	rdr.HasHeader = false
	rdr.TypeHintsName = map[string]string{
		"Column 1": TypeFloat64,
		"Column 2": TypeFloat64,
		"Column 3": TypeFloat64}

	data, err := rdr.Read(-1)
	require.NoError(t, err)

	expected := mustTable(t,
		Numbers("Column 1", na, 1, 4, 7),
		Numbers("Column 2", na, 2, 5, 8),
		Numbers("Column 3", na, 3, 6, 9))
	assertTablesEqual(t, expected, data)
}

func TestCSVHaart(t *testing.T) {

	rdr := NewCSVReader(openTestFile(t, "haart.csv"))
	rdr.TypeHintsName = map[string]string{"init.date": TypeTimestamp}
	data, err := rdr.Read(-1)
	require.NoError(t, err)

	assert.Equal(t, 8, data.NumRows())
	assert.Equal(t, []string{TypeFloat64, TypeFloat64, TypeFloat64, TypeFloat64, TypeFloat64,
		TypeFloat64, TypeFloat64, TypeString, TypeTimestamp, TypeBool}, rdr.DataTypes)

	weight, err := data.Column("weight")
	require.NoError(t, err)
	assert.Equal(t, 2, weight.CountMissing())

	reg, _ := data.Column("init.reg")
	assert.Equal(t, "3TC,AZT,NVP", reg.Value(2).Str)

	date, _ := data.Column("init.date")
	assert.Equal(t, Timestamp, date.Kind())
	assert.True(t, date.Value(0).Time.Equal(time.Date(2003, 7, 1, 0, 0, 0, 0, time.UTC)))

	death, _ := data.Column("death")
	assert.Equal(t, Boolean, death.Kind())
	assert.True(t, death.Value(2).Bool)

	_, err = rdr.Read(-1)
	assert.ErrorIs(t, err, io.EOF)
}

func TestCSVChunks(t *testing.T) {

	rdr := NewCSVReader(openTestFile(t, "haart.csv"))

	var sizes []int
	for {
		chunk, err := rdr.Read(3)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		sizes = append(sizes, chunk.NumRows())
	}
	assert.Equal(t, []int{3, 3, 2}, sizes)

	all, err := ReadAll(NewCSVReader(openTestFile(t, "haart.csv")), 3)
	require.NoError(t, err)
	whole, err := NewCSVReader(openTestFile(t, "haart.csv")).Read(-1)
	require.NoError(t, err)
	assertTablesEqual(t, whole, all)
}

func TestCSVMissingAndRagged(t *testing.T) {

	src := "id,score,note\n1,NA,x\n2,3.5\n3,oops,\n"
	rdr := NewCSVReader(strings.NewReader(src))
	rdr.TypeHintsName = map[string]string{"score": TypeFloat64}
	data, err := rdr.Read(-1)
	require.NoError(t, err)

	expected := mustTable(t,
		Numbers("id", 1, 2, 3),
		Numbers("score", na, 3.5, na),
		mustColumn(t, "note", []string{"x", "", ""}, []bool{false, true, true}))
	assertTablesEqual(t, expected, data)
}

func TestCSVHeaderOnly(t *testing.T) {

	rdr := NewCSVReader(strings.NewReader("a,b\n"))
	data, err := rdr.Read(-1)
	require.NoError(t, err)
	assert.Equal(t, 0, data.NumRows())
	assert.Equal(t, []string{"a", "b"}, data.Names())

	_, err = rdr.Read(-1)
	assert.ErrorIs(t, err, io.EOF)
}

func TestCSVErrors(t *testing.T) {

	_, err := NewCSVReader(strings.NewReader("")).Read(-1)
	assert.Error(t, err)

	rdr := NewCSVReader(strings.NewReader("a\n1\n"))
	rdr.TypeHintsPos = []string{"int"}
	_, err = rdr.Read(-1)
	assert.ErrorIs(t, err, ErrUnknownType)
}
