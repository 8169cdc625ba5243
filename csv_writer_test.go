package tabular

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {

	date := mustColumn(t, "init.date",
		[]time.Time{time.Date(2003, 7, 1, 0, 0, 0, 0, time.UTC), {}},
		[]bool{false, true})

	tbl := mustTable(t,
		Strings("reg", "3TC,AZT,NVP", "EFV"),
		Numbers("weight", 58.5, na),
		mustColumn(t, "death", []bool{true, false}, nil),
		date)

	var buf strings.Builder
	require.NoError(t, WriteCSV(tbl, &buf))

	expected := "reg,weight,death,init.date\n" +
		"\"3TC,AZT,NVP\",58.5,true,2003-07-01T00:00:00Z\n" +
		"EFV,,false,\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteCSVRoundTrip(t *testing.T) {

	orig, err := NewCSVReader(openTestFile(t, "haart.csv")).Read(-1)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, WriteCSV(orig, &buf))

	again := NewCSVReader(strings.NewReader(buf.String()))
	again.NAValues = []string{""}
	back, err := again.Read(-1)
	require.NoError(t, err)
	assert.Equal(t, orig.Names(), back.Names())
	assert.Equal(t, orig.NumRows(), back.NumRows())

	w1, _ := orig.Column("weight")
	w2, _ := back.Column("weight")
	assertColumnsEqual(t, w1, w2)
}
