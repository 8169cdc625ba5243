package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mergeTables(t *testing.T) (*Table, *Table) {
	t.Helper()

	left := mustTable(t,
		mustColumn(t, "site", []string{"a", "b", "c", ""}, []bool{false, false, false, true}),
		Numbers("visit", 1, 2, 3, 4),
		Numbers("weight", 58, 60, 61, 70))

	site, err := NewCategorical("site", []int{0, 0, 1, -1}, []string{"a", "d"}, nil)
	require.NoError(t, err)
	right := mustTable(t,
		site,
		Numbers("weight", 10, 20, 30, 40),
		Strings("country", "UG", "KE", "TZ", "RW"))

	return left, right
}

func TestMergeInner(t *testing.T) {

	left, right := mergeTables(t)
	out, err := Merge(left, right, []string{"site"}, InnerJoin)
	require.NoError(t, err)

	expected := mustTable(t,
		Strings("site", "a", "a"),
		Numbers("visit", 1, 1),
		Numbers("weight.x", 58, 58),
		Numbers("weight.y", 10, 20),
		Strings("country", "UG", "KE"))
	assertTablesEqual(t, expected, out)
}

func TestMergeLeft(t *testing.T) {

	left, right := mergeTables(t)
	out, err := Merge(left, right, []string{"site"}, LeftJoin)
	require.NoError(t, err)

	expected := mustTable(t,
		mustColumn(t, "site", []string{"a", "a", "b", "c", ""}, []bool{false, false, false, false, true}),
		Numbers("visit", 1, 1, 2, 3, 4),
		Numbers("weight.x", 58, 58, 60, 61, 70),
		Numbers("weight.y", 10, 20, na, na, na),
		mustColumn(t, "country", []string{"UG", "KE", "", "", ""}, []bool{false, false, true, true, true}))
	assertTablesEqual(t, expected, out)
}

func TestMergeErrors(t *testing.T) {

	left, right := mergeTables(t)

	_, err := Merge(left, right, nil, InnerJoin)
	assert.ErrorIs(t, err, ErrNoKeys)

	_, err = Merge(left, right, []string{"visit"}, InnerJoin)
	assert.ErrorIs(t, err, ErrInvalidColumn)

	other := mustTable(t, Numbers("site", 1, 2, 3, 4))
	_, err = Merge(left, other, []string{"site"}, InnerJoin)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
