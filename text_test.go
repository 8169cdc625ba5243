package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextCase(t *testing.T) {

	drug := mustColumn(t, "drug", []string{"zidovudine", "Efavirenz", ""}, []bool{false, false, true})

	up, err := Upper(drug)
	require.NoError(t, err)
	assert.Equal(t, "ZIDOVUDINE", up.Value(0).Str)
	assert.True(t, up.IsMissing(2))

	low, err := Lower(drug)
	require.NoError(t, err)
	assert.Equal(t, "efavirenz", low.Value(1).Str)

	title, err := Title(drug)
	require.NoError(t, err)
	assert.Equal(t, "Zidovudine", title.Value(0).Str)

	trim, err := TrimSpace(Strings("x", "  a b "))
	require.NoError(t, err)
	assert.Equal(t, "a b", trim.Value(0).Str)
}

func TestTextCategorical(t *testing.T) {

	reg, err := NewCategorical("reg", []int{0, 1, -1}, []string{"efv", "nvp"}, nil)
	require.NoError(t, err)

	up, err := Upper(reg)
	require.NoError(t, err)
	assert.Equal(t, Categorical, up.Kind())
	assert.Equal(t, []string{"EFV", "NVP"}, up.Levels())
	assert.Equal(t, "NVP", up.Value(1).Str)
	assert.True(t, up.IsMissing(2))

	// Labels that collide are rejected.
	_, err = reg.MapText(func(string) string { return "same" })
	assert.ErrorIs(t, err, ErrShape)
}

func TestTextOtherKinds(t *testing.T) {

	num := Numbers("x", 1, 2)
	up, err := Upper(num)
	require.NoError(t, err)
	assert.Same(t, num, up)
}
