package tabular

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MapText applies f to every non-missing value of a text column, or to
// the level labels of a categorical column, and returns the result.
// Other kinds are returned unchanged.  For categorical columns f must
// keep distinct labels distinct.
func (col *Column) MapText(f func(string) string) (*Column, error) {

	switch x := col.data.(type) {
	case []string:
		y := make([]string, len(x))
		for i, v := range x {
			if !col.IsMissing(i) {
				y[i] = f(v)
			}
		}
		return NewColumn(col.name, y, col.copyMissing())
	case []int:
		levels := make([]string, len(col.levels))
		for j, l := range col.levels {
			levels[j] = f(l)
		}
		return NewCategorical(col.name, x, levels, col.missing)
	}
	return col, nil
}

// Upper converts text to upper case.
func Upper(col *Column) (*Column, error) {
	return col.MapText(cases.Upper(language.Und).String)
}

// Lower converts text to lower case.
func Lower(col *Column) (*Column, error) {
	return col.MapText(cases.Lower(language.Und).String)
}

// Title converts text to title case, e.g. "zidovudine" to "Zidovudine".
func Title(col *Column) (*Column, error) {
	return col.MapText(cases.Title(language.Und).String)
}

// TrimSpace removes leading and trailing white space.
func TrimSpace(col *Column) (*Column, error) {
	return col.MapText(strings.TrimSpace)
}
