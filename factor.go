package tabular

import (
	"fmt"
	"slices"
)

// Factor returns a categorical column built from col.  The levels are
// matched against the formatted values of col (as Value.String
// formats them, so a numeric 1 matches "1"); values not among the
// levels become missing.  If levels is nil the sorted distinct
// non-missing values of col are used.  Labels, if not nil, rename the
// levels one to one.
func Factor(col *Column, levels, labels []string) (*Column, error) {

	if levels == nil {
		levels = observedLevels(col)
	}
	if labels == nil {
		labels = levels
	}
	if len(labels) != len(levels) {
		return nil, fmt.Errorf("%w: %d labels for %d levels of %q", ErrShape, len(labels), len(levels), col.name)
	}

	codeOf := make(map[string]int, len(levels))
	for j, l := range levels {
		if _, ok := codeOf[l]; ok {
			return nil, fmt.Errorf("%w: duplicate level %q for %q", ErrShape, l, col.name)
		}
		codeOf[l] = j
	}

	codes := make([]int, col.length)
	for i := range codes {
		codes[i] = -1
		if col.IsMissing(i) {
			continue
		}
		if c, ok := codeOf[col.Value(i).String()]; ok {
			codes[i] = c
		}
	}

	return NewCategorical(col.name, codes, labels, nil)
}

// observedLevels returns the distinct non-missing values of col as
// strings, in the sort order of the column's kind.
func observedLevels(col *Column) []string {

	var vals []Value
	seen := make(map[string]bool)
	for i := 0; i < col.length; i++ {
		v := col.Value(i)
		if v.Missing {
			continue
		}
		s := v.String()
		if !seen[s] {
			seen[s] = true
			vals = append(vals, v)
		}
	}
	slices.SortFunc(vals, compareValues)

	levels := make([]string, len(vals))
	for j, v := range vals {
		levels[j] = v.String()
	}
	return levels
}
