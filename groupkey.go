package tabular

import (
	"strings"
)

// A GroupKey is the tuple of grouping-column values shared by the
// rows of one group, in grouping-column order.
type GroupKey []Value

// Equal reports whether all components of the two keys are equal.
func (k GroupKey) Equal(other GroupKey) bool {

	if len(k) != len(other) {
		return false
	}
	for j := range k {
		if !k[j].Equal(other[j]) {
			return false
		}
	}
	return true
}

// String formats a single-component key as its value and a composite
// key as a parenthesized tuple, e.g. "(1, 0)".
func (k GroupKey) String() string {

	if len(k) == 1 {
		return k[0].String()
	}

	parts := make([]string, len(k))
	for j, v := range k {
		parts[j] = v.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (k GroupKey) hasMissing() bool {
	for _, v := range k {
		if v.Missing {
			return true
		}
	}
	return false
}

// encode returns a string that is identical for two keys if and only
// if the keys are Equal.  It is used as the map key of a partition.
func (k GroupKey) encode() string {

	b := make([]byte, 0, 16*len(k))
	for _, v := range k {
		b = v.appendKey(b)
		b = append(b, 0x1f)
	}
	return string(b)
}

// compareKeys orders keys component by component.
func compareKeys(a, b GroupKey) int {

	for j := range a {
		if c := compareValues(a[j], b[j]); c != 0 {
			return c
		}
	}
	return 0
}

// rowKey reads the key of row i from the key columns.
func rowKey(cols []*Column, i int) GroupKey {

	key := make(GroupKey, len(cols))
	for j, col := range cols {
		key[j] = col.Value(i)
	}
	return key
}
