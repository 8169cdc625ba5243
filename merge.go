package tabular

// JoinType selects which rows Merge keeps.
type JoinType int

const (
	// InnerJoin keeps only pairs of rows whose keys match.
	InnerJoin JoinType = iota

	// LeftJoin also keeps left rows without a match, with missing
	// values in the right-hand columns.
	LeftJoin
)

// joinable reports whether key columns of kinds a and b can be
// matched.  Text and categorical columns match by label.
func joinable(a, b Kind) bool {

	if a == b {
		return true
	}
	lbl := func(k Kind) bool { return k == Text || k == Categorical }
	return lbl(a) && lbl(b)
}

// Merge joins two tables on the named key columns.  The output holds
// the key columns (taken from left), then the other left columns, then
// the other right columns; a non-key name present on both sides gets
// the suffix ".x" on the left and ".y" on the right.  Rows follow the
// left table, and for each left row its matches follow the right
// table.  Keys with a missing component never match.
func Merge(left, right *Table, on []string, how JoinType) (*Table, error) {

	if len(on) == 0 {
		return nil, ErrNoKeys
	}

	lkeys := make([]*Column, len(on))
	rkeys := make([]*Column, len(on))
	isKey := make(map[string]bool, len(on))
	for j, name := range on {
		var err error
		if lkeys[j], err = left.Column(name); err != nil {
			return nil, err
		}
		if rkeys[j], err = right.Column(name); err != nil {
			return nil, err
		}
		if !joinable(lkeys[j].Kind(), rkeys[j].Kind()) {
			return nil, &TypeMismatchError{Column: name, Kind: rkeys[j].Kind(), Op: "merge with " + lkeys[j].Kind().String() + " key"}
		}
		isKey[name] = true
	}

	// Index the right rows by key.
	index := make(map[string][]int)
	for i := 0; i < right.NumRows(); i++ {
		key := rowKey(rkeys, i)
		if key.hasMissing() {
			continue
		}
		enc := key.encode()
		index[enc] = append(index[enc], i)
	}

	var lrows, rrows []int
	for i := 0; i < left.NumRows(); i++ {
		key := rowKey(lkeys, i)
		var matches []int
		if !key.hasMissing() {
			matches = index[key.encode()]
		}
		if len(matches) == 0 {
			if how == LeftJoin {
				lrows = append(lrows, i)
				rrows = append(rrows, -1)
			}
			continue
		}
		for _, j := range matches {
			lrows = append(lrows, i)
			rrows = append(rrows, j)
		}
	}

	inRight := make(map[string]bool)
	for _, name := range right.Names() {
		if !isKey[name] {
			inRight[name] = true
		}
	}
	inLeft := make(map[string]bool)
	for _, name := range left.Names() {
		if !isKey[name] {
			inLeft[name] = true
		}
	}

	cols := make([]*Column, 0, left.NumColumns()+right.NumColumns()-len(on))
	for _, col := range lkeys {
		cols = append(cols, col.take(lrows))
	}
	for _, col := range left.columns {
		if isKey[col.name] {
			continue
		}
		c := col.take(lrows)
		if inRight[col.name] {
			c = c.Rename(col.name + ".x")
		}
		cols = append(cols, c)
	}
	for _, col := range right.columns {
		if isKey[col.name] {
			continue
		}
		c := col.take(rrows)
		if inLeft[col.name] {
			c = c.Rename(col.name + ".y")
		}
		cols = append(cols, c)
	}

	return NewTable(cols...)
}
