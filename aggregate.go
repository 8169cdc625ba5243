package tabular

import (
	"errors"
	"slices"

	"go.uber.org/zap"
)

// MissingKeyPolicy controls what happens to rows whose grouping key
// has a missing component.
type MissingKeyPolicy int

const (
	// ExcludeMissingKeys drops rows with a missing key component.
	ExcludeMissingKeys MissingKeyPolicy = iota

	// KeepMissingKeys groups rows with missing key components like
	// any other value; missing equals missing.
	KeepMissingKeys
)

// KeyOrder controls the order of groups in a Result.
type KeyOrder int

const (
	// SortedOrder sorts keys component by component; see
	// compareValues for the order within each kind.  Missing
	// components sort last.
	SortedOrder KeyOrder = iota

	// FirstSeenOrder keeps keys in order of their first row.
	FirstSeenOrder
)

// Options configure AggregateWith.  The zero value skips nothing,
// excludes missing keys, sorts keys and runs serially.
type Options struct {

	// If true, missing target values are removed from each group
	// before reduction.
	SkipMissing bool

	MissingKeys MissingKeyPolicy

	Order KeyOrder

	// Executor runs the per-group reductions.  Nil means Serial.
	Executor Executor

	// Logger receives debug events.  Nil means no logging.
	Logger *zap.Logger
}

func (opts *Options) executor() Executor {
	if opts.Executor == nil {
		return Serial{}
	}
	return opts.Executor
}

func (opts *Options) logger() *zap.Logger {
	if opts.Logger == nil {
		return zap.NewNop()
	}
	return opts.Logger
}

// A Group is one partition of an aggregation: its key, the table rows
// it holds in ascending order, and the reducer output.
type Group[T any] struct {
	Key   GroupKey
	Rows  []int
	Value T
}

// A Result maps each observed grouping key to the reduction of its
// group.  Keys with no rows are never present.
type Result[T any] struct {
	columns []string
	kinds   []Kind
	levels  [][]string
	groups  []Group[T]
	index   map[string]int
}

// Aggregate partitions the rows of tbl by the values of the group
// columns and reduces the target column within each partition.  If
// skipMissing is true, missing target values are dropped before
// reduction.  Rows with a missing grouping value are excluded and
// groups are returned in sorted key order.
func Aggregate[T any](tbl *Table, target string, groups []string, reducer Reducer[T], skipMissing bool) (*Result[T], error) {
	return AggregateWith(tbl, target, groups, reducer, Options{SkipMissing: skipMissing})
}

// AggregateWith is like Aggregate with full control over the options.
//
// The composite key of a row is the tuple of its values in the group
// columns; two rows share a group only if all components are equal.
// The reducer is called once per group, also when SkipMissing leaves
// the group empty, and its output is stored unchanged.  A reducer
// error is returned as a *ReduceError for the first failing group in
// result order.
func AggregateWith[T any](tbl *Table, target string, groups []string, reducer Reducer[T], opts Options) (*Result[T], error) {

	if tbl == nil {
		return nil, errors.New("aggregate: nil table")
	}
	if len(groups) == 0 {
		return nil, ErrNoKeys
	}

	tcol, err := tbl.Column(target)
	if err != nil {
		return nil, err
	}
	keyCols := make([]*Column, len(groups))
	for j, name := range groups {
		if keyCols[j], err = tbl.Column(name); err != nil {
			return nil, err
		}
	}
	if !reducer.Accepts(tcol.Kind()) {
		return nil, &TypeMismatchError{Column: target, Kind: tcol.Kind(), Op: reducer.Name()}
	}

	log := opts.logger()

	res := newResult[T](groups, keyCols)
	excluded := res.partition(keyCols, tbl.NumRows(), opts.MissingKeys)
	if opts.Order == SortedOrder {
		res.sort()
	}

	log.Debug("partitioned table",
		zap.String("target", target),
		zap.Strings("groups", groups),
		zap.Int("rows", tbl.NumRows()),
		zap.Int("partitions", len(res.groups)),
		zap.Int("excluded", excluded))

	err = opts.executor().Run(len(res.groups), func(i int) error {
		g := &res.groups[i]
		values := make([]Value, 0, len(g.Rows))
		for _, r := range g.Rows {
			v := tcol.Value(r)
			if v.Missing && opts.SkipMissing {
				continue
			}
			values = append(values, v)
		}
		out, err := reducer.Reduce(values)
		if err != nil {
			return &ReduceError{Columns: res.Columns(), Key: g.Key, Err: err}
		}
		g.Value = out
		return nil
	})
	if err != nil {
		log.Debug("reduction failed", zap.String("reducer", reducer.Name()), zap.Error(err))
		return nil, err
	}

	return res, nil
}

func newResult[T any](names []string, keyCols []*Column) *Result[T] {

	res := &Result[T]{
		columns: append([]string(nil), names...),
		kinds:   make([]Kind, len(keyCols)),
		levels:  make([][]string, len(keyCols)),
		index:   make(map[string]int),
	}
	for j, col := range keyCols {
		res.kinds[j] = col.Kind()
		res.levels[j] = col.levels
	}
	return res
}

// partition assigns each row to the group of its key, in first-seen
// order, and returns the number of rows dropped for missing keys.
func (res *Result[T]) partition(keyCols []*Column, nrows int, policy MissingKeyPolicy) int {

	excluded := 0
	for i := 0; i < nrows; i++ {
		key := rowKey(keyCols, i)
		if policy == ExcludeMissingKeys && key.hasMissing() {
			excluded++
			continue
		}
		enc := key.encode()
		gi, ok := res.index[enc]
		if !ok {
			gi = len(res.groups)
			res.index[enc] = gi
			res.groups = append(res.groups, Group[T]{Key: key})
		}
		res.groups[gi].Rows = append(res.groups[gi].Rows, i)
	}
	return excluded
}

func (res *Result[T]) sort() {

	slices.SortFunc(res.groups, func(a, b Group[T]) int {
		return compareKeys(a.Key, b.Key)
	})
	for gi, g := range res.groups {
		res.index[g.Key.encode()] = gi
	}
}

// Columns returns the names of the grouping columns.
func (res *Result[T]) Columns() []string {
	return append([]string(nil), res.columns...)
}

// Len returns the number of groups.
func (res *Result[T]) Len() int {
	return len(res.groups)
}

// Keys returns the group keys in result order.
func (res *Result[T]) Keys() []GroupKey {

	keys := make([]GroupKey, len(res.groups))
	for gi, g := range res.groups {
		keys[gi] = slices.Clone(g.Key)
	}
	return keys
}

// Groups returns copies of all groups in result order.
func (res *Result[T]) Groups() []Group[T] {

	out := make([]Group[T], len(res.groups))
	for gi, g := range res.groups {
		out[gi] = Group[T]{
			Key:   slices.Clone(g.Key),
			Rows:  slices.Clone(g.Rows),
			Value: g.Value,
		}
	}
	return out
}

// Each calls fn for every group in result order.
func (res *Result[T]) Each(fn func(key GroupKey, value T)) {
	for _, g := range res.groups {
		fn(slices.Clone(g.Key), g.Value)
	}
}

// Lookup returns the value stored for key.
func (res *Result[T]) Lookup(key GroupKey) (T, bool) {

	gi, ok := res.index[key.encode()]
	if !ok || !res.groups[gi].Key.Equal(key) {
		var zero T
		return zero, false
	}
	return res.groups[gi].Value, true
}

// Rows returns the table rows of the group with the given key, or nil.
func (res *Result[T]) Rows(key GroupKey) []int {

	gi, ok := res.index[key.encode()]
	if !ok || !res.groups[gi].Key.Equal(key) {
		return nil
	}
	return slices.Clone(res.groups[gi].Rows)
}

// Get looks up a group by plain Go values, one per grouping column.
// Numbers (any int or float type) match numeric components, strings
// match text components and categorical labels, bools match boolean
// components, time.Time matches timestamps and nil matches a missing
// component.  A Value is used as is.
func (res *Result[T]) Get(components ...interface{}) (T, bool) {

	var zero T
	if len(components) != len(res.kinds) {
		return zero, false
	}

	key := make(GroupKey, len(components))
	for j, c := range components {
		v, ok := toValue(c, res.kinds[j], res.levels[j])
		if !ok {
			return zero, false
		}
		key[j] = v
	}
	return res.Lookup(key)
}
