package tabular

import (
	"math"
	"slices"
)

// A Reducer summarizes the target values of one group into a single
// value of type T.
type Reducer[T any] interface {

	// Name identifies the reducer in errors and logs.
	Name() string

	// Accepts reports whether the reducer can consume values of
	// kind k.
	Accepts(k Kind) bool

	// Reduce is called once per group, possibly with an empty
	// slice.  Missing values are present unless they were skipped.
	Reduce(values []Value) (T, error)
}

type funcReducer[T any] struct {
	name  string
	kinds []Kind
	f     func([]Value) (T, error)
}

func (r *funcReducer[T]) Name() string { return r.name }

func (r *funcReducer[T]) Accepts(k Kind) bool {
	return len(r.kinds) == 0 || slices.Contains(r.kinds, k)
}

func (r *funcReducer[T]) Reduce(values []Value) (T, error) {
	return r.f(values)
}

// ReducerFunc returns a Reducer that calls f.  If kinds is empty the
// reducer accepts every kind.
func ReducerFunc[T any](name string, f func([]Value) (T, error), kinds ...Kind) Reducer[T] {
	return &funcReducer[T]{name: name, kinds: kinds, f: f}
}

// Float64Reducer returns a Reducer for numeric and boolean columns
// that hands f the values as float64, with missing values as NaN and
// booleans as 0 or 1.
func Float64Reducer[T any](name string, f func([]float64) (T, error)) Reducer[T] {

	return ReducerFunc(name, func(values []Value) (T, error) {
		x := make([]float64, len(values))
		for i, v := range values {
			fv, ok := v.Float()
			if !ok {
				fv = math.NaN()
			}
			x[i] = fv
		}
		return f(x)
	}, Numeric, Boolean)
}

type nonEmpty[T any] struct {
	Reducer[T]
}

func (r nonEmpty[T]) Reduce(values []Value) (T, error) {
	if len(values) == 0 {
		var zero T
		return zero, ErrEmptyGroup
	}
	return r.Reducer.Reduce(values)
}

// NonEmpty wraps r so that reducing an empty group fails with
// ErrEmptyGroup instead of producing r's empty-input result.
func NonEmpty[T any](r Reducer[T]) Reducer[T] {
	return nonEmpty[T]{r}
}

// The numeric reducers below return NaN when any input is NaN, which
// happens when missing values are not skipped.  Apart from Sum, they
// also return NaN for an empty group.
var (
	Mean   = Float64Reducer("mean", mean)
	Sum    = Float64Reducer("sum", sum)
	Min    = Float64Reducer("min", minimum)
	Max    = Float64Reducer("max", maximum)
	Median = Float64Reducer("median", median)
	Var    = Float64Reducer("var", variance)
	SD     = Float64Reducer("sd", sd)

	// Count is the number of non-missing values of any kind.
	Count = ReducerFunc("count", func(values []Value) (int, error) {
		n := 0
		for _, v := range values {
			if !v.Missing {
				n++
			}
		}
		return n, nil
	})

	// Length is the number of values of any kind, missing or not.
	Length = ReducerFunc("length", func(values []Value) (int, error) {
		return len(values), nil
	})
)

func mean(x []float64) (float64, error) {
	if len(x) == 0 {
		return math.NaN(), nil
	}
	s, _ := sum(x)
	return s / float64(len(x)), nil
}

func sum(x []float64) (float64, error) {
	s := 0.0
	for _, v := range x {
		s += v
	}
	return s, nil
}

func minimum(x []float64) (float64, error) {
	if len(x) == 0 || slices.ContainsFunc(x, math.IsNaN) {
		return math.NaN(), nil
	}
	return slices.Min(x), nil
}

func maximum(x []float64) (float64, error) {
	if len(x) == 0 || slices.ContainsFunc(x, math.IsNaN) {
		return math.NaN(), nil
	}
	return slices.Max(x), nil
}

func median(x []float64) (float64, error) {
	if len(x) == 0 || slices.ContainsFunc(x, math.IsNaN) {
		return math.NaN(), nil
	}
	y := slices.Clone(x)
	slices.Sort(y)
	m := len(y) / 2
	if len(y)%2 == 1 {
		return y[m], nil
	}
	return (y[m-1] + y[m]) / 2, nil
}

func variance(x []float64) (float64, error) {
	var w welford
	for _, v := range x {
		w.update(v)
	}
	return w.sampleVariance(), nil
}

func sd(x []float64) (float64, error) {
	var w welford
	for _, v := range x {
		w.update(v)
	}
	return w.sd(), nil
}
