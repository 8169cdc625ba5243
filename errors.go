package tabular

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidColumn is matched by errors.Is for every
	// InvalidColumnError.
	ErrInvalidColumn = errors.New("invalid column")

	// ErrTypeMismatch is matched by errors.Is for every
	// TypeMismatchError.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrReduce is matched by errors.Is for every ReduceError.
	ErrReduce = errors.New("reduction failed")

	// ErrEmptyGroup is returned by NonEmpty reducers when a group
	// has no values left to reduce.
	ErrEmptyGroup = errors.New("empty group")

	// ErrNoKeys is returned when grouping or merging without any
	// key columns.
	ErrNoKeys = errors.New("no key columns")

	// ErrShape is returned when columns or masks have inconsistent
	// lengths, or names collide.
	ErrShape = errors.New("inconsistent shape")

	// ErrUnknownType is returned for data or type names that cannot
	// back a column.
	ErrUnknownType = errors.New("unknown data type")
)

// An InvalidColumnError reports a column name that is not in the
// table.
type InvalidColumnError struct {
	Column string
}

func (e *InvalidColumnError) Error() string {
	return fmt.Sprintf("invalid column %q: not in table", e.Column)
}

func (e *InvalidColumnError) Is(target error) bool {
	return target == ErrInvalidColumn
}

// A TypeMismatchError reports an operation that cannot consume the
// kind of values held in a column.
type TypeMismatchError struct {
	Column string
	Kind   Kind
	Op     string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: %s cannot use %s column %q", e.Op, e.Kind, e.Column)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// A ReduceError wraps an error raised by a reducer for one group.
type ReduceError struct {
	Columns []string
	Key     GroupKey
	Err     error
}

func (e *ReduceError) Error() string {
	return fmt.Sprintf("reduce group %s=%s: %v", strings.Join(e.Columns, ","), e.Key, e.Err)
}

func (e *ReduceError) Is(target error) bool {
	return target == ErrReduce
}

func (e *ReduceError) Unwrap() error {
	return e.Err
}
