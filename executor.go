package tabular

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// An Executor runs n independent tasks, identified by their index.
// Run returns the error of the lowest-indexed failing task, or nil.
type Executor interface {
	Run(n int, task func(i int) error) error
}

// Serial runs tasks one after another on the calling goroutine,
// stopping at the first failure.
type Serial struct{}

// Run implements Executor.
func (Serial) Run(n int, task func(i int) error) error {

	for i := 0; i < n; i++ {
		if err := task(i); err != nil {
			return err
		}
	}
	return nil
}

// Parallel runs tasks on at most Workers goroutines.  If Workers is
// not positive, GOMAXPROCS goroutines are used.  All tasks run even if
// some fail, so that the returned error does not depend on scheduling.
type Parallel struct {
	Workers int
}

// Run implements Executor.
func (p Parallel) Run(n int, task func(i int) error) error {

	w := p.Workers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}

	errs := make([]error, n)
	var g errgroup.Group
	g.SetLimit(w)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			errs[i] = task(i)
			return errs[i]
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
