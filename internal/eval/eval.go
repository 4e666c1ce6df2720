// Package eval applies a problem's scoring function to batches of solutions,
// either in place on the calling goroutine or spread across a worker pool.
package eval

import (
	"runtime"
	"sync"

	"github.com/jiankangren/jmetalgo/internal/core"
	"github.com/jiankangren/jmetalgo/internal/problem"
)

// Evaluator scores every solution in the batch in place. The same solution
// objects are mutated; results always land in input order. A non-nil error
// means the batch is unusable and the run must fail.
type Evaluator interface {
	Evaluate(solutions []*core.Solution, p problem.Problem) error
}

// Sequential evaluates one solution at a time on the calling goroutine.
type Sequential struct{}

func NewSequential() Sequential { return Sequential{} }

func (Sequential) Evaluate(solutions []*core.Solution, p problem.Problem) error {
	for _, s := range solutions {
		if err := p.Evaluate(s); err != nil {
			return &core.EvaluationError{Problem: p.Name(), Err: err}
		}
	}
	return nil
}

// Parallel distributes evaluations over a fixed pool of workers. Each worker
// pulls solution indices from a shared channel, so results are written
// straight into the caller's slice and order never depends on completion
// order. The objective function is assumed pure per solution.
type Parallel struct {
	workers int
}

// NewParallel creates a parallel evaluator with the given pool size;
// workers <= 0 means one per CPU.
func NewParallel(workers int) Parallel {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return Parallel{workers: workers}
}

func (e Parallel) Evaluate(solutions []*core.Solution, p problem.Problem) error {
	workers := e.workers
	if workers > len(solutions) {
		workers = len(solutions)
	}
	if workers <= 1 {
		return Sequential{}.Evaluate(solutions, p)
	}

	indices := make(chan int)
	errs := make(chan error, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var firstErr error
			for i := range indices {
				if firstErr != nil {
					continue
				}
				if err := p.Evaluate(solutions[i]); err != nil {
					firstErr = err
				}
			}
			if firstErr != nil {
				errs <- firstErr
			}
		}()
	}

	for i := range solutions {
		indices <- i
	}
	close(indices)
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return &core.EvaluationError{Problem: p.Name(), Err: err}
	}
	return nil
}
