// Package engine implements the optimization algorithms: a shared run
// scaffold (lifecycle state machine, termination predicates, progress
// accounting, observer notification) and the concrete engines built on it.
//
// Engines are single-goroutine: one generation is in flight at a time, and
// population, archive and observable are owned by the goroutine that called
// Run. The only parallelism is inside the evaluator.
package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/jiankangren/jmetalgo/internal/core"
	"github.com/jiankangren/jmetalgo/internal/eval"
	"github.com/jiankangren/jmetalgo/internal/observe"
	"github.com/jiankangren/jmetalgo/internal/problem"
)

// State is an engine lifecycle state.
type State string

const (
	StateCreated    State = "created"
	StateRunning    State = "running"
	StateTerminated State = "terminated"
	StateFailed     State = "failed"
)

// Progress is the monotonically increasing termination state of a run.
type Progress struct {
	Evaluations int
	Generations int
	Start       time.Time
}

// Elapsed returns the compute time since the run started.
func (p Progress) Elapsed() time.Duration { return time.Since(p.Start) }

// Termination decides when a run stops. Predicates are consulted once per
// generation.
type Termination interface {
	IsMet(p Progress) bool
}

// MaxEvaluations stops once the evaluation counter reaches the limit.
type MaxEvaluations int

func (m MaxEvaluations) IsMet(p Progress) bool { return p.Evaluations >= int(m) }

// MaxGenerations stops once the generation counter reaches the limit.
type MaxGenerations int

func (m MaxGenerations) IsMet(p Progress) bool { return p.Generations >= int(m) }

// WithContext wraps a predicate so the run also stops when the context is
// cancelled. Used by the server to cancel jobs.
func WithContext(ctx context.Context, inner Termination) Termination {
	return contextTermination{ctx: ctx, inner: inner}
}

type contextTermination struct {
	ctx   context.Context
	inner Termination
}

func (t contextTermination) IsMet(p Progress) bool {
	select {
	case <-t.ctx.Done():
		return true
	default:
	}
	return t.inner.IsMet(p)
}

// Engine is the surface shared by every algorithm; result accessors are
// algorithm-specific because single- and multi-objective engines return
// different shapes.
type Engine interface {
	Name() string
	Run() error
	State() State
	ComputingTime() time.Duration
	Observable() *observe.Observable
}

// scaffold carries the lifecycle and telemetry plumbing common to all
// engines. Concrete engines embed it and drive it from their Run loop.
type scaffold struct {
	name        string
	problem     problem.Problem
	evaluator   eval.Evaluator
	termination Termination
	observable  *observe.Observable
	rng         *rand.Rand

	state    State
	progress Progress
	elapsed  time.Duration
}

func newScaffold(name string, p problem.Problem, ev eval.Evaluator, term Termination, seed int64) scaffold {
	return scaffold{
		name:        name,
		problem:     p,
		evaluator:   ev,
		termination: term,
		observable:  observe.NewObservable(),
		rng:         rand.New(rand.NewSource(seed)),
		state:       StateCreated,
	}
}

func (s *scaffold) Name() string                    { return s.name }
func (s *scaffold) State() State                    { return s.state }
func (s *scaffold) Observable() *observe.Observable { return s.observable }

// ComputingTime returns the total run time after termination, or the time
// spent so far while running.
func (s *scaffold) ComputingTime() time.Duration {
	if s.state == StateRunning {
		return s.progress.Elapsed()
	}
	return s.elapsed
}

// begin transitions Created -> Running and resets the progress record.
// Calling Run twice, or after a finished run, is a programmer error.
func (s *scaffold) begin() error {
	if s.state != StateCreated {
		return &core.InvalidStateError{Op: "run", State: string(s.state)}
	}
	s.state = StateRunning
	s.progress = Progress{Start: time.Now()}
	return nil
}

// terminate transitions Running -> Terminated and freezes the clock.
func (s *scaffold) terminate() {
	s.elapsed = s.progress.Elapsed()
	s.state = StateTerminated
}

// fail transitions Running -> Failed, freezes the clock, and publishes a
// failure event. The run exposes no partial result.
func (s *scaffold) fail(err error, solutions []*core.Solution) {
	s.elapsed = s.progress.Elapsed()
	s.state = StateFailed
	s.observable.NotifyAll(s.event(solutions, err))
}

// notify publishes a progress snapshot to all observers.
func (s *scaffold) notify(solutions []*core.Solution) {
	s.observable.NotifyAll(s.event(solutions, nil))
}

func (s *scaffold) event(solutions []*core.Solution, err error) observe.Event {
	return observe.Event{
		Algorithm:     s.name,
		Problem:       s.problem.Name(),
		State:         string(s.state),
		Evaluations:   s.progress.Evaluations,
		Generations:   s.progress.Generations,
		ComputingTime: s.ComputingTime(),
		Solutions:     solutions,
		Err:           err,
	}
}

// resultReady guards result accessors: only a terminated run has a result.
func (s *scaffold) resultReady() error {
	if s.state != StateTerminated {
		return &core.InvalidStateError{Op: "result", State: string(s.state)}
	}
	return nil
}

// initialPopulation creates and evaluates n random solutions.
func (s *scaffold) initialPopulation(n int) ([]*core.Solution, error) {
	pop := make([]*core.Solution, n)
	for i := range pop {
		pop[i] = s.problem.CreateSolution(s.rng)
	}
	if err := s.evaluator.Evaluate(pop, s.problem); err != nil {
		return nil, err
	}
	s.progress.Evaluations += n
	return pop, nil
}

// best returns the population's best solution under constraint-aware
// comparison, used by the single-objective engines.
func best(population []*core.Solution) *core.Solution {
	b := population[0]
	for _, s := range population[1:] {
		if r, _ := core.CompareWithConstraints(s, b); r == -1 {
			b = s
		} else if r == 0 && s.Objectives[0] < b.Objectives[0] {
			b = s
		}
	}
	return b
}
