package engine

import (
	"sort"

	"github.com/jiankangren/jmetalgo/internal/core"
	"github.com/jiankangren/jmetalgo/internal/eval"
	"github.com/jiankangren/jmetalgo/internal/operator"
	"github.com/jiankangren/jmetalgo/internal/problem"
)

// EvolutionStrategy is a single-objective (mu+lambda) elitist evolution
// strategy: each generation spawns lambda mutated offspring and keeps the
// best mu of parents and offspring combined.
type EvolutionStrategy struct {
	scaffold

	mu       int
	lambda   int
	mutation operator.Mutation

	population []*core.Solution
}

// ESConfig configures an EvolutionStrategy.
type ESConfig struct {
	Mu          int
	Lambda      int
	Mutation    operator.Mutation
	Termination Termination
	Evaluator   eval.Evaluator
	Seed        int64
}

func NewEvolutionStrategy(p problem.Problem, cfg ESConfig) *EvolutionStrategy {
	ev := cfg.Evaluator
	if ev == nil {
		ev = eval.NewSequential()
	}
	return &EvolutionStrategy{
		scaffold: newScaffold("EvolutionStrategy", p, ev, cfg.Termination, cfg.Seed),
		mu:       cfg.Mu,
		lambda:   cfg.Lambda,
		mutation: cfg.Mutation,
	}
}

func (a *EvolutionStrategy) Run() error {
	if err := a.begin(); err != nil {
		return err
	}

	pop, err := a.initialPopulation(a.mu)
	if err != nil {
		a.fail(err, nil)
		return err
	}
	a.population = pop
	a.notify(a.population)

	for !a.termination.IsMet(a.progress) {
		offspring := make([]*core.Solution, a.lambda)
		for i := range offspring {
			child := a.population[i%a.mu].Copy()
			a.mutation.Execute(child, a.rng)
			offspring[i] = child
		}
		if err := a.evaluator.Evaluate(offspring, a.problem); err != nil {
			a.fail(err, a.population)
			return err
		}
		a.progress.Evaluations += a.lambda

		combined := append(append([]*core.Solution{}, a.population...), offspring...)
		sort.SliceStable(combined, func(i, j int) bool {
			r, _ := core.CompareWithConstraints(combined[i], combined[j])
			return r == -1
		})
		a.population = combined[:a.mu]

		a.progress.Generations++
		a.notify(a.population)
	}

	a.terminate()
	a.notify(a.population)
	return nil
}

// Result returns the best solution found. It is only available once the run
// has terminated.
func (a *EvolutionStrategy) Result() (*core.Solution, error) {
	if err := a.resultReady(); err != nil {
		return nil, err
	}
	return best(a.population), nil
}
