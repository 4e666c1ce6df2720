package engine

import (
	"github.com/jiankangren/jmetalgo/internal/core"
	"github.com/jiankangren/jmetalgo/internal/eval"
	"github.com/jiankangren/jmetalgo/internal/operator"
	"github.com/jiankangren/jmetalgo/internal/problem"
)

// GeneticAlgorithm is a single-objective generational GA: tournament
// selection, crossover and mutation produce a full offspring population that
// replaces the parents wholesale, with the best parent preserved if every
// offspring is worse.
type GeneticAlgorithm struct {
	scaffold

	popSize   int
	selection operator.Selection
	crossover operator.Crossover
	mutation  operator.Mutation

	population []*core.Solution
}

// GAConfig configures a GeneticAlgorithm.
type GAConfig struct {
	PopulationSize int
	Selection      operator.Selection
	Crossover      operator.Crossover
	Mutation       operator.Mutation
	Termination    Termination
	Evaluator      eval.Evaluator
	Seed           int64
}

func NewGeneticAlgorithm(p problem.Problem, cfg GAConfig) *GeneticAlgorithm {
	ev := cfg.Evaluator
	if ev == nil {
		ev = eval.NewSequential()
	}
	sel := cfg.Selection
	if sel == nil {
		sel = operator.NewBinaryTournament()
	}
	return &GeneticAlgorithm{
		scaffold:  newScaffold("GeneticAlgorithm", p, ev, cfg.Termination, cfg.Seed),
		popSize:   cfg.PopulationSize,
		selection: sel,
		crossover: cfg.Crossover,
		mutation:  cfg.Mutation,
	}
}

func (a *GeneticAlgorithm) Run() error {
	if err := a.begin(); err != nil {
		return err
	}

	pop, err := a.initialPopulation(a.popSize)
	if err != nil {
		a.fail(err, nil)
		return err
	}
	a.population = pop
	a.notify(a.population)

	for !a.termination.IsMet(a.progress) {
		offspring := make([]*core.Solution, 0, a.popSize)
		for len(offspring) < a.popSize {
			p1 := a.selection.Execute(a.population, a.rng)
			p2 := a.selection.Execute(a.population, a.rng)

			c1, c2 := a.crossover.Execute(p1, p2, a.rng)
			a.mutation.Execute(c1, a.rng)
			a.mutation.Execute(c2, a.rng)

			offspring = append(offspring, c1)
			if len(offspring) < a.popSize {
				offspring = append(offspring, c2)
			}
		}
		if err := a.evaluator.Evaluate(offspring, a.problem); err != nil {
			a.fail(err, a.population)
			return err
		}
		a.progress.Evaluations += len(offspring)

		// Generational replacement with one-slot elitism: the best parent
		// survives if it beats the best offspring.
		bestParent := best(a.population)
		a.population = offspring
		if r, _ := core.CompareWithConstraints(bestParent, best(a.population)); r == -1 {
			a.population[len(a.population)-1] = bestParent
		}

		a.progress.Generations++
		a.notify(a.population)
	}

	a.terminate()
	a.notify(a.population)
	return nil
}

// Result returns the best solution found. It is only available once the run
// has terminated.
func (a *GeneticAlgorithm) Result() (*core.Solution, error) {
	if err := a.resultReady(); err != nil {
		return nil, err
	}
	return best(a.population), nil
}
