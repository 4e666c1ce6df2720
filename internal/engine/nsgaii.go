package engine

import (
	"sort"

	"github.com/jiankangren/jmetalgo/internal/core"
	"github.com/jiankangren/jmetalgo/internal/eval"
	"github.com/jiankangren/jmetalgo/internal/operator"
	"github.com/jiankangren/jmetalgo/internal/problem"
)

// NSGAII is the classic multi-objective genetic algorithm: parents and
// offspring are merged, non-dominated sorting splits the union into fronts,
// and the next population is filled front by front with crowding distance
// deciding the split front.
type NSGAII struct {
	scaffold

	popSize   int
	selection operator.Selection
	crossover operator.Crossover
	mutation  operator.Mutation

	population []*core.Solution
}

// NSGAIIConfig configures an NSGAII run.
type NSGAIIConfig struct {
	PopulationSize int
	Selection      operator.Selection
	Crossover      operator.Crossover
	Mutation       operator.Mutation
	Termination    Termination
	Evaluator      eval.Evaluator
	Seed           int64
}

func NewNSGAII(p problem.Problem, cfg NSGAIIConfig) *NSGAII {
	ev := cfg.Evaluator
	if ev == nil {
		ev = eval.NewSequential()
	}
	sel := cfg.Selection
	if sel == nil {
		sel = operator.NewBinaryTournament()
	}
	return &NSGAII{
		scaffold:  newScaffold("NSGA-II", p, ev, cfg.Termination, cfg.Seed),
		popSize:   cfg.PopulationSize,
		selection: sel,
		crossover: cfg.Crossover,
		mutation:  cfg.Mutation,
	}
}

func (a *NSGAII) Run() error {
	if err := a.begin(); err != nil {
		return err
	}

	pop, err := a.initialPopulation(a.popSize)
	if err != nil {
		a.fail(err, nil)
		return err
	}
	a.population = pop
	for _, front := range core.RankByDominance(a.population) {
		core.CrowdingDistance(front)
	}
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

		a.population = a.replace(append(a.population, offspring...))

		a.progress.Generations++
		a.notify(a.population)
	}

	a.terminate()
	a.notify(a.population)
	return nil
}

// replace builds the next population from the merged parent+offspring set:
// whole fronts while they fit, then the split front's least crowded members.
func (a *NSGAII) replace(combined []*core.Solution) []*core.Solution {
	fronts := core.RankByDominance(combined)

	next := make([]*core.Solution, 0, a.popSize)
	for _, front := range fronts {
		core.CrowdingDistance(front)
		if len(next)+len(front) <= a.popSize {
			next = append(next, front...)
			continue
		}
		sort.SliceStable(front, func(i, j int) bool {
			return front[i].Distance > front[j].Distance
		})
		next = append(next, front[:a.popSize-len(next)]...)
		break
	}
	return next
}

// Result returns the non-dominated front of the final population. It is only
// available once the run has terminated.
func (a *NSGAII) Result() ([]*core.Solution, error) {
	if err := a.resultReady(); err != nil {
		return nil, err
	}
	fronts := core.RankByDominance(a.population)
	return fronts[0], nil
}
