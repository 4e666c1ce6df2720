// Package runner builds engines from run configurations. It is the single
// place where problem and algorithm names are mapped to concrete types, so
// the CLI and the HTTP server accept the same vocabulary.
package runner

import (
	"fmt"

	"github.com/jiankangren/jmetalgo/internal/core"
	"github.com/jiankangren/jmetalgo/internal/engine"
	"github.com/jiankangren/jmetalgo/internal/eval"
	"github.com/jiankangren/jmetalgo/internal/operator"
	"github.com/jiankangren/jmetalgo/internal/problem"
	"github.com/jiankangren/jmetalgo/internal/store"
)

// BuildProblem instantiates the benchmark problem named in the config.
// Zero NumVariables selects a problem-specific default.
func BuildProblem(cfg store.RunConfig) (problem.Problem, error) {
	n := cfg.NumVariables
	switch cfg.Problem {
	case "zdt1":
		if n <= 0 {
			n = 30
		}
		return problem.NewZDT1(n), nil
	case "sphere":
		if n <= 0 {
			n = 10
		}
		return problem.NewSphere(n), nil
	case "schaffer":
		return problem.NewSchaffer(), nil
	case "onemax":
		if n <= 0 {
			n = 256
		}
		return problem.NewOneMax(n), nil
	default:
		return nil, fmt.Errorf("unknown problem: %s", cfg.Problem)
	}
}

// BuildEngine wires up the algorithm named in the config with default
// operators for the problem's encoding.
func BuildEngine(p problem.Problem, cfg store.RunConfig, term engine.Termination) (engine.Engine, error) {
	var ev eval.Evaluator
	if cfg.Workers > 1 {
		ev = eval.NewParallel(cfg.Workers)
	} else {
		ev = eval.NewSequential()
	}

	pop := cfg.PopulationSize
	if pop <= 0 {
		pop = 100
	}
	capacity := cfg.ArchiveCapacity
	if capacity <= 0 {
		capacity = pop
	}

	mutation, crossover := DefaultOperators(p)

	switch cfg.Algorithm {
	case "es":
		return engine.NewEvolutionStrategy(p, engine.ESConfig{
			Mu:          pop,
			Lambda:      pop,
			Mutation:    mutation,
			Termination: term,
			Evaluator:   ev,
			Seed:        cfg.Seed,
		}), nil
	case "ga":
		return engine.NewGeneticAlgorithm(p, engine.GAConfig{
			PopulationSize: pop,
			Crossover:      crossover,
			Mutation:       mutation,
			Termination:    term,
			Evaluator:      ev,
			Seed:           cfg.Seed,
		}), nil
	case "nsgaii":
		return engine.NewNSGAII(p, engine.NSGAIIConfig{
			PopulationSize: pop,
			Crossover:      crossover,
			Mutation:       mutation,
			Termination:    term,
			Evaluator:      ev,
			Seed:           cfg.Seed,
		}), nil
	case "smpso":
		return engine.NewSMPSO(p, engine.SMPSOConfig{
			SwarmSize:       pop,
			ArchiveCapacity: capacity,
			Mutation:        mutation,
			Termination:     term,
			Evaluator:       ev,
			Seed:            cfg.Seed,
		})
	default:
		return nil, fmt.Errorf("unknown algorithm: %s", cfg.Algorithm)
	}
}

// DefaultOperators picks mutation and crossover matching the problem's
// encoding: polynomial/SBX for real-valued, bit-flip/single-point for binary.
func DefaultOperators(p problem.Problem) (operator.Mutation, operator.Crossover) {
	prob := 1.0 / float64(p.NumVariables())
	if bounded, ok := p.(problem.Bounded); ok {
		bounds := bounded.Bounds()
		return operator.NewPolynomialMutation(prob, 20.0, bounds),
			operator.NewSBXCrossover(0.9, 20.0, bounds)
	}
	return operator.NewBitFlipMutation(prob), operator.NewSinglePointCrossover(0.9)
}

// Result extracts the final solution set from a terminated engine. The
// single-solution algorithms return a one-element set.
func Result(eng engine.Engine) ([]*core.Solution, error) {
	switch e := eng.(type) {
	case *engine.EvolutionStrategy:
		best, err := e.Result()
		if err != nil {
			return nil, err
		}
		return []*core.Solution{best}, nil
	case *engine.GeneticAlgorithm:
		best, err := e.Result()
		if err != nil {
			return nil, err
		}
		return []*core.Solution{best}, nil
	case *engine.NSGAII:
		return e.Result()
	case *engine.SMPSO:
		return e.Result()
	default:
		return nil, fmt.Errorf("unknown engine type: %s", eng.Name())
	}
}
