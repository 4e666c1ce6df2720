package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiankangren/jmetalgo/internal/core"
	"github.com/jiankangren/jmetalgo/internal/indicator"
	"github.com/jiankangren/jmetalgo/internal/operator"
	"github.com/jiankangren/jmetalgo/internal/problem"
)

func TestSMPSO_LineFront(t *testing.T) {
	p := &line{}
	a := newTestSMPSO(t, p, 2000)
	require.NoError(t, a.Run())

	front, err := a.Result()
	require.NoError(t, err)
	require.NotEmpty(t, front)
	assert.LessOrEqual(t, len(front), 10, "archive must respect its capacity")

	for _, s := range front {
		assert.InDelta(t, 1.0, s.Objectives[0]+s.Objectives[1], 1e-9,
			"every archive member must sit on the true front")
	}
}

func TestSMPSO_ZDT1(t *testing.T) {
	p := problem.NewZDT1(30)
	mut := operator.NewPolynomialMutation(1.0/30, 20, p.Bounds())
	a, err := NewSMPSO(p, SMPSOConfig{
		SwarmSize:       100,
		ArchiveCapacity: 100,
		Mutation:        mut,
		Termination:     MaxEvaluations(20000),
		Seed:            1,
	})
	require.NoError(t, err)
	require.NoError(t, a.Run())

	front, err := a.Result()
	require.NoError(t, err)
	require.NotEmpty(t, front)

	// The final archive must be an antichain.
	for _, x := range front {
		for _, y := range front {
			if x != y {
				assert.False(t, core.Dominates(x, y), "archive contains dominated solutions")
			}
		}
	}

	igd := indicator.InvertedGenerationalDistance(objectives(front), p.TrueParetoFront(100))
	assert.Less(t, igd, 0.05, "SMPSO should converge close to the ZDT1 front")
}

func TestNSGAII_ZDT1(t *testing.T) {
	p := problem.NewZDT1(30)
	a := NewNSGAII(p, NSGAIIConfig{
		PopulationSize: 100,
		Crossover:      operator.NewSBXCrossover(0.9, 20, p.Bounds()),
		Mutation:       operator.NewPolynomialMutation(1.0/30, 20, p.Bounds()),
		Termination:    MaxEvaluations(20000),
		Seed:           1,
	})
	require.NoError(t, a.Run())

	front, err := a.Result()
	require.NoError(t, err)
	require.NotEmpty(t, front)

	igd := indicator.InvertedGenerationalDistance(objectives(front), p.TrueParetoFront(100))
	assert.Less(t, igd, 0.05, "NSGA-II should converge close to the ZDT1 front")
}

func TestEvolutionStrategy_OneMax(t *testing.T) {
	bits := 128
	p := problem.NewOneMax(bits)
	a := NewEvolutionStrategy(p, ESConfig{
		Mu:          1,
		Lambda:      10,
		Mutation:    operator.NewBitFlipMutation(1.0 / float64(bits)),
		Termination: MaxEvaluations(20000),
		Seed:        7,
	})
	require.NoError(t, a.Run())

	bestSol, err := a.Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, bestSol.Objectives[0], 5.0,
		"a (1+10)-ES should nearly solve 128-bit OneMax in 20k evaluations")
}

func TestGeneticAlgorithm_Sphere(t *testing.T) {
	p := problem.NewSphere(10)
	a := NewGeneticAlgorithm(p, GAConfig{
		PopulationSize: 50,
		Crossover:      operator.NewSBXCrossover(0.9, 20, p.Bounds()),
		Mutation:       operator.NewPolynomialMutation(0.1, 20, p.Bounds()),
		Termination:    MaxEvaluations(25000),
		Seed:           7,
	})
	require.NoError(t, a.Run())

	bestSol, err := a.Result()
	require.NoError(t, err)
	assert.Less(t, bestSol.Objectives[0], 0.5,
		"the GA should approach the sphere minimum")

	// Objective must never exceed the initial best thanks to elitism.
	assert.False(t, math.IsNaN(bestSol.Objectives[0]))
}

func objectives(front []*core.Solution) [][]float64 {
	out := make([][]float64, len(front))
	for i, s := range front {
		out[i] = s.Objectives
	}
	return out
}
