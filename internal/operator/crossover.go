package operator

import (
	"math"
	"math/rand"

	"github.com/jiankangren/jmetalgo/internal/core"
	"github.com/jiankangren/jmetalgo/internal/problem"
)

// Crossover combines two parents into two children. Parents are never
// mutated; children are fresh, unevaluated solutions.
type Crossover interface {
	Execute(a, b *core.Solution, rng *rand.Rand) (*core.Solution, *core.Solution)
	Probability() float64
}

// SBXCrossover implements simulated binary crossover for real encodings.
type SBXCrossover struct {
	probability       float64
	distributionIndex float64
	bounds            []problem.Bounds
}

func NewSBXCrossover(probability, distributionIndex float64, bounds []problem.Bounds) *SBXCrossover {
	return &SBXCrossover{
		probability:       probability,
		distributionIndex: distributionIndex,
		bounds:            bounds,
	}
}

func (c *SBXCrossover) Probability() float64 { return c.probability }

func (c *SBXCrossover) Execute(a, b *core.Solution, rng *rand.Rand) (*core.Solution, *core.Solution) {
	child1 := a.Copy()
	child2 := b.Copy()

	if rng.Float64() >= c.probability {
		return child1, child2
	}

	x := a.Variables.(core.RealVars)
	y := b.Variables.(core.RealVars)
	cx := child1.Variables.(core.RealVars)
	cy := child2.Variables.(core.RealVars)
	exp := 1.0 / (c.distributionIndex + 1.0)

	for i := range x {
		var beta float64
		if rng.Float64() <= 0.5 {
			beta = math.Pow(2*rng.Float64(), exp)
		} else {
			beta = math.Pow(1.0/(2*(1.0-rng.Float64())), exp)
		}

		bound := c.bounds[i]
		cx[i] = bound.Clamp(0.5 * ((1+beta)*x[i] + (1-beta)*y[i]))
		cy[i] = bound.Clamp(0.5 * ((1-beta)*x[i] + (1+beta)*y[i]))
	}

	return child1, child2
}

// SinglePointCrossover swaps the tails of two binary parents at a random
// cut point.
type SinglePointCrossover struct {
	probability float64
}

func NewSinglePointCrossover(probability float64) *SinglePointCrossover {
	return &SinglePointCrossover{probability: probability}
}

func (c *SinglePointCrossover) Probability() float64 { return c.probability }

func (c *SinglePointCrossover) Execute(a, b *core.Solution, rng *rand.Rand) (*core.Solution, *core.Solution) {
	child1 := a.Copy()
	child2 := b.Copy()

	if rng.Float64() >= c.probability {
		return child1, child2
	}

	x := child1.Variables.(core.BinaryVars)
	y := child2.Variables.(core.BinaryVars)

	point := rng.Intn(len(x))
	for i := point; i < len(x); i++ {
		x[i], y[i] = y[i], x[i]
	}

	return child1, child2
}
