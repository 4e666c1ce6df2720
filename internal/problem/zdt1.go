package problem

import (
	"math"
	"math/rand"

	"github.com/jiankangren/jmetalgo/internal/core"
)

// ZDT1 is the classic two-objective benchmark with a convex Pareto front
// f2 = 1 - sqrt(f1). Variables live in [0, 1]; the optimal front has every
// variable but the first at zero.
type ZDT1 struct {
	numVars int
}

func NewZDT1(numVars int) *ZDT1 {
	return &ZDT1{numVars: numVars}
}

func (p *ZDT1) Name() string        { return "ZDT1" }
func (p *ZDT1) NumVariables() int   { return p.numVars }
func (p *ZDT1) NumObjectives() int  { return 2 }
func (p *ZDT1) NumConstraints() int { return 0 }

func (p *ZDT1) Bounds() []Bounds {
	b := make([]Bounds, p.numVars)
	for i := range b {
		b[i] = Bounds{Lower: 0, Upper: 1}
	}
	return b
}

func (p *ZDT1) CreateSolution(rng *rand.Rand) *core.Solution {
	return randomReal(rng, p.Bounds(), p.NumObjectives())
}

func (p *ZDT1) Evaluate(s *core.Solution) error {
	x := s.Variables.(core.RealVars)

	g := 1.0
	for i := 1; i < len(x); i++ {
		g += 9.0 * x[i] / float64(len(x)-1)
	}

	s.Objectives[0] = x[0]
	s.Objectives[1] = g * (1.0 - math.Sqrt(x[0]/g))
	return nil
}

// TrueParetoFront samples numPoints points on the known optimal front.
func (p *ZDT1) TrueParetoFront(numPoints int) [][]float64 {
	points := make([][]float64, numPoints)
	for i := range points {
		x := float64(i) / float64(numPoints-1)
		points[i] = []float64{x, 1.0 - math.Sqrt(x)}
	}
	return points
}
