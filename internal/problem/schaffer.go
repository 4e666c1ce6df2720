package problem

import (
	"math/rand"

	"github.com/jiankangren/jmetalgo/internal/core"
)

// Schaffer is the one-variable two-objective benchmark minimizing
// (x^2, (x-2)^2) over [-1000, 1000]. Its Pareto-optimal set is x in [0, 2].
type Schaffer struct{}

func NewSchaffer() *Schaffer { return &Schaffer{} }

func (p *Schaffer) Name() string        { return "Schaffer" }
func (p *Schaffer) NumVariables() int   { return 1 }
func (p *Schaffer) NumObjectives() int  { return 2 }
func (p *Schaffer) NumConstraints() int { return 0 }

func (p *Schaffer) Bounds() []Bounds {
	return []Bounds{{Lower: -1000, Upper: 1000}}
}

func (p *Schaffer) CreateSolution(rng *rand.Rand) *core.Solution {
	return randomReal(rng, p.Bounds(), 2)
}

func (p *Schaffer) Evaluate(s *core.Solution) error {
	x := s.Variables.(core.RealVars)[0]
	s.Objectives[0] = x * x
	s.Objectives[1] = (x - 2) * (x - 2)
	return nil
}
