package problem

import (
	"math/rand"

	"github.com/jiankangren/jmetalgo/internal/core"
)

// Sphere is the single-objective sum-of-squares benchmark over
// [-5.12, 5.12]^n with its minimum of zero at the origin.
type Sphere struct {
	numVars int
}

func NewSphere(numVars int) *Sphere {
	return &Sphere{numVars: numVars}
}

func (p *Sphere) Name() string        { return "Sphere" }
func (p *Sphere) NumVariables() int   { return p.numVars }
func (p *Sphere) NumObjectives() int  { return 1 }
func (p *Sphere) NumConstraints() int { return 0 }

func (p *Sphere) Bounds() []Bounds {
	b := make([]Bounds, p.numVars)
	for i := range b {
		b[i] = Bounds{Lower: -5.12, Upper: 5.12}
	}
	return b
}

func (p *Sphere) CreateSolution(rng *rand.Rand) *core.Solution {
	return randomReal(rng, p.Bounds(), 1)
}

func (p *Sphere) Evaluate(s *core.Solution) error {
	x := s.Variables.(core.RealVars)
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	s.Objectives[0] = sum
	return nil
}
