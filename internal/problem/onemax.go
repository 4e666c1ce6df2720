package problem

import (
	"math/rand"

	"github.com/jiankangren/jmetalgo/internal/core"
)

// OneMax is the single-objective binary benchmark: maximize the number of set
// bits. Framed as minimization, the objective is the count of unset bits so
// the optimum is zero.
type OneMax struct {
	bits int
}

func NewOneMax(bits int) *OneMax {
	return &OneMax{bits: bits}
}

func (p *OneMax) Name() string        { return "OneMax" }
func (p *OneMax) NumVariables() int   { return p.bits }
func (p *OneMax) NumObjectives() int  { return 1 }
func (p *OneMax) NumConstraints() int { return 0 }

func (p *OneMax) CreateSolution(rng *rand.Rand) *core.Solution {
	vars := make(core.BinaryVars, p.bits)
	for i := range vars {
		vars[i] = rng.Intn(2) == 1
	}
	return core.NewSolution(vars, 1)
}

func (p *OneMax) Evaluate(s *core.Solution) error {
	bits := s.Variables.(core.BinaryVars)
	unset := 0
	for _, b := range bits {
		if !b {
			unset++
		}
	}
	s.Objectives[0] = float64(unset)
	return nil
}
