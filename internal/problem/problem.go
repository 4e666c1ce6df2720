// Package problem defines the contract optimization problems implement and a
// set of standard benchmark problems. The engines only ever see this
// interface; they never inspect problem internals.
package problem

import (
	"math/rand"

	"github.com/jiankangren/jmetalgo/internal/core"
)

// Problem creates and scores solutions. Evaluate fills in the objective
// vector (and the aggregate constraint violation, when the problem has
// constraints) of the given solution in place.
type Problem interface {
	Name() string
	NumVariables() int
	NumObjectives() int
	NumConstraints() int

	// CreateSolution returns a fresh, unevaluated random solution.
	CreateSolution(rng *rand.Rand) *core.Solution

	// Evaluate scores the solution in place. A returned error is fatal for
	// the run that requested it.
	Evaluate(s *core.Solution) error
}

// Bounds is a per-variable box constraint for real-valued problems.
type Bounds struct {
	Lower, Upper float64
}

// Bounded is implemented by real-valued problems; operators and swarm
// velocity limits need the variable box.
type Bounded interface {
	Bounds() []Bounds
}

// Clamp returns v limited to the bound's interval.
func (b Bounds) Clamp(v float64) float64 {
	if v < b.Lower {
		return b.Lower
	}
	if v > b.Upper {
		return b.Upper
	}
	return v
}

// randomReal creates a real-valued solution uniform inside the box.
func randomReal(rng *rand.Rand, bounds []Bounds, numObjectives int) *core.Solution {
	vars := make(core.RealVars, len(bounds))
	for i, b := range bounds {
		vars[i] = b.Lower + rng.Float64()*(b.Upper-b.Lower)
	}
	return core.NewSolution(vars, numObjectives)
}
