// Package operator holds the variation operators the engines consume:
// mutation, crossover and selection. Operators receive an explicit random
// source so runs stay reproducible under a fixed seed.
package operator

import (
	"math"
	"math/rand"

	"github.com/jiankangren/jmetalgo/internal/core"
	"github.com/jiankangren/jmetalgo/internal/problem"
)

// Mutation perturbs a single solution in place.
type Mutation interface {
	Execute(s *core.Solution, rng *rand.Rand)
	Probability() float64
}

// PolynomialMutation implements polynomial mutation for real encodings,
// clamping results to the problem's variable bounds.
type PolynomialMutation struct {
	probability       float64
	distributionIndex float64
	bounds            []problem.Bounds
}

// NewPolynomialMutation creates a polynomial mutation with the given
// per-variable probability and distribution index (20 is the usual choice).
func NewPolynomialMutation(probability, distributionIndex float64, bounds []problem.Bounds) *PolynomialMutation {
	return &PolynomialMutation{
		probability:       probability,
		distributionIndex: distributionIndex,
		bounds:            bounds,
	}
}

func (m *PolynomialMutation) Probability() float64 { return m.probability }

func (m *PolynomialMutation) Execute(s *core.Solution, rng *rand.Rand) {
	x := s.Variables.(core.RealVars)
	exp := 1.0 / (m.distributionIndex + 1.0)

	for i := range x {
		if rng.Float64() >= m.probability {
			continue
		}

		var delta float64
		if rng.Float64() <= 0.5 {
			delta = math.Pow(2*rng.Float64(), exp) - 1
		} else {
			delta = 1 - math.Pow(2*(1-rng.Float64()), exp)
		}

		b := m.bounds[i]
		x[i] = b.Clamp(x[i] + delta*(b.Upper-b.Lower))
	}
}

// BitFlipMutation flips each bit of a binary encoding independently.
type BitFlipMutation struct {
	probability float64
}

func NewBitFlipMutation(probability float64) *BitFlipMutation {
	return &BitFlipMutation{probability: probability}
}

func (m *BitFlipMutation) Probability() float64 { return m.probability }

func (m *BitFlipMutation) Execute(s *core.Solution, rng *rand.Rand) {
	bits := s.Variables.(core.BinaryVars)
	for i := range bits {
		if rng.Float64() < m.probability {
			bits[i] = !bits[i]
		}
	}
}
