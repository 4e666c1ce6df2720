package operator

import (
	"math/rand"

	"github.com/jiankangren/jmetalgo/internal/core"
)

// Selection picks a parent from a population.
type Selection interface {
	Execute(population []*core.Solution, rng *rand.Rand) *core.Solution
}

// BinaryTournament draws two random contestants and keeps the better one
// under constraint-aware dominance, falling back to rank and then crowding
// distance when dominance gives no ordering.
type BinaryTournament struct{}

func NewBinaryTournament() BinaryTournament { return BinaryTournament{} }

func (BinaryTournament) Execute(population []*core.Solution, rng *rand.Rand) *core.Solution {
	a := population[rng.Intn(len(population))]
	b := population[rng.Intn(len(population))]

	r, err := core.CompareWithConstraints(a, b)
	if err != nil {
		panic(err)
	}
	switch r {
	case -1:
		return a
	case 1:
		return b
	}

	if a.Rank != b.Rank {
		if a.Rank < b.Rank {
			return a
		}
		return b
	}
	if b.Distance > a.Distance {
		return b
	}
	return a
}
