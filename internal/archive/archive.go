// Package archive provides a bounded, diversity-preserving store of mutually
// non-dominated solutions. Admission is dominance-filtered and eviction is
// crowding-distance-ranked, so the archive keeps a spread-out snapshot of the
// best front discovered so far.
package archive

import (
	"math/rand"
	"sort"

	"github.com/jiankangren/jmetalgo/internal/core"
)

// Archive holds at most capacity mutually non-dominated solutions. It is not
// internally synchronized: a single engine goroutine owns it.
type Archive struct {
	capacity  int
	solutions []*core.Solution
}

// New creates an empty archive with the given capacity.
func New(capacity int) *Archive {
	return &Archive{
		capacity:  capacity,
		solutions: make([]*core.Solution, 0, capacity),
	}
}

// Add offers a solution to the archive and reports whether it was retained.
// A solution dominated by any member, or with objectives identical to a
// member, is rejected without modifying the archive. Otherwise every member
// it dominates is dropped, the solution is inserted, and if the archive then
// exceeds capacity the member with the smallest crowding distance is evicted
// (insertion order breaking ties, so behavior is reproducible).
func (a *Archive) Add(s *core.Solution) bool {
	for _, member := range a.solutions {
		r, err := core.CompareWithConstraints(member, s)
		if err != nil {
			panic(err)
		}
		if r == -1 || sameObjectives(member, s) {
			return false
		}
	}

	kept := a.solutions[:0]
	for _, member := range a.solutions {
		if !core.Dominates(s, member) {
			kept = append(kept, member)
		}
	}
	a.solutions = append(kept, s)

	if len(a.solutions) > a.capacity {
		a.truncate()
	}
	return a.contains(s)
}

// truncate recomputes crowding distances and drops the most crowded members
// until the archive is back at capacity.
func (a *Archive) truncate() {
	for len(a.solutions) > a.capacity {
		core.CrowdingDistance(a.solutions)

		worst := 0
		for i, s := range a.solutions[1:] {
			if s.Distance < a.solutions[worst].Distance {
				worst = i + 1
			}
		}
		a.solutions = append(a.solutions[:worst], a.solutions[worst+1:]...)
	}
}

func sameObjectives(a, b *core.Solution) bool {
	for i, v := range a.Objectives {
		if v != b.Objectives[i] {
			return false
		}
	}
	return true
}

func (a *Archive) contains(s *core.Solution) bool {
	for _, member := range a.solutions {
		if member == s {
			return true
		}
	}
	return false
}

// SelectLeader picks a guide solution by binary tournament on crowding
// distance, favoring less crowded regions. The archive must be non-empty.
func (a *Archive) SelectLeader(rng *rand.Rand) *core.Solution {
	first := a.solutions[rng.Intn(len(a.solutions))]
	second := a.solutions[rng.Intn(len(a.solutions))]
	if second.Distance > first.Distance {
		return second
	}
	return first
}

// Solutions returns the archive contents in insertion order. The slice is a
// copy; the solutions themselves are shared and must not be mutated.
func (a *Archive) Solutions() []*core.Solution {
	out := make([]*core.Solution, len(a.solutions))
	copy(out, a.solutions)
	return out
}

// Len returns the number of stored solutions.
func (a *Archive) Len() int { return len(a.solutions) }

// Capacity returns the maximum number of solutions the archive retains.
func (a *Archive) Capacity() int { return a.capacity }

// SortedByObjective returns the contents ordered ascending by the given
// objective, for reporting.
func (a *Archive) SortedByObjective(m int) []*core.Solution {
	out := a.Solutions()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Objectives[m] < out[j].Objectives[m]
	})
	return out
}
