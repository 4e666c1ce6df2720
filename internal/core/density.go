package core

import (
	"math"
	"sort"
)

// CrowdingDistance computes the crowding distance of every solution in the
// set and stores it in the Distance field. For each objective the two extreme
// solutions get an infinite contribution and interior solutions get the gap
// between their neighbors normalized by the objective's observed range. Sets
// of two or fewer have no interior, so every member is infinite.
func CrowdingDistance(solutions []*Solution) {
	if len(solutions) <= 2 {
		for _, s := range solutions {
			s.Distance = math.Inf(1)
		}
		return
	}

	for _, s := range solutions {
		s.Distance = 0
	}

	front := make([]*Solution, len(solutions))
	copy(front, solutions)

	numObjectives := len(front[0].Objectives)
	for m := 0; m < numObjectives; m++ {
		sort.SliceStable(front, func(i, j int) bool {
			return front[i].Objectives[m] < front[j].Objectives[m]
		})

		front[0].Distance = math.Inf(1)
		front[len(front)-1].Distance = math.Inf(1)

		objRange := front[len(front)-1].Objectives[m] - front[0].Objectives[m]
		if objRange == 0 {
			continue
		}

		for i := 1; i < len(front)-1; i++ {
			front[i].Distance += (front[i+1].Objectives[m] - front[i-1].Objectives[m]) / objRange
		}
	}
}

// RankByDominance performs non-dominated sorting, splitting the population
// into fronts of mutually non-dominated solutions. Front 0 is the best. Each
// solution's Rank field is set to its front index.
func RankByDominance(population []*Solution) [][]*Solution {
	n := len(population)
	if n == 0 {
		return nil
	}

	dominated := make([][]int, n)
	domCount := make([]int, n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if Dominates(population[i], population[j]) {
				dominated[i] = append(dominated[i], j)
			} else if Dominates(population[j], population[i]) {
				domCount[i]++
			}
		}
	}

	var fronts [][]*Solution
	var current []int
	for i := 0; i < n; i++ {
		if domCount[i] == 0 {
			population[i].Rank = 0
			current = append(current, i)
		}
	}

	frontIndex := 0
	for len(current) > 0 {
		front := make([]*Solution, len(current))
		for i, idx := range current {
			front[i] = population[idx]
		}
		fronts = append(fronts, front)

		var next []int
		for _, idx := range current {
			for _, d := range dominated[idx] {
				domCount[d]--
				if domCount[d] == 0 {
					population[d].Rank = frontIndex + 1
					next = append(next, d)
				}
			}
		}
		frontIndex++
		current = next
	}

	return fronts
}
