// Package indicator implements quality indicators for fronts of objective
// vectors: how close a computed front sits to a reference front and how much
// objective space it covers.
package indicator

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// InvertedGenerationalDistance is the mean Euclidean distance from each
// reference point to its nearest front member. Lower is better; zero means
// the front covers the reference exactly. An empty front scores +Inf.
func InvertedGenerationalDistance(front, reference [][]float64) float64 {
	if len(front) == 0 || len(reference) == 0 {
		return math.Inf(1)
	}

	sum := 0.0
	for _, ref := range reference {
		nearest := math.Inf(1)
		for _, point := range front {
			if d := floats.Distance(ref, point, 2); d < nearest {
				nearest = d
			}
		}
		sum += nearest
	}
	return sum / float64(len(reference))
}

// Hypervolume2D computes the area dominated by a two-objective front,
// bounded by the reference point. Points outside the reference box
// contribute nothing. Larger is better.
func Hypervolume2D(front [][]float64, reference []float64) float64 {
	pts := make([][]float64, 0, len(front))
	for _, p := range front {
		if p[0] < reference[0] && p[1] < reference[1] {
			pts = append(pts, p)
		}
	}
	if len(pts) == 0 {
		return 0
	}

	sort.Slice(pts, func(i, j int) bool { return pts[i][0] < pts[j][0] })

	// Sweep along the first objective; only non-dominated steps add area.
	volume := 0.0
	prevY := reference[1]
	for _, p := range pts {
		if p[1] >= prevY {
			continue
		}
		volume += (reference[0] - p[0]) * (prevY - p[1])
		prevY = p[1]
	}
	return volume
}

// Spread measures the distribution of a sorted two-objective front as the
// mean absolute deviation of consecutive gaps from their average, normalized
// by the average gap. Zero means perfectly even spacing.
func Spread(front [][]float64) float64 {
	if len(front) < 3 {
		return 0
	}

	pts := make([][]float64, len(front))
	copy(pts, front)
	sort.Slice(pts, func(i, j int) bool { return pts[i][0] < pts[j][0] })

	gaps := make([]float64, len(pts)-1)
	for i := range gaps {
		gaps[i] = floats.Distance(pts[i], pts[i+1], 2)
	}

	mean := floats.Sum(gaps) / float64(len(gaps))
	if mean == 0 {
		return 0
	}

	dev := 0.0
	for _, g := range gaps {
		dev += math.Abs(g - mean)
	}
	return dev / (float64(len(gaps)) * mean)
}
