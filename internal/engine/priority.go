package engine

import (
	"math"
	"sort"
)

// priorityOrder returns a permutation of player indices ordered per
// §4.1: ascending antenna distance, ties broken by ascending clockwise
// bearing from north. Positions of any two players on a non-Void tile
// are guaranteed distinct (I1), so ties only ever occur between
// robots sharing a Void tile, where order is irrelevant.
func (g *Game) priorityOrder() []int {
	type scored struct {
		index   int
		dist    int
		bearing float64
	}

	scores := make([]scored, len(g.Players))
	for i, p := range g.Players {
		delta := p.Public.Position.Sub(g.Map.Antenna)
		dist := abs(delta.X) + abs(delta.Y)
		bearing := math.Atan2(float64(delta.X), float64(-delta.Y))
		if bearing < 0 {
			bearing += 2 * math.Pi
		}
		scores[i] = scored{index: i, dist: dist, bearing: bearing}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].dist != scores[j].dist {
			return scores[i].dist < scores[j].dist
		}
		return scores[i].bearing < scores[j].bearing
	})

	order := make([]int, len(scores))
	for i, s := range scores {
		order[i] = s.index
	}
	return order
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
