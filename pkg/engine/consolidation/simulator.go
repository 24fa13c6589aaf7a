package consolidation

import (
	"math"

	"github.com/lintang-b-s/freightx/pkg/geo"
	"github.com/lintang-b-s/freightx/pkg/util"
)

type simulatedRoute struct {
	distanceKm  float64 // road-aware, rounded to 2 decimals
	durationMin float64
	stops       []geo.Coordinate // start, pickups, drops
}

// simulateRoute. nearest-neighbour over all pickups, then nearest-neighbour over all drops.
// a heuristic stop order, not an optimal tour.
func simulateRoute(cfg Config, start geo.Coordinate, bundle []candidate, trafficFactor float64) simulatedRoute {
	stops := make([]geo.Coordinate, 0, 2*len(bundle)+1)
	stops = append(stops, start)

	current := start
	direct := 0.0

	visit := func(points []geo.Coordinate) {
		visited := make([]bool, len(points))
		for range points {
			next, nextDist := -1, math.Inf(1)
			for i, p := range points {
				if visited[i] {
					continue
				}
				d := geo.HaversineBetween(current, p)
				if d < nextDist {
					next, nextDist = i, d
				}
			}
			visited[next] = true
			direct += nextDist
			current = points[next]
			stops = append(stops, current)
		}
	}

	pickups := make([]geo.Coordinate, len(bundle))
	drops := make([]geo.Coordinate, len(bundle))
	for i, c := range bundle {
		pickups[i] = c.delivery.Pickup
		drops[i] = c.delivery.Drop
	}
	visit(pickups)
	visit(drops)

	road := roadDistance(cfg, direct, trafficFactor)
	return simulatedRoute{
		distanceKm:  util.RoundFloat(road, 2),
		durationMin: math.Round(road / cfg.BaseSpeedKmh * 60 * trafficFactor),
		stops:       stops,
	}
}
