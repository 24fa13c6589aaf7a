package consolidation

import (
	"math"

	"github.com/lintang-b-s/freightx/pkg/geo"
)

// savingsMatrix. clarke-wright savings between candidate pickups, symmetric, zero diagonal.
type savingsMatrix [][]float64

func newSavingsMatrix(cfg Config, start geo.Coordinate, cands []candidate, trafficFactor float64) savingsMatrix {
	n := len(cands)
	m := make(savingsMatrix, n)
	for i := range m {
		m[i] = make([]float64, n)
	}

	road := func(a, b geo.Coordinate) float64 {
		return roadDistance(cfg, geo.HaversineBetween(a, b), trafficFactor)
	}

	for i := 0; i < n; i++ {
		si := road(start, cands[i].delivery.Pickup)
		for j := i + 1; j < n; j++ {
			sj := road(start, cands[j].delivery.Pickup)
			ij := road(cands[i].delivery.Pickup, cands[j].delivery.Pickup)
			s := math.Max(0, si+sj-ij)
			m[i][j] = s
			m[j][i] = s
		}
	}
	return m
}

func (m savingsMatrix) get(i, j int) float64 {
	return m[i][j]
}

// meanSavingsTo. mean savings between candidate c and the bundle members.
func (m savingsMatrix) meanSavingsTo(c int, bundle []int) float64 {
	if len(bundle) == 0 {
		return 0
	}
	total := 0.0
	for _, b := range bundle {
		total += m[c][b]
	}
	return total / float64(len(bundle))
}
