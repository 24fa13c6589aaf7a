package spatialindex

import (
	"github.com/lintang-b-s/freightx/pkg/geo"
	"github.com/tidwall/rtree"
)

// Rtree. point index over lon/lat. searches return a bounding-box superset,
// callers apply the exact haversine cut.
type Rtree[T any] struct {
	tr   *rtree.RTreeG[T]
	size int
}

func NewRtree[T any]() *Rtree[T] {
	var tr rtree.RTreeG[T]
	return &Rtree[T]{
		tr: &tr,
	}
}

func (rt *Rtree[T]) Insert(coord geo.Coordinate, data T) {
	p := [2]float64{coord.Lon, coord.Lat}
	rt.tr.Insert(p, p, data)
	rt.size++
}

func (rt *Rtree[T]) Len() int {
	return rt.size
}

// SearchWithinRadius search for all items whose point may lie within radius (in km) from the query point (qLat, qLon)
func (rt *Rtree[T]) SearchWithinRadius(qLat, qLon, radius float64) []T {
	minLat, minLon, maxLat, maxLon := geo.BoundingBox(qLat, qLon, radius)

	results := make([]T, 0, 16)
	rt.tr.Search([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat},
		func(min, max [2]float64, data T) bool {
			results = append(results, data)
			return true
		})
	return results
}
