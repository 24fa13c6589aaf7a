package routing

import (
	"github.com/lintang-b-s/freightx/pkg"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"github.com/lintang-b-s/freightx/pkg/geo"
)

// Path. non-empty edge sequence from start to end. a nil *Path means no route.
type Path struct {
	mode        pkg.Objective
	edges       []da.Edge
	cost        float64
	distance    float64
	coordinates []geo.Coordinate
}

func newPath(mode pkg.Objective, edges []da.Edge, cost float64) *Path {
	coords := make([]geo.Coordinate, 0, len(edges)+1)
	dist := 0.0
	for i, e := range edges {
		if i == 0 {
			coords = append(coords, e.GetFromCoordinate())
		}
		coords = append(coords, e.GetToCoordinate())
		dist += e.GetLength()
	}
	return &Path{
		mode:        mode,
		edges:       edges,
		cost:        cost,
		distance:    dist,
		coordinates: coords,
	}
}

func (p *Path) GetMode() pkg.Objective {
	return p.mode
}

func (p *Path) GetEdgeIds() []string {
	ids := make([]string, 0, len(p.edges))
	for _, e := range p.edges {
		ids = append(ids, e.GetEdgeId())
	}
	return ids
}

// GetCost. sum of edge costs under the path's objective.
func (p *Path) GetCost() float64 {
	return p.cost
}

// GetDistance. km
func (p *Path) GetDistance() float64 {
	return p.distance
}

func (p *Path) GetCoordinates() []geo.Coordinate {
	return p.coordinates
}
