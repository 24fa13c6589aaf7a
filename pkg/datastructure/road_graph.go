package datastructure

import "github.com/lintang-b-s/freightx/pkg/geo"

// RoadGraph. adjacency list keyed by origin node, out edges keep input order.
type RoadGraph struct {
	outEdges map[NodeID][]Edge
	numEdges int
}

// BuildGraph. O(|E|).
func BuildGraph(edges []Edge) *RoadGraph {
	g := &RoadGraph{
		outEdges: make(map[NodeID][]Edge),
		numEdges: len(edges),
	}
	for _, e := range edges {
		g.outEdges[e.from] = append(g.outEdges[e.from], e)
	}
	return g
}

// GetOutEdges. unknown nodes are dead ends (nil), not errors.
func (g *RoadGraph) GetOutEdges(u NodeID) []Edge {
	return g.outEdges[u]
}

func (g *RoadGraph) ForOutEdgesOf(u NodeID, handle func(e Edge)) {
	for _, e := range g.outEdges[u] {
		handle(e)
	}
}

func (g *RoadGraph) NumberOfEdges() int {
	return g.numEdges
}

// NumberOfVertices. nodes with at least one out edge.
func (g *RoadGraph) NumberOfVertices() int {
	return len(g.outEdges)
}

// GetNodeCoordinate. coordinate of u taken from its first out edge.
func (g *RoadGraph) GetNodeCoordinate(u NodeID) (geo.Coordinate, bool) {
	es := g.outEdges[u]
	if len(es) == 0 {
		return geo.Coordinate{}, false
	}
	return es[0].fromCoord, true
}

// FindArrivalCoordinate. coordinate of v taken from the first edge (input order) that ends at v.
func FindArrivalCoordinate(edges []Edge, v NodeID) (geo.Coordinate, bool) {
	for _, e := range edges {
		if e.to == v {
			return e.toCoord, true
		}
	}
	return geo.Coordinate{}, false
}
