package routing

import (
	"github.com/lintang-b-s/freightx/pkg/costfunction"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"github.com/lintang-b-s/freightx/pkg/geo"
)

// AStar. best-first search over a RoadGraph with a haversine (km) lowerbound to the destination.
// one AStar value serves one query, it is not safe for concurrent use.
type AStar struct {
	graph        *da.RoadGraph
	costFunction costfunction.CostFunction

	pq      *da.MinHeap[*searchLabel]
	visited map[da.NodeID]struct{}
}

func NewAStar(graph *da.RoadGraph, costFunction costfunction.CostFunction) *AStar {
	return &AStar{
		graph:        graph,
		costFunction: costFunction,
		pq:           da.NewBinaryHeap[*searchLabel](),
		visited:      make(map[da.NodeID]struct{}),
	}
}

// Search. least-cost edge path from start to end, nil if end is unreachable or start is a dead end.
// destCoord is only used by the heuristic.
func (as *AStar) Search(start, end da.NodeID, destCoord geo.Coordinate) *Path {
	if _, ok := as.graph.GetNodeCoordinate(start); !ok {
		// start node is a dead end
		return nil
	}

	as.pq.Clear()
	as.visited = make(map[da.NodeID]struct{})

	as.pq.Insert(da.NewPriorityQueueNode(0, newSourceLabel(start)))

	for !as.pq.IsEmpty() {
		queryKey, _ := as.pq.ExtractMin()
		uLabel := queryKey.GetItem()
		u := uLabel.getNode()

		if u == end {
			if uLabel.numEdges == 0 {
				return nil
			}
			return newPath(as.costFunction.GetObjective(), uLabel.unpackEdges(), uLabel.getCost())
		}

		if _, settled := as.visited[u]; settled {
			continue
		}
		as.visited[u] = struct{}{}

		as.graph.ForOutEdgesOf(u, func(e da.Edge) {
			v := e.GetTo()
			if _, settled := as.visited[v]; settled {
				return
			}

			newCost := uLabel.getCost() + as.costFunction.GetWeight(e)
			lb := geo.HaversineBetween(e.GetToCoordinate(), destCoord)

			as.pq.Insert(da.NewPriorityQueueNode(newCost+lb, newSearchLabel(e, newCost, uLabel)))
		})
	}

	return nil
}
