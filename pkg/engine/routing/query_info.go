package routing

import da "github.com/lintang-b-s/freightx/pkg/datastructure"

// searchLabel. one frontier state, the path is recovered by walking parent labels.
type searchLabel struct {
	node     da.NodeID
	cost     float64
	viaEdge  da.Edge
	parent   *searchLabel
	numEdges int
}

func newSourceLabel(node da.NodeID) *searchLabel {
	return &searchLabel{node: node}
}

func newSearchLabel(edge da.Edge, cost float64, parent *searchLabel) *searchLabel {
	return &searchLabel{
		node:     edge.GetTo(),
		cost:     cost,
		viaEdge:  edge,
		parent:   parent,
		numEdges: parent.numEdges + 1,
	}
}

func (sl *searchLabel) getNode() da.NodeID {
	return sl.node
}

func (sl *searchLabel) getCost() float64 {
	return sl.cost
}

// unpackEdges. edges from the source label to sl in travel order.
func (sl *searchLabel) unpackEdges() []da.Edge {
	edges := make([]da.Edge, sl.numEdges)
	cur := sl
	for i := sl.numEdges - 1; i >= 0; i-- {
		edges[i] = cur.viaEdge
		cur = cur.parent
	}
	return edges
}
