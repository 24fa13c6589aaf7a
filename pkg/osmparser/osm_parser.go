package osmparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"github.com/lintang-b-s/freightx/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

type osmWay struct {
	id         osm.WayID
	nodes      []osm.NodeID
	dir        direction
	restricted bool
}

// EdgeExtractor. turns accepted osm ways into engine edges, one edge per road segment between
// junctions, one per travel direction.
type EdgeExtractor struct {
	ways     []osmWay
	nodeUse  map[osm.NodeID]int
	coords   map[osm.NodeID]geo.Coordinate
	barriers map[osm.NodeID]bool
	log      *zap.Logger
}

func NewEdgeExtractor(log *zap.Logger) *EdgeExtractor {
	return &EdgeExtractor{
		nodeUse:  make(map[osm.NodeID]int),
		coords:   make(map[osm.NodeID]geo.Coordinate),
		barriers: make(map[osm.NodeID]bool),
		log:      log,
	}
}

// AddWay. must see every way before the nodes, see Parse.
func (ex *EdgeExtractor) AddWay(way *osm.Way) {
	if !acceptOsmWay(way) {
		return
	}
	nodes := make([]osm.NodeID, 0, len(way.Nodes))
	for i, n := range way.Nodes {
		ex.nodeUse[n.ID]++
		if i == 0 || i == len(way.Nodes)-1 {
			// way endpoints always end a segment
			ex.nodeUse[n.ID]++
		}
		nodes = append(nodes, n.ID)
	}
	ex.ways = append(ex.ways, osmWay{
		id:         way.ID,
		nodes:      nodes,
		dir:        wayDirection(way.Tags),
		restricted: restrictedForFreight(way.Tags),
	})
}

func (ex *EdgeExtractor) AddNode(node *osm.Node) {
	if _, ok := ex.nodeUse[node.ID]; !ok {
		return
	}
	ex.coords[node.ID] = geo.NewCoordinate(node.Lat, node.Lon)
	if closedBarrier(node) {
		ex.barriers[node.ID] = true
	}
}

func (ex *EdgeExtractor) isSplitNode(id osm.NodeID) bool {
	return ex.nodeUse[id] > 1
}

// Edges. ways referencing a node without coordinates (clipped extracts) are skipped.
func (ex *EdgeExtractor) Edges() []da.Edge {
	edges := make([]da.Edge, 0, 2*len(ex.ways))
	skipped := 0

	for _, w := range ex.ways {
		wayEdges, ok := ex.wayEdges(w)
		if !ok {
			skipped++
			continue
		}
		edges = append(edges, wayEdges...)
	}

	if skipped > 0 {
		ex.log.Sugar().Infof("skipped %d ways with missing node coordinates", skipped)
	}
	return edges
}

func (ex *EdgeExtractor) wayEdges(w osmWay) ([]da.Edge, bool) {
	for _, n := range w.nodes {
		if _, ok := ex.coords[n]; !ok {
			return nil, false
		}
	}

	var edges []da.Edge
	segStart := 0
	length := 0.0
	restricted := w.restricted || ex.barriers[w.nodes[0]]
	seq := 0

	for i := 1; i < len(w.nodes); i++ {
		length += geo.HaversineBetween(ex.coords[w.nodes[i-1]], ex.coords[w.nodes[i]])
		restricted = restricted || ex.barriers[w.nodes[i]]

		if i != len(w.nodes)-1 && !ex.isSplitNode(w.nodes[i]) {
			continue
		}

		from, to := w.nodes[segStart], w.nodes[i]
		if from != to {
			id := "w" + strconv.FormatInt(int64(w.id), 10) + "_" + strconv.Itoa(seq)
			if w.dir != backwardOnly {
				edges = append(edges, ex.newEdge(id, from, to, length, restricted))
			}
			if w.dir != forwardOnly {
				edges = append(edges, ex.newEdge(id+"r", to, from, length, restricted))
			}
			seq++
		}

		segStart = i
		length = 0
		restricted = w.restricted || ex.barriers[w.nodes[i]]
	}
	return edges, true
}

func (ex *EdgeExtractor) newEdge(id string, from, to osm.NodeID, length float64, restricted bool) da.Edge {
	// congestion and air quality come from live feeds, not from osm
	e, err := da.NewEdge(id, nodeID(from), nodeID(to), length, 0, 0, restricted, ex.coords[from], ex.coords[to])
	if err != nil {
		// coordinates were checked in wayEdges and haversine lengths are finite
		panic(err)
	}
	return e
}

func nodeID(id osm.NodeID) da.NodeID {
	return da.NodeID(strconv.FormatInt(int64(id), 10))
}

// Parse. read an .osm.pbf extract in two passes: ways first, then the coordinates of their nodes.
func Parse(ctx context.Context, mapFile string, log *zap.Logger) ([]da.Edge, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ex := NewEdgeExtractor(log)

	// must not be parallel
	scanner := osmpbf.New(ctx, f, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if (countWays+1)%100000 == 0 {
			log.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++
		ex.AddWay(way)
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("scan ways: %w", err)
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	scanner = osmpbf.New(ctx, f, 1)
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		if node, ok := scanner.Object().(*osm.Node); ok {
			ex.AddNode(node)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan nodes: %w", err)
	}

	edges := ex.Edges()
	log.Sugar().Infof("number of ways: %d, number of edges: %d", len(ex.ways), len(edges))
	return edges, nil
}
