package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lintang-b-s/freightx/pkg"
	"github.com/lintang-b-s/freightx/pkg/costfunction"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"github.com/lintang-b-s/freightx/pkg/engine"
	"github.com/lintang-b-s/freightx/pkg/engine/consolidation"
	"github.com/lintang-b-s/freightx/pkg/engine/routing"
	"github.com/lintang-b-s/freightx/pkg/geo"
	"github.com/lintang-b-s/freightx/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingEngine struct {
	PlanningEngine
	planCalls int
	delay     time.Duration
}

func (c *countingEngine) PlanRoutes(edges []da.Edge, start, end da.NodeID, ctx costfunction.RouteContext) routing.RoutePlan {
	c.planCalls++
	time.Sleep(c.delay)
	return c.PlanningEngine.PlanRoutes(edges, start, end, ctx)
}

func newTestService(t *testing.T, cacheSize int) (*PlanningService, *countingEngine) {
	t.Helper()
	e, err := engine.NewEngine(costfunction.DefaultParams(), consolidation.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	ce := &countingEngine{PlanningEngine: e}
	ps, err := NewPlanningService(zap.NewNop(), ce, cacheSize)
	require.NoError(t, err)
	return ps, ce
}

func testEdges(t *testing.T) []da.Edge {
	t.Helper()
	ab, err := da.NewEdge("ab", "A", "B", 10, 0, 0, false, geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.09))
	require.NoError(t, err)
	return []da.Edge{ab}
}

func TestPlanRoutesUsesCache(t *testing.T) {
	ps, ce := newTestService(t, 8)
	edges := testEdges(t)
	rctx := costfunction.NewRouteContext(100, "", pkg.FASTEST)

	first, err := ps.PlanRoutes(context.Background(), edges, "A", "B", rctx)
	require.NoError(t, err)
	require.NotNil(t, first.Fastest)

	second, err := ps.PlanRoutes(context.Background(), edges, "A", "B", rctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, ce.planCalls)

	// battery level changes the cost, so it is a different request
	_, err = ps.PlanRoutes(context.Background(), edges, "A", "B", costfunction.NewRouteContext(10, "", pkg.FASTEST))
	require.NoError(t, err)
	assert.Equal(t, 2, ce.planCalls)
}

func TestPlanRoutesWithoutCache(t *testing.T) {
	ps, ce := newTestService(t, 0)
	edges := testEdges(t)
	rctx := costfunction.NewRouteContext(100, "", pkg.FASTEST)

	for i := 0; i < 3; i++ {
		_, err := ps.PlanRoutes(context.Background(), edges, "A", "B", rctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, ce.planCalls)
}

func TestPlanRoutesTimeout(t *testing.T) {
	ps, ce := newTestService(t, 0)
	ce.delay = 200 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := ps.PlanRoutes(ctx, testEdges(t), "A", "B", costfunction.NewRouteContext(100, "", pkg.FASTEST))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEngineTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var uerr *util.Error
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, util.ErrRequestTimeout, uerr.Code())
}

func TestRouteRequestKey(t *testing.T) {
	edges := testEdges(t)
	rctx := costfunction.NewRouteContext(100, "", pkg.FASTEST)

	k := routeRequestKey(edges, "A", "B", rctx)
	assert.Equal(t, k, routeRequestKey(edges, "A", "B", rctx))
	assert.Equal(t, k, routeRequestKey(edges, "A", "B", rctx.WithMode(pkg.SAFEST)))
	assert.NotEqual(t, k, routeRequestKey(edges, "B", "A", rctx))
	assert.NotEqual(t, k, routeRequestKey(nil, "A", "B", rctx))
}

func TestRouteRequestKeySeparatorsInFields(t *testing.T) {
	rctx := costfunction.NewRouteContext(100, "", pkg.FASTEST)
	edge := func(id string, from, to da.NodeID) da.Edge {
		e, err := da.NewEdge(id, from, to, 10, 0, 0, false, geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.09))
		require.NoError(t, err)
		return e
	}

	tests := []struct {
		name string
		a, b uuid.UUID
	}{
		{
			name: "pipe moved between start and end",
			a:    routeRequestKey(nil, "a|b", "c", rctx),
			b:    routeRequestKey(nil, "a", "b|c", rctx),
		},
		{
			name: "pipe moved between end and pollution",
			a:    routeRequestKey(nil, "a", "b|", costfunction.NewRouteContext(100, "high", pkg.FASTEST)),
			b:    routeRequestKey(nil, "a", "b", costfunction.NewRouteContext(100, "|high", pkg.FASTEST)),
		},
		{
			name: "comma moved between edge id and from node",
			a:    routeRequestKey([]da.Edge{edge("e,X", "Y", "Z")}, "X", "Z", rctx),
			b:    routeRequestKey([]da.Edge{edge("e", "X,Y", "Z")}, "X", "Z", rctx),
		},
		{
			name: "one edge versus its id split in two",
			a:    routeRequestKey([]da.Edge{edge("e1", "A", "B"), edge("e2", "B", "C")}, "A", "C", rctx),
			b:    routeRequestKey([]da.Edge{edge("e1", "A", "B|e2,B"), edge("e2", "B", "C")}, "A", "C", rctx),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, tt.a, tt.b)
		})
	}
}

func TestMatchLoadsNormalizesRows(t *testing.T) {
	ps, _ := newTestService(t, 0)

	vehicles := []map[string]any{
		{"vehicle_id": "v1", "capacity": 10, "position": map[string]any{"lat": 0, "lng": 0}},
		{"capacity": 5},
	}
	deliveries := []map[string]any{
		{"id": "d1", "weight": "4", "status": "pending", "pickup": []any{0, 0.01}, "drop": []any{0, 0.02}},
	}

	res, rejected, err := ps.MatchLoads(context.Background(), vehicles, deliveries)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Contains(t, rejected[0], "vehicle row 1")

	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, "v1", res.Suggestions[0].VehicleID)
	assert.Equal(t, []string{"d1"}, res.Suggestions[0].DeliveryIDs)

	params, cfg := ps.GetConfig()
	assert.Equal(t, costfunction.DefaultParams(), params)
	assert.Equal(t, consolidation.DefaultConfig(), cfg)
}
