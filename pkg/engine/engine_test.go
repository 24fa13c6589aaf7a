package engine

import (
	"testing"

	"github.com/lintang-b-s/freightx/pkg"
	"github.com/lintang-b-s/freightx/pkg/costfunction"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"github.com/lintang-b-s/freightx/pkg/engine/consolidation"
	"github.com/lintang-b-s/freightx/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(costfunction.DefaultParams(), consolidation.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	return e
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := consolidation.DefaultConfig()
	cfg.BaseSpeedKmh = 0
	_, err := NewEngine(costfunction.DefaultParams(), cfg, zap.NewNop())
	assert.Error(t, err)

	params := costfunction.DefaultParams()
	params.RestrictedPenalty = -1
	_, err = NewEngine(params, consolidation.DefaultConfig(), zap.NewNop())
	assert.Error(t, err)
}

func TestEnginePlanRoutes(t *testing.T) {
	e := newTestEngine(t)
	ab, err := da.NewEdge("ab", "A", "B", 10, 0, 0, false, geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.09))
	require.NoError(t, err)

	plan := e.PlanRoutes([]da.Edge{ab}, "A", "B", costfunction.NewRouteContext(100, "", pkg.FASTEST))
	require.NotNil(t, plan.Fastest)
	assert.InDelta(t, 20.0, plan.Fastest.GetCost(), 1e-9)

	none := e.PlanRoutes([]da.Edge{ab}, "B", "A", costfunction.NewRouteContext(100, "", pkg.FASTEST))
	assert.Nil(t, none.Fastest)
	assert.Nil(t, none.Greenest)
	assert.Nil(t, none.Safest)
}

func TestEngineMatchLoads(t *testing.T) {
	e := newTestEngine(t)
	p := geo.NewCoordinate(0, 0)

	res := e.MatchLoads(
		[]consolidation.Vehicle{{ID: "v1", Capacity: 10, Position: &p}},
		[]consolidation.Delivery{{ID: "d1", Weight: 3, Pickup: geo.NewCoordinate(0, 0.01),
			Drop: geo.NewCoordinate(0, 0.02), Status: "pending"}},
	)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, []string{"d1"}, res.Suggestions[0].DeliveryIDs)

	assert.Equal(t, consolidation.DefaultConfig(), e.GetConsolidationConfig())
	assert.Equal(t, costfunction.DefaultParams(), e.GetCostParams())
}
