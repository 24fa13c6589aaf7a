package usecases

import (
	"github.com/lintang-b-s/freightx/pkg/costfunction"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"github.com/lintang-b-s/freightx/pkg/engine/consolidation"
	"github.com/lintang-b-s/freightx/pkg/engine/routing"
)

type PlanningEngine interface {
	PlanRoutes(edges []da.Edge, start, end da.NodeID, ctx costfunction.RouteContext) routing.RoutePlan
	MatchLoads(vehicles []consolidation.Vehicle, deliveries []consolidation.Delivery) consolidation.Result
	GetCostParams() costfunction.Params
	GetConsolidationConfig() consolidation.Config
}
