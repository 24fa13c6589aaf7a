package controllers

import (
	"context"

	"github.com/lintang-b-s/freightx/pkg/costfunction"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"github.com/lintang-b-s/freightx/pkg/engine/consolidation"
	"github.com/lintang-b-s/freightx/pkg/engine/routing"
)

type PlanningService interface {
	PlanRoutes(ctx context.Context, edges []da.Edge, start, end da.NodeID, rctx costfunction.RouteContext) (routing.RoutePlan, error)
	MatchLoads(ctx context.Context, vehicleRows, deliveryRows []map[string]any) (consolidation.Result, []string, error)
	GetConfig() (costfunction.Params, consolidation.Config)
}
