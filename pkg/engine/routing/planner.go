package routing

import (
	"github.com/lintang-b-s/freightx/pkg"
	"github.com/lintang-b-s/freightx/pkg/costfunction"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"golang.org/x/sync/errgroup"
)

// RoutePlan. one result per objective, nil when that objective found no route.
type RoutePlan struct {
	Fastest  *Path
	Greenest *Path
	Safest   *Path
}

func (rp RoutePlan) Get(mode pkg.Objective) *Path {
	switch mode {
	case pkg.GREENEST:
		return rp.Greenest
	case pkg.SAFEST:
		return rp.Safest
	default:
		return rp.Fastest
	}
}

type Planner struct {
	params costfunction.Params
}

func NewPlanner(params costfunction.Params) *Planner {
	return &Planner{params: params}
}

// PlanRoutes. build the graph once and run one A* per objective. the three searches share only the
// read-only graph, so they run concurrently and land in fixed slots.
func (p *Planner) PlanRoutes(edges []da.Edge, start, end da.NodeID, ctx costfunction.RouteContext) RoutePlan {
	graph := da.BuildGraph(edges)

	destCoord, ok := da.FindArrivalCoordinate(edges, end)
	if !ok {
		// no edge enters end
		return RoutePlan{}
	}

	var paths [len(pkg.Objectives)]*Path
	g := errgroup.Group{}
	for i, mode := range pkg.Objectives {
		i, mode := i, mode
		g.Go(func() error {
			cf := costfunction.NewMultiObjectiveCost(p.params, ctx.WithMode(mode))
			paths[i] = NewAStar(graph, cf).Search(start, end, destCoord)
			return nil
		})
	}
	_ = g.Wait()

	return RoutePlan{
		Fastest:  paths[pkg.FASTEST],
		Greenest: paths[pkg.GREENEST],
		Safest:   paths[pkg.SAFEST],
	}
}

// PlanRoutes. PlanRoutes with the default cost params.
func PlanRoutes(edges []da.Edge, start, end da.NodeID, ctx costfunction.RouteContext) RoutePlan {
	return NewPlanner(costfunction.DefaultParams()).PlanRoutes(edges, start, end, ctx)
}
