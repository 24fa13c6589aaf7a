package controllers

import (
	"github.com/lintang-b-s/freightx/pkg"
	"github.com/lintang-b-s/freightx/pkg/costfunction"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"github.com/lintang-b-s/freightx/pkg/engine/consolidation"
	"github.com/lintang-b-s/freightx/pkg/engine/routing"
	"github.com/lintang-b-s/freightx/pkg/geo"
)

type coordinateRequest struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon *float64 `json:"lon" validate:"required,min=-180,max=180"`
}

func (c coordinateRequest) toCoordinate() geo.Coordinate {
	return geo.NewCoordinate(*c.Lat, *c.Lon)
}

type edgeRequest struct {
	ID         string            `json:"id" validate:"required"`
	From       string            `json:"from" validate:"required"`
	To         string            `json:"to" validate:"required"`
	DistanceKm float64           `json:"distance_km" validate:"gte=0"`
	Congestion float64           `json:"congestion" validate:"gte=0,lte=1"`
	AQI        float64           `json:"aqi" validate:"gte=0,lte=500"`
	Restricted bool              `json:"restricted"`
	FromCoord  coordinateRequest `json:"from_coord"`
	ToCoord    coordinateRequest `json:"to_coord"`
}

type planRoutesRequest struct {
	Edges             []edgeRequest `json:"edges" validate:"required,min=1,dive"`
	Start             string        `json:"start" validate:"required"`
	End               string        `json:"end" validate:"required"`
	BatteryPercentage *float64      `json:"battery_percentage" validate:"omitempty,min=0,max=100"`
	Pollution         string        `json:"pollution"`
}

func (r planRoutesRequest) toEdges() ([]da.Edge, error) {
	edges := make([]da.Edge, 0, len(r.Edges))
	for _, e := range r.Edges {
		edge, err := da.NewEdge(e.ID, da.NodeID(e.From), da.NodeID(e.To), e.DistanceKm, e.Congestion, e.AQI,
			e.Restricted, e.FromCoord.toCoordinate(), e.ToCoord.toCoordinate())
		if err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

func (r planRoutesRequest) routeContext() costfunction.RouteContext {
	battery := pkg.DEFAULT_BATTERY_PERCENT
	if r.BatteryPercentage != nil {
		battery = *r.BatteryPercentage
	}
	return costfunction.NewRouteContext(battery, r.Pollution, pkg.FASTEST)
}

type routeResponse struct {
	Mode        string           `json:"mode"`
	EdgeIds     []string         `json:"edge_ids"`
	Cost        float64          `json:"cost"`
	DistanceKm  float64          `json:"distance_km"`
	Polyline    string           `json:"polyline"`
	Coordinates []geo.Coordinate `json:"coordinates"`
}

func newRouteResponse(p *routing.Path) *routeResponse {
	if p == nil {
		return nil
	}
	return &routeResponse{
		Mode:        p.GetMode().String(),
		EdgeIds:     p.GetEdgeIds(),
		Cost:        p.GetCost(),
		DistanceKm:  p.GetDistance(),
		Polyline:    geo.PolylineFromCoords(p.GetCoordinates()),
		Coordinates: p.GetCoordinates(),
	}
}

// planRoutesResponse. a null mode means no route for that objective.
type planRoutesResponse struct {
	Fastest  *routeResponse `json:"fastest"`
	Greenest *routeResponse `json:"greenest"`
	Safest   *routeResponse `json:"safest"`
}

func NewPlanRoutesResponse(plan routing.RoutePlan) planRoutesResponse {
	return planRoutesResponse{
		Fastest:  newRouteResponse(plan.Fastest),
		Greenest: newRouteResponse(plan.Greenest),
		Safest:   newRouteResponse(plan.Safest),
	}
}

// matchLoadsRequest. rows are loosely typed, see pkg/ingest for the accepted keys.
type matchLoadsRequest struct {
	Vehicles   []map[string]any `json:"vehicles" validate:"required"`
	Deliveries []map[string]any `json:"deliveries" validate:"required"`
}

type suggestionResponse struct {
	consolidation.Suggestion
	RoutePolyline string `json:"route_polyline"`
}

type matchLoadsResponse struct {
	Suggestions  []suggestionResponse    `json:"suggestions"`
	Clusters     []consolidation.Cluster `json:"clusters"`
	TripsAvoided int                     `json:"trips_avoided"`
	FuelSaved    float64                 `json:"fuel_saved"`
	CostSaved    float64                 `json:"cost_saved"`
	RejectedRows []string                `json:"rejected_rows"`
}

func NewMatchLoadsResponse(res consolidation.Result, rejected []string) matchLoadsResponse {
	suggestions := make([]suggestionResponse, 0, len(res.Suggestions))
	for _, s := range res.Suggestions {
		suggestions = append(suggestions, suggestionResponse{
			Suggestion:    s,
			RoutePolyline: geo.PolylineFromCoords(s.Route),
		})
	}
	clusters := res.Clusters
	if clusters == nil {
		clusters = []consolidation.Cluster{}
	}
	if rejected == nil {
		rejected = []string{}
	}
	return matchLoadsResponse{
		Suggestions:  suggestions,
		Clusters:     clusters,
		TripsAvoided: res.TripsAvoided,
		FuelSaved:    res.FuelSaved,
		CostSaved:    res.CostSaved,
		RejectedRows: rejected,
	}
}

type configResponse struct {
	Cost          costfunction.Params  `json:"cost"`
	Consolidation consolidation.Config `json:"consolidation"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
