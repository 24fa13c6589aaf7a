package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	helper "github.com/lintang-b-s/freightx/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type planningAPI struct {
	planningService PlanningService
	timeout         time.Duration
	log             *zap.Logger
}

// New. timeout bounds each engine call, 0 means no bound.
func New(planningService PlanningService, timeout time.Duration, log *zap.Logger) *planningAPI {
	return &planningAPI{
		planningService: planningService,
		timeout:         timeout,
		log:             log,
	}
}

func (api *planningAPI) Routes(group *helper.RouteGroup) {
	group.Group("/routes").POST("/plan", api.planRoutes)
	group.Group("/consolidation").POST("/match", api.matchLoads)
	group.GET("/config", api.getConfig)
}

func (api *planningAPI) engineContext(r *http.Request) (context.Context, context.CancelFunc) {
	if api.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), api.timeout)
}

// planRoutes
//
//	@Summary		fastest, greenest and safest route between two nodes of the given road segments.
//	@Description	A* search per objective. a null objective means no route exists for it.
//	@Tags			routes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		planRoutesRequest	true	"road segments, start and end node, vehicle battery level"
//	@Success		200		{object}	planRoutesResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		504		{object}	errorResponse
//	@Router			/routes/plan [post]
func (api *planningAPI) planRoutes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request planRoutesRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	edges, err := request.toEdges()
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	ctx, cancel := api.engineContext(r)
	defer cancel()

	plan, err := api.planningService.PlanRoutes(ctx, edges, da.NodeID(request.Start), da.NodeID(request.End),
		request.routeContext())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewPlanRoutesResponse(plan)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// matchLoads
//
//	@Summary		consolidation suggestions for the current fleet and open deliveries.
//	@Description	rows that cannot be normalized are skipped and listed in rejected_rows.
//	@Tags			consolidation
//	@Accept			json
//	@Produce		json
//	@Param			body	body		matchLoadsRequest	true	"vehicle and delivery rows"
//	@Success		200		{object}	matchLoadsResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		504		{object}	errorResponse
//	@Router			/consolidation/match [post]
func (api *planningAPI) matchLoads(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request matchLoadsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	ctx, cancel := api.engineContext(r)
	defer cancel()

	res, rejected, err := api.planningService.MatchLoads(ctx, request.Vehicles, request.Deliveries)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewMatchLoadsResponse(res, rejected)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// getConfig
//
//	@Summary	engine tuning in effect.
//	@Tags		config
//	@Produce	json
//	@Success	200	{object}	configResponse
//	@Router		/config [get]
func (api *planningAPI) getConfig(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	params, cfg := api.planningService.GetConfig()
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": configResponse{Cost: params, Consolidation: cfg}}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
