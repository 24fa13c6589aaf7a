package engine

import (
	"time"

	"github.com/lintang-b-s/freightx/pkg"
	"github.com/lintang-b-s/freightx/pkg/costfunction"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"github.com/lintang-b-s/freightx/pkg/engine/consolidation"
	"github.com/lintang-b-s/freightx/pkg/engine/routing"
	"github.com/lintang-b-s/freightx/pkg/metrics"
	"go.uber.org/zap"
)

// Engine. library surface of both engine operations. safe for concurrent use, holds no state
// between calls besides its configuration.
type Engine struct {
	planner *routing.Planner
	matcher *consolidation.Matcher
	params  costfunction.Params
	log     *zap.Logger
}

func NewEngine(params costfunction.Params, cfg consolidation.Config, log *zap.Logger) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Info("Starting freight planning engine...",
		zap.Float64("maxPickupRadiusKm", cfg.MaxPickupRadiusKm),
		zap.Int("maxBundleSize", cfg.MaxBundleSize))

	return &Engine{
		planner: routing.NewPlanner(params),
		matcher: consolidation.NewMatcher(cfg),
		params:  params,
		log:     log,
	}, nil
}

func (e *Engine) GetCostParams() costfunction.Params {
	return e.params
}

func (e *Engine) GetConsolidationConfig() consolidation.Config {
	return e.matcher.GetConfig()
}

func (e *Engine) PlanRoutes(edges []da.Edge, start, end da.NodeID, ctx costfunction.RouteContext) routing.RoutePlan {
	begin := time.Now()
	plan := e.planner.PlanRoutes(edges, start, end, ctx)
	elapsed := time.Since(begin)

	metrics.EngineDuration.WithLabelValues("plan_routes").Observe(elapsed.Seconds())
	for _, mode := range pkg.Objectives {
		outcome := "found"
		if plan.Get(mode) == nil {
			outcome = "not_found"
		}
		metrics.RouteOutcomes.WithLabelValues(mode.String(), outcome).Inc()
	}

	e.log.Debug("planned routes",
		zap.Int("edges", len(edges)),
		zap.String("start", string(start)),
		zap.String("end", string(end)),
		zap.Bool("fastestFound", plan.Fastest != nil),
		zap.Bool("greenestFound", plan.Greenest != nil),
		zap.Bool("safestFound", plan.Safest != nil),
		zap.Duration("elapsed", elapsed))
	return plan
}

func (e *Engine) MatchLoads(vehicles []consolidation.Vehicle, deliveries []consolidation.Delivery) consolidation.Result {
	begin := time.Now()
	res := e.matcher.MatchLoads(vehicles, deliveries)
	elapsed := time.Since(begin)

	metrics.EngineDuration.WithLabelValues("match_loads").Observe(elapsed.Seconds())
	metrics.AcceptedSuggestions.Add(float64(len(res.Suggestions)))
	metrics.TripsAvoided.Add(float64(res.TripsAvoided))

	e.log.Debug("matched loads",
		zap.Int("vehicles", len(vehicles)),
		zap.Int("deliveries", len(deliveries)),
		zap.Int("suggestions", len(res.Suggestions)),
		zap.Int("tripsAvoided", res.TripsAvoided),
		zap.Duration("elapsed", elapsed))
	return res
}
