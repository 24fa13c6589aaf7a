package usecases

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/google/uuid"
	"github.com/lintang-b-s/freightx/pkg/costfunction"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"github.com/lintang-b-s/freightx/pkg/engine/consolidation"
	"github.com/lintang-b-s/freightx/pkg/engine/routing"
	"github.com/lintang-b-s/freightx/pkg/ingest"
	"github.com/lintang-b-s/freightx/pkg/metrics"
	"github.com/lintang-b-s/freightx/pkg/util"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var ErrEngineTimeout = errors.New("engine call timed out")

type PlanningService struct {
	log        *zap.Logger
	engine     PlanningEngine
	routeCache *lru.Cache[uuid.UUID, routing.RoutePlan]
}

// NewPlanningService. cacheSize <= 0 disables the route plan cache.
func NewPlanningService(log *zap.Logger, engine PlanningEngine, cacheSize int) (*PlanningService, error) {
	ps := &PlanningService{
		log:    log,
		engine: engine,
	}
	if cacheSize > 0 {
		cache, err := lru.New[uuid.UUID, routing.RoutePlan](cacheSize)
		if err != nil {
			return nil, err
		}
		ps.routeCache = cache
	}
	return ps, nil
}

// PlanRoutes. route plans are a pure function of the request, identical requests are served from
// the cache.
func (ps *PlanningService) PlanRoutes(ctx context.Context, edges []da.Edge, start, end da.NodeID,
	rctx costfunction.RouteContext) (routing.RoutePlan, error) {
	key := routeRequestKey(edges, start, end, rctx)
	if ps.routeCache != nil {
		if plan, ok := ps.routeCache.Get(key); ok {
			metrics.RouteCacheHits.WithLabelValues("hit").Inc()
			return plan, nil
		}
		metrics.RouteCacheHits.WithLabelValues("miss").Inc()
	}

	plan, err := runBounded(ctx, func() routing.RoutePlan {
		return ps.engine.PlanRoutes(edges, start, end, rctx)
	})
	if err != nil {
		return routing.RoutePlan{}, util.WrapErrorf(err, util.ErrRequestTimeout,
			"planning routes from %s to %s", start, end)
	}

	if ps.routeCache != nil {
		ps.routeCache.Add(key, plan)
	}
	return plan, nil
}

// MatchLoads. normalize raw fleet rows and run the consolidation engine. rows that could not be
// normalized are skipped and described in the returned slice.
func (ps *PlanningService) MatchLoads(ctx context.Context, vehicleRows, deliveryRows []map[string]any) (
	consolidation.Result, []string, error) {
	vehicles, deliveries, rowErrs := ingest.FleetRows{Vehicles: vehicleRows, Deliveries: deliveryRows}.Normalize()

	rejected := make([]string, 0)
	for _, err := range multierr.Errors(rowErrs) {
		rejected = append(rejected, err.Error())
	}
	if len(rejected) > 0 {
		ps.log.Debug("rejected fleet rows", zap.Int("count", len(rejected)))
	}

	res, err := runBounded(ctx, func() consolidation.Result {
		return ps.engine.MatchLoads(vehicles, deliveries)
	})
	if err != nil {
		return consolidation.Result{}, rejected, util.WrapErrorf(err, util.ErrRequestTimeout,
			"matching %d vehicles with %d deliveries", len(vehicles), len(deliveries))
	}
	return res, rejected, nil
}

func (ps *PlanningService) GetConfig() (costfunction.Params, consolidation.Config) {
	return ps.engine.GetCostParams(), ps.engine.GetConsolidationConfig()
}

// runBounded. the engine has no cancellation points, so a caller that gives up leaves the goroutine
// to finish in the background and only stops waiting for it.
func runBounded[T any](ctx context.Context, f func() T) (T, error) {
	done := make(chan T, 1)
	go func() {
		done <- f()
	}()

	select {
	case res := <-done:
		return res, nil
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrEngineTimeout, ctx.Err())
	}
}

// routeRequestKey. deterministic fingerprint of a route request. string fields are length prefixed
// so ids containing the separators cannot shift into a neighbouring field.
func routeRequestKey(edges []da.Edge, start, end da.NodeID, rctx costfunction.RouteContext) uuid.UUID {
	var sb strings.Builder
	writeKeyField(&sb, string(start))
	writeKeyField(&sb, string(end))
	sb.WriteString(strconv.FormatFloat(rctx.BatteryPercentage, 'g', -1, 64))
	sb.WriteByte('|')
	writeKeyField(&sb, rctx.Pollution)
	sb.WriteString(strconv.Itoa(len(edges)))
	for _, e := range edges {
		sb.WriteByte('|')
		writeKeyField(&sb, e.GetEdgeId())
		writeKeyField(&sb, string(e.GetFrom()))
		writeKeyField(&sb, string(e.GetTo()))
		for _, f := range []float64{e.GetLength(), e.GetCongestion(), e.GetAQI(),
			e.GetFromCoordinate().Lat, e.GetFromCoordinate().Lon, e.GetToCoordinate().Lat, e.GetToCoordinate().Lon} {
			sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatBool(e.IsRestricted()))
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(sb.String()))
}

func writeKeyField(sb *strings.Builder, s string) {
	sb.WriteString(strconv.Itoa(len(s)))
	sb.WriteByte(':')
	sb.WriteString(s)
}
