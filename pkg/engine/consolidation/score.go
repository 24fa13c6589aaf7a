package consolidation

import (
	"math"

	"github.com/lintang-b-s/freightx/pkg/geo"
	"github.com/lintang-b-s/freightx/pkg/util"
)

type evaluation struct {
	score            float64
	weight           float64
	utilizationGain  float64
	baselineKm       float64
	savingsKm        float64
	savingsRatio     float64
	costEfficiency   float64
	deviationPenalty float64
	overloadRisk     float64
	fillRatio        float64
	route            simulatedRoute
}

// vehicleView. everything the bundle search needs about one vehicle.
type vehicleView struct {
	vehicle       Vehicle
	index         int
	start         geo.Coordinate
	available     float64
	profile       TrafficProfile
	candidates    []candidate
	savings       savingsMatrix
	density       int
	trafficFactor float64
}

// evaluate. composite desirability of serving bundle (candidate positions) on one trip.
func evaluate(cfg Config, vv *vehicleView, bundle []int) evaluation {
	members := make([]candidate, len(bundle))
	weight := 0.0
	baseline := 0.0
	for i, b := range bundle {
		c := vv.candidates[b]
		members[i] = c
		weight += c.delivery.Weight
		// serving c alone: vehicle -> pickup -> drop
		direct := geo.HaversineBetween(vv.start, c.delivery.Pickup) + geo.HaversineBetween(c.delivery.Pickup, c.delivery.Drop)
		baseline += roadDistance(cfg, direct, vv.trafficFactor)
	}

	route := simulateRoute(cfg, vv.start, members, vv.trafficFactor)

	ev := evaluation{
		weight:     weight,
		baselineKm: baseline,
		route:      route,
	}
	ev.utilizationGain = util.Clamp01(weight / vv.available)
	ev.savingsKm = math.Max(0, baseline-route.distanceKm)
	if baseline > 0 {
		ev.savingsRatio = util.Clamp01(ev.savingsKm / baseline)
		ev.costEfficiency = util.Clamp01((baseline - route.distanceKm) * cfg.CostPerKm / (baseline * cfg.CostPerKm))
	}

	extraKm := math.Max(0, route.distanceKm-baseline)
	ev.deviationPenalty = util.Clamp01(math.Exp(math.Max(0, extraKm-cfg.DeviationToleranceKm)/cfg.DeviationToleranceKm) - 1)

	ev.fillRatio = (vv.vehicle.CurrentLoad + weight) / vv.vehicle.Capacity
	if ev.fillRatio > cfg.OverloadThreshold {
		ev.overloadRisk = util.Clamp01((ev.fillRatio - cfg.OverloadThreshold) / (1 - cfg.OverloadThreshold))
	}

	w := vv.profile.Weights
	ev.score = w.Utilization*ev.utilizationGain + w.Savings*ev.savingsRatio + w.CostEfficiency*ev.costEfficiency -
		w.DeviationPenalty*ev.deviationPenalty - w.OverloadRisk*ev.overloadRisk
	return ev
}
