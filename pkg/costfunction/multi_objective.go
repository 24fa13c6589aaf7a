package costfunction

import (
	"fmt"

	"github.com/lintang-b-s/freightx/pkg"
)

// Params. tuning constants of the edge cost, see DefaultParams.
type Params struct {
	CarbonPerKm         float64 `mapstructure:"carbon_per_km" json:"carbon_per_km"`
	LowBatteryThreshold float64 `mapstructure:"low_battery_threshold" json:"low_battery_threshold"`
	LowBatteryPenaltyKm float64 `mapstructure:"low_battery_penalty_km" json:"low_battery_penalty_km"`
	RestrictedPenalty   float64 `mapstructure:"restricted_penalty" json:"restricted_penalty"`
}

func DefaultParams() Params {
	return Params{
		CarbonPerKm:         pkg.CARBON_PER_KM,
		LowBatteryThreshold: pkg.LOW_BATTERY_THRESHOLD,
		LowBatteryPenaltyKm: pkg.LOW_BATTERY_PENALTY_KM,
		RestrictedPenalty:   pkg.RESTRICTED_EDGE_PENALTY,
	}
}

func (p Params) Validate() error {
	if p.CarbonPerKm < 0 || p.LowBatteryPenaltyKm < 0 || p.RestrictedPenalty < 0 {
		return fmt.Errorf("cost params must be non-negative: %+v", p)
	}
	return nil
}

// RouteContext. vehicle state and objective of one search.
type RouteContext struct {
	BatteryPercentage float64
	// Pollution is carried through for callers (e.g. an air-quality alert label), edge AQI drives the cost.
	Pollution string
	Mode      pkg.Objective
}

func NewRouteContext(battery float64, pollution string, mode pkg.Objective) RouteContext {
	return RouteContext{BatteryPercentage: battery, Pollution: pollution, Mode: mode}
}

// WithMode. copy of the context with another objective.
func (rc RouteContext) WithMode(mode pkg.Objective) RouteContext {
	rc.Mode = mode
	return rc
}

// MultiObjectiveCost. edge cost under one objective:
//
//	fastest:  2*travelTime + 0.5*aqi
//	greenest: 2*carbon + aqi
//	safest:   2*aqi + travelTime
//
// plus the low battery and restricted edge penalties.
type MultiObjectiveCost struct {
	params Params
	ctx    RouteContext
}

func NewMultiObjectiveCost(params Params, ctx RouteContext) *MultiObjectiveCost {
	return &MultiObjectiveCost{params: params, ctx: ctx}
}

func (mc *MultiObjectiveCost) GetObjective() pkg.Objective {
	return mc.ctx.Mode
}

func (mc *MultiObjectiveCost) GetWeight(e EdgeAttributes) float64 {
	distance := e.GetLength()
	travelTime := distance * (1 + e.GetCongestion())
	carbon := distance * mc.params.CarbonPerKm
	pollutionExposure := e.GetAQI()

	penalty := 0.0
	if mc.ctx.BatteryPercentage < mc.params.LowBatteryThreshold {
		penalty += distance * mc.params.LowBatteryPenaltyKm
	}
	if e.IsRestricted() {
		penalty += mc.params.RestrictedPenalty
	}

	switch mc.ctx.Mode {
	case pkg.GREENEST:
		return 2*carbon + pollutionExposure + penalty
	case pkg.SAFEST:
		return 2*pollutionExposure + travelTime + penalty
	default:
		return 2*travelTime + 0.5*pollutionExposure + penalty
	}
}

// EdgeCost. one-shot helper.
func EdgeCost(e EdgeAttributes, ctx RouteContext) float64 {
	return NewMultiObjectiveCost(DefaultParams(), ctx).GetWeight(e)
}
