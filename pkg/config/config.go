package config

import (
	"fmt"

	"github.com/lintang-b-s/freightx/pkg/costfunction"
	"github.com/lintang-b-s/freightx/pkg/engine/consolidation"
	"github.com/spf13/viper"
)

// EngineConfig. tuning for both engine operations.
type EngineConfig struct {
	Cost          costfunction.Params  `mapstructure:"cost"`
	Consolidation consolidation.Config `mapstructure:"consolidation"`
}

// SetDefaults. register every tuning key so env vars and config files can override single values.
func SetDefaults(v *viper.Viper) {
	p := costfunction.DefaultParams()
	v.SetDefault("cost.carbon_per_km", p.CarbonPerKm)
	v.SetDefault("cost.low_battery_threshold", p.LowBatteryThreshold)
	v.SetDefault("cost.low_battery_penalty_km", p.LowBatteryPenaltyKm)
	v.SetDefault("cost.restricted_penalty", p.RestrictedPenalty)

	c := consolidation.DefaultConfig()
	v.SetDefault("consolidation.max_pickup_radius_km", c.MaxPickupRadiusKm)
	v.SetDefault("consolidation.max_candidates_per_vehicle", c.MaxCandidatesPerVehicle)
	v.SetDefault("consolidation.max_seeds", c.MaxSeeds)
	v.SetDefault("consolidation.max_bundle_size", c.MaxBundleSize)
	v.SetDefault("consolidation.density_radius_km", c.DensityRadiusKm)
	v.SetDefault("consolidation.high_density_threshold", c.HighDensityThreshold)
	v.SetDefault("consolidation.low_density_threshold", c.LowDensityThreshold)
	setProfileDefaults(v, "consolidation.high_density", c.HighDensity)
	setProfileDefaults(v, "consolidation.low_density", c.LowDensity)
	setProfileDefaults(v, "consolidation.default_density", c.DefaultDensity)
	v.SetDefault("consolidation.no_position_traffic_factor", c.NoPositionFactor)
	v.SetDefault("consolidation.road_detour_base", c.RoadDetourBase)
	v.SetDefault("consolidation.road_detour_max_traffic", c.RoadDetourMaxTraffic)
	v.SetDefault("consolidation.road_detour_traffic_gain", c.RoadDetourTrafficGain)
	v.SetDefault("consolidation.base_speed_kmh", c.BaseSpeedKmh)
	v.SetDefault("consolidation.cost_per_km", c.CostPerKm)
	v.SetDefault("consolidation.deviation_tolerance_km", c.DeviationToleranceKm)
	v.SetDefault("consolidation.overload_threshold", c.OverloadThreshold)
	v.SetDefault("consolidation.improvement_threshold", c.ImprovementThreshold)
	v.SetDefault("consolidation.savings_bonus_cap", c.SavingsBonusCap)
	v.SetDefault("consolidation.savings_bonus_divisor", c.SavingsBonusDivisor)
	v.SetDefault("consolidation.fuel_litres_per_km", c.FuelLitresPerKm)
	v.SetDefault("consolidation.fuel_price", c.FuelPrice)
	v.SetDefault("consolidation.workers", c.Workers)
}

func setProfileDefaults(v *viper.Viper, prefix string, p consolidation.TrafficProfile) {
	v.SetDefault(prefix+".traffic_factor", p.TrafficFactor)
	v.SetDefault(prefix+".weights.utilization", p.Weights.Utilization)
	v.SetDefault(prefix+".weights.savings", p.Weights.Savings)
	v.SetDefault(prefix+".weights.cost_efficiency", p.Weights.CostEfficiency)
	v.SetDefault(prefix+".weights.deviation_penalty", p.Weights.DeviationPenalty)
	v.SetDefault(prefix+".weights.overload_risk", p.Weights.OverloadRisk)
}

// Load. decode the engine tuning from v (defaults registered first) and validate it.
func Load(v *viper.Viper) (EngineConfig, error) {
	SetDefaults(v)

	var cfg EngineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("decode engine config: %w", err)
	}
	if err := cfg.Cost.Validate(); err != nil {
		return EngineConfig{}, fmt.Errorf("invalid cost params: %w", err)
	}
	if err := cfg.Consolidation.Validate(); err != nil {
		return EngineConfig{}, fmt.Errorf("invalid consolidation config: %w", err)
	}
	return cfg, nil
}

// ServerDefaults. http server keys read by pkg/http.
func ServerDefaults(v *viper.Viper) {
	v.SetDefault("API_PORT", 6060)
	v.SetDefault("WEBSOCKET_PORT", 6666)
	v.SetDefault("WEBSOCKET_PROXY_PORT", 6767)
	v.SetDefault("API_TIMEOUT", "60s")
	v.SetDefault("HTTP_SERVER_READ_TIMEOUT", "10s")
	v.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "10s")
	v.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	v.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("ROUTE_CACHE_SIZE", 1024)
	v.SetDefault("WEBSOCKET_WORKERS", 128)
	v.SetDefault("WEBSOCKET_QUEUE", 16)
}
