package consolidation

import (
	"fmt"

	"github.com/lintang-b-s/freightx/pkg"
)

// WeightProfile. composite score weights, in the order
// utilization, savings, cost efficiency, deviation penalty, overload risk.
type WeightProfile struct {
	Utilization      float64 `mapstructure:"utilization" json:"utilization"`
	Savings          float64 `mapstructure:"savings" json:"savings"`
	CostEfficiency   float64 `mapstructure:"cost_efficiency" json:"cost_efficiency"`
	DeviationPenalty float64 `mapstructure:"deviation_penalty" json:"deviation_penalty"`
	OverloadRisk     float64 `mapstructure:"overload_risk" json:"overload_risk"`
}

type TrafficProfile struct {
	Weights       WeightProfile `mapstructure:"weights" json:"weights"`
	TrafficFactor float64       `mapstructure:"traffic_factor" json:"traffic_factor"`
}

type Config struct {
	MaxPickupRadiusKm       float64 `mapstructure:"max_pickup_radius_km" json:"max_pickup_radius_km"`
	MaxCandidatesPerVehicle int     `mapstructure:"max_candidates_per_vehicle" json:"max_candidates_per_vehicle"`
	MaxSeeds                int     `mapstructure:"max_seeds" json:"max_seeds"`
	MaxBundleSize           int     `mapstructure:"max_bundle_size" json:"max_bundle_size"`

	DensityRadiusKm      float64        `mapstructure:"density_radius_km" json:"density_radius_km"`
	HighDensityThreshold int            `mapstructure:"high_density_threshold" json:"high_density_threshold"`
	LowDensityThreshold  int            `mapstructure:"low_density_threshold" json:"low_density_threshold"`
	HighDensity          TrafficProfile `mapstructure:"high_density" json:"high_density"`
	LowDensity           TrafficProfile `mapstructure:"low_density" json:"low_density"`
	DefaultDensity       TrafficProfile `mapstructure:"default_density" json:"default_density"`
	NoPositionFactor     float64        `mapstructure:"no_position_traffic_factor" json:"no_position_traffic_factor"`

	RoadDetourBase        float64 `mapstructure:"road_detour_base" json:"road_detour_base"`
	RoadDetourMaxTraffic  float64 `mapstructure:"road_detour_max_traffic" json:"road_detour_max_traffic"`
	RoadDetourTrafficGain float64 `mapstructure:"road_detour_traffic_gain" json:"road_detour_traffic_gain"`

	BaseSpeedKmh         float64 `mapstructure:"base_speed_kmh" json:"base_speed_kmh"`
	CostPerKm            float64 `mapstructure:"cost_per_km" json:"cost_per_km"`
	DeviationToleranceKm float64 `mapstructure:"deviation_tolerance_km" json:"deviation_tolerance_km"`
	OverloadThreshold    float64 `mapstructure:"overload_threshold" json:"overload_threshold"`

	ImprovementThreshold float64 `mapstructure:"improvement_threshold" json:"improvement_threshold"`
	SavingsBonusCap      float64 `mapstructure:"savings_bonus_cap" json:"savings_bonus_cap"`
	SavingsBonusDivisor  float64 `mapstructure:"savings_bonus_divisor" json:"savings_bonus_divisor"`

	FuelLitresPerKm float64 `mapstructure:"fuel_litres_per_km" json:"fuel_litres_per_km"`
	FuelPrice       float64 `mapstructure:"fuel_price" json:"fuel_price"`

	// Workers. bundle search goroutines, 0 means one per vehicle up to 8.
	Workers int `mapstructure:"workers" json:"workers"`
}

func DefaultConfig() Config {
	return Config{
		MaxPickupRadiusKm:       30,
		MaxCandidatesPerVehicle: 24,
		MaxSeeds:                8,
		MaxBundleSize:           4,

		DensityRadiusKm:      6,
		HighDensityThreshold: 5,
		LowDensityThreshold:  1,
		HighDensity: TrafficProfile{
			Weights:       WeightProfile{0.50, 0.25, 0.08, 0.14, 0.03},
			TrafficFactor: 1.2,
		},
		LowDensity: TrafficProfile{
			Weights:       WeightProfile{0.32, 0.33, 0.20, 0.10, 0.05},
			TrafficFactor: 1.05,
		},
		DefaultDensity: TrafficProfile{
			Weights:       WeightProfile{0.40, 0.30, 0.10, 0.15, 0.05},
			TrafficFactor: 1.12,
		},
		NoPositionFactor: 1,

		RoadDetourBase:        pkg.ROAD_DETOUR_BASE,
		RoadDetourMaxTraffic:  pkg.ROAD_DETOUR_MAX_TRAFFIC,
		RoadDetourTrafficGain: pkg.ROAD_DETOUR_TRAFFIC_GAIN,

		BaseSpeedKmh:         28,
		CostPerKm:            14,
		DeviationToleranceKm: 15,
		OverloadThreshold:    0.9,

		ImprovementThreshold: 0.02,
		SavingsBonusCap:      0.15,
		SavingsBonusDivisor:  20,

		FuelLitresPerKm: 0.12,
		FuelPrice:       100,
	}
}

func (c Config) Validate() error {
	switch {
	case c.MaxPickupRadiusKm <= 0:
		return fmt.Errorf("max pickup radius must be positive, got %v", c.MaxPickupRadiusKm)
	case c.MaxCandidatesPerVehicle <= 0 || c.MaxSeeds <= 0 || c.MaxBundleSize <= 0:
		return fmt.Errorf("candidate, seed and bundle caps must be positive, got %d/%d/%d",
			c.MaxCandidatesPerVehicle, c.MaxSeeds, c.MaxBundleSize)
	case c.DensityRadiusKm < 0:
		return fmt.Errorf("density radius must be non-negative, got %v", c.DensityRadiusKm)
	case c.BaseSpeedKmh <= 0:
		return fmt.Errorf("base speed must be positive, got %v", c.BaseSpeedKmh)
	case c.CostPerKm <= 0:
		return fmt.Errorf("cost per km must be positive, got %v", c.CostPerKm)
	case c.DeviationToleranceKm <= 0:
		return fmt.Errorf("deviation tolerance must be positive, got %v", c.DeviationToleranceKm)
	case c.OverloadThreshold <= 0 || c.OverloadThreshold >= 1:
		return fmt.Errorf("overload threshold must be in (0,1), got %v", c.OverloadThreshold)
	case c.SavingsBonusDivisor <= 0:
		return fmt.Errorf("savings bonus divisor must be positive, got %v", c.SavingsBonusDivisor)
	case c.RoadDetourBase < 1:
		return fmt.Errorf("road detour base must be at least 1, got %v", c.RoadDetourBase)
	case c.Workers < 0:
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	return nil
}
