package consolidation

import (
	"math"

	"github.com/lintang-b-s/freightx/pkg/geo"
	"github.com/lintang-b-s/freightx/pkg/spatialindex"
)

// densityIndex. positions of every vehicle with a usable position.
type densityIndex struct {
	cfg       Config
	positions *spatialindex.Rtree[int]
	vehicles  []Vehicle
}

func newDensityIndex(cfg Config, vehicles []Vehicle) *densityIndex {
	di := &densityIndex{
		cfg:       cfg,
		positions: spatialindex.NewRtree[int](),
		vehicles:  vehicles,
	}
	for i, v := range vehicles {
		if v.HasValidPosition() {
			di.positions.Insert(*v.Position, i)
		}
	}
	return di
}

// localDensity. other positioned vehicles within DensityRadiusKm of vehicle i.
func (di *densityIndex) localDensity(i int) int {
	v := di.vehicles[i]
	if !v.HasValidPosition() {
		return 0
	}
	count := 0
	for _, j := range di.positions.SearchWithinRadius(v.Position.Lat, v.Position.Lon, di.cfg.DensityRadiusKm) {
		if j == i {
			continue
		}
		if geo.HaversineBetween(*v.Position, *di.vehicles[j].Position) <= di.cfg.DensityRadiusKm {
			count++
		}
	}
	return count
}

// trafficProfile. busy areas favour utilization, quiet areas favour savings. also returns the local density.
func (di *densityIndex) trafficProfile(i int) (TrafficProfile, int) {
	if !di.vehicles[i].HasValidPosition() {
		return TrafficProfile{Weights: di.cfg.DefaultDensity.Weights, TrafficFactor: di.cfg.NoPositionFactor}, 0
	}
	density := di.localDensity(i)
	switch {
	case density >= di.cfg.HighDensityThreshold:
		return di.cfg.HighDensity, density
	case density <= di.cfg.LowDensityThreshold:
		return di.cfg.LowDensity, density
	default:
		return di.cfg.DefaultDensity, density
	}
}

// roadDistance. straight-line km scaled to approximate the road network detour under traffic.
func roadDistance(cfg Config, directKm, trafficFactor float64) float64 {
	return directKm * roadDetourFactor(cfg, trafficFactor)
}

func roadDetourFactor(cfg Config, trafficFactor float64) float64 {
	return cfg.RoadDetourBase + math.Min(cfg.RoadDetourMaxTraffic, (trafficFactor-1)*cfg.RoadDetourTrafficGain)
}
