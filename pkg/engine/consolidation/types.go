package consolidation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lintang-b-s/freightx/pkg"
	"github.com/lintang-b-s/freightx/pkg/geo"
	"github.com/lintang-b-s/freightx/pkg/util"
)

var (
	ErrInvalidVehicle  = errors.New("invalid vehicle")
	ErrInvalidDelivery = errors.New("invalid delivery")
)

type Vehicle struct {
	ID          string          `json:"id"`
	Capacity    float64         `json:"capacity"`
	CurrentLoad float64         `json:"current_load"`
	Status      string          `json:"status"`
	Position    *geo.Coordinate `json:"position,omitempty"`
}

// NewVehicle. position may be nil, such a vehicle never gets a suggestion.
func NewVehicle(id string, capacity, currentLoad float64, status string, position *geo.Coordinate) (Vehicle, error) {
	if !util.IsFinite(capacity, currentLoad) || capacity < 0 || currentLoad < 0 {
		return Vehicle{}, fmt.Errorf("%w %s: capacity %f, current load %f", ErrInvalidVehicle, id, capacity, currentLoad)
	}
	return Vehicle{
		ID:          id,
		Capacity:    capacity,
		CurrentLoad: currentLoad,
		Status:      status,
		Position:    position,
	}, nil
}

func (v Vehicle) HasValidPosition() bool {
	return v.Position != nil && geo.IsValidCoordinate(*v.Position)
}

// AvailableCapacity. capacity - current load, 0 for malformed records.
func (v Vehicle) AvailableCapacity() float64 {
	if !util.IsFinite(v.Capacity, v.CurrentLoad) || v.Capacity <= 0 {
		return 0
	}
	return v.Capacity - v.CurrentLoad
}

type Delivery struct {
	ID     string         `json:"id"`
	Weight float64        `json:"weight"`
	Pickup geo.Coordinate `json:"pickup"`
	Drop   geo.Coordinate `json:"drop"`
	Status string         `json:"status"`
}

func NewDelivery(id string, weight float64, pickup, drop geo.Coordinate, status string) (Delivery, error) {
	if !util.IsFinite(weight) || weight < 0 {
		return Delivery{}, fmt.Errorf("%w %s: weight %f", ErrInvalidDelivery, id, weight)
	}
	return Delivery{
		ID:     id,
		Weight: weight,
		Pickup: pickup,
		Drop:   drop,
		Status: NormalizeStatus(status),
	}, nil
}

func NormalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// IsEligible. pending/assigned, finite coordinates and a usable weight.
func (d Delivery) IsEligible() bool {
	status := NormalizeStatus(d.Status)
	if status != pkg.STATUS_PENDING && status != pkg.STATUS_ASSIGNED {
		return false
	}
	if !util.IsFinite(d.Weight) || d.Weight < 0 {
		return false
	}
	return geo.IsValidCoordinate(d.Pickup) && geo.IsValidCoordinate(d.Drop)
}

type Suggestion struct {
	VehicleID    string           `json:"vehicle_id"`
	DeliveryIDs  []string         `json:"delivery_ids"`
	Route        []geo.Coordinate `json:"route"`
	DistanceKm   float64          `json:"distance_km"`
	DurationMin  float64          `json:"duration_min"`
	SavingsKm    float64          `json:"savings_km"`
	SavingsRatio float64          `json:"savings_ratio"`
	Score        float64          `json:"score"`
	Utilization  float64          `json:"utilization"`
	TotalWeight  float64          `json:"total_weight"`
}

// Cluster. pickup group of one accepted suggestion, for map display.
type Cluster struct {
	VehicleID   string         `json:"vehicle_id"`
	DeliveryIDs []string       `json:"delivery_ids"`
	Centroid    geo.Coordinate `json:"centroid"`
}

type Result struct {
	Suggestions  []Suggestion `json:"suggestions"`
	Clusters     []Cluster    `json:"clusters"`
	TripsAvoided int          `json:"trips_avoided"`
	FuelSaved    float64      `json:"fuel_saved"`
	CostSaved    float64      `json:"cost_saved"`
}

func emptyResult() Result {
	return Result{
		Suggestions: []Suggestion{},
		Clusters:    []Cluster{},
	}
}
