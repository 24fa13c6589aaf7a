package ingest

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"github.com/lintang-b-s/freightx/pkg/engine/consolidation"
	"github.com/lintang-b-s/freightx/pkg/geo"
	"go.uber.org/multierr"
)

var validate = validator.New()

type vehicleRecord struct {
	ID          string  `validate:"required"`
	Capacity    float64 `validate:"gte=0"`
	CurrentLoad float64 `validate:"gte=0"`
}

type deliveryRecord struct {
	ID     string  `validate:"required"`
	Weight float64 `validate:"gte=0"`
}

type edgeRecord struct {
	ID         string  `validate:"required"`
	From       string  `validate:"required"`
	To         string  `validate:"required"`
	Distance   float64 `validate:"gte=0"`
	Congestion float64 `validate:"gte=0,lte=1"`
	AQI        float64 `validate:"gte=0,lte=500"`
}

// NormalizeVehicles. loosely typed vehicle rows to Vehicle values. rows with a missing id or a
// malformed number are dropped and reported in the returned error, every other row is returned.
// a vehicle without a position is kept with a nil Position.
func NormalizeVehicles(rows []map[string]any) ([]consolidation.Vehicle, error) {
	out := make([]consolidation.Vehicle, 0, len(rows))
	var errs error
	for i, row := range rows {
		v, err := normalizeVehicle(row)
		if err != nil {
			errs = multierr.Append(errs, &RowError{Kind: "vehicle", Index: i, Err: err})
			continue
		}
		out = append(out, v)
	}
	return out, errs
}

func normalizeVehicle(row map[string]any) (consolidation.Vehicle, error) {
	id, err := requiredString(row, "id", "vehicle_id", "vehicleId")
	if err != nil {
		return consolidation.Vehicle{}, err
	}
	capacity, err := optionalFloat(row, 0, "capacity", "capacity_kg", "capacityKg", "max_load", "maxLoad")
	if err != nil {
		return consolidation.Vehicle{}, err
	}
	load, err := optionalFloat(row, 0, "current_load", "currentLoad", "load", "current_load_kg")
	if err != nil {
		return consolidation.Vehicle{}, err
	}
	status, _, err := getString(row, "status", "state")
	if err != nil {
		return consolidation.Vehicle{}, err
	}

	if err := validate.Struct(vehicleRecord{ID: id, Capacity: capacity, CurrentLoad: load}); err != nil {
		return consolidation.Vehicle{}, err
	}

	var position *geo.Coordinate
	c, found, err := coordinateField(row, []string{"position", "location", "current_location", "currentLocation"}, nil)
	if err != nil {
		return consolidation.Vehicle{}, err
	}
	if !found {
		c, found, err = latLonFields(row, latKeys, lonKeys)
		if err != nil {
			return consolidation.Vehicle{}, err
		}
	}
	if found {
		position = &c
	}

	return consolidation.NewVehicle(id, capacity, load, consolidation.NormalizeStatus(status), position)
}

// NormalizeDeliveries. loosely typed delivery rows to Delivery values. status is lower-cased and
// trimmed, missing coordinates become NaN so the engine filters the delivery.
func NormalizeDeliveries(rows []map[string]any) ([]consolidation.Delivery, error) {
	out := make([]consolidation.Delivery, 0, len(rows))
	var errs error
	for i, row := range rows {
		d, err := normalizeDelivery(row)
		if err != nil {
			errs = multierr.Append(errs, &RowError{Kind: "delivery", Index: i, Err: err})
			continue
		}
		out = append(out, d)
	}
	return out, errs
}

func normalizeDelivery(row map[string]any) (consolidation.Delivery, error) {
	id, err := requiredString(row, "id", "delivery_id", "deliveryId", "shipment_id", "shipmentId")
	if err != nil {
		return consolidation.Delivery{}, err
	}
	weight, ok, err := getFloat(row, "weight", "weight_kg", "weightKg", "load")
	if err != nil {
		return consolidation.Delivery{}, err
	}
	if !ok {
		return consolidation.Delivery{}, fmt.Errorf("%w weight", ErrMissingField)
	}
	status, _, err := getString(row, "status", "state")
	if err != nil {
		return consolidation.Delivery{}, err
	}

	if err := validate.Struct(deliveryRecord{ID: id, Weight: weight}); err != nil {
		return consolidation.Delivery{}, err
	}

	pickup, _, err := coordinateField(row, []string{"pickup", "pickup_location", "pickupLocation", "origin"},
		[]string{"pickup", "origin"})
	if err != nil {
		return consolidation.Delivery{}, err
	}
	drop, _, err := coordinateField(row, []string{"drop", "dropoff", "drop_location", "dropLocation", "destination"},
		[]string{"drop", "dropoff", "destination"})
	if err != nil {
		return consolidation.Delivery{}, err
	}

	return consolidation.NewDelivery(id, weight, pickup, drop, status)
}

// NormalizeEdges. loosely typed road segment rows to Edge values. congestion, aqi and restricted
// default to zero values, everything else is required and checked by NewEdge.
func NormalizeEdges(rows []map[string]any) ([]da.Edge, error) {
	out := make([]da.Edge, 0, len(rows))
	var errs error
	for i, row := range rows {
		e, err := normalizeEdge(row)
		if err != nil {
			errs = multierr.Append(errs, &RowError{Kind: "edge", Index: i, Err: err})
			continue
		}
		out = append(out, e)
	}
	return out, errs
}

func normalizeEdge(row map[string]any) (da.Edge, error) {
	var (
		rec edgeRecord
		err error
	)
	if rec.ID, err = requiredString(row, "id", "edge_id", "edgeId"); err != nil {
		return da.Edge{}, err
	}
	if rec.From, err = requiredString(row, "from", "origin", "source", "from_node", "fromNode"); err != nil {
		return da.Edge{}, err
	}
	if rec.To, err = requiredString(row, "to", "destination", "target", "to_node", "toNode"); err != nil {
		return da.Edge{}, err
	}

	distance, ok, err := getFloat(row, "distance", "distance_km", "distanceKm", "length_km", "length")
	if err != nil {
		return da.Edge{}, err
	}
	if !ok {
		return da.Edge{}, fmt.Errorf("%w distance", ErrMissingField)
	}
	rec.Distance = distance
	if rec.Congestion, err = optionalFloat(row, 0, "congestion", "traffic", "congestion_level"); err != nil {
		return da.Edge{}, err
	}
	if rec.AQI, err = optionalFloat(row, 0, "aqi", "air_quality", "airQuality"); err != nil {
		return da.Edge{}, err
	}
	restricted, err := getBool(row, "restricted", "is_restricted", "isRestricted")
	if err != nil {
		return da.Edge{}, err
	}

	if err := validate.Struct(rec); err != nil {
		return da.Edge{}, err
	}

	fromCoord, _, err := coordinateField(row, []string{"from_coord", "fromCoord", "from_location", "fromLocation"},
		[]string{"from"})
	if err != nil {
		return da.Edge{}, err
	}
	toCoord, _, err := coordinateField(row, []string{"to_coord", "toCoord", "to_location", "toLocation"},
		[]string{"to"})
	if err != nil {
		return da.Edge{}, err
	}

	return da.NewEdge(rec.ID, da.NodeID(rec.From), da.NodeID(rec.To), rec.Distance, rec.Congestion, rec.AQI,
		restricted, fromCoord, toCoord)
}
