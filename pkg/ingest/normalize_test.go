package ingest

import (
	"errors"
	"math"
	"testing"

	"github.com/go-playground/validator/v10"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"github.com/lintang-b-s/freightx/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestNormalizeVehicles(t *testing.T) {
	rows := []map[string]any{
		{"vehicleId": "v1", "capacity_kg": "120", "currentLoad": 20, "status": " Available ",
			"position": map[string]any{"latitude": -6.2, "lng": 106.8}},
		{"id": "v2", "capacity": 50, "lat": "-6.3", "longitude": 106.9},
		{"id": "v3", "capacity": 50},
		{"capacity": 50},
		{"id": "v5", "capacity": "lots"},
		{"id": "v6", "max_load": 10, "location": []any{-6.1, 106.7}},
		{"id": "v7", "capacity": -5},
	}

	vehicles, err := NormalizeVehicles(rows)
	require.Len(t, vehicles, 4)

	assert.Equal(t, "v1", vehicles[0].ID)
	assert.Equal(t, 120.0, vehicles[0].Capacity)
	assert.Equal(t, 20.0, vehicles[0].CurrentLoad)
	assert.Equal(t, "available", vehicles[0].Status)
	require.NotNil(t, vehicles[0].Position)
	assert.Equal(t, geo.NewCoordinate(-6.2, 106.8), *vehicles[0].Position)

	require.NotNil(t, vehicles[1].Position)
	assert.Equal(t, geo.NewCoordinate(-6.3, 106.9), *vehicles[1].Position)

	assert.Nil(t, vehicles[2].Position)
	assert.False(t, vehicles[2].HasValidPosition())

	assert.Equal(t, "v6", vehicles[3].ID)
	assert.Equal(t, geo.NewCoordinate(-6.1, 106.7), *vehicles[3].Position)

	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], ErrMissingField)
	assert.ErrorIs(t, errs[1], ErrMalformedField)

	var rowErr *RowError
	require.True(t, errors.As(errs[2], &rowErr))
	assert.Equal(t, "vehicle", rowErr.Kind)
	assert.Equal(t, 6, rowErr.Index)
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(errs[2], &verrs))
}

func TestNormalizeDeliveries(t *testing.T) {
	rows := []map[string]any{
		{"shipment_id": "d1", "weight_kg": "12.5", "status": "PENDING",
			"pickup": map[string]any{"lat": 1, "lon": 2}, "dropoff": map[string]any{"lat": 1.1, "lon": 2.1}},
		{"id": "d2", "weight": 3, "status": "assigned", "pickup_lat": 1, "pickup_lng": 2, "dropLat": 3, "dropLng": 4},
		{"id": "d3", "weight": 3, "status": "pending"},
		{"id": "d4", "status": "pending"},
		{"id": "d5", "weight": -1},
		{"id": "d6", "weight": 1, "pickup": "somewhere"},
	}

	deliveries, err := NormalizeDeliveries(rows)
	require.Len(t, deliveries, 3)

	assert.Equal(t, "d1", deliveries[0].ID)
	assert.Equal(t, 12.5, deliveries[0].Weight)
	assert.Equal(t, "pending", deliveries[0].Status)
	assert.Equal(t, geo.NewCoordinate(1, 2), deliveries[0].Pickup)
	assert.Equal(t, geo.NewCoordinate(1.1, 2.1), deliveries[0].Drop)
	assert.True(t, deliveries[0].IsEligible())

	assert.Equal(t, geo.NewCoordinate(1, 2), deliveries[1].Pickup)
	assert.Equal(t, geo.NewCoordinate(3, 4), deliveries[1].Drop)
	assert.True(t, deliveries[1].IsEligible())

	// kept, the engine drops it during candidate selection
	assert.True(t, math.IsNaN(deliveries[2].Pickup.Lat))
	assert.False(t, deliveries[2].IsEligible())

	errs := multierr.Errors(err)
	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], ErrMissingField)
	assert.ErrorIs(t, errs[2], ErrMalformedField)
}

func TestNormalizeEdges(t *testing.T) {
	rows := []map[string]any{
		{"edge_id": "e1", "source": "A", "target": "B", "distance_km": "10", "aqi": "40", "is_restricted": "true",
			"from_lat": 0, "from_lon": 0, "to_coord": []any{0, 0.09}},
		{"id": "e2", "from": "B", "to": "C", "distance": 5, "congestion": 1.5,
			"from_coord": []float64{0, 0.09}, "to_coord": []float64{0, 0.1}},
		{"id": "e3", "from": "B", "to": "C"},
		{"id": "e4", "from": "C", "to": "D", "distance": 1},
		{"id": "e5", "from": "C", "to": "D", "distance": 1, "restricted": "maybe",
			"fromCoord": map[string]any{"lat": 0, "lng": 0.1}, "toCoord": map[string]any{"lat": 0, "lng": 0.2}},
		{"id": "e6", "origin": "C", "destination": "D", "length": 2,
			"fromCoord": map[string]any{"lat": 0, "lng": 0.1}, "toCoord": map[string]any{"lat": 0, "lng": 0.2}},
	}

	edges, err := NormalizeEdges(rows)
	require.Len(t, edges, 2)

	e := edges[0]
	assert.Equal(t, "e1", e.GetEdgeId())
	assert.Equal(t, da.NodeID("A"), e.GetFrom())
	assert.Equal(t, da.NodeID("B"), e.GetTo())
	assert.Equal(t, 10.0, e.GetLength())
	assert.Equal(t, 40.0, e.GetAQI())
	assert.Equal(t, 0.0, e.GetCongestion())
	assert.True(t, e.IsRestricted())
	assert.Equal(t, geo.NewCoordinate(0, 0.09), e.GetToCoordinate())

	assert.Equal(t, "e6", edges[1].GetEdgeId())
	assert.False(t, edges[1].IsRestricted())

	errs := multierr.Errors(err)
	require.Len(t, errs, 4)
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(errs[0], &verrs))
	assert.ErrorIs(t, errs[1], ErrMissingField)
	assert.ErrorIs(t, errs[2], da.ErrInvalidEdge)
	assert.ErrorIs(t, errs[3], ErrMalformedField)
}

func TestNormalizeEmpty(t *testing.T) {
	v, err := NormalizeVehicles(nil)
	assert.NoError(t, err)
	assert.Empty(t, v)
}
