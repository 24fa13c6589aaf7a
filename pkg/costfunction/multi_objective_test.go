package costfunction

import (
	"fmt"
	"testing"

	"github.com/lintang-b-s/freightx/pkg"
	"github.com/stretchr/testify/assert"
)

type testEdge struct {
	length, congestion, aqi float64
	restricted              bool
}

func (e testEdge) GetLength() float64     { return e.length }
func (e testEdge) GetCongestion() float64 { return e.congestion }
func (e testEdge) GetAQI() float64        { return e.aqi }
func (e testEdge) IsRestricted() bool     { return e.restricted }
func (e testEdge) GetEdgeId() string      { return "test" }

func TestGetWeightPerMode(t *testing.T) {
	e := testEdge{length: 10, congestion: 0.5, aqi: 40}
	testCases := []struct {
		name    string
		mode    pkg.Objective
		battery float64
		edge    testEdge
		want    float64
	}{
		// travelTime = 15, carbon = 2
		{name: "fastest", mode: pkg.FASTEST, battery: 100, edge: e, want: 2*15 + 0.5*40},
		{name: "greenest", mode: pkg.GREENEST, battery: 100, edge: e, want: 2*2 + 40},
		{name: "safest", mode: pkg.SAFEST, battery: 100, edge: e, want: 2*40 + 15},
		{name: "fastest low battery", mode: pkg.FASTEST, battery: 20, edge: e, want: 50 + 30},
		{name: "battery exactly at threshold", mode: pkg.FASTEST, battery: 25, edge: e, want: 50},
		{name: "restricted", mode: pkg.GREENEST, battery: 100,
			edge: testEdge{length: 10, congestion: 0.5, aqi: 40, restricted: true}, want: 44 + 10000},
		{name: "straight edge", mode: pkg.FASTEST, battery: 100, edge: testEdge{length: 10}, want: 20},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := EdgeCost(tt.edge, NewRouteContext(tt.battery, "", tt.mode))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestGetWeightNonNegative(t *testing.T) {
	for _, mode := range pkg.Objectives {
		for _, battery := range []float64{0, 24.9, 25, 100} {
			for _, restricted := range []bool{false, true} {
				for _, length := range []float64{0, 0.3, 12, 250} {
					for _, congestion := range []float64{0, 0.7, 1} {
						for _, aqi := range []float64{0, 150, 500} {
							e := testEdge{length: length, congestion: congestion, aqi: aqi, restricted: restricted}
							w := EdgeCost(e, NewRouteContext(battery, "", mode))
							assert.GreaterOrEqual(t, w, 0.0, fmt.Sprintf("%v %+v battery=%v", mode, e, battery))
						}
					}
				}
			}
		}
	}
}

func TestParamsValidate(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())
	p := DefaultParams()
	p.RestrictedPenalty = -1
	assert.Error(t, p.Validate())
}
