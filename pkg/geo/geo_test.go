package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateHaversineDistance(t *testing.T) {
	// one degree of latitude is ~111.19 km
	d := CalculateHaversineDistance(0, 0, 1, 0)
	assert.InDelta(t, 111.19, d, 0.01)

	assert.Equal(t, 0.0, CalculateHaversineDistance(-7.76, 110.37, -7.76, 110.37))

	ab := CalculateHaversineDistance(-7.76, 110.37, -7.80, 110.40)
	ba := CalculateHaversineDistance(-7.80, 110.40, -7.76, 110.37)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestIsValidCoordinate(t *testing.T) {
	testCases := []struct {
		name  string
		coord Coordinate
		want  bool
	}{
		{name: "jogja", coord: NewCoordinate(-7.76, 110.37), want: true},
		{name: "nan", coord: InvalidCoordinate(), want: false},
		{name: "lat out of range", coord: NewCoordinate(91, 0), want: false},
		{name: "lon out of range", coord: NewCoordinate(0, 181), want: false},
		{name: "inf", coord: NewCoordinate(math.Inf(1), 0), want: false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidCoordinate(tt.coord))
		})
	}
}

func TestPolylineRoundTrip(t *testing.T) {
	coords := []Coordinate{NewCoordinate(38.5, -120.2), NewCoordinate(40.7, -120.95), NewCoordinate(43.252, -126.453)}
	encoded := PolylineFromCoords(coords)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)

	decoded, err := CoordsFromPolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	for i := range coords {
		assert.InDelta(t, coords[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, coords[i].Lon, decoded[i].Lon, 1e-5)
	}
}

func TestCentroid(t *testing.T) {
	c := Centroid([]Coordinate{NewCoordinate(0, 0), NewCoordinate(2, 4)})
	assert.Equal(t, NewCoordinate(1, 2), c)
	assert.False(t, IsValidCoordinate(Centroid(nil)))
}

// pointAt. great-circle destination dist km from (lat, lon) along bearing (degrees).
func pointAt(lat, lon, bearing, dist float64) (float64, float64) {
	dr := dist / earthRadiusKM
	br := bearing * math.Pi / 180
	lat1, lon1 := lat*math.Pi/180, lon*math.Pi/180

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(dr) + math.Cos(lat1)*math.Sin(dr)*math.Cos(br))
	lon2 := lon1 + math.Atan2(math.Sin(br)*math.Sin(dr)*math.Cos(lat1), math.Cos(dr)-math.Sin(lat1)*math.Sin(lat2))
	return radToDeg(lat2), radToDeg(lon2)
}

func TestBoundingBoxCoversCircle(t *testing.T) {
	lat, lon, radius := -7.76, 110.37, 30.0
	minLat, minLon, maxLat, maxLon := BoundingBox(lat, lon, radius)
	for bearing := 0.0; bearing < 360; bearing += 7.5 {
		pLat, pLon := pointAt(lat, lon, bearing, radius*0.999)
		assert.True(t, pLat >= minLat && pLat <= maxLat, "lat bearing %v", bearing)
		assert.True(t, pLon >= minLon && pLon <= maxLon, "lon bearing %v", bearing)
	}

	_, minLon, _, maxLon = BoundingBox(10, 179.9, 30)
	assert.Equal(t, -180.0, minLon)
	assert.Equal(t, 180.0, maxLon)
}
