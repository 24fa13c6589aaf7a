package geo

import (
	"math"

	"github.com/lintang-b-s/freightx/pkg/util"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// InvalidCoordinate. placeholder for a missing position, rejected by IsValidCoordinate.
func InvalidCoordinate() Coordinate {
	return Coordinate{Lat: math.NaN(), Lon: math.NaN()}
}

const (
	earthRadiusKM = 6371.0
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// CalculateHaversineDistance. calculate haversine distance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

func HaversineBetween(a, b Coordinate) float64 {
	return CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
}

func radToDeg(r float64) float64 {
	return 180.0 * r / math.Pi
}

// Centroid. arithmetic mean of coords, fine for the few-km spread of a delivery bundle.
func Centroid(coords []Coordinate) Coordinate {
	if len(coords) == 0 {
		return InvalidCoordinate()
	}
	lat, lon := 0.0, 0.0
	for _, c := range coords {
		lat += c.Lat
		lon += c.Lon
	}
	n := float64(len(coords))
	return NewCoordinate(lat/n, lon/n)
}

// BoundingBox. lat/lon box enclosing every point within radius km of (lat, lon).
// ref: http://janmatuschek.de/LatitudeLongitudeBoundingCoordinates
// boxes crossing a pole or the antimeridian widen to the full longitude range.
func BoundingBox(lat, lon, radius float64) (minLat, minLon, maxLat, maxLon float64) {
	angular := radius / earthRadiusKM
	latRad := util.DegreeToRadians(lat)

	minLatRad := latRad - angular
	maxLatRad := latRad + angular
	if minLatRad <= -math.Pi/2 || maxLatRad >= math.Pi/2 {
		return math.Max(radToDeg(minLatRad), -90), -180, math.Min(radToDeg(maxLatRad), 90), 180
	}

	deltaLon := radToDeg(math.Asin(math.Sin(angular) / math.Cos(latRad)))
	minLon, maxLon = lon-deltaLon, lon+deltaLon
	if minLon < -180 || maxLon > 180 {
		minLon, maxLon = -180, 180
	}
	return radToDeg(minLatRad), minLon, radToDeg(maxLatRad), maxLon
}
