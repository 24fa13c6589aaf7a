package geo

import (
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/freightx/pkg/util"
)

// IsValidCoordinate. finite and inside [-90,90] x [-180,180].
func IsValidCoordinate(c Coordinate) bool {
	if !util.IsFinite(c.Lat, c.Lon) {
		return false
	}
	return s2.LatLngFromDegrees(c.Lat, c.Lon).IsValid()
}
