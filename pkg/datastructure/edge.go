package datastructure

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/freightx/pkg"
	"github.com/lintang-b-s/freightx/pkg/geo"
	"github.com/lintang-b-s/freightx/pkg/util"
)

type NodeID string

var ErrInvalidEdge = errors.New("invalid edge")

// Edge. directed road segment, immutable once constructed.
type Edge struct {
	id         string
	from       NodeID
	to         NodeID
	distance   float64 // km
	congestion float64 // [0,1]
	aqi        float64 // [0,500]
	restricted bool
	fromCoord  geo.Coordinate
	toCoord    geo.Coordinate
}

func NewEdge(id string, from, to NodeID, distance, congestion, aqi float64, restricted bool,
	fromCoord, toCoord geo.Coordinate) (Edge, error) {
	if !util.IsFinite(distance, congestion, aqi) {
		return Edge{}, fmt.Errorf("%w %s: non-finite attribute", ErrInvalidEdge, id)
	}
	if distance < 0 {
		return Edge{}, fmt.Errorf("%w %s: negative distance %f", ErrInvalidEdge, id, distance)
	}
	if congestion < 0 || congestion > 1 {
		return Edge{}, fmt.Errorf("%w %s: congestion %f outside [0,1]", ErrInvalidEdge, id, congestion)
	}
	if aqi < 0 || aqi > pkg.MAX_AQI {
		return Edge{}, fmt.Errorf("%w %s: aqi %f outside [0,%v]", ErrInvalidEdge, id, aqi, pkg.MAX_AQI)
	}
	if !geo.IsValidCoordinate(fromCoord) || !geo.IsValidCoordinate(toCoord) {
		return Edge{}, fmt.Errorf("%w %s: invalid endpoint coordinate", ErrInvalidEdge, id)
	}
	return Edge{
		id:         id,
		from:       from,
		to:         to,
		distance:   distance,
		congestion: congestion,
		aqi:        aqi,
		restricted: restricted,
		fromCoord:  fromCoord,
		toCoord:    toCoord,
	}, nil
}

func (e Edge) GetEdgeId() string {
	return e.id
}

func (e Edge) GetFrom() NodeID {
	return e.from
}

func (e Edge) GetTo() NodeID {
	return e.to
}

// GetLength. km
func (e Edge) GetLength() float64 {
	return e.distance
}

func (e Edge) GetCongestion() float64 {
	return e.congestion
}

func (e Edge) GetAQI() float64 {
	return e.aqi
}

func (e Edge) IsRestricted() bool {
	return e.restricted
}

func (e Edge) GetFromCoordinate() geo.Coordinate {
	return e.fromCoord
}

func (e Edge) GetToCoordinate() geo.Coordinate {
	return e.toCoord
}
