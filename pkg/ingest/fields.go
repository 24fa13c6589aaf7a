package ingest

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/freightx/pkg/geo"
	"github.com/spf13/cast"
)

var (
	ErrMissingField   = errors.New("missing field")
	ErrMalformedField = errors.New("malformed field")
)

// RowError. problem with one input row, the row is dropped.
type RowError struct {
	Kind  string
	Index int
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d: %v", e.Kind, e.Index, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

var (
	latKeys = []string{"lat", "latitude"}
	lonKeys = []string{"lng", "lon", "long", "longitude"}
)

// lookup. value of the first synonym present with a non-nil value.
func lookup(row map[string]any, keys ...string) (any, string, bool) {
	for _, k := range keys {
		if v, ok := row[k]; ok && v != nil {
			return v, k, true
		}
	}
	return nil, "", false
}

func getString(row map[string]any, keys ...string) (string, bool, error) {
	v, k, ok := lookup(row, keys...)
	if !ok {
		return "", false, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", true, fmt.Errorf("%w %s: %v", ErrMalformedField, k, err)
	}
	return s, true, nil
}

func getFloat(row map[string]any, keys ...string) (float64, bool, error) {
	v, k, ok := lookup(row, keys...)
	if !ok {
		return 0, false, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, true, fmt.Errorf("%w %s: %v", ErrMalformedField, k, err)
	}
	return f, true, nil
}

func getBool(row map[string]any, keys ...string) (bool, error) {
	v, k, ok := lookup(row, keys...)
	if !ok {
		return false, nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, fmt.Errorf("%w %s: %v", ErrMalformedField, k, err)
	}
	return b, nil
}

// requiredString. missing or blank values are rejected.
func requiredString(row map[string]any, keys ...string) (string, error) {
	s, ok, err := getString(row, keys...)
	if err != nil {
		return "", err
	}
	if !ok || s == "" {
		return "", fmt.Errorf("%w %s", ErrMissingField, keys[0])
	}
	return s, nil
}

func optionalFloat(row map[string]any, def float64, keys ...string) (float64, error) {
	f, ok, err := getFloat(row, keys...)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	return f, nil
}

// coordinateField. a point given either as a nested object / [lat, lon] pair under one of
// nestedKeys, or as flat prefixed keys (pickup_lat, pickupLat, ...). found is false when
// neither form is present.
func coordinateField(row map[string]any, nestedKeys, prefixes []string) (geo.Coordinate, bool, error) {
	if v, k, ok := lookup(row, nestedKeys...); ok {
		c, err := parseCoordinate(v)
		if err != nil {
			return geo.InvalidCoordinate(), true, fmt.Errorf("%w %s: %v", ErrMalformedField, k, err)
		}
		return c, true, nil
	}

	var flatLat, flatLon []string
	for _, p := range prefixes {
		for _, k := range latKeys {
			flatLat = append(flatLat, p+"_"+k, p+capitalize(k))
		}
		for _, k := range lonKeys {
			flatLon = append(flatLon, p+"_"+k, p+capitalize(k))
		}
	}
	return latLonFields(row, flatLat, flatLon)
}

func latLonFields(row map[string]any, latNames, lonNames []string) (geo.Coordinate, bool, error) {
	lat, latOk, err := getFloat(row, latNames...)
	if err != nil {
		return geo.InvalidCoordinate(), true, err
	}
	lon, lonOk, err := getFloat(row, lonNames...)
	if err != nil {
		return geo.InvalidCoordinate(), true, err
	}
	if !latOk && !lonOk {
		return geo.InvalidCoordinate(), false, nil
	}
	if !latOk || !lonOk {
		// half a coordinate is as good as none, the engine filters it
		return geo.InvalidCoordinate(), true, nil
	}
	return geo.NewCoordinate(lat, lon), true, nil
}

func parseCoordinate(v any) (geo.Coordinate, error) {
	switch t := v.(type) {
	case geo.Coordinate:
		return t, nil
	case *geo.Coordinate:
		return *t, nil
	case []float64:
		if len(t) != 2 {
			return geo.InvalidCoordinate(), fmt.Errorf("want [lat, lon], got %d values", len(t))
		}
		return geo.NewCoordinate(t[0], t[1]), nil
	}

	if m, err := cast.ToStringMapE(v); err == nil {
		c, _, err := latLonFields(m, latKeys, lonKeys)
		return c, err
	}

	pair, err := cast.ToSliceE(v)
	if err != nil {
		return geo.InvalidCoordinate(), fmt.Errorf("unsupported coordinate %T", v)
	}
	if len(pair) != 2 {
		return geo.InvalidCoordinate(), fmt.Errorf("want [lat, lon], got %d values", len(pair))
	}
	lat, err := cast.ToFloat64E(pair[0])
	if err != nil {
		return geo.InvalidCoordinate(), err
	}
	lon, err := cast.ToFloat64E(pair[1])
	if err != nil {
		return geo.InvalidCoordinate(), err
	}
	return geo.NewCoordinate(lat, lon), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
