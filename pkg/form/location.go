package form

import (
	"strconv"

	"github.com/google/uuid"
)

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"lat" yaml:"lat"`
	Longitude float64 `json:"lng" yaml:"lng"`
}

// String formats the pair as "lat,lng" with six decimals.
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', 6, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', 6, 64)
}

func encodeCoordinate(c *Coordinate) string {
	if c == nil {
		return ""
	}
	return c.String()
}

func copyCoordinate(c *Coordinate) *Coordinate {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

// MapValue shows a location.
type MapValue struct {
	Title      string
	CustomKey  string
	Coordinate *Coordinate
	Address    string
	SpanMeters float64

	id uuid.UUID
}

// NewMapValue constructs a map row. A nil coordinate means no location.
func NewMapValue(title string, coordinate *Coordinate) MapValue {
	return MapValue{Title: title, Coordinate: copyCoordinate(coordinate), id: newID()}
}

// WithCoordinate returns a copy holding coordinate.
func (v MapValue) WithCoordinate(coordinate *Coordinate) MapValue {
	v.Coordinate = copyCoordinate(coordinate)
	v.id = newID()
	return v
}

// WithAddress returns a copy holding address.
func (v MapValue) WithAddress(address string) MapValue {
	v.Address = address
	v.id = newID()
	return v
}

func (v MapValue) ID() uuid.UUID       { return v.id }
func (v MapValue) OverrideKey() string { return v.CustomKey }
func (v MapValue) Item() Item          { return wrap(KindMap, v) }

// EncodedValue implements Encodable.
func (v MapValue) EncodedValue() map[string]string {
	return single(keyFor(v.CustomKey, v.Title, "Location"), encodeCoordinate(v.Coordinate))
}

// MapActionValue asks the user to choose a location and search radius.
type MapActionValue struct {
	Title        string
	CustomKey    string
	Coordinate   *Coordinate
	RadiusMeters float64
	Address      string

	id uuid.UUID
}

// NewMapActionValue constructs a location chooser row.
func NewMapActionValue(title string, coordinate *Coordinate, radius float64) MapActionValue {
	return MapActionValue{
		Title:        title,
		Coordinate:   copyCoordinate(coordinate),
		RadiusMeters: radius,
		id:           newID(),
	}
}

// WithCoordinate returns a copy holding coordinate.
func (v MapActionValue) WithCoordinate(coordinate *Coordinate) MapActionValue {
	v.Coordinate = copyCoordinate(coordinate)
	v.id = newID()
	return v
}

// WithRadius returns a copy holding radius; negative radii become zero.
func (v MapActionValue) WithRadius(radius float64) MapActionValue {
	if radius < 0 {
		radius = 0
	}
	v.RadiusMeters = radius
	v.id = newID()
	return v
}

func (v MapActionValue) ID() uuid.UUID       { return v.id }
func (v MapActionValue) OverrideKey() string { return v.CustomKey }
func (v MapActionValue) Item() Item          { return wrap(KindMapAction, v) }
func (v MapActionValue) IsSelectable() bool  { return true }

// EncodedValue implements Encodable.
func (v MapActionValue) EncodedValue() map[string]string {
	return single(keyFor(v.CustomKey, v.Title, "Location"), encodeCoordinate(v.Coordinate))
}
