package geo

import (
	"fmt"
	"strconv"
)

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewPoint constructs a Point from two numeric strings. Malformed input is a
// caller precondition violation; the error carries no application error kind.
func NewPoint(latitude, longitude string) (Point, error) {
	lat, err := strconv.ParseFloat(latitude, 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid latitude %q: %w", latitude, err)
	}

	lng, err := strconv.ParseFloat(longitude, 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid longitude %q: %w", longitude, err)
	}

	return Point{Latitude: lat, Longitude: lng}, nil
}
