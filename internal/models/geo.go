package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

// GeoPoint represents a geographical point in decimal degrees.
type GeoPoint struct {
	Latitude  float64 `json:"lat" yaml:"lat" mapstructure:"lat" validate:"gte=-90,lte=90"`   // Latitude of the point.
	Longitude float64 `json:"lng" yaml:"lng" mapstructure:"lng" validate:"gte=-180,lte=180"` // Longitude of the point.
}

// Region is a single area of the traffic network with its current readings.
type Region struct {
	ID           string   `json:"id"           yaml:"id"            validate:"required"`
	Location     GeoPoint `json:"location"     yaml:"location"`
	Density      float64  `json:"density"      yaml:"density"       validate:"gte=0,lte=1"` // Density is normalized congestion, 0..1.
	AverageSpeed float64  `json:"averageSpeed" yaml:"average_speed" validate:"gt=0"`        // AverageSpeed is in km/h.
}

// TrafficSnapshot is an immutable set of region readings taken at one instant.
type TrafficSnapshot struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Regions   []Region  `json:"regions"   yaml:"regions"   validate:"unique=ID,dive"`
}

// SensorReading is a raw measurement reported by a roadside sensor.
type SensorReading struct {
	SensorID     string    // SensorID identifies the sensor and the region it covers.
	Location     GeoPoint  // Location of the sensor.
	VehicleCount int       // VehicleCount is the number of vehicles seen in the sampling window.
	AverageSpeed float64   // AverageSpeed is the mean vehicle speed in km/h.
	RecordedAt   time.Time // RecordedAt is when the reading was taken.
}

// Sensor is a fixed roadside sensor position.
type Sensor struct {
	ID       string   `mapstructure:"id"       json:"id"       validate:"required"`
	Location GeoPoint `mapstructure:"location" json:"location"`
}

// ErrMalformedGeoPoint is returned when a value is not a "lat,lng" pair.
var ErrMalformedGeoPoint = errors.New("expected a lat,lng pair")

// ParseGeoPoint parses a "lat,lng" pair in decimal degrees. Whitespace around either
// number is ignored. Ranges are not checked.
func ParseGeoPoint(value string) (GeoPoint, error) {
	const pairParts = 2

	value = strings.ReplaceAll(value, " ", "")
	if parts := strings.Split(value, ","); len(parts) != pairParts {
		return GeoPoint{}, fmt.Errorf("%w, got %d part(s) in %q", ErrMalformedGeoPoint, len(parts), value)
	}

	latLng, err := maps.ParseLatLng(value)
	if err != nil {
		return GeoPoint{}, err
	}

	return GeoPoint{Latitude: latLng.Lat, Longitude: latLng.Lng}, nil
}
