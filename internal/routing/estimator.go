package routing

import (
	"fmt"
	"math"

	"github.com/UnknownOlympus/hermes/internal/models"
)

const (
	// ViaSearchRadiusKm bounds the regions considered as via-point candidates around the midpoint.
	ViaSearchRadiusKm = 2.0
	// SpeedSearchRadiusKm bounds the regions whose speed is sampled around each waypoint.
	SpeedSearchRadiusKm = 1.0
	// DefaultAverageSpeed is used when no waypoint has a region nearby, in km/h.
	DefaultAverageSpeed = 35.0
	// AlternativeShiftDegrees is the latitude offset applied to the via-point for alternatives.
	AlternativeShiftDegrees = 0.01
)

// EstimateRoute derives a primary route through the least congested region near the
// midpoint of origin and destination, plus a north-shifted and a south-shifted
// alternative. The snapshot is only read.
func EstimateRoute(
	origin, destination models.GeoPoint,
	snapshot models.TrafficSnapshot,
) (*models.RouteEstimate, error) {
	if err := validatePoint("origin", origin); err != nil {
		return nil, err
	}
	if err := validatePoint("destination", destination); err != nil {
		return nil, err
	}

	via := ViaPoint(origin, destination, snapshot)

	primary, err := buildRoute([]models.GeoPoint{origin, via, destination}, snapshot)
	if err != nil {
		return nil, err
	}

	const alternativeCount = 2
	alternatives := make([]models.Route, 0, alternativeCount)
	for _, shift := range []float64{AlternativeShiftDegrees, -AlternativeShiftDegrees} {
		shifted := models.GeoPoint{Latitude: via.Latitude + shift, Longitude: via.Longitude}

		alt, errAlt := buildRoute([]models.GeoPoint{origin, shifted, destination}, snapshot)
		if errAlt != nil {
			return nil, errAlt
		}
		alternatives = append(alternatives, *alt)
	}

	return &models.RouteEstimate{Primary: *primary, Alternatives: alternatives}, nil
}

// ViaPoint returns the location of the lowest-density region within ViaSearchRadiusKm
// of the midpoint. The first region in snapshot order wins ties. Without candidates
// the midpoint itself is returned.
func ViaPoint(origin, destination models.GeoPoint, snapshot models.TrafficSnapshot) models.GeoPoint {
	mid := Midpoint(origin, destination)

	var best *models.Region
	for i := range snapshot.Regions {
		region := &snapshot.Regions[i]
		if Haversine(mid, region.Location) >= ViaSearchRadiusKm {
			continue
		}
		if best == nil || region.Density < best.Density {
			best = region
		}
	}

	if best == nil {
		return mid
	}

	return best.Location
}

// AverageSpeed averages, over the waypoints that have at least one region within
// SpeedSearchRadiusKm, the mean speed of those regions. It falls back to
// DefaultAverageSpeed when no waypoint has a nearby region.
func AverageSpeed(waypoints []models.GeoPoint, snapshot models.TrafficSnapshot) float64 {
	var totalSpeed float64
	var count int

	for _, point := range waypoints {
		var sum float64
		var nearby int
		for _, region := range snapshot.Regions {
			if Haversine(point, region.Location) < SpeedSearchRadiusKm {
				sum += region.AverageSpeed
				nearby++
			}
		}

		if nearby > 0 {
			totalSpeed += sum / float64(nearby)
			count++
		}
	}

	if count == 0 {
		return DefaultAverageSpeed
	}

	return totalSpeed / float64(count)
}

// EstimatedMinutes converts a distance and speed into whole minutes.
func EstimatedMinutes(distanceKm, speedKmh float64) (int, error) {
	if !(speedKmh > 0) || math.IsInf(speedKmh, 0) {
		return 0, &ComputationError{Op: "estimated time", Reason: fmt.Sprintf("average speed %v km/h", speedKmh)}
	}

	const minutesPerHour = 60
	minutes := math.Round(distanceKm / speedKmh * minutesPerHour)
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes < 0 {
		return 0, &ComputationError{Op: "estimated time", Reason: fmt.Sprintf("got %v minutes", minutes)}
	}

	return int(minutes), nil
}

func buildRoute(waypoints []models.GeoPoint, snapshot models.TrafficSnapshot) (*models.Route, error) {
	distance := RouteDistance(waypoints)
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance < 0 {
		return nil, &ComputationError{Op: "distance", Reason: fmt.Sprintf("got %v km", distance)}
	}

	minutes, err := EstimatedMinutes(distance, AverageSpeed(waypoints, snapshot))
	if err != nil {
		return nil, err
	}

	return &models.Route{
		Waypoints:            waypoints,
		DistanceKm:           distance,
		EstimatedTimeMinutes: minutes,
	}, nil
}

func validatePoint(name string, point models.GeoPoint) error {
	const (
		maxLatitude  = 90
		maxLongitude = 180
	)

	if reason := validateCoordinate(point.Latitude, maxLatitude); reason != "" {
		return &InvalidInputError{Field: name + ".latitude", Reason: reason}
	}
	if reason := validateCoordinate(point.Longitude, maxLongitude); reason != "" {
		return &InvalidInputError{Field: name + ".longitude", Reason: reason}
	}

	return nil
}

func validateCoordinate(value, limit float64) string {
	switch {
	case math.IsNaN(value):
		return "value is NaN"
	case value < -limit || value > limit:
		return fmt.Sprintf("%v is outside [-%v, %v]", value, limit, limit)
	default:
		return ""
	}
}
