package routing

import (
	"math"

	"github.com/UnknownOlympus/hermes/internal/models"
)

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance between two points in kilometers.
func Haversine(p1, p2 models.GeoPoint) float64 {
	lat1 := degreesToRadians(p1.Latitude)
	lat2 := degreesToRadians(p2.Latitude)
	dLat := degreesToRadians(p2.Latitude - p1.Latitude)
	dLng := degreesToRadians(p2.Longitude - p1.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Midpoint returns the arithmetic mean of two points.
//
// This is a planar approximation, not the great-circle midpoint. Estimates depend
// on it, so it must stay planar.
func Midpoint(p1, p2 models.GeoPoint) models.GeoPoint {
	return models.GeoPoint{
		Latitude:  (p1.Latitude + p2.Latitude) / 2,
		Longitude: (p1.Longitude + p2.Longitude) / 2,
	}
}

// RouteDistance sums the haversine legs between consecutive waypoints and rounds
// the total to one decimal place.
func RouteDistance(waypoints []models.GeoPoint) float64 {
	var distance float64
	for i := 0; i < len(waypoints)-1; i++ {
		distance += Haversine(waypoints[i], waypoints[i+1])
	}

	return math.Round(distance*10) / 10
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
