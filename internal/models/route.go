package models

// Route is an ordered path from origin to destination.
type Route struct {
	Waypoints            []GeoPoint `json:"waypoints"`            // Waypoints start with the origin and end with the destination.
	DistanceKm           float64    `json:"distanceKm"`           // DistanceKm is rounded to one decimal place.
	EstimatedTimeMinutes int        `json:"estimatedTimeMinutes"` // EstimatedTimeMinutes is the rounded travel time.
}

// RouteEstimate holds the preferred route and its alternatives.
type RouteEstimate struct {
	Primary      Route   `json:"primary"`
	Alternatives []Route `json:"alternatives"`
}
