package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/UnknownOlympus/hermes/internal/insights"
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/routing"
	"googlemaps.github.io/maps"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type routeResponse struct {
	Origin            models.GeoPoint    `json:"origin"`
	Destination       models.GeoPoint    `json:"destination"`
	Waypoints         []models.GeoPoint  `json:"waypoints"`
	EstimatedTime     string             `json:"estimatedTime"`
	Distance          float64            `json:"distance"`
	Polyline          string             `json:"polyline"`
	AlternativeRoutes []alternativeRoute `json:"alternativeRoutes"`
}

type alternativeRoute struct {
	Waypoints     []models.GeoPoint `json:"waypoints"`
	Distance      float64           `json:"distance"`
	EstimatedTime string            `json:"estimatedTime"`
	Polyline      string            `json:"polyline"`
}

type regionStatus struct {
	models.Region
	CongestionLevel routing.Level `json:"congestionLevel"`
}

type statusMetadata struct {
	SensorCount    int    `json:"sensorCount"`
	UpdateInterval string `json:"updateInterval"`
}

type statusResponse struct {
	Timestamp time.Time      `json:"timestamp"`
	Regions   []regionStatus `json:"regions"`
	Metadata  statusMetadata `json:"metadata"`
}

type densityPrediction struct {
	NextHour     float64 `json:"nextHour"`
	NextTwoHours float64 `json:"nextTwoHours"`
}

type densityResponse struct {
	Timestamp       time.Time         `json:"timestamp"`
	Region          string            `json:"region"`
	CurrentDensity  float64           `json:"currentDensity"`
	Prediction      densityPrediction `json:"prediction"`
	Recommendations []string          `json:"recommendations"`
}

type parkingLot struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Location              models.GeoPoint `json:"location"`
	AvailableSpots        int             `json:"availableSpots"`
	TotalSpots            int             `json:"totalSpots"`
	PredictedAvailability string          `json:"predictedAvailability"`
}

type parkingResponse struct {
	Timestamp   time.Time    `json:"timestamp"`
	ParkingLots []parkingLot `json:"parkingLots"`
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	rawOrigin, rawDestination := query.Get("origin"), query.Get("destination")
	if rawOrigin == "" || rawDestination == "" {
		s.writeError(w, r, http.StatusBadRequest, "Origin and destination coordinates are required")
		return
	}

	origin, err := models.ParseGeoPoint(rawOrigin)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid origin coordinates: %v", err))
		return
	}
	destination, err := models.ParseGeoPoint(rawDestination)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid destination coordinates: %v", err))
		return
	}

	start := time.Now()
	estimate, err := routing.EstimateRoute(origin, destination, s.snapshots.Latest())
	s.metrics.EstimateSeconds.Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, routing.ErrInvalidInput):
		s.metrics.RouteEstimates.WithLabelValues("invalid").Inc()
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.metrics.RouteEstimates.WithLabelValues("failure").Inc()
		s.log.ErrorContext(ctx, "Failed to estimate route", "origin", rawOrigin, "destination", rawDestination, "error", err)
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	s.metrics.RouteEstimates.WithLabelValues("success").Inc()
	s.log.InfoContext(ctx, "Optimal route calculated",
		"origin", rawOrigin,
		"destination", rawDestination,
		"distance", estimate.Primary.DistanceKm,
		"minutes", estimate.Primary.EstimatedTimeMinutes,
	)

	s.writeJSON(w, r, http.StatusOK, newRouteResponse(origin, destination, estimate))
}

func newRouteResponse(origin, destination models.GeoPoint, estimate *models.RouteEstimate) routeResponse {
	alternatives := make([]alternativeRoute, 0, len(estimate.Alternatives))
	for _, alt := range estimate.Alternatives {
		alternatives = append(alternatives, alternativeRoute{
			Waypoints:     alt.Waypoints,
			Distance:      alt.DistanceKm,
			EstimatedTime: formatMinutes(alt.EstimatedTimeMinutes),
			Polyline:      encodePolyline(alt.Waypoints),
		})
	}

	return routeResponse{
		Origin:            origin,
		Destination:       destination,
		Waypoints:         estimate.Primary.Waypoints,
		EstimatedTime:     formatMinutes(estimate.Primary.EstimatedTimeMinutes),
		Distance:          estimate.Primary.DistanceKm,
		Polyline:          encodePolyline(estimate.Primary.Waypoints),
		AlternativeRoutes: alternatives,
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snapshot := s.snapshots.Latest()

	regions := make([]regionStatus, 0, len(snapshot.Regions))
	for _, region := range snapshot.Regions {
		regions = append(regions, regionStatus{Region: region, CongestionLevel: routing.CongestionLevel(region.Density)})
	}

	s.writeJSON(w, r, http.StatusOK, statusResponse{
		Timestamp: snapshot.Timestamp,
		Regions:   regions,
		Metadata: statusMetadata{
			SensorCount:    len(snapshot.Regions),
			UpdateInterval: s.snapshots.Interval().String(),
		},
	})
}

func (s *Server) handleDensity(w http.ResponseWriter, r *http.Request) {
	snapshot := s.snapshots.Latest()

	region, ok := insights.FindRegion(snapshot, r.URL.Query().Get("region"))
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "No traffic data available")
		return
	}

	now := s.now()
	forecast := insights.PredictDensity(region.Density)

	s.writeJSON(w, r, http.StatusOK, densityResponse{
		Timestamp:      now,
		Region:         region.ID,
		CurrentDensity: forecast.Current,
		Prediction: densityPrediction{
			NextHour:     forecast.NextHour,
			NextTwoHours: forecast.NextTwoHours,
		},
		Recommendations: insights.Recommendations(region, snapshot, now),
	})
}

func (s *Server) handleParking(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("location")
	if raw == "" {
		s.writeError(w, r, http.StatusBadRequest, "Location coordinates are required")
		return
	}

	location, err := models.ParseGeoPoint(raw)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid location coordinates: %v", err))
		return
	}

	found := insights.NearbyParking(location, s.snapshots.Latest())
	lots := make([]parkingLot, 0, len(found))
	for _, lot := range found {
		lots = append(lots, parkingLot(lot))
	}

	s.writeJSON(w, r, http.StatusOK, parkingResponse{Timestamp: s.now(), ParkingLots: lots})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.log.DebugContext(ctx, "Performing health checks...")

	status, body := http.StatusOK, "OK"
	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
	}

	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		s.log.ErrorContext(ctx, "failed to write reply", "error", err)
	}

	s.log.DebugContext(ctx, "Health checks completed", "status", status)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.writeJSON(w, r, status, errorResponse{Success: false, Message: message})
}

func encodePolyline(waypoints []models.GeoPoint) string {
	path := make([]maps.LatLng, 0, len(waypoints))
	for _, point := range waypoints {
		path = append(path, maps.LatLng{Lat: point.Latitude, Lng: point.Longitude})
	}

	return maps.Encode(path)
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%d minutes", minutes)
}
