package insights_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/hermes/internal/insights"
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var snapshot = models.TrafficSnapshot{Regions: []models.Region{
	{ID: "sensor_1", Location: models.GeoPoint{Latitude: 8.7642, Longitude: 78.1348}, Density: 0.9, AverageSpeed: 15},
	{ID: "sensor_2", Location: models.GeoPoint{Latitude: 8.7680, Longitude: 78.1375}, Density: 0.65, AverageSpeed: 25},
	{ID: "sensor_3", Location: models.GeoPoint{Latitude: 8.7700, Longitude: 78.1400}, Density: 0.3, AverageSpeed: 45},
}}

func at(hour int) time.Time {
	return time.Date(2026, 10, 19, hour, 15, 0, 0, time.UTC)
}

func TestPredictDensity(t *testing.T) {
	tests := []struct {
		name     string
		density  float64
		nextHour float64
		nextTwo  float64
	}{
		{"busy region rises", 0.6, 0.7, 0.8},
		{"quiet region falls", 0.4, 0.3, 0.2},
		{"exactly half falls", 0.5, 0.4, 0.3},
		{"clamped at one", 0.95, 1, 1},
		{"clamped at zero", 0.05, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forecast := insights.PredictDensity(tt.density)

			assert.InDelta(t, tt.density, forecast.Current, 1e-9)
			assert.InDelta(t, tt.nextHour, forecast.NextHour, 1e-9)
			assert.InDelta(t, tt.nextTwo, forecast.NextTwoHours, 1e-9)
		})
	}
}

func TestFindRegion(t *testing.T) {
	region, ok := insights.FindRegion(snapshot, "sensor_2")
	require.True(t, ok)
	assert.Equal(t, "sensor_2", region.ID)

	region, ok = insights.FindRegion(snapshot, "unknown")
	require.True(t, ok)
	assert.Equal(t, "sensor_1", region.ID)

	_, ok = insights.FindRegion(models.TrafficSnapshot{}, "sensor_1")
	assert.False(t, ok)
}

func TestRecommendations(t *testing.T) {
	t.Run("heavy traffic in the morning peak", func(t *testing.T) {
		got := insights.Recommendations(snapshot.Regions[0], snapshot, at(9))

		assert.Equal(t, []string{
			"Morning peak hours: Consider delaying non-essential travel",
			"Heavy traffic in sensor_1: Consider alternative routes",
			"Consider routes through sensor_2 for better traffic flow",
		}, got)
	})

	t.Run("moderate congestion in the evening peak", func(t *testing.T) {
		got := insights.Recommendations(snapshot.Regions[1], snapshot, at(19))

		assert.Equal(t, []string{
			"Evening peak hours: Consider alternative routes",
			"Moderate congestion in sensor_2: Expect delays",
			"Consider routes through sensor_3 for better traffic flow",
		}, got)
	})

	t.Run("quiet region off peak", func(t *testing.T) {
		got := insights.Recommendations(snapshot.Regions[2], snapshot, at(13))

		assert.Empty(t, got)
		assert.NotNil(t, got)
	})
}

func TestNearbyParking(t *testing.T) {
	lots := models.TrafficSnapshot{Regions: []models.Region{
		{ID: "market", Location: models.GeoPoint{Latitude: 8.7642, Longitude: 78.1348}, Density: 0.25, AverageSpeed: 40},
		{ID: "harbour", Location: models.GeoPoint{Latitude: 8.7900, Longitude: 78.1600}, Density: 0.5, AverageSpeed: 30},
	}}

	t.Run("finds sensors within range", func(t *testing.T) {
		got := insights.NearbyParking(models.GeoPoint{Latitude: 8.7645, Longitude: 78.1350}, lots)

		require.Len(t, got, 1)
		lot := got[0]
		assert.Equal(t, "market", lot.ID)
		assert.Equal(t, "Parking market", lot.Name)
		assert.Equal(t, 75, lot.AvailableSpots)
		assert.Equal(t, 100, lot.TotalSpots)
		assert.Equal(t, "75% in 1 hour", lot.PredictedAvailability)
	})

	t.Run("nothing nearby", func(t *testing.T) {
		got := insights.NearbyParking(models.GeoPoint{Latitude: 50.45, Longitude: 30.52}, lots)

		assert.Empty(t, got)
	})
}
