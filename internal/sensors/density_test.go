package sensors_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/sensors"
	"github.com/stretchr/testify/assert"
)

func TestDensityFromVehicleCount(t *testing.T) {
	t.Parallel()

	assert.Zero(t, sensors.DensityFromVehicleCount(-3))
	assert.Zero(t, sensors.DensityFromVehicleCount(0))
	assert.InDelta(t, 0.45, sensors.DensityFromVehicleCount(45), 1e-9)
	assert.InDelta(t, 1.0, sensors.DensityFromVehicleCount(100), 1e-9)
	assert.InDelta(t, 1.0, sensors.DensityFromVehicleCount(250), 1e-9)
}

func TestRegionsFromReadings(t *testing.T) {
	t.Parallel()

	readings := []models.SensorReading{
		{SensorID: "b", Location: models.GeoPoint{Latitude: 1, Longitude: 2}, VehicleCount: 30, AverageSpeed: 45, RecordedAt: time.Now()},
		{SensorID: "a", Location: models.GeoPoint{Latitude: 3, Longitude: 4}, VehicleCount: 80, AverageSpeed: 20, RecordedAt: time.Now()},
	}

	regions := sensors.RegionsFromReadings(readings)

	assert.Equal(t, []models.Region{
		{ID: "b", Location: models.GeoPoint{Latitude: 1, Longitude: 2}, Density: 0.3, AverageSpeed: 45},
		{ID: "a", Location: models.GeoPoint{Latitude: 3, Longitude: 4}, Density: 0.8, AverageSpeed: 20},
	}, regions)
}
