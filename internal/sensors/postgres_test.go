package sensors_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/sensors"
	"github.com/UnknownOlympus/hermes/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresProvider_Snapshot(t *testing.T) {
	logger := slog.Default()
	ctx := t.Context()

	t.Run("readings become regions", func(t *testing.T) {
		mockRepo := mocks.NewInterface(t)
		older := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
		newer := older.Add(time.Minute)

		mockRepo.On("FetchLatestReadings", ctx).Return([]models.SensorReading{
			{SensorID: "sensor_1", Location: models.GeoPoint{Latitude: 8.7642, Longitude: 78.1348}, VehicleCount: 45, AverageSpeed: 30, RecordedAt: newer},
			{SensorID: "sensor_2", Location: models.GeoPoint{Latitude: 8.7680, Longitude: 78.1375}, VehicleCount: 120, AverageSpeed: 15, RecordedAt: older},
		}, nil).Once()

		snapshot, err := sensors.NewPostgresProvider(mockRepo, logger).Snapshot(ctx)

		require.NoError(t, err)
		assert.Equal(t, newer, snapshot.Timestamp)
		require.Len(t, snapshot.Regions, 2)
		assert.InDelta(t, 0.45, snapshot.Regions[0].Density, 1e-9)
		assert.InDelta(t, 1.0, snapshot.Regions[1].Density, 1e-9)
	})

	t.Run("no readings", func(t *testing.T) {
		mockRepo := mocks.NewInterface(t)
		mockRepo.On("FetchLatestReadings", ctx).Return(nil, nil).Once()

		snapshot, err := sensors.NewPostgresProvider(mockRepo, logger).Snapshot(ctx)

		require.NoError(t, err)
		assert.Empty(t, snapshot.Regions)
		assert.False(t, snapshot.Timestamp.IsZero())
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := mocks.NewInterface(t)
		mockRepo.On("FetchLatestReadings", ctx).Return(nil, assert.AnError).Once()

		snapshot, err := sensors.NewPostgresProvider(mockRepo, logger).Snapshot(ctx)

		require.Nil(t, snapshot)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to fetch sensor readings")
	})
}
