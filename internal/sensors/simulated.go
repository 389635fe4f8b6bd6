package sensors

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/jaswdr/faker"
)

// Bounds of the simulated readings.
const (
	minVehicleCount = 10
	maxVehicleCount = 59
	minAverageSpeed = 20
	maxAverageSpeed = 59
)

// DefaultSensors is the sensor layout used when none is configured.
var DefaultSensors = []models.Sensor{
	{ID: "sensor_1", Location: models.GeoPoint{Latitude: 8.7642, Longitude: 78.1348}},
	{ID: "sensor_2", Location: models.GeoPoint{Latitude: 8.7680, Longitude: 78.1375}},
	{ID: "sensor_3", Location: models.GeoPoint{Latitude: 8.7700, Longitude: 78.1400}},
}

// SimulatedProvider fabricates sensor readings for a fixed set of sensors.
type SimulatedProvider struct {
	mu      sync.Mutex      // mu guards fake, which is not safe for concurrent use
	fake    faker.Faker     // fake draws the random readings
	sensors []models.Sensor // sensors is the simulated layout
	now     func() time.Time
	log     *slog.Logger
}

// NewSimulatedProvider creates a simulated provider. A zero seed picks a time-based seed.
func NewSimulatedProvider(sensors []models.Sensor, seed int64, log *slog.Logger) *SimulatedProvider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if len(sensors) == 0 {
		sensors = DefaultSensors
	}

	return &SimulatedProvider{
		fake:    faker.NewWithSeed(rand.NewSource(seed)),
		sensors: sensors,
		now:     time.Now,
		log:     log,
	}
}

// Snapshot draws a new reading for every sensor.
func (sp *SimulatedProvider) Snapshot(ctx context.Context) (*models.TrafficSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := sp.now()

	sp.mu.Lock()
	readings := make([]models.SensorReading, 0, len(sp.sensors))
	for _, sensor := range sp.sensors {
		readings = append(readings, models.SensorReading{
			SensorID:     sensor.ID,
			Location:     sensor.Location,
			VehicleCount: sp.fake.IntBetween(minVehicleCount, maxVehicleCount),
			AverageSpeed: float64(sp.fake.IntBetween(minAverageSpeed, maxAverageSpeed)),
			RecordedAt:   now,
		})
	}
	sp.mu.Unlock()

	sp.log.DebugContext(ctx, "Simulated sensor readings", "sensors", len(readings))

	return &models.TrafficSnapshot{Timestamp: now, Regions: RegionsFromReadings(readings)}, nil
}
