package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/hermes/internal/models"
)

// FetchLatestReadings retrieves the most recent reading of every registered sensor.
// Readings are ordered by sensor id so snapshots built from them are stable.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
//
// Returns:
// - A slice of models.SensorReading, one per sensor that has reported at least once.
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) FetchLatestReadings(ctx context.Context) ([]models.SensorReading, error) {
	var readings []models.SensorReading
	query := `
		SELECT DISTINCT ON (s.sensor_id)
			s.sensor_id, s.latitude, s.longitude, r.vehicle_count, r.average_speed, r.recorded_at
		FROM public.sensors s
		JOIN public.sensor_readings r ON r.sensor_id = s.sensor_id
		WHERE s.is_active = true
		ORDER BY s.sensor_id, r.recorded_at DESC;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sensor readings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reading models.SensorReading
		if errScan := rows.Scan(
			&reading.SensorID,
			&reading.Location.Latitude,
			&reading.Location.Longitude,
			&reading.VehicleCount,
			&reading.AverageSpeed,
			&reading.RecordedAt,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan sensor reading: %w", errScan)
		}
		r.log.DebugContext(ctx, "Latest sensor reading received.",
			"sensor", reading.SensorID, "vehicles", reading.VehicleCount, "speed", reading.AverageSpeed)
		readings = append(readings, reading)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return readings, nil
}
