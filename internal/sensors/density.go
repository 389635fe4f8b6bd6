package sensors

import "github.com/UnknownOlympus/hermes/internal/models"

// roadCapacity is the vehicle count at which a region is considered saturated.
const roadCapacity = 100

// DensityFromVehicleCount normalizes a vehicle count into a density in [0, 1].
func DensityFromVehicleCount(count int) float64 {
	if count <= 0 {
		return 0
	}

	return min(float64(count)/roadCapacity, 1)
}

// RegionsFromReadings converts raw sensor readings into regions, preserving order.
func RegionsFromReadings(readings []models.SensorReading) []models.Region {
	regions := make([]models.Region, 0, len(readings))
	for _, reading := range readings {
		regions = append(regions, models.Region{
			ID:           reading.SensorID,
			Location:     reading.Location,
			Density:      DensityFromVehicleCount(reading.VehicleCount),
			AverageSpeed: reading.AverageSpeed,
		})
	}

	return regions
}
