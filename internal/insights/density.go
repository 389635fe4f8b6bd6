package insights

import "github.com/UnknownOlympus/hermes/internal/models"

// trendStep is the hourly density change assumed when projecting a region forward.
const trendStep = 0.1

// busyDensity separates rising from falling regions.
const busyDensity = 0.5

// DensityForecast is a naive projection of a region's density.
type DensityForecast struct {
	Current      float64
	NextHour     float64
	NextTwoHours float64
}

// PredictDensity projects density one and two hours ahead. Busy regions are
// expected to get busier, quiet regions quieter. Results are clamped to [0, 1].
func PredictDensity(density float64) DensityForecast {
	trend := -trendStep
	if density > busyDensity {
		trend = trendStep
	}

	return DensityForecast{
		Current:      density,
		NextHour:     clamp(density + trend),
		NextTwoHours: clamp(density + 2*trend),
	}
}

// FindRegion returns the region with the given id, falling back to the first region.
// It reports false only when the snapshot has no regions.
func FindRegion(snapshot models.TrafficSnapshot, id string) (models.Region, bool) {
	if len(snapshot.Regions) == 0 {
		return models.Region{}, false
	}

	for _, region := range snapshot.Regions {
		if region.ID == id {
			return region, true
		}
	}

	return snapshot.Regions[0], true
}

func clamp(v float64) float64 {
	return min(1, max(0, v))
}
