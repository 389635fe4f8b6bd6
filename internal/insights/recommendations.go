package insights

import (
	"fmt"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
)

const (
	heavyDensity          = 0.8
	moderateDensity       = 0.6
	alternativeDensityGap = 0.2
)

// Recommendations builds travel advice for a region from the time of day, the
// region's own density and the less congested regions in the snapshot.
func Recommendations(region models.Region, snapshot models.TrafficSnapshot, now time.Time) []string {
	recommendations := []string{}

	switch hour := now.Hour(); {
	case hour >= 8 && hour <= 10:
		recommendations = append(recommendations, "Morning peak hours: Consider delaying non-essential travel")
	case hour >= 17 && hour <= 19:
		recommendations = append(recommendations, "Evening peak hours: Consider alternative routes")
	}

	switch {
	case region.Density > heavyDensity:
		recommendations = append(recommendations,
			fmt.Sprintf("Heavy traffic in %s: Consider alternative routes", region.ID))
	case region.Density > moderateDensity:
		recommendations = append(recommendations,
			fmt.Sprintf("Moderate congestion in %s: Expect delays", region.ID))
	}

	for _, other := range snapshot.Regions {
		if other.ID != region.ID && other.Density < region.Density-alternativeDensityGap {
			recommendations = append(recommendations,
				fmt.Sprintf("Consider routes through %s for better traffic flow", other.ID))
			break
		}
	}

	return recommendations
}
