package routing

// Level is a coarse congestion label derived from a density value.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Density thresholds separating the congestion levels.
const (
	mediumDensityThreshold = 0.4
	highDensityThreshold   = 0.7
)

// CongestionLevel maps a density in [0,1] to its congestion label.
// Callers clamp out-of-range values.
func CongestionLevel(density float64) Level {
	switch {
	case density < mediumDensityThreshold:
		return LevelLow
	case density < highDensityThreshold:
		return LevelMedium
	default:
		return LevelHigh
	}
}
