package insights

import (
	"fmt"
	"math"

	"github.com/UnknownOlympus/hermes/internal/models"
)

const (
	// parkingRadiusDegrees is the planar search radius, roughly one kilometer.
	parkingRadiusDegrees = 0.01
	// lotCapacity is the assumed size of every parking lot.
	lotCapacity = 100
)

// ParkingLot is the estimated availability of the lot next to a sensor.
type ParkingLot struct {
	ID                    string
	Name                  string
	Location              models.GeoPoint
	AvailableSpots        int
	TotalSpots            int
	PredictedAvailability string
}

// NearbyParking estimates parking availability at the sensors close to location.
// Free capacity is inferred from traffic density.
func NearbyParking(location models.GeoPoint, snapshot models.TrafficSnapshot) []ParkingLot {
	lots := []ParkingLot{}

	for _, region := range snapshot.Regions {
		dLat := region.Location.Latitude - location.Latitude
		dLng := region.Location.Longitude - location.Longitude
		if math.Sqrt(dLat*dLat+dLng*dLng) >= parkingRadiusDegrees {
			continue
		}

		free := int(math.Floor((1 - region.Density) * lotCapacity))
		lots = append(lots, ParkingLot{
			ID:                    region.ID,
			Name:                  "Parking " + region.ID,
			Location:              region.Location,
			AvailableSpots:        free,
			TotalSpots:            lotCapacity,
			PredictedAvailability: fmt.Sprintf("%d%% in 1 hour", free),
		})
	}

	return lots
}
