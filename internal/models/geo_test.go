package models_test

import (
	"testing"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeoPoint(t *testing.T) {
	point, err := models.ParseGeoPoint(" 8.7642 , 78.1348 ")
	require.NoError(t, err)
	assert.Equal(t, models.GeoPoint{Latitude: 8.7642, Longitude: 78.1348}, point)

	point, err = models.ParseGeoPoint("-33.8688,151.2093")
	require.NoError(t, err)
	assert.InDelta(t, -33.8688, point.Latitude, 1e-9)

	for _, value := range []string{"", "8.7642", "1,2,3", "8.7642,78.1348,"} {
		_, err = models.ParseGeoPoint(value)
		require.ErrorIs(t, err, models.ErrMalformedGeoPoint, value)
	}

	_, err = models.ParseGeoPoint("8.7642,east")
	assert.Error(t, err)
}
