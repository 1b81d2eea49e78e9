package factories

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ardillaCHIKI/App2-taxi/internal/models"
)

func factoryConfig() *models.Config {
	return &models.Config{
		VehicleSpeedKmh: 60,
		CityLat:         40.4168,
		CityLon:         -3.7034,
		UrbanRadius:     5.0,
	}
}

func TestCreateVehicleSatisfiesAffiliationRules(t *testing.T) {
	vf := &VehicleFactory{}
	for i := 0; i < 20; i++ {
		v := vf.CreateVehicle(factoryConfig(), i)
		assert.GreaterOrEqual(t, len(v.LicensePlate), 5)
		assert.GreaterOrEqual(t, len(v.DriverIdentity), 5)
		assert.Greater(t, v.SpeedKmh, 0.0)
		assert.True(t, v.Available)
		assert.NotEmpty(t, v.MapColor)
		assert.InDelta(t, 40.4168, v.Location.Lat, 0.1)
	}
}

func TestCreateRiderCardHasSixteenDigits(t *testing.T) {
	rf := &RiderFactory{}
	for i := 0; i < 20; i++ {
		r := rf.CreateRider(factoryConfig())
		digits := strings.ReplaceAll(r.CardNumber, " ", "")
		assert.Len(t, digits, 16)
		for _, c := range digits {
			assert.True(t, c >= '0' && c <= '9')
		}
		assert.GreaterOrEqual(t, len(r.Identity), 5)
	}
}
