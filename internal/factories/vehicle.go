package factories

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/ardillaCHIKI/App2-taxi/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

var fake = faker.New()

type VehicleFactory struct{}

func (vf *VehicleFactory) CreateVehicle(config *models.Config, index int) *models.Vehicle {
	now := time.Now()

	return &models.Vehicle{
		ID:             cuid.New(),
		DriverIdentity: randomIdentity(),
		DriverName:     fake.Person().Name(),
		LicensePlate:   randomPlate(),
		Make:           fake.Car().Maker(),
		Model:          fake.Car().Model(),
		SpeedKmh:       config.VehicleSpeedKmh,
		Location:       randomCityLocation(config),
		Available:      true,
		JoinDate:       fake.Time().TimeBetween(now.AddDate(-1, 0, 0), now),
		Status:         models.StatusActive,
		MapColor:       models.DefaultMapColors[index%len(models.DefaultMapColors)],
	}
}

// randomCityLocation picks a point inside the configured urban radius.
func randomCityLocation(config *models.Config) models.Location {
	latRange := config.UrbanRadius / 111.0 // Approx. conversion from km to degrees
	lonRange := latRange / math.Cos(config.CityLat*math.Pi/180.0)

	latOffset := (rand.Float64()*2 - 1) * latRange
	lonOffset := (rand.Float64()*2 - 1) * lonRange

	return models.Location{
		Lat: config.CityLat + latOffset,
		Lon: config.CityLon + lonOffset,
	}
}

// randomPlate generates a Spanish-style plate: four digits, three letters.
func randomPlate() string {
	var sb strings.Builder
	for i := 0; i < 4; i++ {
		sb.WriteByte(byte('0' + fake.IntBetween(0, 9)))
	}
	for i := 0; i < 3; i++ {
		sb.WriteByte(byte('A' + fake.IntBetween(0, 25)))
	}
	return sb.String()
}

// randomIdentity generates a national identity number: eight digits and a letter.
func randomIdentity() string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		sb.WriteByte(byte('0' + fake.IntBetween(0, 9)))
	}
	sb.WriteByte(byte('A' + fake.IntBetween(0, 25)))
	return sb.String()
}
