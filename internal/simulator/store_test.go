package simulator

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardillaCHIKI/App2-taxi/internal/models"
)

func testConfig() *models.Config {
	return &models.Config{
		Days:                    2,
		DayDuration:             50 * time.Millisecond,
		MinRequestsPerRider:     1,
		MaxRequestsPerRider:     2,
		SearchRadiusKm:          2.0,
		FarePerKm:               2.5,
		CommissionFraction:      0.20,
		RatingMin:               3,
		RatingMax:               5,
		InitialRatingAverage:    5.0,
		DailyTrackingSampleSize: 5,
		VehicleSpeedKmh:         60,
		AccelerationFactor:      100000,
		CityName:                "Madrid",
		CityLat:                 40.4168,
		CityLon:                 -3.7034,
		UrbanRadius:             5.0,
	}
}

func testVehicle(plate string, lat, lon float64) *models.Vehicle {
	return &models.Vehicle{
		ID:             "veh-" + plate,
		DriverIdentity: "ID-" + plate,
		DriverName:     "Driver " + plate,
		LicensePlate:   plate,
		SpeedKmh:       60,
		Location:       models.Location{Lat: lat, Lon: lon},
		Available:      true,
		Status:         models.StatusActive,
	}
}

func testRider(identity string, lat, lon float64) *models.Rider {
	return &models.Rider{
		ID:         "rider-" + identity,
		Identity:   identity,
		Name:       "Rider " + identity,
		CardNumber: "1234 5678 9012 3456",
		Location:   models.Location{Lat: lat, Lon: lon},
		Status:     models.StatusActive,
	}
}

func TestAffiliateRiderCardValidation(t *testing.T) {
	store := NewStore(testConfig())

	fifteen := testRider("AAAAA", 0, 0)
	fifteen.CardNumber = "123456789012345"
	assert.ErrorIs(t, store.AffiliateRider(fifteen), ErrInvalidCard)

	sixteen := testRider("BBBBB", 0, 0)
	sixteen.CardNumber = "1234-5678-9012-3456"
	assert.NoError(t, store.AffiliateRider(sixteen), "spaces and dashes are ignored")

	letters := testRider("CCCCC", 0, 0)
	letters.CardNumber = "1234 5678 9012 345X"
	assert.ErrorIs(t, store.AffiliateRider(letters), ErrInvalidCard)
}

func TestAffiliateRiderDuplicateIdentity(t *testing.T) {
	store := NewStore(testConfig())

	require.NoError(t, store.AffiliateRider(testRider("54321", 0, 0)))
	assert.ErrorIs(t, store.AffiliateRider(testRider("54321", 1, 1)), ErrDuplicateRider)
	assert.Equal(t, 1, store.RiderCount())
}

func TestAffiliateVehicleValidation(t *testing.T) {
	store := NewStore(testConfig())

	short := testVehicle("AB12", 0, 0)
	assert.ErrorIs(t, store.AffiliateVehicle(short), ErrInvalidPlate)

	slow := testVehicle("1234ABC", 0, 0)
	slow.SpeedKmh = 0
	assert.ErrorIs(t, store.AffiliateVehicle(slow), ErrInvalidSpeed)

	noIdentity := testVehicle("5678DEF", 0, 0)
	noIdentity.DriverIdentity = "X1"
	assert.ErrorIs(t, store.AffiliateVehicle(noIdentity), ErrInvalidIdentity)

	ok := testVehicle("9012GHI", 0, 0)
	require.NoError(t, store.AffiliateVehicle(ok))

	dupPlate := testVehicle("9012GHI", 1, 1)
	assert.ErrorIs(t, store.AffiliateVehicle(dupPlate), ErrDuplicateVehicle)
}

func TestReserveNearestPicksClosest(t *testing.T) {
	store := NewStore(testConfig())
	near := testVehicle("1111AAA", 0.5, 0)
	far := testVehicle("2222BBB", 1.5, 0)
	require.NoError(t, store.AffiliateVehicle(near))
	require.NoError(t, store.AffiliateVehicle(far))

	got := store.ReserveNearest(models.Location{}, 2.0, "rider-1")
	require.NotNil(t, got)
	assert.Equal(t, near.ID, got.ID)
	assert.False(t, got.Available)
	assert.Equal(t, "rider-1", got.CurrentRiderID)
}

func TestReserveNearestRadiusIsStrict(t *testing.T) {
	store := NewStore(testConfig())
	onBoundary := testVehicle("3333CCC", 2.0, 0)
	require.NoError(t, store.AffiliateVehicle(onBoundary))

	assert.Nil(t, store.ReserveNearest(models.Location{}, 2.0, "rider-1"),
		"a vehicle exactly at the radius is out of range")

	inside := testVehicle("4444DDD", 1.9999, 0)
	require.NoError(t, store.AffiliateVehicle(inside))
	got := store.ReserveNearest(models.Location{}, 2.0, "rider-1")
	require.NotNil(t, got)
	assert.Equal(t, inside.ID, got.ID)
}

func TestReserveNearestTieBreaksOnRating(t *testing.T) {
	store := NewStore(testConfig())
	plain := testVehicle("5555EEE", 1.0, 0)
	plain.AddRating(3) // average 3.0
	rated := testVehicle("6666FFF", -1.0, 0)
	rated.AddRating(5) // average 5.0
	require.NoError(t, store.AffiliateVehicle(plain))
	require.NoError(t, store.AffiliateVehicle(rated))

	got := store.ReserveNearest(models.Location{}, 2.0, "rider-1")
	require.NotNil(t, got)
	assert.Equal(t, rated.ID, got.ID, "equal distance goes to the higher rating average")
}

func TestReserveNearestSkipsUnavailable(t *testing.T) {
	store := NewStore(testConfig())
	v := testVehicle("7777GGG", 0.5, 0)
	require.NoError(t, store.AffiliateVehicle(v))

	first := store.ReserveNearest(models.Location{}, 2.0, "rider-1")
	require.NotNil(t, first)
	assert.Nil(t, store.ReserveNearest(models.Location{}, 2.0, "rider-2"),
		"a reserved vehicle must not be matched again")

	rider := testRider("99999", 0, 0)
	store.ReleaseReservation(v, rider)
	assert.NotNil(t, store.ReserveNearest(models.Location{}, 2.0, "rider-2"))
}

func TestConcurrentReservationNeverDoubleAssigns(t *testing.T) {
	sim := newTestSimulator(t, testConfig())
	for i := 0; i < 3; i++ {
		require.NoError(t, sim.Store.AffiliateVehicle(testVehicle(fmt.Sprintf("%d000AAA", i+1), 0.1*float64(i+1), 0)))
	}

	const riders = 5
	results := make(chan *models.Vehicle, riders)
	var wg sync.WaitGroup
	wg.Add(riders)
	for i := 0; i < riders; i++ {
		go func(n int) {
			defer wg.Done()
			results <- sim.FindAndReserve(models.Location{}, fmt.Sprintf("rider-%d", n))
		}(i)
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	matched := 0
	for v := range results {
		if v == nil {
			continue
		}
		matched++
		assert.False(t, seen[v.ID], "vehicle %s assigned twice", v.ID)
		seen[v.ID] = true
	}
	assert.Equal(t, 3, matched, "every vehicle in range is matched exactly once")
}

func TestSettleDaySplitsGrossAndResets(t *testing.T) {
	store := NewStore(testConfig())
	v := testVehicle("8888HHH", 0, 0)
	require.NoError(t, store.AffiliateVehicle(v))

	store.CompleteVehicleTrip(v, models.Location{Lat: 1}, 5, 100.0)

	settlements, operatorCut := store.SettleDay(0.20)
	require.Len(t, settlements, 1)
	assert.Equal(t, 100.0, settlements[0].Gross)
	assert.Equal(t, 20.0, settlements[0].Commission)
	assert.Equal(t, 80.0, settlements[0].Net)
	assert.Equal(t, 20.0, operatorCut)
	assert.Equal(t, 0.0, v.DailyEarnings, "daily counter resets at settlement")
	assert.Equal(t, 100.0, v.TotalEarnings, "lifetime total survives")
}

func TestTrackTripCapAndReset(t *testing.T) {
	cfg := testConfig()
	cfg.DailyTrackingSampleSize = 2
	store := NewStore(cfg)

	first := &models.Trip{ID: 1}
	second := &models.Trip{ID: 2}
	third := &models.Trip{ID: 3}

	assert.True(t, store.TrackTrip(first))
	assert.True(t, store.TrackTrip(second))
	assert.False(t, store.TrackTrip(third), "sample is capped")
	assert.True(t, first.Tracked)
	assert.False(t, third.Tracked)

	sample := store.ResetTracking()
	assert.Len(t, sample, 2)
	assert.Equal(t, 0, store.TrackedCount())
	assert.True(t, store.TrackTrip(third), "next day starts a fresh sample")
}

func TestSnapshotContentIsStable(t *testing.T) {
	store := NewStore(testConfig())
	require.NoError(t, store.AffiliateVehicle(testVehicle("9999III", 0.3, 0.4)))
	require.NoError(t, store.AffiliateRider(testRider("77777", 0, 0)))

	a := store.Snapshot()
	b := store.Snapshot()
	assert.Equal(t, a.Vehicles, b.Vehicles)
	assert.Equal(t, a.Riders, b.Riders)
	assert.Empty(t, a.Riders, "riders outside a trip are not in the live view")
}

func TestTripIDsAreUniqueAndIncreasing(t *testing.T) {
	store := NewStore(testConfig())

	const n = 200
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			ids <- store.NextTripID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "trip id %d issued twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
