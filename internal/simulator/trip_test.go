package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardillaCHIKI/App2-taxi/internal/models"
)

func TestFarePerMeterTakesPriority(t *testing.T) {
	cfg := testConfig()
	perMeter := 1.0
	cfg.FarePerMeter = &perMeter
	sim := newTestSimulator(t, cfg)

	// 5 metres at 1.0/m, not 0.005 km at 2.5/km
	assert.InDelta(t, 5.0, sim.fare(0.005), 1e-9)
}

func TestFareFallsBackToPerKm(t *testing.T) {
	sim := newTestSimulator(t, testConfig())
	assert.InDelta(t, 12.5, sim.fare(5.0), 1e-9)
}

func TestExecuteTripSettlesEverything(t *testing.T) {
	sim := newTestSimulator(t, testConfig())
	vehicle := testVehicle("1234AAA", 0.5, 0)
	rider := testRider("12345", 0, 0)
	require.NoError(t, sim.Store.AffiliateVehicle(vehicle))
	require.NoError(t, sim.Store.AffiliateRider(rider))

	got := sim.FindAndReserve(rider.Location, rider.ID)
	require.Equal(t, vehicle, got)

	trip, err := sim.ExecuteTrip(rider, vehicle)
	require.NoError(t, err)

	assert.True(t, trip.Completed)
	assert.GreaterOrEqual(t, trip.Rating, 3)
	assert.LessOrEqual(t, trip.Rating, 5)
	assert.InDelta(t, trip.DistanceKm*2.5, trip.Fare, 1e-9)

	assert.True(t, vehicle.Available, "reservation released at completion")
	assert.Empty(t, vehicle.CurrentRiderID)
	assert.False(t, rider.InTrip)
	assert.Equal(t, trip.Destination, vehicle.Location, "vehicle ends at the destination")
	assert.Equal(t, trip.Destination, rider.Location, "rider ends at the destination")
	assert.Equal(t, trip.Fare, vehicle.DailyEarnings)
	assert.Equal(t, 1, vehicle.TripCount)

	ledger := sim.Store.CompletedTrips()
	require.Len(t, ledger, 1)
	assert.Equal(t, trip, ledger[0])
}

func TestExecuteTripReleasesOnTransitFailure(t *testing.T) {
	sim := newTestSimulator(t, testConfig())
	vehicle := testVehicle("5678BBB", 0.5, 0)
	rider := testRider("67890", 0, 0)
	require.NoError(t, sim.Store.AffiliateVehicle(vehicle))
	require.NoError(t, sim.Store.AffiliateRider(rider))

	require.NotNil(t, sim.FindAndReserve(rider.Location, rider.ID))
	vehicle.SpeedKmh = 0

	_, err := sim.ExecuteTrip(rider, vehicle)
	assert.ErrorIs(t, err, ErrInvalidSpeed)

	assert.True(t, vehicle.Available, "reservation released on failure")
	assert.Empty(t, vehicle.CurrentRiderID)
	assert.False(t, rider.InTrip)
	assert.Equal(t, 0.0, vehicle.DailyEarnings)
	assert.Equal(t, 0, vehicle.TripCount)
	assert.Empty(t, sim.Store.CompletedTrips(), "a failed trip never reaches the ledger")
}

func TestTransitFailureLeavesTrackedSampleUntouched(t *testing.T) {
	cfg := testConfig()
	cfg.DailyTrackingSampleSize = 1
	sim := newTestSimulator(t, cfg)
	broken := testVehicle("3456DDD", 0.5, 0)
	working := testVehicle("7890EEE", 0.6, 0)
	rider := testRider("44556", 0, 0)
	require.NoError(t, sim.Store.AffiliateVehicle(broken))
	require.NoError(t, sim.Store.AffiliateVehicle(working))
	require.NoError(t, sim.Store.AffiliateRider(rider))

	require.Equal(t, broken, sim.FindAndReserve(rider.Location, rider.ID))
	broken.SpeedKmh = 0
	_, err := sim.ExecuteTrip(rider, broken)
	require.ErrorIs(t, err, ErrInvalidSpeed)
	assert.Equal(t, 0, sim.Store.TrackedCount(), "an aborted trip never enters the sample")

	broken.Status = models.StatusSuspended
	require.Equal(t, working, sim.FindAndReserve(rider.Location, rider.ID))
	trip, err := sim.ExecuteTrip(rider, working)
	require.NoError(t, err)
	assert.True(t, trip.Tracked, "the slot stays free for the next trip to complete")

	sample := sim.Store.ResetTracking()
	require.Len(t, sample, 1)
	assert.True(t, sample[0].Completed)
	assert.Equal(t, trip.ID, sample[0].ID)
	assert.Positive(t, sample[0].Fare)
}

func TestExecuteTripFeedsTrackedSample(t *testing.T) {
	cfg := testConfig()
	cfg.DailyTrackingSampleSize = 1
	sim := newTestSimulator(t, cfg)
	vehicle := testVehicle("9012CCC", 0.5, 0)
	rider := testRider("11223", 0, 0)
	require.NoError(t, sim.Store.AffiliateVehicle(vehicle))
	require.NoError(t, sim.Store.AffiliateRider(rider))

	require.NotNil(t, sim.FindAndReserve(rider.Location, rider.ID))
	trip, err := sim.ExecuteTrip(rider, vehicle)
	require.NoError(t, err)
	assert.True(t, trip.Tracked)

	sample := sim.Store.ResetTracking()
	require.Len(t, sample, 1)
	assert.Equal(t, trip.ID, sample[0].ID)
	assert.True(t, sample[0].Completed, "tracked records are final once the day drains")
}
