package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskedCardShowsLastFourOnly(t *testing.T) {
	r := Rider{CardNumber: "1234 5678 9012 3456"}
	assert.Equal(t, "**** **** **** 3456", r.MaskedCard())
}

func TestRatingAverageBeforeAnyTrip(t *testing.T) {
	v := Vehicle{}
	assert.Equal(t, 5.0, v.RatingAverage(5.0))
}

func TestRatingAverageAfterTrips(t *testing.T) {
	v := Vehicle{}
	v.AddRating(3)
	v.AddRating(5)
	avg := v.RatingAverage(5.0)
	assert.Equal(t, 4.0, avg)
	assert.GreaterOrEqual(t, avg, 1.0)
	assert.LessOrEqual(t, avg, 5.0)
}

func TestAddEarningsIgnoresNonPositive(t *testing.T) {
	v := Vehicle{}
	v.AddEarnings(100)
	v.AddEarnings(-10)
	v.AddEarnings(0)
	assert.Equal(t, 100.0, v.DailyEarnings)
	assert.Equal(t, 100.0, v.TotalEarnings)

	v.ResetDailyEarnings()
	assert.Equal(t, 0.0, v.DailyEarnings)
	assert.Equal(t, 100.0, v.TotalEarnings)
}

func TestTripCommissionSplit(t *testing.T) {
	trip := Trip{Fare: 100}
	assert.Equal(t, 20.0, trip.Commission(0.20))
	assert.Equal(t, 80.0, trip.DriverTake(0.20))
}
