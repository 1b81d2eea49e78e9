package simulator

import (
	"time"

	"github.com/ardillaCHIKI/App2-taxi/internal/models"
)

// ExecuteTrip runs one reserved trip end to end: bind the rider, ride out
// the transit time, then settle fare, rating and locations. The vehicle
// reservation and the rider binding are released on every path out,
// success or failure.
func (s *Simulator) ExecuteTrip(rider *models.Rider, vehicle *models.Vehicle) (models.Trip, error) {
	destination := s.randomCityLocation()
	origin := rider.Location

	trip := &models.Trip{
		ID:          s.Store.NextTripID(),
		VehicleID:   vehicle.ID,
		RiderID:     rider.ID,
		Origin:      origin,
		Destination: destination,
		DistanceKm:  origin.Distance(destination),
		Day:         s.Days.Day(),
		RequestedAt: time.Now(),
	}

	s.Store.BindRider(rider, vehicle.ID, destination)
	defer s.Store.ReleaseReservation(vehicle, rider)

	s.emitTripStarted(trip)

	// the vehicle first drives to the rider, then runs the trip itself
	approachKm := vehicle.Location.Distance(origin)
	if err := s.simulateTransit(approachKm+trip.DistanceKm, vehicle.SpeedKmh); err != nil {
		s.log.Error().Err(err).
			Str("vehicle_id", vehicle.ID).
			Str("rider_id", rider.ID).
			Msg("trip aborted in transit")
		return models.Trip{}, err
	}

	trip.Fare = s.fare(trip.DistanceKm)
	trip.Rating = s.Rng.IntBetween(s.Config.RatingMin, s.Config.RatingMax)
	trip.Completed = true
	trip.CompletedAt = time.Now()

	s.Store.CompleteVehicleTrip(vehicle, destination, trip.Rating, trip.Fare)
	s.Store.MoveRider(rider, destination)

	// the day's sample holds the first trips to complete, never an
	// aborted one
	s.Store.TrackTrip(trip)
	s.Store.AppendCompleted(*trip)

	s.emitTripCompleted(trip)
	return *trip, nil
}

// fare prices a trip. The per-meter rate takes priority over the per-km
// rate whenever it is configured.
func (s *Simulator) fare(distanceKm float64) float64 {
	if s.Config.FarePerMeter != nil {
		return distanceKm * 1000 * *s.Config.FarePerMeter
	}
	return distanceKm * s.Config.FarePerKm
}

// simulateTransit sleeps for the travel time of distanceKm at speedKmh,
// compressed by the acceleration factor.
func (s *Simulator) simulateTransit(distanceKm, speedKmh float64) error {
	if speedKmh <= 0 {
		return ErrInvalidSpeed
	}
	seconds := distanceKm / speedKmh * 3600 / s.Config.AccelerationFactor
	s.sleep(time.Duration(seconds * float64(time.Second)))
	return nil
}
