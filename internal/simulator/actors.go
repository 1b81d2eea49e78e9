package simulator

import (
	"math"
	"time"

	"github.com/ardillaCHIKI/App2-taxi/internal/models"
)

// runRider is one rider's goroutine. The rider issues a fixed number of
// trip requests over the run; a request against a closed day blocks until
// the next day opens and does not count as an attempt, while a request
// that finds no vehicle in range does.
func (s *Simulator) runRider(rider *models.Rider) {
	defer s.wg.Done()

	attempts := s.Rng.IntBetween(s.Config.MinRequestsPerRider, s.Config.MaxRequestsPerRider)
	for done := 0; done < attempts; {
		s.sleep(time.Duration(s.Rng.Between(0.1, 1.0) * float64(time.Second)))

		if s.Days.Finished() {
			return
		}
		if !s.Days.ActivateTrip() {
			if !s.Days.WaitForOpen() {
				return
			}
			continue
		}
		s.riderRequest(rider)
		done++
	}
}

// riderRequest runs one admitted request. The day controller's counter is
// always released, whether a vehicle was found or not and whether the
// trip succeeded or not.
func (s *Simulator) riderRequest(rider *models.Rider) {
	defer s.Days.DeactivateTrip()

	origin := rider.Location
	vehicle := s.FindAndReserve(origin, rider.ID)
	s.emitTripRequested(rider, origin, vehicle != nil)
	if vehicle == nil {
		return
	}

	if _, err := s.ExecuteTrip(rider, vehicle); err != nil {
		s.log.Warn().Err(err).Str("rider_id", rider.ID).Msg("trip failed")
	}
}

// randomCityLocation picks a destination inside the configured urban
// radius around the city center.
func (s *Simulator) randomCityLocation() models.Location {
	latRange := s.Config.UrbanRadius / 111.0 // Approx. conversion from km to degrees
	lonRange := latRange / math.Cos(s.Config.CityLat*math.Pi/180.0)

	return models.Location{
		Lat: s.Config.CityLat + (s.Rng.Float64()*2-1)*latRange,
		Lon: s.Config.CityLon + (s.Rng.Float64()*2-1)*lonRange,
	}
}
