package simulator

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ardillaCHIKI/App2-taxi/internal/models"
)

var (
	ErrInvalidCard      = errors.New("card number must contain exactly sixteen digits")
	ErrInvalidPlate     = errors.New("license plate must be at least five characters")
	ErrInvalidIdentity  = errors.New("identity must be at least five characters")
	ErrInvalidSpeed     = errors.New("vehicle speed must be positive")
	ErrDuplicateVehicle = errors.New("vehicle already affiliated")
	ErrDuplicateRider   = errors.New("rider already affiliated")
)

// Store holds every shared collection of the dispatch system. Each
// collection has its own mutex and no method ever holds two of them at
// once; callers that need cross-collection updates perform them as
// separate sequential sections. The matching engine adds its own outer
// lock on top of the vehicle lock (see Simulator.FindAndReserve), which
// is the only permitted nesting.
type Store struct {
	cfg *models.Config

	vehiclesMu sync.Mutex
	vehicles   []*models.Vehicle

	ridersMu sync.Mutex
	riders   []*models.Rider

	tripSeqMu sync.Mutex
	tripSeq   int64

	completedMu sync.Mutex
	completed   []models.Trip

	trackedMu sync.Mutex
	tracked   []*models.Trip
}

func NewStore(cfg *models.Config) *Store {
	return &Store{cfg: cfg}
}

// AffiliateVehicle validates and registers a vehicle. Plate and identity
// must be at least five characters, speed positive, and both plate and
// driver identity unique across the fleet.
func (s *Store) AffiliateVehicle(v *models.Vehicle) error {
	if len(strings.TrimSpace(v.LicensePlate)) < 5 {
		return ErrInvalidPlate
	}
	if len(strings.TrimSpace(v.DriverIdentity)) < 5 {
		return ErrInvalidIdentity
	}
	if v.SpeedKmh <= 0 {
		return ErrInvalidSpeed
	}

	s.vehiclesMu.Lock()
	defer s.vehiclesMu.Unlock()
	for _, existing := range s.vehicles {
		if existing.LicensePlate == v.LicensePlate || existing.DriverIdentity == v.DriverIdentity {
			return ErrDuplicateVehicle
		}
	}
	s.vehicles = append(s.vehicles, v)
	return nil
}

// AffiliateRider validates and registers a rider. The card number must
// normalize to exactly sixteen digits; spaces and dashes are ignored.
func (s *Store) AffiliateRider(r *models.Rider) error {
	if len(strings.TrimSpace(r.Identity)) < 5 {
		return ErrInvalidIdentity
	}
	if !validCardNumber(r.CardNumber) {
		return ErrInvalidCard
	}

	s.ridersMu.Lock()
	defer s.ridersMu.Unlock()
	for _, existing := range s.riders {
		if existing.Identity == r.Identity {
			return ErrDuplicateRider
		}
	}
	s.riders = append(s.riders, r)
	return nil
}

func validCardNumber(card string) bool {
	normalized := strings.NewReplacer(" ", "", "-", "").Replace(card)
	if len(normalized) != 16 {
		return false
	}
	for _, c := range normalized {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ReserveNearest scans the fleet for the closest available vehicle
// strictly within radius of origin and reserves it for riderID in the
// same critical section, so no two riders can ever hold the same
// vehicle. Distance ties go to the vehicle with the higher rating
// average. Returns nil when no vehicle qualifies.
func (s *Store) ReserveNearest(origin models.Location, radius float64, riderID string) *models.Vehicle {
	s.vehiclesMu.Lock()
	defer s.vehiclesMu.Unlock()

	var best *models.Vehicle
	bestDist := radius
	for _, v := range s.vehicles {
		if !v.Available || v.Status != models.StatusActive {
			continue
		}
		d := v.Location.Distance(origin)
		if d < bestDist {
			best = v
			bestDist = d
		} else if best != nil && d == bestDist &&
			v.RatingAverage(s.cfg.InitialRatingAverage) > best.RatingAverage(s.cfg.InitialRatingAverage) {
			best = v
		}
	}
	if best != nil {
		best.Available = false
		best.CurrentRiderID = riderID
	}
	return best
}

// BindRider marks the rider as in-trip with the reserved vehicle and
// records where the trip is headed. All fields flip in one critical
// section.
func (s *Store) BindRider(r *models.Rider, vehicleID string, destination models.Location) {
	s.ridersMu.Lock()
	defer s.ridersMu.Unlock()
	r.AssignedVehicleID = vehicleID
	r.InTrip = true
	r.Destination = destination
}

// ReleaseReservation returns the vehicle to the pool and clears the
// rider's assignment. The two locks are taken one after the other,
// never nested.
func (s *Store) ReleaseReservation(v *models.Vehicle, r *models.Rider) {
	s.vehiclesMu.Lock()
	v.Available = true
	v.CurrentRiderID = ""
	s.vehiclesMu.Unlock()

	s.ridersMu.Lock()
	r.AssignedVehicleID = ""
	r.InTrip = false
	s.ridersMu.Unlock()
}

// CompleteVehicleTrip applies a finished trip to the vehicle: it moves to
// the destination, banks the gross fare and records the rating.
func (s *Store) CompleteVehicleTrip(v *models.Vehicle, destination models.Location, rating int, fare float64) {
	s.vehiclesMu.Lock()
	defer s.vehiclesMu.Unlock()
	v.Location = destination
	v.AddRating(rating)
	v.AddEarnings(fare)
}

// MoveRider relocates the rider to the trip destination.
func (s *Store) MoveRider(r *models.Rider, destination models.Location) {
	s.ridersMu.Lock()
	defer s.ridersMu.Unlock()
	r.Location = destination
}

// NextTripID hands out strictly increasing trip ids.
func (s *Store) NextTripID() int64 {
	s.tripSeqMu.Lock()
	defer s.tripSeqMu.Unlock()
	s.tripSeq++
	return s.tripSeq
}

// AppendCompleted adds a finished trip to the append-only ledger.
func (s *Store) AppendCompleted(t models.Trip) {
	s.completedMu.Lock()
	defer s.completedMu.Unlock()
	s.completed = append(s.completed, t)
}

// CompletedTrips returns a copy of the ledger.
func (s *Store) CompletedTrips() []models.Trip {
	s.completedMu.Lock()
	defer s.completedMu.Unlock()
	out := make([]models.Trip, len(s.completed))
	copy(out, s.completed)
	return out
}

// TrackTrip adds the trip to the day's tracked sample if there is room.
// The sample is capped at the configured size and reports false once full.
func (s *Store) TrackTrip(t *models.Trip) bool {
	s.trackedMu.Lock()
	defer s.trackedMu.Unlock()
	if len(s.tracked) >= s.cfg.DailyTrackingSampleSize {
		return false
	}
	t.Tracked = true
	s.tracked = append(s.tracked, t)
	return true
}

// ResetTracking drains the tracked sample for the day report and leaves
// the sample empty for the next day. Callers invoke this only after the
// day controller's quiescence barrier, so every tracked trip is final.
func (s *Store) ResetTracking() []models.Trip {
	s.trackedMu.Lock()
	defer s.trackedMu.Unlock()
	out := make([]models.Trip, 0, len(s.tracked))
	for _, t := range s.tracked {
		out = append(out, *t)
	}
	s.tracked = s.tracked[:0]
	return out
}

// TrackedCount reports the current size of the day's sample.
func (s *Store) TrackedCount() int {
	s.trackedMu.Lock()
	defer s.trackedMu.Unlock()
	return len(s.tracked)
}

// SettleDay splits every vehicle's daily gross into operator commission
// and driver net, resets the daily counters, and returns the per-vehicle
// breakdown plus the operator's total cut.
func (s *Store) SettleDay(fraction float64) ([]models.VehicleSettlement, float64) {
	s.vehiclesMu.Lock()
	defer s.vehiclesMu.Unlock()

	settlements := make([]models.VehicleSettlement, 0, len(s.vehicles))
	var operatorCut float64
	for _, v := range s.vehicles {
		gross := v.DailyEarnings
		commission := gross * fraction
		settlements = append(settlements, models.VehicleSettlement{
			VehicleID:     v.ID,
			LicensePlate:  v.LicensePlate,
			DriverName:    v.DriverName,
			Gross:         gross,
			Commission:    commission,
			Net:           gross - commission,
			TripCount:     v.TripCount,
			RatingAverage: v.RatingAverage(s.cfg.InitialRatingAverage),
		})
		operatorCut += commission
		v.ResetDailyEarnings()
	}
	return settlements, operatorCut
}

// Snapshot builds the live fleet view: every vehicle, plus the riders
// currently in a trip. Identical store state yields identical content
// apart from the timestamp.
func (s *Store) Snapshot() models.Snapshot {
	snap := models.Snapshot{GeneratedAt: time.Now()}

	s.vehiclesMu.Lock()
	for _, v := range s.vehicles {
		snap.Vehicles = append(snap.Vehicles, models.VehicleSnapshot{
			ID:             v.ID,
			DriverName:     v.DriverName,
			LicensePlate:   v.LicensePlate,
			Location:       v.Location,
			Available:      v.Available,
			CurrentRiderID: v.CurrentRiderID,
			RatingAverage:  v.RatingAverage(s.cfg.InitialRatingAverage),
			TripCount:      v.TripCount,
			DailyEarnings:  v.DailyEarnings,
			TotalEarnings:  v.TotalEarnings,
			MapColor:       v.MapColor,
		})
	}
	s.vehiclesMu.Unlock()

	s.ridersMu.Lock()
	for _, r := range s.riders {
		if !r.InTrip {
			continue
		}
		snap.Riders = append(snap.Riders, models.RiderSnapshot{
			ID:                r.ID,
			Name:              r.Name,
			MaskedCard:        r.MaskedCard(),
			Location:          r.Location,
			Destination:       r.Destination,
			AssignedVehicleID: r.AssignedVehicleID,
		})
	}
	s.ridersMu.Unlock()

	return snap
}

// FinalReport aggregates lifetime totals across the whole fleet.
func (s *Store) FinalReport(fraction float64) models.FinalReport {
	report := models.FinalReport{}

	s.vehiclesMu.Lock()
	for _, v := range s.vehicles {
		report.Vehicles = append(report.Vehicles, models.VehicleSettlement{
			VehicleID:     v.ID,
			LicensePlate:  v.LicensePlate,
			DriverName:    v.DriverName,
			Gross:         v.TotalEarnings,
			Commission:    v.Commission(fraction),
			Net:           v.NetEarnings(fraction),
			TripCount:     v.TripCount,
			RatingAverage: v.RatingAverage(s.cfg.InitialRatingAverage),
		})
		report.OperatorTotal += v.Commission(fraction)
	}
	s.vehiclesMu.Unlock()

	s.completedMu.Lock()
	report.TotalTrips = len(s.completed)
	served := make(map[string]struct{})
	for _, t := range s.completed {
		served[t.RiderID] = struct{}{}
	}
	report.RidersServed = len(served)
	s.completedMu.Unlock()

	return report
}

// Riders returns the rider collection for actor fan-out. The slice is a
// copy; the pointed-to riders are shared.
func (s *Store) Riders() []*models.Rider {
	s.ridersMu.Lock()
	defer s.ridersMu.Unlock()
	out := make([]*models.Rider, len(s.riders))
	copy(out, s.riders)
	return out
}

// Vehicles returns the vehicle collection. The slice is a copy; the
// pointed-to vehicles are shared.
func (s *Store) Vehicles() []*models.Vehicle {
	s.vehiclesMu.Lock()
	defer s.vehiclesMu.Unlock()
	out := make([]*models.Vehicle, len(s.vehicles))
	copy(out, s.vehicles)
	return out
}

func (s *Store) VehicleCount() int {
	s.vehiclesMu.Lock()
	defer s.vehiclesMu.Unlock()
	return len(s.vehicles)
}

func (s *Store) RiderCount() int {
	s.ridersMu.Lock()
	defer s.ridersMu.Unlock()
	return len(s.riders)
}
