package simulator

import (
	"sync"

	"github.com/ardillaCHIKI/App2-taxi/internal/models"
)

// matcher serializes the find-and-reserve operation so concurrent rider
// requests are matched one at a time. The store's vehicle lock already
// makes reservation atomic; the match lock on top of it keeps the
// nearest-vehicle decision itself from interleaving, which is what makes
// the "closest available wins" outcome deterministic under load.
type matcher struct {
	mu sync.Mutex
}

// FindAndReserve locates the closest available vehicle strictly within
// the configured search radius of origin and reserves it for the rider.
// Returns nil when nothing qualifies. The match lock is acquired before
// the store's vehicle lock, never the other way around.
func (s *Simulator) FindAndReserve(origin models.Location, riderID string) *models.Vehicle {
	s.match.mu.Lock()
	defer s.match.mu.Unlock()
	return s.Store.ReserveNearest(origin, s.Config.SearchRadiusKm, riderID)
}
