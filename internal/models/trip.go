package models

import "time"

// Trip is an append-only record of one dispatched ride. Ids are assigned
// under the store's sequence lock and are monotonically increasing in
// assignment order. Once Completed is set the record is never mutated
// again; Rating is written exactly once, at completion.
type Trip struct {
	ID          int64     `json:"id"`
	VehicleID   string    `json:"vehicle_id"`
	RiderID     string    `json:"rider_id"`
	Origin      Location  `json:"origin"`
	Destination Location  `json:"destination"`
	DistanceKm  float64   `json:"distance_km"`
	Fare        float64   `json:"fare"`
	Rating      int       `json:"rating"`
	Day         int       `json:"day"`
	Completed   bool      `json:"completed"`
	Tracked     bool      `json:"tracked"`
	RequestedAt time.Time `json:"requested_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

// Commission returns the operator's cut of this trip's fare.
func (t *Trip) Commission(fraction float64) float64 {
	return t.Fare * fraction
}

// DriverTake returns the driver's share of this trip's fare.
func (t *Trip) DriverTake(fraction float64) float64 {
	return t.Fare * (1 - fraction)
}
