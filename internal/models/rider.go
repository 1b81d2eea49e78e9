package models

import (
	"fmt"
	"time"
)

// Rider is an affiliated customer. AssignedVehicleID is set exactly when
// InTrip is true; both flip together under the entity store's rider lock.
type Rider struct {
	ID                string    `json:"id"`
	Identity          string    `json:"identity"`
	Name              string    `json:"name"`
	CardNumber        string    `json:"card_number"`
	Location          Location  `json:"location"`
	Destination       Location  `json:"destination"`
	AssignedVehicleID string    `json:"assigned_vehicle_id,omitempty"`
	InTrip            bool      `json:"in_trip"`
	JoinDate          time.Time `json:"join_date"`
	Status            string    `json:"status"`
}

// MaskedCard renders the payment card with all but the last four digits hidden.
func (r *Rider) MaskedCard() string {
	if len(r.CardNumber) < 4 {
		return r.CardNumber
	}
	return fmt.Sprintf("**** **** **** %s", r.CardNumber[len(r.CardNumber)-4:])
}
