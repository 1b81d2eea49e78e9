package models

import "time"

// Vehicle is an affiliated taxi. Availability and the current-rider
// reference move together: Available is false exactly when CurrentRiderID
// is set. Mutations happen only under the entity store's vehicle lock.
type Vehicle struct {
	ID             string    `json:"id"`
	DriverIdentity string    `json:"driver_identity"`
	DriverName     string    `json:"driver_name"`
	LicensePlate   string    `json:"license_plate"`
	Make           string    `json:"make"`
	Model          string    `json:"model"`
	SpeedKmh       float64   `json:"speed_kmh"`
	Location       Location  `json:"location"`
	Available      bool      `json:"available"`
	CurrentRiderID string    `json:"current_rider_id,omitempty"`
	RatingTotal    float64   `json:"rating_total"`
	TripCount      int       `json:"trip_count"`
	DailyEarnings  float64   `json:"daily_earnings"`
	TotalEarnings  float64   `json:"total_earnings"`
	JoinDate       time.Time `json:"join_date"`
	Status         string    `json:"status"`
	MapColor       string    `json:"map_color"`
}

// RatingAverage returns the vehicle's mean rating, or the configured
// initial average before any trip has completed.
func (v *Vehicle) RatingAverage(initial float64) float64 {
	if v.TripCount == 0 {
		return initial
	}
	return v.RatingTotal / float64(v.TripCount)
}

func (v *Vehicle) AddRating(rating int) {
	v.RatingTotal += float64(rating)
	v.TripCount++
}

func (v *Vehicle) AddEarnings(amount float64) {
	if amount > 0 {
		v.DailyEarnings += amount
		v.TotalEarnings += amount
	}
}

func (v *Vehicle) ResetDailyEarnings() {
	v.DailyEarnings = 0
}

// Commission returns the operator's cut of the vehicle's total earnings.
func (v *Vehicle) Commission(fraction float64) float64 {
	return v.TotalEarnings * fraction
}

// NetEarnings returns the driver's share of the vehicle's total earnings.
func (v *Vehicle) NetEarnings(fraction float64) float64 {
	return v.TotalEarnings * (1 - fraction)
}
