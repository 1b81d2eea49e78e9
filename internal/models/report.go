package models

import "time"

// DailyReport aggregates the day's tracked sample plus that day's
// settlement outcome. Produced by the day controller only after the
// quiescence barrier has drained all in-flight trips. Revenue covers the
// tracked sample only; FleetGross is what settlement actually split.
type DailyReport struct {
	Day          int     `json:"day"`
	TrackedTrips []Trip  `json:"tracked_trips"`
	Revenue      float64 `json:"revenue"`
	FleetGross   float64 `json:"fleet_gross"`
	OperatorCut  float64 `json:"operator_cut"`
}

// VehicleSettlement is the per-vehicle commission split at day close or in
// the final report.
type VehicleSettlement struct {
	VehicleID     string  `json:"vehicle_id"`
	LicensePlate  string  `json:"license_plate"`
	DriverName    string  `json:"driver_name"`
	Gross         float64 `json:"gross"`
	Commission    float64 `json:"commission"`
	Net           float64 `json:"net"`
	TripCount     int     `json:"trip_count"`
	RatingAverage float64 `json:"rating_average"`
}

// FinalReport is the end-of-simulation aggregate across every day.
type FinalReport struct {
	OperatorTotal float64             `json:"operator_total"`
	TotalTrips    int                 `json:"total_trips"`
	RidersServed  int                 `json:"riders_served"`
	Vehicles      []VehicleSettlement `json:"vehicles"`
}

// VehicleSnapshot and RiderSnapshot are the read-only views handed to the
// visualization and registration collaborators.
type VehicleSnapshot struct {
	ID             string   `json:"id"`
	DriverName     string   `json:"driver_name"`
	LicensePlate   string   `json:"license_plate"`
	Location       Location `json:"location"`
	Available      bool     `json:"available"`
	CurrentRiderID string   `json:"current_rider_id,omitempty"`
	RatingAverage  float64  `json:"rating_average"`
	TripCount      int      `json:"trip_count"`
	DailyEarnings  float64  `json:"daily_earnings"`
	TotalEarnings  float64  `json:"total_earnings"`
	MapColor       string   `json:"map_color"`
}

type RiderSnapshot struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	MaskedCard        string   `json:"masked_card"`
	Location          Location `json:"location"`
	Destination       Location `json:"destination"`
	AssignedVehicleID string   `json:"assigned_vehicle_id"`
}

// Snapshot is the live view of the fleet: every vehicle plus the riders
// currently in a trip. Identical inputs yield identical content except
// for GeneratedAt.
type Snapshot struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Vehicles    []VehicleSnapshot `json:"vehicles"`
	Riders      []RiderSnapshot   `json:"riders"`
}
