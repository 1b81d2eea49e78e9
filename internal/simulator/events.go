package simulator

import (
	"fmt"
	"log"
	"time"

	"github.com/xitongsys/parquet-go/schema"

	"github.com/ardillaCHIKI/App2-taxi/internal/models"
)

const (
	TopicTripRequested = "trip_requested_events"
	TopicTripStarted   = "trip_started_events"
	TopicTripCompleted = "trip_completed_events"
	TopicDayReport     = "day_report_events"
	TopicSettlement    = "settlement_events"
)

// BaseEvent is the common structure for all events
type BaseEvent struct {
	Timestamp int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	RiderID   string `json:"riderId,omitempty" parquet:"name=riderId,type=BYTE_ARRAY,convertedtype=UTF8"`
	VehicleID string `json:"vehicleId,omitempty" parquet:"name=vehicleId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Day       int32  `json:"day" parquet:"name=day,type=INT32"`
}

// TripRequestedEvent represents a rider asking for a vehicle, matched or not
type TripRequestedEvent struct {
	BaseEvent
	Origin   models.Location `json:"origin" parquet:"name=origin,type=STRUCT"`
	RadiusKm float64         `json:"radiusKm" parquet:"name=radiusKm,type=DOUBLE"`
	Matched  bool            `json:"matched" parquet:"name=matched,type=BOOLEAN"`
}

// TripStartedEvent represents a matched trip leaving the origin
type TripStartedEvent struct {
	BaseEvent
	TripID      int64           `json:"tripId" parquet:"name=tripId,type=INT64"`
	Origin      models.Location `json:"origin" parquet:"name=origin,type=STRUCT"`
	Destination models.Location `json:"destination" parquet:"name=destination,type=STRUCT"`
	DistanceKm  float64         `json:"distanceKm" parquet:"name=distanceKm,type=DOUBLE"`
}

// TripCompletedEvent represents the fare, rating and split of a finished trip
type TripCompletedEvent struct {
	BaseEvent
	TripID     int64   `json:"tripId" parquet:"name=tripId,type=INT64"`
	DistanceKm float64 `json:"distanceKm" parquet:"name=distanceKm,type=DOUBLE"`
	Fare       float64 `json:"fare" parquet:"name=fare,type=DOUBLE"`
	Commission float64 `json:"commission" parquet:"name=commission,type=DOUBLE"`
	DriverTake float64 `json:"driverTake" parquet:"name=driverTake,type=DOUBLE"`
	Rating     int32   `json:"rating" parquet:"name=rating,type=INT32"`
	Tracked    bool    `json:"tracked" parquet:"name=tracked,type=BOOLEAN"`
}

// DayReportEvent summarises a closed day after the barrier has drained
type DayReportEvent struct {
	BaseEvent
	TrackedTrips int32   `json:"trackedTrips" parquet:"name=trackedTrips,type=INT32"`
	Revenue      float64 `json:"revenue" parquet:"name=revenue,type=DOUBLE"`
	FleetGross   float64 `json:"fleetGross" parquet:"name=fleetGross,type=DOUBLE"`
	OperatorCut  float64 `json:"operatorCut" parquet:"name=operatorCut,type=DOUBLE"`
}

// SettlementEvent is one vehicle's line in the day's commission split
type SettlementEvent struct {
	BaseEvent
	LicensePlate  string  `json:"licensePlate" parquet:"name=licensePlate,type=BYTE_ARRAY,convertedtype=UTF8"`
	Gross         float64 `json:"gross" parquet:"name=gross,type=DOUBLE"`
	Commission    float64 `json:"commission" parquet:"name=commission,type=DOUBLE"`
	Net           float64 `json:"net" parquet:"name=net,type=DOUBLE"`
	TripCount     int32   `json:"tripCount" parquet:"name=tripCount,type=INT32"`
	RatingAverage float64 `json:"ratingAverage" parquet:"name=ratingAverage,type=DOUBLE"`
}

func GetSchema(eventType string) (*schema.SchemaHandler, error) {
	var sh *schema.SchemaHandler
	var err error

	switch eventType {
	case TopicTripRequested:
		sh, err = schema.NewSchemaHandlerFromStruct(new(TripRequestedEvent))
	case TopicTripStarted:
		sh, err = schema.NewSchemaHandlerFromStruct(new(TripStartedEvent))
	case TopicTripCompleted:
		sh, err = schema.NewSchemaHandlerFromStruct(new(TripCompletedEvent))
	case TopicDayReport:
		sh, err = schema.NewSchemaHandlerFromStruct(new(DayReportEvent))
	case TopicSettlement:
		sh, err = schema.NewSchemaHandlerFromStruct(new(SettlementEvent))
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	if err != nil {
		log.Printf("Error creating schema for %s: %v", eventType, err)
		return nil, fmt.Errorf("error creating schema for %s: %w", eventType, err)
	}

	return sh, nil
}

func NewBaseEvent(eventType string, day int, timestamp time.Time) BaseEvent {
	return BaseEvent{
		Timestamp: timestamp.Unix(),
		EventType: eventType,
		Day:       int32(day),
	}
}
