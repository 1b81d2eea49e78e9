package simulator

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/ardillaCHIKI/App2-taxi/internal/factories"
	"github.com/ardillaCHIKI/App2-taxi/internal/logger"
	"github.com/ardillaCHIKI/App2-taxi/internal/models"
	"github.com/ardillaCHIKI/App2-taxi/internal/repositories/postgres"
)

// Simulator owns the whole run: the entity store, the matching engine,
// the day lifecycle and the rider goroutines, plus the event stream out
// to the configured sink.
type Simulator struct {
	Config *models.Config
	Store  *Store
	Days   *DayController
	Rng    Rand

	match    matcher
	log      zerolog.Logger
	events   chan models.EventMessage
	output   OutputDestination
	exporter *Exporter
	reports  []models.DailyReport

	// sleep is swappable so tests can run without real time passing
	sleep func(time.Duration)

	pgPool   *pgxpool.Pool
	tripRepo *postgres.TripRepository

	wg       sync.WaitGroup
	writerWg sync.WaitGroup
}

func NewSimulator(config *models.Config) *Simulator {
	seed := int64(config.Seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		Config:   config,
		Store:    NewStore(config),
		Days:     NewDayController(),
		Rng:      NewRand(seed),
		log:      logger.New("simulator"),
		events:   make(chan models.EventMessage, 1024),
		exporter: NewExporter(config.DataDir),
		sleep:    time.Sleep,
	}
}

func (s *Simulator) initializeData() {
	vehicleFactory := &factories.VehicleFactory{}
	riderFactory := &factories.RiderFactory{}

	var vehicles []*models.Vehicle
	if s.Config.VehiclesFile != "" {
		loaded, err := loadVehiclesFile(s.Config.VehiclesFile)
		if err != nil {
			s.log.Fatal().Err(err).Str("file", s.Config.VehiclesFile).Msg("loading vehicles file")
		}
		for i, v := range loaded {
			s.normalizeLoadedVehicle(v, i)
		}
		vehicles = loaded
	} else {
		for i := 0; i < s.Config.InitialVehicles; i++ {
			vehicles = append(vehicles, vehicleFactory.CreateVehicle(s.Config, i))
		}
	}
	for _, v := range vehicles {
		if err := s.Store.AffiliateVehicle(v); err != nil {
			s.log.Warn().Err(err).Str("plate", v.LicensePlate).Msg("vehicle rejected")
		}
	}

	var riders []*models.Rider
	if s.Config.RidersFile != "" {
		loaded, err := loadRidersFile(s.Config.RidersFile)
		if err != nil {
			s.log.Fatal().Err(err).Str("file", s.Config.RidersFile).Msg("loading riders file")
		}
		for _, r := range loaded {
			s.normalizeLoadedRider(r)
		}
		riders = loaded
	} else {
		for i := 0; i < s.Config.InitialRiders; i++ {
			riders = append(riders, riderFactory.CreateRider(s.Config))
		}
	}
	for _, r := range riders {
		if err := s.Store.AffiliateRider(r); err != nil {
			s.log.Warn().Err(err).Str("identity", r.Identity).Msg("rider rejected")
		}
	}

	s.log.Info().
		Int("vehicles", s.Store.VehicleCount()).
		Int("riders", s.Store.RiderCount()).
		Msg("fleet affiliated")

	if s.Config.PostgresEnabled {
		if err := s.seedDatabase(); err != nil {
			s.log.Error().Err(err).Msg("seeding database")
		}
	}
}

// seedDatabase resets the warehouse tables and loads the affiliated fleet
// so the run's facts land against fresh dimensions.
func (s *Simulator) seedDatabase() error {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, s.Config.Database.ConnString())
	if err != nil {
		return err
	}
	s.pgPool = pool
	s.tripRepo = postgres.NewTripRepository(pool)

	vehicleRepo := postgres.NewVehicleRepository(pool)
	riderRepo := postgres.NewRiderRepository(pool)

	if err := s.tripRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := vehicleRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := riderRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := vehicleRepo.BulkCreate(ctx, s.Store.Vehicles()); err != nil {
		return err
	}
	return riderRepo.BulkCreate(ctx, s.Store.Riders())
}

// Registration files can hold suspended records; only active ones join
// the fleet.
func loadVehiclesFile(path string) ([]*models.Vehicle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var vehicles []*models.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		return nil, err
	}
	active := vehicles[:0]
	for _, v := range vehicles {
		if v.Status == models.StatusActive {
			active = append(active, v)
		}
	}
	return active, nil
}

func loadRidersFile(path string) ([]*models.Rider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var riders []*models.Rider
	if err := json.Unmarshal(data, &riders); err != nil {
		return nil, err
	}
	active := riders[:0]
	for _, r := range riders {
		if r.Status == models.StatusActive {
			active = append(active, r)
		}
	}
	return active, nil
}

// normalizeLoadedVehicle gives a file-loaded vehicle the same operational
// state affiliation gives a factory one: free for dispatch, with a start
// point and a map color when the registration omits them.
func (s *Simulator) normalizeLoadedVehicle(v *models.Vehicle, index int) {
	v.Available = true
	v.CurrentRiderID = ""
	if (v.Location == models.Location{}) {
		v.Location = s.randomCityLocation()
	}
	if v.MapColor == "" {
		v.MapColor = models.DefaultMapColors[index%len(models.DefaultMapColors)]
	}
}

func (s *Simulator) normalizeLoadedRider(r *models.Rider) {
	r.InTrip = false
	r.AssignedVehicleID = ""
	if (r.Location == models.Location{}) {
		r.Location = s.randomCityLocation()
	}
}

func (s *Simulator) Run() {
	s.output = s.determineOutputDestination()
	defer func() {
		if err := s.output.Close(); err != nil {
			s.log.Error().Err(err).Msg("closing output")
		}
	}()

	s.initializeData()

	s.writerWg.Add(1)
	go s.writeEvents()

	riders := s.Store.Riders()
	s.wg.Add(len(riders))
	for _, r := range riders {
		go s.runRider(r)
	}

	bar := progressbar.Default(int64(s.Config.Days), "simulating days")
	for i := 0; i < s.Config.Days; i++ {
		day := s.Days.OpenDay()
		s.log.Info().Int("day", day).Msg("day opened")

		s.sleep(s.Config.DayDuration)

		s.Days.CloseDay()
		s.closeOutDay(day)
		_ = bar.Add(1)
	}

	s.Days.Finish()
	s.wg.Wait()
	close(s.events)
	s.writerWg.Wait()

	s.finish()
}

// closeOutDay runs after the quiescence barrier: every trip admitted for
// the day has fully completed, so the tracked sample and the settlement
// are final.
func (s *Simulator) closeOutDay(day int) {
	tracked := s.Store.ResetTracking()
	settlements, operatorCut := s.Store.SettleDay(s.Config.CommissionFraction)

	// the day's headline figure sums the tracked sample; the settlement
	// covers the whole fleet
	var revenue float64
	for _, trip := range tracked {
		revenue += trip.Fare
	}
	var fleetGross float64
	for _, st := range settlements {
		fleetGross += st.Gross
	}

	report := models.DailyReport{
		Day:          day,
		TrackedTrips: tracked,
		Revenue:      revenue,
		FleetGross:   fleetGross,
		OperatorCut:  operatorCut,
	}
	s.reports = append(s.reports, report)

	s.emitDayReport(report)
	for _, st := range settlements {
		s.emitSettlement(day, st)
	}

	if err := s.exporter.ExportSnapshot(s.Store.Snapshot()); err != nil {
		s.log.Error().Err(err).Msg("exporting snapshot")
	}

	s.log.Info().
		Int("day", day).
		Int("tracked_trips", len(tracked)).
		Float64("revenue", revenue).
		Float64("fleet_gross", fleetGross).
		Float64("operator_cut", operatorCut).
		Msg("day closed")
}

func (s *Simulator) finish() {
	trips := s.Store.CompletedTrips()
	final := s.Store.FinalReport(s.Config.CommissionFraction)

	if err := s.exporter.ExportTrips(trips); err != nil {
		s.log.Error().Err(err).Msg("exporting trips")
	}
	if err := s.exporter.ExportDailyReports(s.reports); err != nil {
		s.log.Error().Err(err).Msg("exporting daily reports")
	}
	if err := s.exporter.ExportFinalReport(final); err != nil {
		s.log.Error().Err(err).Msg("exporting final report")
	}
	if err := s.exporter.ExportSnapshot(s.Store.Snapshot()); err != nil {
		s.log.Error().Err(err).Msg("exporting snapshot")
	}

	if s.tripRepo != nil {
		if err := s.tripRepo.BulkCreate(context.Background(), trips); err != nil {
			s.log.Error().Err(err).Msg("persisting trip ledger")
		}
		s.pgPool.Close()
	}

	s.log.Info().
		Int("total_trips", final.TotalTrips).
		Int("riders_served", final.RidersServed).
		Float64("operator_total", final.OperatorTotal).
		Msg("simulation completed")
}

func (s *Simulator) writeEvents() {
	defer s.writerWg.Done()
	for msg := range s.events {
		if err := s.output.WriteMessage(msg.Topic, msg.Message); err != nil {
			s.log.Error().Err(err).Str("topic", msg.Topic).Msg("failed to write event")
		}
	}
}

func (s *Simulator) emit(topic string, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		s.log.Error().Err(err).Str("topic", topic).Msg("failed to serialize event")
		return
	}
	s.events <- models.EventMessage{Topic: topic, Message: data}
}

func (s *Simulator) emitTripRequested(rider *models.Rider, origin models.Location, matched bool) {
	base := NewBaseEvent(TopicTripRequested, s.Days.Day(), time.Now())
	base.RiderID = rider.ID
	s.emit(TopicTripRequested, TripRequestedEvent{
		BaseEvent: base,
		Origin:    origin,
		RadiusKm:  s.Config.SearchRadiusKm,
		Matched:   matched,
	})
}

func (s *Simulator) emitTripStarted(trip *models.Trip) {
	base := NewBaseEvent(TopicTripStarted, trip.Day, trip.RequestedAt)
	base.RiderID = trip.RiderID
	base.VehicleID = trip.VehicleID
	s.emit(TopicTripStarted, TripStartedEvent{
		BaseEvent:   base,
		TripID:      trip.ID,
		Origin:      trip.Origin,
		Destination: trip.Destination,
		DistanceKm:  trip.DistanceKm,
	})
}

func (s *Simulator) emitTripCompleted(trip *models.Trip) {
	base := NewBaseEvent(TopicTripCompleted, trip.Day, trip.CompletedAt)
	base.RiderID = trip.RiderID
	base.VehicleID = trip.VehicleID
	s.emit(TopicTripCompleted, TripCompletedEvent{
		BaseEvent:  base,
		TripID:     trip.ID,
		DistanceKm: trip.DistanceKm,
		Fare:       trip.Fare,
		Commission: trip.Commission(s.Config.CommissionFraction),
		DriverTake: trip.DriverTake(s.Config.CommissionFraction),
		Rating:     int32(trip.Rating),
		Tracked:    trip.Tracked,
	})
}

func (s *Simulator) emitDayReport(report models.DailyReport) {
	s.emit(TopicDayReport, DayReportEvent{
		BaseEvent:    NewBaseEvent(TopicDayReport, report.Day, time.Now()),
		TrackedTrips: int32(len(report.TrackedTrips)),
		Revenue:      report.Revenue,
		FleetGross:   report.FleetGross,
		OperatorCut:  report.OperatorCut,
	})
}

func (s *Simulator) emitSettlement(day int, st models.VehicleSettlement) {
	base := NewBaseEvent(TopicSettlement, day, time.Now())
	base.VehicleID = st.VehicleID
	s.emit(TopicSettlement, SettlementEvent{
		BaseEvent:     base,
		LicensePlate:  st.LicensePlate,
		Gross:         st.Gross,
		Commission:    st.Commission,
		Net:           st.Net,
		TripCount:     int32(st.TripCount),
		RatingAverage: st.RatingAverage,
	})
}
