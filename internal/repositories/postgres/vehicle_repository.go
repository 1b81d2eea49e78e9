package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ardillaCHIKI/App2-taxi/internal/models"
)

type VehicleRepository struct {
	pool *pgxpool.Pool
}

func NewVehicleRepository(pool *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{pool: pool}
}

func (r *VehicleRepository) BulkCreate(ctx context.Context, vehicles []*models.Vehicle) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	stmt := `
        INSERT INTO vehicles (
            id, driver_identity, driver_name, license_plate, make, model,
            speed_kmh, location, available, rating_total, trip_count,
            daily_earnings, total_earnings, join_date, status, map_color
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7,
            ST_SetSRID(ST_MakePoint($8, $9), 4326),
            $10, $11, $12, $13, $14, $15, $16, $17
        )`

	for _, v := range vehicles {
		_, err = tx.Exec(ctx, stmt,
			v.ID,
			v.DriverIdentity,
			v.DriverName,
			v.LicensePlate,
			v.Make,
			v.Model,
			v.SpeedKmh,
			v.Location.Lon,
			v.Location.Lat,
			v.Available,
			v.RatingTotal,
			v.TripCount,
			v.DailyEarnings,
			v.TotalEarnings,
			v.JoinDate,
			v.Status,
			v.MapColor,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *VehicleRepository) Create(ctx context.Context, v *models.Vehicle) error {
	query := `
        INSERT INTO vehicles (
            id, driver_identity, driver_name, license_plate, make, model,
            speed_kmh, location, available, rating_total, trip_count,
            daily_earnings, total_earnings, join_date, status, map_color
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7,
            ST_SetSRID(ST_MakePoint($8, $9), 4326),
            $10, $11, $12, $13, $14, $15, $16, $17
        )`
	_, err := r.pool.Exec(ctx, query,
		v.ID,
		v.DriverIdentity,
		v.DriverName,
		v.LicensePlate,
		v.Make,
		v.Model,
		v.SpeedKmh,
		v.Location.Lon,
		v.Location.Lat,
		v.Available,
		v.RatingTotal,
		v.TripCount,
		v.DailyEarnings,
		v.TotalEarnings,
		v.JoinDate,
		v.Status,
		v.MapColor,
	)
	return err
}

func (r *VehicleRepository) GetAll(ctx context.Context) ([]*models.Vehicle, error) {
	query := `
        SELECT
            id, driver_identity, driver_name, license_plate, make, model,
            speed_kmh, ST_X(location::geometry) as longitude,
            ST_Y(location::geometry) as latitude, available, rating_total,
            trip_count, daily_earnings, total_earnings, join_date, status, map_color
        FROM vehicles`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		var lon, lat float64
		v := &models.Vehicle{}
		err := rows.Scan(
			&v.ID,
			&v.DriverIdentity,
			&v.DriverName,
			&v.LicensePlate,
			&v.Make,
			&v.Model,
			&v.SpeedKmh,
			&lon,
			&lat,
			&v.Available,
			&v.RatingTotal,
			&v.TripCount,
			&v.DailyEarnings,
			&v.TotalEarnings,
			&v.JoinDate,
			&v.Status,
			&v.MapColor,
		)
		if err != nil {
			return nil, err
		}
		v.Location = models.Location{Lon: lon, Lat: lat}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

func (r *VehicleRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM vehicles").Scan(&count)
	return count, err
}

func (r *VehicleRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE vehicles CASCADE")
	return err
}
