package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ardillaCHIKI/App2-taxi/internal/models"
)

type TripRepository struct {
	pool *pgxpool.Pool
}

func NewTripRepository(pool *pgxpool.Pool) *TripRepository {
	return &TripRepository{pool: pool}
}

func (r *TripRepository) BulkCreate(ctx context.Context, trips []models.Trip) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	stmt := `
        INSERT INTO trips (
            id, vehicle_id, rider_id, origin, destination, distance_km,
            fare, rating, day, tracked, requested_at, completed_at
        ) VALUES (
            $1, $2, $3,
            ST_SetSRID(ST_MakePoint($4, $5), 4326),
            ST_SetSRID(ST_MakePoint($6, $7), 4326),
            $8, $9, $10, $11, $12, $13, $14
        )`

	for _, t := range trips {
		_, err = tx.Exec(ctx, stmt,
			t.ID,
			t.VehicleID,
			t.RiderID,
			t.Origin.Lon,
			t.Origin.Lat,
			t.Destination.Lon,
			t.Destination.Lat,
			t.DistanceKm,
			t.Fare,
			t.Rating,
			t.Day,
			t.Tracked,
			t.RequestedAt,
			t.CompletedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *TripRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM trips").Scan(&count)
	return count, err
}

func (r *TripRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE trips CASCADE")
	return err
}
