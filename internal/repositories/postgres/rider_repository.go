package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ardillaCHIKI/App2-taxi/internal/models"
)

type RiderRepository struct {
	pool *pgxpool.Pool
}

func NewRiderRepository(pool *pgxpool.Pool) *RiderRepository {
	return &RiderRepository{pool: pool}
}

// Card numbers are persisted masked; the clear number never leaves the
// in-memory store.
func (r *RiderRepository) BulkCreate(ctx context.Context, riders []*models.Rider) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	stmt := `
        INSERT INTO riders (
            id, identity, name, card_masked, location, join_date, status
        ) VALUES (
            $1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326), $7, $8
        )`

	for _, rider := range riders {
		_, err = tx.Exec(ctx, stmt,
			rider.ID,
			rider.Identity,
			rider.Name,
			rider.MaskedCard(),
			rider.Location.Lon,
			rider.Location.Lat,
			rider.JoinDate,
			rider.Status,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *RiderRepository) Create(ctx context.Context, rider *models.Rider) error {
	query := `
        INSERT INTO riders (
            id, identity, name, card_masked, location, join_date, status
        ) VALUES (
            $1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326), $7, $8
        )`
	_, err := r.pool.Exec(ctx, query,
		rider.ID,
		rider.Identity,
		rider.Name,
		rider.MaskedCard(),
		rider.Location.Lon,
		rider.Location.Lat,
		rider.JoinDate,
		rider.Status,
	)
	return err
}

func (r *RiderRepository) GetAll(ctx context.Context) ([]*models.Rider, error) {
	query := `
        SELECT
            id, identity, name, card_masked,
            ST_X(location::geometry) as longitude,
            ST_Y(location::geometry) as latitude,
            join_date, status
        FROM riders`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var riders []*models.Rider
	for rows.Next() {
		var lon, lat float64
		rider := &models.Rider{}
		err := rows.Scan(
			&rider.ID,
			&rider.Identity,
			&rider.Name,
			&rider.CardNumber,
			&lon,
			&lat,
			&rider.JoinDate,
			&rider.Status,
		)
		if err != nil {
			return nil, err
		}
		rider.Location = models.Location{Lon: lon, Lat: lat}
		riders = append(riders, rider)
	}
	return riders, nil
}

func (r *RiderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM riders").Scan(&count)
	return count, err
}

func (r *RiderRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE riders CASCADE")
	return err
}
