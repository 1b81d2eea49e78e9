package repositories

import (
	"context"

	"github.com/ardillaCHIKI/App2-taxi/internal/models"
)

type VehicleRepository interface {
	BulkCreate(ctx context.Context, vehicles []*models.Vehicle) error
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetAll(ctx context.Context) ([]*models.Vehicle, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type RiderRepository interface {
	BulkCreate(ctx context.Context, riders []*models.Rider) error
	Create(ctx context.Context, rider *models.Rider) error
	GetAll(ctx context.Context) ([]*models.Rider, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type TripRepository interface {
	BulkCreate(ctx context.Context, trips []models.Trip) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
