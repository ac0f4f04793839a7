package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pairmed/api/internal/core/domain"
)

type TripRepository interface {
	Save(ctx context.Context, trip *domain.Trip) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	ListByCouple(ctx context.Context, coupleID string) ([]*domain.Trip, error)
	Update(ctx context.Context, trip *domain.Trip) error
	SetStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateTripInput struct {
	Name            string
	Year            int
	MainDestination string
	Status          domain.TripStatus
	EstimatedPeriod domain.EstimatedPeriod
	Description     string
}

type UpdateTripInput struct {
	Name            *string
	Year            *int
	MainDestination *string
	Status          *domain.TripStatus
	EstimatedPeriod *domain.EstimatedPeriod
	Description     *string
}

type TripService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateTripInput) (*domain.Trip, error)
	Get(ctx context.Context, userID, tripID uuid.UUID) (*domain.Trip, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Trip, error)
	Update(ctx context.Context, userID, tripID uuid.UUID, input UpdateTripInput) (*domain.Trip, error)
	SetStatus(ctx context.Context, userID, tripID uuid.UUID, status domain.TripStatus) error
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}
