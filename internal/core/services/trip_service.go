package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pairmed/api/internal/core/domain"
	"github.com/pairmed/api/internal/core/ports"
)

type tripService struct {
	tripRepo   ports.TripRepository
	coupleRepo ports.CoupleRepository
}

func NewTripService(tripRepo ports.TripRepository, coupleRepo ports.CoupleRepository) ports.TripService {
	return &tripService{
		tripRepo:   tripRepo,
		coupleRepo: coupleRepo,
	}
}

func (s *tripService) Create(ctx context.Context, userID uuid.UUID, input ports.CreateTripInput) (*domain.Trip, error) {
	if input.Name == "" {
		return nil, domain.ErrTripNameRequired
	}
	if input.MainDestination == "" {
		return nil, domain.ErrTripDestRequired
	}

	link, err := s.coupleRepo.GetLink(ctx, userID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrNotInCouple
	}

	status := input.Status
	if status == "" {
		status = domain.TripStatusPlanned
	}

	now := time.Now()
	trip := &domain.Trip{
		ID:              uuid.New(),
		CoupleID:        link.CoupleID,
		OwnerUserID:     userID,
		Name:            input.Name,
		Year:            input.Year,
		MainDestination: input.MainDestination,
		Status:          status,
		EstimatedPeriod: input.EstimatedPeriod,
		Description:     input.Description,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) Get(ctx context.Context, userID, tripID uuid.UUID) (*domain.Trip, error) {
	return s.tripForMember(ctx, userID, tripID)
}

func (s *tripService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Trip, error) {
	link, err := s.coupleRepo.GetLink(ctx, userID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrNotInCouple
	}
	return s.tripRepo.ListByCouple(ctx, link.CoupleID)
}

func (s *tripService) Update(ctx context.Context, userID, tripID uuid.UUID, input ports.UpdateTripInput) (*domain.Trip, error) {
	trip, err := s.tripForMember(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		trip.Name = *input.Name
	}
	if input.Year != nil {
		trip.Year = *input.Year
	}
	if input.MainDestination != nil {
		trip.MainDestination = *input.MainDestination
	}
	if input.Status != nil {
		trip.Status = *input.Status
	}
	if input.EstimatedPeriod != nil {
		trip.EstimatedPeriod = *input.EstimatedPeriod
	}
	if input.Description != nil {
		trip.Description = *input.Description
	}
	trip.UpdatedAt = time.Now()

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) SetStatus(ctx context.Context, userID, tripID uuid.UUID, status domain.TripStatus) error {
	if _, err := s.tripForMember(ctx, userID, tripID); err != nil {
		return err
	}
	return s.tripRepo.SetStatus(ctx, tripID, status)
}

func (s *tripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	if _, err := s.tripForMember(ctx, userID, tripID); err != nil {
		return err
	}
	return s.tripRepo.Delete(ctx, tripID)
}

// tripForMember loads a trip and checks the caller belongs to its couple.
func (s *tripService) tripForMember(ctx context.Context, userID, tripID uuid.UUID) (*domain.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, domain.ErrTripNotFound
	}

	link, err := s.coupleRepo.GetLink(ctx, userID)
	if err != nil {
		return nil, err
	}
	if link == nil || link.CoupleID != trip.CoupleID {
		return nil, domain.ErrNotCoupleMember
	}
	return trip, nil
}
