package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pairmed/api/internal/core/domain"
	"github.com/pairmed/api/internal/core/ports"
)

type TripRepository struct {
	db *sql.DB
}

func NewTripRepository(db *sql.DB) ports.TripRepository {
	return &TripRepository{db: db}
}

func (r *TripRepository) Save(ctx context.Context, trip *domain.Trip) error {
	period, err := json.Marshal(trip.EstimatedPeriod)
	if err != nil {
		return fmt.Errorf("failed to encode estimated period: %w", err)
	}

	query := `
		INSERT INTO trips (id, couple_id, owner_user_id, name, year, main_destination, status, estimated_period, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		trip.ID, trip.CoupleID, trip.OwnerUserID, trip.Name, trip.Year,
		trip.MainDestination, trip.Status, period, trip.Description,
	).Scan(&trip.CreatedAt, &trip.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}
	return nil
}

func (r *TripRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	query := `
		SELECT id, couple_id, owner_user_id, name, year, main_destination, status, estimated_period, description, created_at, updated_at
		FROM trips
		WHERE id = $1
	`
	trip, err := scanTrip(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}

func (r *TripRepository) ListByCouple(ctx context.Context, coupleID string) ([]*domain.Trip, error) {
	query := `
		SELECT id, couple_id, owner_user_id, name, year, main_destination, status, estimated_period, description, created_at, updated_at
		FROM trips
		WHERE couple_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trips: %w", err)
	}
	return trips, nil
}

func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	period, err := json.Marshal(trip.EstimatedPeriod)
	if err != nil {
		return fmt.Errorf("failed to encode estimated period: %w", err)
	}

	query := `
		UPDATE trips
		SET name = $2, year = $3, main_destination = $4, status = $5, estimated_period = $6, description = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		trip.ID, trip.Name, trip.Year, trip.MainDestination, trip.Status, period, trip.Description,
	).Scan(&trip.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrTripNotFound
		}
		return fmt.Errorf("failed to update trip: %w", err)
	}
	return nil
}

func (r *TripRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) error {
	query := `UPDATE trips SET status = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update trip status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}

func (r *TripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM trips WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return nil
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	trip := &domain.Trip{}
	var period []byte
	err := row.Scan(
		&trip.ID,
		&trip.CoupleID,
		&trip.OwnerUserID,
		&trip.Name,
		&trip.Year,
		&trip.MainDestination,
		&trip.Status,
		&period,
		&trip.Description,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(period) > 0 {
		if err := json.Unmarshal(period, &trip.EstimatedPeriod); err != nil {
			return nil, fmt.Errorf("failed to decode estimated period: %w", err)
		}
	}
	return trip, nil
}
