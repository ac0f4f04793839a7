package domain

import (
	"time"

	"github.com/google/uuid"
)

type TripStatus string

const (
	TripStatusPlanned   TripStatus = "planned"
	TripStatusOngoing   TripStatus = "ongoing"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCanceled  TripStatus = "canceled"
)

// EstimatedPeriod is either a concrete date range (kind "dates") or a
// month range within a year (kind "months"). Unused fields stay nil.
type EstimatedPeriod struct {
	Kind       string     `json:"kind"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	StartMonth *int       `json:"start_month,omitempty"`
	EndMonth   *int       `json:"end_month,omitempty"`
	Year       *int       `json:"year,omitempty"`
}

type Trip struct {
	ID              uuid.UUID       `json:"id"`
	CoupleID        string          `json:"couple_id"`
	OwnerUserID     uuid.UUID       `json:"owner_user_id"`
	Name            string          `json:"name"`
	Year            int             `json:"year"`
	MainDestination string          `json:"main_destination"`
	Status          TripStatus      `json:"status"`
	EstimatedPeriod EstimatedPeriod `json:"estimated_period"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
