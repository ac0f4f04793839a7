package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusRead    NotificationStatus = "read"
)

// Notification is a couple-scoped alert keyed by sender, so each sender
// has at most one outstanding notification at a time.
type Notification struct {
	SenderID    uuid.UUID          `json:"sender_id"`
	SenderEmail string             `json:"sender_email,omitempty"`
	CoupleID    string             `json:"couple_id,omitempty"`
	Message     string             `json:"message"`
	Status      NotificationStatus `json:"status"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
