package domain

import (
	"time"

	"github.com/google/uuid"
)

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusExpired  InviteStatus = "expired"
)

// InviteTTL is how long a pending invite stays redeemable.
const InviteTTL = 30 * 24 * time.Hour

type Invite struct {
	ID            uuid.UUID    `json:"id"`
	InviterUserID uuid.UUID    `json:"inviter_user_id"`
	InviterEmail  string       `json:"inviter_email"`
	InvitedEmail  string       `json:"invited_email"`
	Status        InviteStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	AcceptedAt    *time.Time   `json:"accepted_at,omitempty"`
	ExpiresAt     time.Time    `json:"expires_at"`
}
