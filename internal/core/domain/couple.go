package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type CoupleStatus string

const (
	CoupleStatusActive   CoupleStatus = "active"
	CoupleStatusInactive CoupleStatus = "inactive"
)

type CoupleRole string

const (
	CoupleRoleCreator CoupleRole = "creator"
	CoupleRoleMember  CoupleRole = "member"
)

type CoupleSettings struct {
	SharedMedications  bool `json:"shared_medications"`
	SharedReminders    bool `json:"shared_reminders"`
	CrossNotifications bool `json:"cross_notifications"`
}

type Couple struct {
	ID        string         `json:"id"`
	Members   []uuid.UUID    `json:"members"`
	CreatedBy uuid.UUID      `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Status    CoupleStatus   `json:"status"`
	Settings  CoupleSettings `json:"settings"`
}

// UserCouple is the per-user back-reference to a couple. At most one row
// exists per user; its presence is the source of truth for membership.
type UserCouple struct {
	UserID   uuid.UUID  `json:"user_id"`
	CoupleID string     `json:"couple_id"`
	Role     CoupleRole `json:"role"`
	JoinedAt time.Time  `json:"joined_at"`
}

// NewCoupleID keeps the id format the mobile clients already store: a
// millisecond timestamp plus a short random token.
func NewCoupleID() string {
	b := make([]byte, 5)
	_, _ = rand.Read(b)
	return fmt.Sprintf("couple_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(b))
}
