package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pairmed/api/internal/core/domain"
)

type CoupleRepository interface {
	// CreateWithLinks writes the couple row and both user links in a
	// single transaction, so pairing is all-or-nothing.
	CreateWithLinks(ctx context.Context, couple *domain.Couple, links []*domain.UserCouple) error
	GetByID(ctx context.Context, coupleID string) (*domain.Couple, error)
	// GetLink returns nil when the user has no couple link.
	GetLink(ctx context.Context, userID uuid.UUID) (*domain.UserCouple, error)
	RemoveMember(ctx context.Context, coupleID string, userID uuid.UUID) error
	DeleteLink(ctx context.Context, userID uuid.UUID) error
	SetStatus(ctx context.Context, coupleID string, status domain.CoupleStatus) error
	UpdateSettings(ctx context.Context, coupleID string, input UpdateSettingsInput) error
}

type Membership struct {
	InCouple bool              `json:"in_couple"`
	CoupleID string            `json:"couple_id,omitempty"`
	Role     domain.CoupleRole `json:"role,omitempty"`
}

// UpdateSettingsInput carries a partial settings update; nil fields are
// left untouched.
type UpdateSettingsInput struct {
	SharedMedications  *bool `json:"shared_medications"`
	SharedReminders    *bool `json:"shared_reminders"`
	CrossNotifications *bool `json:"cross_notifications"`
}

type CoupleService interface {
	InvitePartner(ctx context.Context, inviterUserID uuid.UUID, inviterEmail, invitedEmail string) (uuid.UUID, error)
	PendingInviteByEmail(ctx context.Context, email string) (*domain.Invite, error)
	AcceptInvite(ctx context.Context, userID uuid.UUID, userEmail string) (string, error)
	CancelInvite(ctx context.Context, inviteID uuid.UUID) error
	IsInCouple(ctx context.Context, userID uuid.UUID) (Membership, error)
	LeaveCouple(ctx context.Context, userID uuid.UUID) error
	CleanExpiredInvites(ctx context.Context) (int, error)
	CoupleByID(ctx context.Context, coupleID string) (*domain.Couple, error)
	SentInvites(ctx context.Context, inviterUserID uuid.UUID) ([]*domain.Invite, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, input UpdateSettingsInput) error
}
