package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pairmed/api/internal/core/domain"
)

type InviteRepository interface {
	Save(ctx context.Context, invite *domain.Invite) error
	// FindPendingByEmail returns the oldest pending invite addressed to
	// the given (already lower-cased) email, or nil when none exists.
	FindPendingByEmail(ctx context.Context, email string) (*domain.Invite, error)
	ListPending(ctx context.Context) ([]*domain.Invite, error)
	ListByInviter(ctx context.Context, inviterUserID uuid.UUID) ([]*domain.Invite, error)
	// SetStatus only transitions invites that are still pending.
	SetStatus(ctx context.Context, id uuid.UUID, status domain.InviteStatus) error
	MarkAccepted(ctx context.Context, id uuid.UUID) error
}
