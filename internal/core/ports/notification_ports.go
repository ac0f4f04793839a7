package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pairmed/api/internal/core/domain"
)

type NotificationRepository interface {
	// Upsert overwrites the sender's outstanding notification, if any.
	Upsert(ctx context.Context, n *domain.Notification) error
	ListByCouple(ctx context.Context, coupleID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, senderID uuid.UUID) error
}

type NotificationService interface {
	Notify(ctx context.Context, senderID uuid.UUID, senderEmail, message string) error
	ForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, senderID uuid.UUID) error
}
