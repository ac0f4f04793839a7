package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/pairmed/api/internal/core/domain"
	"github.com/pairmed/api/internal/core/ports"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) ports.NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Upsert(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO couple_notifications (sender_id, sender_email, couple_id, message, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (sender_id) DO UPDATE
		SET sender_email = EXCLUDED.sender_email,
		    couple_id = EXCLUDED.couple_id,
		    message = EXCLUDED.message,
		    status = EXCLUDED.status,
		    updated_at = now()
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query, n.SenderID, n.SenderEmail, n.CoupleID, n.Message, n.Status).Scan(&n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByCouple(ctx context.Context, coupleID string) ([]*domain.Notification, error) {
	query := `
		SELECT sender_id, sender_email, couple_id, message, status, updated_at
		FROM couple_notifications
		WHERE couple_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		n := &domain.Notification{}
		if err := rows.Scan(&n.SenderID, &n.SenderEmail, &n.CoupleID, &n.Message, &n.Status, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, senderID uuid.UUID) error {
	query := `UPDATE couple_notifications SET status = 'read', updated_at = now() WHERE sender_id = $1`
	_, err := r.db.ExecContext(ctx, query, senderID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
