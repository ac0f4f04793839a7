package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pairmed/api/internal/core/domain"
	"github.com/pairmed/api/internal/core/ports"
)

type InviteRepository struct {
	db *sql.DB
}

func NewInviteRepository(db *sql.DB) ports.InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Save(ctx context.Context, invite *domain.Invite) error {
	query := `
		INSERT INTO invites (id, inviter_user_id, inviter_email, invited_email, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		invite.ID, invite.InviterUserID, invite.InviterEmail, invite.InvitedEmail, invite.Status, invite.ExpiresAt,
	).Scan(&invite.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert invite: %w", err)
	}
	return nil
}

func (r *InviteRepository) FindPendingByEmail(ctx context.Context, email string) (*domain.Invite, error) {
	// Two concurrent invites for the same email can both pass the
	// application-level duplicate check; ordering by created_at makes
	// the winner deterministic when that happens.
	query := `
		SELECT id, inviter_user_id, inviter_email, invited_email, status, created_at, accepted_at, expires_at
		FROM invites
		WHERE invited_email = lower($1) AND status = 'pending'
		ORDER BY created_at
		LIMIT 1
	`
	invite, err := scanInvite(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find pending invite: %w", err)
	}
	return invite, nil
}

func (r *InviteRepository) ListPending(ctx context.Context) ([]*domain.Invite, error) {
	query := `
		SELECT id, inviter_user_id, inviter_email, invited_email, status, created_at, accepted_at, expires_at
		FROM invites
		WHERE status = 'pending'
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending invites: %w", err)
	}
	defer rows.Close()

	return scanInvites(rows)
}

func (r *InviteRepository) ListByInviter(ctx context.Context, inviterUserID uuid.UUID) ([]*domain.Invite, error) {
	query := `
		SELECT id, inviter_user_id, inviter_email, invited_email, status, created_at, accepted_at, expires_at
		FROM invites
		WHERE inviter_user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, inviterUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sent invites: %w", err)
	}
	defer rows.Close()

	return scanInvites(rows)
}

func (r *InviteRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.InviteStatus) error {
	// Accepted and expired are terminal; only pending invites move.
	query := `UPDATE invites SET status = $2 WHERE id = $1 AND status = 'pending'`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update invite status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInviteNotFound
	}
	return nil
}

func (r *InviteRepository) MarkAccepted(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE invites SET status = 'accepted', accepted_at = now() WHERE id = $1 AND status = 'pending'`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark invite accepted: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInviteNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvite(row rowScanner) (*domain.Invite, error) {
	invite := &domain.Invite{}
	err := row.Scan(
		&invite.ID,
		&invite.InviterUserID,
		&invite.InviterEmail,
		&invite.InvitedEmail,
		&invite.Status,
		&invite.CreatedAt,
		&invite.AcceptedAt,
		&invite.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return invite, nil
}

func scanInvites(rows *sql.Rows) ([]*domain.Invite, error) {
	var invites []*domain.Invite
	for rows.Next() {
		invite, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		invites = append(invites, invite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invites: %w", err)
	}
	return invites, nil
}
