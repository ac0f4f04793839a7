package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pairmed/api/internal/core/domain"
	"github.com/pairmed/api/internal/core/ports"
)

type CoupleRepository struct {
	db *sql.DB
}

func NewCoupleRepository(db *sql.DB) ports.CoupleRepository {
	return &CoupleRepository{db: db}
}

func (r *CoupleRepository) CreateWithLinks(ctx context.Context, couple *domain.Couple, links []*domain.UserCouple) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryCouple := `
		INSERT INTO couples (id, members, created_by, status, shared_medications, shared_reminders, cross_notifications)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, queryCouple,
		couple.ID,
		pq.Array(memberStrings(couple.Members)),
		couple.CreatedBy,
		couple.Status,
		couple.Settings.SharedMedications,
		couple.Settings.SharedReminders,
		couple.Settings.CrossNotifications,
	).Scan(&couple.CreatedAt, &couple.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert couple: %w", err)
	}

	queryLink := `
		INSERT INTO user_couples (user_id, couple_id, role)
		VALUES ($1, $2, $3)
		RETURNING joined_at
	`
	stmt, err := tx.PrepareContext(ctx, queryLink)
	if err != nil {
		return fmt.Errorf("failed to prepare link statement: %w", err)
	}
	defer stmt.Close()

	for _, link := range links {
		if err := stmt.QueryRowContext(ctx, link.UserID, link.CoupleID, link.Role).Scan(&link.JoinedAt); err != nil {
			return fmt.Errorf("failed to insert user-couple link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *CoupleRepository) GetByID(ctx context.Context, coupleID string) (*domain.Couple, error) {
	query := `
		SELECT id, members, created_by, created_at, updated_at, status, shared_medications, shared_reminders, cross_notifications
		FROM couples
		WHERE id = $1
	`
	couple := &domain.Couple{}
	var members pq.StringArray
	err := r.db.QueryRowContext(ctx, query, coupleID).Scan(
		&couple.ID,
		&members,
		&couple.CreatedBy,
		&couple.CreatedAt,
		&couple.UpdatedAt,
		&couple.Status,
		&couple.Settings.SharedMedications,
		&couple.Settings.SharedReminders,
		&couple.Settings.CrossNotifications,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get couple: %w", err)
	}

	couple.Members, err = parseMembers(members)
	if err != nil {
		return nil, fmt.Errorf("failed to parse couple members: %w", err)
	}
	return couple, nil
}

func (r *CoupleRepository) GetLink(ctx context.Context, userID uuid.UUID) (*domain.UserCouple, error) {
	query := `SELECT user_id, couple_id, role, joined_at FROM user_couples WHERE user_id = $1`
	link := &domain.UserCouple{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&link.UserID, &link.CoupleID, &link.Role, &link.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user-couple link: %w", err)
	}
	return link, nil
}

func (r *CoupleRepository) RemoveMember(ctx context.Context, coupleID string, userID uuid.UUID) error {
	query := `UPDATE couples SET members = array_remove(members, $2), updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, coupleID, userID.String())
	if err != nil {
		return fmt.Errorf("failed to remove couple member: %w", err)
	}
	return nil
}

func (r *CoupleRepository) DeleteLink(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM user_couples WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user-couple link: %w", err)
	}
	return nil
}

func (r *CoupleRepository) SetStatus(ctx context.Context, coupleID string, status domain.CoupleStatus) error {
	query := `UPDATE couples SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, coupleID, status)
	if err != nil {
		return fmt.Errorf("failed to update couple status: %w", err)
	}
	return nil
}

func (r *CoupleRepository) UpdateSettings(ctx context.Context, coupleID string, input ports.UpdateSettingsInput) error {
	sets := []string{"updated_at = now()"}
	args := []any{coupleID}

	appendSet := func(column string, value *bool) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	appendSet("shared_medications", input.SharedMedications)
	appendSet("shared_reminders", input.SharedReminders)
	appendSet("cross_notifications", input.CrossNotifications)

	query := "UPDATE couples SET " + strings.Join(sets, ", ") + " WHERE id = $1"
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update couple settings: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrCoupleNotFound
	}
	return nil
}

func memberStrings(members []uuid.UUID) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.String()
	}
	return out
}

func parseMembers(members pq.StringArray) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
