package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pairmed/api/internal/core/domain"
	"github.com/pairmed/api/internal/core/ports"
)

type coupleService struct {
	inviteRepo ports.InviteRepository
	coupleRepo ports.CoupleRepository
}

func NewCoupleService(inviteRepo ports.InviteRepository, coupleRepo ports.CoupleRepository) ports.CoupleService {
	return &coupleService{
		inviteRepo: inviteRepo,
		coupleRepo: coupleRepo,
	}
}

func (s *coupleService) InvitePartner(ctx context.Context, inviterUserID uuid.UUID, inviterEmail, invitedEmail string) (uuid.UUID, error) {
	membership, err := s.IsInCouple(ctx, inviterUserID)
	if err != nil {
		return uuid.Nil, err
	}
	if membership.InCouple {
		return uuid.Nil, domain.ErrAlreadyInCouple
	}

	inviterEmail = strings.ToLower(inviterEmail)
	invitedEmail = strings.ToLower(invitedEmail)

	existing, err := s.inviteRepo.FindPendingByEmail(ctx, invitedEmail)
	if err != nil {
		return uuid.Nil, err
	}
	if existing != nil {
		return uuid.Nil, domain.ErrPendingInviteExists
	}

	if inviterEmail == invitedEmail {
		return uuid.Nil, domain.ErrSelfInvite
	}

	now := time.Now()
	invite := &domain.Invite{
		ID:            uuid.New(),
		InviterUserID: inviterUserID,
		InviterEmail:  inviterEmail,
		InvitedEmail:  invitedEmail,
		Status:        domain.InviteStatusPending,
		CreatedAt:     now,
		ExpiresAt:     now.Add(domain.InviteTTL),
	}

	if err := s.inviteRepo.Save(ctx, invite); err != nil {
		return uuid.Nil, err
	}

	return invite.ID, nil
}

func (s *coupleService) PendingInviteByEmail(ctx context.Context, email string) (*domain.Invite, error) {
	invite, err := s.inviteRepo.FindPendingByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	if invite == nil {
		return nil, domain.ErrInviteNotFound
	}
	return invite, nil
}

// AcceptInvite pairs the accepting user with the inviter. The couple row
// and both user links are written in one transaction; the invite status
// flip happens after, so a crash in between leaves an accepted pairing
// with a still-pending invite. A retry is harmless because the
// already-paired check short-circuits first.
func (s *coupleService) AcceptInvite(ctx context.Context, userID uuid.UUID, userEmail string) (string, error) {
	membership, err := s.IsInCouple(ctx, userID)
	if err != nil {
		return "", err
	}
	if membership.InCouple {
		return "", domain.ErrAlreadyInCouple
	}

	invite, err := s.inviteRepo.FindPendingByEmail(ctx, strings.ToLower(userEmail))
	if err != nil {
		return "", err
	}
	if invite == nil {
		return "", domain.ErrInviteNotFound
	}

	// Lazy expiry: only evaluated when the invite is touched.
	if time.Now().After(invite.ExpiresAt) {
		if err := s.inviteRepo.SetStatus(ctx, invite.ID, domain.InviteStatusExpired); err != nil {
			return "", err
		}
		return "", domain.ErrInviteExpired
	}

	now := time.Now()
	couple := &domain.Couple{
		ID:        domain.NewCoupleID(),
		Members:   []uuid.UUID{invite.InviterUserID, userID},
		CreatedBy: invite.InviterUserID,
		CreatedAt: now,
		UpdatedAt: now,
		Status:    domain.CoupleStatusActive,
		Settings: domain.CoupleSettings{
			SharedMedications:  true,
			SharedReminders:    true,
			CrossNotifications: true,
		},
	}
	links := []*domain.UserCouple{
		{UserID: invite.InviterUserID, CoupleID: couple.ID, Role: domain.CoupleRoleCreator, JoinedAt: now},
		{UserID: userID, CoupleID: couple.ID, Role: domain.CoupleRoleMember, JoinedAt: now},
	}

	if err := s.coupleRepo.CreateWithLinks(ctx, couple, links); err != nil {
		return "", err
	}

	if err := s.inviteRepo.MarkAccepted(ctx, invite.ID); err != nil {
		return "", err
	}

	return couple.ID, nil
}

// CancelInvite expires a pending invite. There is no separate canceled
// state and no check that the caller is the original inviter.
func (s *coupleService) CancelInvite(ctx context.Context, inviteID uuid.UUID) error {
	return s.inviteRepo.SetStatus(ctx, inviteID, domain.InviteStatusExpired)
}

func (s *coupleService) IsInCouple(ctx context.Context, userID uuid.UUID) (ports.Membership, error) {
	link, err := s.coupleRepo.GetLink(ctx, userID)
	if err != nil {
		return ports.Membership{}, err
	}
	if link == nil {
		return ports.Membership{}, nil
	}
	return ports.Membership{
		InCouple: true,
		CoupleID: link.CoupleID,
		Role:     link.Role,
	}, nil
}

func (s *coupleService) LeaveCouple(ctx context.Context, userID uuid.UUID) error {
	link, err := s.coupleRepo.GetLink(ctx, userID)
	if err != nil {
		return err
	}
	if link == nil {
		return domain.ErrNotInCouple
	}

	couple, err := s.coupleRepo.GetByID(ctx, link.CoupleID)
	if err != nil {
		return err
	}
	if couple == nil {
		return domain.ErrCoupleNotFound
	}

	if err := s.coupleRepo.RemoveMember(ctx, link.CoupleID, userID); err != nil {
		return err
	}
	if err := s.coupleRepo.DeleteLink(ctx, userID); err != nil {
		return err
	}

	remaining := 0
	for _, m := range couple.Members {
		if m != userID {
			remaining++
		}
	}
	// An emptied couple is deactivated, never deleted.
	if remaining == 0 {
		return s.coupleRepo.SetStatus(ctx, link.CoupleID, domain.CoupleStatusInactive)
	}
	return nil
}

func (s *coupleService) CleanExpiredInvites(ctx context.Context) (int, error) {
	pending, err := s.inviteRepo.ListPending(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	cleaned := 0
	for _, invite := range pending {
		if invite.ExpiresAt.Before(now) {
			if err := s.inviteRepo.SetStatus(ctx, invite.ID, domain.InviteStatusExpired); err != nil {
				return cleaned, err
			}
			cleaned++
		}
	}
	return cleaned, nil
}

func (s *coupleService) CoupleByID(ctx context.Context, coupleID string) (*domain.Couple, error) {
	couple, err := s.coupleRepo.GetByID(ctx, coupleID)
	if err != nil {
		return nil, err
	}
	if couple == nil {
		return nil, domain.ErrCoupleNotFound
	}
	return couple, nil
}

func (s *coupleService) SentInvites(ctx context.Context, inviterUserID uuid.UUID) ([]*domain.Invite, error) {
	return s.inviteRepo.ListByInviter(ctx, inviterUserID)
}

func (s *coupleService) UpdateSettings(ctx context.Context, userID uuid.UUID, input ports.UpdateSettingsInput) error {
	link, err := s.coupleRepo.GetLink(ctx, userID)
	if err != nil {
		return err
	}
	if link == nil {
		return domain.ErrNotInCouple
	}
	return s.coupleRepo.UpdateSettings(ctx, link.CoupleID, input)
}
