package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pairmed/api/internal/core/domain"
	"github.com/pairmed/api/internal/core/ports"
)

type notificationService struct {
	notificationRepo ports.NotificationRepository
	coupleRepo       ports.CoupleRepository
}

func NewNotificationService(notificationRepo ports.NotificationRepository, coupleRepo ports.CoupleRepository) ports.NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		coupleRepo:       coupleRepo,
	}
}

func (s *notificationService) Notify(ctx context.Context, senderID uuid.UUID, senderEmail, message string) error {
	link, err := s.coupleRepo.GetLink(ctx, senderID)
	if err != nil {
		return err
	}
	if link == nil {
		return domain.ErrNotInCouple
	}

	n := &domain.Notification{
		SenderID:    senderID,
		SenderEmail: strings.ToLower(senderEmail),
		CoupleID:    link.CoupleID,
		Message:     message,
		Status:      domain.NotificationStatusPending,
	}
	return s.notificationRepo.Upsert(ctx, n)
}

func (s *notificationService) ForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	link, err := s.coupleRepo.GetLink(ctx, userID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrNotInCouple
	}
	return s.notificationRepo.ListByCouple(ctx, link.CoupleID)
}

func (s *notificationService) MarkRead(ctx context.Context, senderID uuid.UUID) error {
	return s.notificationRepo.MarkRead(ctx, senderID)
}
