package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pairmed/api/internal/core/domain"
	"github.com/pairmed/api/internal/core/ports"
)

// In-memory repository fakes backing the service tests.

type fakeInviteRepo struct {
	invites map[uuid.UUID]*domain.Invite
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{invites: make(map[uuid.UUID]*domain.Invite)}
}

func (f *fakeInviteRepo) Save(_ context.Context, invite *domain.Invite) error {
	cp := *invite
	f.invites[invite.ID] = &cp
	return nil
}

func (f *fakeInviteRepo) FindPendingByEmail(_ context.Context, email string) (*domain.Invite, error) {
	var matches []*domain.Invite
	for _, inv := range f.invites {
		if inv.InvitedEmail == email && inv.Status == domain.InviteStatusPending {
			matches = append(matches, inv)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.Before(matches[j].CreatedAt) })
	cp := *matches[0]
	return &cp, nil
}

func (f *fakeInviteRepo) ListPending(_ context.Context) ([]*domain.Invite, error) {
	var pending []*domain.Invite
	for _, inv := range f.invites {
		if inv.Status == domain.InviteStatusPending {
			cp := *inv
			pending = append(pending, &cp)
		}
	}
	return pending, nil
}

func (f *fakeInviteRepo) ListByInviter(_ context.Context, inviterUserID uuid.UUID) ([]*domain.Invite, error) {
	var sent []*domain.Invite
	for _, inv := range f.invites {
		if inv.InviterUserID == inviterUserID {
			cp := *inv
			sent = append(sent, &cp)
		}
	}
	return sent, nil
}

func (f *fakeInviteRepo) SetStatus(_ context.Context, id uuid.UUID, status domain.InviteStatus) error {
	inv, ok := f.invites[id]
	if !ok || inv.Status != domain.InviteStatusPending {
		return domain.ErrInviteNotFound
	}
	inv.Status = status
	return nil
}

func (f *fakeInviteRepo) MarkAccepted(_ context.Context, id uuid.UUID) error {
	inv, ok := f.invites[id]
	if !ok || inv.Status != domain.InviteStatusPending {
		return domain.ErrInviteNotFound
	}
	inv.Status = domain.InviteStatusAccepted
	now := time.Now()
	inv.AcceptedAt = &now
	return nil
}

type fakeCoupleRepo struct {
	couples map[string]*domain.Couple
	links   map[uuid.UUID]*domain.UserCouple
}

func newFakeCoupleRepo() *fakeCoupleRepo {
	return &fakeCoupleRepo{
		couples: make(map[string]*domain.Couple),
		links:   make(map[uuid.UUID]*domain.UserCouple),
	}
}

func (f *fakeCoupleRepo) CreateWithLinks(_ context.Context, couple *domain.Couple, links []*domain.UserCouple) error {
	cp := *couple
	cp.Members = append([]uuid.UUID(nil), couple.Members...)
	f.couples[couple.ID] = &cp
	for _, link := range links {
		lcp := *link
		f.links[link.UserID] = &lcp
	}
	return nil
}

func (f *fakeCoupleRepo) GetByID(_ context.Context, coupleID string) (*domain.Couple, error) {
	couple, ok := f.couples[coupleID]
	if !ok {
		return nil, nil
	}
	cp := *couple
	cp.Members = append([]uuid.UUID(nil), couple.Members...)
	return &cp, nil
}

func (f *fakeCoupleRepo) GetLink(_ context.Context, userID uuid.UUID) (*domain.UserCouple, error) {
	link, ok := f.links[userID]
	if !ok {
		return nil, nil
	}
	cp := *link
	return &cp, nil
}

func (f *fakeCoupleRepo) RemoveMember(_ context.Context, coupleID string, userID uuid.UUID) error {
	couple, ok := f.couples[coupleID]
	if !ok {
		return nil
	}
	var members []uuid.UUID
	for _, m := range couple.Members {
		if m != userID {
			members = append(members, m)
		}
	}
	couple.Members = members
	return nil
}

func (f *fakeCoupleRepo) DeleteLink(_ context.Context, userID uuid.UUID) error {
	delete(f.links, userID)
	return nil
}

func (f *fakeCoupleRepo) SetStatus(_ context.Context, coupleID string, status domain.CoupleStatus) error {
	couple, ok := f.couples[coupleID]
	if !ok {
		return domain.ErrCoupleNotFound
	}
	couple.Status = status
	return nil
}

func (f *fakeCoupleRepo) UpdateSettings(_ context.Context, coupleID string, input ports.UpdateSettingsInput) error {
	couple, ok := f.couples[coupleID]
	if !ok {
		return domain.ErrCoupleNotFound
	}
	if input.SharedMedications != nil {
		couple.Settings.SharedMedications = *input.SharedMedications
	}
	if input.SharedReminders != nil {
		couple.Settings.SharedReminders = *input.SharedReminders
	}
	if input.CrossNotifications != nil {
		couple.Settings.CrossNotifications = *input.CrossNotifications
	}
	return nil
}

type fakeNotificationRepo struct {
	notifications map[uuid.UUID]*domain.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[uuid.UUID]*domain.Notification)}
}

func (f *fakeNotificationRepo) Upsert(_ context.Context, n *domain.Notification) error {
	cp := *n
	f.notifications[n.SenderID] = &cp
	return nil
}

func (f *fakeNotificationRepo) ListByCouple(_ context.Context, coupleID string) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range f.notifications {
		if n.CoupleID == coupleID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, senderID uuid.UUID) error {
	if n, ok := f.notifications[senderID]; ok {
		n.Status = domain.NotificationStatusRead
	}
	return nil
}

type fakeTripRepo struct {
	trips map[uuid.UUID]*domain.Trip
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: make(map[uuid.UUID]*domain.Trip)}
}

func (f *fakeTripRepo) Save(_ context.Context, trip *domain.Trip) error {
	cp := *trip
	f.trips[trip.ID] = &cp
	return nil
}

func (f *fakeTripRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Trip, error) {
	trip, ok := f.trips[id]
	if !ok {
		return nil, nil
	}
	cp := *trip
	return &cp, nil
}

func (f *fakeTripRepo) ListByCouple(_ context.Context, coupleID string) ([]*domain.Trip, error) {
	var out []*domain.Trip
	for _, trip := range f.trips {
		if trip.CoupleID == coupleID {
			cp := *trip
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTripRepo) Update(_ context.Context, trip *domain.Trip) error {
	if _, ok := f.trips[trip.ID]; !ok {
		return domain.ErrTripNotFound
	}
	cp := *trip
	f.trips[trip.ID] = &cp
	return nil
}

func (f *fakeTripRepo) SetStatus(_ context.Context, id uuid.UUID, status domain.TripStatus) error {
	trip, ok := f.trips[id]
	if !ok {
		return domain.ErrTripNotFound
	}
	trip.Status = status
	return nil
}

func (f *fakeTripRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.trips, id)
	return nil
}
