package domain

import "errors"

var (
	ErrAlreadyInCouple     = errors.New("user already belongs to a couple")
	ErrNotInCouple         = errors.New("user is not in a couple")
	ErrPendingInviteExists = errors.New("a pending invite already exists for this email")
	ErrSelfInvite          = errors.New("cannot invite yourself")
	ErrInviteNotFound      = errors.New("invite not found")
	ErrInviteExpired       = errors.New("invite expired")
	ErrCoupleNotFound      = errors.New("couple not found")
	ErrTripNotFound        = errors.New("trip not found")
	ErrTripNameRequired    = errors.New("trip name is required")
	ErrTripDestRequired    = errors.New("main destination is required")
	ErrNotCoupleMember     = errors.New("user does not belong to this couple")
	ErrInternal            = errors.New("internal server error")
)
