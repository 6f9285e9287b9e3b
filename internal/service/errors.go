package service

import (
	"context"
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/realtime"
	"errors"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrEmailTaken          = errors.New("email already registered")
	ErrAccountSuspended    = errors.New("account suspended")
	ErrForbidden           = errors.New("admin clearance required")
	ErrSelfPurge           = errors.New("self-purge denied")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrNoGateway           = errors.New("no payment gateway configured")
	ErrGatewayNotFound     = errors.New("payment gateway not found")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrInvalidCost         = errors.New("numeric cost required")
	ErrProposalNotAccepted = errors.New("proposal has not been accepted")
	ErrEmptyFeedback       = errors.New("comment or rating required")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrTelegramIncomplete  = errors.New("telegram config incomplete")
)

func ensureActive(user *model.User) error {
	if user.IsSuspended || user.Detached {
		return ErrAccountSuspended
	}
	return nil
}

type publisher interface {
	Publish(ctx context.Context, ev realtime.Event)
}

func publish(ctx context.Context, hub publisher, collection string, op realtime.Op, id, ownerID string, data any) {
	if hub == nil {
		return
	}
	hub.Publish(ctx, realtime.Event{
		Collection: collection,
		Op:         op,
		ID:         id,
		OwnerID:    ownerID,
		Data:       data,
	})
}
