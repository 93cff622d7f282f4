// Package reconcile turns verified payment-provider webhook deliveries
// into local state changes. Its main job is crediting coin top-ups; all
// other purchase kinds are acknowledged and left to the provider as the
// source of truth.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/decoderzhub/snapreme/app/models"
	"github.com/decoderzhub/snapreme/internal/pkg/checkout"
	"gorm.io/gorm"
)

// EventTypeCheckoutCompleted is the only event type that triggers a
// wallet credit. Everything else is stored and marked processed.
const EventTypeCheckoutCompleted = "checkout.session.completed"

// ErrMalformedEvent is returned when a checkout-completed event lacks
// the metadata needed to credit a wallet. The event row keeps the parse
// error so it can be investigated and is never retried.
var ErrMalformedEvent = errors.New("malformed webhook event")

// EventInput is one verified webhook delivery.
type EventInput struct {
	Provider    string
	EventID     string
	Type        string
	PayloadJSON string
	// Metadata is the checkout session metadata written by the session
	// builders.
	Metadata map[string]string
}

// Outcome reports what a delivery did.
type Outcome struct {
	// Duplicate is true when this event id was seen before; nothing was
	// changed.
	Duplicate bool
	// CoinsCredited is non-zero only for first-time coin top-ups.
	CoinsCredited int64
	UserID        uint
}

// Service records webhook events idempotently and applies coin top-up
// credits.
type Service struct {
	repo Repository
}

// NewService creates a reconcile service with the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a reconcile service backed by the given GORM
// handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// ProcessEvent stores the delivery exactly once and applies its effect.
// Replays of an already-processed event id return Duplicate without
// touching any wallet. A recorded event whose processed_at is still
// null had its effect fail after intake, so the provider's retry
// re-attempts it; processed_at is the idempotency guard, not the row.
func (s *Service) ProcessEvent(ctx context.Context, in EventInput) (*Outcome, error) {
	_ = ctx
	event := &models.PaymentWebhookEvent{
		Provider:        in.Provider,
		ProviderEventID: in.EventID,
		EventType:       in.Type,
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  true,
	}
	created, stored, err := s.repo.RecordEvent(event)
	if err != nil {
		return nil, fmt.Errorf("record webhook event: %w", err)
	}
	if !created && stored.ProcessedAt != nil {
		return &Outcome{Duplicate: true}, nil
	}

	if in.Type != EventTypeCheckoutCompleted || in.Metadata["kind"] != checkout.KindCoinTopup {
		if _, err := s.repo.MarkEventProcessed(stored.ID, ""); err != nil {
			return nil, fmt.Errorf("mark event processed: %w", err)
		}
		return &Outcome{}, nil
	}

	userID, coins, parseErr := parseTopup(in.Metadata)
	if parseErr != nil {
		if _, err := s.repo.MarkEventProcessed(stored.ID, parseErr.Error()); err != nil {
			return nil, fmt.Errorf("mark event processed: %w", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, parseErr)
	}

	// Claiming processed_at inside the credit transaction makes the
	// credit apply at most once even when retries race: a delivery that
	// fails to claim skips the credit, a delivery whose credit fails
	// rolls the claim back for the next retry.
	var lostClaim bool
	err = s.repo.WithTx(func(tx Repository) error {
		claimed, err := tx.MarkEventProcessed(stored.ID, "")
		if err != nil {
			return err
		}
		if !claimed {
			lostClaim = true
			return nil
		}
		return tx.CreditWallet(userID, coins)
	})
	if err != nil {
		return nil, fmt.Errorf("credit top-up: %w", err)
	}
	if lostClaim {
		return &Outcome{Duplicate: true}, nil
	}
	return &Outcome{CoinsCredited: coins, UserID: userID}, nil
}

func parseTopup(metadata map[string]string) (uint, int64, error) {
	userID, err := strconv.ParseUint(metadata["user_id"], 10, 64)
	if err != nil || userID == 0 {
		return 0, 0, fmt.Errorf("bad user_id %q", metadata["user_id"])
	}
	coins, err := strconv.ParseInt(metadata["coins"], 10, 64)
	if err != nil || coins <= 0 {
		return 0, 0, fmt.Errorf("bad coins %q", metadata["coins"])
	}
	return uint(userID), coins, nil
}
